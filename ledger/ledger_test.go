package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studyboard/studyboard-be/model"
)

func testComments(t *testing.T) []*model.Comment {
	createdAt, err := time.Parse(time.RFC3339, "2024-03-01T10:30:00Z")
	require.NoError(t, err)
	return []*model.Comment{
		{
			Id:                "c1",
			AuthorId:          "user-1",
			AuthorDisplayName: "Ada",
			AuthorAvatar:      "https://avatars.dicebear.com/api/bottts/user-1.svg",
			Content:           "nice derivation",
			CreatedAt:         createdAt,
		},
		{
			Id:                "c2",
			AuthorId:          "user-2",
			AuthorDisplayName: "Grace",
			Content:           "see also the epsilon-delta definition",
			Upvotes:           3,
			Downvotes:         1,
			CreatedAt:         createdAt.Add(time.Minute),
		},
	}
}

func TestRoundTrip(t *testing.T) {
	comments := testComments(t)

	raw, err := Encode(comments)
	require.NoError(t, err)

	decoded, needsRepair := Decode(raw)
	assert.False(t, needsRepair)
	assert.Equal(t, comments, decoded)
}

func TestRoundTripEmpty(t *testing.T) {
	raw, err := Encode([]*model.Comment{})
	require.NoError(t, err)
	assert.Equal(t, Empty, raw)

	decoded, needsRepair := Decode(raw)
	assert.False(t, needsRepair)
	assert.Empty(t, decoded)
}

func TestDecodeRecoversFromCorruption(t *testing.T) {
	for name, raw := range map[string]string{
		"absent":      "",
		"null":        "null",
		"garbage":     "{not json",
		"wrong shape": `{"comments": []}`,
		"truncated":   `[{"id":"c1","content":"hi"`,
	} {
		t.Run(name, func(t *testing.T) {
			comments, needsRepair := Decode(raw)
			assert.True(t, needsRepair)
			assert.NotNil(t, comments)
			assert.Empty(t, comments)
		})
	}
}

func TestNewComment(t *testing.T) {
	author := &model.User{Id: "user-1", DisplayName: "Ada", Avatar: "https://example.com/a.svg"}
	comment := NewComment(author, "  looks right to me  ")

	assert.NotEmpty(t, comment.Id)
	assert.Equal(t, "user-1", comment.AuthorId)
	assert.Equal(t, "Ada", comment.AuthorDisplayName)
	assert.Equal(t, "https://example.com/a.svg", comment.AuthorAvatar)
	assert.Equal(t, "looks right to me", comment.Content)
	assert.Zero(t, comment.Upvotes)
	assert.Zero(t, comment.Downvotes)
	assert.WithinDuration(t, time.Now(), comment.CreatedAt, time.Minute)

	other := NewComment(author, "second")
	assert.NotEqual(t, comment.Id, other.Id)
}

func TestAppend(t *testing.T) {
	comments := testComments(t)
	raw, err := Encode(comments)
	require.NoError(t, err)

	added := &model.Comment{Id: "c3", AuthorId: "user-3", AuthorDisplayName: "Edsger", Content: "hm"}
	newRaw, total, err := Append(raw, added)
	require.NoError(t, err)
	assert.Equal(t, 3, total)

	decoded, needsRepair := Decode(newRaw)
	assert.False(t, needsRepair)
	require.Len(t, decoded, 3)
	assert.Equal(t, "c3", decoded[2].Id)
	assert.Equal(t, comments[0].Id, decoded[0].Id)
	assert.Equal(t, comments[1].Id, decoded[1].Id)
}

func TestAppendRepairsCorruptLedger(t *testing.T) {
	added := &model.Comment{Id: "c1", AuthorId: "user-1", Content: "first"}
	newRaw, total, err := Append("{garbage", added)
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	decoded, needsRepair := Decode(newRaw)
	assert.False(t, needsRepair)
	require.Len(t, decoded, 1)
	assert.Equal(t, "c1", decoded[0].Id)
}
