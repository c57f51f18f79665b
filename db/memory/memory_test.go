package memory

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	db2 "github.com/studyboard/studyboard-be/db"
	"github.com/studyboard/studyboard-be/ledger"
	"github.com/studyboard/studyboard-be/model"
)

func TestCreateAndGetPost(t *testing.T) {
	mdb := New()
	ctx := context.Background()

	id, err := mdb.CreatePost(ctx, &db2.CreatePost{
		Title:             "Intro",
		Content:           "body",
		Topic:             "calculus",
		AuthorId:          "user-1",
		AuthorDisplayName: "Ada",
	})
	require.NoError(t, err)

	post, err := mdb.GetPostById(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, post)
	assert.Equal(t, "Intro", post.Title)
	assert.Equal(t, ledger.Empty, post.RawComments)
	assert.Zero(t, post.Views)

	missing, err := mdb.GetPostById(ctx, 404404)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestVoteUnknownPost(t *testing.T) {
	mdb := New()
	counts, err := mdb.Vote(context.Background(), 404404, model.VoteUp)
	require.NoError(t, err)
	assert.Nil(t, counts)
}

func TestConcurrentVotesAllCount(t *testing.T) {
	mdb := New()
	ctx := context.Background()
	id, err := mdb.CreatePost(ctx, &db2.CreatePost{Title: "Intro", Content: "body", Topic: "calculus"})
	require.NoError(t, err)

	const voters = 100
	var wg sync.WaitGroup
	wg.Add(voters)
	for i := 0; i < voters; i++ {
		go func() {
			defer wg.Done()
			_, err := mdb.Vote(ctx, id, model.VoteUp)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	post, err := mdb.GetPostById(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, voters, post.Upvotes)
	assert.Zero(t, post.Downvotes)
}

func TestConcurrentAppendsAllLand(t *testing.T) {
	mdb := New()
	ctx := context.Background()
	id, err := mdb.CreatePost(ctx, &db2.CreatePost{Title: "Intro", Content: "body", Topic: "calculus"})
	require.NoError(t, err)

	const commenters = 50
	var wg sync.WaitGroup
	wg.Add(commenters)
	for i := 0; i < commenters; i++ {
		go func() {
			defer wg.Done()
			raw, err := json.Marshal(&model.Comment{
				Id:        uuid.NewString(),
				AuthorId:  "user-1",
				Content:   "hello",
				CreatedAt: time.Now().UTC(),
			})
			assert.NoError(t, err)
			assert.NoError(t, mdb.AppendComment(ctx, id, string(raw)))
		}()
	}
	wg.Wait()

	post, err := mdb.GetPostById(ctx, id)
	require.NoError(t, err)
	comments, needsRepair := ledger.Decode(post.RawComments)
	assert.False(t, needsRepair)
	assert.Len(t, comments, commenters)
}

func TestIncrementViews(t *testing.T) {
	mdb := New()
	ctx := context.Background()
	id, err := mdb.CreatePost(ctx, &db2.CreatePost{Title: "Intro", Content: "body", Topic: "calculus"})
	require.NoError(t, err)

	views, err := mdb.IncrementViews(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, views)
	views, err = mdb.IncrementViews(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 2, views)
}

func TestMigrateLedgers(t *testing.T) {
	mdb := New()
	ctx := context.Background()

	legacyId := mdb.SeedPost(&model.Post{Title: "Legacy", Topic: "calculus", CreatedAt: time.Now().UTC()})
	healthyId := mdb.SeedPost(&model.Post{Title: "Healthy", Topic: "calculus", RawComments: ledger.Empty, CreatedAt: time.Now().UTC()})

	updated, err := mdb.MigrateLedgers(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, updated)

	legacy, err := mdb.GetPostById(ctx, legacyId)
	require.NoError(t, err)
	assert.Equal(t, ledger.Empty, legacy.RawComments)

	healthy, err := mdb.GetPostById(ctx, healthyId)
	require.NoError(t, err)
	assert.Equal(t, ledger.Empty, healthy.RawComments)

	// second run finds nothing left to fix
	updated, err = mdb.MigrateLedgers(ctx)
	require.NoError(t, err)
	assert.Zero(t, updated)
}

func TestNotes(t *testing.T) {
	mdb := New()
	ctx := context.Background()

	firstId, err := mdb.CreateNote(ctx, &db2.CreateNote{
		UserId:  "user-1",
		Title:   "Limits",
		Content: "epsilon-delta",
		Role:    "Math",
		Tags:    []string{"calculus"},
	})
	require.NoError(t, err)
	secondId, err := mdb.CreateNote(ctx, &db2.CreateNote{
		UserId: "user-1", Title: "Series", Content: "body", Role: "Math", Tags: []string{},
	})
	require.NoError(t, err)
	_, err = mdb.CreateNote(ctx, &db2.CreateNote{
		UserId: "user-2", Title: "Theirs", Content: "body", Role: "Math", Tags: []string{},
	})
	require.NoError(t, err)

	note, err := mdb.GetNoteById(ctx, firstId)
	require.NoError(t, err)
	require.NotNil(t, note)
	assert.Equal(t, "Limits", note.Title)
	assert.Equal(t, []string{"calculus"}, note.Tags)

	missing, err := mdb.GetNoteById(ctx, 404404)
	require.NoError(t, err)
	assert.Nil(t, missing)

	notes, err := mdb.GetNotesByUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, secondId, notes[0].Id)
	assert.Equal(t, firstId, notes[1].Id)

	// owner-scoped delete
	deleted, err := mdb.DeleteNote(ctx, firstId, "user-2")
	require.NoError(t, err)
	assert.False(t, deleted)
	deleted, err = mdb.DeleteNote(ctx, firstId, "user-1")
	require.NoError(t, err)
	assert.True(t, deleted)
	deleted, err = mdb.DeleteNote(ctx, firstId, "user-1")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestUsers(t *testing.T) {
	mdb := New()
	ctx := context.Background()

	missing, err := mdb.GetUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, mdb.CreateUser(ctx, &model.User{Id: "user-1", DisplayName: "Ada"}))

	user, err := mdb.GetUser(ctx, "user-1")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "Ada", user.DisplayName)
}

func TestCreateUserUpsertKeepsAdmin(t *testing.T) {
	mdb := New()
	ctx := context.Background()

	require.NoError(t, mdb.CreateUser(ctx, &model.User{Id: "admin-1", DisplayName: "Root", IsAdmin: true}))
	require.NoError(t, mdb.CreateUser(ctx, &model.User{Id: "admin-1", DisplayName: "Root Renamed"}))

	user, err := mdb.GetUser(ctx, "admin-1")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "Root Renamed", user.DisplayName)
	assert.True(t, user.IsAdmin)
}

func TestGetPostByIdReturnsCopy(t *testing.T) {
	mdb := New()
	ctx := context.Background()
	id, err := mdb.CreatePost(ctx, &db2.CreatePost{Title: "Intro", Content: "body", Topic: "calculus"})
	require.NoError(t, err)

	post, err := mdb.GetPostById(ctx, id)
	require.NoError(t, err)
	post.Title = "mutated"

	stored, err := mdb.GetPostById(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Intro", stored.Title)
}
