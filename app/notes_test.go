package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyboard/studyboard-be/db/memory"
	"github.com/studyboard/studyboard-be/model"
)

func TestCreateNote(t *testing.T) {
	mdb := memory.New()
	ctx := context.Background()

	note, err := CreateNote(ctx, mdb, author, "  Limits  ", "epsilon-delta", "Math", []string{"calculus"}, true)
	require.NoError(t, err)
	require.NotNil(t, note)
	assert.Equal(t, "Limits", note.Title)
	assert.Equal(t, "epsilon-delta", note.Content)
	assert.Equal(t, "Math", note.Role)
	assert.Equal(t, []string{"calculus"}, note.Tags)
	assert.True(t, note.IsPublic)
	assert.Equal(t, author.Id, note.UserId)
	assert.WithinDuration(t, time.Now(), note.CreatedAt, time.Minute)
}

func TestCreateNoteDefaults(t *testing.T) {
	mdb := memory.New()
	note, err := CreateNote(context.Background(), mdb, author, "Limits", "body", "", nil, false)
	require.NoError(t, err)
	assert.Equal(t, "General", note.Role)
	assert.NotNil(t, note.Tags)
	assert.Empty(t, note.Tags)
	assert.False(t, note.IsPublic)
}

func TestCreateNoteValidation(t *testing.T) {
	mdb := memory.New()
	ctx := context.Background()

	for name, input := range map[string][2]string{
		"empty title":   {"", "body"},
		"blank title":   {"   ", "body"},
		"empty content": {"Limits", ""},
		"blank content": {"Limits", "  "},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := CreateNote(ctx, mdb, author, input[0], input[1], "", nil, false)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestListNotesNewestFirstAndScoped(t *testing.T) {
	mdb := memory.New()
	ctx := context.Background()
	other := &model.User{Id: "user-2", DisplayName: "Grace"}

	first, err := CreateNote(ctx, mdb, author, "First", "body", "", nil, false)
	require.NoError(t, err)
	second, err := CreateNote(ctx, mdb, author, "Second", "body", "", nil, false)
	require.NoError(t, err)
	_, err = CreateNote(ctx, mdb, other, "Theirs", "body", "", nil, false)
	require.NoError(t, err)

	notes, err := ListNotes(ctx, mdb, author.Id)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, second.Id, notes[0].Id)
	assert.Equal(t, first.Id, notes[1].Id)
}

func TestDeleteNote(t *testing.T) {
	mdb := memory.New()
	ctx := context.Background()

	note, err := CreateNote(ctx, mdb, author, "Limits", "body", "", nil, false)
	require.NoError(t, err)

	// someone else's delete must not remove it
	assert.ErrorIs(t, DeleteNote(ctx, mdb, "user-2", note.Id), ErrNotFound)
	notes, err := ListNotes(ctx, mdb, author.Id)
	require.NoError(t, err)
	assert.Len(t, notes, 1)

	require.NoError(t, DeleteNote(ctx, mdb, author.Id, note.Id))
	notes, err = ListNotes(ctx, mdb, author.Id)
	require.NoError(t, err)
	assert.Empty(t, notes)

	assert.ErrorIs(t, DeleteNote(ctx, mdb, author.Id, note.Id), ErrNotFound)
}
