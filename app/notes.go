package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/studyboard/studyboard-be/db"
	"github.com/studyboard/studyboard-be/model"
	"github.com/studyboard/studyboard-be/util"
)

const defaultNoteRole = "General"

// CreateNote stores a private note for the author. Role defaults to
// "General" and tags to an empty list when omitted.
func CreateNote(ctx context.Context, database db.Database, author *model.User, title, content, role string, tags []string, isPublic bool) (*model.Note, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" || content == "" {
		return nil, fmt.Errorf("%w: title and content are required", ErrValidation)
	}
	role = strings.TrimSpace(role)
	if role == "" {
		role = defaultNoteRole
	}
	if tags == nil {
		tags = []string{}
	}
	id, err := database.CreateNote(ctx, &db.CreateNote{
		UserId:   author.Id,
		Title:    util.XSSSanitize(title),
		Content:  util.XSSSanitize(content),
		Role:     role,
		Tags:     tags,
		IsPublic: isPublic,
	})
	if err != nil {
		return nil, err
	}
	return database.GetNoteById(ctx, id)
}

// ListNotes returns the caller's notes newest first.
func ListNotes(ctx context.Context, database db.Database, userId string) ([]*model.Note, error) {
	return database.GetNotesByUser(ctx, userId)
}

// DeleteNote removes one of the caller's notes. A note owned by someone else
// is indistinguishable from a missing one.
func DeleteNote(ctx context.Context, database db.Database, userId string, noteId int64) error {
	deleted, err := database.DeleteNote(ctx, noteId, userId)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}
