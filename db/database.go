package db

import (
	"context"
	"database/sql"

	_ "github.com/go-sql-driver/mysql"

	"github.com/studyboard/studyboard-be/model"
)

type Database interface {
	PostDatabase
	NoteDatabase
	UserDatabase
	GetSQLDB() *sql.DB
	Close() error
}

// CreatePost carries the validated input for a new post. The author fields
// are the profile snapshot denormalized onto the record at creation time.
type CreatePost struct {
	Title             string
	Content           string
	Topic             string
	AuthorId          string
	AuthorDisplayName string
	AuthorAvatar      string
}

type VoteCounts struct {
	Upvotes   int `db:"upvotes" json:"upvotes"`
	Downvotes int `db:"downvotes" json:"downvotes"`
}

type PostDatabase interface {
	CreatePost(ctx context.Context, req *CreatePost) (postId int64, err error)
	// GetPostById returns (nil, nil) when no post has the id.
	GetPostById(ctx context.Context, id int64) (*model.Post, error)
	// GetPostsByTopic lists a topic newest first.
	GetPostsByTopic(ctx context.Context, topic string) ([]*model.Post, error)
	// SearchPosts matches query as a case-insensitive substring of title,
	// content, topic, or author display name, newest first.
	SearchPosts(ctx context.Context, query string, limit int) ([]*model.Post, error)
	// Vote bumps one counter by exactly 1 in a single atomic statement,
	// initializing a missing counter to 0 first. Returns (nil, nil) when no
	// post has the id.
	Vote(ctx context.Context, postId int64, vote model.VoteType) (*VoteCounts, error)
	// IncrementViews atomically bumps the view counter and returns its new
	// value.
	IncrementViews(ctx context.Context, postId int64) (views int, err error)
	// RepairComments persists an empty ledger over a missing or corrupt one.
	RepairComments(ctx context.Context, postId int64) error
	// AppendComment pushes one encoded comment onto the stored ledger
	// atomically, so concurrent appends cannot drop each other. The stored
	// ledger must already be well-formed; callers repair it first.
	AppendComment(ctx context.Context, postId int64, commentJSON string) error
	// MigrateLedgers backfills missing comments/views/vote fields across all
	// posts and returns the number of rows updated.
	MigrateLedgers(ctx context.Context) (int64, error)
}

// CreateNote carries the validated input for a new private note.
type CreateNote struct {
	UserId   string
	Title    string
	Content  string
	Role     string
	Tags     []string
	IsPublic bool
}

type NoteDatabase interface {
	CreateNote(ctx context.Context, req *CreateNote) (noteId int64, err error)
	// GetNoteById returns (nil, nil) when no note has the id.
	GetNoteById(ctx context.Context, id int64) (*model.Note, error)
	// GetNotesByUser lists one user's notes newest first.
	GetNotesByUser(ctx context.Context, userId string) ([]*model.Note, error)
	// DeleteNote removes a note only when it belongs to userId. Returns false
	// when nothing was deleted.
	DeleteNote(ctx context.Context, noteId int64, userId string) (deleted bool, err error)
}

type UserDatabase interface {
	// CreateUser inserts the profile for an authenticated account, or
	// refreshes its display name and avatar when one already exists. Admin
	// status is never modified here.
	CreateUser(context.Context, *model.User) error
	// GetUser returns (nil, nil) when the account has no profile yet.
	GetUser(context.Context, string) (*model.User, error)
}
