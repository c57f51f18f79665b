package model

import (
	"time"
)

type VoteType string

const (
	VoteUp   VoteType = "upvote"
	VoteDown VoteType = "downvote"
)

func (vt VoteType) IsValid() bool {
	return vt == VoteUp || vt == VoteDown
}

// Post is a community-visible note published into a topic board. The author
// fields are a snapshot taken at creation time and never re-joined against the
// person table. RawComments holds the serialized comment ledger exactly as
// stored; use the ledger package to decode it.
type Post struct {
	Id                int64     `db:"id" json:"id"`
	Title             string    `db:"title" json:"title"`
	Content           string    `db:"content" json:"content"`
	Topic             string    `db:"topic" json:"topic"`
	AuthorId          string    `db:"author_id" json:"authorId"`
	AuthorDisplayName string    `db:"author_display_name" json:"authorDisplayName"`
	AuthorAvatar      string    `db:"author_avatar" json:"authorAvatar,omitempty"`
	Upvotes           int       `db:"upvotes" json:"upvotes"`
	Downvotes         int       `db:"downvotes" json:"downvotes"`
	Views             int       `db:"views" json:"views"`
	RawComments       string    `db:"comments" json:"-"`
	CreatedAt         time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt         time.Time `db:"updated_at" json:"updatedAt"`
}

// Score is derived, never stored.
func (p *Post) Score() int {
	return p.Upvotes - p.Downvotes
}

// Comment is one reply inside a post's ledger. Comments have no identity
// outside their parent post. The vote counters exist for future per-comment
// voting and are only ever initialized to zero here.
type Comment struct {
	Id                string    `json:"id"`
	AuthorId          string    `json:"authorId"`
	AuthorDisplayName string    `json:"authorDisplayName"`
	AuthorAvatar      string    `json:"authorAvatar,omitempty"`
	Content           string    `json:"content"`
	Upvotes           int       `json:"upvotes"`
	Downvotes         int       `json:"downvotes"`
	CreatedAt         time.Time `json:"createdAt"`
}

// HydratedPost is the single-post read shape: the record plus its decoded
// ledger.
type HydratedPost struct {
	*Post
	Comments     []*Comment `json:"comments"`
	CommentCount int        `json:"commentCount"`
}
