package model

import (
	"time"
)

// Note is a private study note saved by a user, separate from the public
// topic boards. Tags is decoded from the serialized tags column by the
// storage layer.
type Note struct {
	Id        int64     `db:"id" json:"id"`
	UserId    string    `db:"user_id" json:"userId"`
	Title     string    `db:"title" json:"title"`
	Content   string    `db:"content" json:"content"`
	Role      string    `db:"role" json:"role"`
	Tags      []string  `db:"-" json:"tags"`
	IsPublic  bool      `db:"is_public" json:"isPublic"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
