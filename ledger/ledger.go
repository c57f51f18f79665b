package ledger

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/studyboard/studyboard-be/model"
)

// Empty is the serialized form of a ledger with no comments.
const Empty = "[]"

// Decode parses a stored comment ledger. A missing, empty, or unparseable
// ledger decodes to an empty list with needsRepair set instead of an error:
// a corrupted ledger must never block reading or writing its post. Callers
// that see needsRepair are expected to persist the repaired (empty) ledger.
func Decode(raw string) (comments []*model.Comment, needsRepair bool) {
	if raw == "" {
		return []*model.Comment{}, true
	}
	if err := json.Unmarshal([]byte(raw), &comments); err != nil || comments == nil {
		return []*model.Comment{}, true
	}
	return comments, false
}

// Encode serializes a ledger back to its stored form. Decode(Encode(c)) == c
// for any well-formed c.
func Encode(comments []*model.Comment) (string, error) {
	raw, err := json.Marshal(comments)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// NewComment builds the comment appended for a reply by the given user. The
// author fields are snapshotted from the profile at append time.
func NewComment(author *model.User, content string) *model.Comment {
	return &model.Comment{
		Id:                uuid.NewString(),
		AuthorId:          author.Id,
		AuthorDisplayName: author.DisplayName,
		AuthorAvatar:      author.Avatar,
		Content:           strings.TrimSpace(content),
		Upvotes:           0,
		Downvotes:         0,
		CreatedAt:         time.Now().UTC(),
	}
}

// Append decodes raw (repairing it if needed), appends comment, and
// re-encodes. The ledger is insertion-ordered and append-only.
func Append(raw string, comment *model.Comment) (newRaw string, total int, err error) {
	comments, _ := Decode(raw)
	comments = append(comments, comment)
	newRaw, err = Encode(comments)
	if err != nil {
		return "", 0, err
	}
	return newRaw, len(comments), nil
}
