package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/studyboard/studyboard-be/db"
	"github.com/studyboard/studyboard-be/ledger"
	"github.com/studyboard/studyboard-be/model"
	"github.com/studyboard/studyboard-be/util"
)

var (
	// ErrNotFound reports that the referenced record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrValidation reports missing or malformed caller input.
	ErrValidation = errors.New("invalid input")
)

// CreatePost validates and stores a new post. The author's display name and
// avatar are snapshotted onto the record and never updated afterwards.
func CreatePost(ctx context.Context, database db.Database, author *model.User, title, content, topic string) (*model.Post, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" || content == "" || topic == "" {
		return nil, fmt.Errorf("%w: title, content, and topic are required", ErrValidation)
	}
	if !model.IsTopic(topic) {
		return nil, fmt.Errorf("%w: unknown topic %q", ErrValidation, topic)
	}

	avatar := author.Avatar
	if avatar == "" {
		avatar = util.Avatar(author.Id)
	}
	id, err := database.CreatePost(ctx, &db.CreatePost{
		Title:             util.XSSSanitize(title),
		Content:           util.XSSSanitize(content),
		Topic:             topic,
		AuthorId:          author.Id,
		AuthorDisplayName: author.DisplayName,
		AuthorAvatar:      avatar,
	})
	if err != nil {
		return nil, err
	}
	return database.GetPostById(ctx, id)
}

// RecordView returns the hydrated post and bumps its view counter. A ledger
// that fails to decode is repaired, and the repair persisted, before the view
// increment: once a post has been viewed, its stored ledger is well-formed.
func RecordView(ctx context.Context, database db.Database, id int64) (*model.HydratedPost, error) {
	post, err := database.GetPostById(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}

	comments, needsRepair := ledger.Decode(post.RawComments)
	if needsRepair {
		if err := database.RepairComments(ctx, id); err != nil {
			return nil, err
		}
		post.RawComments = ledger.Empty
	}

	views, err := database.IncrementViews(ctx, id)
	if err != nil {
		return nil, err
	}
	post.Views = views

	return &model.HydratedPost{
		Post:         post,
		Comments:     comments,
		CommentCount: len(comments),
	}, nil
}

type VoteResult struct {
	Upvotes   int `json:"upvotes"`
	Downvotes int `json:"downvotes"`
	Score     int `json:"score"`
}

// Vote applies a single vote of the given polarity. Votes only ever increment
// the selected counter; there is no per-user vote tracking, so repeat votes
// from the same caller all count.
func Vote(ctx context.Context, database db.Database, postId int64, vote model.VoteType) (*VoteResult, error) {
	if !vote.IsValid() {
		return nil, fmt.Errorf("%w: vote type must be %q or %q", ErrValidation, model.VoteUp, model.VoteDown)
	}
	counts, err := database.Vote(ctx, postId, vote)
	if err != nil {
		return nil, err
	}
	if counts == nil {
		return nil, ErrNotFound
	}
	return &VoteResult{
		Upvotes:   counts.Upvotes,
		Downvotes: counts.Downvotes,
		Score:     counts.Upvotes - counts.Downvotes,
	}, nil
}

type CommentResult struct {
	Comment       *model.Comment `json:"comment"`
	TotalComments int            `json:"totalComments"`
}

// AddComment appends a reply to the end of the post's ledger. The ledger is
// decoded (and repaired if corrupt) before the append; the append itself is a
// single atomic push at the storage layer.
func AddComment(ctx context.Context, database db.Database, author *model.User, postId int64, content string) (*CommentResult, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: content is required", ErrValidation)
	}
	post, err := database.GetPostById(ctx, postId)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}

	comments, needsRepair := ledger.Decode(post.RawComments)
	if needsRepair {
		if err := database.RepairComments(ctx, postId); err != nil {
			return nil, err
		}
	}

	comment := ledger.NewComment(author, util.XSSSanitize(content))
	encoded, err := json.Marshal(comment)
	if err != nil {
		return nil, err
	}
	if err := database.AppendComment(ctx, postId, string(encoded)); err != nil {
		return nil, err
	}
	return &CommentResult{
		Comment:       comment,
		TotalComments: len(comments) + 1,
	}, nil
}
