package app

import (
	"context"
	"strings"

	"github.com/studyboard/studyboard-be/db"
	"github.com/studyboard/studyboard-be/ledger"
	"github.com/studyboard/studyboard-be/model"
)

const (
	SearchLimit = 20

	minQueryLen = 2
)

// PostSummary is the listing shape: the record plus how many comments its
// ledger holds, without the decoded comments themselves.
type PostSummary struct {
	*model.Post
	CommentCount int `json:"commentCount"`
}

// ListTopic lists a board newest first. Any listed post whose ledger is
// missing is repaired as a side effect, mirroring the repair done on the
// single-post read path.
func ListTopic(ctx context.Context, database db.Database, topic string) ([]*PostSummary, error) {
	posts, err := database.GetPostsByTopic(ctx, topic)
	if err != nil {
		return nil, err
	}
	for _, post := range posts {
		if post.RawComments == "" {
			if err := database.RepairComments(ctx, post.Id); err != nil {
				return nil, err
			}
			post.RawComments = ledger.Empty
		}
	}
	return summarize(posts), nil
}

// Search matches query as a case-insensitive substring of title, content,
// topic, or author display name. Queries that trim to fewer than two
// characters return an empty result, not an error.
func Search(ctx context.Context, database db.Database, query string) ([]*PostSummary, error) {
	query = strings.TrimSpace(query)
	if len(query) < minQueryLen {
		return []*PostSummary{}, nil
	}
	posts, err := database.SearchPosts(ctx, query, SearchLimit)
	if err != nil {
		return nil, err
	}
	return summarize(posts), nil
}

func summarize(posts []*model.Post) []*PostSummary {
	summaries := make([]*PostSummary, 0, len(posts))
	for _, post := range posts {
		comments, _ := ledger.Decode(post.RawComments)
		summaries = append(summaries, &PostSummary{
			Post:         post,
			CommentCount: len(comments),
		})
	}
	return summaries
}
