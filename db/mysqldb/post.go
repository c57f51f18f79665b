package mysqldb

import (
	"context"
	"fmt"
	"strings"

	"github.com/upper/db/v4"

	db2 "github.com/studyboard/studyboard-be/db"
	"github.com/studyboard/studyboard-be/ledger"
	"github.com/studyboard/studyboard-be/model"
)

type PostDB struct {
	sess db.Session
}

func getPostDB(sess db.Session) *PostDB {
	return &PostDB{sess}
}

// Legacy rows can hold NULL counters or a NULL ledger. Selects coalesce them
// so the model never sees a null; writes coalesce before mutating.
var postColumns = []interface{}{
	"p.id",
	"p.title",
	"p.content",
	"p.topic",
	"p.author_id",
	"p.author_display_name",
	db.Raw("COALESCE(p.author_avatar, '') AS author_avatar"),
	db.Raw("COALESCE(p.upvotes, 0) AS upvotes"),
	db.Raw("COALESCE(p.downvotes, 0) AS downvotes"),
	db.Raw("COALESCE(p.views, 0) AS views"),
	db.Raw("COALESCE(p.comments, '') AS comments"),
	"p.created_at",
	"p.updated_at",
}

func (pdb *PostDB) CreatePost(ctx context.Context, req *db2.CreatePost) (int64, error) {
	res, err := pdb.sess.SQL().
		InsertInto("post").
		Columns("title", "content", "topic", "author_id", "author_display_name",
			"author_avatar", "upvotes", "downvotes", "views", "comments").
		Values(req.Title, req.Content, req.Topic, req.AuthorId, req.AuthorDisplayName,
			req.AuthorAvatar, 0, 0, 0, ledger.Empty).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (pdb *PostDB) GetPostById(ctx context.Context, id int64) (*model.Post, error) {
	var post model.Post
	if err := pdb.sess.SQL().
		Select(postColumns...).
		From("post AS p").
		Where("p.id = ?", id).
		IteratorContext(ctx).
		One(&post); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (pdb *PostDB) GetPostsByTopic(ctx context.Context, topic string) ([]*model.Post, error) {
	var posts []*model.Post
	if err := pdb.sess.SQL().
		Select(postColumns...).
		From("post AS p").
		Where("p.topic = ?", topic).
		OrderBy("p.created_at DESC", "p.id DESC").
		IteratorContext(ctx).
		All(&posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (pdb *PostDB) SearchPosts(ctx context.Context, query string, limit int) ([]*model.Post, error) {
	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"
	var posts []*model.Post
	if err := pdb.sess.SQL().
		Select(postColumns...).
		From("post AS p").
		Where("LOWER(p.title) LIKE ? OR LOWER(p.content) LIKE ? OR LOWER(p.topic) LIKE ? OR LOWER(p.author_display_name) LIKE ?",
			pattern, pattern, pattern, pattern).
		OrderBy("p.created_at DESC", "p.id DESC").
		Limit(limit).
		IteratorContext(ctx).
		All(&posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// escapeLike neutralizes LIKE wildcards so queries match literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(s)
}

func (pdb *PostDB) Vote(ctx context.Context, postId int64, vote model.VoteType) (*db2.VoteCounts, error) {
	column := "upvotes"
	if vote == model.VoteDown {
		column = "downvotes"
	}
	res, err := pdb.sess.SQL().ExecContext(ctx, db.Raw(fmt.Sprintf(`
UPDATE post
	SET %[1]s = COALESCE(%[1]s, 0) + 1, updated_at = NOW()
	WHERE id = ?
`, column), postId))
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, nil
	}

	var counts db2.VoteCounts
	if err := pdb.sess.SQL().
		Select(db.Raw("COALESCE(upvotes, 0) AS upvotes"), db.Raw("COALESCE(downvotes, 0) AS downvotes")).
		From("post").
		Where("id = ?", postId).
		IteratorContext(ctx).
		One(&counts); err != nil {
		return nil, err
	}
	return &counts, nil
}

func (pdb *PostDB) IncrementViews(ctx context.Context, postId int64) (int, error) {
	if _, err := pdb.sess.SQL().ExecContext(ctx, db.Raw(`
UPDATE post
	SET views = COALESCE(views, 0) + 1, updated_at = NOW()
	WHERE id = ?
`, postId)); err != nil {
		return 0, err
	}
	row, err := pdb.sess.SQL().QueryRowContext(ctx, `SELECT COALESCE(views, 0) FROM post WHERE id = ?`, postId)
	if err != nil {
		return 0, err
	}
	var views int
	if err := row.Scan(&views); err != nil {
		return 0, err
	}
	return views, nil
}

func (pdb *PostDB) RepairComments(ctx context.Context, postId int64) error {
	_, err := pdb.sess.SQL().
		Update("post").
		Set("comments = ?, updated_at = NOW()", ledger.Empty).
		Where("id = ?", postId).
		ExecContext(ctx)
	return err
}

func (pdb *PostDB) AppendComment(ctx context.Context, postId int64, commentJSON string) error {
	_, err := pdb.sess.SQL().ExecContext(ctx, db.Raw(`
UPDATE post
	SET comments = JSON_ARRAY_APPEND(COALESCE(comments, '[]'), '$', CAST(? AS JSON)),
		updated_at = NOW()
	WHERE id = ?
`, commentJSON, postId))
	return err
}

func (pdb *PostDB) MigrateLedgers(ctx context.Context) (int64, error) {
	res, err := pdb.sess.SQL().ExecContext(ctx, db.Raw(`
UPDATE post
	SET comments = COALESCE(comments, '[]'),
		views = COALESCE(views, 0),
		upvotes = COALESCE(upvotes, 0),
		downvotes = COALESCE(downvotes, 0)
	WHERE comments IS NULL OR views IS NULL OR upvotes IS NULL OR downvotes IS NULL
`))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
