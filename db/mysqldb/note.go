package mysqldb

import (
	"context"
	"encoding/json"
	"time"

	"github.com/upper/db/v4"

	db2 "github.com/studyboard/studyboard-be/db"
	"github.com/studyboard/studyboard-be/model"
)

type NoteDB struct {
	sess db.Session
}

func getNoteDB(sess db.Session) *NoteDB {
	return &NoteDB{sess}
}

var noteColumns = []interface{}{
	"n.id",
	"n.user_id",
	"n.title",
	"n.content",
	"n.role",
	db.Raw("COALESCE(n.tags, '[]') AS tags"),
	"n.is_public",
	"n.created_at",
	"n.updated_at",
}

// noteRow carries the serialized tags column; model.Note exposes the decoded
// slice.
type noteRow struct {
	Id        int64     `db:"id"`
	UserId    string    `db:"user_id"`
	Title     string    `db:"title"`
	Content   string    `db:"content"`
	Role      string    `db:"role"`
	Tags      string    `db:"tags"`
	IsPublic  bool      `db:"is_public"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r *noteRow) toModel() *model.Note {
	var tags []string
	if err := json.Unmarshal([]byte(r.Tags), &tags); err != nil || tags == nil {
		tags = []string{}
	}
	return &model.Note{
		Id:        r.Id,
		UserId:    r.UserId,
		Title:     r.Title,
		Content:   r.Content,
		Role:      r.Role,
		Tags:      tags,
		IsPublic:  r.IsPublic,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func (ndb *NoteDB) CreateNote(ctx context.Context, req *db2.CreateNote) (int64, error) {
	tags, err := json.Marshal(req.Tags)
	if err != nil {
		return 0, err
	}
	res, err := ndb.sess.SQL().
		InsertInto("note").
		Columns("user_id", "title", "content", "role", "tags", "is_public").
		Values(req.UserId, req.Title, req.Content, req.Role, string(tags), req.IsPublic).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (ndb *NoteDB) GetNoteById(ctx context.Context, id int64) (*model.Note, error) {
	var row noteRow
	if err := ndb.sess.SQL().
		Select(noteColumns...).
		From("note AS n").
		Where("n.id = ?", id).
		IteratorContext(ctx).
		One(&row); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return row.toModel(), nil
}

func (ndb *NoteDB) GetNotesByUser(ctx context.Context, userId string) ([]*model.Note, error) {
	var rows []*noteRow
	if err := ndb.sess.SQL().
		Select(noteColumns...).
		From("note AS n").
		Where("n.user_id = ?", userId).
		OrderBy("n.created_at DESC", "n.id DESC").
		IteratorContext(ctx).
		All(&rows); err != nil {
		return nil, err
	}
	notes := make([]*model.Note, 0, len(rows))
	for _, row := range rows {
		notes = append(notes, row.toModel())
	}
	return notes, nil
}

func (ndb *NoteDB) DeleteNote(ctx context.Context, noteId int64, userId string) (bool, error) {
	res, err := ndb.sess.SQL().
		DeleteFrom("note").
		Where("id = ? AND user_id = ?", noteId, userId).
		ExecContext(ctx)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
