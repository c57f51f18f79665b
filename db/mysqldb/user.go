package mysqldb

import (
	"context"

	"github.com/upper/db/v4"

	"github.com/studyboard/studyboard-be/model"
)

type UserDB struct {
	sess db.Session
}

func getUserDB(sess db.Session) *UserDB {
	return &UserDB{sess}
}

// CreateUser is an upsert: repeating PUT /users refreshes the display name
// and avatar instead of tripping the unique key. is_admin is left alone.
func (udb *UserDB) CreateUser(ctx context.Context, user *model.User) error {
	_, err := udb.sess.SQL().ExecContext(ctx, db.Raw(`
INSERT INTO person (firebase_id, display_name, is_admin, avatar)
	VALUES (?, ?, ?, ?)
	ON DUPLICATE KEY UPDATE display_name = VALUES(display_name), avatar = VALUES(avatar)
`, user.Id, user.DisplayName, user.IsAdmin, user.Avatar))
	return err
}

func (udb *UserDB) GetUser(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := udb.sess.SQL().
		Select("*").
		From("person").
		Where("firebase_id = ?", id).
		IteratorContext(ctx).
		One(&user); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}
