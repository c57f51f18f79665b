package mysqldb

import (
	"database/sql"

	"github.com/upper/db/v4"
	"github.com/upper/db/v4/adapter/mysql"

	"github.com/studyboard/studyboard-be/config"
	db2 "github.com/studyboard/studyboard-be/db"
)

type MySQLDB struct {
	*PostDB
	*NoteDB
	*UserDB
	sess  db.Session
	sqlDB *sql.DB
}

func GetDatabase(cfg *config.Config) (db2.Database, error) {
	sqlDB, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(50)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxIdleTime(0)

	sess, err := mysql.New(sqlDB)
	if err != nil {
		return nil, err
	}

	return &MySQLDB{
		PostDB: getPostDB(sess),
		NoteDB: getNoteDB(sess),
		UserDB: getUserDB(sess),
		sess:   sess,
		sqlDB:  sqlDB,
	}, nil
}

func (mdb *MySQLDB) GetSQLDB() *sql.DB {
	return mdb.sqlDB
}

func (mdb *MySQLDB) Close() error {
	return mdb.sess.Close()
}
