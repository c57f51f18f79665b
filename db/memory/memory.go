package memory

import (
	"context"
	"database/sql"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	db2 "github.com/studyboard/studyboard-be/db"
	"github.com/studyboard/studyboard-be/ledger"
	"github.com/studyboard/studyboard-be/model"
)

// MemoryDB is an in-memory db.Database used by tests and local runs without
// MySQL. Every mutation holds the write lock for its whole read-modify-write
// cycle, which matches the atomicity the MySQL implementation gets from
// single-statement updates.
type MemoryDB struct {
	mu         sync.RWMutex
	nextId     int64
	nextNoteId int64
	posts      map[int64]*model.Post
	notes      map[int64]*model.Note
	users      map[string]*model.User
}

func New() *MemoryDB {
	return &MemoryDB{
		nextId:     1,
		nextNoteId: 1,
		posts:      make(map[int64]*model.Post),
		notes:      make(map[int64]*model.Note),
		users:      make(map[string]*model.User),
	}
}

func (mdb *MemoryDB) GetSQLDB() *sql.DB {
	return nil
}

func (mdb *MemoryDB) Close() error {
	return nil
}

func (mdb *MemoryDB) CreatePost(ctx context.Context, req *db2.CreatePost) (int64, error) {
	mdb.mu.Lock()
	defer mdb.mu.Unlock()

	now := time.Now().UTC()
	post := &model.Post{
		Id:                mdb.nextId,
		Title:             req.Title,
		Content:           req.Content,
		Topic:             req.Topic,
		AuthorId:          req.AuthorId,
		AuthorDisplayName: req.AuthorDisplayName,
		AuthorAvatar:      req.AuthorAvatar,
		RawComments:       ledger.Empty,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	mdb.nextId++
	mdb.posts[post.Id] = post
	return post.Id, nil
}

func (mdb *MemoryDB) GetPostById(ctx context.Context, id int64) (*model.Post, error) {
	mdb.mu.RLock()
	defer mdb.mu.RUnlock()

	post, ok := mdb.posts[id]
	if !ok {
		return nil, nil
	}
	clone := *post
	return &clone, nil
}

func (mdb *MemoryDB) GetPostsByTopic(ctx context.Context, topic string) ([]*model.Post, error) {
	mdb.mu.RLock()
	defer mdb.mu.RUnlock()

	posts := make([]*model.Post, 0)
	for _, post := range mdb.posts {
		if post.Topic == topic {
			clone := *post
			posts = append(posts, &clone)
		}
	}
	sortNewestFirst(posts)
	return posts, nil
}

func (mdb *MemoryDB) SearchPosts(ctx context.Context, query string, limit int) ([]*model.Post, error) {
	mdb.mu.RLock()
	defer mdb.mu.RUnlock()

	needle := strings.ToLower(query)
	posts := make([]*model.Post, 0)
	for _, post := range mdb.posts {
		if matches(post, needle) {
			clone := *post
			posts = append(posts, &clone)
		}
	}
	sortNewestFirst(posts)
	if len(posts) > limit {
		posts = posts[:limit]
	}
	return posts, nil
}

func matches(post *model.Post, needle string) bool {
	for _, field := range []string{post.Title, post.Content, post.Topic, post.AuthorDisplayName} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func sortNewestFirst(posts []*model.Post) {
	sort.Slice(posts, func(i, j int) bool {
		if posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].Id > posts[j].Id
		}
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
}

func (mdb *MemoryDB) Vote(ctx context.Context, postId int64, vote model.VoteType) (*db2.VoteCounts, error) {
	mdb.mu.Lock()
	defer mdb.mu.Unlock()

	post, ok := mdb.posts[postId]
	if !ok {
		return nil, nil
	}
	if vote == model.VoteDown {
		post.Downvotes++
	} else {
		post.Upvotes++
	}
	post.UpdatedAt = time.Now().UTC()
	return &db2.VoteCounts{Upvotes: post.Upvotes, Downvotes: post.Downvotes}, nil
}

func (mdb *MemoryDB) IncrementViews(ctx context.Context, postId int64) (int, error) {
	mdb.mu.Lock()
	defer mdb.mu.Unlock()

	post, ok := mdb.posts[postId]
	if !ok {
		return 0, nil
	}
	post.Views++
	post.UpdatedAt = time.Now().UTC()
	return post.Views, nil
}

func (mdb *MemoryDB) RepairComments(ctx context.Context, postId int64) error {
	mdb.mu.Lock()
	defer mdb.mu.Unlock()

	post, ok := mdb.posts[postId]
	if !ok {
		return nil
	}
	post.RawComments = ledger.Empty
	post.UpdatedAt = time.Now().UTC()
	return nil
}

func (mdb *MemoryDB) AppendComment(ctx context.Context, postId int64, commentJSON string) error {
	mdb.mu.Lock()
	defer mdb.mu.Unlock()

	post, ok := mdb.posts[postId]
	if !ok {
		return nil
	}
	var comment model.Comment
	if err := json.Unmarshal([]byte(commentJSON), &comment); err != nil {
		return err
	}
	raw, _, err := ledger.Append(post.RawComments, &comment)
	if err != nil {
		return err
	}
	post.RawComments = raw
	post.UpdatedAt = time.Now().UTC()
	return nil
}

func (mdb *MemoryDB) MigrateLedgers(ctx context.Context) (int64, error) {
	mdb.mu.Lock()
	defer mdb.mu.Unlock()

	var updated int64
	for _, post := range mdb.posts {
		if post.RawComments == "" {
			post.RawComments = ledger.Empty
			updated++
		}
	}
	return updated, nil
}

func (mdb *MemoryDB) CreateNote(ctx context.Context, req *db2.CreateNote) (int64, error) {
	mdb.mu.Lock()
	defer mdb.mu.Unlock()

	now := time.Now().UTC()
	note := &model.Note{
		Id:        mdb.nextNoteId,
		UserId:    req.UserId,
		Title:     req.Title,
		Content:   req.Content,
		Role:      req.Role,
		Tags:      append([]string{}, req.Tags...),
		IsPublic:  req.IsPublic,
		CreatedAt: now,
		UpdatedAt: now,
	}
	mdb.nextNoteId++
	mdb.notes[note.Id] = note
	return note.Id, nil
}

func (mdb *MemoryDB) GetNoteById(ctx context.Context, id int64) (*model.Note, error) {
	mdb.mu.RLock()
	defer mdb.mu.RUnlock()

	note, ok := mdb.notes[id]
	if !ok {
		return nil, nil
	}
	return cloneNote(note), nil
}

func (mdb *MemoryDB) GetNotesByUser(ctx context.Context, userId string) ([]*model.Note, error) {
	mdb.mu.RLock()
	defer mdb.mu.RUnlock()

	notes := make([]*model.Note, 0)
	for _, note := range mdb.notes {
		if note.UserId == userId {
			notes = append(notes, cloneNote(note))
		}
	}
	sort.Slice(notes, func(i, j int) bool {
		if notes[i].CreatedAt.Equal(notes[j].CreatedAt) {
			return notes[i].Id > notes[j].Id
		}
		return notes[i].CreatedAt.After(notes[j].CreatedAt)
	})
	return notes, nil
}

func (mdb *MemoryDB) DeleteNote(ctx context.Context, noteId int64, userId string) (bool, error) {
	mdb.mu.Lock()
	defer mdb.mu.Unlock()

	note, ok := mdb.notes[noteId]
	if !ok || note.UserId != userId {
		return false, nil
	}
	delete(mdb.notes, noteId)
	return true, nil
}

func cloneNote(note *model.Note) *model.Note {
	clone := *note
	clone.Tags = append([]string{}, note.Tags...)
	return &clone
}

func (mdb *MemoryDB) CreateUser(ctx context.Context, user *model.User) error {
	mdb.mu.Lock()
	defer mdb.mu.Unlock()

	clone := *user
	// re-creating an existing profile refreshes it but never touches admin
	// status, same as the SQL upsert
	if existing, ok := mdb.users[user.Id]; ok {
		clone.IsAdmin = existing.IsAdmin
	}
	mdb.users[user.Id] = &clone
	return nil
}

func (mdb *MemoryDB) GetUser(ctx context.Context, id string) (*model.User, error) {
	mdb.mu.RLock()
	defer mdb.mu.RUnlock()

	user, ok := mdb.users[id]
	if !ok {
		return nil, nil
	}
	clone := *user
	return &clone, nil
}

// SeedPost inserts a fully specified record, legacy quirks included. Test
// helper only.
func (mdb *MemoryDB) SeedPost(post *model.Post) int64 {
	mdb.mu.Lock()
	defer mdb.mu.Unlock()

	if post.Id == 0 {
		post.Id = mdb.nextId
		mdb.nextId++
	} else if post.Id >= mdb.nextId {
		mdb.nextId = post.Id + 1
	}
	clone := *post
	mdb.posts[post.Id] = &clone
	return post.Id
}
