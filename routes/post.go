package routes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studyboard/studyboard-be/app"
	"github.com/studyboard/studyboard-be/db"
	"github.com/studyboard/studyboard-be/middleware"
	"github.com/studyboard/studyboard-be/model"
	"github.com/studyboard/studyboard-be/util"
)

type postRoutes struct {
	db db.Database
}

func AddPostRoutes(group *gin.RouterGroup, database db.Database, verifier middleware.TokenVerifier) {
	routes := postRoutes{database}
	posts := group.Group("/posts")
	posts.GET("", util.HandlerWrapper(routes.listByTopic, &util.HandlerOpts{}))
	posts.GET("/:id", util.HandlerWrapper(routes.getPostById, &util.HandlerOpts{}))

	// votes only need a session; creating and commenting snapshot the profile
	session := posts.Group("", middleware.Auth(database, verifier, &middleware.AuthConfig{
		ProfileNotRequired: true,
	}))
	session.POST("/vote", util.HandlerWrapper(routes.vote, &util.HandlerOpts{}))

	authed := posts.Group("", middleware.Auth(database, verifier, &middleware.AuthConfig{}))
	authed.POST("", util.HandlerWrapper(routes.createPost, &util.HandlerOpts{
		SuccessStatus: http.StatusCreated,
	}))
	authed.POST("/comment", util.HandlerWrapper(routes.addComment, &util.HandlerOpts{}))
	authed.POST("/migrate", util.HandlerWrapper(routes.migrate, &util.HandlerOpts{}))
}

func buildAppHTTPErr(err error) *util.HTTPError {
	switch {
	case errors.Is(err, app.ErrValidation):
		return &util.HTTPError{
			Status:  http.StatusBadRequest,
			Message: err.Error(),
		}
	case errors.Is(err, app.ErrNotFound):
		return &util.PostNotFoundHTTPErr
	default:
		return util.BuildDbHTTPErr(err)
	}
}

type createPostReq struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Topic   string `json:"topic"`
}

func (pr *postRoutes) createPost(c *gin.Context) (interface{}, *util.HTTPError) {
	var req createPostReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	post, err := app.CreatePost(c, pr.db, middleware.MustGetUser(c), req.Title, req.Content, req.Topic)
	if err != nil {
		return nil, buildAppHTTPErr(err)
	}
	return post, nil
}

func (pr *postRoutes) listByTopic(c *gin.Context) (interface{}, *util.HTTPError) {
	topic := c.Query("topic")
	if topic == "" {
		return nil, &util.HTTPError{
			Status:  http.StatusBadRequest,
			Message: "topic is required",
		}
	}
	posts, err := app.ListTopic(c, pr.db, topic)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return posts, nil
}

func (pr *postRoutes) getPostById(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	post, err := app.RecordView(c, pr.db, id)
	if err != nil {
		return nil, buildAppHTTPErr(err)
	}
	return post, nil
}

type voteReq struct {
	PostId   int64          `json:"postId"`
	VoteType model.VoteType `json:"voteType"`
}

func (pr *postRoutes) vote(c *gin.Context) (interface{}, *util.HTTPError) {
	var req voteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	result, err := app.Vote(c, pr.db, req.PostId, req.VoteType)
	if err != nil {
		return nil, buildAppHTTPErr(err)
	}
	return result, nil
}

type addCommentReq struct {
	PostId  int64  `json:"postId"`
	Content string `json:"content"`
}

func (pr *postRoutes) addComment(c *gin.Context) (interface{}, *util.HTTPError) {
	var req addCommentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	result, err := app.AddComment(c, pr.db, middleware.MustGetUser(c), req.PostId, req.Content)
	if err != nil {
		return nil, buildAppHTTPErr(err)
	}
	return result, nil
}

// migrate backfills missing ledger and counter fields in one shot, so the
// repair-on-read paths have nothing left to fix on old data.
func (pr *postRoutes) migrate(c *gin.Context) (interface{}, *util.HTTPError) {
	if !middleware.MustGetUser(c).IsAdmin {
		return nil, &util.HTTPError{
			Status:  http.StatusForbidden,
			Message: "admin only",
		}
	}
	updated, err := pr.db.MigrateLedgers(c)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return gin.H{
		"updatedCount": updated,
	}, nil
}
