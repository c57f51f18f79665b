package routes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studyboard/studyboard-be/app"
	"github.com/studyboard/studyboard-be/db"
	"github.com/studyboard/studyboard-be/middleware"
	"github.com/studyboard/studyboard-be/util"
)

type noteRoutes struct {
	db db.Database
}

func AddNoteRoutes(group *gin.RouterGroup, database db.Database, verifier middleware.TokenVerifier) {
	routes := noteRoutes{database}
	notes := group.Group("/notes", middleware.Auth(database, verifier, &middleware.AuthConfig{}))
	notes.GET("", util.HandlerWrapper(routes.listNotes, &util.HandlerOpts{}))
	notes.POST("", util.HandlerWrapper(routes.createNote, &util.HandlerOpts{
		SuccessStatus: http.StatusCreated,
	}))
	notes.DELETE("/:id", util.HandlerWrapper(routes.deleteNote, &util.HandlerOpts{}))
}

func buildNoteHTTPErr(err error) *util.HTTPError {
	switch {
	case errors.Is(err, app.ErrValidation):
		return &util.HTTPError{
			Status:  http.StatusBadRequest,
			Message: err.Error(),
		}
	case errors.Is(err, app.ErrNotFound):
		return &util.HTTPError{
			Status:  http.StatusNotFound,
			Message: "note not found",
		}
	default:
		return util.BuildDbHTTPErr(err)
	}
}

type createNoteReq struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Role     string   `json:"role"`
	Tags     []string `json:"tags"`
	IsPublic bool     `json:"isPublic"`
}

func (nr *noteRoutes) createNote(c *gin.Context) (interface{}, *util.HTTPError) {
	var req createNoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	note, err := app.CreateNote(c, nr.db, middleware.MustGetUser(c), req.Title, req.Content, req.Role, req.Tags, req.IsPublic)
	if err != nil {
		return nil, buildNoteHTTPErr(err)
	}
	return note, nil
}

func (nr *noteRoutes) listNotes(c *gin.Context) (interface{}, *util.HTTPError) {
	notes, err := app.ListNotes(c, nr.db, middleware.MustGetUser(c).Id)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return notes, nil
}

func (nr *noteRoutes) deleteNote(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	if err := app.DeleteNote(c, nr.db, middleware.MustGetUser(c).Id, id); err != nil {
		return nil, buildNoteHTTPErr(err)
	}
	return gin.H{
		"deleted": true,
	}, nil
}
