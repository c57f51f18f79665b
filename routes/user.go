package routes

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/studyboard/studyboard-be/db"
	"github.com/studyboard/studyboard-be/middleware"
	"github.com/studyboard/studyboard-be/model"
	"github.com/studyboard/studyboard-be/util"
)

type userRoutes struct {
	db db.UserDatabase
}

func AddUserRoutes(group *gin.RouterGroup, database db.UserDatabase, verifier middleware.TokenVerifier) {
	routes := userRoutes{database}
	users := group.Group("/users", middleware.Auth(database, verifier, &middleware.AuthConfig{
		ProfileNotRequired: true,
	}))
	users.PUT("", util.HandlerWrapper(routes.createUser, &util.HandlerOpts{}))
	users.GET("/me", util.HandlerWrapper(routes.getMe, &util.HandlerOpts{}))
}

type createUserReq struct {
	DisplayName string `json:"displayName"`
}

func (ur *userRoutes) createUser(c *gin.Context) (interface{}, *util.HTTPError) {
	var req createUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	if strings.TrimSpace(req.DisplayName) == "" {
		return nil, &util.HTTPError{
			Status:  http.StatusBadRequest,
			Message: "display name is required",
		}
	}
	uid := middleware.GetToken(c).UID
	user := &model.User{
		Id:          uid,
		DisplayName: strings.TrimSpace(req.DisplayName),
		Avatar:      util.Avatar(uid),
	}
	if err := ur.db.CreateUser(c, user); err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return user, nil
}

func (ur *userRoutes) getMe(c *gin.Context) (interface{}, *util.HTTPError) {
	user, err := ur.db.GetUser(c, middleware.GetToken(c).UID)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if user == nil {
		return nil, &util.HTTPError{
			Status:  http.StatusNotFound,
			Message: "no user profile",
		}
	}
	return user, nil
}
