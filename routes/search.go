package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/studyboard/studyboard-be/app"
	"github.com/studyboard/studyboard-be/db"
	"github.com/studyboard/studyboard-be/util"
)

type searchRoutes struct {
	db db.Database
}

func AddSearchRoutes(group *gin.RouterGroup, database db.Database) {
	routes := searchRoutes{database}
	group.GET("/search", util.HandlerWrapper(routes.search, &util.HandlerOpts{}))
}

func (sr *searchRoutes) search(c *gin.Context) (interface{}, *util.HTTPError) {
	posts, err := app.Search(c, sr.db, c.Query("q"))
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return posts, nil
}
