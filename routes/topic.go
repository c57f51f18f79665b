package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/studyboard/studyboard-be/model"
	"github.com/studyboard/studyboard-be/util"
)

// AddTopicRoutes serves the fixed board registry so clients don't hardcode it.
func AddTopicRoutes(group *gin.RouterGroup) {
	group.GET("/topics", util.HandlerWrapper(listTopics, &util.HandlerOpts{}))
}

func listTopics(c *gin.Context) (interface{}, *util.HTTPError) {
	return model.Topics, nil
}
