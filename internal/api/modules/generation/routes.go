package generation

import "github.com/gin-gonic/gin"

// RegisterRoutes registers the generation routes behind auth
func RegisterRoutes(g *gin.RouterGroup, auth gin.HandlerFunc, ctrl *Controller) {
	group := g.Group("/generations")
	group.Use(auth)

	group.POST("", ctrl.Create)   // Generate a repository from a spec
	group.GET("", ctrl.List)      // List recent runs
	group.GET("/:uuid", ctrl.Get) // Get one run
}
