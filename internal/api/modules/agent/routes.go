package agent

import "github.com/gin-gonic/gin"

// RegisterRoutes registers the agent routes behind auth
func RegisterRoutes(g *gin.RouterGroup, auth gin.HandlerFunc, ctrl *Controller) {
	group := g.Group("/agents")
	group.Use(auth)

	group.GET("", ctrl.List)         // List agent ids
	group.POST("/:id/run", ctrl.Run) // Run one agent turn
}
