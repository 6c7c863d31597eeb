package health

import (
	"github.com/ethanbaker/repogen/pkg/sdk"
	"github.com/gin-gonic/gin"
)

// getStatus reports that the server is up
func getStatus(c *gin.Context) {
	c.JSON(sdk.NewSuccessResponse[any]("OK", nil).AsGinResponse())
}
