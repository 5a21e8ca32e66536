package handlers

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// docsPath is where the interactive API reference is served.
const docsPath = "/docs/*any"

// RegisterSwagger mounts the Swagger UI for the admin API.
func RegisterSwagger(r *gin.Engine) {
	r.GET(docsPath, ginSwagger.WrapHandler(swaggerFiles.Handler))
}
