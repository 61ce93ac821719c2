package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pgtypegen/internal/handlers"
)

func RegisterRoutes(router *gin.Engine, typesHandler *handlers.TypesHandler) {
	api := router.Group("/api/v1")

	typesRoutes := NewTypesRoutes(typesHandler)
	typesRoutes.RegisterRoutes(api)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})
}
