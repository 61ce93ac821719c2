package routes

import (
	"github.com/gin-gonic/gin"

	"pgtypegen/internal/handlers"
)

type TypesRoutes struct {
	handler *handlers.TypesHandler
}

func NewTypesRoutes(handler *handlers.TypesHandler) *TypesRoutes {
	return &TypesRoutes{handler: handler}
}

func (r *TypesRoutes) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/types", r.handler.GetTypes)
	router.GET("/types.ts", r.handler.GetTypesSource)
}
