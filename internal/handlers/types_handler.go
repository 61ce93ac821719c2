package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"pgtypegen/internal/generator"
	"pgtypegen/internal/middlewares"
	"pgtypegen/internal/responses"
	"pgtypegen/internal/services"
)

// ServiceFactory builds a pipeline reading the given schema.
type ServiceFactory func(schema string) *services.TypegenService

type TypesHandler struct {
	newService    ServiceFactory
	defaultSchema string
	logger        *slog.Logger
}

func NewTypesHandler(newService ServiceFactory, defaultSchema string, logger *slog.Logger) *TypesHandler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &TypesHandler{
		newService:    newService,
		defaultSchema: defaultSchema,
		logger:        logger,
	}
}

type TypesResponse struct {
	Schema       string `json:"schema"`
	Declarations string `json:"declarations"`
	Enums        int    `json:"enums"`
	Records      int    `json:"records"`
}

func (h *TypesHandler) render(c *gin.Context) (generator.Document, string, bool) {
	schema := c.DefaultQuery("schema", h.defaultSchema)

	doc, err := h.newService(schema).Render(c.Request.Context())
	if err != nil {
		h.logger.Error("render failed",
			slog.String("schema", schema),
			slog.String("request_id", c.GetString(middlewares.RequestIDKey)),
			slog.Any("error", err))
		responses.Error(c, http.StatusInternalServerError, err)
		return generator.Document{}, schema, false
	}
	return doc, schema, true
}

// GetTypes handles GET /api/v1/types
func (h *TypesHandler) GetTypes(c *gin.Context) {
	doc, schema, ok := h.render(c)
	if !ok {
		return
	}

	responses.OK(c, TypesResponse{
		Schema:       schema,
		Declarations: doc.Text,
		Enums:        len(doc.Enums),
		Records:      len(doc.Records),
	})
}

// GetTypesSource handles GET /api/v1/types.ts
func (h *TypesHandler) GetTypesSource(c *gin.Context) {
	doc, _, ok := h.render(c)
	if !ok {
		return
	}

	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(doc.Text))
}
