package handler

import (
	_ "embed"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
	"gopkg.in/yaml.v3"
)

//go:embed openapi.yaml
var openAPISource []byte

const openAPIPath = "/openapi.json"

// DocsHandler serves the API description and a Swagger UI over it.
type DocsHandler struct {
	document map[string]interface{}
}

// NewDocsHandler parses the embedded OpenAPI document once.
func NewDocsHandler() (*DocsHandler, error) {
	var doc map[string]interface{}
	if err := yaml.Unmarshal(openAPISource, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse openapi document: %w", err)
	}
	return &DocsHandler{document: doc}, nil
}

// RegisterRoutes registers /openapi.json and /swagger/*.
func (h *DocsHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET(openAPIPath, h.OpenAPI)
	r.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL(openAPIPath))))
}

// OpenAPI handles GET /openapi.json.
func (h *DocsHandler) OpenAPI(c *gin.Context) {
	c.JSON(http.StatusOK, h.document)
}
