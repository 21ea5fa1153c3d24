package httpapi

import "github.com/gin-gonic/gin"

// NewRouter builds the gin engine with recovery middleware and the API routes.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	h.RegisterRoutes(r)
	return r
}
