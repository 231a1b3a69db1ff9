package rest

import (
	appmiddleware "search-service/middleware"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// RegisterRoutes wires handlers onto the echo instance. The auth middleware
// guards only the mutating endpoints; search, suggest and preprocess are
// called by trusted services and end users alike.
func RegisterRoutes(e *echo.Echo, h *Handler, auth *appmiddleware.JWTAuthMiddleware) {
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	e.GET("/health", h.Health)

	v1 := e.Group("/v1")
	v1.GET("/search", h.SearchServices)
	v1.GET("/search/suggest", h.SuggestServices)
	v1.POST("/services/preprocess", h.PreprocessText)
	v1.POST("/services/preprocess/batch", h.PreprocessBatch)

	mutating := v1.Group("/services/index")
	if auth != nil {
		mutating.Use(auth.RequireJWT())
	}
	mutating.POST("", h.IndexService)
	mutating.DELETE("/:id", h.DeleteService)
}
