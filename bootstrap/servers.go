package bootstrap

import (
	"net/http"

	"search-service/config"
	"search-service/logger"
	appmiddleware "search-service/middleware"
	"search-service/rest"
	"search-service/usecase"

	"github.com/labstack/echo/v4"
)

// newHTTPServer creates the REST HTTP server.
func newHTTPServer(
	cfg *config.Config,
	indexUsecase *usecase.IndexServiceUsecase,
	deleteUsecase *usecase.DeleteServiceUsecase,
	searchUsecase *usecase.SearchServicesUsecase,
	suggestUsecase *usecase.SuggestServicesUsecase,
) *http.Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	var auth *appmiddleware.JWTAuthMiddleware
	if cfg.Auth.JWTSecret != "" {
		auth = appmiddleware.NewJWTAuthMiddleware(logger.Logger, cfg.Auth.JWTSecret)
	}

	handler := rest.NewHandler(indexUsecase, deleteUsecase, searchUsecase, suggestUsecase)
	rest.RegisterRoutes(e, handler, auth)

	return &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           e,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
	}
}
