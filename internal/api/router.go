package api

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/charlesng35/orgauthz/internal/app"
	"github.com/charlesng35/orgauthz/internal/handlers"
	"github.com/charlesng35/orgauthz/internal/hierarchy"
	"github.com/charlesng35/orgauthz/internal/middleware"
	"github.com/charlesng35/orgauthz/internal/permissions"
	"github.com/charlesng35/orgauthz/internal/services"
)

// Dependencies are the long-lived components the router serves.
type Dependencies struct {
	DB        *gorm.DB
	Catalog   *permissions.Catalog
	Templates *permissions.TemplateSet
	Roles     *services.RoleService
	Members   hierarchy.Directory
}

// NewRouter builds the Gin engine, wires middleware and registers routes.
func NewRouter(cfg *app.Config, deps Dependencies) (*gin.Engine, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must be provided")
	}
	if deps.DB == nil {
		return nil, fmt.Errorf("database handle must be provided")
	}
	if deps.Members == nil {
		return nil, fmt.Errorf("member directory must be provided")
	}

	r := gin.New()
	if err := r.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())

	registerHealthRoutes(r, cfg, deps.DB)

	api := r.Group("/api")

	permHandler, err := handlers.NewPermissionHandler(deps.Catalog, deps.Templates, deps.Roles)
	if err != nil {
		return nil, err
	}
	registerPermissionRoutes(api, permHandler)

	authz, err := hierarchy.NewAuthorizer(deps.Members)
	if err != nil {
		return nil, err
	}
	msgHandler, err := handlers.NewMessagingHandler(authz)
	if err != nil {
		return nil, err
	}
	registerMessagingRoutes(api, msgHandler)

	if cfg.Monitoring.Prometheus.Enabled {
		endpoint := strings.TrimSpace(cfg.Monitoring.Prometheus.Endpoint)
		if endpoint == "" {
			endpoint = "/metrics"
		}
		r.GET(endpoint, gin.WrapH(promhttp.Handler()))
	}

	r.NoRoute(middleware.NotFoundHandler)

	return r, nil
}
