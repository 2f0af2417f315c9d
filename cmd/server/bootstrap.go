package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/charlesng35/orgauthz/internal/api"
	"github.com/charlesng35/orgauthz/internal/app"
	"github.com/charlesng35/orgauthz/internal/database"
	"github.com/charlesng35/orgauthz/internal/permissions"
	"github.com/charlesng35/orgauthz/internal/services"
	"github.com/charlesng35/orgauthz/pkg/logger"
)

// runtimeStack bundles long-lived components used by the HTTP server.
type runtimeStack struct {
	DB        *gorm.DB
	Catalog   *permissions.Catalog
	Templates *permissions.TemplateSet
	Roles     *services.RoleService
	Members   *services.MemberDirectory
	Router    *gin.Engine
}

// bootstrapRuntime loads the catalog, opens the database and builds the HTTP router.
func bootstrapRuntime(ctx context.Context, cfg *app.Config, log *zap.Logger) (*runtimeStack, error) {
	stack := &runtimeStack{}
	var err error
	success := false

	defer func() {
		if !success {
			stack.Shutdown(log)
		}
	}()

	if debug, _ := os.LookupEnv("GIN_DEBUG"); debug != "true" {
		gin.SetMode(gin.ReleaseMode)
	}

	stack.Catalog, stack.Templates, err = loadCatalog(cfg)
	if err != nil {
		return nil, err
	}
	log.Info("permission catalog loaded",
		zap.Int("permissions", stack.Catalog.Len()),
		zap.Int("templates", len(stack.Templates.List())),
	)
	for _, diag := range stack.Templates.Diagnostics() {
		log.Warn("role template references unknown permissions",
			zap.String("template_id", diag.TemplateID),
			zap.Strings("unknown_keys", diag.UnknownKeys),
		)
	}

	stack.DB, err = initialiseDatabase(ctx, cfg, stack.Catalog, stack.Templates)
	if err != nil {
		return nil, err
	}

	stack.Roles, err = services.NewRoleService(stack.DB, stack.Catalog)
	if err != nil {
		return nil, fmt.Errorf("initialise role service: %w", err)
	}

	stack.Members, err = services.NewMemberDirectory(stack.DB)
	if err != nil {
		return nil, fmt.Errorf("initialise member directory: %w", err)
	}

	stack.Router, err = api.NewRouter(cfg, api.Dependencies{
		DB:        stack.DB,
		Catalog:   stack.Catalog,
		Templates: stack.Templates,
		Roles:     stack.Roles,
		Members:   stack.Members,
	})
	if err != nil {
		return nil, fmt.Errorf("build api router: %w", err)
	}

	success = true
	return stack, nil
}

// Shutdown releases resources held by the stack.
func (s *runtimeStack) Shutdown(log *zap.Logger) {
	if s == nil {
		return
	}
	if s.DB != nil {
		closeDatabase(s.DB, log)
	}
}

func loadCatalog(cfg *app.Config) (*permissions.Catalog, *permissions.TemplateSet, error) {
	path := strings.TrimSpace(cfg.Catalog.DefinitionFile)
	if path == "" {
		catalog, templates, err := permissions.Builtin()
		if err != nil {
			return nil, nil, fmt.Errorf("load built-in catalog: %w", err)
		}
		return catalog, templates, nil
	}

	catalog, templates, err := permissions.LoadDefinitionFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return catalog, templates, nil
}

func initialiseDatabase(ctx context.Context, cfg *app.Config, catalog *permissions.Catalog, templates *permissions.TemplateSet) (*gorm.DB, error) {
	dbCfg := convertDatabaseConfig(cfg)
	db, err := database.Open(dbCfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if cfg.Catalog.SyncOnStart {
		err = database.AutoMigrateAndSeed(ctx, db, catalog, templates)
	} else {
		err = database.AutoMigrate(db)
	}
	if err != nil {
		closeDatabase(db, logger.WithModule("database"))
		return nil, fmt.Errorf("auto-migrate database: %w", err)
	}

	log := logger.WithModule("database")
	log.Info("database connected",
		zap.String("driver", dbCfg.Driver),
		zap.Bool("catalog_synced", cfg.Catalog.SyncOnStart),
	)

	return db, nil
}

func convertDatabaseConfig(cfg *app.Config) database.Config {
	dbCfg := database.Config{
		Driver: strings.ToLower(strings.TrimSpace(cfg.Database.Driver)),
		Path:   strings.TrimSpace(cfg.Database.Path),
		DSN:    strings.TrimSpace(cfg.Database.DSN),
	}

	var auth app.DBAuthConfig
	switch dbCfg.Driver {
	case "", "sqlite":
		dbCfg.Driver = "sqlite"
		return dbCfg
	case "postgres", "postgresql":
		dbCfg.Driver = "postgres"
		auth = cfg.Database.Postgres
	case "mysql":
		auth = cfg.Database.MySQL
	default:
		// Leave driver as-is to surface unsupported driver error during open.
		return dbCfg
	}

	dbCfg.Host = strings.TrimSpace(auth.Host)
	dbCfg.Port = auth.Port
	dbCfg.Name = strings.TrimSpace(auth.Database)
	dbCfg.User = strings.TrimSpace(auth.Username)
	dbCfg.Password = strings.TrimSpace(auth.Password)
	return dbCfg
}

func closeDatabase(db *gorm.DB, log *zap.Logger) {
	if db == nil {
		return
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Warn("failed to obtain underlying sql DB for closing", zap.Error(err))
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Warn("failed to close database", zap.Error(err))
	}
}
