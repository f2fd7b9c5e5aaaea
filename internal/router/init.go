package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yamdb/yamdb/internal/application"
	"github.com/yamdb/yamdb/internal/container"
	pginfra "github.com/yamdb/yamdb/internal/infrastructure/postgres"
	handlers "github.com/yamdb/yamdb/internal/interface/http"
	"github.com/yamdb/yamdb/internal/interface/middleware"
	"github.com/yamdb/yamdb/internal/router/modules"
)

// InitModules wires repositories, services, and handlers from the
// container singletons and registers every feature module. Call once
// during startup, after the container is populated.
func InitModules(r *Registry) {
	pool := container.GetPGPool()
	cfg := container.GetConfig()
	log := container.GetLogger()

	userRepo := pginfra.NewUserRepository(pool)
	auditRepo := pginfra.NewAuditRepository(pool)
	categoryRepo := pginfra.NewCategoryRepository(pool)
	genreRepo := pginfra.NewGenreRepository(pool)
	titleRepo := pginfra.NewTitleRepository(pool)
	reviewRepo := pginfra.NewReviewRepository(pool)
	commentRepo := pginfra.NewCommentRepository(pool)

	var pub application.EmailPublisher
	if p := container.GetRabbitPub(); p != nil {
		pub = p
	}

	authSvc := application.NewAuthService(userRepo, auditRepo, container.GetJWT(), pub, container.GetRedis(), log)
	userSvc := application.NewUserService(userRepo, container.GetGCS(), cfg.GCSBucket, log)
	catalogSvc := application.NewCatalogService(categoryRepo, genreRepo, titleRepo, container.GetES(), cfg.ESTitlesIndex, log)
	reviewSvc := application.NewReviewService(titleRepo, reviewRepo, commentRepo, log)

	// Resolve the caller on every API request before any module runs.
	r.Use(middleware.Identify(userRepo, container.GetJWT()))

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc)))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc)))
	r.Add(modules.NewCatalogModule(handlers.NewCatalogHandler(catalogSvc), handlers.NewTitleHandler(catalogSvc)))
	r.Add(modules.NewReviewModule(handlers.NewReviewHandler(reviewSvc), handlers.NewCommentHandler(reviewSvc)))
	r.Add(modules.NewDebugModule())
}

// NewEngine builds the Gin engine with the global middleware chain.
func NewEngine() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	if container.GetConfig() != nil && container.GetConfig().HTTPLogEnabled {
		engine.Use(gin.Logger())
	}
	engine.Use(middleware.RealIP())
	engine.Use(middleware.RequestID())
	return engine
}
