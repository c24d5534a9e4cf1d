package router

import (
	"github.com/inkwell-app/inkwell-api/internal/application"
	"github.com/inkwell-app/inkwell-api/internal/container"
	pginfra "github.com/inkwell-app/inkwell-api/internal/infrastructure/postgres"
	handlers "github.com/inkwell-app/inkwell-api/internal/interface/http"
	"github.com/inkwell-app/inkwell-api/internal/interface/middleware"
	"github.com/inkwell-app/inkwell-api/internal/router/modules"
	"github.com/inkwell-app/inkwell-api/pkg/helpers"
)

// InitModules wires repositories, services and handlers from the container
// singletons and registers every feature module. Called once at startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	log := container.GetLogger()
	pool := container.GetPGPool()

	userRepo := pginfra.NewUserRepository(pool)
	socialRepo := pginfra.NewSocialAccountRepository(pool)
	resetRepo := pginfra.NewPasswordResetRepository(pool)
	blogRepo := pginfra.NewBlogRepository(pool)
	postRepo := pginfra.NewPostRepository(pool)

	// keep the interfaces nil when the backing client is absent, so the
	// service's nil checks work
	var mail application.Mailer
	if mg := container.GetMailgun(); mg != nil {
		mail = mg
	}
	var queue application.Publisher
	if pub := container.GetRabbitPub(); pub != nil {
		queue = pub
	}

	authSvc := application.NewAuthService(
		userRepo, socialRepo, resetRepo,
		container.GetJWT(),
		mail, queue,
		cfg, log,
	)
	userSvc := application.NewUserService(userRepo, container.GetGCS(), cfg.GCSBucket, log)
	blogSvc := application.NewBlogService(blogRepo, log)
	postSvc := application.NewPostService(
		postRepo, blogRepo,
		container.GetGCS(), cfg.GCSBucket,
		container.GetES(), cfg.ESPostsIndex,
		log,
	)

	cookies := helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure)
	authMw := middleware.Auth(container.GetJWT(), userRepo)

	authHandler := handlers.NewAuthHandler(authSvc, cookies, log, cfg.Debug)
	userHandler := handlers.NewUserHandler(userSvc, log, cfg.Debug)
	blogHandler := handlers.NewBlogHandler(blogSvc, log, cfg.Debug)
	postHandler := handlers.NewPostHandler(postSvc, log, cfg.Debug)

	r.Add(modules.NewAuthModule(authHandler, userHandler, authMw))
	r.Add(modules.NewBlogModule(blogHandler, authMw))
	r.Add(modules.NewPostModule(postHandler, authMw))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
