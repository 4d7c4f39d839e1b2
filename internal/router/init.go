package router

import (
	userapp "stayloop/internal/application"
	"stayloop/internal/container"
	pginfra "stayloop/internal/infrastructure/postgres"
	handlers "stayloop/internal/interface/http"
	"stayloop/internal/router/modules"
)

func buildUserService() *userapp.Service {
	repo := pginfra.NewUserRepository(
		container.GetPGPool(),
		container.GetHasher(),
		container.GetLogger(),
	)
	return userapp.NewService(
		repo,
		container.GetJWT(),
		container.GetRedis(),
		container.GetLogger(),
		container.GetES(),
		container.GetConfig().ESUsersIndex,
		container.GetRabbitPub(),
	)
}

// InitModules initializes all application modules and registers them with the
// router registry. Call once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()

	userHandler := handlers.NewUserHandler(
		buildUserService(),
		container.GetLogger(),
		cfg.CookieDomain,
		cfg.CookieSecure,
	)
	r.Add(modules.NewUserModule(userHandler, container.GetJWT()))

	mediaSvc := userapp.NewMediaService(
		container.GetGCS(),
		cfg.GCSBucket,
		cfg.SignedURLTTL,
		container.GetLogger(),
	)
	r.Add(modules.NewMediaModule(handlers.NewMediaHandler(mediaSvc, container.GetLogger()), container.GetJWT()))

	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
