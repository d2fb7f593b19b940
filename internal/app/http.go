package app

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Mussab2003/secrets-app/internal/auth"
	"github.com/Mussab2003/secrets-app/internal/auth/credentials"
	"github.com/Mussab2003/secrets-app/internal/auth/federated"
	"github.com/Mussab2003/secrets-app/internal/auth/handler"
	"github.com/Mussab2003/secrets-app/internal/auth/provider"
	"github.com/Mussab2003/secrets-app/internal/auth/provider/google"
	"github.com/Mussab2003/secrets-app/internal/config"
	"github.com/Mussab2003/secrets-app/internal/middleware"
	"github.com/Mussab2003/secrets-app/internal/principal"
	"github.com/Mussab2003/secrets-app/internal/secrets"
	"github.com/Mussab2003/secrets-app/internal/session"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {
	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	principalStore := principal.NewPostgresStore(infra.DB)
	sessionStore := session.NewRedisStore(infra.Redis.Client)
	sessions := session.NewManager(sessionStore, session.DefaultTTL)

	credentialService := credentials.NewService(principalStore)
	federatedService := federated.NewService(principalStore)
	strategies := auth.NewStrategies(credentialService, federatedService)

	googleProvider, err := google.New(
		ctx,
		cfg.GoogleClientID,
		cfg.GoogleClientSecret,
		cfg.GoogleRedirectURL,
	)
	if err != nil {
		return nil, nil, err
	}

	registry := provider.NewRegistry(googleProvider)

	authHandler := handler.NewHandler(registry, strategies, credentialService, sessions)
	secretsHandler := secrets.NewHandler(secrets.NewService(principalStore))
	gate := middleware.NewAuthMiddleware(sessions, principalStore)

	router := gin.New()
	router.Use(gin.Recovery())

	authHandler.RegisterRoutes(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	protected := router.Group("/")
	protected.Use(middleware.GinRequireAuth(gate))
	secretsHandler.RegisterRoutes(protected)

	return router, func() error {
		return errors.Join(infra.DB.Close(), infra.Redis.Close())
	}, nil
}
