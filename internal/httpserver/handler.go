package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	chatHTTP "companion-bot/internal/chat/delivery/http"
	contentHTTP "companion-bot/internal/content/delivery/http"
	"companion-bot/internal/middleware"
	"companion-bot/internal/model"
	personaHTTP "companion-bot/internal/persona/delivery/http"
)

func (srv HTTPServer) mapHandlers() error {
	srv.registerMiddlewares()
	srv.registerSystemRoutes()

	if err := srv.registerDomainRoutes(); err != nil {
		return err
	}

	return nil
}

func (srv HTTPServer) registerMiddlewares() {
	srv.gin.Use(gin.Recovery())

	ctx := context.Background()
	if srv.environment == string(model.EnvironmentProduction) {
		srv.l.Infof(ctx, "HTTP mode: production")
	} else {
		srv.l.Infof(ctx, "HTTP mode: %s", srv.environment)
	}
}

func (srv HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))
}

// registerDomainRoutes registers the Telegram webhook and the admin API.
func (srv HTTPServer) registerDomainRoutes() error {
	ctx := context.Background()

	if srv.telegramHandler != nil {
		srv.gin.POST("/webhook/telegram", srv.telegramHandler.HandleWebhook)
		srv.l.Infof(ctx, "Telegram webhook route registered at POST /webhook/telegram")
	} else {
		srv.l.Infof(ctx, "Telegram handler not configured, skipping webhook route")
	}

	mw := middleware.New(srv.l, srv.adminToken, srv.config)
	admin := srv.gin.Group("/api/v1/admin")

	if srv.contentUC != nil {
		contentHTTP.RegisterRoutes(admin.Group("/content"), contentHTTP.New(srv.l, srv.contentUC), mw)
		srv.l.Infof(ctx, "Content admin routes registered under /api/v1/admin/content")
	}

	if srv.personaRepo != nil {
		personaHTTP.RegisterRoutes(admin.Group("/persona"), personaHTTP.New(srv.l, srv.personaRepo), mw)
		srv.l.Infof(ctx, "Persona admin routes registered under /api/v1/admin/persona")
	}

	if srv.chatUC != nil {
		chatHTTP.RegisterRoutes(admin.Group("/chat"), chatHTTP.New(srv.l, srv.chatUC), mw)
		srv.l.Infof(ctx, "Chat admin routes registered under /api/v1/admin/chat")
	}

	return nil
}
