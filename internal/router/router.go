package router

import (
	"time"

	"izmarket/config"
	"izmarket/internal/handler"
	"izmarket/internal/middleware"
	"izmarket/internal/repository"
	"izmarket/internal/service"
	"izmarket/internal/ws"
	"izmarket/pkg/cloudinary"
	"izmarket/pkg/mail"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(cfg *config.Config, db *gorm.DB, cloud cloudinary.Client, mailer *mail.Mailer) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(100, 60*time.Second)))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	cotRepo := repository.NewCotisationRepository(db)
	articleRepo := repository.NewArticleRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	msgRepo := repository.NewMessageRepository(db)

	chatHub := ws.NewHub()

	// Services
	authSvc := service.NewAuthService(cfg, userRepo, mailer)
	ledgerSvc := service.NewLedgerService(db, userRepo, cotRepo)
	conversationSvc := service.NewConversationService(msgRepo, userRepo, articleRepo, chatHub)
	moderationSvc := service.NewModerationService(userRepo, articleRepo, cotRepo, purchaseRepo, ledgerSvc)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	depositHandler := handler.NewDepositHandler(ledgerSvc, cotRepo)
	messageHandler := handler.NewMessageHandler(conversationSvc)
	articleHandler := handler.NewArticleHandler(articleRepo, cloud)
	profileHandler := handler.NewProfileHandler(userRepo, articleRepo, purchaseRepo, cotRepo)
	uploadHandler := handler.NewUploadHandler(cloud)
	adminHandler := handler.NewAdminHandler(moderationSvc)

	authMw := middleware.AuthRequired(&cfg.JWT)

	api := r.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
		}

		api.GET("/articles", articleHandler.List)
		api.GET("/articles/:id", articleHandler.Get)
		api.POST("/sell", authMw, articleHandler.Sell)

		api.POST("/deposits", authMw, depositHandler.Create)
		api.GET("/deposits", authMw, depositHandler.ListMine)

		api.POST("/messages", authMw, messageHandler.Send)
		api.GET("/conversations", authMw, messageHandler.ListConversations)
		api.GET("/conversations/unread-count", authMw, messageHandler.UnreadCount)
		api.GET("/messages/:peer_id", authMw, messageHandler.ListWithPeer)
		api.POST("/messages/:peer_id/read", authMw, messageHandler.MarkRead)

		me := api.Group("/me", authMw)
		{
			me.GET("/profile", profileHandler.Get)
			me.POST("/upload/chat", uploadHandler.UploadChatMedia)
		}

		admin := api.Group("/admin", authMw, middleware.AdminRequired())
		{
			admin.GET("/data", adminHandler.Data)
			admin.POST("/users/:id/:action", adminHandler.UserAction)
			admin.POST("/articles/:id/:action", adminHandler.ArticleAction)
			admin.POST("/cotisations/:id/:action", adminHandler.CotisationAction)
		}
	}

	r.GET("/ws/chat", handler.UpgradeChatWS(&cfg.JWT, chatHub, conversationSvc))

	return r
}
