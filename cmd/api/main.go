package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"fazpramim/internal/config"
	"fazpramim/internal/database"
	"fazpramim/internal/middleware"
	"fazpramim/internal/modules/auth"
	"fazpramim/internal/modules/chat"
	"fazpramim/internal/modules/profile"
	"fazpramim/internal/modules/request"
	"fazpramim/internal/modules/review"
	"fazpramim/internal/modules/upload"
	jwtsvc "fazpramim/internal/pkg/jwt"
	"fazpramim/internal/repository"
)

func main() {
	// .env is optional; real deployments set env vars directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	if err := repository.Migrate(db, &upload.Upload{}); err != nil {
		log.Fatal("migrate failed: ", err)
	}

	userRepo := repository.NewUserRepository(db)
	clientRepo := repository.NewClientProfileRepository(db)
	providerRepo := repository.NewProviderProfileRepository(db)
	portfolioRepo := repository.NewPortfolioRepository(db)
	requestRepo := repository.NewServiceRequestRepository(db)
	chatRepo := repository.NewChatRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	uploadRepo := upload.NewRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)
	resolver := middleware.NewIdentityResolver(clientRepo, providerRepo)

	authHandler := auth.NewHandler(auth.NewService(userRepo, clientRepo, providerRepo, j))
	profileHandler := profile.NewHandler(profile.NewService(clientRepo, providerRepo, portfolioRepo, reviewRepo))
	requestHandler := request.NewHandler(request.NewService(requestRepo, providerRepo, userRepo))
	chatHandler := chat.NewHandler(chat.NewService(chatRepo, requestRepo))
	reviewHandler := review.NewHandler(review.NewService(reviewRepo, requestRepo))
	uploadHandler := upload.NewHandler(upload.NewService(uploadRepo, cfg.UploadDir, cfg.StaticBase))

	if cfg.AppEnv == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	r.Static(cfg.StaticBase, cfg.UploadDir)

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)
		profileHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j), resolver.Resolve())
		{
			authHandler.RegisterProtectedRoutes(protected)
			profileHandler.RegisterProtectedRoutes(protected)
			requestHandler.RegisterRoutes(protected)
			chatHandler.RegisterRoutes(protected)
			reviewHandler.RegisterRoutes(protected)
			uploadHandler.RegisterRoutes(protected)
		}
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
