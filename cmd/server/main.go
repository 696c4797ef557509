package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rabermudezg13/coffee-cupping-app/internal/config"
	"github.com/rabermudezg13/coffee-cupping-app/internal/database"
	"github.com/rabermudezg13/coffee-cupping-app/internal/handlers"
	"github.com/rabermudezg13/coffee-cupping-app/internal/repository"
	"github.com/rabermudezg13/coffee-cupping-app/internal/security"
	"github.com/rabermudezg13/coffee-cupping-app/internal/service"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/facebook"
	"golang.org/x/oauth2/google"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithType(cfg.DatabaseType, cfg.DatabaseURL, cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	invitationRepo := repository.NewInvitationRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	cuppingRepo := repository.NewCuppingRepository(db)
	shopRepo := repository.NewShopReviewRepository(db)
	bagRepo := repository.NewCoffeeBagRepository(db)

	// Initialize services
	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.FromEmail, cfg.FromName, cfg.AppBaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}

	authService := service.NewAuthService(userRepo, cfg.SessionDuration)
	invitationService := service.NewInvitationService(userRepo, invitationRepo, notificationRepo, emailService)
	cuppingService := service.NewCuppingService(cuppingRepo)
	shopService := service.NewShopReviewService(shopRepo)
	bagService := service.NewCoffeeBagService(bagRepo)

	oauthProviders := map[string]handlers.OAuthProvider{
		"google": {
			Name: "google",
			Config: &oauth2.Config{
				ClientID:     cfg.GoogleClientID,
				ClientSecret: cfg.GoogleClientSecret,
				Endpoint:     google.Endpoint,
				Scopes:       []string{"openid", "email", "profile"},
			},
			UserInfoURL: "https://www.googleapis.com/oauth2/v2/userinfo",
		},
		"facebook": {
			Name: "facebook",
			Config: &oauth2.Config{
				ClientID:     cfg.FacebookClientID,
				ClientSecret: cfg.FacebookClientSecret,
				Endpoint:     facebook.Endpoint,
				Scopes:       []string{"email", "public_profile"},
			},
			UserInfoURL: "https://graph.facebook.com/me?fields=id,name,email",
		},
		"apple": {
			Name: "apple",
			Config: &oauth2.Config{
				ClientID:     cfg.AppleClientID,
				ClientSecret: cfg.AppleClientSecret,
				Endpoint: oauth2.Endpoint{
					AuthURL:  "https://appleid.apple.com/auth/authorize",
					TokenURL: "https://appleid.apple.com/auth/token",
				},
				Scopes: []string{"name", "email"},
			},
			AuthParams: map[string]string{
				"response_mode": "query",
			},
		},
	}

	// Initialize handlers
	rateLimiter := security.NewRateLimiter(10, time.Minute)
	csrfTokens := security.NewCSRFTokenStore(cfg.SessionDuration)
	middleware := handlers.NewMiddleware(authService, rateLimiter, csrfTokens)
	authHandler := handlers.NewAuthHandler(authService, emailService, csrfTokens, oauthProviders, cfg.OAuthRedirectBaseURL)
	invitationHandler := handlers.NewInvitationHandler(invitationService)
	cuppingHandler := handlers.NewCuppingHandler(cuppingService)
	shopHandler := handlers.NewShopReviewHandler(shopService)
	bagHandler := handlers.NewCoffeeBagHandler(bagService)
	scoreHandler := handlers.NewScoreHandler()

	// Setup routes
	mux := http.NewServeMux()

	// Public auth routes
	mux.HandleFunc("POST /api/auth/register", middleware.RateLimit(authHandler.Register))
	mux.HandleFunc("POST /api/auth/login", middleware.RateLimit(authHandler.Login))
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)
	mux.HandleFunc("POST /api/auth/password-reset/request", middleware.RateLimit(authHandler.RequestPasswordReset))
	mux.HandleFunc("POST /api/auth/password-reset/confirm", middleware.RateLimit(authHandler.ResetPassword))
	mux.HandleFunc("GET /auth/{provider}/start", authHandler.StartOAuth)
	mux.HandleFunc("GET /auth/{provider}/callback", authHandler.OAuthCallback)

	// Account routes
	mux.HandleFunc("GET /api/auth/me", middleware.RequireAuth(authHandler.Me))
	mux.HandleFunc("PUT /api/auth/settings", middleware.RequireAuth(middleware.CSRFProtect(authHandler.UpdateSettings)))

	// Invitation routes
	mux.HandleFunc("POST /api/invitations", middleware.RequireAuth(middleware.CSRFProtect(invitationHandler.Create)))
	mux.HandleFunc("GET /api/invitations", middleware.RequireAuth(invitationHandler.Inbox))
	mux.HandleFunc("GET /api/invitations/sent", middleware.RequireAuth(invitationHandler.Sent))
	mux.HandleFunc("GET /api/invitations/{id}", middleware.RequireAuth(invitationHandler.Get))
	mux.HandleFunc("POST /api/invitations/{id}/respond", middleware.RequireAuth(middleware.CSRFProtect(invitationHandler.Respond)))
	mux.HandleFunc("POST /api/invitations/{id}/evaluations", middleware.RequireAuth(middleware.CSRFProtect(invitationHandler.SubmitEvaluation)))
	mux.HandleFunc("GET /api/invitations/{id}/results", middleware.RequireAuth(invitationHandler.Results))

	// Notification routes
	mux.HandleFunc("GET /api/notifications", middleware.RequireAuth(invitationHandler.Notifications))
	mux.HandleFunc("POST /api/notifications/{id}/read", middleware.RequireAuth(middleware.CSRFProtect(invitationHandler.MarkNotificationRead)))

	// Cupping routes
	mux.HandleFunc("POST /api/cuppings", middleware.RequireAuth(middleware.CSRFProtect(cuppingHandler.Create)))
	mux.HandleFunc("GET /api/cuppings", middleware.RequireAuth(cuppingHandler.List))
	mux.HandleFunc("GET /api/cuppings/public", middleware.RequireAuth(cuppingHandler.ListPublic))
	mux.HandleFunc("GET /api/cuppings/search", middleware.RequireAuth(cuppingHandler.Search))
	mux.HandleFunc("GET /api/cuppings/stats", middleware.RequireAuth(cuppingHandler.Stats))
	mux.HandleFunc("GET /api/cuppings/{id}", middleware.RequireAuth(cuppingHandler.Get))
	mux.HandleFunc("PUT /api/cuppings/{id}", middleware.RequireAuth(middleware.CSRFProtect(cuppingHandler.Update)))
	mux.HandleFunc("DELETE /api/cuppings/{id}", middleware.RequireAuth(middleware.CSRFProtect(cuppingHandler.Delete)))

	// Shop review routes
	mux.HandleFunc("POST /api/shop-reviews", middleware.RequireAuth(middleware.CSRFProtect(shopHandler.Create)))
	mux.HandleFunc("GET /api/shop-reviews", middleware.RequireAuth(shopHandler.List))
	mux.HandleFunc("GET /api/shop-reviews/public", middleware.RequireAuth(shopHandler.ListPublic))
	mux.HandleFunc("GET /api/shop-reviews/stats", middleware.RequireAuth(shopHandler.Stats))
	mux.HandleFunc("PUT /api/shop-reviews/{id}", middleware.RequireAuth(middleware.CSRFProtect(shopHandler.Update)))
	mux.HandleFunc("DELETE /api/shop-reviews/{id}", middleware.RequireAuth(middleware.CSRFProtect(shopHandler.Delete)))
	mux.HandleFunc("GET /api/shops/{name}/stats", middleware.RequireAuth(shopHandler.ShopStats))

	// Coffee bag routes
	mux.HandleFunc("POST /api/coffee-bags", middleware.RequireAuth(middleware.CSRFProtect(bagHandler.Create)))
	mux.HandleFunc("GET /api/coffee-bags", middleware.RequireAuth(bagHandler.List))
	mux.HandleFunc("GET /api/coffee-bags/public", middleware.RequireAuth(bagHandler.ListPublic))
	mux.HandleFunc("GET /api/coffee-bags/stats", middleware.RequireAuth(bagHandler.Stats))
	mux.HandleFunc("PUT /api/coffee-bags/{id}", middleware.RequireAuth(middleware.CSRFProtect(bagHandler.Update)))
	mux.HandleFunc("DELETE /api/coffee-bags/{id}", middleware.RequireAuth(middleware.CSRFProtect(bagHandler.Delete)))

	// Scoring calculator
	mux.HandleFunc("POST /api/score", middleware.RequireAuth(scoreHandler.Calculate))

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start background session cleanup
	go cleanupExpiredSessions(authService)

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
}

// cleanupExpiredSessions periodically removes expired sessions
func cleanupExpiredSessions(authService *service.AuthService) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		if err := authService.CleanupExpiredSessions(); err != nil {
			log.Printf("Error cleaning up expired sessions: %v", err)
		} else {
			log.Println("Expired sessions cleaned up")
		}
	}
}
