package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/oauth2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/GuilhermeFusuma/portifolio/api"
	"github.com/GuilhermeFusuma/portifolio/config"
	"github.com/GuilhermeFusuma/portifolio/database"
	"github.com/GuilhermeFusuma/portifolio/services"
	zl "github.com/rs/zerolog/log"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	c := config.New()

	connStr := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		config.GetString(c, "DB_HOST", "localhost"),
		config.GetString(c, "DB_USER", "portfolio"),
		config.GetString(c, "DB_PASSWORD", ""),
		config.GetString(c, "DB_NAME", "portfolio"),
		config.GetString(c, "DB_PORT", "5432"),
		config.GetString(c, "DB_SSLMODE", "disable"),
	)

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  connStr,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt: false,
		Logger:      newLogger,
	})
	if err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}

	if err := database.Migrate(db); err != nil {
		fmt.Printf("Error migrating database: %v\n", err)
		os.Exit(1)
	}

	currentDB := database.New(db)

	secret := config.GetString(c, "SECRET_KEY", "")
	if secret == "" {
		fmt.Println("SECRET_KEY must be set. Exiting...")
		os.Exit(1)
	}

	tokens := services.NewTokenService(
		[]byte(secret),
		config.GetDuration(c, "RESET_TOKEN_TTL", services.DefaultResetTTL),
		config.GetDuration(c, "SESSION_TOKEN_TTL", services.DefaultSessionTTL),
	)

	mailer := services.NewResendMailer(
		config.GetString(c, "RESEND_API_KEY", ""),
		config.GetString(c, "FROM_EMAIL", "noreply@localhost"),
		zl.Logger,
	)

	deps := api.Dependencies{
		Tokens:      tokens,
		OAuth:       setupOAuth(c, currentDB),
		Mailer:      mailer,
		Store:       setupStorage(c),
		Actors:      services.ActorResolver{TrustProxyHeaders: config.GetBool(c, "TRUST_PROXY_HEADERS", false)},
		AdminEmail:  config.GetString(c, "ADMIN_EMAIL", ""),
		FrontendURL: config.GetString(c, "FRONTEND_URL", "http://localhost:3000"),
	}

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(currentDB, deps)
	if err != nil {
		fmt.Printf("Error initializing server: %v\n", err)
		os.Exit(1)
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	fmt.Printf("Closing server: %v\n", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// setupOAuth registers the external login providers that have credentials
// configured. Providers without credentials stay unregistered and their
// routes answer 404.
func setupOAuth(c map[string]string, db database.Database) *services.OAuthService {
	oauthService := services.NewOAuthService(db.UserRepo(), zl.Logger)
	callbackBase := config.GetString(c, "OAUTH_CALLBACK_BASE", "http://localhost:8080")

	if clientID := config.GetString(c, "GITHUB_CLIENT_ID", ""); clientID != "" {
		oauthService.Register("github", &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: config.GetString(c, "GITHUB_CLIENT_SECRET", ""),
			RedirectURL:  callbackBase + "/auth/github/callback",
			Scopes:       []string{"user:email"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  "https://github.com/login/oauth/authorize",
				TokenURL: "https://github.com/login/oauth/access_token",
			},
		}, "https://api.github.com/user")
	}

	if clientID := config.GetString(c, "GOOGLE_CLIENT_ID", ""); clientID != "" {
		oauthService.Register("google", &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: config.GetString(c, "GOOGLE_CLIENT_SECRET", ""),
			RedirectURL:  callbackBase + "/auth/google/callback",
			Scopes:       []string{"openid", "email"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  "https://accounts.google.com/o/oauth2/auth",
				TokenURL: "https://oauth2.googleapis.com/token",
			},
		}, "https://www.googleapis.com/oauth2/v2/userinfo")
	}

	return oauthService
}

// setupStorage builds the media file store. Without a bucket configured,
// uploads are rejected but the rest of the app runs normally.
func setupStorage(c map[string]string) services.FileStore {
	bucket := config.GetString(c, "S3_BUCKET", "")
	if bucket == "" {
		fmt.Println("Warning: S3_BUCKET not set, media uploads disabled")
		return services.DisabledStore{}
	}

	store, err := services.NewS3Store(context.Background(), bucket, zl.Logger)
	if err != nil {
		fmt.Printf("Warning: failed to initialize file storage: %v\n", err)
		return services.DisabledStore{}
	}
	return store
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
