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
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/arcvista/backend/api"
	"github.com/arcvista/backend/config"
	"github.com/arcvista/backend/database"
	"github.com/arcvista/backend/models"
	"github.com/arcvista/backend/services"
	"github.com/arcvista/backend/storage"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	c := config.New()

	connStr := config.GetString(c, "DATABASE_URL", "")
	if connStr == "" {
		connStr = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			config.GetString(c, "DB_HOST", "localhost"),
			config.GetString(c, "DB_USER", "postgres"),
			config.GetString(c, "DB_PASSWORD", ""),
			config.GetString(c, "DB_NAME", "arcvista"),
			config.GetString(c, "DB_PORT", "5432"),
			config.GetString(c, "DB_SSLMODE", "disable"),
		)
	}

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

	// Enable required PostgreSQL extensions
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"pgcrypto\"").Error; err != nil {
		fmt.Printf("Error enabling pgcrypto extension: %v\n", err)
		os.Exit(1)
	}

	currentDB := database.New(db)

	// The connection lifecycle is explicit: ping once at boot, close on exit.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := currentDB.Ready(ctx); err != nil {
		cancel()
		fmt.Printf("Error testing database connection: %v\n", err)
		os.Exit(1)
	}
	cancel()
	defer currentDB.Close()

	if err := currentDB.Migrate(); err != nil {
		fmt.Printf("Error running migrations: %v\n", err)
		os.Exit(1)
	}

	if err := ensureAdminExists(currentDB, c); err != nil {
		fmt.Printf("Error seeding default admin: %v\n", err)
		os.Exit(1)
	}

	blobs, err := newBlobStore(c)
	if err != nil {
		fmt.Printf("Error initializing blob store: %v\n", err)
		os.Exit(1)
	}

	mailer, err := services.NewMailerFromConfig(c)
	if err != nil {
		zlog.Warn().Err(err).Msg("Contact mailer not configured; contact endpoints will fail")
	}

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(currentDB, blobs, mailer)
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

// newBlobStore picks the upload backend: local disk by default, S3 when
// UPLOAD_STORAGE=s3.
func newBlobStore(c map[string]string) (storage.BlobStore, error) {
	switch config.GetString(c, "UPLOAD_STORAGE", "disk") {
	case "s3":
		return storage.NewS3Store(
			context.Background(),
			config.GetString(c, "S3_BUCKET", ""),
			config.GetString(c, "S3_PREFIX", "uploads"),
		)
	default:
		return storage.NewDiskStore(config.GetString(c, "UPLOAD_DIR", "uploads"))
	}
}

// ensureAdminExists seeds the default admin account from ADMIN_EMAIL and
// ADMIN_PASSWORD so a fresh deployment is immediately usable. Nothing is
// seeded when the variables are absent.
func ensureAdminExists(db database.Database, c map[string]string) error {
	email := config.GetString(c, "ADMIN_EMAIL", "")
	password := config.GetString(c, "ADMIN_PASSWORD", "")
	if email == "" || password == "" {
		return nil
	}

	existing, err := db.AdminRepo().FindByEmail(email)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &models.Admin{
		Name:         config.GetString(c, "ADMIN_NAME", "Default Admin"),
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := db.AdminRepo().Add(admin); err != nil {
		return err
	}

	zlog.Info().Str("email", email).Msg("Seeded default admin account")
	return nil
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
