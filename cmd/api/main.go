package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/joho/godotenv"
	"github.com/joshua-takyi/gogols/internal/auth"
	"github.com/joshua-takyi/gogols/internal/config"
	"github.com/joshua-takyi/gogols/internal/connect"
	"github.com/joshua-takyi/gogols/internal/container"
	"github.com/joshua-takyi/gogols/internal/routes"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "gogols",
		Short:        "Booking API for Gogol's guesthouse and salt cave",
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd())
	root.AddCommand(newHashPasswordCmd())
	return root
}

func newServeCmd() *cobra.Command {
	var envFile string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load environment variables
			_ = godotenv.Load(envFile)
			return serve()
		},
	}
	cmd.Flags().StringVar(&envFile, "env-file", ".env.local", "dotenv file to load before reading the environment")
	return cmd
}

func newHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print a bcrypt hash for an ADMIN_CREDENTIALS entry",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password := ""
			if len(args) == 1 {
				password = args[0]
			} else {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("failed to read password from stdin: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}
			hash, err := auth.HashPassword(password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}

func serve() error {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Setup logger
	logger := setupLogger(cfg)
	slog.SetDefault(logger)
	logger.Info("Starting Gogol's booking API", "environment", cfg.Environment)

	// Initialize database connections
	supaClient, err := connect.InitSupabase(cfg)
	if err != nil {
		return err
	}
	logger.Info("Connected to Supabase successfully")

	var mongoClient *mongo.Client
	if cfg.MongoEnabled() {
		if mongoClient, err = connect.MongoDBConnect(cfg); err != nil {
			return err
		}
		logger.Info("Connected to MongoDB successfully")
	} else {
		logger.Warn("MONGODB_URI not set, admin audit log disabled")
	}

	var redisClient *redis.Client
	if cfg.RedisEnabled() {
		if redisClient, err = connect.RedisConnect(cfg); err != nil {
			return err
		}
		logger.Info("Connected to Redis successfully")
	} else {
		logger.Warn("REDIS_URL not set, slot locks and sessions are process-local")
	}

	var cld *cloudinary.Cloudinary
	if cfg.CloudinaryEnabled() {
		if cld, err = connect.CloudinaryCredentials(cfg); err != nil {
			return err
		}
		logger.Info("Cloudinary configured")
	} else {
		logger.Warn("Cloudinary not configured, image uploads disabled")
	}

	// Initialize dependency container
	appContainer, err := container.NewContainer(cfg, logger, cld, supaClient, mongoClient, redisClient)
	if err != nil {
		return err
	}
	if appContainer.AuditRepo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := appContainer.AuditRepo.EnsureIndexes(ctx); err != nil {
			logger.Error("Failed to create audit indexes", "error", err)
		}
		cancel()
	}

	// Setup routes
	router := routes.SetupRoutes(appContainer)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		logger.Error("Server failed to start", "error", err)
		return err
	}

	logger.Info("Server is shutting down...")

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	// Close database connections
	connect.Disconnect()
	if err := connect.MongoDBDisconnect(); err != nil {
		logger.Error("Error disconnecting from MongoDB", "error", err)
	}
	if err := connect.RedisDisconnect(); err != nil {
		logger.Error("Error disconnecting from Redis", "error", err)
	}

	logger.Info("Server exited")
	return nil
}

func setupLogger(cfg *config.Config) *slog.Logger {
	var handler slog.Handler

	if cfg.IsProduction() {
		// JSON logging for production
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: parseLevel(cfg.LogLevel),
		})
	} else {
		// Human-readable logging for development
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	}

	return slog.New(handler)
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}
