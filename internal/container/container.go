package container

import (
	"fmt"
	"log/slog"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/google/uuid"
	"github.com/joshua-takyi/gogols/internal/auth"
	"github.com/joshua-takyi/gogols/internal/config"
	"github.com/joshua-takyi/gogols/internal/helpers"
	"github.com/joshua-takyi/gogols/internal/models"
	"github.com/joshua-takyi/gogols/internal/notify"
	"github.com/joshua-takyi/gogols/internal/services"
	"github.com/redis/go-redis/v9"
	"github.com/supabase-community/supabase-go"
	"go.mongodb.org/mongo-driver/mongo"
)

// Container holds all application dependencies
type Container struct {
	Config     *config.Config
	Logger     *slog.Logger
	Cloudinary *cloudinary.Cloudinary
	// Database clients; Mongo, Redis and Cloudinary are optional
	SupabaseClient *supabase.Client
	MongoDBClient  *mongo.Client
	RedisClient    *redis.Client
	AuditRepo      models.AuditRepo

	BookingService *services.BookingService
	AdminService   *services.AdminService
	ContentService *services.ContentService
	AuthService    *services.AuthService
}

// NewContainer creates a new dependency injection container
func NewContainer(
	cfg *config.Config,
	logger *slog.Logger,
	cld *cloudinary.Cloudinary,
	supabaseClient *supabase.Client,
	mongoDBClient *mongo.Client,
	redisClient *redis.Client,
) (*Container, error) {
	// Initialize repositories
	supa := models.SupabaseNewRepo(supabaseClient)

	var audit models.AuditRepo
	if mongoDBClient != nil {
		audit = models.MongodbNewRepo(mongoDBClient, cfg.MongoDBName)
	}

	var (
		locker   services.SlotLocker
		sessions auth.SessionStore
	)
	if redisClient != nil {
		locker = services.NewRedisSlotLocker(redisClient, services.DefaultSlotLockTTL)
		sessions = auth.NewRedisSessionStore(redisClient)
	} else {
		locker = services.NewLocalSlotLocker()
		sessions = auth.NewMemorySessionStore()
	}

	var uploader services.ImageUploader
	if cld != nil {
		uploader = services.NewCloudinaryUploader(cld)
	}

	authn, err := newAuthenticator(cfg, supabaseClient, logger)
	if err != nil {
		return nil, err
	}

	secret := []byte(cfg.SessionSecret)
	if len(secret) == 0 {
		logger.Warn("SESSION_SECRET not set, using a random secret; sessions end on restart")
		secret = []byte(randomSecret())
	}

	retry := helpers.RetryPolicy{Attempts: helpers.DefaultRetryPolicy.Attempts, BaseDelay: cfg.RetryBaseDelay}
	availability := services.NewAvailabilityService(supa, retry, logger)

	return &Container{
		Config:         cfg,
		Logger:         logger,
		Cloudinary:     cld,
		SupabaseClient: supabaseClient,
		MongoDBClient:  mongoDBClient,
		RedisClient:    redisClient,
		AuditRepo:      audit,
		BookingService: services.NewBookingService(availability, supa, locker, logger),
		AdminService:   services.NewAdminService(supa, notify.NewFormRelay(cfg.FormRelayURL, nil), audit, logger),
		ContentService: services.NewContentService(supa, uploader, audit, logger),
		AuthService:    services.NewAuthService(authn, sessions, secret, cfg.SessionTTL, audit, logger),
	}, nil
}

func newAuthenticator(cfg *config.Config, supabaseClient *supabase.Client, logger *slog.Logger) (auth.Authenticator, error) {
	if cfg.AuthProvider == config.AuthProviderSupabase {
		return auth.NewSupabaseAuthenticator(supabaseClient.Auth, cfg.SupabaseURL), nil
	}

	creds, err := auth.ParseCredentials(cfg.AdminCredentials)
	if err != nil {
		return nil, fmt.Errorf("invalid ADMIN_CREDENTIALS: %w", err)
	}
	if len(creds) == 0 && cfg.IsDevelopment() {
		logger.Warn("ADMIN_CREDENTIALS not set, seeding development admin accounts")
		if creds, err = auth.DevCredentials(); err != nil {
			return nil, err
		}
	}
	return auth.NewStaticAuthenticator(creds), nil
}

func randomSecret() string {
	return uuid.NewString() + uuid.NewString()
}
