package models

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/supabase-community/supabase-go"
	"go.mongodb.org/mongo-driver/mongo"
)

var Validate = validator.New()

var (
	ErrNotFound  = errors.New("record not found")
	ErrSlotTaken = errors.New("time slot is already reserved")
)

type ReservationRepo interface {
	ListSaltCaveByDate(ctx context.Context, date string) ([]SaltCaveReservation, error)
	ListSaltCaveInRange(ctx context.Context, from, to string) ([]SaltCaveReservation, error)
	ListMotelOverlapping(ctx context.Context, from, to string) ([]MotelReservation, error)
	CreateSaltCave(ctx context.Context, r *SaltCaveReservation) (*SaltCaveReservation, error)
	CreateMotel(ctx context.Context, r *MotelReservation) (*MotelReservation, error)
	GetReservation(ctx context.Context, resource Resource, id uuid.UUID) (*Reservation, error)
	ListReservations(ctx context.Context, resource Resource) ([]Reservation, error)
	UpdateReservationStatus(ctx context.Context, resource Resource, id uuid.UUID, status ReservationStatus) (*Reservation, error)
	DeleteReservation(ctx context.Context, resource Resource, id uuid.UUID) error
}

type ContentRepo interface {
	ListContent(ctx context.Context) ([]SiteContent, error)
	UpdateContent(ctx context.Context, id uuid.UUID, update ContentUpdate, updatedBy string) (*SiteContent, error)
	ListImages(ctx context.Context) ([]SiteImage, error)
	CreateImage(ctx context.Context, img *SiteImage) (*SiteImage, error)
	SetImageActive(ctx context.Context, id uuid.UUID, active bool) (*SiteImage, error)
	ListStats(ctx context.Context) ([]ReservationStats, error)
}

type SupabaseRepo struct {
	supabaseClient *supabase.Client
}

func SupabaseNewRepo(supabaseClient *supabase.Client) *SupabaseRepo {
	return &SupabaseRepo{
		supabaseClient: supabaseClient,
	}
}

type MongodbRepo struct {
	mongodbClient *mongo.Client
	dbName        string
}

func MongodbNewRepo(mongodbClient *mongo.Client, dbName string) *MongodbRepo {
	if dbName == "" {
		dbName = DefaultAuditDbName
	}
	return &MongodbRepo{
		mongodbClient: mongodbClient,
		dbName:        dbName,
	}
}
