package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/joshua-takyi/gogols/internal/helpers"
	"github.com/joshua-takyi/gogols/internal/models"
	"github.com/stretchr/testify/mock"
)

type mockReservationRepo struct {
	mock.Mock
}

func (m *mockReservationRepo) ListSaltCaveByDate(ctx context.Context, date string) ([]models.SaltCaveReservation, error) {
	args := m.Called(ctx, date)
	out, _ := args.Get(0).([]models.SaltCaveReservation)
	return out, args.Error(1)
}

func (m *mockReservationRepo) ListSaltCaveInRange(ctx context.Context, from, to string) ([]models.SaltCaveReservation, error) {
	args := m.Called(ctx, from, to)
	out, _ := args.Get(0).([]models.SaltCaveReservation)
	return out, args.Error(1)
}

func (m *mockReservationRepo) ListMotelOverlapping(ctx context.Context, from, to string) ([]models.MotelReservation, error) {
	args := m.Called(ctx, from, to)
	out, _ := args.Get(0).([]models.MotelReservation)
	return out, args.Error(1)
}

func (m *mockReservationRepo) CreateSaltCave(ctx context.Context, r *models.SaltCaveReservation) (*models.SaltCaveReservation, error) {
	args := m.Called(ctx, r)
	if fn, ok := args.Get(0).(func(context.Context, *models.SaltCaveReservation) *models.SaltCaveReservation); ok {
		return fn(ctx, r), args.Error(1)
	}
	out, _ := args.Get(0).(*models.SaltCaveReservation)
	return out, args.Error(1)
}

func (m *mockReservationRepo) CreateMotel(ctx context.Context, r *models.MotelReservation) (*models.MotelReservation, error) {
	args := m.Called(ctx, r)
	if fn, ok := args.Get(0).(func(context.Context, *models.MotelReservation) *models.MotelReservation); ok {
		return fn(ctx, r), args.Error(1)
	}
	out, _ := args.Get(0).(*models.MotelReservation)
	return out, args.Error(1)
}

func (m *mockReservationRepo) GetReservation(ctx context.Context, resource models.Resource, id uuid.UUID) (*models.Reservation, error) {
	args := m.Called(ctx, resource, id)
	out, _ := args.Get(0).(*models.Reservation)
	return out, args.Error(1)
}

func (m *mockReservationRepo) ListReservations(ctx context.Context, resource models.Resource) ([]models.Reservation, error) {
	args := m.Called(ctx, resource)
	out, _ := args.Get(0).([]models.Reservation)
	return out, args.Error(1)
}

func (m *mockReservationRepo) UpdateReservationStatus(ctx context.Context, resource models.Resource, id uuid.UUID, status models.ReservationStatus) (*models.Reservation, error) {
	args := m.Called(ctx, resource, id, status)
	out, _ := args.Get(0).(*models.Reservation)
	return out, args.Error(1)
}

func (m *mockReservationRepo) DeleteReservation(ctx context.Context, resource models.Resource, id uuid.UUID) error {
	return m.Called(ctx, resource, id).Error(0)
}

type mockContentRepo struct {
	mock.Mock
}

func (m *mockContentRepo) ListContent(ctx context.Context) ([]models.SiteContent, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).([]models.SiteContent)
	return out, args.Error(1)
}

func (m *mockContentRepo) UpdateContent(ctx context.Context, id uuid.UUID, update models.ContentUpdate, updatedBy string) (*models.SiteContent, error) {
	args := m.Called(ctx, id, update, updatedBy)
	out, _ := args.Get(0).(*models.SiteContent)
	return out, args.Error(1)
}

func (m *mockContentRepo) ListImages(ctx context.Context) ([]models.SiteImage, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).([]models.SiteImage)
	return out, args.Error(1)
}

func (m *mockContentRepo) CreateImage(ctx context.Context, img *models.SiteImage) (*models.SiteImage, error) {
	args := m.Called(ctx, img)
	if fn, ok := args.Get(0).(func(context.Context, *models.SiteImage) *models.SiteImage); ok {
		return fn(ctx, img), args.Error(1)
	}
	out, _ := args.Get(0).(*models.SiteImage)
	return out, args.Error(1)
}

func (m *mockContentRepo) SetImageActive(ctx context.Context, id uuid.UUID, active bool) (*models.SiteImage, error) {
	args := m.Called(ctx, id, active)
	out, _ := args.Get(0).(*models.SiteImage)
	return out, args.Error(1)
}

func (m *mockContentRepo) ListStats(ctx context.Context) ([]models.ReservationStats, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).([]models.ReservationStats)
	return out, args.Error(1)
}

type mockAuditRepo struct {
	mock.Mock
}

func (m *mockAuditRepo) RecordAudit(ctx context.Context, entry *models.AuditEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *mockAuditRepo) ListAudit(ctx context.Context, limit int64) ([]*models.AuditEntry, error) {
	args := m.Called(ctx, limit)
	out, _ := args.Get(0).([]*models.AuditEntry)
	return out, args.Error(1)
}

func (m *mockAuditRepo) EnsureIndexes(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) SendConfirmation(ctx context.Context, r models.Reservation) error {
	return m.Called(ctx, r).Error(0)
}

type mockUploader struct {
	mock.Mock
}

func (m *mockUploader) Upload(ctx context.Context, source string) (*helpers.UploadedImage, error) {
	args := m.Called(ctx, source)
	out, _ := args.Get(0).(*helpers.UploadedImage)
	return out, args.Error(1)
}

func (m *mockUploader) Delete(ctx context.Context, publicID string) error {
	return m.Called(ctx, publicID).Error(0)
}
