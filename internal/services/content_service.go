package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/google/uuid"
	"github.com/joshua-takyi/gogols/internal/helpers"
	"github.com/joshua-takyi/gogols/internal/models"
)

// ImageUploader stores image bytes and returns where they live.
type ImageUploader interface {
	Upload(ctx context.Context, source string) (*helpers.UploadedImage, error)
	Delete(ctx context.Context, publicID string) error
}

type CloudinaryUploader struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryUploader(cld *cloudinary.Cloudinary) *CloudinaryUploader {
	return &CloudinaryUploader{cld: cld, folder: helpers.SiteImagesFolder}
}

func (u *CloudinaryUploader) Upload(ctx context.Context, source string) (*helpers.UploadedImage, error) {
	return helpers.UploadImage(ctx, u.cld, source, u.folder)
}

func (u *CloudinaryUploader) Delete(ctx context.Context, publicID string) error {
	return helpers.DeleteImage(ctx, u.cld, publicID)
}

// ImageUpload is the admin request to add a site image.
type ImageUpload struct {
	Source  string `json:"source" validate:"required"`
	Key     string `json:"key" validate:"required,max=100"`
	Title   string `json:"title" validate:"max=200"`
	AltText string `json:"alt_text" validate:"max=300"`
	Section string `json:"section" validate:"required,max=100"`
}

type ContentService struct {
	repo     models.ContentRepo
	uploader ImageUploader
	audit    auditor
	logger   *slog.Logger
}

func NewContentService(repo models.ContentRepo, uploader ImageUploader, audit models.AuditRepo, logger *slog.Logger) *ContentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ContentService{
		repo:     repo,
		uploader: uploader,
		audit:    auditor{repo: audit, logger: logger},
		logger:   logger,
	}
}

func (cs *ContentService) ListContent(ctx context.Context) ([]models.SiteContent, error) {
	out, err := cs.repo.ListContent(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list site content: %w", err)
	}
	return out, nil
}

// UpdateContent saves the editable fields, stamping the editing admin.
func (cs *ContentService) UpdateContent(ctx context.Context, actor string, id uuid.UUID, update models.ContentUpdate) (*models.SiteContent, error) {
	update.Title = strings.TrimSpace(update.Title)
	if update.ContentType == "" {
		update.ContentType = models.ContentText
	}
	if err := models.Validate.Struct(update); err != nil {
		return nil, fmt.Errorf("invalid content data provided: %w", err)
	}

	updated, err := cs.repo.UpdateContent(ctx, id, update, actor)
	if err != nil {
		return nil, err
	}
	cs.audit.record(ctx, &models.AuditEntry{
		Action:   models.AuditContentUpdate,
		Resource: models.SiteContentTable,
		TargetID: id.String(),
		Actor:    actor,
		Details:  map[string]string{"key": updated.Key, "content_type": string(update.ContentType)},
	})
	return updated, nil
}

func (cs *ContentService) ListImages(ctx context.Context) ([]models.SiteImage, error) {
	out, err := cs.repo.ListImages(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list site images: %w", err)
	}
	return out, nil
}

// UploadImage stores the file and registers its row. The stored file is
// removed again when the row cannot be written.
func (cs *ContentService) UploadImage(ctx context.Context, actor string, req ImageUpload) (*models.SiteImage, error) {
	if err := models.Validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid image data provided: %w", err)
	}
	if cs.uploader == nil {
		return nil, helpers.ErrUploadsDisabled
	}

	uploaded, err := cs.uploader.Upload(ctx, req.Source)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	img := &models.SiteImage{
		ID:         uuid.New(),
		CreatedAt:  now,
		UpdatedAt:  now,
		Key:        req.Key,
		Title:      req.Title,
		AltText:    req.AltText,
		FilePath:   uploaded.URL,
		FileSize:   uploaded.Bytes,
		MimeType:   uploaded.MimeType,
		Section:    req.Section,
		IsActive:   true,
		UploadedBy: actor,
	}
	created, err := cs.repo.CreateImage(ctx, img)
	if err != nil {
		if delErr := cs.uploader.Delete(context.WithoutCancel(ctx), uploaded.PublicID); delErr != nil {
			cs.logger.Warn("failed to clean up uploaded image", "public_id", uploaded.PublicID, "error", delErr)
		}
		return nil, fmt.Errorf("failed to register image: %w", err)
	}

	cs.audit.record(ctx, &models.AuditEntry{
		Action:   models.AuditImageUpload,
		Resource: models.SiteImagesTable,
		TargetID: created.ID.String(),
		Actor:    actor,
		Details:  map[string]string{"key": created.Key, "public_id": uploaded.PublicID},
	})
	return created, nil
}

func (cs *ContentService) SetImageActive(ctx context.Context, actor string, id uuid.UUID, active bool) (*models.SiteImage, error) {
	updated, err := cs.repo.SetImageActive(ctx, id, active)
	if err != nil {
		return nil, err
	}
	cs.audit.record(ctx, &models.AuditEntry{
		Action:   models.AuditImageToggle,
		Resource: models.SiteImagesTable,
		TargetID: id.String(),
		Actor:    actor,
		Details:  map[string]string{"is_active": strconv.FormatBool(active)},
	})
	return updated, nil
}

// Stats returns the per-resource counts shown on the dashboard.
func (cs *ContentService) Stats(ctx context.Context) ([]models.ReservationStats, error) {
	out, err := cs.repo.ListStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load reservation stats: %w", err)
	}
	return out, nil
}
