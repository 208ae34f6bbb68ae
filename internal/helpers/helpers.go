package helpers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/golang-jwt/jwt/v5"
)

const SiteImagesFolder = "gogols/site"

var ErrUploadsDisabled = errors.New("image uploads are not configured")

type UploadedImage struct {
	URL      string
	PublicID string
	Bytes    int
	MimeType string
}

// UploadImage pushes a remote URL, data URI or local path to Cloudinary.
func UploadImage(ctx context.Context, cld *cloudinary.Cloudinary, source, folder string) (*UploadedImage, error) {
	if cld == nil {
		return nil, ErrUploadsDisabled
	}
	if strings.TrimSpace(source) == "" {
		return nil, fmt.Errorf("image source is empty")
	}

	res, err := cld.Upload.Upload(ctx, source, uploader.UploadParams{
		Folder: folder,
		Tags:   []string{"gogols-site"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}
	if res.Error.Message != "" {
		return nil, fmt.Errorf("failed to upload image: %s", res.Error.Message)
	}

	mime := "image/" + res.Format
	if res.Format == "" {
		mime = "application/octet-stream"
	}
	return &UploadedImage{
		URL:      res.SecureURL,
		PublicID: res.PublicID,
		Bytes:    res.Bytes,
		MimeType: mime,
	}, nil
}

func DeleteImage(ctx context.Context, cld *cloudinary.Cloudinary, publicID string) error {
	if cld == nil || publicID == "" {
		return nil
	}
	if _, err := cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("failed to delete image %s: %w", publicID, err)
	}
	return nil
}

// SupabaseClaims is the subset of a Supabase Auth access token we read.
type SupabaseClaims struct {
	Email       string `json:"email"`
	AppMetadata struct {
		Provider string `json:"provider"`
		Role     string `json:"role,omitempty"`
	} `json:"app_metadata"`
	UserMetadata map[string]interface{} `json:"user_metadata"`
	jwt.RegisteredClaims
}

// ValidateSupabaseToken verifies a Supabase Auth token against the project's JWKS.
func ValidateSupabaseToken(ctx context.Context, supabaseURL, tokenStr string) (*SupabaseClaims, error) {
	if supabaseURL == "" {
		return nil, errors.New("SUPABASE_URL not set")
	}
	jwksURL := strings.TrimRight(supabaseURL, "/") + "/auth/v1/.well-known/jwks.json"

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{Ctx: ctx})
	if err != nil {
		return nil, fmt.Errorf("failed to load JWKS: %w", err)
	}
	defer jwks.EndBackground()

	token, err := jwt.ParseWithClaims(tokenStr, &SupabaseClaims{}, jwks.Keyfunc)
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}

	claims, ok := token.Claims.(*SupabaseClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}
	return claims, nil
}

// Role resolves the admin role from app metadata first, then user metadata.
func (sc *SupabaseClaims) Role() string {
	if sc.AppMetadata.Role != "" {
		return sc.AppMetadata.Role
	}
	if r, ok := sc.UserMetadata["role"].(string); ok {
		return r
	}
	return ""
}

func (sc *SupabaseClaims) FullName() string {
	if n, ok := sc.UserMetadata["full_name"].(string); ok {
		return n
	}
	return ""
}
