// Package storage wraps the hosted image service (Cloudinary).
package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"
)

const (
	// Folder is the remote folder all platform images are uploaded under.
	Folder = "community_platform"
	// Transformation caps images at 800px wide with automatic quality/format.
	Transformation = "c_limit,w_800,q_auto,f_auto"
)

// Uploader uploads images to Cloudinary with fixed transform parameters.
type Uploader struct {
	cld    *cloudinary.Cloudinary
	logger *zap.Logger
}

// NewUploader creates a Cloudinary uploader from credentials.
func NewUploader(cloudName, apiKey, apiSecret string, logger *zap.Logger) (*Uploader, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &Uploader{cld: cld, logger: logger}, nil
}

// Upload sends a file to Cloudinary and returns its secure URL.
// Failures are reported to the caller, who treats the image as absent.
func (u *Uploader) Upload(ctx context.Context, file io.Reader) (string, error) {
	resp, err := u.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:         Folder,
		Transformation: Transformation,
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	return resp.SecureURL, nil
}
