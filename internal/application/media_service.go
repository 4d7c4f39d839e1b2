package application

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"stayloop/pkg/apperr"
	"stayloop/pkg/helpers"
)

// MediaService stores uploaded images in object storage and hands back a
// retrievable reference.
type MediaService struct {
	GCS          *storage.Client
	Bucket       string
	SignedURLTTL time.Duration
	Logger       *logrus.Logger
}

func NewMediaService(gcs *storage.Client, bucket string, signedURLTTL time.Duration, logger *logrus.Logger) *MediaService {
	return &MediaService{GCS: gcs, Bucket: bucket, SignedURLTTL: signedURLTTL, Logger: logger}
}

// UploadResult references a stored object. SignedURL is best-effort: it is
// empty when the client has no signing credentials.
type UploadResult struct {
	ObjectPath string `json:"object_path"`
	URL        string `json:"url"`
	SignedURL  string `json:"signed_url,omitempty"`
}

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// UploadImage streams r into the bucket under images/<userID>/<uuid><ext>.
func (s *MediaService) UploadImage(ctx context.Context, userID int64, r io.Reader, filename, contentType string) (*UploadResult, error) {
	if s.GCS == nil || s.Bucket == "" {
		return nil, errors.New("object storage not configured")
	}
	if !allowedImageTypes[strings.ToLower(contentType)] {
		return nil, apperr.Validation("unsupported image type")
	}

	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("images", strconv.FormatInt(userID, 10), uuid.NewString()+ext))

	url, err := helpers.UploadObject(ctx, s.GCS, s.Bucket, objectPath, contentType, r)
	if err != nil {
		return nil, err
	}

	res := &UploadResult{ObjectPath: objectPath, URL: url}
	if signed, sErr := helpers.SignedURL(s.GCS, s.Bucket, objectPath, s.SignedURLTTL); sErr == nil {
		res.SignedURL = signed
	} else if s.Logger != nil {
		s.Logger.WithError(sErr).WithField("object", objectPath).Debug("signed url unavailable")
	}
	return res, nil
}
