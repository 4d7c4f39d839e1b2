package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "stayloop/internal/application"
	"stayloop/internal/interface/middleware"
	"stayloop/pkg/apperr"
	"stayloop/pkg/response"
)

// maxUploadBytes caps a single image upload at 10 MiB.
const maxUploadBytes = 10 << 20

type MediaHandler struct {
	Svc    *userapp.MediaService
	Logger *logrus.Logger
}

func NewMediaHandler(svc *userapp.MediaService, logger *logrus.Logger) *MediaHandler {
	return &MediaHandler{Svc: svc, Logger: logger}
}

// Upload accepts a multipart form with a "file" field and stores the image
// under the authenticated user's prefix in the bucket.
func (h *MediaHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	fh, err := c.FormFile("file")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "missing file field", nil)
		return
	}

	f, err := fh.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "unreadable file", nil)
		return
	}
	defer func() { _ = f.Close() }()

	contentType := fh.Header.Get("Content-Type")
	res, err := h.Svc.UploadImage(c.Request.Context(), middleware.UserID(c), f, fh.Filename, contentType)
	if err != nil {
		status := apperr.Status(err)
		msg := err.Error()
		if status == http.StatusInternalServerError {
			h.Logger.WithError(err).Error("upload failed")
			msg = "internal error"
		}
		response.Error[any](c, status, msg, nil)
		return
	}
	response.Success(c, http.StatusCreated, res, "image uploaded", nil)
}
