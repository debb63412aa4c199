// Package upload sends images to the hosted image service and returns their
// public URLs.
package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	apperrors "asset-registry-api/pkg/errors"

	"go.uber.org/zap"
)

// DefaultBaseURL is the image host API root.
const DefaultBaseURL = "https://api.cloudinary.com/v1_1"

// DefaultUploadPreset is the unsigned preset images are uploaded with.
const DefaultUploadPreset = "images_preset"

// Uploader uploads one file and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, file File) (string, error)
}

// Config holds configuration for the upload client
type Config struct {
	BaseURL      string
	CloudName    string
	UploadPreset string
	// Timeout bounds a single upload; zero leaves it to the caller's context.
	Timeout     time.Duration
	MaxFileSize int64
}

// DefaultConfig returns a default configuration for the upload client
func DefaultConfig(cloudName string) Config {
	return Config{
		BaseURL:      DefaultBaseURL,
		CloudName:    cloudName,
		UploadPreset: DefaultUploadPreset,
		MaxFileSize:  10 * 1024 * 1024, // 10MB
	}
}

// Endpoint returns the image upload URL for the configured cloud.
func (c Config) Endpoint() string {
	return strings.TrimRight(c.BaseURL, "/") + "/" + c.CloudName + "/image/upload"
}

// File is an image picked for upload.
type File struct {
	Name    string
	Content []byte
}

// Validate checks that the file can be sent
func (f File) Validate(maxSize int64) error {
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("file name is required")
	}
	if len(f.Content) == 0 {
		return fmt.Errorf("file %s is empty", f.Name)
	}
	if maxSize > 0 && int64(len(f.Content)) > maxSize {
		return fmt.Errorf("file %s too large: %d bytes (max %d)", f.Name, len(f.Content), maxSize)
	}
	return nil
}

// uploadClient is the concrete implementation of the Uploader interface
type uploadClient struct {
	config Config
	client *http.Client
	logger *zap.Logger
}

// NewUploader creates a new Uploader with default configuration
func NewUploader(cloudName string) Uploader {
	return NewUploaderWithConfig(DefaultConfig(cloudName), nil)
}

// NewUploaderWithConfig creates a new Uploader with custom configuration
func NewUploaderWithConfig(config Config, logger *zap.Logger) Uploader {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.UploadPreset == "" {
		config.UploadPreset = DefaultUploadPreset
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &uploadClient{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
		logger: logger,
	}
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	Error     *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Upload sends file as multipart form data and returns its secure_url.
// Failures are *errors.AppError values with code UPLOAD_ERROR; the underlying
// error is logged and kept as the cause.
func (c *uploadClient) Upload(ctx context.Context, file File) (string, error) {
	url, err := c.upload(ctx, file)
	if err != nil {
		c.logger.Error("Image upload failed", zap.String("file", file.Name), zap.Error(err))
		return "", apperrors.UploadError(err)
	}
	c.logger.Debug("Image uploaded", zap.String("file", file.Name), zap.String("url", url))
	return url, nil
}

func (c *uploadClient) upload(ctx context.Context, file File) (string, error) {
	if err := file.Validate(c.config.MaxFileSize); err != nil {
		return "", fmt.Errorf("invalid file: %w", err)
	}
	if c.config.CloudName == "" {
		return "", fmt.Errorf("cloud name is not configured")
	}

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("file", filepath.Base(file.Name))
	if err != nil {
		return "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(file.Content); err != nil {
		return "", fmt.Errorf("failed to write form file: %w", err)
	}
	if err := form.WriteField("upload_preset", c.config.UploadPreset); err != nil {
		return "", fmt.Errorf("failed to write upload preset: %w", err)
	}
	if err := form.Close(); err != nil {
		return "", fmt.Errorf("failed to close form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Endpoint(), &body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "asset-registry-api/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response (status %d): %w", resp.StatusCode, err)
	}

	var parsed uploadResponse
	parseErr := json.Unmarshal(data, &parsed)

	if resp.StatusCode >= 400 {
		if parseErr == nil && parsed.Error != nil && parsed.Error.Message != "" {
			return "", fmt.Errorf("image host returned error status %d: %s", resp.StatusCode, parsed.Error.Message)
		}
		return "", fmt.Errorf("image host returned error status %d: %s", resp.StatusCode, string(data))
	}
	if parseErr != nil {
		return "", fmt.Errorf("invalid image host response: %w", parseErr)
	}
	if parsed.SecureURL == "" {
		return "", fmt.Errorf("image host response has no secure_url")
	}

	return parsed.SecureURL, nil
}
