// internal/services/storage_service.go
package services

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/littlethreads/storefront/internal/config"
	"github.com/littlethreads/storefront/internal/utils"
)

// objectStore is the capability set both backends implement. Callers
// never branch on which one is behind it.
type objectStore interface {
	Put(key string, data []byte, contentType string) (string, error)
	Delete(key string) error
}

type StorageService struct {
	store objectStore
	cfg   config.StorageConfig
}

type UploadResult struct {
	URL      string `json:"url"`
	Key      string `json:"key"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type"`
}

var allowedImageExts = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

// NewStorageService validates the configuration and constructs a
// ready-to-use client up front, so a misconfigured bucket fails at
// startup rather than at the first upload.
func NewStorageService(cfg *config.Config) (*StorageService, error) {
	switch cfg.Storage.Backend {
	case "local":
		if err := os.MkdirAll(cfg.Storage.UploadDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create upload dir: %w", err)
		}
		return &StorageService{
			store: &localStore{dir: cfg.Storage.UploadDir, baseURL: "/uploads"},
			cfg:   cfg.Storage,
		}, nil

	case "s3":
		if cfg.Storage.Bucket == "" {
			return nil, fmt.Errorf("s3 storage requires a bucket")
		}
		awsCfg := &aws.Config{Region: aws.String(cfg.Storage.Region)}
		if cfg.Storage.AccessKeyID != "" {
			awsCfg.Credentials = credentials.NewStaticCredentials(
				cfg.Storage.AccessKeyID,
				cfg.Storage.SecretAccessKey,
				"",
			)
		}
		sess, err := session.NewSession(awsCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create AWS session: %w", err)
		}
		return &StorageService{
			store: &s3Store{
				client:     s3.New(sess),
				bucket:     cfg.Storage.Bucket,
				region:     cfg.Storage.Region,
				publicBase: cfg.Storage.PublicBaseURL,
				signed:     cfg.Storage.SignedURLs,
				signedTTL:  time.Duration(cfg.Storage.SignedURLTTL) * time.Hour,
			},
			cfg: cfg.Storage,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.Storage.Backend)
	}
}

// UploadImage stores one uploaded image under the product's key prefix
// and returns a retrievable URL.
func (s *StorageService) UploadImage(file multipart.File, header *multipart.FileHeader, productID uint) (*UploadResult, error) {
	if s.cfg.MaxUploadBytes > 0 && header.Size > s.cfg.MaxUploadBytes {
		return nil, fmt.Errorf("file size %d bytes exceeds maximum allowed size %d bytes", header.Size, s.cfg.MaxUploadBytes)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	allowed := false
	for _, allowedExt := range allowedImageExts {
		if ext == allowedExt {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("file type %s is not allowed", ext)
	}

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	if !isValidImageType(fileBytes) {
		return nil, fmt.Errorf("invalid image file")
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = mime.TypeByExtension(ext)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key, err := buildObjectKey(productID, header.Filename)
	if err != nil {
		return nil, fmt.Errorf("failed to generate object key: %w", err)
	}

	objectURL, err := s.store.Put(key, fileBytes, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to store object: %w", err)
	}

	return &UploadResult{
		URL:      objectURL,
		Key:      key,
		Size:     int64(len(fileBytes)),
		MimeType: contentType,
	}, nil
}

// Delete removes the object behind a previously returned URL. Deleting
// an already-absent object is not an error.
func (s *StorageService) Delete(rawURL string) error {
	key := objectKeyFromURL(rawURL)
	if key == "" {
		return nil
	}
	return s.store.Delete(key)
}

// buildObjectKey generates a collision-resistant key:
// products/{productID}/{unixms}-{rand}{ext}
func buildObjectKey(productID uint, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	suffix, err := utils.RandomHex(6)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("products/%d/%d-%s%s", productID, time.Now().UnixMilli(), suffix, ext), nil
}

// objectKeyFromURL maps a stored URL back to its object key. Works for
// both the local "/uploads/..." form and absolute bucket URLs.
func objectKeyFromURL(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	p := strings.TrimPrefix(u.Path, "/")
	p = strings.TrimPrefix(p, "uploads/")
	unescaped, err := url.PathUnescape(p)
	if err != nil {
		return p
	}
	return unescaped
}

func isValidImageType(buffer []byte) bool {
	// JPEG
	if len(buffer) >= 3 && buffer[0] == 0xFF && buffer[1] == 0xD8 && buffer[2] == 0xFF {
		return true
	}
	// PNG
	if len(buffer) >= 8 && buffer[0] == 0x89 && buffer[1] == 0x50 && buffer[2] == 0x4E && buffer[3] == 0x47 {
		return true
	}
	// GIF
	if len(buffer) >= 6 && (string(buffer[0:6]) == "GIF87a" || string(buffer[0:6]) == "GIF89a") {
		return true
	}
	// WebP (RIFF....WEBP)
	if len(buffer) >= 12 && string(buffer[0:4]) == "RIFF" && string(buffer[8:12]) == "WEBP" {
		return true
	}
	return false
}

// localStore keeps objects on disk under dir; URLs are served from the
// /uploads static route.
type localStore struct {
	dir     string
	baseURL string
}

func (l *localStore) Put(key string, data []byte, contentType string) (string, error) {
	fullPath := filepath.Join(l.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return "", err
	}
	return l.baseURL + "/" + key, nil
}

func (l *localStore) Delete(key string) error {
	err := os.Remove(filepath.Join(l.dir, filepath.FromSlash(key)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// s3Store keeps objects in a bucket, public by default or behind
// time-limited presigned URLs when configured.
type s3Store struct {
	client     *s3.S3
	bucket     string
	region     string
	publicBase string
	signed     bool
	signedTTL  time.Duration
}

func (s *s3Store) Put(key string, data []byte, contentType string) (string, error) {
	params := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
		CacheControl:  aws.String("public, max-age=31536000, immutable"),
	}
	if !s.signed {
		params.ACL = aws.String("public-read")
	}

	if _, err := s.client.PutObject(params); err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	if s.signed {
		req, _ := s.client.GetObjectRequest(&s3.GetObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
		})
		signedURL, err := req.Presign(s.signedTTL)
		if err != nil {
			return "", fmt.Errorf("failed to presign URL: %w", err)
		}
		return signedURL, nil
	}

	return s.objectURL(key), nil
}

func (s *s3Store) Delete(key string) error {
	// S3 delete of an absent key succeeds, which gives us idempotency
	// for free.
	_, err := s.client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from S3: %w", err)
	}
	return nil
}

func (s *s3Store) objectURL(key string) string {
	escaped := (&url.URL{Path: key}).EscapedPath()
	if s.publicBase != "" {
		return strings.TrimRight(s.publicBase, "/") + "/" + escaped
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, escaped)
}
