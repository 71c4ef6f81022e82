package storage

import (
	"context"
	"io"
	"time"
)

// Resource types understood by the storage backend.
const (
	ResourceImage = "image"
	ResourceVideo = "video"
	ResourceRaw   = "raw"
)

// UploadResult identifies a stored object.
type UploadResult struct {
	PublicID     string `json:"publicId"`
	URL          string `json:"url"`
	ResourceType string `json:"resourceType"`
	Bytes        int    `json:"bytes"`
}

// StorageService defines the interface for storage operations.
type StorageService interface {
	// UploadFile stores a publicly readable object under destFolder.
	UploadFile(ctx context.Context, r io.Reader, fileName, destFolder, resourceType string) (*UploadResult, error)
	// UploadEncryptedFile encrypts the content with AES-256-GCM before storing it as an authenticated raw object.
	UploadEncryptedFile(ctx context.Context, r io.Reader, fileName, destFolder, encryptionKey string) (*UploadResult, error)
	DeleteFile(ctx context.Context, publicID, resourceType string) error
	GetDownloadURL(ctx context.Context, resourceType, publicID string) (string, error)
	// GetSecureDownloadURL returns a signed URL that stops working after expires.
	GetSecureDownloadURL(ctx context.Context, resourceType, publicID string, expires time.Duration) (string, error)
	// DownloadDecryptedFile fetches an object stored by UploadEncryptedFile and decrypts it.
	DownloadDecryptedFile(ctx context.Context, publicID, encryptionKey string) ([]byte, error)
}
