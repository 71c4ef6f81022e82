package storage

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/cloudinary/cloudinary-go/v2/asset"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StorageServiceImpl implements StorageService on top of Cloudinary.
type StorageServiceImpl struct {
	cld       *cloudinary.Cloudinary
	cloudName  string
	apiSecret  string
	httpClient *http.Client
}

// NewStorageService creates a new StorageServiceImpl instance.
func NewStorageService(cld *cloudinary.Cloudinary, cloudName, apiSecret string) StorageService {
	zap.L().Debug("initializing cloudinary storage", zap.String("cloudName", cloudName))
	return &StorageServiceImpl{
		cld:        cld,
		cloudName:  cloudName,
		apiSecret:  apiSecret,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// objectName builds a collision-free public ID from the original file name.
func objectName(fileName string) string {
	base := strings.TrimSuffix(filepath.Base(fileName), filepath.Ext(fileName))
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '-'
		}
	}, base)
	if base == "" {
		base = "file"
	}
	return base + "-" + uuid.New().String()[:8]
}

// UploadFile uploads content to Cloudinary into the specified folder and returns the permanent identifier.
func (s *StorageServiceImpl) UploadFile(ctx context.Context, r io.Reader, fileName, destFolder, resourceType string) (*UploadResult, error) {
	params := uploader.UploadParams{
		Folder:       destFolder,
		PublicID:     objectName(fileName),
		ResourceType: resourceType,
	}
	result, err := s.cld.Upload.Upload(ctx, r, params)
	if err != nil {
		return nil, fmt.Errorf("StorageServiceImpl: failed to upload file: %w", err)
	}
	if result.PublicID == "" {
		return nil, fmt.Errorf("StorageServiceImpl: no public ID returned")
	}
	return &UploadResult{
		PublicID:     result.PublicID,
		URL:          result.SecureURL,
		ResourceType: result.ResourceType,
		Bytes:        result.Bytes,
	}, nil
}

// UploadEncryptedFile encrypts the content and uploads it as an authenticated raw asset.
func (s *StorageServiceImpl) UploadEncryptedFile(ctx context.Context, r io.Reader, fileName, destFolder, encryptionKey string) (*UploadResult, error) {
	plaintext, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("StorageServiceImpl: failed to read file: %w", err)
	}
	sealed, err := encryptBytes(plaintext, encryptionKey)
	if err != nil {
		return nil, fmt.Errorf("StorageServiceImpl: failed to encrypt file: %w", err)
	}
	params := uploader.UploadParams{
		Folder:       destFolder,
		PublicID:     objectName(fileName),
		ResourceType: ResourceRaw,
		Type:         api.Authenticated,
	}
	result, err := s.cld.Upload.Upload(ctx, bytes.NewReader(sealed), params)
	if err != nil {
		return nil, fmt.Errorf("StorageServiceImpl: failed to upload encrypted file: %w", err)
	}
	return &UploadResult{
		PublicID:     result.PublicID,
		ResourceType: ResourceRaw,
		Bytes:        result.Bytes,
	}, nil
}

// DeleteFile deletes a file from Cloudinary given its public ID.
func (s *StorageServiceImpl) DeleteFile(ctx context.Context, publicID, resourceType string) error {
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID, ResourceType: resourceType})
	if err != nil {
		return fmt.Errorf("StorageServiceImpl: failed to delete file: %w", err)
	}
	return nil
}

// getAsset returns an asset instance based on the resource type.
func (s *StorageServiceImpl) getAsset(resourceType, publicID string) (*asset.Asset, error) {
	switch resourceType {
	case ResourceImage:
		return s.cld.Image(publicID)
	case ResourceVideo:
		return s.cld.Video(publicID)
	default:
		return s.cld.Media(publicID)
	}
}

// GetDownloadURL constructs a public URL for a file based on its resource type.
func (s *StorageServiceImpl) GetDownloadURL(ctx context.Context, resourceType, publicID string) (string, error) {
	a, err := s.getAsset(resourceType, publicID)
	if err != nil {
		return "", fmt.Errorf("StorageServiceImpl: failed to get asset: %w", err)
	}
	url, err := a.String()
	if err != nil {
		return "", fmt.Errorf("StorageServiceImpl: failed to get URL string: %w", err)
	}
	return url, nil
}

// GetSecureDownloadURL generates a signed, short-lived URL for an authenticated resource.
func (s *StorageServiceImpl) GetSecureDownloadURL(ctx context.Context, resourceType, publicID string, expires time.Duration) (string, error) {
	return signedURL(s.cloudName, s.apiSecret, resourceType, publicID, time.Now().Add(expires)), nil
}

func (s *StorageServiceImpl) DownloadDecryptedFile(ctx context.Context, publicID, encryptionKey string) ([]byte, error) {
	url := signedURL(s.cloudName, s.apiSecret, ResourceRaw, publicID, time.Now().Add(time.Minute))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("StorageServiceImpl: failed to fetch file: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("StorageServiceImpl: fetching %s returned %s", publicID, resp.Status)
	}
	sealed, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("StorageServiceImpl: failed to read file: %w", err)
	}
	return DecryptBytes(sealed, encryptionKey)
}

// signedURL computes a SHA-1 signature over "expires_at" and "public_id" concatenated with the API secret.
func signedURL(cloudName, apiSecret, resourceType, publicID string, expiresAt time.Time) string {
	exp := expiresAt.Unix()
	stringToSign := fmt.Sprintf("expires_at=%d&public_id=%s%s", exp, publicID, apiSecret)
	h := sha1.New()
	h.Write([]byte(stringToSign))
	signature := hex.EncodeToString(h.Sum(nil))
	return fmt.Sprintf("https://res.cloudinary.com/%s/%s/authenticated/s--%s--/expires_%d/%s", cloudName, resourceType, signature, exp, publicID)
}
