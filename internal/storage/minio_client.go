package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"propertypulse/internal/config"
)

// Storage is the media host holding listing images.
type Storage interface {
	UploadImage(ctx context.Context, fileName string, file io.Reader, size int64) (string, error)
	DeleteImage(ctx context.Context, objectName string) error
	// ObjectKeyFromURL derives the storage key back from a public image URL.
	ObjectKeyFromURL(imageURL string) string
}

type MinIOClient struct {
	client *minio.Client
	cfg    *config.Config
}

func NewMinIOClient(cfg *config.Config) (*MinIOClient, error) {
	client, err := minio.New(cfg.MinIO.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
		Secure: cfg.MinIO.UseSSL,
		Region: cfg.MinIO.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize MinIO client: %w", err)
	}

	return &MinIOClient{client: client, cfg: cfg}, nil
}

// UploadImage stores the image under the configured folder namespace and
// returns its public URL.
func (m *MinIOClient) UploadImage(ctx context.Context, fileName string, file io.Reader, size int64) (string, error) {
	fileExt := strings.ToLower(filepath.Ext(fileName))
	if fileExt == "" {
		fileExt = ".jpg"
	}

	contentType := mime.TypeByExtension(fileExt)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	objectName := fmt.Sprintf("%s/%s%s", m.cfg.MinIO.Folder, uuid.New().String(), fileExt)

	_, err := m.client.PutObject(ctx, m.cfg.MinIO.BucketName, objectName, file, size,
		minio.PutObjectOptions{
			ContentType: contentType,
			UserMetadata: map[string]string{
				"original-filename": fileName,
			},
		})
	if err != nil {
		return "", fmt.Errorf("failed to upload to MinIO: %w", err)
	}

	imageURL := fmt.Sprintf("%s/%s", strings.TrimSuffix(m.cfg.MinIO.PublicURL, "/"), objectName)

	return imageURL, nil
}

func (m *MinIOClient) DeleteImage(ctx context.Context, objectName string) error {
	err := m.client.RemoveObject(ctx, m.cfg.MinIO.BucketName, objectName,
		minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete from MinIO: %w", err)
	}
	return nil
}

// ObjectKeyFromURL rebuilds the storage key from a stored public URL: the
// folder namespace plus the filename component.
func (m *MinIOClient) ObjectKeyFromURL(imageURL string) string {
	return ObjectKey(m.cfg.MinIO.Folder, imageURL)
}

// ObjectKey joins the folder namespace with the filename component of the
// image URL. The key identity lives in the filename without its extension;
// the extension is carried along so the delete call addresses the stored
// object directly.
func ObjectKey(folder, imageURL string) string {
	fileName := path.Base(imageURL)
	if fileName == "." || fileName == "/" {
		return ""
	}
	return folder + "/" + fileName
}
