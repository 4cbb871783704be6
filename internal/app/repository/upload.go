package repository

import (
	"Backend-CMS/internal/app/config"
	"Backend-CMS/internal/app/ds"
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/sirupsen/logrus"
)

type UploadRepository struct {
	minioClient *minio.Client
	config      *config.Config
}

func NewUploadRepository(minioClient *minio.Client, cfg *config.Config) *UploadRepository {
	return &UploadRepository{
		minioClient: minioClient,
		config:      cfg,
	}
}

const maxUploadBytes = 10 << 20 // 10 MB

// SaveImage stores an uploaded image in the uploads bucket under an
// optional folder prefix and returns its public URL plus dimensions
// probed from the image header.
func (r *UploadRepository) SaveImage(ctx context.Context, fileHeader *multipart.FileHeader, folder string) (ds.UploadResult, error) {
	if fileHeader.Size > maxUploadBytes {
		return ds.UploadResult{}, fmt.Errorf("file too large: %d bytes (max %d)", fileHeader.Size, maxUploadBytes)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return ds.UploadResult{}, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return ds.UploadResult{}, err
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return ds.UploadResult{}, errors.New("unsupported image format")
	}

	fileExt := strings.ToLower(filepath.Ext(fileHeader.Filename))
	objectName := fmt.Sprintf("upload_%d%s", time.Now().UnixNano(), fileExt)
	if folder != "" {
		objectName = strings.Trim(folder, "/") + "/" + objectName
	}

	_, err = r.minioClient.PutObject(ctx, r.config.UploadBucket, objectName,
		bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
			ContentType: contentTypeFor(fileExt),
		})
	if err != nil {
		return ds.UploadResult{}, fmt.Errorf("failed to store upload: %v", err)
	}

	logrus.Infof("Stored upload %s (%dx%d %s)", objectName, cfg.Width, cfg.Height, format)

	return ds.UploadResult{
		URL:      r.publicURL(objectName),
		PublicID: objectName,
		Width:    cfg.Width,
		Height:   cfg.Height,
		Format:   format,
		Bytes:    int64(len(data)),
	}, nil
}

// DeleteImage removes a stored upload by its public id.
func (r *UploadRepository) DeleteImage(ctx context.Context, publicID string) error {
	_, err := r.minioClient.StatObject(ctx, r.config.UploadBucket, publicID, minio.StatObjectOptions{})
	if err != nil {
		logrus.Warnf("Upload %s not found in bucket %s, skipping deletion", publicID, r.config.UploadBucket)
		return nil
	}

	err = r.minioClient.RemoveObject(ctx, r.config.UploadBucket, publicID, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete upload: %v", err)
	}
	return nil
}

func (r *UploadRepository) publicURL(objectName string) string {
	scheme := "http"
	if r.config.MinioUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, r.config.MinioEndpoint, r.config.UploadBucket, objectName)
}

func contentTypeFor(ext string) string {
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
