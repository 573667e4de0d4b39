package minio

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
)

// Exporter 报告导出所需的对象存储能力
type Exporter interface {
	Upload(ctx context.Context, objectName string, data []byte, contentType string) error
	PresignedURL(ctx context.Context, objectName, downloadName string, expires time.Duration) (string, error)
}

type exporterImpl struct{}

func NewExporter() Exporter {
	return exporterImpl{}
}

// Upload 上传到导出桶
func (exporterImpl) Upload(ctx context.Context, objectName string, data []byte, contentType string) error {
	if Client == nil {
		return fmt.Errorf("minio client is not initialized")
	}
	_, err := Client.PutObject(ctx, ExportBucket, objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload file: %w", err)
	}
	return nil
}

// PresignedURL 生成带下载文件名的临时地址
func (exporterImpl) PresignedURL(ctx context.Context, objectName, downloadName string, expires time.Duration) (string, error) {
	if PresignClient == nil {
		return "", fmt.Errorf("minio client is not initialized")
	}
	params := url.Values{}
	params.Set("response-content-disposition", fmt.Sprintf("attachment; filename=%q", downloadName))

	u, err := PresignClient.PresignedGetObject(ctx, ExportBucket, objectName, expires, params)
	if err != nil {
		return "", fmt.Errorf("failed to presign object: %w", err)
	}
	return u.String(), nil
}
