package minio

import (
	"Pulse/internal/api/config"
	"context"
	"fmt"
	log "log/slog"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/minio/minio-go/v7/pkg/lifecycle"
)

const presignRegion = "us-east-1"

var (
	// Client 内网读写客户端
	Client *minio.Client
	// PresignClient 只用于以外网域名签名下载地址
	PresignClient *minio.Client
	// ExportBucket 报告导出存储桶
	ExportBucket string
)

// Init 初始化 MinIO 客户端并确保导出桶及其过期策略存在
func Init() error {
	cfg := config.Cfg.MinIO

	endpoint, useSSL := cfg.ExternalEndpoint, true
	if cfg.InternalEndpoint != "" {
		endpoint, useSSL = cfg.InternalEndpoint, cfg.InternalUseSSL
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: useSSL,
		Region: presignRegion,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize minio client: %w", err)
	}

	presign := client
	if cfg.ExternalEndpoint != "" {
		presign, err = minio.New(cfg.ExternalEndpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
			Secure: true,
			Region: presignRegion,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize minio presign client: %w", err)
		}
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.ExportBucket)
	if err != nil {
		return fmt.Errorf("failed to connect to minio server: %w", err)
	}
	if !exists {
		if err = client.MakeBucket(ctx, cfg.ExportBucket, minio.MakeBucketOptions{Region: presignRegion}); err != nil {
			return fmt.Errorf("failed to create export bucket: %w", err)
		}
	}

	Client = client
	PresignClient = presign
	ExportBucket = cfg.ExportBucket
	return ensureExportLifecycle(ctx, cfg.ExportExpireDays)
}

// ensureExportLifecycle 导出文件到期自动删除
func ensureExportLifecycle(ctx context.Context, days int) error {
	if days <= 0 {
		return nil
	}

	lcConfig, err := Client.GetBucketLifecycle(ctx, ExportBucket)
	if err != nil {
		lcConfig = lifecycle.NewConfiguration()
	}

	for _, rule := range lcConfig.Rules {
		if rule.Status == "Enabled" &&
			int(rule.Expiration.Days) == days &&
			rule.RuleFilter.Prefix == "" {
			log.Info("检测到已存在兼容的过期策略", "ruleID", rule.ID)
			return nil
		}
	}

	lcConfig.Rules = append(lcConfig.Rules, lifecycle.Rule{
		ID:     "ReportExportExpireRule",
		Status: "Enabled",
		Expiration: lifecycle.Expiration{
			Days: lifecycle.ExpirationDays(days),
		},
	})
	if err = Client.SetBucketLifecycle(ctx, ExportBucket, lcConfig); err != nil {
		return fmt.Errorf("设置生命周期失败: %w", err)
	}
	log.Info("已设置导出桶过期策略", "days", days)
	return nil
}
