package wire

import (
	"Pulse/internal/api"
	"Pulse/internal/api/config"
	"Pulse/internal/api/handler"
	"Pulse/internal/job"
	"Pulse/internal/pkg/cron"
	"Pulse/internal/pkg/es"
	"Pulse/internal/pkg/instagram"
	"Pulse/internal/pkg/kafka"
	"Pulse/internal/pkg/llm"
	"Pulse/internal/pkg/minio"
	pulsemongo "Pulse/internal/pkg/mongo"
	"Pulse/internal/pkg/redis"
	"Pulse/internal/pkg/report"
	"Pulse/internal/repository"
	"Pulse/internal/service"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

const (
	weeklyInsightConcurrency = 3

	// S3 预签名地址最长 7 天
	maxPresignTTL = 7 * 24 * time.Hour

	// 锁时长依赖补全超时，未配置时不能无限等待
	defaultCompletionTimeout = 60 * time.Second
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router        *gin.Engine
	DB            *gorm.DB
	KafkaManager  *kafka.ConsumerManager
	KafkaProducer *kafka.Producer
	CronMgr       *cron.Manager
}

func BuildApplication(db *gorm.DB, mongoDB *mongo.Database, cfg *config.Config) (*ApplicationContainer, error) {
	projectRepo := repository.NewProjectRepo(db)
	onboardingRepo := repository.NewOnboardingRepo(db)
	metricRepo := repository.NewIgMetricRepo(db)
	reportRepo := repository.NewAiReportRepo(db)

	completionTimeout := time.Duration(cfg.LLM.TimeoutSeconds) * time.Second
	if completionTimeout <= 0 {
		completionTimeout = defaultCompletionTimeout
	}
	generator := report.NewGenerator(
		llm.NewCompleter(completionTimeout),
		report.WithModel(cfg.LLM.Model),
	)
	store := redis.NewStore()

	producer, err := kafka.NewProducer(cfg.Kafka, cfg.KafkaMetricWebhook.Topic)
	if err != nil {
		return nil, err
	}

	projectService := service.NewProjectService(projectRepo)
	onboardingService := service.NewOnboardingService(projectRepo, onboardingRepo)
	metricService := service.NewMetricService(projectRepo, metricRepo)
	reportService := service.NewReportService(
		projectRepo,
		onboardingRepo,
		metricRepo,
		reportRepo,
		generator,
		store,
		es.NewReportRepo(es.Client),
		pulsemongo.NewGenerationLogRepo(mongoDB),
		minio.NewExporter(),
		service.NewReportSettings(
			time.Duration(cfg.Report.LatestCacheMinutes)*time.Minute,
			time.Duration(cfg.Report.LockSeconds)*time.Second,
			min(time.Duration(cfg.MinIO.ExportExpireDays)*24*time.Hour, maxPresignTTL),
			completionTimeout,
		),
	)
	webhookService := service.NewWebhookService(cfg.Webhook.VerifyToken, cfg.Webhook.Secret, producer)

	handlers := &api.HandlersGroup{
		ProjectHandler: handler.NewProjectHandler(projectService, onboardingService),
		MetricHandler:  handler.NewMetricHandler(metricService),
		ReportHandler:  handler.NewReportHandler(reportService),
		WebhookHandler: handler.NewWebhookHandler(webhookService),
	}

	router := api.SetupRouter(handlers)

	// 未绑定账号与非法负载重试也不会成功，直接丢弃
	metricHandler := kafka.NewMetricWebhookHandler(metricService, service.ErrUnknownIgAccount, service.ErrParamInvalid)
	kafkaMgr, err := kafka.NewConsumerManager(cfg, metricHandler)
	if err != nil {
		_ = producer.Close()
		return nil, err
	}

	cronMgr := cron.NewCronManager(
		cfg.Cron,
		job.NewWeeklyInsightJob(projectRepo, reportService, weeklyInsightConcurrency),
		job.NewMetricSyncJob(projectRepo, instagram.NewClient(cfg.Instagram), metricService, store),
	)

	return &ApplicationContainer{
		Router:        router,
		DB:            db,
		KafkaManager:  kafkaMgr,
		KafkaProducer: producer,
		CronMgr:       cronMgr,
	}, nil
}
