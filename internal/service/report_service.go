package service

import (
	"Pulse/internal/api/dto"
	"Pulse/internal/model"
	"Pulse/internal/pkg/consts"
	"Pulse/internal/pkg/es"
	"Pulse/internal/pkg/minio"
	"Pulse/internal/pkg/mongo"
	"Pulse/internal/pkg/redis"
	"Pulse/internal/pkg/report"
	"Pulse/internal/pkg/util"
	"Pulse/internal/repository"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"gorm.io/datatypes"
)

const (
	DefaultSearchPageSize     = 10
	DefaultGenerationPageSize = 20
	MaxGenerationPageSize     = 100
)

// lockMargin 生成锁在最长生成耗时之外的余量
const lockMargin = 30 * time.Second

// ReportSettings 报告相关的时长配置
type ReportSettings struct {
	LatestCacheTTL time.Duration
	LockTTL        time.Duration
	ExportTTL      time.Duration
}

// NewReportSettings 生成锁至少覆盖全部尝试都超时的耗时
func NewReportSettings(latestCacheTTL, lockTTL, exportTTL, completionTimeout time.Duration) ReportSettings {
	return ReportSettings{
		LatestCacheTTL: latestCacheTTL,
		LockTTL:        max(lockTTL, report.MaxAttempts*completionTimeout+lockMargin),
		ExportTTL:      exportTTL,
	}
}

type ReportService interface {
	// GenerateReport 为调用方的项目生成一份报告
	GenerateReport(ctx context.Context, subject string, projectID uint64, reportType string) (*dto.GenerateResultDTO, error)
	// GenerateForProject 后台任务生成，不校验调用方，额度照常计算
	GenerateForProject(ctx context.Context, projectID uint64, reportType report.Type) (*dto.GenerateResultDTO, error)
	CheckRateLimit(ctx context.Context, subject string, projectID uint64, reportType string) (*dto.RateLimitDTO, error)
	// GetLatestReport 按 created_at 取最新一份，没有时返回 nil
	GetLatestReport(ctx context.Context, subject string, projectID uint64, reportType string) (*dto.ReportDTO, error)
	ListReports(ctx context.Context, subject string, projectID uint64, reportType string, limit int) ([]*dto.ReportDTO, error)
	SearchReports(ctx context.Context, subject string, projectID uint64, in *dto.ReportSearchDTO) (*dto.ReportSearchResultDTO, error)
	ExportReport(ctx context.Context, subject string, projectID, reportID uint64) (*dto.ReportExportDTO, error)
	ListGenerations(ctx context.Context, subject string, projectID uint64, page, pageSize int) ([]*dto.GenerationLogDTO, error)
}

type reportServiceImpl struct {
	projectRepo    repository.ProjectRepo
	onboardingRepo repository.OnboardingRepo
	metricRepo     repository.IgMetricRepo
	reportRepo     repository.AiReportRepo
	generator      *report.Generator
	store          redis.Store
	reportES       es.ReportRepo
	generationLog  mongo.GenerationLogRepo
	exporter       minio.Exporter
	settings       ReportSettings
	now            func() time.Time
}

func NewReportService(
	projectRepo repository.ProjectRepo,
	onboardingRepo repository.OnboardingRepo,
	metricRepo repository.IgMetricRepo,
	reportRepo repository.AiReportRepo,
	generator *report.Generator,
	store redis.Store,
	reportES es.ReportRepo,
	generationLog mongo.GenerationLogRepo,
	exporter minio.Exporter,
	settings ReportSettings,
) ReportService {
	return &reportServiceImpl{
		projectRepo:    projectRepo,
		onboardingRepo: onboardingRepo,
		metricRepo:     metricRepo,
		reportRepo:     reportRepo,
		generator:      generator,
		store:          store,
		reportES:       reportES,
		generationLog:  generationLog,
		exporter:       exporter,
		settings:       settings,
		now:            time.Now,
	}
}

func (s *reportServiceImpl) GenerateReport(ctx context.Context, subject string, projectID uint64, reportType string) (*dto.GenerateResultDTO, error) {
	project, err := ownedProject(ctx, s.projectRepo, subject, projectID)
	if err != nil {
		return nil, err
	}
	t, err := report.ParseType(reportType)
	if err != nil {
		return nil, err
	}
	return s.generate(ctx, project, t, mongo.TriggerUser, subject)
}

func (s *reportServiceImpl) GenerateForProject(ctx context.Context, projectID uint64, reportType report.Type) (*dto.GenerateResultDTO, error) {
	project, err := s.projectRepo.GetProjectByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}
	t, err := report.ParseType(string(reportType))
	if err != nil {
		return nil, err
	}
	return s.generate(ctx, project, t, mongo.TriggerCron, "")
}

// generate 加锁后依次检查额度与问卷，读取一次上下文，运行生成状态机并落库
func (s *reportServiceImpl) generate(ctx context.Context, project *model.Project, t report.Type, trigger, subject string) (*dto.GenerateResultDTO, error) {
	now := s.now().UTC()

	lockKey := fmt.Sprintf("%s%d:%s:%s", consts.ReportGenerateLock, project.ID, t, now.Format(consts.MetricDateLayout))
	lockVal := uuid.NewString()
	locked, err := s.store.TryLock(ctx, lockKey, lockVal, s.settings.LockTTL, 1)
	if err != nil {
		return nil, err
	}
	if !locked {
		return nil, ErrGenerationInProgress
	}
	defer s.store.UnLock(context.WithoutCancel(ctx), lockKey, lockVal)

	used, err := s.reportRepo.CountReportsSince(ctx, project.ID, string(t), report.DayStart(now))
	if err != nil {
		return nil, err
	}
	if !report.EvaluateRateLimit(project.Plan, used, now).Allowed {
		return nil, ErrRateLimitExceeded
	}

	onboarding, err := s.onboardingRepo.GetOnboardingByProjectID(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	if onboarding == nil || !onboarding.Completed {
		return nil, ErrOnboardingIncomplete
	}

	metricRows, err := s.metricRepo.GetRecentMetrics(ctx, project.ID, report.MaxPromptMetrics)
	if err != nil {
		return nil, err
	}
	metrics := toPromptMetrics(metricRows)

	prompt, err := report.BuildPrompt(t, report.TenantContext{
		BrandTone:      onboarding.BrandTone,
		Goals:          onboarding.Goals,
		TargetAudience: onboarding.TargetAudience,
		Competitors:    onboarding.CompetitorList(),
		DesignStyle:    onboarding.DesignStyle,
	}, metrics)
	if err != nil {
		return nil, err
	}

	entry := &mongo.GenerationLog{
		ProjectID:  project.ID,
		ReportType: string(t),
		Trigger:    trigger,
		Subject:    subject,
		Model:      s.generator.Model(),
		CreatedAt:  now,
	}

	outcome, records, err := s.generator.Run(ctx, t, prompt)
	entry.Attempts = toGenerationAttempts(records)
	if ctxErr := ctx.Err(); ctxErr != nil {
		log.WarnContext(ctx, "report generation cancelled", "project_id", project.ID, "type", t)
		return nil, ctxErr
	}
	if err != nil {
		entry.Outcome, entry.Error = generationOutcome(err), err.Error()
		s.recordGeneration(ctx, entry)
		log.WarnContext(ctx, "report generation failed", "project_id", project.ID, "type", t, "attempts", len(records), "err", err)
		return nil, err
	}

	aiReport := &model.AiReport{
		ProjectID:    project.ID,
		ReportType:   string(t),
		Content:      datatypes.JSON(outcome.Raw),
		Score:        report.Score(t, outcome.Content, metrics),
		OnboardingID: onboarding.ID,
		MetricsCount: len(metrics),
		CreatedAt:    now,
	}
	reportID, err := s.reportRepo.InsertReport(ctx, aiReport)
	if err != nil {
		return nil, err
	}

	aiReport.ID = reportID
	s.refreshLatestCache(ctx, aiReport)

	if err = s.reportES.IndexReport(ctx, &es.ReportES{
		ID:          reportID,
		ProjectID:   project.ID,
		ReportType:  string(t),
		Score:       aiReport.Score,
		ContentText: es.FlattenContent(outcome.Content),
		CreatedAt:   now,
	}); err != nil {
		log.WarnContext(ctx, "index report failed", "report_id", reportID, "err", err)
	}

	entry.Outcome, entry.ReportID = mongo.OutcomeSuccess, reportID
	s.recordGeneration(ctx, entry)

	log.InfoContext(ctx, "report generated", "project_id", project.ID, "type", t, "report_id", reportID, "attempts", outcome.Attempts, "score", aiReport.Score)
	return &dto.GenerateResultDTO{Success: true, ReportID: reportID}, nil
}

// refreshLatestCache 持锁期间直接覆盖最新报告缓存，写入失败时删除该键
func (s *reportServiceImpl) refreshLatestCache(ctx context.Context, r *model.AiReport) {
	key := latestReportKey(r.ProjectID, report.Type(r.ReportType))
	data, err := json.Marshal(toReportDTO(r))
	if err == nil {
		err = s.store.SetWithExpiration(ctx, key, string(data), s.settings.LatestCacheTTL)
	}
	if err == nil {
		return
	}
	log.WarnContext(ctx, "refresh latest report cache failed", "key", key, "err", err)
	if err = s.store.DeleteKey(ctx, key); err != nil {
		log.ErrorContext(ctx, "invalidate latest report cache failed", "key", key, "err", err)
	}
}

func (s *reportServiceImpl) recordGeneration(ctx context.Context, entry *mongo.GenerationLog) {
	if err := s.generationLog.InsertLog(ctx, entry); err != nil {
		log.WarnContext(ctx, "record generation failed", "project_id", entry.ProjectID, "err", err)
	}
}

func (s *reportServiceImpl) CheckRateLimit(ctx context.Context, subject string, projectID uint64, reportType string) (*dto.RateLimitDTO, error) {
	project, err := ownedProject(ctx, s.projectRepo, subject, projectID)
	if err != nil {
		return nil, err
	}
	t, err := report.ParseType(reportType)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	used, err := s.reportRepo.CountReportsSince(ctx, project.ID, string(t), report.DayStart(now))
	if err != nil {
		return nil, err
	}

	var out dto.RateLimitDTO
	if err = copier.Copy(&out, report.EvaluateRateLimit(project.Plan, used, now)); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *reportServiceImpl) GetLatestReport(ctx context.Context, subject string, projectID uint64, reportType string) (*dto.ReportDTO, error) {
	if _, err := ownedProject(ctx, s.projectRepo, subject, projectID); err != nil {
		return nil, err
	}
	t, err := report.ParseType(reportType)
	if err != nil {
		return nil, err
	}

	key := latestReportKey(projectID, t)
	if val, err := s.store.GetValue(ctx, key); err == nil && val != "" {
		var cached dto.ReportDTO
		if err = json.Unmarshal([]byte(val), &cached); err == nil {
			return &cached, nil
		}
	}

	latest, err := s.reportRepo.GetLatestReport(ctx, projectID, string(t))
	if err != nil || latest == nil {
		return nil, err
	}

	// 只在键不存在时回填，避免覆盖生成流程刚写入的新报告
	out := toReportDTO(latest)
	if data, err := json.Marshal(out); err == nil {
		if _, err = s.store.SetIfAbsent(ctx, key, string(data), s.settings.LatestCacheTTL); err != nil {
			log.WarnContext(ctx, "fill latest report cache failed", "key", key, "err", err)
		}
	}
	return out, nil
}

func (s *reportServiceImpl) ListReports(ctx context.Context, subject string, projectID uint64, reportType string, limit int) ([]*dto.ReportDTO, error) {
	if _, err := ownedProject(ctx, s.projectRepo, subject, projectID); err != nil {
		return nil, err
	}
	if reportType != "" {
		t, err := report.ParseType(reportType)
		if err != nil {
			return nil, err
		}
		reportType = string(t)
	}

	reports, err := s.reportRepo.ListReports(ctx, projectID, reportType, limit)
	if err != nil {
		return nil, err
	}
	res := make([]*dto.ReportDTO, 0, len(reports))
	for _, r := range reports {
		res = append(res, toReportDTO(r))
	}
	return res, nil
}

func (s *reportServiceImpl) SearchReports(ctx context.Context, subject string, projectID uint64, in *dto.ReportSearchDTO) (*dto.ReportSearchResultDTO, error) {
	if _, err := ownedProject(ctx, s.projectRepo, subject, projectID); err != nil {
		return nil, err
	}
	if err := util.ValidateDTO(in); err != nil {
		return nil, ErrParamInvalid
	}
	if in.Type != "" {
		t, err := report.ParseType(in.Type)
		if err != nil {
			return nil, err
		}
		in.Type = string(t)
	}

	page, pageSize := max(in.Page, 1), in.PageSize
	if pageSize <= 0 {
		pageSize = DefaultSearchPageSize
	}

	hits, total, err := s.reportES.SearchReports(ctx, projectID, in.Type, in.Keyword, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}

	res := &dto.ReportSearchResultDTO{Total: total, Items: make([]*dto.ReportHitDTO, 0, len(hits))}
	for _, h := range hits {
		var item dto.ReportHitDTO
		if err = copier.Copy(&item, h); err != nil {
			return nil, err
		}
		item.Snippet = snippet(h.ContentText, 200)
		res.Items = append(res.Items, &item)
	}
	return res, nil
}

func (s *reportServiceImpl) ExportReport(ctx context.Context, subject string, projectID, reportID uint64) (*dto.ReportExportDTO, error) {
	project, err := ownedProject(ctx, s.projectRepo, subject, projectID)
	if err != nil {
		return nil, err
	}
	r, err := s.reportRepo.GetReportByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if r == nil || r.ProjectID != projectID {
		return nil, ErrReportNotFound
	}

	doc := struct {
		Project string         `json:"project"`
		Report  *dto.ReportDTO `json:"report"`
	}{Project: project.Name, Report: toReportDTO(r)}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}

	objectName := fmt.Sprintf("%d/%s/%d-%s.json", projectID, r.ReportType, r.ID, uuid.NewString())
	if err = s.exporter.Upload(ctx, objectName, data, "application/json"); err != nil {
		return nil, err
	}

	downloadName := fmt.Sprintf("%s-%s.json", r.ReportType, r.CreatedAt.UTC().Format(consts.MetricDateLayout))
	url, err := s.exporter.PresignedURL(ctx, objectName, downloadName, s.settings.ExportTTL)
	if err != nil {
		return nil, err
	}

	return &dto.ReportExportDTO{
		ObjectName: objectName,
		URL:        url,
		ExpiresAt:  s.now().UTC().Add(s.settings.ExportTTL),
	}, nil
}

func (s *reportServiceImpl) ListGenerations(ctx context.Context, subject string, projectID uint64, page, pageSize int) ([]*dto.GenerationLogDTO, error) {
	if _, err := ownedProject(ctx, s.projectRepo, subject, projectID); err != nil {
		return nil, err
	}
	page = max(page, 1)
	if pageSize <= 0 {
		pageSize = DefaultGenerationPageSize
	}
	pageSize = min(pageSize, MaxGenerationPageSize)

	logs, err := s.generationLog.ListLogs(ctx, projectID, int64(pageSize), int64((page-1)*pageSize))
	if err != nil {
		return nil, err
	}

	res := make([]*dto.GenerationLogDTO, 0, len(logs))
	for _, l := range logs {
		item := &dto.GenerationLogDTO{
			ID:         l.ID.Hex(),
			ReportType: l.ReportType,
			Trigger:    l.Trigger,
			Outcome:    l.Outcome,
			ReportID:   l.ReportID,
			Error:      l.Error,
			Attempts:   make([]*dto.GenerationAttemptDTO, 0, len(l.Attempts)),
			CreatedAt:  l.CreatedAt,
		}
		for _, a := range l.Attempts {
			item.Attempts = append(item.Attempts, &dto.GenerationAttemptDTO{
				Attempt:   a.Attempt,
				Errors:    a.Errors,
				Error:     a.Error,
				LatencyMs: a.LatencyMs,
			})
		}
		res = append(res, item)
	}
	return res, nil
}

func latestReportKey(projectID uint64, t report.Type) string {
	return fmt.Sprintf("%s%d:%s", consts.LatestReportKey, projectID, t)
}

func toReportDTO(r *model.AiReport) *dto.ReportDTO {
	return &dto.ReportDTO{
		ID:           r.ID,
		ProjectID:    r.ProjectID,
		ReportType:   r.ReportType,
		Content:      json.RawMessage(r.Content),
		Score:        r.Score,
		MetricsCount: r.MetricsCount,
		CreatedAt:    r.CreatedAt,
	}
}

func toPromptMetrics(rows []*model.IgMetricDaily) []report.MetricRow {
	metrics := make([]report.MetricRow, 0, len(rows))
	for _, r := range rows {
		metrics = append(metrics, report.MetricRow{
			Date:      r.MetricDate,
			Followers: r.Followers,
			Likes:     r.Likes,
			Comments:  r.Comments,
			Reach:     r.Reach,
		})
	}
	return metrics
}

func toGenerationAttempts(records []report.AttemptRecord) []*mongo.GenerationAttempt {
	attempts := make([]*mongo.GenerationAttempt, 0, len(records))
	for _, r := range records {
		a := &mongo.GenerationAttempt{
			Attempt:   r.Attempt,
			Errors:    r.Errors,
			RawSize:   len(r.Raw),
			LatencyMs: r.Latency.Milliseconds(),
		}
		if r.Err != nil {
			a.Error = r.Err.Error()
		}
		attempts = append(attempts, a)
	}
	return attempts
}

func generationOutcome(err error) string {
	var vfe *report.ValidationFailedError
	switch {
	case errors.As(err, &vfe):
		return mongo.OutcomeValidationFailed
	case errors.Is(err, report.ErrCompletionTransport):
		return mongo.OutcomeTransportFailed
	default:
		return mongo.OutcomeError
	}
}

func snippet(text string, limit int) string {
	r := []rune(text)
	if len(r) <= limit {
		return text
	}
	return string(r[:limit]) + "..."
}
