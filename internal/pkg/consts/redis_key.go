package consts

const (
	LatestReportKey = "report:latest:"
)

const (
	ReportGenerateLock = "report:generate:lock:"
	MetricSyncLock     = "lock:metric:sync:"
)
