package llm

import (
	"golang.org/x/sync/semaphore"
)

var (
	TextWeight = int64(5)
	TextSem    = semaphore.NewWeighted(TextWeight)
)

// SetTextConcurrency 调整同时进行的补全请求数，只在启动时调用
func SetTextConcurrency(n int64) {
	if n <= 0 {
		return
	}
	TextWeight = n
	TextSem = semaphore.NewWeighted(n)
}
