package report

import "fmt"

// Result 结构校验结果
type Result struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// Validate 按报告类型检查内容结构，不会 panic
func Validate(t Type, content map[string]any) Result {
	k, ok := kinds[t]
	if !ok {
		return Result{Valid: false, Errors: []string{fmt.Sprintf("Unknown report type: %s", t)}}
	}
	if content == nil {
		return Result{Valid: false, Errors: []string{"Content must be a JSON object"}}
	}

	errs := k.validate(content)
	if len(errs) > 0 {
		return Result{Valid: false, Errors: errs}
	}
	return Result{Valid: true, Errors: []string{}}
}
