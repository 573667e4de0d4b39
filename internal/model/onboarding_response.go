package model

import (
	"strings"
	"time"
)

// OnboardingResponse 项目 onboarding 问卷，每个项目一条
type OnboardingResponse struct {
	ID             uint64    `gorm:"primaryKey;column:id" json:"id"`
	ProjectID      uint64    `gorm:"not null;uniqueIndex:idx_project;column:project_id" json:"projectId"`
	BrandTone      string    `gorm:"type:text;column:brand_tone" json:"brandTone"`
	Goals          string    `gorm:"type:text;column:goals" json:"goals"`
	TargetAudience string    `gorm:"type:text;column:target_audience" json:"targetAudience"`
	Competitors    string    `gorm:"type:text;column:competitors" json:"competitors"`
	DesignStyle    string    `gorm:"type:text;column:design_style" json:"designStyle"`
	Completed      bool      `gorm:"not null;default:false;column:completed" json:"completed"`
	CreatedAt      time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt      time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (OnboardingResponse) TableName() string {
	return "onboarding_responses"
}

// CompetitorList 按逗号或换行拆分竞品账号
func (o *OnboardingResponse) CompetitorList() []string {
	fields := strings.FieldsFunc(o.Competitors, func(r rune) bool {
		return r == ',' || r == '\n' || r == ';'
	})
	list := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			list = append(list, f)
		}
	}
	return list
}
