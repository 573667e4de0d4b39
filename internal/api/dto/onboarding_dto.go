package dto

import "time"

type OnboardingDTO struct {
	BrandTone      string    `json:"brandTone" validate:"max=2000"`
	Goals          string    `json:"goals" validate:"max=2000"`
	TargetAudience string    `json:"targetAudience" validate:"max=2000"`
	Competitors    string    `json:"competitors" validate:"max=2000"`
	DesignStyle    string    `json:"designStyle" validate:"max=2000"`
	Completed      bool      `json:"completed"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
