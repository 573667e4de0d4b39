package dto

import "time"

type CreateProjectDTO struct {
	Name          string `json:"name" binding:"required" validate:"required,max=128"`
	Plan          string `json:"plan" validate:"omitempty,oneof=trial pro enterprise"`
	IgUserID      string `json:"igUserId" validate:"omitempty,max=64,numeric"`
	IgAccessToken string `json:"igAccessToken" validate:"omitempty,max=512"`
}

type ProjectDTO struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Plan        string    `json:"plan"`
	IgUserID    string    `json:"igUserId"`
	IgConnected bool      `json:"igConnected"`
	CreatedAt   time.Time `json:"createdAt"`
}
