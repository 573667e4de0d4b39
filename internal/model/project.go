package model

import "time"

// Project 代理商为每个客户品牌创建的项目
type Project struct {
	ID            uint64    `gorm:"primaryKey;column:id" json:"id"`
	OwnerSubject  string    `gorm:"not null;size:191;index:idx_owner;column:owner_subject" json:"ownerSubject"`
	Name          string    `gorm:"not null;size:128;column:name" json:"name"`
	Plan          string    `gorm:"not null;size:32;default:'trial';column:plan" json:"plan"`
	IgUserID      string    `gorm:"size:64;index:idx_ig_user;column:ig_user_id" json:"igUserId"`
	IgAccessToken string    `gorm:"size:512;column:ig_access_token" json:"-"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (Project) TableName() string {
	return "projects"
}
