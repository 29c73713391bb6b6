package schema

import "time"

// Profile 用户档案（每用户单例）
type Profile struct {
	UserID               string    `gorm:"primaryKey;size:64" json:"user_id"`
	Name                 string    `gorm:"size:255" json:"name"`
	Email                string    `gorm:"size:255" json:"email"`
	TargetRole           string    `gorm:"size:255" json:"target_role"`
	GraduationYear       string    `gorm:"size:16" json:"graduation_year"`
	Theme                string    `gorm:"size:16;default:dark" json:"theme"` // dark / light
	NotificationsEnabled bool      `json:"notifications_enabled"`
	CreatedAt            time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 指定表名
func (Profile) TableName() string {
	return "profiles"
}
