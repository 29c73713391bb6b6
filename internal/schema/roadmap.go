package schema

import "time"

// Roadmap 学习路线
type Roadmap struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    string    `gorm:"size:64;index" json:"user_id"`
	Title     string    `gorm:"size:255" json:"title"`
	Steps     JSONSteps `gorm:"type:text" json:"steps"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName 指定表名
func (Roadmap) TableName() string {
	return "roadmaps"
}
