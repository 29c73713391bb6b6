package schema

import "time"

// Event 日历事件（面试、截止日期等）
type Event struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    string    `gorm:"size:64;index" json:"user_id"`
	Title     string    `gorm:"size:255" json:"title"`
	Date      time.Time `gorm:"index" json:"date"`
	Notes     string    `gorm:"type:text" json:"notes"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName 指定表名
func (Event) TableName() string {
	return "events"
}
