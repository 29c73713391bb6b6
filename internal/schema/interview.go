package schema

import "time"

// Interview 面试模拟会话记录
type Interview struct {
	ID        int64        `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    string       `gorm:"size:64;index" json:"user_id"`
	Title     string       `gorm:"size:255" json:"title"`
	Type      string       `gorm:"size:32" json:"type"` // behavioral / technical
	Messages  JSONMessages `gorm:"type:text" json:"messages"`
	CreatedAt time.Time    `gorm:"autoCreateTime;index" json:"created_at"`
}

// TableName 指定表名
func (Interview) TableName() string {
	return "interviews"
}
