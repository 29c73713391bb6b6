package schema

import "time"

// CodeSnippet 代码实验室片段
type CodeSnippet struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    string    `gorm:"size:64;index" json:"user_id"`
	Title     string    `gorm:"size:255" json:"title"`
	Language  string    `gorm:"size:64" json:"language"`
	Code      string    `gorm:"type:text" json:"code"`
	Notes     string    `gorm:"type:text" json:"notes"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName 指定表名
func (CodeSnippet) TableName() string {
	return "code_snippets"
}
