package schema

import "time"

// Document 求职文书（简历、求职信）
type Document struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    string    `gorm:"size:64;index" json:"user_id"`
	Title     string    `gorm:"size:255" json:"title"`
	Type      string    `gorm:"size:32" json:"type"` // resume / cover_letter
	Content   string    `gorm:"type:text" json:"content"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 指定表名
func (Document) TableName() string {
	return "documents"
}

// Resume 用户主简历正文（每用户单例）
//
// 与 Document 区分：Document 是文书工坊里的多份草稿，
// Resume 是参与打分的那份“已上传简历”。
type Resume struct {
	UserID    string    `gorm:"primaryKey;size:64" json:"user_id"`
	Content   string    `gorm:"type:text" json:"content"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 指定表名
func (Resume) TableName() string {
	return "resumes"
}
