package schema

import "time"

// SchemaMeta 数据库结构版本（单行表，ID 恒为 1）
type SchemaMeta struct {
	ID            int64     `gorm:"primaryKey" json:"id"`
	SchemaVersion int       `json:"schema_version"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 指定表名
func (SchemaMeta) TableName() string {
	return "schema_meta"
}
