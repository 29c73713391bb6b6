package schema

import "time"

// 活动类别（闭集，与前端契约保持一致）
const (
	ActivityApplication = "application"
	ActivityInterview   = "interview"
	ActivityEmail       = "email"
	ActivityFlashcard   = "flashcard"
	ActivityCodeLab     = "code_lab"
	ActivityRoadmap     = "roadmap"
)

// ValidActivityCategory 判断类别是否在闭集内
func ValidActivityCategory(category string) bool {
	switch category {
	case ActivityApplication, ActivityInterview, ActivityEmail,
		ActivityFlashcard, ActivityCodeLab, ActivityRoadmap:
		return true
	}
	return false
}

// Activity 活动流水（只追加，不更新不删除）
// 数据量级：千级/年
type Activity struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      string    `gorm:"size:64;index" json:"user_id"`
	Category    string    `gorm:"size:32;index" json:"category"` // application / interview / email / flashcard / code_lab / roadmap
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

// TableName 指定表名
func (Activity) TableName() string {
	return "activities"
}
