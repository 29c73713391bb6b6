package schema

import "time"

// 投递状态
const (
	ApplicationApplied   = "applied"
	ApplicationInterview = "interview"
	ApplicationOffer     = "offer"
	ApplicationRejected  = "rejected"
)

// ValidApplicationStatus 判断投递状态是否在闭集内
func ValidApplicationStatus(status string) bool {
	switch status {
	case ApplicationApplied, ApplicationInterview, ApplicationOffer, ApplicationRejected:
		return true
	default:
		return false
	}
}

// Application 职位投递记录
type Application struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    string    `gorm:"size:64;index" json:"user_id"`
	Company   string    `gorm:"size:255" json:"company"`
	Position  string    `gorm:"size:255" json:"position"`
	Status    string    `gorm:"size:32;default:applied" json:"status"` // applied / interview / offer / rejected
	Salary    string    `gorm:"size:64" json:"salary"`
	Notes     string    `gorm:"type:text" json:"notes"`
	AppliedAt time.Time `gorm:"autoCreateTime;index" json:"applied_at"`
}

// TableName 指定表名
func (Application) TableName() string {
	return "applications"
}
