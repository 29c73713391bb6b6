package schema

import "time"

// Expense 求职开销记录
type Expense struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      string    `gorm:"size:64;index" json:"user_id"`
	Description string    `gorm:"size:255" json:"description"`
	Amount      float64   `json:"amount"`
	Category    string    `gorm:"size:64" json:"category"`
	SpentAt     time.Time `gorm:"autoCreateTime;index" json:"spent_at"`
}

// TableName 指定表名
func (Expense) TableName() string {
	return "expenses"
}
