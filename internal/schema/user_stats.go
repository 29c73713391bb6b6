package schema

import "time"

// UserStats 每用户一行的连续打卡状态
//
// LastActiveDate 只保留日历日（YYYY-MM-DD，进程本地时区），不含时分秒。
// StreakCount 是以 LastActiveDate 结尾的连续活跃天数；断签后该值可能过期，
// 读取方必须走 StreakService.CurrentStreak 做惰性衰减，不要直接用本字段。
// PlacementProbability 仅是展示缓存，权威值每次由 StatsService 重新计算。
type UserStats struct {
	UserID               string    `gorm:"primaryKey;size:64" json:"user_id"`
	LastActiveDate       string    `gorm:"size:10" json:"last_active_date"` // YYYY-MM-DD，空串表示从未活跃
	StreakCount          int       `json:"streak_count"`
	PlacementProbability int       `json:"placement_probability"` // 展示缓存，非权威
	UpdatedAt            time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 指定表名
func (UserStats) TableName() string {
	return "user_stats"
}
