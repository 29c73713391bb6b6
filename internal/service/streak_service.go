package service

import (
	"context"
	"fmt"
	"time"

	"github.com/placementos/placementos/internal/schema"
)

const dateLayout = "2006-01-02"

// StreakService 连续打卡追踪
//
// 状态机只认日历日（进程本地时区），不看时分秒。
// 断签不靠后台任务清理：写侧在下一次活动时重置，读侧走 CurrentStreak 惰性衰减。
// 同一天并发首次打卡存在良性的重复 +1 竞态，单用户本地库不值得为此上事务。
type StreakService struct {
	stats StatsStore
	now   func() time.Time // 测试可注入
}

// NewStreakService 创建打卡服务
func NewStreakService(stats StatsStore) *StreakService {
	return &StreakService{stats: stats, now: time.Now}
}

// Touch 记录一次合格活动对打卡状态的影响
func (s *StreakService) Touch(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("userID 不能为空")
	}

	now := s.now()
	today := now.Format(dateLayout)
	yesterday := now.AddDate(0, 0, -1).Format(dateLayout)

	cur, err := s.stats.Get(ctx, userID)
	if err != nil {
		return err
	}
	if cur == nil {
		// 首次活动
		return s.stats.Upsert(ctx, &schema.UserStats{
			UserID:         userID,
			LastActiveDate: today,
			StreakCount:    1,
		})
	}

	switch cur.LastActiveDate {
	case today:
		// 当天已计数，重复触发不二次累加
		return nil
	case yesterday:
		cur.LastActiveDate = today
		cur.StreakCount++
	default:
		// 断签（或时钟偏移导致的未来日期），一律重置
		cur.LastActiveDate = today
		cur.StreakCount = 1
	}

	return s.stats.Upsert(ctx, cur)
}

// CurrentStreak 读取当前连续天数，不修改存储
//
// 存储里的 StreakCount 在断签后是陈旧值，展示必须经过这里。
func (s *StreakService) CurrentStreak(ctx context.Context, userID string) (int, error) {
	cur, err := s.stats.Get(ctx, userID)
	if err != nil {
		return 0, err
	}
	if cur == nil {
		return 0, nil
	}
	return streakValue(cur.LastActiveDate, cur.StreakCount, s.now()), nil
}

// streakValue 惰性衰减：最后活跃日不是今天或昨天则视为断签
func streakValue(lastActive string, count int, now time.Time) int {
	if lastActive == "" {
		return 0
	}
	today := now.Format(dateLayout)
	yesterday := now.AddDate(0, 0, -1).Format(dateLayout)
	if lastActive == today || lastActive == yesterday {
		return count
	}
	return 0
}
