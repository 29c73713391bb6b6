package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/placementos/placementos/internal/eventbus"
	"github.com/placementos/placementos/internal/schema"
)

// ActivityService 活动流水服务
//
// 每条活动写入后都会联动打卡（耦合是有意的：所有被记录的行为都算打卡）。
// 两个写入不要求原子：活动已落库而打卡失败时只记日志，不回滚活动。
type ActivityService struct {
	activities ActivityStore
	streak     *StreakService
	hub        Publisher
}

// NewActivityService 创建活动服务
func NewActivityService(activities ActivityStore, streak *StreakService, hub Publisher) *ActivityService {
	return &ActivityService{
		activities: activities,
		streak:     streak,
		hub:        hub,
	}
}

// Log 追加一条活动记录并联动打卡
func (s *ActivityService) Log(ctx context.Context, userID, category, description string) (*schema.Activity, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("userID 不能为空")
	}
	if !schema.ValidActivityCategory(category) {
		return nil, fmt.Errorf("未知活动类别: %s", category)
	}

	activity := &schema.Activity{
		UserID:      userID,
		Category:    category,
		Description: description,
	}
	if err := s.activities.Append(ctx, activity); err != nil {
		return nil, err
	}

	if err := s.streak.Touch(ctx, userID); err != nil {
		// 活动已写入，打卡失败只暴露不回滚
		slog.Error("联动打卡失败", "user_id", userID, "error", err)
	}

	if s.hub != nil {
		s.hub.Publish(eventbus.Event{
			Type:   eventbus.EventActivityLogged,
			UserID: userID,
			Data:   map[string]any{"category": category},
		})
	}

	return activity, nil
}

// ListRecent 取最近 limit 条活动，新的在前
func (s *ActivityService) ListRecent(ctx context.Context, userID string, limit int) ([]schema.Activity, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("userID 不能为空")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit 必须为正数")
	}
	return s.activities.ListRecent(ctx, userID, limit)
}
