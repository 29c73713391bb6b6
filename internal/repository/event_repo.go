package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/placementos/placementos/internal/schema"
	"gorm.io/gorm"
)

// EventRepository 日历事件仓储
type EventRepository struct {
	db *gorm.DB
}

// NewEventRepository 创建事件仓储
func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

// Create 创建事件
func (r *EventRepository) Create(ctx context.Context, event *schema.Event) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("写入事件失败: %w", err)
	}
	return nil
}

// List 按日期升序列出全部事件
func (r *EventRepository) List(ctx context.Context, userID string) ([]schema.Event, error) {
	var events []schema.Event
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date ASC").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("查询事件失败: %w", err)
	}
	return events, nil
}

// ListUpcoming 列出 after 之后的事件，按日期升序，最多 limit 条
func (r *EventRepository) ListUpcoming(ctx context.Context, userID string, after time.Time, limit int) ([]schema.Event, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ? AND date > ?", userID, after).
		Order("date ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var events []schema.Event
	if err := query.Find(&events).Error; err != nil {
		return nil, fmt.Errorf("查询近期事件失败: %w", err)
	}
	return events, nil
}

// Delete 删除事件
func (r *EventRepository) Delete(ctx context.Context, userID string, id int64) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&schema.Event{}).Error
	if err != nil {
		return fmt.Errorf("删除事件失败: %w", err)
	}
	return nil
}
