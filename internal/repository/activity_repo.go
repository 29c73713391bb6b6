package repository

import (
	"context"
	"fmt"

	"github.com/placementos/placementos/internal/schema"
	"gorm.io/gorm"
)

// ActivityRepository 活动流水仓储（只追加）
type ActivityRepository struct {
	db *gorm.DB
}

// NewActivityRepository 创建活动仓储
func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Append 追加一条活动记录，ID 与时间戳由存储层分配
func (r *ActivityRepository) Append(ctx context.Context, activity *schema.Activity) error {
	if err := r.db.WithContext(ctx).Create(activity).Error; err != nil {
		return fmt.Errorf("写入活动记录失败: %w", err)
	}
	return nil
}

// ListRecent 按时间倒序取最近 limit 条
func (r *ActivityRepository) ListRecent(ctx context.Context, userID string, limit int) ([]schema.Activity, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit 必须为正数")
	}

	var activities []schema.Activity
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&activities).Error
	if err != nil {
		return nil, fmt.Errorf("查询活动记录失败: %w", err)
	}

	return activities, nil
}

// Count 统计某用户的活动总数
func (r *ActivityRepository) Count(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&schema.Activity{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("统计活动记录失败: %w", err)
	}
	return count, nil
}
