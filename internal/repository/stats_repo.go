package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/placementos/placementos/internal/schema"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StatsRepository 连续打卡状态仓储
type StatsRepository struct {
	db *gorm.DB
}

// NewStatsRepository 创建仓储
func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// Get 读取用户状态，不存在时返回 (nil, nil)
func (r *StatsRepository) Get(ctx context.Context, userID string) (*schema.UserStats, error) {
	var stats schema.UserStats
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&stats).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("查询打卡状态失败: %w", err)
	}
	return &stats, nil
}

// Upsert 插入或更新
func (r *StatsRepository) Upsert(ctx context.Context, stats *schema.UserStats) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(stats).Error
	if err != nil {
		return fmt.Errorf("写入打卡状态失败: %w", err)
	}
	return nil
}

// UpdateProbabilityCache 仅刷新概率展示缓存，不触碰打卡字段
func (r *StatsRepository) UpdateProbabilityCache(ctx context.Context, userID string, probability int) error {
	err := r.db.WithContext(ctx).
		Model(&schema.UserStats{}).
		Where("user_id = ?", userID).
		Update("placement_probability", probability).Error
	if err != nil {
		return fmt.Errorf("刷新概率缓存失败: %w", err)
	}
	return nil
}
