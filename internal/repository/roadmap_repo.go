package repository

import (
	"context"
	"fmt"

	"github.com/placementos/placementos/internal/schema"
	"gorm.io/gorm"
)

// RoadmapRepository 学习路线仓储
type RoadmapRepository struct {
	db *gorm.DB
}

// NewRoadmapRepository 创建路线仓储
func NewRoadmapRepository(db *gorm.DB) *RoadmapRepository {
	return &RoadmapRepository{db: db}
}

// Create 创建路线
func (r *RoadmapRepository) Create(ctx context.Context, roadmap *schema.Roadmap) error {
	if err := r.db.WithContext(ctx).Create(roadmap).Error; err != nil {
		return fmt.Errorf("写入学习路线失败: %w", err)
	}
	return nil
}

// List 列出用户全部路线
func (r *RoadmapRepository) List(ctx context.Context, userID string) ([]schema.Roadmap, error) {
	var roadmaps []schema.Roadmap
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&roadmaps).Error
	if err != nil {
		return nil, fmt.Errorf("查询学习路线失败: %w", err)
	}
	return roadmaps, nil
}

// UpdateSteps 覆盖路线步骤
func (r *RoadmapRepository) UpdateSteps(ctx context.Context, userID string, id int64, steps schema.JSONSteps) error {
	err := r.db.WithContext(ctx).
		Model(&schema.Roadmap{}).
		Where("user_id = ? AND id = ?", userID, id).
		Update("steps", steps).Error
	if err != nil {
		return fmt.Errorf("更新路线步骤失败: %w", err)
	}
	return nil
}

// Delete 删除路线
func (r *RoadmapRepository) Delete(ctx context.Context, userID string, id int64) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&schema.Roadmap{}).Error
	if err != nil {
		return fmt.Errorf("删除学习路线失败: %w", err)
	}
	return nil
}
