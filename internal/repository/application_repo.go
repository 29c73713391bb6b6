package repository

import (
	"context"
	"fmt"

	"github.com/placementos/placementos/internal/schema"
	"gorm.io/gorm"
)

// ApplicationRepository 投递记录仓储
type ApplicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository 创建投递仓储
func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// Create 创建投递记录
func (r *ApplicationRepository) Create(ctx context.Context, app *schema.Application) error {
	if err := r.db.WithContext(ctx).Create(app).Error; err != nil {
		return fmt.Errorf("写入投递记录失败: %w", err)
	}
	return nil
}

// List 按投递时间倒序列出
func (r *ApplicationRepository) List(ctx context.Context, userID string) ([]schema.Application, error) {
	var apps []schema.Application
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("applied_at DESC").
		Find(&apps).Error
	if err != nil {
		return nil, fmt.Errorf("查询投递记录失败: %w", err)
	}
	return apps, nil
}

// Update 更新指定字段（状态、薪资、备注）
func (r *ApplicationRepository) Update(ctx context.Context, userID string, id int64, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).
		Model(&schema.Application{}).
		Where("user_id = ? AND id = ?", userID, id).
		Updates(fields).Error
	if err != nil {
		return fmt.Errorf("更新投递记录失败: %w", err)
	}
	return nil
}

// Delete 删除投递记录
func (r *ApplicationRepository) Delete(ctx context.Context, userID string, id int64) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&schema.Application{}).Error
	if err != nil {
		return fmt.Errorf("删除投递记录失败: %w", err)
	}
	return nil
}

// Count 统计投递总数
func (r *ApplicationRepository) Count(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&schema.Application{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("统计投递记录失败: %w", err)
	}
	return count, nil
}
