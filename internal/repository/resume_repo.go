package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/placementos/placementos/internal/schema"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ResumeRepository 主简历仓储（每用户单例）
type ResumeRepository struct {
	db *gorm.DB
}

// NewResumeRepository 创建简历仓储
func NewResumeRepository(db *gorm.DB) *ResumeRepository {
	return &ResumeRepository{db: db}
}

// Get 读取简历正文，不存在时返回 (nil, nil)
func (r *ResumeRepository) Get(ctx context.Context, userID string) (*schema.Resume, error) {
	var resume schema.Resume
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&resume).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("查询简历失败: %w", err)
	}
	return &resume, nil
}

// Save 保存（覆盖）简历正文
func (r *ResumeRepository) Save(ctx context.Context, resume *schema.Resume) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(resume).Error
	if err != nil {
		return fmt.Errorf("保存简历失败: %w", err)
	}
	return nil
}

// Exists 判断用户是否已上传简历（正文非空才算）
func (r *ResumeRepository) Exists(ctx context.Context, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&schema.Resume{}).
		Where("user_id = ? AND content != ''", userID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("查询简历状态失败: %w", err)
	}
	return count > 0, nil
}
