package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/placementos/placementos/internal/schema"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileRepository 用户档案仓储（每用户单例）
type ProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository 创建档案仓储
func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Get 读取档案，不存在时返回 (nil, nil)
func (r *ProfileRepository) Get(ctx context.Context, userID string) (*schema.Profile, error) {
	var profile schema.Profile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("查询用户档案失败: %w", err)
	}
	return &profile, nil
}

// Save 插入或更新档案
func (r *ProfileRepository) Save(ctx context.Context, profile *schema.Profile) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(profile).Error
	if err != nil {
		return fmt.Errorf("保存用户档案失败: %w", err)
	}
	return nil
}
