package repository

import (
	"context"
	"fmt"

	"github.com/placementos/placementos/internal/schema"
	"gorm.io/gorm"
)

// InterviewRepository 面试模拟仓储
type InterviewRepository struct {
	db *gorm.DB
}

// NewInterviewRepository 创建面试仓储
func NewInterviewRepository(db *gorm.DB) *InterviewRepository {
	return &InterviewRepository{db: db}
}

// Create 创建面试会话
func (r *InterviewRepository) Create(ctx context.Context, interview *schema.Interview) error {
	if err := r.db.WithContext(ctx).Create(interview).Error; err != nil {
		return fmt.Errorf("写入面试记录失败: %w", err)
	}
	return nil
}

// List 按创建时间倒序列出
func (r *InterviewRepository) List(ctx context.Context, userID string) ([]schema.Interview, error) {
	var interviews []schema.Interview
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&interviews).Error
	if err != nil {
		return nil, fmt.Errorf("查询面试记录失败: %w", err)
	}
	return interviews, nil
}

// UpdateMessages 覆盖会话消息列表
func (r *InterviewRepository) UpdateMessages(ctx context.Context, userID string, id int64, messages schema.JSONMessages) error {
	err := r.db.WithContext(ctx).
		Model(&schema.Interview{}).
		Where("user_id = ? AND id = ?", userID, id).
		Update("messages", messages).Error
	if err != nil {
		return fmt.Errorf("更新面试消息失败: %w", err)
	}
	return nil
}

// Count 统计面试会话总数
func (r *InterviewRepository) Count(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&schema.Interview{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("统计面试记录失败: %w", err)
	}
	return count, nil
}
