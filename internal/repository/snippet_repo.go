package repository

import (
	"context"
	"fmt"

	"github.com/placementos/placementos/internal/schema"
	"gorm.io/gorm"
)

// SnippetRepository 代码片段仓储
type SnippetRepository struct {
	db *gorm.DB
}

// NewSnippetRepository 创建片段仓储
func NewSnippetRepository(db *gorm.DB) *SnippetRepository {
	return &SnippetRepository{db: db}
}

// Create 创建片段
func (r *SnippetRepository) Create(ctx context.Context, snippet *schema.CodeSnippet) error {
	if err := r.db.WithContext(ctx).Create(snippet).Error; err != nil {
		return fmt.Errorf("写入代码片段失败: %w", err)
	}
	return nil
}

// List 按创建时间倒序列出
func (r *SnippetRepository) List(ctx context.Context, userID string) ([]schema.CodeSnippet, error) {
	var snippets []schema.CodeSnippet
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&snippets).Error
	if err != nil {
		return nil, fmt.Errorf("查询代码片段失败: %w", err)
	}
	return snippets, nil
}

// Update 更新片段内容
func (r *SnippetRepository) Update(ctx context.Context, userID string, id int64, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).
		Model(&schema.CodeSnippet{}).
		Where("user_id = ? AND id = ?", userID, id).
		Updates(fields).Error
	if err != nil {
		return fmt.Errorf("更新代码片段失败: %w", err)
	}
	return nil
}

// Delete 删除片段
func (r *SnippetRepository) Delete(ctx context.Context, userID string, id int64) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&schema.CodeSnippet{}).Error
	if err != nil {
		return fmt.Errorf("删除代码片段失败: %w", err)
	}
	return nil
}
