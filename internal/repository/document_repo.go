package repository

import (
	"context"
	"fmt"

	"github.com/placementos/placementos/internal/schema"
	"gorm.io/gorm"
)

// DocumentRepository 求职文书仓储
type DocumentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository 创建文书仓储
func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// Create 创建文书
func (r *DocumentRepository) Create(ctx context.Context, doc *schema.Document) error {
	if err := r.db.WithContext(ctx).Create(doc).Error; err != nil {
		return fmt.Errorf("写入文书失败: %w", err)
	}
	return nil
}

// List 按创建时间倒序列出
func (r *DocumentRepository) List(ctx context.Context, userID string) ([]schema.Document, error) {
	var docs []schema.Document
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&docs).Error
	if err != nil {
		return nil, fmt.Errorf("查询文书失败: %w", err)
	}
	return docs, nil
}

// Update 更新标题或正文
func (r *DocumentRepository) Update(ctx context.Context, userID string, id int64, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).
		Model(&schema.Document{}).
		Where("user_id = ? AND id = ?", userID, id).
		Updates(fields).Error
	if err != nil {
		return fmt.Errorf("更新文书失败: %w", err)
	}
	return nil
}

// Delete 删除文书
func (r *DocumentRepository) Delete(ctx context.Context, userID string, id int64) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&schema.Document{}).Error
	if err != nil {
		return fmt.Errorf("删除文书失败: %w", err)
	}
	return nil
}
