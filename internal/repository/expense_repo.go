package repository

import (
	"context"
	"fmt"

	"github.com/placementos/placementos/internal/schema"
	"gorm.io/gorm"
)

// ExpenseRepository 求职开销仓储
type ExpenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository 创建开销仓储
func NewExpenseRepository(db *gorm.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

// Create 创建开销记录
func (r *ExpenseRepository) Create(ctx context.Context, expense *schema.Expense) error {
	if err := r.db.WithContext(ctx).Create(expense).Error; err != nil {
		return fmt.Errorf("写入开销记录失败: %w", err)
	}
	return nil
}

// List 按时间倒序列出
func (r *ExpenseRepository) List(ctx context.Context, userID string) ([]schema.Expense, error) {
	var expenses []schema.Expense
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("spent_at DESC").
		Find(&expenses).Error
	if err != nil {
		return nil, fmt.Errorf("查询开销记录失败: %w", err)
	}
	return expenses, nil
}

// Delete 删除开销记录
func (r *ExpenseRepository) Delete(ctx context.Context, userID string, id int64) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&schema.Expense{}).Error
	if err != nil {
		return fmt.Errorf("删除开销记录失败: %w", err)
	}
	return nil
}
