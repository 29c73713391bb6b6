package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/placementos/placementos/internal/schema"
	"gorm.io/gorm"
)

// FlashcardRepository 记忆卡仓储（卡组 + 卡片）
type FlashcardRepository struct {
	db *gorm.DB
}

// NewFlashcardRepository 创建记忆卡仓储
func NewFlashcardRepository(db *gorm.DB) *FlashcardRepository {
	return &FlashcardRepository{db: db}
}

// CreateDeck 创建卡组
func (r *FlashcardRepository) CreateDeck(ctx context.Context, deck *schema.FlashcardDeck) error {
	if err := r.db.WithContext(ctx).Create(deck).Error; err != nil {
		return fmt.Errorf("写入卡组失败: %w", err)
	}
	return nil
}

// ListDecks 列出用户全部卡组
func (r *FlashcardRepository) ListDecks(ctx context.Context, userID string) ([]schema.FlashcardDeck, error) {
	var decks []schema.FlashcardDeck
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&decks).Error
	if err != nil {
		return nil, fmt.Errorf("查询卡组失败: %w", err)
	}
	return decks, nil
}

// GetDeck 读取单个卡组，不存在时返回 (nil, nil)
func (r *FlashcardRepository) GetDeck(ctx context.Context, userID string, deckID int64) (*schema.FlashcardDeck, error) {
	var deck schema.FlashcardDeck
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, deckID).
		First(&deck).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("查询卡组失败: %w", err)
	}
	return &deck, nil
}

// DeleteDeck 删除卡组及其全部卡片
func (r *FlashcardRepository) DeleteDeck(ctx context.Context, userID string, deckID int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND id = ?", userID, deckID).Delete(&schema.FlashcardDeck{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			// 卡组不属于该用户时不级联删卡片
			return nil
		}
		return tx.Where("deck_id = ?", deckID).Delete(&schema.Flashcard{}).Error
	})
	if err != nil {
		return fmt.Errorf("删除卡组失败: %w", err)
	}
	return nil
}

// CountDecks 统计卡组总数
func (r *FlashcardRepository) CountDecks(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&schema.FlashcardDeck{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("统计卡组失败: %w", err)
	}
	return count, nil
}

// CreateCard 向卡组添加卡片
func (r *FlashcardRepository) CreateCard(ctx context.Context, card *schema.Flashcard) error {
	if err := r.db.WithContext(ctx).Create(card).Error; err != nil {
		return fmt.Errorf("写入卡片失败: %w", err)
	}
	return nil
}

// ListCards 列出卡组内全部卡片
func (r *FlashcardRepository) ListCards(ctx context.Context, deckID int64) ([]schema.Flashcard, error) {
	var cards []schema.Flashcard
	err := r.db.WithContext(ctx).
		Where("deck_id = ?", deckID).
		Order("id ASC").
		Find(&cards).Error
	if err != nil {
		return nil, fmt.Errorf("查询卡片失败: %w", err)
	}
	return cards, nil
}

// DeleteCard 删除单张卡片
func (r *FlashcardRepository) DeleteCard(ctx context.Context, deckID, cardID int64) error {
	err := r.db.WithContext(ctx).
		Where("deck_id = ? AND id = ?", deckID, cardID).
		Delete(&schema.Flashcard{}).Error
	if err != nil {
		return fmt.Errorf("删除卡片失败: %w", err)
	}
	return nil
}
