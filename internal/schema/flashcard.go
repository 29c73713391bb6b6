package schema

import "time"

// FlashcardDeck 记忆卡组
type FlashcardDeck struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    string    `gorm:"size:64;index" json:"user_id"`
	Title     string    `gorm:"size:255" json:"title"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName 指定表名
func (FlashcardDeck) TableName() string {
	return "flashcard_decks"
}

// Flashcard 卡组中的单张卡片
type Flashcard struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	DeckID    int64     `gorm:"index" json:"deck_id"`
	Front     string    `gorm:"type:text" json:"front"`
	Back      string    `gorm:"type:text" json:"back"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName 指定表名
func (Flashcard) TableName() string {
	return "flashcards"
}
