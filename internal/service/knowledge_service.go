package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	chromem "github.com/philippgille/chromem-go"
	"github.com/placementos/placementos/internal/schema"
)

// KnowledgeService 本地知识检索：把记忆卡和文书向量化后支持语义搜索
type KnowledgeService struct {
	db          *chromem.DB
	collection  *chromem.Collection
	embedder    Embedder
	storagePath string
}

// KnowledgeConfig 配置
type KnowledgeConfig struct {
	StoragePath string // 向量库存储路径
}

// NewKnowledgeService 创建知识检索服务
func NewKnowledgeService(embedder Embedder, cfg *KnowledgeConfig) (*KnowledgeService, error) {
	if cfg == nil {
		cfg = &KnowledgeConfig{}
	}
	if cfg.StoragePath == "" {
		cfg.StoragePath = "./data/knowledge"
	}

	if err := os.MkdirAll(cfg.StoragePath, 0755); err != nil {
		return nil, fmt.Errorf("创建知识库目录失败: %w", err)
	}

	db, err := chromem.NewPersistentDB(cfg.StoragePath, false)
	if err != nil {
		return nil, fmt.Errorf("创建向量数据库失败: %w", err)
	}

	collection, err := db.GetOrCreateCollection("knowledge", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("创建 collection 失败: %w", err)
	}

	return &KnowledgeService{
		db:          db,
		collection:  collection,
		embedder:    embedder,
		storagePath: cfg.StoragePath,
	}, nil
}

// IndexFlashcard 索引一张记忆卡
func (s *KnowledgeService) IndexFlashcard(ctx context.Context, deck *schema.FlashcardDeck, card *schema.Flashcard) error {
	if s.embedder == nil || !s.embedder.IsConfigured() {
		slog.Debug("向量化客户端未配置，跳过索引")
		return nil
	}

	content := fmt.Sprintf("卡组: %s\n问: %s\n答: %s", deck.Title, card.Front, card.Back)

	embeddings, err := s.embedder.Embed(ctx, []string{content})
	if err != nil {
		return fmt.Errorf("生成嵌入失败: %w", err)
	}
	if len(embeddings) == 0 {
		return fmt.Errorf("嵌入结果为空")
	}

	doc := chromem.Document{
		ID:        fmt.Sprintf("flashcard_%d", card.ID),
		Content:   content,
		Embedding: embeddings[0],
		Metadata: map[string]string{
			"type": "flashcard",
			"deck": deck.Title,
		},
	}

	if err := s.collection.AddDocument(ctx, doc); err != nil {
		return fmt.Errorf("添加文档失败: %w", err)
	}

	slog.Debug("索引记忆卡", "card_id", card.ID)
	return nil
}

// IndexDocument 索引一份文书
func (s *KnowledgeService) IndexDocument(ctx context.Context, doc *schema.Document) error {
	if s.embedder == nil || !s.embedder.IsConfigured() {
		return nil
	}
	if doc.Content == "" {
		return nil
	}

	content := fmt.Sprintf("标题: %s\n类型: %s\n正文: %s", doc.Title, doc.Type, doc.Content)

	embeddings, err := s.embedder.Embed(ctx, []string{content})
	if err != nil {
		return fmt.Errorf("生成嵌入失败: %w", err)
	}
	if len(embeddings) == 0 {
		return nil
	}

	entry := chromem.Document{
		ID:        fmt.Sprintf("document_%d", doc.ID),
		Content:   content,
		Embedding: embeddings[0],
		Metadata: map[string]string{
			"type":     "document",
			"doc_type": doc.Type,
		},
	}

	if err := s.collection.AddDocument(ctx, entry); err != nil {
		return fmt.Errorf("添加文档失败: %w", err)
	}

	return nil
}

// KnowledgeResult 检索结果
type KnowledgeResult struct {
	Content    string  `json:"content"`
	Similarity float32 `json:"similarity"`
	Type       string  `json:"type"`
}

// Search 语义检索
func (s *KnowledgeService) Search(ctx context.Context, query string, topK int) ([]KnowledgeResult, error) {
	if s.embedder == nil || !s.embedder.IsConfigured() {
		return nil, fmt.Errorf("向量化客户端未配置")
	}
	if topK <= 0 {
		topK = 5
	}

	queryEmb, err := s.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("生成查询嵌入失败: %w", err)
	}
	if len(queryEmb) == 0 {
		return nil, fmt.Errorf("查询嵌入为空")
	}

	// 余弦相似度检索
	results, err := s.collection.QueryEmbedding(ctx, queryEmb[0], topK, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("向量搜索失败: %w", err)
	}

	out := make([]KnowledgeResult, len(results))
	for i, r := range results {
		out[i] = KnowledgeResult{
			Content:    r.Content,
			Similarity: r.Similarity,
			Type:       r.Metadata["type"],
		}
	}
	return out, nil
}

// Close 关闭服务（chromem-go 持久化库自动保存）
func (s *KnowledgeService) Close() error {
	return nil
}
