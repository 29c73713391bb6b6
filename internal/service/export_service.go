package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/placementos/placementos/internal/repository"
	"github.com/placementos/placementos/internal/schema"
)

const exportActivityLimit = 100

// DeckExport 卡组及其全部卡片
type DeckExport struct {
	Deck  schema.FlashcardDeck `json:"deck"`
	Cards []schema.Flashcard   `json:"cards"`
}

// ExportData 单用户全量导出
type ExportData struct {
	ExportedAt   time.Time            `json:"exported_at"`
	Applications []schema.Application `json:"applications"`
	Events       []schema.Event       `json:"events"`
	Decks        []DeckExport         `json:"flashcard_decks"`
	Roadmaps     []schema.Roadmap     `json:"roadmaps"`
	Interviews   []schema.Interview   `json:"interviews"`
	Documents    []schema.Document    `json:"documents"`
	Snippets     []schema.CodeSnippet `json:"code_snippets"`
	Expenses     []schema.Expense     `json:"expenses"`
	Resume       string               `json:"resume"`
	Profile      *schema.Profile      `json:"profile"`
	Activities   []schema.Activity    `json:"activities"`
}

// ImportResult 导入结果
type ImportResult struct {
	BatchID  string `json:"batch_id"`
	Imported int    `json:"imported"`
}

// ExportService 数据导出/导入
type ExportService struct {
	apps       *repository.ApplicationRepository
	events     *repository.EventRepository
	flashcards *repository.FlashcardRepository
	roadmaps   *repository.RoadmapRepository
	interviews *repository.InterviewRepository
	documents  *repository.DocumentRepository
	snippets   *repository.SnippetRepository
	expenses   *repository.ExpenseRepository
	resumes    *repository.ResumeRepository
	profiles   *repository.ProfileRepository
	activities *repository.ActivityRepository
}

// NewExportService 创建导出服务
func NewExportService(
	apps *repository.ApplicationRepository,
	events *repository.EventRepository,
	flashcards *repository.FlashcardRepository,
	roadmaps *repository.RoadmapRepository,
	interviews *repository.InterviewRepository,
	documents *repository.DocumentRepository,
	snippets *repository.SnippetRepository,
	expenses *repository.ExpenseRepository,
	resumes *repository.ResumeRepository,
	profiles *repository.ProfileRepository,
	activities *repository.ActivityRepository,
) *ExportService {
	return &ExportService{
		apps:       apps,
		events:     events,
		flashcards: flashcards,
		roadmaps:   roadmaps,
		interviews: interviews,
		documents:  documents,
		snippets:   snippets,
		expenses:   expenses,
		resumes:    resumes,
		profiles:   profiles,
		activities: activities,
	}
}

// Export 导出用户全部数据
func (s *ExportService) Export(ctx context.Context, userID string) (*ExportData, error) {
	if userID == "" {
		return nil, fmt.Errorf("userID 不能为空")
	}

	data := &ExportData{ExportedAt: time.Now()}
	var err error

	if data.Applications, err = s.apps.List(ctx, userID); err != nil {
		return nil, err
	}
	if data.Events, err = s.events.List(ctx, userID); err != nil {
		return nil, err
	}

	decks, err := s.flashcards.ListDecks(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, deck := range decks {
		cards, err := s.flashcards.ListCards(ctx, deck.ID)
		if err != nil {
			return nil, err
		}
		data.Decks = append(data.Decks, DeckExport{Deck: deck, Cards: cards})
	}

	if data.Roadmaps, err = s.roadmaps.List(ctx, userID); err != nil {
		return nil, err
	}
	if data.Interviews, err = s.interviews.List(ctx, userID); err != nil {
		return nil, err
	}
	if data.Documents, err = s.documents.List(ctx, userID); err != nil {
		return nil, err
	}
	if data.Snippets, err = s.snippets.List(ctx, userID); err != nil {
		return nil, err
	}
	if data.Expenses, err = s.expenses.List(ctx, userID); err != nil {
		return nil, err
	}

	resume, err := s.resumes.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if resume != nil {
		data.Resume = resume.Content
	}

	if data.Profile, err = s.profiles.Get(ctx, userID); err != nil {
		return nil, err
	}
	if data.Activities, err = s.activities.ListRecent(ctx, userID, exportActivityLimit); err != nil {
		return nil, err
	}

	return data, nil
}

// Import 合并导入（不覆盖已有记录，全部以新 ID 写入）
//
// 简历只在尚未上传时导入；档案按字段合并，导入值非空则覆盖。
func (s *ExportService) Import(ctx context.Context, userID string, data *ExportData) (*ImportResult, error) {
	if userID == "" {
		return nil, fmt.Errorf("userID 不能为空")
	}
	if data == nil {
		return nil, fmt.Errorf("导入数据不能为空")
	}

	batchID := uuid.NewString()
	imported := 0

	for _, app := range data.Applications {
		app.ID = 0
		app.UserID = userID
		if err := s.apps.Create(ctx, &app); err != nil {
			return nil, fmt.Errorf("导入投递记录失败: %w", err)
		}
		imported++
	}

	for _, event := range data.Events {
		event.ID = 0
		event.UserID = userID
		if err := s.events.Create(ctx, &event); err != nil {
			return nil, fmt.Errorf("导入事件失败: %w", err)
		}
		imported++
	}

	for _, de := range data.Decks {
		deck := de.Deck
		deck.ID = 0
		deck.UserID = userID
		if err := s.flashcards.CreateDeck(ctx, &deck); err != nil {
			return nil, fmt.Errorf("导入卡组失败: %w", err)
		}
		imported++
		for _, card := range de.Cards {
			card.ID = 0
			card.DeckID = deck.ID
			if err := s.flashcards.CreateCard(ctx, &card); err != nil {
				return nil, fmt.Errorf("导入卡片失败: %w", err)
			}
			imported++
		}
	}

	for _, roadmap := range data.Roadmaps {
		roadmap.ID = 0
		roadmap.UserID = userID
		if err := s.roadmaps.Create(ctx, &roadmap); err != nil {
			return nil, fmt.Errorf("导入学习路线失败: %w", err)
		}
		imported++
	}

	if data.Resume != "" {
		existing, err := s.resumes.Get(ctx, userID)
		if err != nil {
			return nil, err
		}
		if existing == nil || existing.Content == "" {
			if err := s.resumes.Save(ctx, &schema.Resume{UserID: userID, Content: data.Resume}); err != nil {
				return nil, fmt.Errorf("导入简历失败: %w", err)
			}
			imported++
		}
	}

	if data.Profile != nil {
		merged, err := s.mergeProfile(ctx, userID, data.Profile)
		if err != nil {
			return nil, err
		}
		if err := s.profiles.Save(ctx, merged); err != nil {
			return nil, fmt.Errorf("导入档案失败: %w", err)
		}
		imported++
	}

	slog.Info("数据导入完成", "user_id", userID, "batch_id", batchID, "imported", imported)
	return &ImportResult{BatchID: batchID, Imported: imported}, nil
}

// mergeProfile 合并档案：导入值非空则覆盖现有值
func (s *ExportService) mergeProfile(ctx context.Context, userID string, incoming *schema.Profile) (*schema.Profile, error) {
	existing, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		merged := *incoming
		merged.UserID = userID
		return &merged, nil
	}

	merged := *existing
	if incoming.Name != "" {
		merged.Name = incoming.Name
	}
	if incoming.Email != "" {
		merged.Email = incoming.Email
	}
	if incoming.TargetRole != "" {
		merged.TargetRole = incoming.TargetRole
	}
	if incoming.GraduationYear != "" {
		merged.GraduationYear = incoming.GraduationYear
	}
	if incoming.Theme != "" {
		merged.Theme = incoming.Theme
	}
	return &merged, nil
}
