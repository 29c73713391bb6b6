package service

import (
	"context"
	"testing"

	"github.com/placementos/placementos/internal/repository"
	"github.com/placementos/placementos/internal/schema"
	"github.com/placementos/placementos/internal/testutil"
	"gorm.io/gorm"
)

func newTestExportService(t *testing.T) (*ExportService, *gorm.DB) {
	t.Helper()
	db := testutil.OpenTestDB(t)
	svc := NewExportService(
		repository.NewApplicationRepository(db),
		repository.NewEventRepository(db),
		repository.NewFlashcardRepository(db),
		repository.NewRoadmapRepository(db),
		repository.NewInterviewRepository(db),
		repository.NewDocumentRepository(db),
		repository.NewSnippetRepository(db),
		repository.NewExpenseRepository(db),
		repository.NewResumeRepository(db),
		repository.NewProfileRepository(db),
		repository.NewActivityRepository(db),
	)
	return svc, db
}

func TestExportImportRoundTrip(t *testing.T) {
	src, _ := newTestExportService(t)
	ctx := context.Background()
	const uid = "u1"

	if err := src.apps.Create(ctx, &schema.Application{UserID: uid, Company: "Acme", Position: "后端"}); err != nil {
		t.Fatalf("seed application: %v", err)
	}
	deck := &schema.FlashcardDeck{UserID: uid, Title: "操作系统"}
	if err := src.flashcards.CreateDeck(ctx, deck); err != nil {
		t.Fatalf("seed deck: %v", err)
	}
	if err := src.flashcards.CreateCard(ctx, &schema.Flashcard{DeckID: deck.ID, Front: "进程与线程", Back: "..."}); err != nil {
		t.Fatalf("seed card: %v", err)
	}
	if err := src.resumes.Save(ctx, &schema.Resume{UserID: uid, Content: "简历"}); err != nil {
		t.Fatalf("seed resume: %v", err)
	}
	if err := src.profiles.Save(ctx, &schema.Profile{UserID: uid, Name: "张三", Theme: "dark"}); err != nil {
		t.Fatalf("seed profile: %v", err)
	}

	data, err := src.Export(ctx, uid)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if len(data.Applications) != 1 || len(data.Decks) != 1 || len(data.Decks[0].Cards) != 1 {
		t.Fatalf("unexpected export shape: %+v", data)
	}
	if data.Resume != "简历" {
		t.Errorf("resume = %q, want 简历", data.Resume)
	}

	// 导入到另一个空库的另一个用户
	dst, _ := newTestExportService(t)
	const uid2 = "u2"
	result, err := dst.Import(ctx, uid2, data)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if result.BatchID == "" {
		t.Error("expected non-empty batch ID")
	}
	// 1 投递 + 1 卡组 + 1 卡片 + 1 简历 + 1 档案
	if result.Imported != 5 {
		t.Errorf("imported = %d, want 5", result.Imported)
	}

	apps, err := dst.apps.List(ctx, uid2)
	if err != nil {
		t.Fatalf("list imported apps: %v", err)
	}
	if len(apps) != 1 || apps[0].Company != "Acme" || apps[0].UserID != uid2 {
		t.Errorf("unexpected imported apps: %+v", apps)
	}

	decks, err := dst.flashcards.ListDecks(ctx, uid2)
	if err != nil {
		t.Fatalf("list imported decks: %v", err)
	}
	if len(decks) != 1 {
		t.Fatalf("got %d decks, want 1", len(decks))
	}
	cards, err := dst.flashcards.ListCards(ctx, decks[0].ID)
	if err != nil {
		t.Fatalf("list imported cards: %v", err)
	}
	if len(cards) != 1 || cards[0].Front != "进程与线程" {
		t.Errorf("unexpected imported cards: %+v", cards)
	}
}

func TestImportDoesNotOverwriteExistingResume(t *testing.T) {
	svc, _ := newTestExportService(t)
	ctx := context.Background()
	const uid = "u1"

	if err := svc.resumes.Save(ctx, &schema.Resume{UserID: uid, Content: "本地简历"}); err != nil {
		t.Fatalf("seed resume: %v", err)
	}

	if _, err := svc.Import(ctx, uid, &ExportData{Resume: "外来简历"}); err != nil {
		t.Fatalf("import: %v", err)
	}

	got, err := svc.resumes.Get(ctx, uid)
	if err != nil {
		t.Fatalf("get resume: %v", err)
	}
	if got.Content != "本地简历" {
		t.Errorf("resume = %q, want 本地简历 (untouched)", got.Content)
	}
}

func TestImportMergesProfileFieldwise(t *testing.T) {
	svc, _ := newTestExportService(t)
	ctx := context.Background()
	const uid = "u1"

	if err := svc.profiles.Save(ctx, &schema.Profile{UserID: uid, Name: "张三", Email: "zhang@example.com"}); err != nil {
		t.Fatalf("seed profile: %v", err)
	}

	incoming := &ExportData{Profile: &schema.Profile{TargetRole: "后端工程师"}}
	if _, err := svc.Import(ctx, uid, incoming); err != nil {
		t.Fatalf("import: %v", err)
	}

	got, err := svc.profiles.Get(ctx, uid)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if got.Name != "张三" || got.Email != "zhang@example.com" {
		t.Errorf("existing fields lost: %+v", got)
	}
	if got.TargetRole != "后端工程师" {
		t.Errorf("target role = %q, want 后端工程师", got.TargetRole)
	}
}

func TestImportRejectsNilData(t *testing.T) {
	svc, _ := newTestExportService(t)
	if _, err := svc.Import(context.Background(), "u1", nil); err == nil {
		t.Fatal("expected error for nil data")
	}
}
