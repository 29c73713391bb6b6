package service

import (
	"context"
	"testing"
	"time"

	"github.com/placementos/placementos/internal/eventbus"
	"github.com/placementos/placementos/internal/repository"
	"github.com/placementos/placementos/internal/schema"
	"github.com/placementos/placementos/internal/testutil"
)

// ===== Mock Implementations =====

type fakeHub struct {
	events []eventbus.Event
}

func (f *fakeHub) Publish(evt eventbus.Event) {
	f.events = append(f.events, evt)
}

func newTestActivityService(t *testing.T, now time.Time) (*ActivityService, *repository.StatsRepository, *fakeHub) {
	t.Helper()
	db := testutil.OpenTestDB(t)
	statsRepo := repository.NewStatsRepository(db)
	streak := NewStreakService(statsRepo)
	streak.now = func() time.Time { return now }
	hub := &fakeHub{}
	svc := NewActivityService(repository.NewActivityRepository(db), streak, hub)
	return svc, statsRepo, hub
}

func TestLogActivityAppendsAndTouchesStreak(t *testing.T) {
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.Local)
	svc, statsRepo, hub := newTestActivityService(t, now)
	ctx := context.Background()

	activity, err := svc.Log(ctx, "u1", schema.ActivityApplication, "投递 Acme")
	if err != nil {
		t.Fatalf("log activity: %v", err)
	}
	if activity.ID == 0 {
		t.Error("expected activity ID to be assigned")
	}

	cur, err := statsRepo.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("get stats: %v", err)
	}
	if cur == nil || cur.StreakCount != 1 {
		t.Errorf("expected streak touched to 1, got %+v", cur)
	}

	if len(hub.events) != 1 || hub.events[0].Type != eventbus.EventActivityLogged {
		t.Errorf("expected one activity_logged event, got %+v", hub.events)
	}
}

func TestLogActivityRejectsUnknownCategory(t *testing.T) {
	svc, _, _ := newTestActivityService(t, time.Now())
	if _, err := svc.Log(context.Background(), "u1", "gaming", "打游戏"); err == nil {
		t.Fatal("expected error for unknown category")
	}
}

func TestLogActivityRejectsEmptyUser(t *testing.T) {
	svc, _, _ := newTestActivityService(t, time.Now())
	if _, err := svc.Log(context.Background(), "  ", schema.ActivityEmail, "跟进邮件"); err == nil {
		t.Fatal("expected error for blank userID")
	}
}

func TestListRecentNewestFirst(t *testing.T) {
	svc, _, _ := newTestActivityService(t, time.Now())
	ctx := context.Background()

	categories := []string{schema.ActivityApplication, schema.ActivityEmail, schema.ActivityFlashcard}
	for _, c := range categories {
		if _, err := svc.Log(ctx, "u1", c, ""); err != nil {
			t.Fatalf("log %s: %v", c, err)
		}
	}

	got, err := svc.ListRecent(ctx, "u1", 2)
	if err != nil {
		t.Fatalf("list recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d activities, want 2", len(got))
	}
	// 插入序的倒序
	if got[0].Category != schema.ActivityFlashcard || got[1].Category != schema.ActivityEmail {
		t.Errorf("unexpected order: %s, %s", got[0].Category, got[1].Category)
	}
}

func TestListRecentRejectsBadLimit(t *testing.T) {
	svc, _, _ := newTestActivityService(t, time.Now())
	if _, err := svc.ListRecent(context.Background(), "u1", 0); err == nil {
		t.Fatal("expected error for non-positive limit")
	}
}
