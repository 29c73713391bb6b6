package service

import (
	"context"
	"testing"
	"time"

	"github.com/placementos/placementos/internal/repository"
	"github.com/placementos/placementos/internal/testutil"
)

func newTestStreakService(t *testing.T, now time.Time) (*StreakService, *repository.StatsRepository) {
	t.Helper()
	db := testutil.OpenTestDB(t)
	repo := repository.NewStatsRepository(db)
	svc := NewStreakService(repo)
	svc.now = func() time.Time { return now }
	return svc, repo
}

func TestStreakFirstTouch(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 30, 0, 0, time.Local)
	svc, repo := newTestStreakService(t, now)
	ctx := context.Background()

	if err := svc.Touch(ctx, "u1"); err != nil {
		t.Fatalf("first touch failed: %v", err)
	}

	cur, err := repo.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("get stats: %v", err)
	}
	if cur == nil {
		t.Fatal("expected stats row after first touch")
	}
	if cur.LastActiveDate != "2026-03-10" {
		t.Errorf("last active date = %q, want 2026-03-10", cur.LastActiveDate)
	}
	if cur.StreakCount != 1 {
		t.Errorf("streak count = %d, want 1", cur.StreakCount)
	}
}

func TestStreakSameDayIdempotent(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)
	svc, repo := newTestStreakService(t, now)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := svc.Touch(ctx, "u1"); err != nil {
			t.Fatalf("touch %d failed: %v", i, err)
		}
	}

	cur, _ := repo.Get(ctx, "u1")
	if cur.StreakCount != 1 {
		t.Errorf("streak count after repeated same-day touches = %d, want 1", cur.StreakCount)
	}
}

func TestStreakConsecutiveDayIncrement(t *testing.T) {
	day1 := time.Date(2026, 3, 10, 23, 50, 0, 0, time.Local)
	svc, repo := newTestStreakService(t, day1)
	ctx := context.Background()

	if err := svc.Touch(ctx, "u1"); err != nil {
		t.Fatalf("day1 touch: %v", err)
	}

	// 跨午夜：昨天活跃，今天再次活跃则 +1
	svc.now = func() time.Time { return day1.AddDate(0, 0, 1) }
	if err := svc.Touch(ctx, "u1"); err != nil {
		t.Fatalf("day2 touch: %v", err)
	}

	cur, _ := repo.Get(ctx, "u1")
	if cur.StreakCount != 2 {
		t.Errorf("streak count = %d, want 2", cur.StreakCount)
	}
	if cur.LastActiveDate != "2026-03-11" {
		t.Errorf("last active date = %q, want 2026-03-11", cur.LastActiveDate)
	}
}

func TestStreakGapResets(t *testing.T) {
	day1 := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	svc, repo := newTestStreakService(t, day1)
	ctx := context.Background()

	if err := svc.Touch(ctx, "u1"); err != nil {
		t.Fatalf("day1 touch: %v", err)
	}

	// 隔两天回来：重置为 1 而不是累加
	svc.now = func() time.Time { return day1.AddDate(0, 0, 3) }
	if err := svc.Touch(ctx, "u1"); err != nil {
		t.Fatalf("day4 touch: %v", err)
	}

	cur, _ := repo.Get(ctx, "u1")
	if cur.StreakCount != 1 {
		t.Errorf("streak count after gap = %d, want 1", cur.StreakCount)
	}
	if cur.LastActiveDate != "2026-03-13" {
		t.Errorf("last active date = %q, want 2026-03-13", cur.LastActiveDate)
	}
}

func TestStreakFutureLastActiveResets(t *testing.T) {
	day1 := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	svc, repo := newTestStreakService(t, day1.AddDate(0, 0, 5))
	ctx := context.Background()

	if err := svc.Touch(ctx, "u1"); err != nil {
		t.Fatalf("seed touch: %v", err)
	}

	// 时钟回拨：存储里的日期在"今天"之后，按断签处理
	svc.now = func() time.Time { return day1 }
	if err := svc.Touch(ctx, "u1"); err != nil {
		t.Fatalf("touch with rolled-back clock: %v", err)
	}

	cur, _ := repo.Get(ctx, "u1")
	if cur.StreakCount != 1 {
		t.Errorf("streak count = %d, want 1", cur.StreakCount)
	}
	if cur.LastActiveDate != "2026-03-10" {
		t.Errorf("last active date = %q, want 2026-03-10", cur.LastActiveDate)
	}
}

func TestStreakTouchRejectsEmptyUser(t *testing.T) {
	svc, _ := newTestStreakService(t, time.Now())
	if err := svc.Touch(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty userID")
	}
}

func TestCurrentStreakLazyDecay(t *testing.T) {
	day1 := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	svc, _ := newTestStreakService(t, day1)
	ctx := context.Background()

	if err := svc.Touch(ctx, "u1"); err != nil {
		t.Fatalf("touch: %v", err)
	}

	// 当天和次日都能读到计数
	for _, offset := range []int{0, 1} {
		svc.now = func() time.Time { return day1.AddDate(0, 0, offset) }
		got, err := svc.CurrentStreak(ctx, "u1")
		if err != nil {
			t.Fatalf("current streak at +%dd: %v", offset, err)
		}
		if got != 1 {
			t.Errorf("streak at +%dd = %d, want 1", offset, got)
		}
	}

	// 第三天起衰减到 0，但不写库
	svc.now = func() time.Time { return day1.AddDate(0, 0, 2) }
	got, err := svc.CurrentStreak(ctx, "u1")
	if err != nil {
		t.Fatalf("current streak at +2d: %v", err)
	}
	if got != 0 {
		t.Errorf("streak at +2d = %d, want 0", got)
	}
}

func TestCurrentStreakUnknownUser(t *testing.T) {
	svc, _ := newTestStreakService(t, time.Now())
	got, err := svc.CurrentStreak(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("current streak: %v", err)
	}
	if got != 0 {
		t.Errorf("streak for unknown user = %d, want 0", got)
	}
}

func TestStreakValue(t *testing.T) {
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.Local)

	cases := []struct {
		name       string
		lastActive string
		count      int
		want       int
	}{
		{"never active", "", 0, 0},
		{"active today", "2026-03-10", 4, 4},
		{"active yesterday", "2026-03-09", 4, 4},
		{"two days stale", "2026-03-08", 4, 0},
		{"future date", "2026-03-12", 4, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := streakValue(tc.lastActive, tc.count, now); got != tc.want {
				t.Errorf("streakValue(%q, %d) = %d, want %d", tc.lastActive, tc.count, got, tc.want)
			}
		})
	}
}
