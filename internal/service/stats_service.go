package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/placementos/placementos/internal/schema"
)

const (
	recentActivitySample  = 10 // 近期活动采样上限
	upcomingDeadlineLimit = 3  // 仪表盘展示的近期截止数
)

// Deadline 即将到来的日程
type Deadline struct {
	Title string    `json:"title"`
	Date  time.Time `json:"date"`
}

// Stats 仪表盘统计视图
type Stats struct {
	PlacementProbability int        `json:"placement_probability"`
	Streak               int        `json:"streak"`
	LastActiveDate       string     `json:"last_active_date"`
	UpcomingDeadlines    []Deadline `json:"upcoming_deadlines"`
}

// StatsService 统计编排：现读快照 → 打分 → 拼装视图
//
// 概率永远按当前快照重算，库里的 placement_probability 只是展示缓存，
// 本服务只写不读它。
type StatsService struct {
	apps       ApplicationCounter
	interviews InterviewCounter
	decks      DeckCounter
	resume     ResumeChecker
	activities ActivityStore
	events     UpcomingEventLister
	stats      StatsStore
	streak     *StreakService
	policy     ScorePolicy
	now        func() time.Time // 测试可注入
}

// NewStatsService 创建统计服务
func NewStatsService(
	apps ApplicationCounter,
	interviews InterviewCounter,
	decks DeckCounter,
	resume ResumeChecker,
	activities ActivityStore,
	events UpcomingEventLister,
	stats StatsStore,
	streak *StreakService,
	policy ScorePolicy,
) *StatsService {
	return &StatsService{
		apps:       apps,
		interviews: interviews,
		decks:      decks,
		resume:     resume,
		activities: activities,
		events:     events,
		stats:      stats,
		streak:     streak,
		policy:     policy,
		now:        time.Now,
	}
}

// GetStats 获取仪表盘统计
func (s *StatsService) GetStats(ctx context.Context, userID string) (*Stats, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("userID 不能为空")
	}

	cur, err := s.stats.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cur == nil {
		// 新用户首次读取：落一行空状态，之后的读写不再分叉
		cur = &schema.UserStats{UserID: userID}
		if err := s.stats.Upsert(ctx, cur); err != nil {
			return nil, err
		}
	}

	snapshot, err := s.buildSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	probability := s.policy.Score(snapshot)

	// 回写仅刷新展示缓存，失败不影响本次结果
	if err := s.stats.UpdateProbabilityCache(ctx, userID, probability); err != nil {
		slog.Warn("刷新概率缓存失败", "user_id", userID, "error", err)
	}

	upcoming, err := s.events.ListUpcoming(ctx, userID, s.now(), upcomingDeadlineLimit)
	if err != nil {
		return nil, err
	}
	deadlines := make([]Deadline, 0, len(upcoming))
	for _, e := range upcoming {
		deadlines = append(deadlines, Deadline{Title: e.Title, Date: e.Date})
	}

	return &Stats{
		PlacementProbability: probability,
		Streak:               snapshot.StreakDays,
		LastActiveDate:       cur.LastActiveDate,
		UpcomingDeadlines:    deadlines,
	}, nil
}

// buildSnapshot 从各集合现读计数，组装打分快照
func (s *StatsService) buildSnapshot(ctx context.Context, userID string) (Snapshot, error) {
	appCount, err := s.apps.Count(ctx, userID)
	if err != nil {
		return Snapshot{}, err
	}

	interviewCount, err := s.interviews.Count(ctx, userID)
	if err != nil {
		return Snapshot{}, err
	}

	resumePresent, err := s.resume.Exists(ctx, userID)
	if err != nil {
		return Snapshot{}, err
	}

	deckCount, err := s.decks.CountDecks(ctx, userID)
	if err != nil {
		return Snapshot{}, err
	}

	streakDays, err := s.streak.CurrentStreak(ctx, userID)
	if err != nil {
		return Snapshot{}, err
	}

	recent, err := s.activities.ListRecent(ctx, userID, recentActivitySample)
	if err != nil {
		return Snapshot{}, err
	}

	return Snapshot{
		ApplicationCount:    int(appCount),
		InterviewCount:      int(interviewCount),
		ResumePresent:       resumePresent,
		FlashcardDeckCount:  int(deckCount),
		StreakDays:          streakDays,
		RecentActivityCount: len(recent),
	}, nil
}
