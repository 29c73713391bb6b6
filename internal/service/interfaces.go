package service

import (
	"context"
	"time"

	"github.com/placementos/placementos/internal/eventbus"
	"github.com/placementos/placementos/internal/schema"
)

// 仓储/外部依赖的最小接口集合（ISP）

type ActivityStore interface {
	Append(ctx context.Context, activity *schema.Activity) error
	ListRecent(ctx context.Context, userID string, limit int) ([]schema.Activity, error)
}

type StatsStore interface {
	Get(ctx context.Context, userID string) (*schema.UserStats, error)
	Upsert(ctx context.Context, stats *schema.UserStats) error
	UpdateProbabilityCache(ctx context.Context, userID string, probability int) error
}

type ApplicationCounter interface {
	Count(ctx context.Context, userID string) (int64, error)
}

type InterviewCounter interface {
	Count(ctx context.Context, userID string) (int64, error)
}

type DeckCounter interface {
	CountDecks(ctx context.Context, userID string) (int64, error)
}

type ResumeChecker interface {
	Exists(ctx context.Context, userID string) (bool, error)
}

type UpcomingEventLister interface {
	ListUpcoming(ctx context.Context, userID string, after time.Time, limit int) ([]schema.Event, error)
}

// Publisher 事件广播（可为 nil，写入链路不依赖订阅者）
type Publisher interface {
	Publish(evt eventbus.Event)
}

// Embedder 向量化客户端。具体模型接入方是外部协作方，本仓库只持有接口。
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	IsConfigured() bool
}
