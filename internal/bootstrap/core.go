package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/placementos/placementos/internal/eventbus"
	"github.com/placementos/placementos/internal/pkg/config"
	"github.com/placementos/placementos/internal/repository"
	"github.com/placementos/placementos/internal/service"
)

// Core 持有全部核心依赖
type Core struct {
	Cfg *config.Config
	DB  *repository.Database
	Hub *eventbus.Hub

	Repos struct {
		Activity    *repository.ActivityRepository
		Stats       *repository.StatsRepository
		Application *repository.ApplicationRepository
		Interview   *repository.InterviewRepository
		Document    *repository.DocumentRepository
		Resume      *repository.ResumeRepository
		Flashcard   *repository.FlashcardRepository
		Event       *repository.EventRepository
		Snippet     *repository.SnippetRepository
		Expense     *repository.ExpenseRepository
		Roadmap     *repository.RoadmapRepository
		Profile     *repository.ProfileRepository
	}

	Services struct {
		Activity  *service.ActivityService
		Streak    *service.StreakService
		Stats     *service.StatsService
		Export    *service.ExportService
		Knowledge *service.KnowledgeService
	}
}

// Options 可选依赖
type Options struct {
	// Embedder 向量化客户端，由调用方注入；为 nil 时知识检索不可用
	Embedder service.Embedder
}

// NewCore 构建核心依赖
func NewCore(cfgPath string, opts Options) (*Core, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	config.SetupLogger(cfg.App.LogLevel)

	// 首次启动生成本地用户 ID 并写回配置
	if cfg.Server.UserID == "" {
		cfg.Server.UserID = uuid.NewString()
		if cfgPath != "" {
			if err := config.WriteFile(cfgPath, cfg); err != nil {
				slog.Warn("写回用户 ID 失败", "error", err)
			}
		}
		slog.Info("已生成本地用户", "user_id", cfg.Server.UserID)
	}

	db, err := repository.NewDatabase(cfg.Storage.DBPath)
	if err != nil {
		return nil, err
	}

	c := &Core{Cfg: cfg, DB: db, Hub: eventbus.NewHub()}

	// Repos
	c.Repos.Activity = repository.NewActivityRepository(db.DB)
	c.Repos.Stats = repository.NewStatsRepository(db.DB)
	c.Repos.Application = repository.NewApplicationRepository(db.DB)
	c.Repos.Interview = repository.NewInterviewRepository(db.DB)
	c.Repos.Document = repository.NewDocumentRepository(db.DB)
	c.Repos.Resume = repository.NewResumeRepository(db.DB)
	c.Repos.Flashcard = repository.NewFlashcardRepository(db.DB)
	c.Repos.Event = repository.NewEventRepository(db.DB)
	c.Repos.Snippet = repository.NewSnippetRepository(db.DB)
	c.Repos.Expense = repository.NewExpenseRepository(db.DB)
	c.Repos.Roadmap = repository.NewRoadmapRepository(db.DB)
	c.Repos.Profile = repository.NewProfileRepository(db.DB)

	// Services
	c.Services.Streak = service.NewStreakService(c.Repos.Stats)
	c.Services.Activity = service.NewActivityService(c.Repos.Activity, c.Services.Streak, c.Hub)
	c.Services.Stats = service.NewStatsService(
		c.Repos.Application,
		c.Repos.Interview,
		c.Repos.Flashcard,
		c.Repos.Resume,
		c.Repos.Activity,
		c.Repos.Event,
		c.Repos.Stats,
		c.Services.Streak,
		service.DefaultScorePolicy{},
	)
	c.Services.Export = service.NewExportService(
		c.Repos.Application,
		c.Repos.Event,
		c.Repos.Flashcard,
		c.Repos.Roadmap,
		c.Repos.Interview,
		c.Repos.Document,
		c.Repos.Snippet,
		c.Repos.Expense,
		c.Repos.Resume,
		c.Repos.Profile,
		c.Repos.Activity,
	)

	// 向量化客户端由调用方注入时才启用知识检索
	if opts.Embedder != nil {
		ks, err := service.NewKnowledgeService(opts.Embedder, &service.KnowledgeConfig{
			StoragePath: cfg.Storage.KnowledgePath,
		})
		if err != nil {
			slog.Warn("初始化知识检索失败", "error", err)
		} else {
			c.Services.Knowledge = ks
		}
	}

	return c, nil
}

// Close 关闭核心依赖资源
func (c *Core) Close() error {
	if c == nil {
		return nil
	}
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}

// RequireHealthyDB 数据库处于安全模式时拒绝写入
func (c *Core) RequireHealthyDB() error {
	if c.DB != nil && c.DB.SafeMode {
		return fmt.Errorf("数据库处于安全模式: %s", c.DB.MigrationError)
	}
	return nil
}
