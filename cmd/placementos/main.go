package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/placementos/placementos/internal/bootstrap"
	"github.com/placementos/placementos/internal/httpapi"
	"github.com/placementos/placementos/internal/pkg/config"
)

func main() {
	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "配置文件路径，缺省使用可执行文件旁的 config/config.yaml")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfgPath == "" {
		p, err := config.DefaultConfigPath()
		if err != nil {
			slog.Error("解析默认配置路径失败", "error", err)
			os.Exit(1)
		}
		cfgPath = p
	}
	// 首次启动落默认配置
	if _, err := os.Stat(cfgPath); errors.Is(err, os.ErrNotExist) {
		_ = config.WriteFile(cfgPath, config.Default())
	}

	core, err := bootstrap.NewCore(cfgPath, bootstrap.Options{})
	if err != nil {
		slog.Error("启动失败", "error", err)
		os.Exit(1)
	}
	defer core.Close()

	slog.Info("PlacementOS 启动中...", "name", core.Cfg.App.Name, "version", core.Cfg.App.Version)

	if err := config.Watch(ctx, cfgPath, core.Hub); err != nil {
		slog.Warn("配置热更新不可用", "error", err)
	}

	server, err := httpapi.Start(ctx, core, httpapi.Options{ListenAddr: core.Cfg.Server.ListenAddr})
	if err != nil {
		slog.Error("启动本地 API 失败", "error", err)
		os.Exit(1)
	}
	slog.Info("PlacementOS 已启动", "base_url", server.BaseURL())

	// 监听系统信号
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	slog.Info("收到系统退出信号")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Warn("HTTP 关闭异常", "error", err)
	}
	slog.Info("PlacementOS 已退出")
}
