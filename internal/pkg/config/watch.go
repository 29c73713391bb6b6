package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/placementos/placementos/internal/eventbus"
)

// Watch 监听配置文件变更，变更后广播 settings_updated 并热更新日志级别
//
// 监听目录而非文件本身：多数编辑器保存时是写临时文件再重命名，
// 直接监听文件会在第一次替换后失效。
func Watch(ctx context.Context, path string, hub *eventbus.Hub) error {
	if path == "" {
		return fmt.Errorf("path 不能为空")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("创建文件监听失败: %w", err)
	}

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("监听配置目录失败: %w", err)
	}

	go func() {
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(path) {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}

				cfg, err := Load(path)
				if err != nil {
					slog.Warn("配置变更后重新加载失败", "error", err)
					continue
				}

				SetupLogger(cfg.App.LogLevel)
				slog.Info("配置已热更新", "path", path)
				if hub != nil {
					hub.Publish(eventbus.Event{Type: eventbus.EventSettingsUpdated})
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Warn("配置监听错误", "error", err)
			}
		}
	}()

	return nil
}
