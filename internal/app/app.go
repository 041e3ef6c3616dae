// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"time"

	"github.com/haierkeys/note-link-service/internal/dao"
	"github.com/haierkeys/note-link-service/internal/domain"
	"github.com/haierkeys/note-link-service/internal/service"
	pkgapp "github.com/haierkeys/note-link-service/pkg/app"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App 应用容器，封装所有依赖和服务
type App struct {
	// 基础设施（注入的依赖）
	config *AppConfig
	logger *zap.Logger
	DB     *gorm.DB
	Dao    *dao.Dao

	// Repository 层
	NoteRepo domain.NoteRepository

	// Service 层
	NoteService *service.NoteService
	LinkService *service.LinkService

	// WebSocket 事件广播
	WSHub *pkgapp.WebSocketHub

	// StartTime 启动时间，健康检查用
	StartTime time.Time
}

// NewApp 创建应用容器实例
// 初始化所有依赖并进行依赖注入
// cfg: 应用配置（必须）
// logger: zap 日志器（必须）
// db: 数据库连接（必须）
func NewApp(cfg *AppConfig, logger *zap.Logger, db *gorm.DB) (*App, error) {
	if cfg == nil {
		return nil, errors.New("configuration is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	if db == nil {
		return nil, errors.New("database is required")
	}

	a := &App{
		config:    cfg,
		logger:    logger,
		DB:        db,
		StartTime: time.Now(),
	}

	a.Dao = dao.New(db, dao.WithLogger(logger))
	if cfg.Database.AutoMigrate {
		if err := a.Dao.AutoMigrate(); err != nil {
			return nil, errors.Wrap(err, "auto migrate failed")
		}
	}

	a.NoteRepo = dao.NewNoteRepository(a.Dao)

	a.WSHub = pkgapp.NewWebSocketHub(logger)

	a.NoteService = service.NewNoteService(a.NoteRepo, a.WSHub, logger)
	a.LinkService = service.NewLinkService(a.NoteRepo, a.WSHub, service.LinkServiceConfig{
		ContextRadius:          cfg.Link.ContextRadius,
		DefaultSuggestionLimit: cfg.Link.DefaultSuggestionLimit,
	}, logger)

	return a, nil
}

// Config 获取配置
func (a *App) Config() *AppConfig {
	return a.config
}

// Logger 获取日志器
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// Version 获取版本信息
func (a *App) Version() pkgapp.VersionInfo {
	return pkgapp.VersionInfo{
		Version:   Version,
		GitTag:    GitTag,
		BuildTime: BuildTime,
	}
}

// Close 释放容器资源
func (a *App) Close() {
	if a.WSHub != nil {
		a.WSHub.Close()
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}
