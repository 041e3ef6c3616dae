package task

import (
	"github.com/haierkeys/note-link-service/internal/app"
	"github.com/haierkeys/note-link-service/pkg/safe_close"

	"go.uber.org/zap"
)

// Manager 任务管理器，负责创建和管理所有任务
type Manager struct {
	scheduler *Scheduler
	logger    *zap.Logger
	app       *app.App
}

// NewManager 创建任务管理器
func NewManager(logger *zap.Logger, sc *safe_close.SafeClose, a *app.App) *Manager {
	return &Manager{
		scheduler: NewScheduler(logger, sc),
		logger:    logger,
		app:       a,
	}
}

// RegisterTasks 注册所有任务
func (m *Manager) RegisterTasks() error {
	cfg := m.app.Config()

	m.scheduler.AddTask(NewLinkHealthTask(
		m.app.LinkService,
		m.app.NoteRepo,
		m.logger,
		cfg.GetHealthCheckInterval(),
	))

	if retention := cfg.GetOrphanRetention(); retention > 0 {
		m.scheduler.AddTask(NewOrphanCleanupTask(
			m.app.NoteRepo,
			m.logger,
			cfg.Link.OrphanCleanupCron,
			retention,
		))
	} else {
		m.logger.Info("orphan cleanup task is disabled (retention not configured)")
	}

	return nil
}

// Start 启动所有已注册的任务
func (m *Manager) Start() {
	m.scheduler.Start()
}
