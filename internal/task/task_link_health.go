package task

import (
	"context"
	"time"

	"github.com/haierkeys/note-link-service/internal/domain"
	"github.com/haierkeys/note-link-service/internal/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// 链接健康度指标，私有路由的 /metrics 暴露
var (
	metricNotesTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "notes_total",
		Help: "Total number of notes in the store.",
	})
	metricNotesAutoCreated = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "notes_auto_created_total",
		Help: "Number of placeholder notes created by link materialization.",
	})
	metricLinksByStatus = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "note_links_total",
		Help: "Number of wiki references across the corpus by resolution status.",
	}, []string{"status"})
	metricCorpusHealth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "note_links_health_score",
		Help: "Fraction of wiki references across the corpus that resolve validly.",
	})
)

// LinkHealthTask 周期性统计全库链接健康度并更新指标
type LinkHealthTask struct {
	linkService *service.LinkService
	noteRepo    domain.NoteRepository
	logger      *zap.Logger
	interval    time.Duration
}

// NewLinkHealthTask 创建链接健康度统计任务
func NewLinkHealthTask(linkService *service.LinkService, noteRepo domain.NoteRepository, logger *zap.Logger, interval time.Duration) *LinkHealthTask {
	return &LinkHealthTask{
		linkService: linkService,
		noteRepo:    noteRepo,
		logger:      logger,
		interval:    interval,
	}
}

func (t *LinkHealthTask) Name() string {
	return "LinkHealthTask"
}

func (t *LinkHealthTask) LoopInterval() time.Duration {
	return t.interval
}

func (t *LinkHealthTask) IsStartupRun() bool {
	return true
}

// Run 扫描全库，按解析状态统计所有引用
func (t *LinkHealthTask) Run(ctx context.Context) error {
	notes, err := t.noteRepo.ListAll(ctx)
	if err != nil {
		return err
	}

	var autoCreated, valid, broken, ambiguous int
	for _, note := range notes {
		if note.IsAutoCreated() {
			autoCreated++
		}
		for _, res := range t.linkService.ResolveAll(note.Content, notes) {
			switch res.Status {
			case domain.LinkStatusValid:
				valid++
			case domain.LinkStatusBroken:
				broken++
			case domain.LinkStatusAmbiguous:
				ambiguous++
			}
		}
	}

	total := valid + broken + ambiguous
	health := 1.0
	if total > 0 {
		health = float64(valid) / float64(total)
	}

	metricNotesTotal.Set(float64(len(notes)))
	metricNotesAutoCreated.Set(float64(autoCreated))
	metricLinksByStatus.WithLabelValues("valid").Set(float64(valid))
	metricLinksByStatus.WithLabelValues("broken").Set(float64(broken))
	metricLinksByStatus.WithLabelValues("ambiguous").Set(float64(ambiguous))
	metricCorpusHealth.Set(health)

	t.logger.Info("link health snapshot",
		zap.Int("notes", len(notes)),
		zap.Int("valid", valid),
		zap.Int("broken", broken),
		zap.Int("ambiguous", ambiguous),
		zap.Float64("health", health))

	return nil
}
