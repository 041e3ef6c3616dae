package task

import (
	"context"
	"strings"
	"time"

	"github.com/haierkeys/note-link-service/internal/domain"
	"github.com/haierkeys/note-link-service/pkg/util"

	"go.uber.org/zap"
)

// OrphanCleanupTask removes stale placeholder notes: auto-created notes
// that were never edited and that no note references anymore.
// OrphanCleanupTask 清理过期的占位笔记：从未被编辑且已无任何引用指向的
// auto-created 笔记。
type OrphanCleanupTask struct {
	noteRepo  domain.NoteRepository
	logger    *zap.Logger
	cronSpec  string
	retention time.Duration
}

// NewOrphanCleanupTask 创建孤立占位笔记清理任务
func NewOrphanCleanupTask(noteRepo domain.NoteRepository, logger *zap.Logger, cronSpec string, retention time.Duration) *OrphanCleanupTask {
	return &OrphanCleanupTask{
		noteRepo:  noteRepo,
		logger:    logger,
		cronSpec:  cronSpec,
		retention: retention,
	}
}

func (t *OrphanCleanupTask) Name() string {
	return "OrphanCleanupTask"
}

func (t *OrphanCleanupTask) LoopInterval() time.Duration {
	return 0
}

func (t *OrphanCleanupTask) IsStartupRun() bool {
	return false
}

func (t *OrphanCleanupTask) CronSpec() string {
	return t.cronSpec
}

// Run 扫描全库并删除孤立的占位笔记
func (t *OrphanCleanupTask) Run(ctx context.Context) error {
	notes, err := t.noteRepo.ListAll(ctx)
	if err != nil {
		return err
	}

	// every label referenced anywhere in the corpus, normalized
	referenced := make(map[string]struct{})
	for _, note := range notes {
		for _, ref := range util.ParseWikiRefs(note.Content) {
			referenced[strings.ToLower(ref.RawText)] = struct{}{}
		}
	}

	cutoff := time.Now().Add(-t.retention)
	removed := 0
	for _, note := range notes {
		if !note.IsAutoCreated() || note.Content != "" {
			continue
		}
		if note.UpdatedAt.After(cutoff) {
			continue
		}
		if _, ok := referenced[strings.ToLower(note.Title)]; ok {
			continue
		}
		if err := t.noteRepo.Delete(ctx, note.ID); err != nil {
			t.logger.Warn("orphan placeholder delete failed",
				zap.Int64("note_id", note.ID),
				zap.String("title", note.Title),
				zap.Error(err))
			continue
		}
		removed++
	}

	if removed > 0 {
		t.logger.Info("orphan placeholders removed", zap.Int("count", removed))
	}
	return nil
}
