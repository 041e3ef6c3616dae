package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/haierkeys/note-link-service/internal/domain"
	"github.com/haierkeys/note-link-service/pkg/code"
	"github.com/haierkeys/note-link-service/pkg/util"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// LinkService 维基引用解析、反向链接与双向链接补全服务
type LinkService struct {
	repo      domain.NoteRepository
	publisher EventPublisher
	logger    *zap.Logger
	config    LinkServiceConfig
	// sfGroup collapses concurrent full-corpus backlink scans for the
	// same note into one execution.
	sfGroup singleflight.Group
}

func NewLinkService(repo domain.NoteRepository, publisher EventPublisher, config LinkServiceConfig, logger *zap.Logger) *LinkService {
	if config.ContextRadius <= 0 {
		config.ContextRadius = 25
	}
	if config.DefaultSuggestionLimit <= 0 {
		config.DefaultSuggestionLimit = 10
	}
	return &LinkService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		config:    config,
	}
}

// Resolve classifies a single reference label against the corpus.
//
// Order of precedence:
//  1. exact title match (case-insensitive) wins outright
//  2. a single partial match (substring either direction) resolves as
//     valid with the low-confidence flag set
//  3. several partial matches are narrowed by shortest title, then most
//     recent update; a remaining tie is ambiguous with all candidates
//  4. nothing matched: broken
//
// Resolve 将单个引用标签与笔记库比对并分类。
func (s *LinkService) Resolve(rawText string, notes []*domain.Note) domain.Resolution {
	res := domain.Resolution{RawText: rawText}
	norm := strings.ToLower(strings.TrimSpace(rawText))
	if norm == "" {
		res.Status = domain.LinkStatusBroken
		return res
	}

	var exact *domain.Note
	var partial []*domain.Note
	for _, note := range notes {
		title := strings.ToLower(note.Title)
		if title == norm {
			// duplicate exact titles resolve to the freshest note
			if exact == nil || note.UpdatedAt.After(exact.UpdatedAt) {
				exact = note
			}
			continue
		}
		if strings.Contains(title, norm) || strings.Contains(norm, title) {
			partial = append(partial, note)
		}
	}

	if exact != nil {
		res.Status = domain.LinkStatusValid
		res.Target = exact
		return res
	}

	switch len(partial) {
	case 0:
		res.Status = domain.LinkStatusBroken
		return res
	case 1:
		res.Status = domain.LinkStatusValid
		res.Target = partial[0]
		res.LowConfidence = true
		return res
	}

	if winner := breakPartialTie(partial); winner != nil {
		res.Status = domain.LinkStatusValid
		res.Target = winner
		res.LowConfidence = true
		return res
	}

	res.Status = domain.LinkStatusAmbiguous
	res.Candidates = make([]domain.NoteRef, 0, len(partial))
	for _, note := range partial {
		res.Candidates = append(res.Candidates, domain.NoteRef{ID: note.ID, Title: note.Title})
	}
	return res
}

// breakPartialTie picks a single winner among several partial matches,
// or nil when the candidates are genuinely indistinguishable.
func breakPartialTie(partial []*domain.Note) *domain.Note {
	shortest := partial[0]
	shortestDup := false
	for _, note := range partial[1:] {
		switch {
		case len(note.Title) < len(shortest.Title):
			shortest = note
			shortestDup = false
		case len(note.Title) == len(shortest.Title):
			shortestDup = true
		}
	}
	if !shortestDup {
		return shortest
	}

	// equal-length titles: fall back to the most recently updated note
	newest := partial[0]
	newestDup := false
	for _, note := range partial[1:] {
		switch {
		case note.UpdatedAt.After(newest.UpdatedAt):
			newest = note
			newestDup = false
		case note.UpdatedAt.Equal(newest.UpdatedAt):
			newestDup = true
		}
	}
	if !newestDup {
		return newest
	}
	return nil
}

// ResolveAll parses and resolves every reference of a content body
// against the supplied corpus snapshot.
func (s *LinkService) ResolveAll(content string, notes []*domain.Note) []domain.Resolution {
	return s.resolveContent(content, notes)
}

// resolveContent parses and resolves every reference of a content body.
func (s *LinkService) resolveContent(content string, notes []*domain.Note) []domain.Resolution {
	refs := util.ParseWikiRefs(content)
	out := make([]domain.Resolution, 0, len(refs))
	for _, ref := range refs {
		out = append(out, s.Resolve(ref.RawText, notes))
	}
	return out
}

// GetWikiLinks 解析笔记内容中的全部维基引用，按状态分组返回。
// 重复引用同一标签只报告一次。
func (s *LinkService) GetWikiLinks(ctx context.Context, noteID int64) (*domain.WikiLinks, error) {
	note, notes, err := s.loadNoteAndCorpus(ctx, noteID)
	if err != nil {
		return nil, err
	}

	report := &domain.WikiLinks{
		Outgoing:  []domain.OutgoingLink{},
		Broken:    []string{},
		Ambiguous: []domain.AmbiguousLink{},
	}
	seen := make(map[string]struct{})
	for _, res := range s.resolveContent(note.Content, notes) {
		key := strings.ToLower(strings.TrimSpace(res.RawText))
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		switch res.Status {
		case domain.LinkStatusValid:
			report.Outgoing = append(report.Outgoing, domain.OutgoingLink{
				RawText:       res.RawText,
				Target:        domain.NoteRef{ID: res.Target.ID, Title: res.Target.Title},
				LowConfidence: res.LowConfidence,
			})
		case domain.LinkStatusBroken:
			report.Broken = append(report.Broken, res.RawText)
		case domain.LinkStatusAmbiguous:
			report.Ambiguous = append(report.Ambiguous, domain.AmbiguousLink{
				RawText:    res.RawText,
				Candidates: res.Candidates,
			})
		}
	}
	return report, nil
}

// GetBacklinks 全量扫描笔记库，返回所有引用解析指向目标笔记的来源笔记。
// 同一目标的并发扫描通过 singleflight 合并。
func (s *LinkService) GetBacklinks(ctx context.Context, noteID int64) ([]domain.Backlink, error) {
	v, err, _ := s.sfGroup.Do(fmt.Sprintf("backlinks:%d", noteID), func() (interface{}, error) {
		return s.scanBacklinks(ctx, noteID)
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Backlink), nil
}

func (s *LinkService) scanBacklinks(ctx context.Context, noteID int64) ([]domain.Backlink, error) {
	_, notes, err := s.loadNoteAndCorpus(ctx, noteID)
	if err != nil {
		return nil, err
	}

	backlinks := []domain.Backlink{}
	for _, source := range notes {
		if source.ID == noteID {
			continue
		}
		for _, ref := range util.ParseWikiRefs(source.Content) {
			res := s.Resolve(ref.RawText, notes)
			if res.Status != domain.LinkStatusValid || res.Target.ID != noteID {
				continue
			}
			backlinks = append(backlinks, domain.Backlink{
				Source:  domain.NoteRef{ID: source.ID, Title: source.Title},
				RawText: ref.RawText,
				Context: s.extractLinkContext(source.Content, ref.SpanStart, ref.SpanEnd),
			})
			// one entry per source note is enough
			break
		}
	}
	return backlinks, nil
}

// extractLinkContext 截取引用前后一段内容作为上下文摘录
func (s *LinkService) extractLinkContext(content string, spanStart, spanEnd int) string {
	start := spanStart - s.config.ContextRadius
	if start < 0 {
		start = 0
	}
	end := spanEnd + s.config.ContextRadius
	if end > len(content) {
		end = len(content)
	}
	// back off to rune boundaries so the excerpt never splits a character
	for start > 0 && !utf8RuneStart(content[start]) {
		start--
	}
	for end < len(content) && !utf8RuneStart(content[end]) {
		end++
	}

	excerpt := strings.ReplaceAll(content[start:end], "\n", " ")
	if start > 0 {
		excerpt = "..." + excerpt
	}
	if end < len(content) {
		excerpt = excerpt + "..."
	}
	return excerpt
}

func utf8RuneStart(b byte) bool {
	return b&0xC0 != 0x80
}

// MaterializeBidirectional 为笔记内容中每个失效引用创建占位笔记，
// 占位笔记带 auto-created 标签。同一标签只处理一次，单条失败不影响
// 其余条目。
func (s *LinkService) MaterializeBidirectional(ctx context.Context, noteID int64) (*domain.MaterializeReport, error) {
	note, notes, err := s.loadNoteAndCorpus(ctx, noteID)
	if err != nil {
		return nil, err
	}

	report := &domain.MaterializeReport{
		CreatedNotes: []domain.NoteRef{},
		LinkedNotes:  []domain.NoteRef{},
		Failed:       []domain.MaterializeFailure{},
	}
	seen := make(map[string]struct{})
	for _, ref := range util.ParseWikiRefs(note.Content) {
		title := strings.TrimSpace(ref.RawText)
		key := strings.ToLower(title)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		res := s.Resolve(ref.RawText, notes)
		if res.Status != domain.LinkStatusBroken {
			continue
		}

		// check-then-create: another writer may have added the note
		// since the corpus snapshot
		exist, err := s.repo.GetByTitle(ctx, title)
		if err != nil {
			report.Failed = append(report.Failed, domain.MaterializeFailure{Title: title, Reason: err.Error()})
			continue
		}
		if exist != nil {
			report.LinkedNotes = append(report.LinkedNotes, domain.NoteRef{ID: exist.ID, Title: exist.Title})
			continue
		}

		created, err := s.repo.Create(ctx, &domain.Note{
			Title: title,
			Tags:  []string{domain.TagAutoCreated},
		})
		if err != nil {
			s.logger.Warn("placeholder create failed",
				zap.Int64("note_id", noteID), zap.String("title", title), zap.Error(err))
			report.Failed = append(report.Failed, domain.MaterializeFailure{Title: title, Reason: err.Error()})
			continue
		}
		report.CreatedNotes = append(report.CreatedNotes, domain.NoteRef{ID: created.ID, Title: created.Title})
	}

	if len(report.CreatedNotes) > 0 && s.publisher != nil {
		s.publisher.Publish(EventLinksMaterialized, report)
	}
	return report, nil
}

// ValidateLinks 统计笔记全部引用的三种分类数量并计算健康度。
// 重复引用按出现次数计入，无引用的笔记健康度为 1.0。
func (s *LinkService) ValidateLinks(ctx context.Context, noteID int64) (*domain.ValidationSummary, error) {
	note, notes, err := s.loadNoteAndCorpus(ctx, noteID)
	if err != nil {
		return nil, err
	}

	summary := &domain.ValidationSummary{}
	for _, res := range s.resolveContent(note.Content, notes) {
		summary.TotalLinks++
		switch res.Status {
		case domain.LinkStatusValid:
			summary.ValidCount++
		case domain.LinkStatusBroken:
			summary.BrokenCount++
		case domain.LinkStatusAmbiguous:
			summary.AmbiguousCount++
		}
	}
	if summary.TotalLinks == 0 {
		summary.HealthScore = 1.0
	} else {
		summary.HealthScore = float64(summary.ValidCount) / float64(summary.TotalLinks)
	}
	return summary, nil
}

// loadNoteAndCorpus 加载目标笔记和全量笔记库
func (s *LinkService) loadNoteAndCorpus(ctx context.Context, noteID int64) (*domain.Note, []*domain.Note, error) {
	note, err := s.repo.GetByID(ctx, noteID)
	if err != nil {
		return nil, nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	if note == nil {
		return nil, nil, code.ErrorNoteNotFound.WithData(noteID)
	}
	notes, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return note, notes, nil
}
