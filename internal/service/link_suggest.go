package service

import (
	"context"
	"sort"
	"strings"

	"github.com/haierkeys/note-link-service/internal/domain"
	"github.com/haierkeys/note-link-service/pkg/code"
	"github.com/haierkeys/note-link-service/pkg/util"
)

// Suggest 基于标题/内容词元重合度为笔记推荐链接目标。
// 排除自身和已有有效引用指向的笔记，得分降序、同分按标题升序，
// 结果完全确定。
func (s *LinkService) Suggest(ctx context.Context, noteID int64, limit int) ([]domain.Suggestion, error) {
	if limit <= 0 {
		return nil, code.ErrorLinkLimitInvalid.WithData(limit)
	}

	note, notes, err := s.loadNoteAndCorpus(ctx, noteID)
	if err != nil {
		return nil, err
	}

	// notes the source already links to are not suggested again
	linked := make(map[int64]struct{})
	for _, res := range s.resolveContent(note.Content, notes) {
		if res.Status == domain.LinkStatusValid {
			linked[res.Target.ID] = struct{}{}
		}
	}

	sourceText := note.Title + " " + note.Content
	sourceTitleTokens := util.Tokenize(note.Title)

	suggestions := []domain.Suggestion{}
	for _, cand := range notes {
		if cand.ID == noteID {
			continue
		}
		if _, ok := linked[cand.ID]; ok {
			continue
		}
		score := util.JaccardSimilarity(sourceText, cand.Title+" "+cand.Content)
		if score == 0 {
			continue
		}
		suggestions = append(suggestions, domain.Suggestion{
			Note:   domain.NoteRef{ID: cand.ID, Title: cand.Title},
			Score:  score,
			Reason: suggestionReason(note, cand, sourceTitleTokens),
		})
	}

	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].Score != suggestions[j].Score {
			return suggestions[i].Score > suggestions[j].Score
		}
		return suggestions[i].Note.Title < suggestions[j].Note.Title
	})
	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions, nil
}

// suggestionReason 给出可读的推荐理由
func suggestionReason(source, cand *domain.Note, sourceTitleTokens map[string]struct{}) string {
	for token := range util.Tokenize(cand.Title) {
		if _, ok := sourceTitleTokens[token]; ok {
			return "title overlap: " + cand.Title
		}
	}
	for _, tag := range cand.Tags {
		if source.HasTag(tag) && tag != domain.TagAutoCreated {
			return "shared tag: " + tag
		}
	}
	if strings.Contains(strings.ToLower(source.Content), strings.ToLower(cand.Title)) {
		return "title mentioned in content: " + cand.Title
	}
	return "content similarity"
}
