package service

import (
	"context"
	"sort"
	"strings"

	"github.com/haierkeys/note-link-service/internal/domain"
	"github.com/haierkeys/note-link-service/internal/dto"
	"github.com/haierkeys/note-link-service/pkg/code"
	"github.com/haierkeys/note-link-service/pkg/diff"
	"github.com/haierkeys/note-link-service/pkg/util"
)

// AutoLinkResult 自动链接的计算结果
type AutoLinkResult struct {
	Report domain.AutoLinkReport
	// Content is the rewritten body; equal to the original when no
	// insertion qualified.
	Content string
	// DiffPreview is a unified patch from the original to Content,
	// empty when nothing changed.
	DiffPreview string
	// Applied reports whether the rewrite was persisted.
	Applied bool
}

// AutoLink 在笔记内容中查找其他笔记标题的完整出现并用 [[...]] 包裹。
// 已有引用内的文本不会二次包裹，笔记自身标题不会被链接，重叠匹配取
// 最长标题。apply 为 true 时回写笔记内容。
func (s *LinkService) AutoLink(ctx context.Context, noteID int64, req *dto.AutoLinkRequest) (*AutoLinkResult, error) {
	if req.MinSimilarity < 0 || req.MinSimilarity > 1 {
		return nil, code.ErrorLinkSimilarityInvalid.WithData(req.MinSimilarity)
	}

	note, notes, err := s.loadNoteAndCorpus(ctx, noteID)
	if err != nil {
		return nil, err
	}

	// threshold out weakly related notes before any text matching,
	// using the same score the suggestion engine reports
	sourceText := note.Title + " " + note.Content
	var candidates []*domain.Note
	for _, cand := range notes {
		if cand.ID == noteID || strings.EqualFold(cand.Title, note.Title) {
			continue
		}
		if util.JaccardSimilarity(sourceText, cand.Title+" "+cand.Content) < req.MinSimilarity {
			continue
		}
		candidates = append(candidates, cand)
	}

	content, report := rewriteWithLinks(note.Content, candidates)
	result := &AutoLinkResult{
		Report:  report,
		Content: content,
	}
	if content != note.Content {
		result.DiffPreview = diff.Preview(note.Content, content)
	}

	if req.Apply && content != note.Content {
		note.Content = content
		if _, err := s.repo.Update(ctx, note); err != nil {
			return nil, code.ErrorNoteUpdateFail.WithDetails(err.Error())
		}
		result.Applied = true
		if s.publisher != nil {
			s.publisher.Publish(EventNoteAutoLinked, dto.NoteItemFromDomain(note))
		}
	}
	return result, nil
}

// rewriteWithLinks performs the single-pass rewrite. All span arithmetic
// happens against the original content; the result is assembled once at
// the end so earlier insertions never shift later matches.
func rewriteWithLinks(content string, candidates []*domain.Note) (string, domain.AutoLinkReport) {
	report := domain.AutoLinkReport{AddedLinks: []domain.AddedLink{}}
	if content == "" || len(candidates) == 0 {
		return content, report
	}

	existing := util.ParseWikiRefs(content)

	type match struct {
		start, end int
		title      string
	}
	var matches []match
	for _, cand := range candidates {
		for _, span := range util.FindWordOccurrences(content, cand.Title) {
			if overlapsRef(existing, span.Start, span.End) {
				continue
			}
			matches = append(matches, match{start: span.Start, end: span.End, title: cand.Title})
		}
	}

	// longest title wins on overlap; start and title order the rest
	// deterministically
	sort.Slice(matches, func(i, j int) bool {
		li, lj := matches[i].end-matches[i].start, matches[j].end-matches[j].start
		if li != lj {
			return li > lj
		}
		if matches[i].start != matches[j].start {
			return matches[i].start < matches[j].start
		}
		return matches[i].title < matches[j].title
	})

	var accepted []match
	for _, m := range matches {
		conflict := false
		for _, a := range accepted {
			if m.start < a.end && a.start < m.end {
				conflict = true
				break
			}
		}
		if !conflict {
			accepted = append(accepted, m)
		}
	}
	if len(accepted) == 0 {
		return content, report
	}
	sort.Slice(accepted, func(i, j int) bool { return accepted[i].start < accepted[j].start })

	var b strings.Builder
	b.Grow(len(content) + 4*len(accepted))
	pos := 0
	for _, m := range accepted {
		b.WriteString(content[pos:m.start])
		b.WriteString("[[")
		b.WriteString(content[m.start:m.end])
		b.WriteString("]]")
		pos = m.end
		report.AddedLinks = append(report.AddedLinks, domain.AddedLink{
			OriginalText: content[m.start:m.end],
			TargetTitle:  m.title,
			SpanStart:    m.start,
			SpanEnd:      m.end,
		})
	}
	b.WriteString(content[pos:])
	report.TotalLinksAdded = len(report.AddedLinks)
	return b.String(), report
}

// overlapsRef reports whether [start,end) touches an existing reference,
// brackets included.
func overlapsRef(refs []util.WikiRef, start, end int) bool {
	for _, ref := range refs {
		if start < ref.SpanEnd && ref.SpanStart < end {
			return true
		}
	}
	return false
}
