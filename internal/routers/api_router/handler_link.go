package api_router

import (
	"github.com/haierkeys/note-link-service/internal/app"
	"github.com/haierkeys/note-link-service/internal/domain"
	"github.com/haierkeys/note-link-service/internal/dto"
	pkgapp "github.com/haierkeys/note-link-service/pkg/app"
	"github.com/haierkeys/note-link-service/pkg/code"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LinkHandler 维基链接处理器
type LinkHandler struct {
	*Handler
}

// NewLinkHandler 创建链接处理器实例
func NewLinkHandler(a *app.App) *LinkHandler {
	return &LinkHandler{Handler: NewHandler(a)}
}

// GetWikiLinks 获取笔记的链接报告：出链、失效链接、歧义链接
func (h *LinkHandler) GetWikiLinks(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	report, err := h.App.LinkService.GetWikiLinks(c.Request.Context(), noteID(c))
	if err != nil {
		h.respondError(c, response, err, "apiRouter.Link.GetWikiLinks")
		return
	}
	response.ToResponse(code.Success.WithData(wikiLinksToDTO(report)))
}

// GetBacklinks 获取指向笔记的反向链接
func (h *LinkHandler) GetBacklinks(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	backlinks, err := h.App.LinkService.GetBacklinks(c.Request.Context(), noteID(c))
	if err != nil {
		h.respondError(c, response, err, "apiRouter.Link.GetBacklinks")
		return
	}

	items := make([]dto.BacklinkItem, 0, len(backlinks))
	for _, b := range backlinks {
		items = append(items, dto.BacklinkItem{
			Source:   noteRefToDTO(b.Source),
			LinkText: b.RawText,
			Context:  b.Context,
		})
	}
	response.ToResponse(code.Success.WithData(items))
}

// CreateBidirectional 为失效引用创建占位笔记
func (h *LinkHandler) CreateBidirectional(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	report, err := h.App.LinkService.MaterializeBidirectional(c.Request.Context(), noteID(c))
	if err != nil {
		h.respondError(c, response, err, "apiRouter.Link.CreateBidirectional")
		return
	}
	// partial failures still carry the full report; nothing is rolled back
	if len(report.Failed) > 0 {
		response.ToResponse(code.ErrorLinkMaterializeFail.WithData(materializeToDTO(report)))
		return
	}
	response.ToResponse(code.Success.WithData(materializeToDTO(report)))
}

// Suggestions 获取链接建议
func (h *LinkHandler) Suggestions(c *gin.Context) {
	params := &dto.SuggestionRequest{}
	response := pkgapp.NewResponse(c)
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("apiRouter.Link.Suggestions.BindAndValid", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()))
		return
	}

	suggestions, err := h.App.LinkService.Suggest(c.Request.Context(), noteID(c), params.Limit)
	if err != nil {
		h.respondError(c, response, err, "apiRouter.Link.Suggestions")
		return
	}

	items := make([]dto.SuggestionItem, 0, len(suggestions))
	for _, s := range suggestions {
		items = append(items, dto.SuggestionItem{
			Note:   noteRefToDTO(s.Note),
			Score:  s.Score,
			Reason: s.Reason,
		})
	}
	response.ToResponse(code.Success.WithData(items))
}

// ValidateAll 统计笔记全部引用的健康度
func (h *LinkHandler) ValidateAll(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	summary, err := h.App.LinkService.ValidateLinks(c.Request.Context(), noteID(c))
	if err != nil {
		h.respondError(c, response, err, "apiRouter.Link.ValidateAll")
		return
	}
	response.ToResponse(code.Success.WithData(dto.ValidateResponse{
		TotalLinks:     summary.TotalLinks,
		ValidCount:     summary.ValidCount,
		BrokenCount:    summary.BrokenCount,
		AmbiguousCount: summary.AmbiguousCount,
		HealthScore:    summary.HealthScore,
	}))
}

// AutoLink 自动将其他笔记标题的出现替换为链接
func (h *LinkHandler) AutoLink(c *gin.Context) {
	params := &dto.AutoLinkRequest{}
	response := pkgapp.NewResponse(c)
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("apiRouter.Link.AutoLink.BindAndValid", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()))
		return
	}

	result, err := h.App.LinkService.AutoLink(c.Request.Context(), noteID(c), params)
	if err != nil {
		h.respondError(c, response, err, "apiRouter.Link.AutoLink")
		return
	}

	added := make([]dto.AddedLinkItem, 0, len(result.Report.AddedLinks))
	for _, a := range result.Report.AddedLinks {
		added = append(added, dto.AddedLinkItem{
			OriginalText:    a.OriginalText,
			TargetNoteTitle: a.TargetTitle,
			SpanStart:       a.SpanStart,
			SpanEnd:         a.SpanEnd,
		})
	}
	response.ToResponse(code.Success.WithData(dto.AutoLinkResponse{
		AddedLinks:      added,
		TotalLinksAdded: result.Report.TotalLinksAdded,
		Content:         result.Content,
		DiffPreview:     result.DiffPreview,
		Applied:         result.Applied,
	}))
}

func noteRefToDTO(ref domain.NoteRef) dto.NoteRefItem {
	return dto.NoteRefItem{ID: ref.ID, Title: ref.Title}
}

func wikiLinksToDTO(report *domain.WikiLinks) dto.WikiLinksResponse {
	out := dto.WikiLinksResponse{
		OutgoingLinks:  make([]dto.OutgoingLinkItem, 0, len(report.Outgoing)),
		BrokenLinks:    report.Broken,
		AmbiguousLinks: make([]dto.AmbiguousLinkItem, 0, len(report.Ambiguous)),
	}
	for _, link := range report.Outgoing {
		out.OutgoingLinks = append(out.OutgoingLinks, dto.OutgoingLinkItem{
			LinkText:      link.RawText,
			Target:        noteRefToDTO(link.Target),
			LowConfidence: link.LowConfidence,
		})
	}
	for _, amb := range report.Ambiguous {
		candidates := make([]dto.NoteRefItem, 0, len(amb.Candidates))
		for _, cand := range amb.Candidates {
			candidates = append(candidates, noteRefToDTO(cand))
		}
		out.AmbiguousLinks = append(out.AmbiguousLinks, dto.AmbiguousLinkItem{
			LinkText:   amb.RawText,
			Candidates: candidates,
		})
	}
	return out
}

func materializeToDTO(report *domain.MaterializeReport) dto.MaterializeResponse {
	out := dto.MaterializeResponse{
		CreatedNotes: make([]dto.NoteRefItem, 0, len(report.CreatedNotes)),
		LinkedNotes:  make([]dto.NoteRefItem, 0, len(report.LinkedNotes)),
	}
	for _, ref := range report.CreatedNotes {
		out.CreatedNotes = append(out.CreatedNotes, noteRefToDTO(ref))
	}
	for _, ref := range report.LinkedNotes {
		out.LinkedNotes = append(out.LinkedNotes, noteRefToDTO(ref))
	}
	for _, f := range report.Failed {
		out.Failed = append(out.Failed, dto.MaterializeFailureItem{
			Title:  f.Title,
			Reason: f.Reason,
		})
	}
	return out
}
