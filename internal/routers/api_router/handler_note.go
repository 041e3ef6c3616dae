package api_router

import (
	"github.com/haierkeys/note-link-service/internal/app"
	"github.com/haierkeys/note-link-service/internal/dto"
	pkgapp "github.com/haierkeys/note-link-service/pkg/app"
	"github.com/haierkeys/note-link-service/pkg/code"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NoteHandler 笔记 CRUD 处理器
type NoteHandler struct {
	*Handler
}

// NewNoteHandler 创建笔记处理器实例
func NewNoteHandler(a *app.App) *NoteHandler {
	return &NoteHandler{Handler: NewHandler(a)}
}

// Create 创建笔记
func (h *NoteHandler) Create(c *gin.Context) {
	params := &dto.NoteCreateRequest{}
	response := pkgapp.NewResponse(c)
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("apiRouter.Note.Create.BindAndValid", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()))
		return
	}

	note, err := h.App.NoteService.Create(c.Request.Context(), params)
	if err != nil {
		h.respondError(c, response, err, "apiRouter.Note.Create")
		return
	}
	response.ToResponse(code.Success.WithData(dto.NoteItemFromDomain(note)))
}

// Get 获取单条笔记
func (h *NoteHandler) Get(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	note, err := h.App.NoteService.Get(c.Request.Context(), noteID(c))
	if err != nil {
		h.respondError(c, response, err, "apiRouter.Note.Get")
		return
	}
	response.ToResponse(code.Success.WithData(dto.NoteItemFromDomain(note)))
}

// List 分页获取笔记列表
func (h *NoteHandler) List(c *gin.Context) {
	params := &dto.NoteListRequest{}
	response := pkgapp.NewResponse(c)
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()))
		return
	}

	page := pkgapp.GetPage(c)
	pageSize := pkgapp.GetPageSize(c)
	notes, count, err := h.App.NoteService.List(c.Request.Context(), params.Keyword, page, pageSize)
	if err != nil {
		h.respondError(c, response, err, "apiRouter.Note.List")
		return
	}

	items := make([]*dto.NoteItem, 0, len(notes))
	for _, note := range notes {
		items = append(items, dto.NoteItemFromDomain(note))
	}
	response.ToResponseList(code.Success, items, int(count))
}

// Update 更新笔记
func (h *NoteHandler) Update(c *gin.Context) {
	params := &dto.NoteUpdateRequest{}
	response := pkgapp.NewResponse(c)
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("apiRouter.Note.Update.BindAndValid", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()))
		return
	}

	note, err := h.App.NoteService.Update(c.Request.Context(), noteID(c), params)
	if err != nil {
		h.respondError(c, response, err, "apiRouter.Note.Update")
		return
	}
	response.ToResponse(code.Success.WithData(dto.NoteItemFromDomain(note)))
}

// Delete 删除笔记
func (h *NoteHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	if err := h.App.NoteService.Delete(c.Request.Context(), noteID(c)); err != nil {
		h.respondError(c, response, err, "apiRouter.Note.Delete")
		return
	}
	response.ToResponse(code.Success)
}
