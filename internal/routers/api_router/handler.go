// Package api_router 提供 HTTP API 路由处理器
package api_router

import (
	"github.com/haierkeys/note-link-service/internal/app"
	"github.com/haierkeys/note-link-service/internal/middleware"
	pkgapp "github.com/haierkeys/note-link-service/pkg/app"
	"github.com/haierkeys/note-link-service/pkg/code"
	"github.com/haierkeys/note-link-service/pkg/convert"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Handler 基础 Handler 结构体，封装 App Container
// 所有 API Handler 都应该嵌入此结构体以获得依赖注入能力
type Handler struct {
	App *app.App
}

// NewHandler 创建基础 Handler 实例
func NewHandler(a *app.App) *Handler {
	return &Handler{App: a}
}

// noteID 从路径参数解析笔记 ID，非法时返回 0
func noteID(c *gin.Context) int64 {
	return convert.StrTo(c.Param("id")).MustInt64()
}

// respondError writes a unified error response. Business errors carry
// their own code; anything else becomes an internal error.
// respondError 输出统一错误响应，业务错误自带错误码，
// 其余归为内部错误。
func (h *Handler) respondError(c *gin.Context, response *pkgapp.Response, err error, source string) {
	var codeErr *code.Code
	if errors.As(err, &codeErr) {
		if !codeErr.Status() {
			h.App.Logger().Warn(source, zap.String("trace_id", middleware.GetTraceIDFromGin(c)), zap.Error(err))
		}
		response.ToResponse(codeErr)
		return
	}
	h.App.Logger().Error(source, zap.String("trace_id", middleware.GetTraceIDFromGin(c)), zap.Error(err))
	response.ToResponse(code.ErrorServerInternal.WithDetails(err.Error()))
}
