// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

import (
	"github.com/haierkeys/note-link-service/internal/domain"
	"github.com/haierkeys/note-link-service/pkg/timex"
)

// NoteCreateRequest 创建笔记的请求参数
type NoteCreateRequest struct {
	Title   string   `json:"title" form:"title" binding:"required,max=512"`
	Content string   `json:"content" form:"content"`
	Tags    []string `json:"tags" form:"tags"`
}

// NoteUpdateRequest 更新笔记的请求参数
type NoteUpdateRequest struct {
	Title   *string   `json:"title" form:"title" binding:"omitempty,min=1,max=512"`
	Content *string   `json:"content" form:"content"`
	Tags    *[]string `json:"tags" form:"tags"`
}

// NoteListRequest 笔记列表查询参数
type NoteListRequest struct {
	Keyword string `json:"keyword" form:"keyword"`
}

// NoteItem 笔记响应对象
type NoteItem struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Tags      []string   `json:"tags"`
	CreatedAt timex.Time `json:"createdAt"`
	UpdatedAt timex.Time `json:"updatedAt"`
}

// NoteItemFromDomain 领域对象转响应对象
func NoteItemFromDomain(n *domain.Note) *NoteItem {
	if n == nil {
		return nil
	}
	return &NoteItem{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		Tags:      n.Tags,
		CreatedAt: timex.Time(n.CreatedAt),
		UpdatedAt: timex.Time(n.UpdatedAt),
	}
}
