// Package domain 定义领域模型和接口
package domain

import "context"

// NoteRepository 笔记仓储接口
type NoteRepository interface {
	// GetByID 根据 ID 获取笔记
	// Returns (nil, nil) when the id does not exist; errors are reserved
	// for store failures.
	GetByID(ctx context.Context, id int64) (*Note, error)

	// GetByTitle 根据标题获取笔记（忽略大小写的精确匹配）
	// Returns (nil, nil) when no note carries the title.
	GetByTitle(ctx context.Context, title string) (*Note, error)

	// ListAll 获取全部笔记（反向链接与建议的全量扫描使用）
	ListAll(ctx context.Context) ([]*Note, error)

	// List 分页获取笔记列表，keyword 匹配标题或内容子串
	List(ctx context.Context, keyword string, page, pageSize int) ([]*Note, error)

	// ListCount 获取笔记数量
	ListCount(ctx context.Context, keyword string) (int64, error)

	// Create 创建笔记
	Create(ctx context.Context, note *Note) (*Note, error)

	// Update 更新笔记
	Update(ctx context.Context, note *Note) (*Note, error)

	// Delete 物理删除笔记
	Delete(ctx context.Context, id int64) error
}
