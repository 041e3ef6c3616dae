// Package domain defines domain models and interfaces
// Package domain 定义领域模型和接口
package domain

import "time"

// TagAutoCreated marks notes created by the bidirectional link
// materializer rather than by the user.
// TagAutoCreated 标记由双向链接补全自动创建的笔记
const TagAutoCreated = "auto-created"

// Note 笔记领域模型
type Note struct {
	ID        int64
	Title     string
	Content   string
	Tags      []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasTag 判断笔记是否带有指定标签
func (n *Note) HasTag(tag string) bool {
	for _, t := range n.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// IsAutoCreated 判断笔记是否为自动创建的占位笔记
func (n *Note) IsAutoCreated() bool {
	return n.HasTag(TagAutoCreated)
}
