// Package model 定义数据库模型
package model

import (
	"github.com/haierkeys/note-link-service/pkg/timex"
)

// Note 笔记表模型
type Note struct {
	ID        int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Title     string     `gorm:"column:title;type:text;not null;index" json:"title"`
	Content   string     `gorm:"column:content;type:text" json:"content"`
	Tags      []string   `gorm:"column:tags;type:text;serializer:json" json:"tags"`
	CreatedAt timex.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt timex.Time `gorm:"column:updated_at" json:"updatedAt"`
}

// TableName 指定表名
func (Note) TableName() string {
	return "note"
}
