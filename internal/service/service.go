// Package service implements business logic layer
// Package service 实现业务逻辑层
package service

// ServiceConfig Service 层配置
type ServiceConfig struct {
	Link LinkServiceConfig
}

// LinkServiceConfig 链接服务配置
type LinkServiceConfig struct {
	// ContextRadius 反向链接上下文摘录半径（字符数）
	ContextRadius int
	// DefaultSuggestionLimit 默认建议数量
	DefaultSuggestionLimit int
}

// 事件名称常量，WebSocket 广播使用
const (
	EventNoteCreated       = "NoteCreated"
	EventNoteUpdated       = "NoteUpdated"
	EventNoteDeleted       = "NoteDeleted"
	EventLinksMaterialized = "LinksMaterialized"
	EventNoteAutoLinked    = "NoteAutoLinked"
)

// EventPublisher broadcasts note and link change events to connected
// clients. A nil publisher is valid and means no broadcasting.
// EventPublisher 向已连接客户端广播笔记与链接变更事件，
// nil 表示不广播。
type EventPublisher interface {
	Publish(event string, payload interface{})
}
