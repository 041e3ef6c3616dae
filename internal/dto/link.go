// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

// NoteRefItem 指向笔记的轻量引用
type NoteRefItem struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// OutgoingLinkItem 单条出链
type OutgoingLinkItem struct {
	LinkText      string      `json:"linkText"`
	Target        NoteRefItem `json:"target"`
	LowConfidence bool        `json:"lowConfidence,omitempty"`
}

// AmbiguousLinkItem 无法唯一解析的引用及其候选
type AmbiguousLinkItem struct {
	LinkText   string        `json:"linkText"`
	Candidates []NoteRefItem `json:"candidates"`
}

// WikiLinksResponse 单个笔记的链接报告
type WikiLinksResponse struct {
	OutgoingLinks  []OutgoingLinkItem  `json:"outgoingLinks"`
	BrokenLinks    []string            `json:"brokenLinks"`
	AmbiguousLinks []AmbiguousLinkItem `json:"ambiguousLinks"`
}

// BacklinkItem 单条反向链接
type BacklinkItem struct {
	Source   NoteRefItem `json:"source"`
	LinkText string      `json:"linkText"`
	Context  string      `json:"context,omitempty"`
}

// MaterializeFailureItem 补全失败的占位笔记
type MaterializeFailureItem struct {
	Title  string `json:"title"`
	Reason string `json:"reason"`
}

// MaterializeResponse 双向链接补全结果
type MaterializeResponse struct {
	CreatedNotes []NoteRefItem            `json:"createdNotes"`
	LinkedNotes  []NoteRefItem            `json:"linkedNotes"`
	Failed       []MaterializeFailureItem `json:"failed,omitempty"`
}

// SuggestionRequest 链接建议查询参数
type SuggestionRequest struct {
	Limit int `json:"limit" form:"limit,default=10"`
}

// SuggestionItem 单条链接建议
type SuggestionItem struct {
	Note   NoteRefItem `json:"note"`
	Score  float64     `json:"score"`
	Reason string      `json:"reason"`
}

// ValidateResponse 链接健康度汇总
type ValidateResponse struct {
	TotalLinks     int     `json:"totalLinks"`
	ValidCount     int     `json:"validCount"`
	BrokenCount    int     `json:"brokenCount"`
	AmbiguousCount int     `json:"ambiguousCount"`
	HealthScore    float64 `json:"healthScore"`
}

// AutoLinkRequest 自动链接请求参数
type AutoLinkRequest struct {
	MinSimilarity float64 `json:"minSimilarity" form:"minSimilarity,default=0.5"`
	// Apply 为 true 时将重写后的内容写回存储
	Apply bool `json:"apply" form:"apply"`
}

// AddedLinkItem 自动链接插入的单条链接
type AddedLinkItem struct {
	OriginalText    string `json:"originalText"`
	TargetNoteTitle string `json:"targetNoteTitle"`
	SpanStart       int    `json:"spanStart"`
	SpanEnd         int    `json:"spanEnd"`
}

// AutoLinkResponse 自动链接结果
type AutoLinkResponse struct {
	AddedLinks      []AddedLinkItem `json:"addedLinks"`
	TotalLinksAdded int             `json:"totalLinksAdded"`
	Content         string          `json:"content"`
	DiffPreview     string          `json:"diffPreview,omitempty"`
	Applied         bool            `json:"applied"`
}
