// Package domain defines domain models and interfaces
package domain

// LinkStatus classifies one wiki reference after resolution.
// LinkStatus 表示一个维基引用解析后的分类
type LinkStatus string

const (
	LinkStatusValid     LinkStatus = "valid"
	LinkStatusBroken    LinkStatus = "broken"
	LinkStatusAmbiguous LinkStatus = "ambiguous"
)

// NoteRef is a lightweight pointer to a note.
type NoteRef struct {
	ID    int64
	Title string
}

// Resolution is the outcome of resolving a single reference label.
// Ambiguity is data, not an error: Candidates carries every contender
// when no single target could be chosen.
// Resolution 是单个引用标签的解析结果。歧义是数据而不是错误：
// 无法确定唯一目标时 Candidates 携带所有候选。
type Resolution struct {
	RawText string
	Status  LinkStatus
	// Target is set only for LinkStatusValid.
	Target *Note
	// LowConfidence is true when Target was found by partial match
	// rather than exact title equality.
	LowConfidence bool
	// Candidates lists all partial matches for LinkStatusAmbiguous.
	Candidates []NoteRef
}

// OutgoingLink is one resolved outgoing edge of a note.
type OutgoingLink struct {
	RawText       string
	Target        NoteRef
	LowConfidence bool
}

// AmbiguousLink reports a reference with several equally plausible targets.
type AmbiguousLink struct {
	RawText    string
	Candidates []NoteRef
}

// WikiLinks is the per-note link report.
// WikiLinks 是单个笔记的链接报告
type WikiLinks struct {
	Outgoing  []OutgoingLink
	Broken    []string
	Ambiguous []AmbiguousLink
}

// Backlink is an inbound reference: a note whose content resolves to the
// target note.
type Backlink struct {
	Source  NoteRef
	RawText string
	// Context is a short excerpt around the reference.
	Context string
}

// MaterializeReport is the outcome of bidirectional link materialization.
// Creation happens note by note; Failed records partial failures instead
// of rolling anything back.
// MaterializeReport 是双向链接补全的结果。逐条创建，Failed 记录部分失败，
// 不做回滚。
type MaterializeReport struct {
	CreatedNotes []NoteRef
	LinkedNotes  []NoteRef
	Failed       []MaterializeFailure
}

// MaterializeFailure records one placeholder note that could not be created.
type MaterializeFailure struct {
	Title  string
	Reason string
}

// Suggestion is one link candidate produced by similarity scoring.
type Suggestion struct {
	Note   NoteRef
	Score  float64
	Reason string
}

// ValidationSummary partitions every reference of a note into the three
// classifications. ValidCount+BrokenCount+AmbiguousCount == TotalLinks.
// ValidationSummary 将笔记的所有引用划分为三类，三者之和等于 TotalLinks
type ValidationSummary struct {
	TotalLinks     int
	ValidCount     int
	BrokenCount    int
	AmbiguousCount int
	// HealthScore is ValidCount/TotalLinks, 1.0 for a note without links.
	HealthScore float64
}

// AddedLink describes one bracket insertion performed by the auto-linker.
type AddedLink struct {
	OriginalText string
	TargetTitle  string
	SpanStart    int
	SpanEnd      int
}

// AutoLinkReport is the outcome of an auto-link rewrite pass.
type AutoLinkReport struct {
	AddedLinks      []AddedLink
	TotalLinksAdded int
}
