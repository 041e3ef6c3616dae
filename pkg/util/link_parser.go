// Package util provides common utility functions
// Package util 提供通用工具函数
package util

import "strings"

// WikiRef represents one wiki-style reference extracted from note content.
// WikiRef 表示从笔记内容中提取的一个维基风格引用
type WikiRef struct {
	RawText   string // Trimmed label between the brackets // 方括号之间去除首尾空白的标签
	Alias     string // Optional alias from [[label|alias]] // 可选别名
	SpanStart int    // Byte offset of the opening "[[" // 开始 "[[" 的字节偏移
	SpanEnd   int    // Byte offset just past the closing "]]" // 结束 "]]" 之后的字节偏移
}

// ParseWikiRefs extracts [[label]] and [[label|alias]] references in order of
// appearance. Duplicate labels each produce their own entry. Nested or
// unterminated bracket pairs are skipped silently; the parser never fails.
// ParseWikiRefs 按出现顺序提取 [[label]] 和 [[label|alias]] 引用。
// 重复标签各自产生一条记录。嵌套或未闭合的方括号会被静默跳过，解析器不会失败。
func ParseWikiRefs(content string) []WikiRef {
	if content == "" {
		return nil
	}

	var refs []WikiRef
	pos := 0
	for {
		start := strings.Index(content[pos:], "[[")
		if start < 0 {
			break
		}
		start += pos

		end := strings.Index(content[start+2:], "]]")
		if end < 0 {
			// Unterminated pair, nothing more to emit.
			// 未闭合，不再产生任何引用
			break
		}
		end += start + 2

		inner := content[start+2 : end]
		if nested := strings.Index(inner, "[["); nested >= 0 {
			// Nested open bracket: the outer pair is not a reference.
			// Resume scanning at the inner bracket.
			// 嵌套的开括号：外层不是引用，从内层括号继续扫描
			pos = start + 2 + nested
			continue
		}

		raw := inner
		alias := ""
		if idx := strings.Index(inner, "|"); idx >= 0 {
			raw = inner[:idx]
			alias = strings.TrimSpace(inner[idx+1:])
		}
		raw = strings.TrimSpace(raw)

		if raw != "" {
			refs = append(refs, WikiRef{
				RawText:   raw,
				Alias:     alias,
				SpanStart: start,
				SpanEnd:   end + 2,
			})
		}
		pos = end + 2
	}

	return refs
}

// ContainsRef reports whether content already references label via any
// wiki reference (case-insensitive).
// ContainsRef 判断内容是否已经通过维基引用指向 label（忽略大小写）
func ContainsRef(content, label string) bool {
	want := strings.ToLower(strings.TrimSpace(label))
	for _, ref := range ParseWikiRefs(content) {
		if strings.ToLower(ref.RawText) == want {
			return true
		}
	}
	return false
}
