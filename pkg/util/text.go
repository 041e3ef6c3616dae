package util

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Tokenize lowercases s and splits it into a set of word tokens.
// Tokenize 将 s 转小写并拆分为词集合
func Tokenize(s string) map[string]struct{} {
	tokens := make(map[string]struct{})
	var b strings.Builder
	flush := func() {
		if b.Len() > 0 {
			tokens[b.String()] = struct{}{}
			b.Reset()
		}
	}
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return tokens
}

// JaccardSimilarity scores token overlap between a and b in [0,1].
// Symmetric and deterministic for fixed inputs.
// JaccardSimilarity 计算 a 与 b 的词重叠度，范围 [0,1]，对称且确定
func JaccardSimilarity(a, b string) float64 {
	tokensA := Tokenize(a)
	tokensB := Tokenize(b)
	if len(tokensA) == 0 && len(tokensB) == 0 {
		return 0
	}

	matches := 0
	for token := range tokensA {
		if _, ok := tokensB[token]; ok {
			matches++
		}
	}

	union := len(tokensA) + len(tokensB) - matches
	if union == 0 {
		return 0
	}
	return float64(matches) / float64(union)
}

// Span is a half-open byte range [Start,End) into the searched string.
type Span struct {
	Start int
	End   int
}

// FindWordOccurrences returns the byte spans of every case-insensitive
// occurrence of phrase in content that sits on word boundaries. Matching
// folds rune by rune, so spans always index the original content even
// when lowercasing would change a character's byte length (İ, K).
// FindWordOccurrences 返回 phrase 在 content 中所有位于词边界、
// 忽略大小写的出现区间（原始内容的字节偏移）
func FindWordOccurrences(content, phrase string) []Span {
	if phrase == "" {
		return nil
	}

	var spans []Span
	pos := 0
	for pos < len(content) {
		if n, ok := foldPrefixLen(content[pos:], phrase); ok {
			end := pos + n
			if isWordBoundary(content, pos, end) {
				spans = append(spans, Span{Start: pos, End: end})
				pos = end
				continue
			}
		}
		_, size := utf8.DecodeRuneInString(content[pos:])
		pos += size
	}
	return spans
}

// foldPrefixLen reports whether s starts with phrase under simple case
// folding and returns the byte length of that prefix in s. The matched
// prefix can differ in length from phrase itself.
func foldPrefixLen(s, phrase string) (int, bool) {
	i, j := 0, 0
	for j < len(phrase) {
		if i >= len(s) {
			return 0, false
		}
		rs, ns := utf8.DecodeRuneInString(s[i:])
		rp, np := utf8.DecodeRuneInString(phrase[j:])
		if !runesFoldEqual(rs, rp) {
			return 0, false
		}
		i += ns
		j += np
	}
	return i, true
}

// runesFoldEqual matches strings.EqualFold semantics for a single pair.
func runesFoldEqual(a, b rune) bool {
	if a == b {
		return true
	}
	for r := unicode.SimpleFold(a); r != a; r = unicode.SimpleFold(r) {
		if r == b {
			return true
		}
	}
	return false
}

// isWordBoundary reports whether [start,end) is not glued to adjacent
// letters or digits.
func isWordBoundary(s string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(s[:start])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	if end < len(s) {
		r, _ := utf8.DecodeRuneInString(s[end:])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
