// Package diff wraps go-diff for content change previews.
// Package diff 封装 go-diff 用于内容变更预览
package diff

import "github.com/sergi/go-diff/diffmatchpatch"

// Preview renders the changes from before to after in the standard patch
// text format, suitable for showing a client what a rewrite would do.
// Preview 以标准 patch 文本格式渲染 before 到 after 的变更，
// 便于向客户端展示重写会做什么
func Preview(before, after string) string {
	if before == after {
		return ""
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(before, after, false)
	dmp.DiffCleanupSemantic(diffs)
	patches := dmp.PatchMake(before, diffs)
	return dmp.PatchToText(patches)
}

// Apply applies a patch produced by Preview to base. The second return
// value reports whether every hunk applied cleanly.
// Apply 将 Preview 生成的补丁应用到 base，第二个返回值表示是否全部应用成功
func Apply(base, patchText string) (string, bool) {
	dmp := diffmatchpatch.New()
	patches, err := dmp.PatchFromText(patchText)
	if err != nil {
		return base, false
	}
	result, applied := dmp.PatchApply(patches, base)
	for _, ok := range applied {
		if !ok {
			return result, false
		}
	}
	return result, true
}
