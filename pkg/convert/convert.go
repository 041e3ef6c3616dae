// Package convert provides struct conversion helpers.
// Package convert 提供结构体转换辅助函数
package convert

import (
	"github.com/bytedance/sonic"
	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
)

// CopyStruct copies exported fields with matching names from src to dst.
// CopyStruct 将 src 中同名导出字段复制到 dst
func CopyStruct(dst, src interface{}) error {
	if err := copier.Copy(dst, src); err != nil {
		return errors.Wrap(err, "convert: copy struct")
	}
	return nil
}

// DeepCopy clones src into dst through a JSON round trip. Slower than
// CopyStruct but detaches every nested reference.
// DeepCopy 通过 JSON 往返将 src 克隆到 dst，比 CopyStruct 慢，
// 但会断开所有嵌套引用
func DeepCopy(dst, src interface{}) error {
	data, err := sonic.Marshal(src)
	if err != nil {
		return errors.Wrap(err, "convert: marshal")
	}
	if err := sonic.Unmarshal(data, dst); err != nil {
		return errors.Wrap(err, "convert: unmarshal")
	}
	return nil
}
