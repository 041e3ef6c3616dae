package code

// Success / failure base codes
// 成功 / 失败基础码
var (
	Success = NewSuss(0, lang{en: "success", zh_cn: "成功"})
	Failed  = NewError(1, lang{en: "failed", zh_cn: "失败"})
)

// Common error codes
// 通用错误码
var (
	ErrorInvalidParams   = NewError(10001, lang{en: "invalid params", zh_cn: "入参错误"})
	ErrorServerInternal  = NewError(10002, lang{en: "server internal error", zh_cn: "服务内部错误"})
	ErrorTooManyRequests = NewError(10003, lang{en: "too many requests", zh_cn: "请求过多"})
	ErrorNotFound        = NewError(10004, lang{en: "resource not found", zh_cn: "资源不存在"})
	ErrorDBQuery         = NewError(10005, lang{en: "database query error", zh_cn: "数据库查询错误"})
)

// Note error codes
// 笔记错误码
var (
	ErrorNoteNotFound      = NewError(20001, lang{en: "note not found", zh_cn: "笔记不存在"})
	ErrorNoteTitleRequired = NewError(20002, lang{en: "note title is required", zh_cn: "笔记标题不能为空"})
	ErrorNoteTitleExists   = NewError(20003, lang{en: "a note with this title already exists", zh_cn: "同名笔记已存在"})
	ErrorNoteCreateFail    = NewError(20004, lang{en: "note create failed", zh_cn: "笔记创建失败"})
	ErrorNoteUpdateFail    = NewError(20005, lang{en: "note update failed", zh_cn: "笔记更新失败"})
	ErrorNoteDeleteFail    = NewError(20006, lang{en: "note delete failed", zh_cn: "笔记删除失败"})
)

// Link error codes
// 链接错误码
var (
	ErrorLinkLimitInvalid      = NewError(30001, lang{en: "limit must be greater than zero", zh_cn: "limit 必须大于 0"})
	ErrorLinkSimilarityInvalid = NewError(30002, lang{en: "min similarity must be within [0,1]", zh_cn: "最小相似度必须在 [0,1] 区间内"})
	ErrorLinkMaterializeFail   = NewError(30003, lang{en: "bidirectional link materialization partially failed", zh_cn: "双向链接补全部分失败"})
)
