package errcode

// 错误码约定：
// - 0：无错误
// - 4xxx：业务可恢复/告警类错误（例如文档锁定、补丁无效），编辑流程可继续
// - 5xxx：系统错误（需要中断流程）
const (
	OK              = 0
	ResumeLocked    = 4001
	InvalidPatch    = 4002
	Incompatible    = 4003
	ResourceMissing = 4004
	NothingToUndo   = 4005
	LayoutRejected  = 4006
	SyncFailed      = 5001
	SystemError     = 5000
)
