package editor

import "errors"

var (
	// ErrLocked 表示文档已被锁定，拒绝一切修改。
	ErrLocked = errors.New("resume is locked")

	// ErrNoDocument 表示当前没有加载任何文档。
	ErrNoDocument = errors.New("no resume loaded")

	ErrNothingToUndo   = errors.New("nothing to undo")
	ErrNothingToRedo   = errors.New("nothing to redo")
	ErrSessionNotFound = errors.New("editor session not found")
)
