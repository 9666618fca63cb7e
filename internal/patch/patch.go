// Package patch 应用 AI 工具调用产生的 JSON Patch 批次。
//
// Apply 不是幂等的：同一批操作应用两次会产生两次效果（例如数组重复插入），
// 调用方需要用 Tracker 记录每次工具调用的 ID 以避免重复应用。
package patch

import (
	"encoding/json"
	"errors"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch/v5"

	"resumeEditor/internal/layout"
	"resumeEditor/internal/resume"
)

const (
	OpAdd     = "add"
	OpRemove  = "remove"
	OpReplace = "replace"
)

// Operation 是单条 JSON Patch 操作。Value 为 nil 时表示 JSON null。
type Operation struct {
	Op    string `json:"op"`
	Path  string `json:"path"`
	Value any    `json:"value,omitempty"`
}

// MarshalJSON 为 add 与 replace 始终写出 value，null 也不省略。
func (o Operation) MarshalJSON() ([]byte, error) {
	if o.Op == OpRemove {
		return json.Marshal(struct {
			Op   string `json:"op"`
			Path string `json:"path"`
		}{o.Op, o.Path})
	}
	return json.Marshal(struct {
		Op    string `json:"op"`
		Path  string `json:"path"`
		Value any    `json:"value"`
	}{o.Op, o.Path, o.Value})
}

// UnmarshalJSON 拒绝缺少 value 键的 add 与 replace；显式的 null 是合法值。
func (o *Operation) UnmarshalJSON(data []byte) error {
	var wire struct {
		Op    string          `json:"op"`
		Path  string          `json:"path"`
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	if (wire.Op == OpAdd || wire.Op == OpReplace) && wire.Value == nil {
		return fmt.Errorf("%w: %s %s", errMissingValue, wire.Op, wire.Path)
	}

	var value any
	if wire.Value != nil {
		if err := json.Unmarshal(wire.Value, &value); err != nil {
			return fmt.Errorf("decode value of %s %s: %w", wire.Op, wire.Path, err)
		}
	}
	*o = Operation{Op: wire.Op, Path: wire.Path, Value: value}
	return nil
}

// InvalidPatchError 表示批次中有操作无法应用，整个批次被拒绝。
// Index 为 -1 时表示批次应用后的文档不合法。
type InvalidPatchError struct {
	Index int
	Op    Operation
	Err   error
}

func (e *InvalidPatchError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid patch: %v", e.Err)
	}
	return fmt.Sprintf("invalid patch: op %d (%s %s): %v", e.Index, e.Op.Op, e.Op.Path, e.Err)
}

func (e *InvalidPatchError) Unwrap() error { return e.Err }

var (
	errUnsupportedOp = errors.New("unsupported operation")
	errMissingValue  = errors.New("operation requires a value")
)

func applyOptions() *jsonpatch.ApplyOptions {
	opts := jsonpatch.NewApplyOptions()
	opts.EnsurePathExistsOnAdd = true
	return opts
}

// Apply 按顺序应用 ops，返回新文档；base 不会被修改。
// 任一操作失败时整个批次被拒绝，返回 *InvalidPatchError。
func Apply(base *resume.Data, ops []Operation) (*resume.Data, error) {
	raw, err := resume.Encode(base)
	if err != nil {
		return nil, err
	}

	raw, err = applyRaw(raw, ops)
	if err != nil {
		return nil, err
	}

	next, err := resume.Decode(raw)
	if err != nil {
		return nil, &InvalidPatchError{Index: -1, Err: err}
	}
	if err := resume.Validate(next); err != nil {
		return nil, &InvalidPatchError{Index: -1, Err: err}
	}
	if err := layout.CheckDocument(next); err != nil {
		return nil, &InvalidPatchError{Index: -1, Err: err}
	}
	return next, nil
}

func applyRaw(raw []byte, ops []Operation) ([]byte, error) {
	opts := applyOptions()
	for i, op := range ops {
		next, err := applyOne(raw, op, opts)
		if err != nil {
			return nil, &InvalidPatchError{Index: i, Op: op, Err: err}
		}
		raw = next
	}
	return raw, nil
}

func applyOne(raw []byte, op Operation, opts *jsonpatch.ApplyOptions) ([]byte, error) {
	switch op.Op {
	case OpAdd, OpRemove, OpReplace:
	default:
		return nil, fmt.Errorf("%w %q", errUnsupportedOp, op.Op)
	}
	encoded, err := json.Marshal([]Operation{op})
	if err != nil {
		return nil, fmt.Errorf("encode operation: %w", err)
	}
	p, err := jsonpatch.DecodePatch(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode operation: %w", err)
	}
	return p.ApplyWithOptions(raw, opts)
}
