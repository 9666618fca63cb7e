package patch

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"resumeEditor/internal/resume"
)

// Inverse 计算 ops 的结构逆操作：replace 还原旧值，add 对应 remove，remove 对应重新 add。
// 先应用 ops 再应用 Inverse 的结果会得到原文档。
func Inverse(base *resume.Data, ops []Operation) ([]Operation, error) {
	raw, err := resume.Encode(base)
	if err != nil {
		return nil, err
	}

	opts := applyOptions()
	inverse := make([]Operation, 0, len(ops))
	for i, op := range ops {
		var doc any
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("decode document: %w", err)
		}

		inv, err := invert(doc, op)
		if err != nil {
			return nil, &InvalidPatchError{Index: i, Op: op, Err: err}
		}

		raw, err = applyOne(raw, op, opts)
		if err != nil {
			return nil, &InvalidPatchError{Index: i, Op: op, Err: err}
		}
		inverse = append(inverse, inv)
	}

	for l, r := 0, len(inverse)-1; l < r; l, r = l+1, r-1 {
		inverse[l], inverse[r] = inverse[r], inverse[l]
	}
	return inverse, nil
}

func invert(doc any, op Operation) (Operation, error) {
	tokens, err := splitPointer(op.Path)
	if err != nil {
		return Operation{}, err
	}

	switch op.Op {
	case OpReplace:
		old, ok := lookup(doc, tokens)
		if !ok {
			return Operation{}, fmt.Errorf("path %q does not exist", op.Path)
		}
		return Operation{Op: OpReplace, Path: op.Path, Value: old}, nil

	case OpRemove:
		old, ok := lookup(doc, tokens)
		if !ok {
			return Operation{}, fmt.Errorf("path %q does not exist", op.Path)
		}
		return Operation{Op: OpAdd, Path: op.Path, Value: old}, nil

	case OpAdd:
		if len(tokens) == 0 {
			return Operation{Op: OpReplace, Path: "", Value: doc}, nil
		}
		// 找到第一个不存在的祖先：add 会自动创建中间容器，逆操作需整体移除。
		for depth := 1; depth < len(tokens); depth++ {
			if _, ok := lookup(doc, tokens[:depth]); !ok {
				return Operation{Op: OpRemove, Path: joinPointer(tokens[:depth])}, nil
			}
		}
		parent, _ := lookup(doc, tokens[:len(tokens)-1])
		last := tokens[len(tokens)-1]
		switch container := parent.(type) {
		case []any:
			if last == "-" {
				last = strconv.Itoa(len(container))
			}
			return Operation{Op: OpRemove, Path: joinPointer(append(tokens[:len(tokens)-1:len(tokens)-1], last))}, nil
		case map[string]any:
			if old, exists := container[last]; exists {
				return Operation{Op: OpReplace, Path: op.Path, Value: old}, nil
			}
			return Operation{Op: OpRemove, Path: op.Path}, nil
		default:
			return Operation{}, fmt.Errorf("parent of %q is not a container", op.Path)
		}

	default:
		return Operation{}, fmt.Errorf("%w %q", errUnsupportedOp, op.Op)
	}
}

func splitPointer(pointer string) ([]string, error) {
	if pointer == "" {
		return nil, nil
	}
	if !strings.HasPrefix(pointer, "/") {
		return nil, fmt.Errorf("json pointer %q must start with /", pointer)
	}
	parts := strings.Split(pointer[1:], "/")
	for i, part := range parts {
		part = strings.ReplaceAll(part, "~1", "/")
		parts[i] = strings.ReplaceAll(part, "~0", "~")
	}
	return parts, nil
}

func joinPointer(tokens []string) string {
	var b strings.Builder
	for _, token := range tokens {
		b.WriteByte('/')
		token = strings.ReplaceAll(token, "~", "~0")
		b.WriteString(strings.ReplaceAll(token, "/", "~1"))
	}
	return b.String()
}

func lookup(doc any, tokens []string) (any, bool) {
	current := doc
	for _, token := range tokens {
		switch container := current.(type) {
		case map[string]any:
			next, ok := container[token]
			if !ok {
				return nil, false
			}
			current = next
		case []any:
			idx, err := strconv.Atoi(token)
			if err != nil || idx < 0 || idx >= len(container) {
				return nil, false
			}
			current = container[idx]
		default:
			return nil, false
		}
	}
	return current, true
}
