package patch

import (
	"encoding/json"
	"fmt"

	jsondiff "github.com/snorwin/jsonpatch"

	"resumeEditor/internal/resume"
)

// Diff 计算将 from 变为 to 的操作列表，用于审计与同步日志。
func Diff(from, to *resume.Data) ([]Operation, error) {
	current, err := toGeneric(from)
	if err != nil {
		return nil, err
	}
	modified, err := toGeneric(to)
	if err != nil {
		return nil, err
	}

	list, err := jsondiff.CreateJSONPatch(modified, current)
	if err != nil {
		return nil, fmt.Errorf("create json patch: %w", err)
	}

	ops := make([]Operation, 0, list.Len())
	for _, p := range list.List() {
		ops = append(ops, Operation{Op: p.Operation, Path: p.Path, Value: p.Value})
	}
	return ops, nil
}

func toGeneric(d *resume.Data) (map[string]any, error) {
	raw, err := resume.Encode(d)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return out, nil
}
