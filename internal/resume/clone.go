package resume

import (
	"bytes"
	"encoding/json"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch/v5"
)

// Clone 返回文档的深拷贝，副本与原值不共享任何 map 或 slice。
func (d *Data) Clone() *Data {
	if d == nil {
		return nil
	}
	out := *d
	out.Basics.CustomFields = copySlice(d.Basics.CustomFields)
	out.Sections = make(map[string]Section, len(d.Sections))
	for key, section := range d.Sections {
		section.Items = cloneItems(section.Items)
		out.Sections[key] = section
	}
	out.CustomSections = make([]CustomSection, len(d.CustomSections))
	for i, cs := range d.CustomSections {
		cs.Items = cloneItems(cs.Items)
		out.CustomSections[i] = cs
	}
	out.Metadata.Layout = d.Metadata.Layout.Clone()
	out.Metadata.Typography.Body.Weights = copySlice(d.Metadata.Typography.Body.Weights)
	out.Metadata.Typography.Heading.Weights = copySlice(d.Metadata.Typography.Heading.Weights)
	return &out
}

// Clone 返回布局的深拷贝。
func (l Layout) Clone() Layout {
	out := Layout{SidebarWidth: l.SidebarWidth, Pages: make([]PageLayout, len(l.Pages))}
	for i, p := range l.Pages {
		out.Pages[i] = PageLayout{
			FullWidth: p.FullWidth,
			Main:      copySlice(p.Main),
			Sidebar:   copySlice(p.Sidebar),
		}
	}
	return out
}

// Clone 返回条目的深拷贝。
func (i Item) Clone() Item {
	if i == nil {
		return nil
	}
	return cloneValue(map[string]any(i)).(map[string]any)
}

func copySlice[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}

func cloneItems(items []Item) []Item {
	out := make([]Item, len(items))
	for i, item := range items {
		out[i] = item.Clone()
	}
	return out
}

func cloneValue(v any) any {
	switch value := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(value))
		for k, inner := range value {
			out[k] = cloneValue(inner)
		}
		return out
	case Item:
		return Item(cloneValue(map[string]any(value)).(map[string]any))
	case []any:
		out := make([]any, len(value))
		for i, inner := range value {
			out[i] = cloneValue(inner)
		}
		return out
	case []string:
		return copySlice(value)
	default:
		return value
	}
}

// Normalize 将 nil 的 map/slice 替换为空值，保证序列化后不出现 null 容器。
func (d *Data) Normalize() {
	if d.Sections == nil {
		d.Sections = map[string]Section{}
	}
	for key, section := range d.Sections {
		if section.Items == nil {
			section.Items = []Item{}
			d.Sections[key] = section
		}
	}
	if d.CustomSections == nil {
		d.CustomSections = []CustomSection{}
	}
	for i := range d.CustomSections {
		if d.CustomSections[i].Items == nil {
			d.CustomSections[i].Items = []Item{}
		}
	}
	if d.Basics.CustomFields == nil {
		d.Basics.CustomFields = []CustomField{}
	}
	if d.Metadata.Layout.Pages == nil {
		d.Metadata.Layout.Pages = []PageLayout{}
	}
	for i := range d.Metadata.Layout.Pages {
		page := &d.Metadata.Layout.Pages[i]
		if page.Main == nil {
			page.Main = []string{}
		}
		if page.Sidebar == nil {
			page.Sidebar = []string{}
		}
	}
}

// Encode 将文档序列化为 JSON。
func Encode(d *Data) ([]byte, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("encode resume data: %w", err)
	}
	return raw, nil
}

// Decode 严格解析 JSON 文档：未知字段视为错误。
func Decode(raw []byte) (*Data, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	var d Data
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("decode resume data: %w", err)
	}
	d.Normalize()
	return &d, nil
}

// Equal 按序列化后的结构比较两个文档。
func Equal(a, b *Data) bool {
	if a == nil || b == nil {
		return a == b
	}
	ra, err := Encode(a)
	if err != nil {
		return false
	}
	rb, err := Encode(b)
	if err != nil {
		return false
	}
	return jsonpatch.Equal(ra, rb)
}
