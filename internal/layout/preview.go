package layout

import "resumeEditor/internal/resume"

// SectionView 是预览渲染所需的板块摘要。
type SectionView struct {
	ID     string `json:"id"`
	Type   string `json:"type"`
	Title  string `json:"title"`
	Hidden bool   `json:"hidden"`
	Items  int    `json:"items"`
}

// PageView 是一页的渲染视图。
type PageView struct {
	FullWidth bool          `json:"fullWidth"`
	Main      []SectionView `json:"main"`
	Sidebar   []SectionView `json:"sidebar"`
}

// Preview 按布局把板块 ID 解析为预览内容；无法解析的 ID 被跳过。
func Preview(d *resume.Data) []PageView {
	pages := make([]PageView, 0, len(d.Metadata.Layout.Pages))
	for _, page := range d.Metadata.Layout.Pages {
		pages = append(pages, PageView{
			FullWidth: page.FullWidth,
			Main:      views(d, page.Main),
			Sidebar:   views(d, page.Sidebar),
		})
	}
	return pages
}

func views(d *resume.Data, ids []string) []SectionView {
	out := make([]SectionView, 0, len(ids))
	for _, id := range ids {
		switch {
		case id == resume.SectionSummary:
			out = append(out, SectionView{
				ID:     id,
				Type:   resume.SectionSummary,
				Title:  d.Summary.Title,
				Hidden: d.Summary.Hidden,
				Items:  1,
			})
		case d.CustomSectionIndex(id) >= 0:
			cs := d.CustomSections[d.CustomSectionIndex(id)]
			out = append(out, SectionView{ID: id, Type: cs.Type, Title: cs.Title, Hidden: cs.Hidden, Items: len(cs.Items)})
		default:
			section, ok := d.Sections[id]
			if !ok {
				continue
			}
			out = append(out, SectionView{ID: id, Type: id, Title: section.Title, Hidden: section.Hidden, Items: len(section.Items)})
		}
	}
	return out
}
