// Package sections 在板块之间移动条目，并管理自定义板块的增删。
package sections

import (
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"resumeEditor/internal/layout"
	"resumeEditor/internal/resume"
)

var (
	ErrSectionNotFound = errors.New("section not found")
	ErrItemNotFound    = errors.New("item not found")
	ErrIncompatible    = errors.New("item shape does not match target section")
	ErrSameSection     = errors.New("source and target are the same section")
	ErrUnknownType     = errors.New("unknown section type")
	ErrBuiltinSection  = errors.New("built-in sections cannot be removed")
)

// Target 是条目可以移入的板块。
type Target struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Title string `json:"title"`
}

func itemsOf(d *resume.Data, id string) ([]resume.Item, bool) {
	if section, ok := d.Sections[id]; ok {
		return section.Items, true
	}
	if i := d.CustomSectionIndex(id); i >= 0 {
		return d.CustomSections[i].Items, true
	}
	return nil, false
}

func setItems(d *resume.Data, id string, items []resume.Item) {
	if section, ok := d.Sections[id]; ok {
		section.Items = items
		d.Sections[id] = section
		return
	}
	if i := d.CustomSectionIndex(id); i >= 0 {
		d.CustomSections[i].Items = items
	}
}

func title(d *resume.Data, id string) string {
	if section, ok := d.Sections[id]; ok {
		return section.Title
	}
	if i := d.CustomSectionIndex(id); i >= 0 {
		return d.CustomSections[i].Title
	}
	return ""
}

func indexOfItem(items []resume.Item, itemID string) int {
	return slices.IndexFunc(items, func(it resume.Item) bool { return it.ID() == itemID })
}

// Compatible 从 candidates 中筛选出条目结构与 source 一致的板块。
// source 自身、summary 与不存在的候选会被忽略。
func Compatible(d *resume.Data, source string, candidates []string) ([]Target, error) {
	sourceType, ok := d.SectionType(source)
	if !ok || source == resume.SectionSummary {
		return nil, fmt.Errorf("%w: %s", ErrSectionNotFound, source)
	}

	out := make([]Target, 0, len(candidates))
	for _, id := range candidates {
		if id == source || id == resume.SectionSummary {
			continue
		}
		targetType, ok := d.SectionType(id)
		if !ok || !resume.SameItemShape(sourceType, targetType) {
			continue
		}
		out = append(out, Target{ID: id, Type: targetType, Title: title(d, id)})
	}
	return out, nil
}

// CompatibleTargets 返回 source 中条目 itemID 可以移入的全部板块。
func CompatibleTargets(d *resume.Data, itemID, source string) ([]Target, error) {
	items, ok := itemsOf(d, source)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSectionNotFound, source)
	}
	if indexOfItem(items, itemID) < 0 {
		return nil, fmt.Errorf("%w: %s in %s", ErrItemNotFound, itemID, source)
	}
	return Compatible(d, source, d.SectionIDs())
}

// Move 把条目从 source 移除并追加到 target 末尾。任一检查失败时 d 不被修改。
func Move(d *resume.Data, itemID, source, target string) error {
	if source == target {
		return ErrSameSection
	}
	from, ok := itemsOf(d, source)
	if !ok {
		return fmt.Errorf("%w: %s", ErrSectionNotFound, source)
	}
	to, ok := itemsOf(d, target)
	if !ok {
		return fmt.Errorf("%w: %s", ErrSectionNotFound, target)
	}
	idx := indexOfItem(from, itemID)
	if idx < 0 {
		return fmt.Errorf("%w: %s in %s", ErrItemNotFound, itemID, source)
	}
	sourceType, _ := d.SectionType(source)
	targetType, _ := d.SectionType(target)
	if !resume.SameItemShape(sourceType, targetType) {
		return fmt.Errorf("%w: %s -> %s", ErrIncompatible, sourceType, targetType)
	}

	item := from[idx]
	setItems(d, source, slices.Delete(slices.Clone(from), idx, idx+1))
	setItems(d, target, append(slices.Clone(to), item))
	return nil
}

// AddCustomSection 新建一个自定义板块并放到第一页主栏末尾，返回其 ID。
// title 为空时使用该类型的默认标题。
func AddCustomSection(d *resume.Data, sectionType, title string) (string, error) {
	if !resume.IsSectionType(sectionType) {
		return "", fmt.Errorf("%w: %s", ErrUnknownType, sectionType)
	}
	if title == "" {
		title = resume.DefaultTitle(sectionType)
	}

	id := uuid.NewString()
	d.CustomSections = append(d.CustomSections, resume.CustomSection{
		ID:      id,
		Type:    sectionType,
		Title:   title,
		Columns: 1,
		Items:   []resume.Item{},
	})
	if err := layout.Place(&d.Metadata.Layout, id, layout.Location{Page: 0, Column: layout.ColumnMain}); err != nil {
		return "", err
	}
	return id, nil
}

// RemoveCustomSection 删除自定义板块及其条目，并从布局中移除。
func RemoveCustomSection(d *resume.Data, id string) error {
	if id == resume.SectionSummary || resume.IsBuiltinSection(id) {
		return fmt.Errorf("%w: %s", ErrBuiltinSection, id)
	}
	i := d.CustomSectionIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrSectionNotFound, id)
	}
	d.CustomSections = slices.Delete(d.CustomSections, i, i+1)
	layout.Remove(&d.Metadata.Layout, id)
	return nil
}
