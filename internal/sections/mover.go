package sections

import "resumeEditor/internal/resume"

// Document 是文档的读取与修改入口。
type Document interface {
	Update(fn func(draft *resume.Data) error) error
	Current() *resume.Data
}

// Mover 通过文档修改入口执行条目移动与自定义板块操作。
type Mover struct {
	doc Document
}

func NewMover(doc Document) *Mover {
	return &Mover{doc: doc}
}

// Targets 基于当前文档计算可移入的板块。
func (m *Mover) Targets(itemID, source string) ([]Target, error) {
	d := m.doc.Current()
	if d == nil {
		return nil, ErrSectionNotFound
	}
	return CompatibleTargets(d, itemID, source)
}

func (m *Mover) Move(itemID, source, target string) error {
	return m.doc.Update(func(d *resume.Data) error {
		return Move(d, itemID, source, target)
	})
}

func (m *Mover) AddCustomSection(sectionType, title string) (string, error) {
	var id string
	err := m.doc.Update(func(d *resume.Data) error {
		var err error
		id, err = AddCustomSection(d, sectionType, title)
		return err
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

func (m *Mover) RemoveCustomSection(id string) error {
	return m.doc.Update(func(d *resume.Data) error {
		return RemoveCustomSection(d, id)
	})
}
