package layout

import (
	"errors"

	"resumeEditor/internal/resume"
)

// Updater 是文档的修改入口。
type Updater interface {
	Update(fn func(draft *resume.Data) error) error
}

var errNoChange = errors.New("layout unchanged")

// Assigner 通过文档修改入口执行布局操作。
type Assigner struct {
	doc Updater
}

func NewAssigner(doc Updater) *Assigner {
	return &Assigner{doc: doc}
}

func (a *Assigner) AddPage() error {
	return a.doc.Update(func(d *resume.Data) error {
		AddPage(&d.Metadata.Layout)
		return nil
	})
}

func (a *Assigner) DeletePage(i int) error {
	return a.doc.Update(func(d *resume.Data) error {
		return DeletePage(&d.Metadata.Layout, i)
	})
}

func (a *Assigner) ToggleFullWidth(i int, fullWidth bool) error {
	return a.doc.Update(func(d *resume.Data) error {
		return ToggleFullWidth(&d.Metadata.Layout, i, fullWidth)
	})
}

func (a *Assigner) Reorder(loc Location, from, to int) error {
	return a.doc.Update(func(d *resume.Data) error {
		return Reorder(&d.Metadata.Layout, loc, from, to)
	})
}

// Drop 应用一次拖放；无法解析的拖放不提交任何修改，返回 false。
func (a *Assigner) Drop(active, over string) (bool, error) {
	err := a.doc.Update(func(d *resume.Data) error {
		if !Drop(&d.Metadata.Layout, active, over) {
			return errNoChange
		}
		return nil
	})
	switch {
	case errors.Is(err, errNoChange):
		return false, nil
	case err != nil:
		return false, err
	default:
		return true, nil
	}
}
