// Package layout 维护板块在页面与栏位中的排布。
//
// 每个板块 ID 恰好出现在一个 (页, 栏) 中；本包的所有操作都保持这一划分不变。
package layout

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"resumeEditor/internal/resume"
)

// Column 是页面中的栏位。
type Column string

const (
	ColumnMain    Column = "main"
	ColumnSidebar Column = "sidebar"
)

var (
	ErrLastPage        = errors.New("cannot delete the only page")
	ErrPageOutOfRange  = errors.New("page index out of range")
	ErrInvalidColumn   = errors.New("invalid column")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrPartition       = errors.New("layout partition broken")
)

// Location 定位一个栏位。
type Location struct {
	Page   int    `json:"page"`
	Column Column `json:"column"`
}

// Key 返回栏位容器的拖放标识，例如 "0.main"。
func (l Location) Key() string {
	return strconv.Itoa(l.Page) + "." + string(l.Column)
}

// ParseKey 解析容器标识。
func ParseKey(key string) (Location, bool) {
	page, column, ok := strings.Cut(key, ".")
	if !ok {
		return Location{}, false
	}
	idx, err := strconv.Atoi(page)
	if err != nil || idx < 0 {
		return Location{}, false
	}
	col := Column(column)
	if col != ColumnMain && col != ColumnSidebar {
		return Location{}, false
	}
	return Location{Page: idx, Column: col}, true
}

func list(l *resume.Layout, loc Location) (*[]string, error) {
	if loc.Page < 0 || loc.Page >= len(l.Pages) {
		return nil, fmt.Errorf("%w: %d", ErrPageOutOfRange, loc.Page)
	}
	page := &l.Pages[loc.Page]
	switch loc.Column {
	case ColumnMain:
		return &page.Main, nil
	case ColumnSidebar:
		return &page.Sidebar, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidColumn, loc.Column)
	}
}

// AddPage 在末尾追加一个空白页。
func AddPage(l *resume.Layout) {
	l.Pages = append(l.Pages, resume.PageLayout{FullWidth: false, Main: []string{}, Sidebar: []string{}})
}

// DeletePage 删除第 i 页，页内板块按原顺序追加到回落页（第 0 页；删除第 0 页时为第 1 页）的对应栏位。
func DeletePage(l *resume.Layout, i int) error {
	if len(l.Pages) <= 1 {
		return ErrLastPage
	}
	if i < 0 || i >= len(l.Pages) {
		return fmt.Errorf("%w: %d", ErrPageOutOfRange, i)
	}

	fallback := 0
	if i == 0 {
		fallback = 1
	}
	removed := l.Pages[i]
	target := &l.Pages[fallback]
	target.Main = append(target.Main, removed.Main...)
	target.Sidebar = append(target.Sidebar, removed.Sidebar...)

	l.Pages = append(l.Pages[:i], l.Pages[i+1:]...)
	return nil
}

// ToggleFullWidth 设置第 i 页是否通栏。开启时侧栏板块按顺序移到主栏末尾；
// 关闭时不会把板块移回侧栏。
func ToggleFullWidth(l *resume.Layout, i int, fullWidth bool) error {
	if i < 0 || i >= len(l.Pages) {
		return fmt.Errorf("%w: %d", ErrPageOutOfRange, i)
	}
	page := &l.Pages[i]
	if fullWidth {
		page.Main = append(page.Main, page.Sidebar...)
		page.Sidebar = []string{}
	}
	page.FullWidth = fullWidth
	return nil
}

// Reorder 在同一栏位内把 from 处的板块移动到 to。
func Reorder(l *resume.Layout, loc Location, from, to int) error {
	ids, err := list(l, loc)
	if err != nil {
		return err
	}
	n := len(*ids)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("%w: %d -> %d", ErrIndexOutOfRange, from, to)
	}
	*ids = arrayMove(*ids, from, to)
	return nil
}

// Find 返回板块所在栏位与下标。
func Find(l *resume.Layout, id string) (Location, int, bool) {
	for p, page := range l.Pages {
		if idx := indexOf(page.Main, id); idx >= 0 {
			return Location{Page: p, Column: ColumnMain}, idx, true
		}
		if idx := indexOf(page.Sidebar, id); idx >= 0 {
			return Location{Page: p, Column: ColumnSidebar}, idx, true
		}
	}
	return Location{}, -1, false
}

// Resolve 将拖放目标解析为栏位：key 可以是容器标识（返回下标 -1），
// 也可以是某个板块 ID（返回其所在栏位与下标）。
func Resolve(l *resume.Layout, key string) (Location, int, bool) {
	if loc, ok := ParseKey(key); ok {
		if loc.Page < len(l.Pages) {
			return loc, -1, true
		}
		return Location{}, -1, false
	}
	return Find(l, key)
}

// Drop 处理一次拖放结束：把 active 移到 over 所指位置。
// 任一端无法解析时不做任何修改并返回 false。
func Drop(l *resume.Layout, active, over string) bool {
	if active == "" || over == "" || active == over {
		return false
	}
	src, from, ok := Find(l, active)
	if !ok {
		return false
	}
	dst, to, ok := Resolve(l, over)
	if !ok {
		return false
	}

	srcList, _ := list(l, src)
	if src == dst {
		if to < 0 {
			to = len(*srcList) - 1
		}
		if from == to {
			return false
		}
		*srcList = arrayMove(*srcList, from, to)
		return true
	}

	return MoveAcross(l, active, dst, to)
}

// MoveAcross 将 id 从当前位置移到目标栏位的 index 处；index 小于 0 或越界时追加到末尾。
func MoveAcross(l *resume.Layout, id string, target Location, index int) bool {
	src, from, ok := Find(l, id)
	if !ok {
		return false
	}
	dstList, err := list(l, target)
	if err != nil {
		return false
	}
	srcList, _ := list(l, src)
	*srcList = append((*srcList)[:from], (*srcList)[from+1:]...)

	// 同一栏位内移除后下标可能前移。
	if src == target && index > from {
		index--
	}
	if index < 0 || index > len(*dstList) {
		index = len(*dstList)
	}
	*dstList = insertAt(*dstList, index, id)
	return true
}

// Place 将新板块追加到指定栏位末尾；已存在时不做修改。
func Place(l *resume.Layout, id string, loc Location) error {
	if _, _, ok := Find(l, id); ok {
		return nil
	}
	ids, err := list(l, loc)
	if err != nil {
		return err
	}
	*ids = append(*ids, id)
	return nil
}

// Remove 从布局中移除板块，返回是否找到。
func Remove(l *resume.Layout, id string) bool {
	loc, idx, ok := Find(l, id)
	if !ok {
		return false
	}
	ids, _ := list(l, loc)
	*ids = append((*ids)[:idx], (*ids)[idx+1:]...)
	return true
}

// Check 校验布局恰好划分了 ids：每个 ID 只出现一次，且没有多余的 ID。
func Check(l resume.Layout, ids []string) error {
	expected := make(map[string]bool, len(ids))
	for _, id := range ids {
		expected[id] = true
	}

	seen := make(map[string]Location, len(ids))
	var problems []string
	visit := func(loc Location, list []string) {
		for _, id := range list {
			if prev, dup := seen[id]; dup {
				problems = append(problems, fmt.Sprintf("%s placed in %s and %s", id, prev.Key(), loc.Key()))
				continue
			}
			seen[id] = loc
			if !expected[id] {
				problems = append(problems, fmt.Sprintf("%s in %s is not a section", id, loc.Key()))
			}
		}
	}
	for p, page := range l.Pages {
		visit(Location{Page: p, Column: ColumnMain}, page.Main)
		visit(Location{Page: p, Column: ColumnSidebar}, page.Sidebar)
	}
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			problems = append(problems, fmt.Sprintf("%s is not placed", id))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrPartition, strings.Join(problems, "; "))
	}
	return nil
}

// CheckDocument 校验文档布局恰好划分了文档中现有的板块。
func CheckDocument(d *resume.Data) error {
	return Check(d.Metadata.Layout, d.SectionIDs())
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

func arrayMove(ids []string, from, to int) []string {
	id := ids[from]
	ids = append(ids[:from], ids[from+1:]...)
	return insertAt(ids, to, id)
}

func insertAt(ids []string, index int, id string) []string {
	ids = append(ids, "")
	copy(ids[index+1:], ids[index:])
	ids[index] = id
	return ids
}
