package layout

import (
	"errors"
	"fmt"
	"math/rand"
	"reflect"
	"testing"

	"resumeEditor/internal/resume"
)

func page(fullWidth bool, main, sidebar []string) resume.PageLayout {
	return resume.PageLayout{FullWidth: fullWidth, Main: main, Sidebar: sidebar}
}

func TestDeletePageMergesIntoFallback(t *testing.T) {
	l := resume.Layout{Pages: []resume.PageLayout{
		page(false, []string{"basics"}, []string{"skills"}),
		page(false, []string{"experience"}, []string{}),
	}}

	if err := DeletePage(&l, 0); err != nil {
		t.Fatalf("delete page: %v", err)
	}
	want := []resume.PageLayout{page(false, []string{"experience", "basics"}, []string{"skills"})}
	if !reflect.DeepEqual(l.Pages, want) {
		t.Fatalf("got %+v, want %+v", l.Pages, want)
	}
}

func TestDeletePageUsesFirstPageAsFallback(t *testing.T) {
	l := resume.Layout{Pages: []resume.PageLayout{
		page(false, []string{"a"}, []string{"b"}),
		page(false, []string{"c"}, []string{}),
		page(false, []string{"d"}, []string{"e"}),
	}}
	if err := DeletePage(&l, 2); err != nil {
		t.Fatalf("delete page: %v", err)
	}
	if len(l.Pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(l.Pages))
	}
	if !reflect.DeepEqual(l.Pages[0].Main, []string{"a", "d"}) || !reflect.DeepEqual(l.Pages[0].Sidebar, []string{"b", "e"}) {
		t.Fatalf("unexpected fallback page %+v", l.Pages[0])
	}
}

func TestDeleteOnlyPageRejected(t *testing.T) {
	l := resume.Layout{Pages: []resume.PageLayout{page(false, []string{"a"}, []string{})}}
	if err := DeletePage(&l, 0); !errors.Is(err, ErrLastPage) {
		t.Fatalf("expected ErrLastPage, got %v", err)
	}
	if len(l.Pages) != 1 {
		t.Fatalf("page removed despite rejection")
	}
}

func TestDeletePageOutOfRange(t *testing.T) {
	l := resume.Layout{Pages: []resume.PageLayout{page(false, nil, nil), page(false, nil, nil)}}
	if err := DeletePage(&l, 2); !errors.Is(err, ErrPageOutOfRange) {
		t.Fatalf("expected ErrPageOutOfRange, got %v", err)
	}
}

func TestToggleFullWidth(t *testing.T) {
	l := resume.Layout{Pages: []resume.PageLayout{page(false, []string{"a"}, []string{"b", "c"})}}

	if err := ToggleFullWidth(&l, 0, true); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !reflect.DeepEqual(l.Pages[0].Main, []string{"a", "b", "c"}) || len(l.Pages[0].Sidebar) != 0 || !l.Pages[0].FullWidth {
		t.Fatalf("unexpected page after enabling full width: %+v", l.Pages[0])
	}

	if err := ToggleFullWidth(&l, 0, false); err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	if l.Pages[0].FullWidth || len(l.Pages[0].Sidebar) != 0 || len(l.Pages[0].Main) != 3 {
		t.Fatalf("disabling full width should not move sections back: %+v", l.Pages[0])
	}
}

func TestAddPage(t *testing.T) {
	l := resume.Layout{Pages: []resume.PageLayout{page(false, []string{"a"}, nil)}}
	AddPage(&l)
	if len(l.Pages) != 2 || l.Pages[1].FullWidth || l.Pages[1].Main == nil || len(l.Pages[1].Main) != 0 {
		t.Fatalf("unexpected new page %+v", l.Pages)
	}
}

func TestReorder(t *testing.T) {
	l := resume.Layout{Pages: []resume.PageLayout{page(false, []string{"a", "b", "c"}, nil)}}
	if err := Reorder(&l, Location{Page: 0, Column: ColumnMain}, 0, 2); err != nil {
		t.Fatalf("reorder: %v", err)
	}
	if !reflect.DeepEqual(l.Pages[0].Main, []string{"b", "c", "a"}) {
		t.Fatalf("got %v", l.Pages[0].Main)
	}
	if err := Reorder(&l, Location{Page: 0, Column: ColumnMain}, 0, 3); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestDrop(t *testing.T) {
	newLayout := func() resume.Layout {
		return resume.Layout{Pages: []resume.PageLayout{
			page(false, []string{"a", "b", "c"}, []string{"d"}),
			page(false, []string{"e"}, []string{}),
		}}
	}

	cases := []struct {
		name        string
		active      string
		over        string
		wantChanged bool
		want        [][2][]string
	}{
		{
			name: "onto item in other column", active: "a", over: "d", wantChanged: true,
			want: [][2][]string{{{"b", "c"}, {"a", "d"}}, {{"e"}, {}}},
		},
		{
			name: "onto empty container", active: "b", over: "1.sidebar", wantChanged: true,
			want: [][2][]string{{{"a", "c"}, {"d"}}, {{"e"}, {"b"}}},
		},
		{
			name: "onto container appends", active: "a", over: "1.main", wantChanged: true,
			want: [][2][]string{{{"b", "c"}, {"d"}}, {{"e", "a"}, {}}},
		},
		{
			name: "within column", active: "c", over: "a", wantChanged: true,
			want: [][2][]string{{{"c", "a", "b"}, {"d"}}, {{"e"}, {}}},
		},
		{
			name: "unknown active", active: "zzz", over: "a", wantChanged: false,
			want: [][2][]string{{{"a", "b", "c"}, {"d"}}, {{"e"}, {}}},
		},
		{
			name: "unknown target", active: "a", over: "7.main", wantChanged: false,
			want: [][2][]string{{{"a", "b", "c"}, {"d"}}, {{"e"}, {}}},
		},
		{
			name: "onto itself", active: "a", over: "a", wantChanged: false,
			want: [][2][]string{{{"a", "b", "c"}, {"d"}}, {{"e"}, {}}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := newLayout()
			if changed := Drop(&l, tc.active, tc.over); changed != tc.wantChanged {
				t.Fatalf("changed = %v, want %v", changed, tc.wantChanged)
			}
			for i, p := range l.Pages {
				if !reflect.DeepEqual(p.Main, tc.want[i][0]) || !reflect.DeepEqual(p.Sidebar, tc.want[i][1]) {
					t.Fatalf("page %d = %v/%v, want %v/%v", i, p.Main, p.Sidebar, tc.want[i][0], tc.want[i][1])
				}
			}
		})
	}
}

func TestPartitionSurvivesRandomOperations(t *testing.T) {
	d := resume.Default()
	ids := d.SectionIDs()
	l := d.Metadata.Layout.Clone()
	r := rand.New(rand.NewSource(42))

	for step := 0; step < 2000; step++ {
		switch r.Intn(6) {
		case 0:
			AddPage(&l)
		case 1:
			_ = DeletePage(&l, r.Intn(len(l.Pages)+1))
		case 2:
			_ = ToggleFullWidth(&l, r.Intn(len(l.Pages)), r.Intn(2) == 0)
		case 3:
			loc := Location{Page: r.Intn(len(l.Pages)), Column: ColumnMain}
			if r.Intn(2) == 0 {
				loc.Column = ColumnSidebar
			}
			if n := len(l.Pages[loc.Page].Main); loc.Column == ColumnMain && n > 0 {
				_ = Reorder(&l, loc, r.Intn(n), r.Intn(n))
			}
		case 4:
			over := ids[r.Intn(len(ids))]
			Drop(&l, ids[r.Intn(len(ids))], over)
		case 5:
			col := "main"
			if r.Intn(2) == 0 {
				col = "sidebar"
			}
			Drop(&l, ids[r.Intn(len(ids))], fmt.Sprintf("%d.%s", r.Intn(len(l.Pages)+1), col))
		}
		if err := Check(l, ids); err != nil {
			t.Fatalf("step %d: %v", step, err)
		}
	}
}

func TestCheckDetectsViolations(t *testing.T) {
	l := resume.Layout{Pages: []resume.PageLayout{page(false, []string{"a", "b"}, []string{"a", "x"})}}
	if err := Check(l, []string{"a", "b", "c"}); !errors.Is(err, ErrPartition) {
		t.Fatalf("expected partition violations, got %v", err)
	}
}

type countingUpdater struct {
	doc     *resume.Data
	commits int
}

func (u *countingUpdater) Update(fn func(*resume.Data) error) error {
	draft := u.doc.Clone()
	if err := fn(draft); err != nil {
		return err
	}
	u.doc = draft
	u.commits++
	return nil
}

func TestAssignerDropNoOpDoesNotCommit(t *testing.T) {
	u := &countingUpdater{doc: resume.Default()}
	a := NewAssigner(u)

	changed, err := a.Drop("summary", "nowhere")
	if err != nil || changed {
		t.Fatalf("expected silent no-op, got %v %v", changed, err)
	}
	if u.commits != 0 {
		t.Fatalf("no-op drop committed")
	}

	changed, err = a.Drop(resume.SectionSummary, "0.sidebar")
	if err != nil || !changed {
		t.Fatalf("expected drop to apply, got %v %v", changed, err)
	}
	if loc, _, _ := Find(&u.doc.Metadata.Layout, resume.SectionSummary); loc.Column != ColumnSidebar {
		t.Fatalf("summary not moved to sidebar: %+v", loc)
	}
}

func TestAssignerOperations(t *testing.T) {
	u := &countingUpdater{doc: resume.Default()}
	a := NewAssigner(u)

	if err := a.AddPage(); err != nil {
		t.Fatalf("add page: %v", err)
	}
	if err := a.ToggleFullWidth(0, true); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if err := a.DeletePage(0); err != nil {
		t.Fatalf("delete page: %v", err)
	}
	if err := a.DeletePage(0); !errors.Is(err, ErrLastPage) {
		t.Fatalf("expected ErrLastPage, got %v", err)
	}
	if err := Check(u.doc.Metadata.Layout, u.doc.SectionIDs()); err != nil {
		t.Fatalf("partition broken: %v", err)
	}
}

func TestPreview(t *testing.T) {
	d := resume.Sample()
	pages := Preview(d)
	if len(pages) != 1 {
		t.Fatalf("expected one page, got %d", len(pages))
	}
	total := len(pages[0].Main) + len(pages[0].Sidebar)
	if total != len(d.SectionIDs()) {
		t.Fatalf("preview resolved %d sections, want %d", total, len(d.SectionIDs()))
	}
	last := pages[0].Main[len(pages[0].Main)-1]
	if last.Title != "Talks" || last.Items != 1 {
		t.Fatalf("custom section not resolved: %+v", last)
	}
}
