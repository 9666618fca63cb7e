package patch

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"resumeEditor/internal/resume"
)

func baseDoc() *resume.Data {
	d := resume.Default()
	d.Basics.Name = "John Doe"
	exp := d.Sections[resume.SectionExperience]
	exp.Items = []resume.Item{
		{"id": "exp-1", "hidden": false, "company": "Acme", "position": "Engineer"},
		{"id": "exp-2", "hidden": false, "company": "Initech", "position": "Intern"},
	}
	d.Sections[resume.SectionExperience] = exp
	return d
}

func TestApplyReplace(t *testing.T) {
	base := baseDoc()
	next, err := Apply(base, []Operation{{Op: OpReplace, Path: "/basics/name", Value: "Jane Doe"}})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if next.Basics.Name != "Jane Doe" {
		t.Fatalf("expected Jane Doe, got %q", next.Basics.Name)
	}
	if base.Basics.Name != "John Doe" {
		t.Fatalf("base document was modified")
	}
}

func TestApplyIsTransactional(t *testing.T) {
	base := baseDoc()
	ops := []Operation{
		{Op: OpReplace, Path: "/basics/name", Value: "Jane Doe"},
		{Op: OpReplace, Path: "/basics/nickname", Value: "JD"},
	}
	next, err := Apply(base, ops)
	if next != nil {
		t.Fatalf("expected no document on failure")
	}
	var invalid *InvalidPatchError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidPatchError, got %v", err)
	}
	if invalid.Index != 1 {
		t.Fatalf("expected failing index 1, got %d", invalid.Index)
	}
	if base.Basics.Name != "John Doe" {
		t.Fatalf("base document was modified")
	}
}

func TestApplyRemoveMissingFails(t *testing.T) {
	_, err := Apply(baseDoc(), []Operation{{Op: OpRemove, Path: "/sections/experience/items/5"}})
	var invalid *InvalidPatchError
	if !errors.As(err, &invalid) || invalid.Index != 0 {
		t.Fatalf("expected InvalidPatchError at 0, got %v", err)
	}
}

func TestApplyRejectsUnsupportedOperation(t *testing.T) {
	_, err := Apply(baseDoc(), []Operation{{Op: "move", Path: "/basics/name"}})
	if !errors.Is(err, errUnsupportedOp) {
		t.Fatalf("expected unsupported op error, got %v", err)
	}
}

func TestApplyRejectsInvalidDocument(t *testing.T) {
	_, err := Apply(baseDoc(), []Operation{{Op: OpAdd, Path: "/basics/nickname", Value: "JD"}})
	var invalid *InvalidPatchError
	if !errors.As(err, &invalid) || invalid.Index != -1 {
		t.Fatalf("expected document-level InvalidPatchError, got %v", err)
	}
}

func TestApplyRejectsBrokenSectionMap(t *testing.T) {
	cases := []struct {
		name string
		ops  []Operation
	}{
		{
			name: "removed built-in section",
			ops:  []Operation{{Op: OpRemove, Path: "/sections/awards"}},
		},
		{
			name: "unknown section",
			ops: []Operation{{
				Op:    OpAdd,
				Path:  "/sections/bogus",
				Value: map[string]any{"id": "bogus", "title": "Bogus", "columns": 1, "hidden": false, "items": []any{}},
			}},
		},
		{
			name: "dangling layout id",
			ops:  []Operation{{Op: OpAdd, Path: "/metadata/layout/pages/0/main/-", Value: "ghost"}},
		},
		{
			name: "section dropped from layout",
			ops:  []Operation{{Op: OpReplace, Path: "/metadata/layout/pages/0/sidebar", Value: []any{}}},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			base := baseDoc()
			next, err := Apply(base, tc.ops)
			if next != nil {
				t.Fatalf("expected no document on failure")
			}
			var invalid *InvalidPatchError
			if !errors.As(err, &invalid) || invalid.Index != -1 {
				t.Fatalf("expected document-level InvalidPatchError, got %v", err)
			}
			if _, ok := base.Sections[resume.SectionAwards]; !ok {
				t.Fatalf("base document was modified")
			}
		})
	}
}

func TestApplyReplaceWithNull(t *testing.T) {
	base := baseDoc()
	base.Basics.Website.Href = "https://john.test"
	next, err := Apply(base, []Operation{{Op: OpReplace, Path: "/basics/website/href", Value: nil}})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if next.Basics.Website.Href != "" {
		t.Fatalf("expected null to clear href, got %q", next.Basics.Website.Href)
	}
}

func TestOperationRequiresValueKey(t *testing.T) {
	var ops []Operation
	if err := json.Unmarshal([]byte(`[{"op":"replace","path":"/basics/name"}]`), &ops); !errors.Is(err, errMissingValue) {
		t.Fatalf("expected missing value error, got %v", err)
	}

	if err := json.Unmarshal([]byte(`[{"op":"replace","path":"/basics/website/href","value":null},{"op":"remove","path":"/basics/name"}]`), &ops); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(ops) != 2 || ops[0].Value != nil || ops[1].Op != OpRemove {
		t.Fatalf("unexpected operations %#v", ops)
	}
}

func TestApplyAddCreatesContainers(t *testing.T) {
	next, err := Apply(baseDoc(), []Operation{
		{Op: OpAdd, Path: "/sections/experience/items/0/website/href", Value: "https://acme.test"},
	})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	website, ok := next.Sections[resume.SectionExperience].Items[0]["website"].(map[string]any)
	if !ok || website["href"] != "https://acme.test" {
		t.Fatalf("expected nested website to be created, got %#v", next.Sections[resume.SectionExperience].Items[0])
	}
}

func TestApplyIsNotIdempotent(t *testing.T) {
	ops := []Operation{{
		Op:    OpAdd,
		Path:  "/sections/skills/items/-",
		Value: map[string]any{"id": "skill-1", "hidden": false, "name": "Go"},
	}}
	once, err := Apply(baseDoc(), ops)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	twice, err := Apply(once, ops)
	if err != nil {
		t.Fatalf("apply twice: %v", err)
	}
	if got := len(twice.Sections[resume.SectionSkills].Items); got != 2 {
		t.Fatalf("expected duplicate insertion, got %d items", got)
	}
}

func TestInverseRestoresOriginal(t *testing.T) {
	base := baseDoc()
	ops := []Operation{
		{Op: OpReplace, Path: "/basics/name", Value: "Jane Doe"},
		{Op: OpAdd, Path: "/sections/skills/items/-", Value: map[string]any{"id": "skill-1", "hidden": false, "name": "Go"}},
		{Op: OpRemove, Path: "/sections/experience/items/0"},
		{Op: OpAdd, Path: "/sections/experience/items/0/website/href", Value: "https://initech.test"},
		{Op: OpAdd, Path: "/metadata/layout/pages/0/main/0", Value: "extra"},
	}

	inverse, err := Inverse(base, ops)
	if err != nil {
		t.Fatalf("inverse: %v", err)
	}
	patched, err := Apply(base, ops)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	restored, err := Apply(patched, inverse)
	if err != nil {
		t.Fatalf("apply inverse: %v", err)
	}
	if !resume.Equal(restored, base) {
		t.Fatalf("inverse did not restore the original document")
	}
}

func TestDiffReportsChangedPath(t *testing.T) {
	from := baseDoc()
	to := from.Clone()
	to.Basics.Name = "Jane Doe"

	ops, err := Diff(from, to)
	if err != nil {
		t.Fatalf("diff: %v", err)
	}
	found := false
	for _, op := range ops {
		if op.Path == "/basics/name" && op.Op == OpReplace && op.Value == "Jane Doe" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected replace /basics/name in %+v", ops)
	}

	same, err := Diff(from, from.Clone())
	if err != nil {
		t.Fatalf("diff: %v", err)
	}
	if len(same) != 0 {
		t.Fatalf("expected empty diff for equal documents, got %+v", same)
	}
}

type docUpdater struct {
	doc *resume.Data
}

func (u *docUpdater) Update(fn func(*resume.Data) error) error {
	draft := u.doc.Clone()
	if err := fn(draft); err != nil {
		return err
	}
	u.doc = draft
	return nil
}

func TestConsumerSkipsRepeatedCallID(t *testing.T) {
	ctx := context.Background()
	u := &docUpdater{doc: baseDoc()}
	c := NewConsumer(NewMemoryTracker(), nil)
	ops := []Operation{{Op: OpReplace, Path: "/basics/name", Value: "Jane Doe"}}

	res, err := c.Apply(ctx, "resume-1", u, "call-1", ops)
	if err != nil || res.Skipped || len(res.Applied) != 1 {
		t.Fatalf("first apply: %+v %v", res, err)
	}
	if u.doc.Basics.Name != "Jane Doe" {
		t.Fatalf("expected Jane Doe, got %q", u.doc.Basics.Name)
	}

	u.doc.Basics.Name = "Someone Else"
	res, err = c.Apply(ctx, "resume-1", u, "call-1", ops)
	if err != nil || !res.Skipped {
		t.Fatalf("second apply should be skipped: %+v %v", res, err)
	}
	if u.doc.Basics.Name != "Someone Else" {
		t.Fatalf("skipped call modified the document")
	}
}

func TestConsumerForgetsFailedCall(t *testing.T) {
	ctx := context.Background()
	u := &docUpdater{doc: baseDoc()}
	c := NewConsumer(NewMemoryTracker(), nil)

	bad := []Operation{{Op: OpReplace, Path: "/basics/missing", Value: "x"}}
	if _, err := c.Apply(ctx, "resume-1", u, "call-1", bad); err == nil {
		t.Fatalf("expected failure")
	}

	good := []Operation{{Op: OpReplace, Path: "/basics/name", Value: "Jane Doe"}}
	res, err := c.Apply(ctx, "resume-1", u, "call-1", good)
	if err != nil || res.Skipped {
		t.Fatalf("retry after failure should apply: %+v %v", res, err)
	}
}

func TestRedisTracker(t *testing.T) {
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer client.Close()

	ctx := context.Background()
	tracker := NewRedisTracker(client, 0)

	fresh, err := tracker.MarkApplied(ctx, "resume-1", "call-1")
	if err != nil || !fresh {
		t.Fatalf("first mark: %v %v", fresh, err)
	}
	fresh, err = tracker.MarkApplied(ctx, "resume-1", "call-1")
	if err != nil || fresh {
		t.Fatalf("second mark should report seen: %v %v", fresh, err)
	}
	fresh, err = tracker.MarkApplied(ctx, "resume-2", "call-1")
	if err != nil || !fresh {
		t.Fatalf("call ids are scoped per resume: %v %v", fresh, err)
	}
	if ttl := s.TTL("patch_call:resume-1:call-1"); ttl <= 0 {
		t.Fatalf("expected ttl on tracker key, got %v", ttl)
	}

	if err := tracker.Forget(ctx, "resume-1", "call-1"); err != nil {
		t.Fatalf("forget: %v", err)
	}
	fresh, err = tracker.MarkApplied(ctx, "resume-1", "call-1")
	if err != nil || !fresh {
		t.Fatalf("mark after forget: %v %v", fresh, err)
	}
}
