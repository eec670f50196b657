package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	mdwerror "github.com/msto63/minilang/foundation/core/error"
	mdwlog "github.com/msto63/minilang/foundation/core/log"
	"github.com/msto63/minilang/foundation/lang/ast"
	"github.com/msto63/minilang/foundation/lang/diag"
)

func newTestStore(t *testing.T) *SQLiteRunStore {
	t.Helper()
	s, err := Open(Config{
		Path:   filepath.Join(t.TempDir(), "nested", "runs.db"),
		Logger: mdwlog.Discard(),
	})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRun(name string) *Run {
	return &Run{
		Name:           name,
		Source:         "int x; set x 1; print x;",
		SourceHash:     "abc123",
		OK:             false,
		SemanticErrors: 1,
		Diagnostics: []diag.Diagnostic{
			{Line: 2, Kind: diag.KindSemantic, Code: mdwerror.CodeUndeclaredVariable, Message: "variable y is used before being declared"},
		},
		Symbols: map[string]string{"x": "int"},
		Trace:   "LuLuRUN",
		Tally:   ast.Tally{Statements: 3, Declarations: 1, Sets: 1, Prints: 1, Nodes: 9},
	}
}

func TestSaveAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	run := sampleRun("prog.ml")
	if err := s.Save(ctx, run); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if len(run.ID) != 36 {
		t.Errorf("ID = %q, want a uuid", run.ID)
	}
	if run.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	got, err := s.Get(ctx, run.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Name != "prog.ml" || got.Source != run.Source || got.SemanticErrors != 1 || got.OK {
		t.Errorf("Get() = %+v", got)
	}
	if len(got.Diagnostics) != 1 || got.Diagnostics[0].Code != mdwerror.CodeUndeclaredVariable {
		t.Errorf("Diagnostics = %+v", got.Diagnostics)
	}
	if got.Symbols["x"] != "int" {
		t.Errorf("Symbols = %v", got.Symbols)
	}
	if got.Tally != run.Tally {
		t.Errorf("Tally = %+v, want %+v", got.Tally, run.Tally)
	}
	if got.Trace != "LuLuRUN" {
		t.Errorf("Trace = %q", got.Trace)
	}
}

func TestGet_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Get(context.Background(), "missing")
	if !mdwerror.HasCode(err, mdwerror.CodeNotFound) {
		t.Errorf("Get() error = %v, want NOT_FOUND", err)
	}
}

func TestListOrderAndLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	for i, name := range []string{"a", "b", "c"} {
		run := sampleRun(name)
		run.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if err := s.Save(ctx, run); err != nil {
			t.Fatalf("Save(%s) error = %v", name, err)
		}
	}

	tests := []struct {
		name  string
		limit int
		want  []string
	}{
		{"all", 10, []string{"c", "b", "a"}},
		{"limited", 2, []string{"c", "b"}},
		{"default limit", 0, []string{"c", "b", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runs, err := s.List(ctx, tt.limit)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if len(runs) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(runs), len(tt.want))
			}
			for i, run := range runs {
				if run.Name != tt.want[i] {
					t.Errorf("runs[%d] = %s, want %s", i, run.Name, tt.want[i])
				}
			}
		})
	}
}

func TestDeleteAndCount(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first, second := sampleRun("one"), sampleRun("two")
	for _, r := range []*Run{first, second} {
		if err := s.Save(ctx, r); err != nil {
			t.Fatal(err)
		}
	}

	if n, err := s.Count(ctx); err != nil || n != 2 {
		t.Fatalf("Count() = %d, %v; want 2", n, err)
	}

	if err := s.Delete(ctx, first.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := s.Delete(ctx, first.ID); !mdwerror.HasCode(err, mdwerror.CodeNotFound) {
		t.Errorf("second Delete() error = %v, want NOT_FOUND", err)
	}
	if n, _ := s.Count(ctx); n != 1 {
		t.Errorf("Count() after delete = %d, want 1", n)
	}
}

func TestSave_DuplicateID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	run := sampleRun("dup")
	if err := s.Save(ctx, run); err != nil {
		t.Fatal(err)
	}
	again := sampleRun("dup")
	again.ID = run.ID
	if err := s.Save(ctx, again); !mdwerror.HasCode(err, mdwerror.CodeDatabaseError) {
		t.Errorf("Save() duplicate error = %v, want DATABASE_ERROR", err)
	}
}

func TestPingAfterClose(t *testing.T) {
	s := newTestStore(t)
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}
	s.Close()
	if err := s.Ping(context.Background()); err == nil {
		t.Error("Ping() after Close should fail")
	}
}
