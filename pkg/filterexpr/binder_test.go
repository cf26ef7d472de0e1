package filterexpr

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

type listLessonsBindings struct {
	Stage        *float64
	Keyword      string
	Stages       []int32
	CreatedAfter *time.Time
}

var lessonsSchema = Schema{
	Fields: map[string]FieldRule{
		"stage": {
			Kind: KindNumber,
			Ops:  map[Op]string{OpEQ: "Stage", OpIN: "Stages"},
		},
		"title": {
			Kind: KindString,
			Ops:  map[Op]string{OpSW: "Keyword"},
		},
		"create_time": {
			Kind: KindTimestamp,
			Ops:  map[Op]string{OpGTE: "CreatedAfter"},
		},
	},
}

func TestBindCELTo(t *testing.T) {
	var bindings listLessonsBindings
	stamp := "2025-01-01T00:00:00Z"
	filter := fmt.Sprintf("stage == 3 && title.startsWith('Weather') && create_time >= timestamp('%s')", stamp)

	if err := BindCELTo(filter, &bindings, lessonsSchema); err != nil {
		t.Fatalf("BindCELTo returned error: %v", err)
	}
	if bindings.Stage == nil || *bindings.Stage != 3 {
		t.Fatalf("expected Stage 3, got %v", bindings.Stage)
	}
	if bindings.Keyword != "Weather" {
		t.Fatalf("expected Keyword 'Weather', got %q", bindings.Keyword)
	}
	if bindings.CreatedAfter == nil {
		t.Fatal("expected CreatedAfter to be set")
	}
	want, _ := time.Parse(time.RFC3339, stamp)
	if !bindings.CreatedAfter.Equal(want) {
		t.Fatalf("expected CreatedAfter %v, got %v", want, bindings.CreatedAfter)
	}
}

func TestBindCELToList(t *testing.T) {
	var bindings listLessonsBindings
	if err := BindCELTo("stage in [1, 2, 5]", &bindings, lessonsSchema); err != nil {
		t.Fatalf("BindCELTo returned error: %v", err)
	}
	if len(bindings.Stages) != 3 || bindings.Stages[0] != 1 || bindings.Stages[2] != 5 {
		t.Fatalf("expected Stages [1 2 5], got %v", bindings.Stages)
	}
}

func TestBindCELToEmptyFilterIsNoop(t *testing.T) {
	var bindings listLessonsBindings
	if err := BindCELTo("  ", &bindings, lessonsSchema); err != nil {
		t.Fatalf("BindCELTo returned error: %v", err)
	}
	if bindings.Stage != nil || bindings.Keyword != "" {
		t.Fatalf("expected untouched bindings, got %+v", bindings)
	}
}

func TestBindCELToRejectsUnknownField(t *testing.T) {
	var bindings listLessonsBindings
	err := BindCELTo("secret == 'x'", &bindings, lessonsSchema)
	if err == nil {
		t.Fatal("expected error for unknown field")
	}
	if !errors.Is(err, ErrInvalidExpr) {
		t.Fatalf("expected ErrInvalidExpr, got %v", err)
	}
}

func TestBindCELToRejectsDisallowedOperator(t *testing.T) {
	var bindings listLessonsBindings
	if err := BindCELTo("title == 'Weather'", &bindings, lessonsSchema); err == nil {
		t.Fatal("expected error for disallowed operator")
	}
}

func TestBindCELToRejectsDisjunction(t *testing.T) {
	var bindings listLessonsBindings
	if err := BindCELTo("stage == 1 || stage == 2", &bindings, lessonsSchema); err == nil {
		t.Fatal("expected error for OR expression")
	}
}

func TestParseOrderBy(t *testing.T) {
	schema := OrderSchema{
		Default:  "position",
		Fallback: "id",
		Fields:   map[string]string{"position": "position", "create_time": "created_at", "id": "id"},
	}

	got, err := ParseOrderBy("create_time desc", schema)
	if err != nil {
		t.Fatalf("ParseOrderBy returned error: %v", err)
	}
	if got != "created_at DESC, id" {
		t.Fatalf("unexpected clause %q", got)
	}

	got, err = ParseOrderBy("", schema)
	if err != nil {
		t.Fatalf("ParseOrderBy returned error: %v", err)
	}
	if got != "position, id" {
		t.Fatalf("unexpected default clause %q", got)
	}

	if _, err = ParseOrderBy("password desc", schema); err == nil {
		t.Fatal("expected error for non-whitelisted key")
	}
	if _, err = ParseOrderBy("position sideways", schema); err == nil {
		t.Fatal("expected error for invalid direction")
	}
}
