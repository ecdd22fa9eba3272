package builder

import (
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-formkit/pkg/model"
)

func testClock() func() time.Time {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	calls := 0
	return func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Minute)
	}
}

func sequentialIDs() func() string {
	n := 0
	ids := []string{"id-1", "id-2", "id-3", "id-4", "id-5"}
	return func() string {
		n++
		return ids[(n-1)%len(ids)]
	}
}

func TestNew_SeedsIdentityAndTimestamps(t *testing.T) {
	b := New("Survey", WithClock(testClock()), WithIDGenerator(sequentialIDs()))
	def := b.Definition()

	if def.ID != "id-1" {
		t.Fatalf("unexpected id: %q", def.ID)
	}
	if def.Version != model.CurrentVersion {
		t.Fatalf("unexpected version: %d", def.Version)
	}
	if def.CreatedAt.IsZero() || !def.CreatedAt.Equal(def.UpdatedAt) {
		t.Fatalf("timestamps not seeded: created=%v updated=%v", def.CreatedAt, def.UpdatedAt)
	}
}

func TestAddField_GeneratesIDAndName(t *testing.T) {
	b := New("Survey", WithIDGenerator(sequentialIDs()))

	field, err := b.AddField(model.Field{Type: model.FieldTypeText, Label: "Full Name"})
	if err != nil {
		t.Fatalf("add field: %v", err)
	}
	if field.ID == "" {
		t.Fatalf("expected generated id")
	}
	if field.Name != "full_name" {
		t.Fatalf("derived name: want full_name, got %q", field.Name)
	}

	// Same label again gets a suffixed name instead of a conflict.
	second, err := b.AddField(model.Field{Type: model.FieldTypeText, Label: "Full Name"})
	if err != nil {
		t.Fatalf("add second field: %v", err)
	}
	if second.Name != "full_name_2" {
		t.Fatalf("suffixed name: want full_name_2, got %q", second.Name)
	}
}

func TestAddField_NameConflict(t *testing.T) {
	b := New("Survey")
	if _, err := b.AddField(model.Field{Name: "email", Type: model.FieldTypeEmail}); err != nil {
		t.Fatalf("add field: %v", err)
	}

	_, err := b.AddField(model.Field{Name: "email", Type: model.FieldTypeText})
	var conflict *NameConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("want NameConflictError, got %v", err)
	}
	if conflict.Name != "email" {
		t.Fatalf("conflict name: %q", conflict.Name)
	}
	if len(b.Definition().Fields) != 1 {
		t.Fatalf("failed add must not mutate the definition")
	}
}

func TestAddField_InvalidName(t *testing.T) {
	b := New("Survey")
	_, err := b.AddField(model.Field{Name: "9lives", Type: model.FieldTypeText})
	var invalid *InvalidNameError
	if !errors.As(err, &invalid) {
		t.Fatalf("want InvalidNameError, got %v", err)
	}
}

func TestUpdateField_RenameChecksConflicts(t *testing.T) {
	b := New("Survey")
	first, _ := b.AddField(model.Field{Name: "a", Type: model.FieldTypeText})
	if _, err := b.AddField(model.Field{Name: "b", Type: model.FieldTypeText}); err != nil {
		t.Fatalf("add field: %v", err)
	}

	_, err := b.UpdateField(first.ID, func(f *model.Field) { f.Name = "b" })
	var conflict *NameConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("want NameConflictError, got %v", err)
	}

	// Keeping your own name is not a conflict.
	if _, err := b.UpdateField(first.ID, func(f *model.Field) { f.Label = "A" }); err != nil {
		t.Fatalf("update without rename: %v", err)
	}
}

func TestUpdateField_CannotChangeID(t *testing.T) {
	b := New("Survey")
	field, _ := b.AddField(model.Field{Name: "a", Type: model.FieldTypeText})

	updated, err := b.UpdateField(field.ID, func(f *model.Field) { f.ID = "hijacked" })
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID != field.ID {
		t.Fatalf("field id must be stable, got %q", updated.ID)
	}
}

func TestRemoveAndMoveField(t *testing.T) {
	b := New("Survey")
	a, _ := b.AddField(model.Field{Name: "a", Type: model.FieldTypeText})
	bb, _ := b.AddField(model.Field{Name: "b", Type: model.FieldTypeText})
	c, _ := b.AddField(model.Field{Name: "c", Type: model.FieldTypeText})

	if err := b.MoveField(c.ID, 0); err != nil {
		t.Fatalf("move: %v", err)
	}
	names := fieldNames(b.Definition())
	if names[0] != "c" || names[1] != "a" || names[2] != "b" {
		t.Fatalf("order after move: %v", names)
	}

	if err := b.RemoveField(a.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	names = fieldNames(b.Definition())
	if len(names) != 2 || names[0] != "c" || names[1] != "b" {
		t.Fatalf("order after remove: %v", names)
	}

	if err := b.RemoveField("ghost"); !errors.Is(err, ErrFieldNotFound) {
		t.Fatalf("want ErrFieldNotFound, got %v", err)
	}
	_ = bb
}

func TestDefinition_SnapshotsAreDetached(t *testing.T) {
	b := New("Survey")
	if _, err := b.AddField(model.Field{Name: "a", Type: model.FieldTypeText}); err != nil {
		t.Fatalf("add field: %v", err)
	}

	snapshot := b.Definition()
	snapshot.Fields[0].Name = "mutated"

	if got := fieldNames(b.Definition())[0]; got != "a" {
		t.Fatalf("builder state leaked through snapshot: %q", got)
	}
}

func TestStarter_IsWellFormed(t *testing.T) {
	def := Starter()
	if def.Title == "" || len(def.Fields) == 0 {
		t.Fatalf("starter must carry a title and fields: %+v", def)
	}
	seen := map[string]bool{}
	for _, field := range def.Fields {
		if !model.NamePattern.MatchString(field.Name) {
			t.Fatalf("starter field name %q breaks the grammar", field.Name)
		}
		if seen[field.Name] {
			t.Fatalf("starter has duplicate name %q", field.Name)
		}
		seen[field.Name] = true
	}
}

func fieldNames(def model.FormDefinition) []string {
	out := make([]string, 0, len(def.Fields))
	for _, field := range def.Fields {
		out = append(out, field.Name)
	}
	return out
}
