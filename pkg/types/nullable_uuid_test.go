package types

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
)

func TestNullableUUIDUnmarshalStates(t *testing.T) {
	type patch struct {
		CategoryID NullableUUID `json:"category_id"`
	}

	var got patch
	if err := json.Unmarshal([]byte(`{"category_id": "7b2e9d54-1f7c-4a8e-9c3b-2d6f8e1a0b4c"}`), &got); err != nil {
		t.Fatalf("unmarshal value: %v", err)
	}
	if !got.CategoryID.Valid || got.CategoryID.Value == nil {
		t.Fatalf("expected a present uuid, got %+v", got.CategoryID)
	}
	if got.CategoryID.Value.String() != "7b2e9d54-1f7c-4a8e-9c3b-2d6f8e1a0b4c" {
		t.Fatalf("unexpected uuid %s", got.CategoryID.Value)
	}

	got = patch{}
	if err := json.Unmarshal([]byte(`{"category_id": null}`), &got); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if !got.CategoryID.Valid || got.CategoryID.Value != nil {
		t.Fatalf("explicit null should be valid but empty, got %+v", got.CategoryID)
	}

	got = patch{}
	if err := json.Unmarshal([]byte(`{}`), &got); err != nil {
		t.Fatalf("unmarshal missing: %v", err)
	}
	if got.CategoryID.Valid {
		t.Fatalf("absent field should stay invalid, got %+v", got.CategoryID)
	}
}

func TestNullableUUIDUnmarshalRejectsGarbage(t *testing.T) {
	type patch struct {
		CategoryID NullableUUID `json:"category_id"`
	}

	var got patch
	if err := json.Unmarshal([]byte(`{"category_id": "not-a-uuid"}`), &got); err == nil {
		t.Fatal("expected an error for a malformed uuid")
	}
}

func TestNullableUUIDClone(t *testing.T) {
	id := uuid.New()
	original := NullableUUID{Valid: true, Value: &id}

	clone := original.Clone()
	if clone.Value == original.Value {
		t.Fatal("clone must not share the underlying pointer")
	}
	if *clone.Value != id {
		t.Fatalf("clone changed the value: %s", clone.Value)
	}

	empty := NullableUUID{Valid: true}.Clone()
	if !empty.Valid || empty.Value != nil {
		t.Fatalf("unexpected clone of a null value: %+v", empty)
	}
}
