package schema

import (
	"reflect"
	"testing"
)

func TestKeyFromConstraintType(t *testing.T) {
	tests := []struct {
		constraintType string
		expected       Key
	}{
		{"PRIMARY KEY", KeyPrimary},
		{"FOREIGN KEY", KeyForeign},
		{"UNIQUE", KeyNone},
		{"CHECK", KeyNone},
		{"", KeyNone},
	}

	for _, tt := range tests {
		result := KeyFromConstraintType(tt.constraintType)
		if result != tt.expected {
			t.Errorf("KeyFromConstraintType(%q) = %q, want %q", tt.constraintType, result, tt.expected)
		}
	}
}

func TestCommentFromNullable(t *testing.T) {
	if got := CommentFromNullable("YES"); got != CommentNull {
		t.Errorf("Expected %q for YES, got %q", CommentNull, got)
	}
	if got := CommentFromNullable("NO"); got != CommentNotNull {
		t.Errorf("Expected %q for NO, got %q", CommentNotNull, got)
	}
}

func TestTableNames(t *testing.T) {
	d := &Document{
		Entities: []Entity{
			{Name: "user"},
			{Name: "post"},
		},
		Indexes: []TableIndexes{
			{Name: "post", Indexes: []string{"post_pkey"}},
			{Name: "category", Indexes: []string{"category_pkey"}},
		},
	}

	expected := []string{"category", "post", "user"}
	if got := d.TableNames(); !reflect.DeepEqual(got, expected) {
		t.Errorf("TableNames() = %v, want %v", got, expected)
	}
}

func TestTableNamesEmpty(t *testing.T) {
	d := &Document{}

	if got := d.TableNames(); len(got) != 0 {
		t.Errorf("Expected no table names for empty document, got %v", got)
	}
}
