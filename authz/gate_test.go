package authz

import (
	"encoding/json"
	"testing"

	"github.com/profblog/eduauth/identity"
)

func professor(id int64) identity.Identity {
	return identity.Identity{ID: "7", IsProfessor: true, ProfessorID: &id}
}

func TestCanManageContent(t *testing.T) {
	if !CanManageContent(professor(12)) {
		t.Fatal("expected professor to manage content")
	}
	if CanManageContent(identity.Identity{ID: "7"}) {
		t.Fatal("expected student to be denied")
	}
}

func TestCanViewAdminAreaMirrorsManageContent(t *testing.T) {
	if !CanViewAdminArea(professor(12)) {
		t.Fatal("expected professor to see admin area")
	}
	if CanViewAdminArea(identity.Identity{ID: "7", IsProfessor: false}) {
		t.Fatal("expected student to be denied admin area")
	}
}

func TestIsOwnerRepresentationInsensitive(t *testing.T) {
	ident := professor(12)

	matches := []any{12, int64(12), "12", float64(12), json.Number("12"), uint(12)}
	for _, id := range matches {
		if !IsOwner(ident, id) {
			t.Fatalf("expected ownership for %v (%T)", id, id)
		}
	}

	misses := []any{13, "13", "012", "", nil, float64(12.5)}
	for _, id := range misses {
		if IsOwner(ident, id) {
			t.Fatalf("expected no ownership for %v (%T)", id, id)
		}
	}
}

func TestIsOwnerNoValueCoercion(t *testing.T) {
	// "05" and 5 share a value but not a canonical string form.
	if IsOwner(professor(5), "05") {
		t.Fatal(`expected "05" not to match professorId 5`)
	}
	if !IsOwner(professor(5), "5") {
		t.Fatal(`expected "5" to match professorId 5`)
	}
}

func TestIsOwnerStudentNeverOwns(t *testing.T) {
	id := int64(12)
	student := identity.Identity{ID: "7", IsProfessor: false, ProfessorID: &id}
	if IsOwner(student, 12) {
		t.Fatal("expected student to be denied regardless of id match")
	}
}

func TestIsOwnerRequiresProfessorID(t *testing.T) {
	if IsOwner(identity.Identity{ID: "7", IsProfessor: true}, 12) {
		t.Fatal("expected professor without professorId to be denied")
	}
}
