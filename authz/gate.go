package authz

import (
	"encoding/json"
	"strconv"

	"github.com/profblog/eduauth/identity"
)

// CanManageContent reports whether ident may author and manage posts.
func CanManageContent(ident identity.Identity) bool {
	return ident.IsProfessor
}

// CanViewAdminArea reports whether the admin tab is visible for ident.
func CanViewAdminArea(ident identity.Identity) bool {
	return CanManageContent(ident)
}

// IsOwner reports whether ident owns the resource whose owning-professor id
// is resourceProfessorID.
//
// The owning id arrives as a number from one endpoint and a numeric string
// from another, so equality is decided on canonical string forms. The
// comparison is insensitive to representation, not to value: 12 matches
// "12", but "05" does not match 5.
func IsOwner(ident identity.Identity, resourceProfessorID any) bool {
	if !ident.IsProfessor || ident.ProfessorID == nil {
		return false
	}
	key, ok := ownerKey(resourceProfessorID)
	if !ok {
		return false
	}
	return strconv.FormatInt(*ident.ProfessorID, 10) == key
}

func ownerKey(v any) (string, bool) {
	switch id := v.(type) {
	case string:
		return id, id != ""
	case int:
		return strconv.Itoa(id), true
	case int32:
		return strconv.FormatInt(int64(id), 10), true
	case int64:
		return strconv.FormatInt(id, 10), true
	case uint:
		return strconv.FormatUint(uint64(id), 10), true
	case uint64:
		return strconv.FormatUint(id, 10), true
	case float64:
		if id != float64(int64(id)) {
			return "", false
		}
		return strconv.FormatInt(int64(id), 10), true
	case json.Number:
		return id.String(), id.String() != ""
	case *int64:
		if id == nil {
			return "", false
		}
		return strconv.FormatInt(*id, 10), true
	default:
		return "", false
	}
}
