package identity

import (
	"encoding/json"
	"strconv"

	"github.com/profblog/eduauth/token"
)

// FromClaims describes the fromclaims operation and its observable behavior.
//
// Alias order, applied first-present-wins:
//
//	id            — sub, id, userId (coerced to string; sentinel "unknown")
//	email         — email, else fallbackEmail
//	professorName — professorName, professor_name
//	isProfessor   — isProfessor, is_professor (boolean coercion, default false)
//	professorId   — professorId, professor_id (numeric coercion, else absent)
//
// FromClaims is total: it never fails, absent data degrades to defaults.
func FromClaims(claims token.Claims, fallbackEmail string) Identity {
	ident := Identity{
		ID:    UnknownID,
		Email: fallbackEmail,
	}

	if id, ok := pickString(claims["sub"], claims["id"], claims["userId"]); ok {
		ident.ID = id
	}
	if email, ok := pickString(claims["email"]); ok {
		ident.Email = email
	}
	if name, ok := pickString(claims["professorName"], claims["professor_name"]); ok {
		ident.ProfessorName = name
	}
	ident.IsProfessor = truthy(claims["isProfessor"]) || truthy(claims["is_professor"])
	if id, ok := pickInt64(claims["professorId"], claims["professor_id"]); ok {
		ident.ProfessorID = &id
	}

	return ident
}

// FromServerPayload describes the fromserverpayload operation and its observable behavior.
//
// The server's explicit user object wins over token claims. Claims are
// consulted only as a secondary source for professorId when the server
// omitted it; they never override an explicit server value. FromServerPayload
// is total: it never fails.
func FromServerPayload(user UserPayload, claims token.Claims, fallbackEmail string) Identity {
	ident := Identity{
		ID:    UnknownID,
		Email: fallbackEmail,
	}

	if id, ok := pickString(user.ID, user.Sub); ok {
		ident.ID = id
	}
	if user.Email != "" {
		ident.Email = user.Email
	}
	ident.ProfessorName = user.ProfessorName
	ident.IsProfessor = truthy(user.IsProfessor)
	if id, ok := pickInt64(user.ProfessorID); ok {
		ident.ProfessorID = &id
	} else if claims != nil {
		if id, ok := pickInt64(claims["professorId"], claims["professor_id"]); ok {
			ident.ProfessorID = &id
		}
	}

	return ident
}

// pickString returns the first candidate with a truthy string form.
func pickString(candidates ...any) (string, bool) {
	for _, c := range candidates {
		if s, ok := asString(c); ok {
			return s, true
		}
	}
	return "", false
}

// pickInt64 returns the first candidate with a truthy numeric form.
func pickInt64(candidates ...any) (int64, bool) {
	for _, c := range candidates {
		if n, ok := asInt64(c); ok {
			return n, true
		}
	}
	return 0, false
}

func asString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, s != ""
	case float64:
		if s == 0 {
			return "", false
		}
		return strconv.FormatFloat(s, 'f', -1, 64), true
	case int:
		return strconv.Itoa(s), s != 0
	case int64:
		return strconv.FormatInt(s, 10), s != 0
	case json.Number:
		return s.String(), s.String() != "" && s.String() != "0"
	default:
		return "", false
	}
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		if n == 0 || n != float64(int64(n)) {
			return 0, false
		}
		return int64(n), true
	case int:
		return int64(n), n != 0
	case int64:
		return n, n != 0
	case json.Number:
		parsed, err := n.Int64()
		return parsed, err == nil && parsed != 0
	case string:
		parsed, err := strconv.ParseInt(n, 10, 64)
		return parsed, err == nil && parsed != 0
	default:
		return 0, false
	}
}

// truthy mirrors the loose boolean coercion the server's payloads assume:
// false, zero, empty string, and nil are false; everything else is true.
func truthy(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return b != ""
	case float64:
		return b != 0
	case int:
		return b != 0
	case int64:
		return b != 0
	case json.Number:
		return b.String() != "" && b.String() != "0"
	default:
		return v != nil
	}
}
