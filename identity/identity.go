package identity

// UnknownID is the sentinel subject used when no alias of the user id is
// present in the source data. It keeps the invariant that an Identity always
// carries a non-empty ID.
const UnknownID = "unknown"

// Identity defines a public type used by eduauth APIs.
//
// Identity is the canonical, app-wide user record. It is constructed and
// replaced exclusively by the session manager; every other component
// receives it read-only.
type Identity struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	ProfessorName string `json:"professorName,omitempty"`
	IsProfessor   bool   `json:"isProfessor"`
	ProfessorID   *int64 `json:"professorId,omitempty"`
}

// UserPayload defines a public type used by eduauth APIs.
//
// UserPayload models the server's loosely typed user object: ids arrive as
// numbers or strings, isProfessor as a boolean or a boolean-ish scalar, and
// professorId as a number or numeric string. Fields are typed `any` so the
// coercion rules live in one place ([FromServerPayload]) rather than in the
// JSON layer.
type UserPayload struct {
	ID            any    `json:"id"`
	Sub           any    `json:"sub"`
	Email         string `json:"email"`
	ProfessorName string `json:"professorName"`
	IsProfessor   any    `json:"isProfessor"`
	ProfessorID   any    `json:"professorId"`
}
