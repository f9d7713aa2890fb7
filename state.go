package authpages

// Principal is the authenticated identity reported by the provider. Email and
// DisplayName are empty when the provider has none.
type Principal struct {
	UID         string `json:"uid"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
}

// StateKind tags an AuthState.
type StateKind int

const (
	// StateUnknown means no notification has been observed yet.
	StateUnknown StateKind = iota
	// StatePresent means a principal is signed in.
	StatePresent
	// StateAbsent means the provider reported no principal.
	StateAbsent
)

func (k StateKind) String() string {
	switch k {
	case StatePresent:
		return "present"
	case StateAbsent:
		return "absent"
	default:
		return "unknown"
	}
}

// AuthState is Unknown, Present(Principal) or Absent. The zero value is
// Unknown.
type AuthState struct {
	Kind      StateKind
	Principal *Principal
}

// Present builds a state carrying p.
func Present(p Principal) AuthState {
	return AuthState{Kind: StatePresent, Principal: &p}
}

// Absent builds the signed-out state.
func Absent() AuthState {
	return AuthState{Kind: StateAbsent}
}

// IsPresent reports whether a principal is signed in.
func (s AuthState) IsPresent() bool {
	return s.Kind == StatePresent && s.Principal != nil
}

// IsKnown reports whether the state has left Unknown.
func (s AuthState) IsKnown() bool {
	return s.Kind != StateUnknown
}

func (s AuthState) String() string {
	if s.IsPresent() {
		return "present(" + s.Principal.UID + ")"
	}
	return s.Kind.String()
}
