package core

// SessionState is what the UI observes about the current login.
//
// IsAuthenticated is true iff User is non-nil. IsLoading is true only while
// a restore, login or register is in flight.
type SessionState struct {
	User            *User `json:"user"`
	IsLoading       bool  `json:"isLoading"`
	IsAuthenticated bool  `json:"isAuthenticated"`
}

// Phase is the state machine position derived from a SessionState.
type Phase string

const (
	PhaseIdle          Phase = "idle"
	PhaseLoading       Phase = "loading"
	PhaseAuthenticated Phase = "authenticated"
)

func (s SessionState) Phase() Phase {
	switch {
	case s.IsLoading:
		return PhaseLoading
	case s.IsAuthenticated:
		return PhaseAuthenticated
	default:
		return PhaseIdle
	}
}

// Clone deep-copies the user so snapshots never alias store internals.
func (s SessionState) Clone() SessionState {
	s.User = s.User.Clone()
	return s
}

func Unauthenticated() SessionState {
	return SessionState{}
}

func Authenticated(u *User) SessionState {
	return SessionState{User: u, IsAuthenticated: true}
}
