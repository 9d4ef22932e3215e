package session

// Status is the authentication state of the client.
type Status int

const (
	// StatusBootstrapping is the initial state, before the one-time restore
	// from persisted storage has resolved. Consumers must render it as a
	// third, distinct state, not as "logged out".
	StatusBootstrapping Status = iota

	// StatusUnauthenticated means there is definitely no active session.
	StatusUnauthenticated

	// StatusAuthenticating means a login or register call is in flight.
	StatusAuthenticating

	// StatusAuthenticated means a profile fetch succeeded and User is set.
	StatusAuthenticated

	// StatusError means the last login/register attempt failed; see LastError.
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusBootstrapping:
		return "bootstrapping"
	case StatusUnauthenticated:
		return "unauthenticated"
	case StatusAuthenticating:
		return "authenticating"
	case StatusAuthenticated:
		return "authenticated"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}
