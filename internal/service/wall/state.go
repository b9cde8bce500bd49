package wall

// State of wall session. Loading is left exactly once
type State int

const (
	Loading State = iota
	RemoteActive
	LocalActive
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case RemoteActive:
		return "remote"
	case LocalActive:
		return "local"
	}

	return "unknown"
}
