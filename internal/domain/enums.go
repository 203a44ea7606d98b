package domain

// State is the session lifecycle state.
type State int

const (
	InProgress State = iota
	Success
	GameOver
)

// Terminal reports whether the state ends the round.
func (s State) Terminal() bool { return s != InProgress }

func (s State) String() string {
	switch s {
	case Success:
		return "success"
	case GameOver:
		return "gameOver"
	default:
		return "inProgress"
	}
}

// MarshalText renders the state as its string form in JSON snapshots.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses the string form back; unknown input maps to
// InProgress.
func (s *State) UnmarshalText(text []byte) error {
	switch string(text) {
	case "success":
		*s = Success
	case "gameOver":
		*s = GameOver
	default:
		*s = InProgress
	}
	return nil
}
