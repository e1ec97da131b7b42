package mfc

import "fmt"

// State is a model's video state. The numeric values are the wire
// protocol's FCVIDEO codes and must not be renumbered.
type State int

const (
	StateFreeChat  State = 0
	StateAway      State = 2
	StatePrivate   State = 12
	StateGroupShow State = 13
	StateOnline    State = 90
	StateOffline   State = 127
)

// String returns the display label used in logged state messages.
func (s State) String() string {
	switch s {
	case StateFreeChat:
		return "Free Chat"
	case StateAway:
		return "Away"
	case StatePrivate:
		return "Private"
	case StateGroupShow:
		return "Group Show"
	case StateOnline:
		return "Online"
	case StateOffline:
		return "Offline"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ParseState maps a config/replay label to a State.
func ParseState(s string) (State, error) {
	switch s {
	case "freechat", "free_chat":
		return StateFreeChat, nil
	case "away":
		return StateAway, nil
	case "private":
		return StatePrivate, nil
	case "groupshow", "group_show":
		return StateGroupShow, nil
	case "online":
		return StateOnline, nil
	case "offline":
		return StateOffline, nil
	default:
		return 0, fmt.Errorf("unknown state %q", s)
	}
}

// Level is a room member's access level (wire protocol FCLEVEL codes).
type Level int

const (
	LevelGuest   Level = 0
	LevelBasic   Level = 1
	LevelPremium Level = 2
	LevelModel   Level = 4
	LevelAdmin   Level = 5
)

func (l Level) String() string {
	switch l {
	case LevelGuest:
		return "Guest"
	case LevelBasic:
		return "Basic"
	case LevelPremium:
		return "Premium"
	case LevelModel:
		return "Model"
	case LevelAdmin:
		return "Admin"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}

// ParseLevel maps a replay label to a Level.
func ParseLevel(s string) (Level, error) {
	switch s {
	case "guest":
		return LevelGuest, nil
	case "basic":
		return LevelBasic, nil
	case "premium":
		return LevelPremium, nil
	case "model":
		return LevelModel, nil
	case "admin":
		return LevelAdmin, nil
	default:
		return 0, fmt.Errorf("unknown level %q", s)
	}
}

// MemberAction distinguishes the two room-member event sub-kinds.
// The taxonomy is closed: anything else is a protocol violation.
type MemberAction int

const (
	MemberJoin MemberAction = iota + 1
	MemberPart
)

func (a MemberAction) String() string {
	switch a {
	case MemberJoin:
		return "join"
	case MemberPart:
		return "part"
	default:
		return fmt.Sprintf("MemberAction(%d)", int(a))
	}
}
