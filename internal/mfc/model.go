package mfc

// Session is the latest observed session snapshot for a model.
//
// RankKnown and CamscoreKnown distinguish "never reported" from a zero
// value: rank 0 is a meaningful sentinel (off the tracked leaderboard)
// and must not be conflated with "no rank seen yet".
type Session struct {
	State         State
	TruePrivate   bool
	Rank          int
	RankKnown     bool
	Camscore      float64
	CamscoreKnown bool
	Topic         string
	Viewers       int
}

// Model is a tracked entity: numeric uid, display name, and the latest
// session snapshot. Models are owned by the Feed; handlers and
// predicates receive them read-only.
type Model struct {
	UID     int
	Name    string
	Session Session
}

// SessionUpdate is a partial session update. Nil fields are unchanged.
type SessionUpdate struct {
	Name        *string
	State       *State
	TruePrivate *bool
	Rank        *int
	Camscore    *float64
	Topic       *string
	Viewers     *int
}
