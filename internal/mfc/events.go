package mfc

// ChatEvent is a chat message in a model's room.
type ChatEvent struct {
	UID  int    // model the room belongs to
	From string // sender display name
	Text string // rendered message text; empty means nothing to log
}

// TipEvent is a token tip in a model's room.
type TipEvent struct {
	UID    int
	From   string
	Tokens int
}

// RoomMemberEvent is a named member entering or leaving a model's room.
//
// On part events the wire carries only the member's session id; name
// and user id must be resolved from earlier join events.
type RoomMemberEvent struct {
	UID       int // model the room belongs to
	Action    MemberAction
	SessionID int
	UserID    int
	Name      string
	Level     Level
}

// GuestCountEvent is an aggregate guest-viewer count update for a room.
type GuestCountEvent struct {
	UID   int
	Count int
}

// SessionStateEvent is a session-metadata observation carrying a model's
// id and display name. Consumed by identity reconciliation.
type SessionStateEvent struct {
	UID  int
	Name string
}

// StateChange reports a video state transition.
type StateChange struct {
	Model *Model
	Old   State
	New   State
}

// TruePrivateChange reports a flip of the true-private session flag.
type TruePrivateChange struct {
	Model *Model
	Old   bool
	New   bool
}

// RankChange reports a leaderboard rank change. OldKnown is false for
// the first rank ever observed for the model.
type RankChange struct {
	Model    *Model
	Old      int
	New      int
	OldKnown bool
}

// CamscoreChange reports a camscore change. OldKnown is false for the
// first score ever observed for the model.
type CamscoreChange struct {
	Model    *Model
	Old      float64
	New      float64
	OldKnown bool
}

// TopicChange reports a room topic change.
type TopicChange struct {
	Model *Model
	Old   string
	New   string
}

// ViewerCountChange reports the aggregate room viewer count changing.
type ViewerCountChange struct {
	Model *Model
	Old   int
	New   int
}
