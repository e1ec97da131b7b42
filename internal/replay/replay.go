// Package replay drives a feed from a recorded event log: one JSON
// object per line, in upstream delivery order. Replaying a recorded
// session through the engine produces the same routing decisions the
// live session did.
package replay

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/ZombieAlex/MFCLogger/internal/mfc"
)

// Record is one line of the event log. Type selects the kind; the
// remaining fields are kind-specific. Pointer fields distinguish
// "absent" from zero values for partial session updates.
type Record struct {
	Type string `json:"type"`
	UID  int    `json:"uid"`

	// update
	Name     *string  `json:"name,omitempty"`
	VS       *int     `json:"vs,omitempty"`
	TruePvt  *bool    `json:"truepvt,omitempty"`
	Rank     *int     `json:"rank,omitempty"`
	Camscore *float64 `json:"camscore,omitempty"`
	Topic    *string  `json:"topic,omitempty"`
	Viewers  *int     `json:"viewers,omitempty"`

	// chat / tip
	From   string `json:"from,omitempty"`
	Text   string `json:"text,omitempty"`
	Tokens int    `json:"tokens,omitempty"`

	// member
	Action    string `json:"action,omitempty"`
	SessionID int    `json:"sid,omitempty"`
	UserID    int    `json:"user,omitempty"`
	Member    string `json:"member,omitempty"`
	Level     string `json:"level,omitempty"`

	// guests
	Count int `json:"count,omitempty"`
}

// Event converts a record to a feed event.
func (r Record) Event() (mfc.Event, error) {
	switch r.Type {
	case "update":
		upd := mfc.SessionUpdate{
			Name:        r.Name,
			TruePrivate: r.TruePvt,
			Rank:        r.Rank,
			Camscore:    r.Camscore,
			Topic:       r.Topic,
			Viewers:     r.Viewers,
		}
		if r.VS != nil {
			st := mfc.State(*r.VS)
			upd.State = &st
		}
		return mfc.Event{Kind: mfc.EventUpdate, UID: r.UID, Update: &upd}, nil

	case "chat":
		return mfc.Event{Kind: mfc.EventChat, Chat: &mfc.ChatEvent{
			UID: r.UID, From: r.From, Text: r.Text,
		}}, nil

	case "tip":
		return mfc.Event{Kind: mfc.EventTip, Tip: &mfc.TipEvent{
			UID: r.UID, From: r.From, Tokens: r.Tokens,
		}}, nil

	case "member":
		var action mfc.MemberAction
		switch r.Action {
		case "join":
			action = mfc.MemberJoin
		case "part":
			action = mfc.MemberPart
		default:
			return mfc.Event{}, fmt.Errorf("unknown member action %q", r.Action)
		}
		level := mfc.LevelGuest
		if r.Level != "" {
			var err error
			level, err = mfc.ParseLevel(r.Level)
			if err != nil {
				return mfc.Event{}, err
			}
		}
		return mfc.Event{Kind: mfc.EventRoomMember, Member: &mfc.RoomMemberEvent{
			UID: r.UID, Action: action, SessionID: r.SessionID,
			UserID: r.UserID, Name: r.Member, Level: level,
		}}, nil

	case "guests":
		return mfc.Event{Kind: mfc.EventGuestCount, Guests: &mfc.GuestCountEvent{
			UID: r.UID, Count: r.Count,
		}}, nil

	default:
		return mfc.Event{}, fmt.Errorf("unknown record type %q", r.Type)
	}
}

// Stream parses the event log and dispatches every record into the feed
// synchronously, preserving delivery order. Parse failures abort with
// the offending line number; a log that cannot be trusted should not be
// half-replayed.
func Stream(r io.Reader, feed *mfc.Feed) (int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	count := 0
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}

		var rec Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return count, fmt.Errorf("line %d: failed to parse record: %w", line, err)
		}

		ev, err := rec.Event()
		if err != nil {
			return count, fmt.Errorf("line %d: %w", line, err)
		}

		if err := feed.Dispatch(ev); err != nil {
			return count, fmt.Errorf("line %d: %w", line, err)
		}
		count++
	}
	if err := scanner.Err(); err != nil {
		return count, fmt.Errorf("failed to read event log: %w", err)
	}
	return count, nil
}
