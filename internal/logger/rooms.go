package logger

import (
	"fmt"
	"log/slog"

	"github.com/ZombieAlex/MFCLogger/internal/mfc"
)

// RoomClient is the upstream room-membership surface. Calls are
// fire-and-forget; no acknowledgement is awaited.
type RoomClient interface {
	JoinRoom(uid int)
	LeaveRoom(uid int)
}

// shouldJoinRoom reports whether any room-requiring category has a
// live membership for the model. The joined-room invariant is
// re-checked lazily from this, on every membership change and on every
// relevant state transition, never continuously maintained.
func (l *Logger) shouldJoinRoom(uid int) bool {
	return l.members.IsMemberOfAny(RoomCategories, uid)
}

// joinRoom opens the live subscription for a model's room if it is not
// already open. Idempotent: a no-op with no external call when joined.
// Offline rooms are not joinable; the next online transition re-checks
// membership and joins then.
func (l *Logger) joinRoom(m *mfc.Model) {
	if m.Session.State == mfc.StateOffline {
		return
	}
	if _, joined := l.joinedRooms[m.UID]; joined {
		return
	}
	l.emit(RoomCategories, m.UID, fmt.Sprintf("Joining room for %s", m.Name), nil)
	l.rooms.JoinRoom(m.UID)
	l.joinedRooms[m.UID] = struct{}{}
}

// leaveRoom closes the live subscription if it is open.
// Idempotent: a no-op with no external call when not joined.
func (l *Logger) leaveRoom(m *mfc.Model) {
	if _, joined := l.joinedRooms[m.UID]; !joined {
		return
	}
	l.emit(RoomCategories, m.UID, fmt.Sprintf("Leaving room for %s", m.Name), nil)
	l.rooms.LeaveRoom(m.UID)
	delete(l.joinedRooms, m.UID)
}

// markNotJoined records that the upstream connection already dropped
// the room (the model went offline) without issuing a LeaveRoom call.
// The next online transition with a requiring membership issues a fresh
// JoinRoom.
func (l *Logger) markNotJoined(uid int) {
	if _, joined := l.joinedRooms[uid]; joined {
		slog.Debug("room torn down by offline transition", "uid", uid)
	}
	delete(l.joinedRooms, uid)
}

// syncRoom reconciles the joined-room state with the membership store
// after a membership change.
func (l *Logger) syncRoom(m *mfc.Model) {
	if l.shouldJoinRoom(m.UID) {
		l.joinRoom(m)
	} else {
		l.leaveRoom(m)
	}
}
