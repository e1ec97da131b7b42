package testutil

import "fmt"

// RoomRecorder implements the logger's RoomClient by recording every
// join/leave call in order, so tests can assert on exactly which
// external calls the room lifecycle issued.
type RoomRecorder struct {
	Calls []string
}

// JoinRoom records a join call.
func (r *RoomRecorder) JoinRoom(uid int) {
	r.Calls = append(r.Calls, fmt.Sprintf("join:%d", uid))
}

// LeaveRoom records a leave call.
func (r *RoomRecorder) LeaveRoom(uid int) {
	r.Calls = append(r.Calls, fmt.Sprintf("leave:%d", uid))
}

// Joins counts recorded joins for one uid.
func (r *RoomRecorder) Joins(uid int) int {
	return r.count(fmt.Sprintf("join:%d", uid))
}

// Leaves counts recorded leaves for one uid.
func (r *RoomRecorder) Leaves(uid int) int {
	return r.count(fmt.Sprintf("leave:%d", uid))
}

func (r *RoomRecorder) count(call string) int {
	n := 0
	for _, c := range r.Calls {
		if c == call {
			n++
		}
	}
	return n
}
