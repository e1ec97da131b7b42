package logger

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/ZombieAlex/MFCLogger/internal/mfc"
)

// Per-dispatcher category sets. The generic categories (all, nochat)
// are expanded here, per event kind, never inside the membership store.
var (
	chatCategories     = []Category{CategoryChat, CategoryAll}
	tipCategories      = []Category{CategoryTips, CategoryAll, CategoryNoChat}
	stateCategories    = []Category{CategoryState, CategoryAll, CategoryNoChat}
	rankCategories     = []Category{CategoryRank, CategoryAll, CategoryNoChat}
	topicCategories    = []Category{CategoryTopic, CategoryAll, CategoryNoChat}
	camscoreCategories = []Category{CategoryCamscore, CategoryAll, CategoryNoChat}
	viewerCategories   = []Category{CategoryViewers}
)

func (l *Logger) handleChat(ev mfc.ChatEvent) {
	if ev.Text == "" {
		return
	}
	if !l.members.IsMemberOfAny(chatCategories, ev.UID) {
		return
	}
	l.emit(chatCategories, ev.UID, fmt.Sprintf("%s: %s", ev.From, ev.Text), styleChat)
}

func (l *Logger) handleTip(ev mfc.TipEvent) {
	if !l.members.IsMemberOfAny(tipCategories, ev.UID) {
		return
	}
	msg := fmt.Sprintf("%s has tipped %s %d tokens", ev.From, l.feed.Model(ev.UID).Name, ev.Tokens)
	l.emit(tipCategories, ev.UID, msg, tipStyle(ev.Tokens))
}

// handleState logs video state transitions and, independently of any
// membership, re-evaluates the room lifecycle: an offline transition
// means the upstream connection already dropped the room, so the model
// is marked not-joined without a LeaveRoom call; any other transition
// re-joins if a requiring membership exists.
func (l *Logger) handleState(ch mfc.StateChange) {
	now := l.now()
	m := ch.Model

	if ch.New == mfc.StateOffline {
		l.markNotJoined(m.UID)
	} else if l.shouldJoinRoom(m.UID) {
		l.joinRoom(m)
	}

	if !l.members.IsMemberOfAny(stateCategories, m.UID) {
		return
	}

	label := stateLabel(m)
	prev, hasPrev := l.previousStates[m.UID]
	// A synthetic re-log (true-private flip routed back through here)
	// with an unchanged display status has nothing new to say.
	if hasPrev && ch.Old == ch.New && label == prev.label {
		return
	}
	if hasPrev {
		msg := fmt.Sprintf("%s is now in state %s after %s in %s",
			m.Name, label, formatDuration(now.Sub(prev.since)), prev.label)
		// Going offline ends the session: annotate how long the model
		// was online in total, which differs from the time in the
		// immediately previous state once any mid-session transition
		// happened. The online edge carries no such extra span (the
		// previous state was Offline, so the suffix above already says
		// how long).
		if ch.New == mfc.StateOffline {
			msg += fmt.Sprintf(", online for %s", formatDuration(now.Sub(prev.lastOnOff)))
		}
		l.emit(stateCategories, m.UID, msg, styleBasic)
	} else {
		l.emit(stateCategories, m.UID, fmt.Sprintf("%s is now in state %s", m.Name, label), styleBasic)
	}

	lastOnOff := now
	if hasPrev && ch.Old != mfc.StateOffline && ch.New != mfc.StateOffline {
		lastOnOff = prev.lastOnOff
	}
	l.previousStates[m.UID] = prevState{label: label, since: now, lastOnOff: lastOnOff}
}

// handleTruePrivate routes true-private flag flips through the state
// dispatcher so "Private" resolves to the right display label. The
// upstream never reported these as state events.
func (l *Logger) handleTruePrivate(ch mfc.TruePrivateChange) {
	l.handleState(mfc.StateChange{Model: ch.Model, Old: ch.Model.Session.State, New: ch.Model.Session.State})
}

// stateLabel resolves the display status string, splitting the generic
// "Private" state into True Private vs Regular Private using the
// session's true-private flag.
func stateLabel(m *mfc.Model) string {
	if m.Session.State == mfc.StatePrivate {
		if m.Session.TruePrivate {
			return "True Private"
		}
		return "Regular Private"
	}
	return m.Session.State.String()
}

// handleRank logs leaderboard movement. The very first rank observation
// for a model is suppressed entirely: at connect time thousands of
// models report an initial rank and the burst is pure noise.
func (l *Logger) handleRank(ch mfc.RankChange) {
	if !ch.OldKnown {
		return
	}
	if !l.members.IsMemberOfAny(rankCategories, ch.Model.UID) {
		return
	}

	style := styleRankDown
	if l.rankImproved(ch.Old, ch.New) {
		style = styleRankUp
	}

	oldStr := strconv.Itoa(ch.Old)
	newStr := strconv.Itoa(ch.New)
	// Rank 0 means "outside the tracked leaderboard" and is never
	// rendered as a digit. Boundary crossings keep a fixed style
	// regardless of what the numeric comparison would say.
	if ch.Old == 0 {
		oldStr = fmt.Sprintf("over %d", leaderboardSize)
		style = styleRankUp
	}
	if ch.New == 0 {
		newStr = fmt.Sprintf("over %d", leaderboardSize)
		style = styleRankUp
	}

	msg := fmt.Sprintf("%s has moved from rank %s to rank %s", ch.Model.Name, oldStr, newStr)
	l.emit(rankCategories, ch.Model.UID, msg, style)
}

func (l *Logger) rankImproved(from, to int) bool {
	if l.rankDir == HigherIsBetter {
		return to > from
	}
	return to < from
}

func (l *Logger) handleTopic(ch mfc.TopicChange) {
	if !l.members.IsMemberOfAny(topicCategories, ch.Model.UID) {
		return
	}
	l.emit(topicCategories, ch.Model.UID, fmt.Sprintf("TOPIC: %s", ch.New), styleTopic)
}

func (l *Logger) handleCamscore(ch mfc.CamscoreChange) {
	if !l.members.IsMemberOfAny(camscoreCategories, ch.Model.UID) {
		return
	}
	// A first-ever score counts as an improvement.
	style := styleRankUp
	if ch.OldKnown && ch.New <= ch.Old {
		style = styleRankDown
	}
	msg := fmt.Sprintf("%s's camscore is now %s", ch.Model.Name, formatScore(ch.New))
	l.emit(camscoreCategories, ch.Model.UID, msg, style)
}

// handleRoomMember logs named members entering and leaving a room.
//
// Joins also record the session→id and id→name mappings; parts carry
// only a session id on the wire and are resolved through them. A part
// for an unknown session is suppressed - a departure without a name is
// not useful. Any sub-kind outside {join, part} violates the closed
// protocol taxonomy and is treated as unrecoverable.
func (l *Logger) handleRoomMember(ev mfc.RoomMemberEvent) {
	if !l.members.IsMemberOfAny(viewerCategories, ev.UID) {
		return
	}

	switch ev.Action {
	case mfc.MemberJoin:
		if l.sessionsToIDs[ev.SessionID] != ev.UserID {
			l.sessionsToIDs[ev.SessionID] = ev.UserID
		}
		if l.idsToNames[ev.UserID] != ev.Name {
			l.idsToNames[ev.UserID] = ev.Name
		}
		msg := fmt.Sprintf("%s (id: %d, level: %s) joined the room.", ev.Name, ev.SessionID, ev.Level)
		l.emit(viewerCategories, ev.UID, msg, nil)

	case mfc.MemberPart:
		uid, ok := l.sessionsToIDs[ev.SessionID]
		if !ok {
			slog.Debug("part for unknown session suppressed", "session", ev.SessionID, "room", ev.UID)
			return
		}
		msg := fmt.Sprintf("%s (id: %d) left the room.", l.idsToNames[uid], uid)
		l.emit(viewerCategories, ev.UID, msg, nil)

	default:
		panic(fmt.Sprintf("don't know how to log room member action %v for room %d", ev.Action, ev.UID))
	}
}

func (l *Logger) handleGuestCount(ev mfc.GuestCountEvent) {
	if !l.members.IsMemberOfAny(viewerCategories, ev.UID) {
		return
	}
	l.emit(viewerCategories, ev.UID, fmt.Sprintf("Guest viewer count is now %d", ev.Count), nil)
}

func (l *Logger) handleViewerCount(ch mfc.ViewerCountChange) {
	if !l.members.IsMemberOfAny(viewerCategories, ch.Model.UID) {
		return
	}
	l.emit(viewerCategories, ch.Model.UID, fmt.Sprintf("Total viewer count is now %d", ch.New), nil)
}

// formatDuration renders an elapsed duration as zero-padded HH:MM:SS
// with unbounded hours (a 30-hour show reads 30:00:00, not 06:00:00).
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total/60)%60, total%60)
}

// formatScore renders a camscore without trailing float noise.
func formatScore(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
