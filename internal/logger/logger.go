// Package logger is the selector-driven event routing and fan-out
// logging engine. It decides, for every incoming feed event, whether it
// should be recorded, to which sinks, and with what styling, and keeps
// a live room subscription open only while at least one active selector
// requires it.
package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ZombieAlex/MFCLogger/internal/mfc"
	"github.com/ZombieAlex/MFCLogger/internal/namedb"
)

// RankDirection controls which numeric rank movement counts as an
// improvement. The source history disagrees with itself here, so the
// mapping is explicit rather than inferred.
type RankDirection int

const (
	// LowerIsBetter treats a numerically smaller rank as a better
	// placement (rank 1 is the top of the leaderboard).
	LowerIsBetter RankDirection = iota
	// HigherIsBetter inverts the mapping.
	HigherIsBetter
)

// leaderboardSize is the tracked leaderboard depth. Rank 0 is the wire
// sentinel for "outside the tracked range" and renders as "over 1000",
// never as the literal digit.
const leaderboardSize = 1000

// Options configures a Logger. The zero value is usable: console on
// stdout, log files in the working directory, no identity
// reconciliation.
type Options struct {
	// Console is the primary sink. Defaults to os.Stdout.
	Console io.Writer

	// Dir is where per-destination .txt files are created.
	// Defaults to the working directory.
	Dir string

	// NameDB enables identity reconciliation of observed model names.
	// Nil disables it.
	NameDB *namedb.DB

	// RankDirection maps rank movement to the up/down styles.
	RankDirection RankDirection

	// Now overrides the clock for file-line timestamps. Tests use a
	// frozen clock; defaults to time.Now.
	Now func() time.Time

	// Fatal is invoked on identity-reconciliation store failures,
	// which must surface rather than be masked. Defaults to panicking.
	Fatal func(error)
}

// prevState is the last observed display status for a model, used to
// compute elapsed-duration annotations on state messages.
type prevState struct {
	label     string
	since     time.Time
	lastOnOff time.Time
}

// Logger routes feed events to the console and per-destination files
// according to the registered selectors.
//
// All state is mutated on the feed's dispatch goroutine only; see the
// mfc package for the single-writer contract.
type Logger struct {
	feed    *mfc.Feed
	rooms   RoomClient
	members *Memberships

	joinedRooms    map[int]struct{}
	previousStates map[int]prevState

	// Audience identity maps for resolving part notices, which carry
	// only a session id. Entries are never evicted: session ids are
	// not reused within a process lifetime.
	sessionsToIDs map[int]int
	idsToNames    map[int]string

	console io.Writer
	dir     string
	files   map[Destination]*os.File
	now     func() time.Time
	rankDir RankDirection
	names   *namedb.DB
	fatal   func(error)
}

// New builds a Logger, registers every selector, and subscribes the
// dispatchers to the feed. A malformed selector (unknown category, or
// neither id nor predicate) fails construction; a misconfigured
// selector must abort startup, never be dropped silently.
func New(feed *mfc.Feed, rooms RoomClient, selectors []Selector, opts Options) (*Logger, error) {
	if opts.Console == nil {
		opts.Console = os.Stdout
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Fatal == nil {
		opts.Fatal = func(err error) { panic(err) }
	}

	l := &Logger{
		feed:           feed,
		rooms:          rooms,
		members:        NewMemberships(),
		joinedRooms:    make(map[int]struct{}),
		previousStates: make(map[int]prevState),
		sessionsToIDs:  make(map[int]int),
		idsToNames:     make(map[int]string),
		console:        opts.Console,
		dir:            opts.Dir,
		files:          make(map[Destination]*os.File),
		now:            opts.Now,
		rankDir:        opts.RankDirection,
		names:          opts.NameDB,
		fatal:          opts.Fatal,
	}

	for i, sel := range selectors {
		if err := l.register(sel); err != nil {
			return nil, fmt.Errorf("selector %d: %w", i, err)
		}
	}

	feed.OnChat(l.handleChat)
	feed.OnTip(l.handleTip)
	feed.OnRoomMember(l.handleRoomMember)
	feed.OnGuestCount(l.handleGuestCount)
	feed.OnViewerCount(l.handleViewerCount)
	feed.OnState(l.handleState)
	feed.OnTruePrivate(l.handleTruePrivate)
	feed.OnRank(l.handleRank)
	feed.OnCamscore(l.handleCamscore)
	feed.OnTopic(l.handleTopic)

	if l.names != nil {
		feed.OnSessionState(l.handleSessionState)
	}

	return l, nil
}

// Close flushes and closes every open file sink. The logger must not
// be used afterwards.
func (l *Logger) Close() error {
	return l.closeFiles()
}

// Joined reports whether the model's room subscription is currently
// open. Exposed for tests and diagnostics.
func (l *Logger) Joined(uid int) bool {
	_, ok := l.joinedRooms[uid]
	return ok
}

// Members exposes the membership store for tests and diagnostics.
func (l *Logger) Members() *Memberships {
	return l.members
}

// handleSessionState feeds observed (id, name) pairs to the identity
// reconciliation store. Store failures are diagnostic-critical and
// surface through the fatal hook rather than being swallowed.
func (l *Logger) handleSessionState(ev mfc.SessionStateEvent) {
	if ev.Name == "" {
		return
	}
	if err := l.names.RecordName(context.Background(), ev.UID, ev.Name); err != nil {
		l.fatal(fmt.Errorf("recording name %q for model %d: %w", ev.Name, ev.UID, err))
	}
}
