package mfc

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
)

// Feed is the publish-subscribe hub between a transport and the logging
// engine. It owns the model registry, merges session updates, fires
// typed per-property change handlers, and tracks conditional When
// subscriptions with enter/exit edge semantics.
//
// Handlers run synchronously, in registration order, on the dispatching
// goroutine. Per-model event order is the transport's delivery order;
// the Feed never buffers or reorders within Dispatch.
type Feed struct {
	models map[int]*Model

	chatHandlers     []func(ChatEvent)
	tipHandlers      []func(TipEvent)
	memberHandlers   []func(RoomMemberEvent)
	guestHandlers    []func(GuestCountEvent)
	sessionHandlers  []func(SessionStateEvent)
	stateHandlers    []func(StateChange)
	truePvtHandlers  []func(TruePrivateChange)
	rankHandlers     []func(RankChange)
	camscoreHandlers []func(CamscoreChange)
	topicHandlers    []func(TopicChange)
	viewerHandlers   []func(ViewerCountChange)

	watchers []*watcher

	queue *eventQueue
	seq   atomic.Int64
}

// watcher tracks one When subscription's last truth value per model so
// enter/exit fire only on edges.
type watcher struct {
	uid     int // 0 means every model
	pred    func(*Model) bool
	onEnter func(*Model)
	onExit  func(*Model)
	truthy  map[int]bool
}

// NewFeed creates an empty feed with no models and no subscribers.
func NewFeed() *Feed {
	return &Feed{
		models: make(map[int]*Model),
		queue:  newEventQueue(),
	}
}

// Model returns the tracked model with the given uid, materializing an
// empty record if it has not been observed yet.
func (f *Feed) Model(uid int) *Model {
	m, ok := f.models[uid]
	if !ok {
		// Unseen models are offline until the feed says otherwise.
		m = &Model{UID: uid, Session: Session{State: StateOffline}}
		f.models[uid] = m
	}
	return m
}

// Known reports whether a model has been observed, without materializing it.
func (f *Feed) Known(uid int) bool {
	_, ok := f.models[uid]
	return ok
}

func (f *Feed) OnChat(h func(ChatEvent)) { f.chatHandlers = append(f.chatHandlers, h) }

func (f *Feed) OnTip(h func(TipEvent)) { f.tipHandlers = append(f.tipHandlers, h) }

func (f *Feed) OnRoomMember(h func(RoomMemberEvent)) { f.memberHandlers = append(f.memberHandlers, h) }

func (f *Feed) OnGuestCount(h func(GuestCountEvent)) { f.guestHandlers = append(f.guestHandlers, h) }

func (f *Feed) OnSessionState(h func(SessionStateEvent)) {
	f.sessionHandlers = append(f.sessionHandlers, h)
}

func (f *Feed) OnState(h func(StateChange)) { f.stateHandlers = append(f.stateHandlers, h) }

func (f *Feed) OnTruePrivate(h func(TruePrivateChange)) {
	f.truePvtHandlers = append(f.truePvtHandlers, h)
}

func (f *Feed) OnRank(h func(RankChange)) { f.rankHandlers = append(f.rankHandlers, h) }

func (f *Feed) OnCamscore(h func(CamscoreChange)) { f.camscoreHandlers = append(f.camscoreHandlers, h) }

func (f *Feed) OnTopic(h func(TopicChange)) { f.topicHandlers = append(f.topicHandlers, h) }

func (f *Feed) OnViewerCount(h func(ViewerCountChange)) {
	f.viewerHandlers = append(f.viewerHandlers, h)
}

// When registers a conditional subscription across all models. onEnter
// fires when pred transitions false→true for a model, onExit on the
// true→false transition. Repeated evaluations on the same side of the
// edge are no-ops. Models already satisfying pred fire onEnter
// immediately.
func (f *Feed) When(pred func(*Model) bool, onEnter, onExit func(*Model)) {
	w := &watcher{pred: pred, onEnter: onEnter, onExit: onExit, truthy: make(map[int]bool)}
	f.watchers = append(f.watchers, w)
	for _, m := range f.models {
		f.evalWatcher(w, m)
	}
}

// WhenModel is When scoped to a single model.
func (f *Feed) WhenModel(uid int, pred func(*Model) bool, onEnter, onExit func(*Model)) {
	w := &watcher{uid: uid, pred: pred, onEnter: onEnter, onExit: onExit, truthy: make(map[int]bool)}
	f.watchers = append(f.watchers, w)
	f.evalWatcher(w, f.Model(uid))
}

func (f *Feed) evalWatcher(w *watcher, m *Model) {
	if w.uid != 0 && w.uid != m.UID {
		return
	}
	now := w.pred(m)
	was := w.truthy[m.UID]
	if now == was {
		return
	}
	w.truthy[m.UID] = now
	if now {
		if w.onEnter != nil {
			w.onEnter(m)
		}
	} else {
		if w.onExit != nil {
			w.onExit(m)
		}
	}
}

func (f *Feed) evalWatchers(m *Model) {
	for _, w := range f.watchers {
		f.evalWatcher(w, m)
	}
}

// Update merges a partial session update into a model and fires the
// change handlers for every property that actually changed, then the
// session-state handlers (when the update carries a name), then the
// When watchers.
//
// The whole update is applied before any handler runs: handlers always
// see the settled snapshot, so a single update carrying both a state
// and a true-private change logs the final combination, not an
// intermediate one.
func (f *Feed) Update(uid int, upd SessionUpdate) {
	m := f.Model(uid)
	old := m.Session

	if upd.Name != nil {
		m.Name = *upd.Name
	}

	stateChanged := upd.State != nil && *upd.State != old.State
	if stateChanged {
		m.Session.State = *upd.State
	}
	truePvtChanged := upd.TruePrivate != nil && *upd.TruePrivate != old.TruePrivate
	if truePvtChanged {
		m.Session.TruePrivate = *upd.TruePrivate
	}
	rankChanged := upd.Rank != nil && (!old.RankKnown || *upd.Rank != old.Rank)
	if rankChanged {
		m.Session.Rank = *upd.Rank
		m.Session.RankKnown = true
	}
	camscoreChanged := upd.Camscore != nil && (!old.CamscoreKnown || *upd.Camscore != old.Camscore)
	if camscoreChanged {
		m.Session.Camscore = *upd.Camscore
		m.Session.CamscoreKnown = true
	}
	topicChanged := upd.Topic != nil && *upd.Topic != old.Topic
	if topicChanged {
		m.Session.Topic = *upd.Topic
	}
	viewersChanged := upd.Viewers != nil && *upd.Viewers != old.Viewers
	if viewersChanged {
		m.Session.Viewers = *upd.Viewers
	}

	if stateChanged {
		for _, h := range f.stateHandlers {
			h(StateChange{Model: m, Old: old.State, New: m.Session.State})
		}
	}
	if truePvtChanged {
		for _, h := range f.truePvtHandlers {
			h(TruePrivateChange{Model: m, Old: old.TruePrivate, New: m.Session.TruePrivate})
		}
	}
	if rankChanged {
		for _, h := range f.rankHandlers {
			h(RankChange{Model: m, Old: old.Rank, New: m.Session.Rank, OldKnown: old.RankKnown})
		}
	}
	if camscoreChanged {
		for _, h := range f.camscoreHandlers {
			h(CamscoreChange{Model: m, Old: old.Camscore, New: m.Session.Camscore, OldKnown: old.CamscoreKnown})
		}
	}
	if topicChanged {
		for _, h := range f.topicHandlers {
			h(TopicChange{Model: m, Old: old.Topic, New: m.Session.Topic})
		}
	}
	if viewersChanged {
		for _, h := range f.viewerHandlers {
			h(ViewerCountChange{Model: m, Old: old.Viewers, New: m.Session.Viewers})
		}
	}

	if upd.Name != nil {
		for _, h := range f.sessionHandlers {
			h(SessionStateEvent{UID: uid, Name: *upd.Name})
		}
	}

	f.evalWatchers(m)
}

// Chat dispatches a chat message to subscribers.
func (f *Feed) Chat(ev ChatEvent) {
	f.Model(ev.UID) // ensure the room's model is tracked
	for _, h := range f.chatHandlers {
		h(ev)
	}
}

// Tip dispatches a tip to subscribers.
func (f *Feed) Tip(ev TipEvent) {
	f.Model(ev.UID)
	for _, h := range f.tipHandlers {
		h(ev)
	}
}

// RoomMember dispatches a member join/part notice to subscribers.
func (f *Feed) RoomMember(ev RoomMemberEvent) {
	f.Model(ev.UID)
	for _, h := range f.memberHandlers {
		h(ev)
	}
}

// GuestCount dispatches an aggregate guest-count update to subscribers.
func (f *Feed) GuestCount(ev GuestCountEvent) {
	f.Model(ev.UID)
	for _, h := range f.guestHandlers {
		h(ev)
	}
}

// Enqueue submits an event for processing by the Run loop, stamping it
// with a strictly increasing sequence number.
// Thread-safe: may be called from any goroutine.
// Returns false if the feed has been stopped.
func (f *Feed) Enqueue(ev Event) bool {
	ev.Seq = f.seq.Add(1)
	return f.queue.Enqueue(ev)
}

// Dispatch routes one event to the matching handler path. Must be
// called from the dispatch goroutine.
func (f *Feed) Dispatch(ev Event) error {
	switch ev.Kind {
	case EventUpdate:
		if ev.Update == nil {
			return fmt.Errorf("update event missing payload")
		}
		f.Update(ev.UID, *ev.Update)
	case EventChat:
		if ev.Chat == nil {
			return fmt.Errorf("chat event missing payload")
		}
		f.Chat(*ev.Chat)
	case EventTip:
		if ev.Tip == nil {
			return fmt.Errorf("tip event missing payload")
		}
		f.Tip(*ev.Tip)
	case EventRoomMember:
		if ev.Member == nil {
			return fmt.Errorf("room member event missing payload")
		}
		f.RoomMember(*ev.Member)
	case EventGuestCount:
		if ev.Guests == nil {
			return fmt.Errorf("guest count event missing payload")
		}
		f.GuestCount(*ev.Guests)
	default:
		return fmt.Errorf("unknown event kind: %d", ev.Kind)
	}
	return nil
}

// Run starts the single-writer dispatch loop. Blocks until the context
// is cancelled or Stop() is called and the queue drains.
//
// Must be called from exactly one goroutine. All handler execution and
// model mutation happen on this goroutine, preserving per-model
// delivery order.
func (f *Feed) Run(ctx context.Context) error {
	slog.Info("feed dispatch loop starting")

	for {
		event, ok := f.queue.TryDequeue()
		if ok {
			if err := f.Dispatch(event); err != nil {
				// Malformed events are dropped, not fatal: one bad
				// transport record must not stop the stream.
				slog.Error("event dispatch failed", "error", err, "kind", event.Kind, "seq", event.Seq)
			}
			continue
		}

		select {
		case <-ctx.Done():
			slog.Info("feed stopping: context cancelled")
			f.queue.Close()
			return ctx.Err()

		case <-f.queue.Wait():
			// A signal token only means events may be available. Stale
			// tokens from an already-drained burst re-loop harmlessly;
			// termination requires the queue to be closed and empty.
			if f.queue.Closed() && f.queue.Len() == 0 {
				slog.Info("feed stopping: queue closed")
				return nil
			}
		}
	}
}

// Stop closes the event queue, which causes Run to return after the
// remaining events drain.
func (f *Feed) Stop() {
	f.queue.Close()
}

// QueueLen returns the number of pending events. Useful for monitoring
// and tests.
func (f *Feed) QueueLen() int {
	return f.queue.Len()
}
