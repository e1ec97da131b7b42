package logger

import (
	"fmt"

	"github.com/ZombieAlex/MFCLogger/internal/mfc"
)

// Predicate gates a temporary membership. It is evaluated against the
// model's settled snapshot after every session update; membership is
// added on the false→true edge and removed on the true→false edge.
type Predicate func(*mfc.Model) bool

// Selector is one user-supplied routing rule: an entity scope (ID
// and/or When), the categories to record, and an optional destination
// file tag.
//
// At least one of ID and When must be set. When both are set the
// predicate is scoped to the one model. Where defaults to the model's
// display name at registration time; NoFile suppresses the file sink
// entirely (console only).
type Selector struct {
	ID     int
	What   []Category
	When   Predicate
	Where  string
	NoFile bool
}

// validate reports the first configuration error on the selector.
// Errors here are fatal at registration time: a misconfigured selector
// must abort startup, never be silently ignored.
func (s Selector) validate() error {
	if s.ID == 0 && s.When == nil {
		return fmt.Errorf("selector needs at least one of 'id' or 'when'")
	}
	if len(s.What) == 0 {
		return fmt.Errorf("selector has no categories in 'what'")
	}
	for _, cat := range s.What {
		if _, err := ParseCategory(string(cat)); err != nil {
			return fmt.Errorf("invalid category in 'what': %w", err)
		}
	}
	return nil
}

// destination resolves the selector's destination tag for a model.
func (s Selector) destination(m *mfc.Model) Destination {
	if s.NoFile {
		return ConsoleOnly
	}
	if s.Where != "" {
		return Destination(s.Where)
	}
	return Destination(m.Name)
}

// register wires one selector into the membership store and the feed.
//
// Permanent memberships (no predicate) are recorded immediately.
// Predicate selectors subscribe via the feed's When machinery; each
// enter/exit edge toggles the temporary membership and re-evaluates the
// room lifecycle decision for the affected model.
func (l *Logger) register(sel Selector) error {
	if err := sel.validate(); err != nil {
		return err
	}

	for _, cat := range sel.What {
		switch {
		case sel.ID != 0 && sel.When == nil:
			m := l.feed.Model(sel.ID)
			if sel.NoFile || sel.Where != "" || m.Name != "" {
				l.members.AddPermanent(cat, sel.ID, sel.destination(m))
				l.syncRoom(m)
				continue
			}
			// The destination defaults to the display name, which may
			// not be known yet; bind the membership on the first name
			// observation. Permanent: no exit side.
			l.feed.WhenModel(sel.ID,
				func(m *mfc.Model) bool { return m.Name != "" },
				func(m *mfc.Model) {
					l.members.AddPermanent(cat, m.UID, sel.destination(m))
					l.syncRoom(m)
				},
				nil,
			)

		case sel.ID != 0:
			onEnter, onExit := l.temporaryEdges(sel, cat)
			l.feed.WhenModel(sel.ID, sel.When, onEnter, onExit)

		default:
			onEnter, onExit := l.temporaryEdges(sel, cat)
			l.feed.When(sel.When, onEnter, onExit)
		}
	}
	return nil
}

// temporaryEdges builds the enter/exit callbacks toggling one temporary
// membership. The destination tag is resolved once on enter and
// remembered for the matching exit: a model renaming itself between the
// two edges must still remove the tag that was added, not a fresh
// resolution that would leak the membership.
func (l *Logger) temporaryEdges(sel Selector, cat Category) (onEnter, onExit func(*mfc.Model)) {
	bound := make(map[int]Destination)

	onEnter = func(m *mfc.Model) {
		dest := sel.destination(m)
		bound[m.UID] = dest
		l.members.AddTemporary(cat, m.UID, dest)
		l.syncRoom(m)
	}
	onExit = func(m *mfc.Model) {
		l.members.RemoveTemporary(cat, m.UID, bound[m.UID])
		delete(bound, m.UID)
		l.syncRoom(m)
	}
	return onEnter, onExit
}
