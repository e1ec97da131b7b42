package logger

// Destination names the file sink a membership routes to. The zero
// value is the console-only sentinel: messages echo to the console but
// no file is written.
type Destination string

// ConsoleOnly suppresses the file sink for a selector.
const ConsoleOnly Destination = ""

// HasFile reports whether the destination writes a per-tag text file.
func (d Destination) HasFile() bool { return d != ConsoleOnly }

// memberships is the routing table for one partition (permanent or
// temporary): category → model uid → destinations, insertion-ordered so
// fan-out iteration is deterministic.
type memberships map[Category]map[int][]Destination

func (ms memberships) add(cat Category, uid int, dest Destination) {
	byUID, ok := ms[cat]
	if !ok {
		byUID = make(map[int][]Destination)
		ms[cat] = byUID
	}
	for _, d := range byUID[uid] {
		if d == dest {
			return
		}
	}
	byUID[uid] = append(byUID[uid], dest)
}

func (ms memberships) remove(cat Category, uid int, dest Destination) {
	byUID, ok := ms[cat]
	if !ok {
		return
	}
	dests := byUID[uid]
	for i, d := range dests {
		if d == dest {
			dests = append(dests[:i], dests[i+1:]...)
			break
		}
	}
	// No empty placeholder entries: a uid with no destinations left is
	// not a member at all.
	if len(dests) == 0 {
		delete(byUID, uid)
	} else {
		byUID[uid] = dests
	}
}

func (ms memberships) has(cat Category, uid int) bool {
	return len(ms[cat][uid]) > 0
}

// Memberships is the routing table proper: for every category, the
// destinations requesting it per model, split into a permanent
// partition (selectors without predicates, never auto-removed) and a
// temporary partition (predicate-gated, toggled on edges).
//
// Not safe for concurrent use; the Logger mutates it only from the
// single dispatch goroutine.
type Memberships struct {
	perm memberships
	temp memberships
}

// NewMemberships creates an empty routing table.
func NewMemberships() *Memberships {
	return &Memberships{
		perm: make(memberships),
		temp: make(memberships),
	}
}

// AddPermanent registers a never-removed membership.
func (m *Memberships) AddPermanent(cat Category, uid int, dest Destination) {
	m.perm.add(cat, uid, dest)
}

// AddTemporary registers a predicate-gated membership.
func (m *Memberships) AddTemporary(cat Category, uid int, dest Destination) {
	m.temp.add(cat, uid, dest)
}

// RemoveTemporary drops a predicate-gated membership, evicting the
// model's entry entirely once its destination set empties.
func (m *Memberships) RemoveTemporary(cat Category, uid int, dest Destination) {
	m.temp.remove(cat, uid, dest)
}

// IsMember reports whether either partition holds a membership for the
// (category, uid) pair.
func (m *Memberships) IsMember(cat Category, uid int) bool {
	return m.perm.has(cat, uid) || m.temp.has(cat, uid)
}

// IsMemberOfAny is IsMember OR-ed across categories.
func (m *Memberships) IsMemberOfAny(cats []Category, uid int) bool {
	for _, cat := range cats {
		if m.IsMember(cat, uid) {
			return true
		}
	}
	return false
}

// Destinations returns the deduplicated union of destinations across
// the given categories for one model, permanent before temporary within
// each category, categories in the given order.
func (m *Memberships) Destinations(cats []Category, uid int) []Destination {
	var out []Destination
	seen := make(map[Destination]bool)
	for _, cat := range cats {
		for _, d := range m.perm[cat][uid] {
			if !seen[d] {
				seen[d] = true
				out = append(out, d)
			}
		}
		for _, d := range m.temp[cat][uid] {
			if !seen[d] {
				seen[d] = true
				out = append(out, d)
			}
		}
	}
	return out
}
