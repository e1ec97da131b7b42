package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemberships_AddPermanent(t *testing.T) {
	m := NewMemberships()

	m.AddPermanent(CategoryChat, 42, "rae")
	assert.True(t, m.IsMember(CategoryChat, 42))
	assert.False(t, m.IsMember(CategoryTips, 42))
	assert.False(t, m.IsMember(CategoryChat, 99))
}

func TestMemberships_AddDeduplicates(t *testing.T) {
	m := NewMemberships()

	m.AddPermanent(CategoryChat, 42, "rae")
	m.AddPermanent(CategoryChat, 42, "rae")
	assert.Equal(t, []Destination{"rae"}, m.Destinations([]Category{CategoryChat}, 42))
}

func TestMemberships_RemoveTemporary_EvictsEmptyEntries(t *testing.T) {
	m := NewMemberships()

	m.AddTemporary(CategoryTips, 42, "rae")
	assert.True(t, m.IsMember(CategoryTips, 42))

	m.RemoveTemporary(CategoryTips, 42, "rae")
	assert.False(t, m.IsMember(CategoryTips, 42), "an empty destination set is no membership at all")

	// Removing again is a no-op.
	m.RemoveTemporary(CategoryTips, 42, "rae")
	assert.False(t, m.IsMember(CategoryTips, 42))
}

func TestMemberships_RemoveTemporary_KeepsOtherDestinations(t *testing.T) {
	m := NewMemberships()

	m.AddTemporary(CategoryTips, 42, "a")
	m.AddTemporary(CategoryTips, 42, "b")
	m.RemoveTemporary(CategoryTips, 42, "a")

	assert.True(t, m.IsMember(CategoryTips, 42))
	assert.Equal(t, []Destination{"b"}, m.Destinations([]Category{CategoryTips}, 42))
}

func TestMemberships_PermanentUnaffectedByTemporaryRemoval(t *testing.T) {
	m := NewMemberships()

	m.AddPermanent(CategoryTips, 42, "rae")
	m.AddTemporary(CategoryTips, 42, "rae")
	m.RemoveTemporary(CategoryTips, 42, "rae")

	assert.True(t, m.IsMember(CategoryTips, 42), "permanent memberships are never auto-removed")
}

func TestMemberships_IsMemberOfAny(t *testing.T) {
	m := NewMemberships()

	m.AddPermanent(CategoryAll, 42, "rae")
	assert.True(t, m.IsMemberOfAny([]Category{CategoryTips, CategoryAll}, 42))
	assert.False(t, m.IsMemberOfAny([]Category{CategoryTips, CategoryChat}, 42))
	assert.False(t, m.IsMemberOfAny(nil, 42))
}

func TestMemberships_Destinations_OrderAndDedup(t *testing.T) {
	m := NewMemberships()

	m.AddPermanent(CategoryTips, 42, "perm")
	m.AddTemporary(CategoryTips, 42, "temp")
	m.AddPermanent(CategoryAll, 42, "perm") // duplicate through a second category
	m.AddPermanent(CategoryAll, 42, "extra")

	got := m.Destinations([]Category{CategoryTips, CategoryAll}, 42)
	assert.Equal(t, []Destination{"perm", "temp", "extra"}, got,
		"category order, permanent before temporary, duplicates suppressed")
}

func TestMemberships_Destinations_ConsoleOnlySentinel(t *testing.T) {
	m := NewMemberships()

	m.AddPermanent(CategoryChat, 42, ConsoleOnly)
	got := m.Destinations([]Category{CategoryChat}, 42)
	assert.Equal(t, []Destination{ConsoleOnly}, got)
	assert.False(t, got[0].HasFile())
	assert.True(t, Destination("rae").HasFile())
}
