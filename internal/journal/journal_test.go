package journal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJournal(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	t.Run("records entries in append order", func(t *testing.T) {
		j := New()
		j.Record(now, ActorSystem, ActionInit, "first", "")
		j.Record(now.Add(time.Second), ActorGovernor, ActionReady, "second", "impact")

		entries := j.Entries()
		assert.Len(t, entries, 2)
		assert.Equal(t, ActionInit, entries[0].Action)
		assert.Equal(t, "second", entries[1].Details)
		assert.Equal(t, "impact", entries[1].Impact)
	})

	t.Run("entries returns a defensive copy", func(t *testing.T) {
		j := New()
		j.Record(now, ActorSystem, ActionInit, "original", "")

		entries := j.Entries()
		entries[0].Details = "mutated"

		fresh := j.Entries()
		assert.Equal(t, "original", fresh[0].Details)
	})

	t.Run("last returns most recent entry", func(t *testing.T) {
		j := New()
		_, ok := j.Last()
		assert.False(t, ok)

		j.Record(now, ActorSales, ActionTriggered, "a", "")
		j.Record(now, ActorSales, ActionCaptured, "b", "")

		last, ok := j.Last()
		assert.True(t, ok)
		assert.Equal(t, ActionCaptured, last.Action)
	})

	t.Run("len tracks entry count", func(t *testing.T) {
		j := New()
		assert.Equal(t, 0, j.Len())
		j.Record(now, ActorSystem, ActionInit, "", "")
		assert.Equal(t, 1, j.Len())
	})
}
