package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelection_SelectAndDeselect(t *testing.T) {
	var sel Selection

	id, visible := sel.Current()
	assert.Empty(t, id)
	assert.False(t, visible)

	sel.Select("m1")
	id, visible = sel.Current()
	assert.Equal(t, "m1", id)
	assert.True(t, visible)

	sel.Deselect()
	id, visible = sel.Current()
	assert.Empty(t, id)
	assert.False(t, visible)
}

func TestSelection_SyncKeepsLiveSelection(t *testing.T) {
	var sel Selection
	sel.Select("m1")

	sel.Sync(func(id string) bool { return id == "m1" })

	id, visible := sel.Current()
	assert.Equal(t, "m1", id)
	assert.True(t, visible)
}

func TestSelection_SyncClosesOverlayWhenRecordVanishes(t *testing.T) {
	var sel Selection
	sel.Select("m1")

	// The record set reloaded without m1: the overlay must close
	// instead of rendering stale data.
	sel.Sync(func(string) bool { return false })

	id, visible := sel.Current()
	assert.Empty(t, id)
	assert.False(t, visible)
}

func TestSelection_SyncWithoutSelectionIsNoop(t *testing.T) {
	var sel Selection
	called := false
	sel.Sync(func(string) bool { called = true; return false })
	assert.False(t, called)
}
