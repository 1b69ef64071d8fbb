package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Bash0121/FHU-social-club/internal/core/domain"
)

func sampleMembers() []domain.Member {
	return []domain.Member{
		{ID: "1", FirstName: "Ann", LastName: "Baker", Club: "A", ShowEmail: true},
		{ID: "2", FirstName: "Bob", LastName: "Cole", Club: "B"},
		{ID: "3", FirstName: "Anna", LastName: "Drake", Club: "A", ShowPhone: true},
	}
}

func TestFilterMembers_EmptyQueryReturnsAll(t *testing.T) {
	members := sampleMembers()
	assert.Equal(t, members, FilterMembers(members, "", ""))
}

func TestFilterMembers_QueryAndScope(t *testing.T) {
	got := FilterMembers(sampleMembers(), "an", "A")

	// Ann and Anna match and sit in club A, in input order; Bob is out
	// on both counts.
	if assert.Len(t, got, 2) {
		assert.Equal(t, "Ann", got[0].FirstName)
		assert.Equal(t, "Anna", got[1].FirstName)
	}
}

func TestFilterMembers_CaseInsensitiveOnEitherName(t *testing.T) {
	members := sampleMembers()

	assert.Len(t, FilterMembers(members, "ANN", ""), 2)
	assert.Len(t, FilterMembers(members, "drake", ""), 1)
	assert.Len(t, FilterMembers(members, "cOLe", ""), 1)
}

func TestFilterMembers_TrimsSurroundingWhitespaceOnly(t *testing.T) {
	members := sampleMembers()

	assert.Len(t, FilterMembers(members, "  ann  ", ""), 2)

	// Internal whitespace is preserved and therefore matches nothing
	// inside a single name field.
	assert.Empty(t, FilterMembers(members, "a n", ""))
}

func TestFilterMembers_ScopeIsExactAndCaseSensitive(t *testing.T) {
	members := sampleMembers()

	assert.Empty(t, FilterMembers(members, "", "a"))
	assert.Len(t, FilterMembers(members, "", "A"), 2)
}

func TestFilterMembers_Idempotent(t *testing.T) {
	once := FilterMembers(sampleMembers(), "an", "A")
	twice := FilterMembers(once, "an", "A")
	assert.Equal(t, once, twice)
}

func TestFilterMembers_PreservesRecordsUntouched(t *testing.T) {
	got := FilterMembers(sampleMembers(), "ann", "A")

	// The privacy flags ride along unmodified through the filter.
	if assert.Len(t, got, 2) {
		assert.True(t, got[0].ShowEmail)
		assert.True(t, got[1].ShowPhone)
	}
}

func TestFilterMembers_DoesNotMutateInput(t *testing.T) {
	members := sampleMembers()
	_ = FilterMembers(members, "bob", "B")
	assert.Equal(t, sampleMembers(), members)
}

func TestFilterEvents_ScopePreservesOrder(t *testing.T) {
	events := []domain.EventRecord{
		{ID: "e1", EventName: "Rush", EventDate: "2024-01-15", Club: "A"},
		{ID: "e2", EventName: "Mixer", EventDate: "2024-02-01", Club: "B"},
		{ID: "e3", EventName: "Formal", EventDate: "2024-03-01", Club: "A"},
	}

	got := FilterEvents(events, "A")
	if assert.Len(t, got, 2) {
		assert.Equal(t, "e1", got[0].ID)
		assert.Equal(t, "e3", got[1].ID)
	}

	assert.Equal(t, events, FilterEvents(events, ""))
}

func TestFindMemberAndEvent(t *testing.T) {
	members := sampleMembers()

	m, ok := FindMember(members, "2")
	assert.True(t, ok)
	assert.Equal(t, "Bob", m.FirstName)

	_, ok = FindMember(members, "missing")
	assert.False(t, ok)

	events := []domain.EventRecord{{ID: "e1"}}
	_, ok = FindEvent(events, "e1")
	assert.True(t, ok)
	_, ok = FindEvent(events, "e2")
	assert.False(t, ok)
}
