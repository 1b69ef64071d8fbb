package service

import (
	"strings"

	"github.com/Bash0121/FHU-social-club/internal/core/domain"
)

// FilterMembers returns the members within clubScope whose first or
// last name contains query, case-insensitively. Leading and trailing
// whitespace in query is ignored; an empty query matches everything.
// clubScope is an exact, case-sensitive match; "" means match-all.
//
// The filter is pure and stable: input order is preserved, records are
// copied untouched (the ShowEmail/ShowPhone privacy flags included),
// and no state is retained between calls.
func FilterMembers(records []domain.Member, query, clubScope string) []domain.Member {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]domain.Member, 0, len(records))
	for _, m := range records {
		if clubScope != "" && m.Club != clubScope {
			continue
		}
		if q != "" && !matchesName(m, q) {
			continue
		}
		out = append(out, m)
	}
	return out
}

func matchesName(m domain.Member, q string) bool {
	return strings.Contains(strings.ToLower(m.FirstName), q) ||
		strings.Contains(strings.ToLower(m.LastName), q)
}

// FilterEvents scopes events to a club without disturbing the
// backend's eventDate-ascending delivery order. "" means match-all.
func FilterEvents(records []domain.EventRecord, clubScope string) []domain.EventRecord {
	out := make([]domain.EventRecord, 0, len(records))
	for _, e := range records {
		if clubScope != "" && e.Club != clubScope {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FindMember looks up a member by id in a record set. Absence is a
// normal outcome after a reload, not an error.
func FindMember(records []domain.Member, id string) (domain.Member, bool) {
	for _, m := range records {
		if m.ID == id {
			return m, true
		}
	}
	return domain.Member{}, false
}

// FindEvent is the event counterpart of FindMember.
func FindEvent(records []domain.EventRecord, id string) (domain.EventRecord, bool) {
	for _, e := range records {
		if e.ID == id {
			return e, true
		}
	}
	return domain.EventRecord{}, false
}
