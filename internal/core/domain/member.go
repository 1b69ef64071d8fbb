package domain

import "strings"

// Member is the club profile linked 1:1 to a User: MemberID equals the
// user's ID. The link is by id equality only, so a user with no Member
// row simply has no profile yet.
type Member struct {
	ID                 string `json:"id"`
	MemberID           string `json:"memberId"`
	FirstName          string `json:"firstName"`
	LastName           string `json:"lastName"`
	Club               string `json:"club,omitempty"`
	EmailAddress       string `json:"emailAddress"`
	PhoneNumber        string `json:"phoneNumber"`
	Classification     string `json:"classification,omitempty"`
	RelationshipStatus string `json:"relationshipStatus,omitempty"`
	ImageURL           string `json:"imageURL,omitempty"`
	OfficerTitle       string `json:"officerTitle,omitempty"`
	ShowEmail          bool   `json:"showEmail"`
	ShowPhone          bool   `json:"showPhone"`
}

// ContactEmail returns the email address only when the member chose to
// publish it. Presentation code must go through this accessor so a
// hidden address can never leak.
func (m Member) ContactEmail() (string, bool) {
	if !m.ShowEmail {
		return "", false
	}
	return m.EmailAddress, true
}

// ContactPhone is the phone-number counterpart of ContactEmail.
func (m Member) ContactPhone() (string, bool) {
	if !m.ShowPhone {
		return "", false
	}
	return m.PhoneNumber, true
}

// SplitName splits a display name into first and last name: the first
// whitespace-delimited token is the first name, the remainder the last
// name. A single-token name gets an empty last name; that is the
// documented behaviour, not something to paper over.
func SplitName(full string) (first, last string) {
	fields := strings.Fields(full)
	if len(fields) == 0 {
		return "", ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}

// MemberPatch is a partial update of a Member row. Nil fields are left
// untouched on the backend.
type MemberPatch struct {
	FirstName          *string
	LastName           *string
	Club               *string
	EmailAddress       *string
	PhoneNumber        *string
	Classification     *string
	RelationshipStatus *string
	ImageURL           *string
	OfficerTitle       *string
	ShowEmail          *bool
	ShowPhone          *bool
}

// Fields returns the set fields keyed by their wire names.
func (p MemberPatch) Fields() map[string]any {
	out := make(map[string]any)
	setStr := func(key string, v *string) {
		if v != nil {
			out[key] = *v
		}
	}
	setStr("firstName", p.FirstName)
	setStr("lastName", p.LastName)
	setStr("club", p.Club)
	setStr("emailAddress", p.EmailAddress)
	setStr("phoneNumber", p.PhoneNumber)
	setStr("classification", p.Classification)
	setStr("relationshipStatus", p.RelationshipStatus)
	setStr("imageURL", p.ImageURL)
	setStr("officerTitle", p.OfficerTitle)
	if p.ShowEmail != nil {
		out["showEmail"] = *p.ShowEmail
	}
	if p.ShowPhone != nil {
		out["showPhone"] = *p.ShowPhone
	}
	return out
}
