// Package model defines the core domain types for the activity sign-up system.
package model

// Activity represents a single extracurricular offering with a fixed
// capacity and a mutable, ordered roster of participant emails.
//
// Name and ID are carried out-of-band (the public API keys activities by
// name), so neither is part of the JSON representation.
type Activity struct {
	ID              string   `json:"-"`
	Name            string   `json:"-"`
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// Remaining returns the number of open slots.
func (a *Activity) Remaining() int {
	return a.MaxParticipants - len(a.Participants)
}

// IsFull returns true when no slots remain.
func (a *Activity) IsFull() bool {
	return len(a.Participants) >= a.MaxParticipants
}

// IsRegistered reports whether email is already on the roster.
// Comparison is an exact byte match: emails differing only in case are
// distinct participants.
func (a *Activity) IsRegistered(email string) bool {
	for _, p := range a.Participants {
		if p == email {
			return true
		}
	}
	return false
}

// Add appends email to the roster. It does not validate capacity or
// uniqueness; callers are expected to have checked both while holding the
// catalog lock.
func (a *Activity) Add(email string) {
	a.Participants = append(a.Participants, email)
}

// Remove deletes the first occurrence of email from the roster, preserving
// the relative order of the remaining participants. It reports whether a
// participant was removed.
func (a *Activity) Remove(email string) bool {
	for i, p := range a.Participants {
		if p == email {
			a.Participants = append(a.Participants[:i], a.Participants[i+1:]...)
			return true
		}
	}
	return false
}

// Clone returns a deep copy; mutating the copy's roster never affects the
// original.
func (a *Activity) Clone() Activity {
	clone := *a
	clone.Participants = make([]string, len(a.Participants))
	copy(clone.Participants, a.Participants)
	return clone
}

// MessageResponse is the success envelope for signup and removal.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the failure envelope; Detail carries the human-readable
// diagnostic.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
