package leads

import "strings"

// Sentinel values marking fields that have not been captured yet. They are
// carried through the API payload and the spreadsheet row as-is.
const (
	UnknownName = "Unknown"
	NoEmail     = "NULL"
)

// Lead represents a prospect captured during a chat conversation. It is
// mutated incrementally as new utterances arrive and finalized with a summary
// when the conversation ends.
type Lead struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Summary string `json:"summary,omitempty"`
	Refused bool   `json:"-"`
}

// New returns a Lead with nothing captured yet.
func New() Lead {
	return Lead{Name: UnknownName, Email: NoEmail}
}

// HasEmail reports whether a real email address has been captured.
func (l Lead) HasEmail() bool {
	return l.Email != "" && l.Email != NoEmail
}

// HasName reports whether a real name has been captured.
func (l Lead) HasName() bool {
	return l.Name != "" && l.Name != UnknownName
}

// DisplayName returns the captured name, or a generic salutation fallback.
func (l Lead) DisplayName() string {
	if l.HasName() {
		return l.Name
	}
	return "there"
}

// Merge applies newly extracted values over l. The literal string "null"
// (any casing) and the empty string mean "no new information" and keep the
// previous value.
func (l Lead) Merge(name, email string) Lead {
	merged := l
	if v := normalizeExtracted(name); v != "" {
		merged.Name = v
	}
	if v := normalizeExtracted(email); v != "" {
		merged.Email = v
	}
	if merged.Name == "" {
		merged.Name = UnknownName
	}
	if merged.Email == "" {
		merged.Email = NoEmail
	}
	return merged
}

func normalizeExtracted(v string) string {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, "null") {
		return ""
	}
	return v
}
