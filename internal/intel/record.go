package intel

import (
	"strings"
)

// Record holds the five independent identifier sets plus keyword hits
// accumulated for a session. Values are stored in canonical form
// (digits-only phones and accounts, lowercased URLs and emails) and in
// first-seen order. Sets only grow; nothing ever removes an entry.
type Record struct {
	UPIIDs             []string `json:"upiIds"`
	PhoneNumbers       []string `json:"phoneNumbers"`
	BankAccounts       []string `json:"bankAccounts"`
	PhishingLinks      []string `json:"phishingLinks"`
	EmailAddresses     []string `json:"emailAddresses"`
	SuspiciousKeywords []string `json:"suspiciousKeywords"`
}

// NewRecord returns a record with empty (non-nil) sets so JSON
// encoding yields [] rather than null for every field.
func NewRecord() *Record {
	return &Record{
		UPIIDs:             []string{},
		PhoneNumbers:       []string{},
		BankAccounts:       []string{},
		PhishingLinks:      []string{},
		EmailAddresses:     []string{},
		SuspiciousKeywords: []string{},
	}
}

// Merge unions other into r, deduplicating per the canonical forms.
// Merging the same per-message record twice is a no-op.
func (r *Record) Merge(other *Record) {
	if other == nil {
		return
	}
	r.UPIIDs = appendMissing(r.UPIIDs, other.UPIIDs)
	r.PhoneNumbers = appendMissing(r.PhoneNumbers, other.PhoneNumbers)
	r.BankAccounts = appendMissing(r.BankAccounts, other.BankAccounts)
	r.PhishingLinks = appendMissing(r.PhishingLinks, other.PhishingLinks)
	r.EmailAddresses = appendMissing(r.EmailAddresses, other.EmailAddresses)
	r.SuspiciousKeywords = appendMissing(r.SuspiciousKeywords, other.SuspiciousKeywords)
}

// Complete reports whether all five identifier categories hold at
// least one entry. Keywords do not count toward completeness.
func (r *Record) Complete() bool {
	return len(r.UPIIDs) > 0 &&
		len(r.PhoneNumbers) > 0 &&
		len(r.BankAccounts) > 0 &&
		len(r.PhishingLinks) > 0 &&
		len(r.EmailAddresses) > 0
}

// Missing returns the identifier categories with zero accumulated
// entries, as human-readable phrases in a fixed steering order. Empty
// once completeness is reached.
func (r *Record) Missing() []string {
	var missing []string
	if len(r.PhoneNumbers) == 0 {
		missing = append(missing, "phone number")
	}
	if len(r.UPIIDs) == 0 {
		missing = append(missing, "UPI ID")
	}
	if len(r.EmailAddresses) == 0 {
		missing = append(missing, "email address")
	}
	if len(r.PhishingLinks) == 0 {
		missing = append(missing, "website link")
	}
	if len(r.BankAccounts) == 0 {
		missing = append(missing, "bank account number")
	}
	return missing
}

// IdentifierCount counts extracted identifiers across the five sets,
// excluding keywords.
func (r *Record) IdentifierCount() int {
	return len(r.UPIIDs) + len(r.PhoneNumbers) + len(r.BankAccounts) +
		len(r.PhishingLinks) + len(r.EmailAddresses)
}

// Clone returns a deep copy safe to hand to callers outside the
// session lock.
func (r *Record) Clone() *Record {
	if r == nil {
		return NewRecord()
	}
	return &Record{
		UPIIDs:             append([]string{}, r.UPIIDs...),
		PhoneNumbers:       append([]string{}, r.PhoneNumbers...),
		BankAccounts:       append([]string{}, r.BankAccounts...),
		PhishingLinks:      append([]string{}, r.PhishingLinks...),
		EmailAddresses:     append([]string{}, r.EmailAddresses...),
		SuspiciousKeywords: append([]string{}, r.SuspiciousKeywords...),
	}
}

func appendMissing(dst []string, add []string) []string {
	seen := make(map[string]bool, len(dst))
	for _, v := range dst {
		seen[v] = true
	}
	for _, v := range add {
		if !seen[v] {
			dst = append(dst, v)
			seen[v] = true
		}
	}
	return dst
}

// normalizeDigits strips everything but digits and folds Indian
// country-code and trunk prefixes so +91-9876543210, 919876543210 and
// 9876543210 compare equal.
func normalizeDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) == 12 && strings.HasPrefix(digits, "91") {
		return digits[2:]
	}
	if len(digits) == 11 && strings.HasPrefix(digits, "0") {
		return digits[1:]
	}
	return digits
}
