// Package intel pulls typed identifiers out of scammer messages: UPI
// ids, phone numbers, bank accounts, phishing links, email addresses,
// and scam-library keyword hits. Extraction is per message; the
// session accumulates results by union-merging records.
package intel

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/scambait/honeypot/internal/patterns"
	"github.com/scambait/honeypot/pkg/logging"
)

var extractorTracer = otel.Tracer("honeypot/intel-extractor")

// Extractor extracts a per-message Record from raw text.
type Extractor struct {
	logger *logging.Logger
}

// NewExtractor builds an extractor.
func NewExtractor(logger *logging.Logger) *Extractor {
	if logger == nil {
		logger = logging.Default()
	}
	return &Extractor{logger: logger}
}

// Extract runs every extraction layer over the message and returns
// the per-message record, not yet merged into any session. Layers are
// fault-isolated: a panic in one layer is logged and skipped without
// aborting the others. Ordering matters — emails are claimed before
// UPI ids, and phone-shaped tokens before bank accounts.
func (e *Extractor) Extract(ctx context.Context, text string) *Record {
	_, span := extractorTracer.Start(ctx, "intel.extract")
	defer span.End()

	rec := NewRecord()
	if strings.TrimSpace(text) == "" {
		return rec
	}

	e.runLayer("email", func() { e.extractEmails(text, rec) })
	e.runLayer("upi", func() { e.extractUPIIDs(text, rec) })
	e.runLayer("phone", func() { e.extractPhones(text, rec) })
	e.runLayer("url", func() { e.extractURLs(text, rec) })
	e.runLayer("account", func() { e.extractAccounts(text, rec) })
	e.runLayer("keyword", func() { e.extractKeywords(text, rec) })

	span.SetAttributes(
		attribute.Int("intel.identifiers", rec.IdentifierCount()),
		attribute.Int("intel.keywords", len(rec.SuspiciousKeywords)),
	)
	return rec
}

// runLayer confines a panicking matcher to its own layer.
func (e *Extractor) runLayer(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("extraction layer panicked, skipping", "layer", name, "panic", r)
		}
	}()
	fn()
}

func (e *Extractor) extractEmails(text string, rec *Record) {
	for _, match := range patterns.EmailRE.FindAllString(text, -1) {
		rec.EmailAddresses = appendMissing(rec.EmailAddresses, []string{strings.ToLower(match)})
	}
}

// extractUPIIDs claims localpart@handle tokens. Tokens already inside
// an email address are skipped so the UPI matcher never eats email
// fragments; the handle must be a known payment provider or a plain
// alphanumeric handle.
func (e *Extractor) extractUPIIDs(text string, rec *Record) {
	for _, match := range patterns.UPIRE.FindAllString(text, -1) {
		candidate := strings.ToLower(match)
		if e.insideEmail(candidate, rec.EmailAddresses) {
			continue
		}
		at := strings.LastIndex(candidate, "@")
		if at < 1 {
			continue
		}
		handle := candidate[at+1:]
		if !patterns.KnownUPIHandles[handle] && len(handle) < 3 {
			continue
		}
		rec.UPIIDs = appendMissing(rec.UPIIDs, []string{candidate})
	}
}

func (e *Extractor) insideEmail(candidate string, emails []string) bool {
	for _, email := range emails {
		if strings.Contains(email, candidate) {
			return true
		}
	}
	return false
}

func (e *Extractor) extractPhones(text string, rec *Record) {
	for _, match := range patterns.PhoneRE.FindAllString(text, -1) {
		rec.PhoneNumbers = appendMissing(rec.PhoneNumbers, []string{normalizeDigits(match)})
	}
}

func (e *Extractor) extractURLs(text string, rec *Record) {
	matches := patterns.URLRE.FindAllString(text, -1)
	matches = append(matches, patterns.ShortenerRE.FindAllString(text, -1)...)
	for _, match := range matches {
		clean := strings.ToLower(strings.TrimRight(match, ".,;:!?)"))
		rec.PhishingLinks = appendMissing(rec.PhishingLinks, []string{clean})
	}
}

// extractAccounts claims long numeric sequences not already taken by
// the phone layer. Phone-shaped tokens win; a bare 10-digit token is
// always a phone number, never an account.
func (e *Extractor) extractAccounts(text string, rec *Record) {
	claimed := make(map[string]bool, len(rec.PhoneNumbers)*2)
	for _, phone := range rec.PhoneNumbers {
		claimed[phone] = true
		if len(phone) > 10 {
			claimed[phone[len(phone)-10:]] = true
		}
	}
	for _, match := range patterns.AccountRE.FindAllString(text, -1) {
		digits := normalizeDigits(match)
		if len(digits) == 10 {
			// phone precedence
			continue
		}
		if claimed[digits] || (len(digits) > 10 && claimed[digits[len(digits)-10:]]) {
			continue
		}
		rec.BankAccounts = appendMissing(rec.BankAccounts, []string{digits})
	}
}

func (e *Extractor) extractKeywords(text string, rec *Record) {
	lower := strings.ToLower(text)
	for _, kw := range patterns.ScamKeywords {
		if strings.Contains(lower, kw) {
			rec.SuspiciousKeywords = appendMissing(rec.SuspiciousKeywords, []string{kw})
		}
	}
}
