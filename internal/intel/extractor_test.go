package intel

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_UPI(t *testing.T) {
	e := NewExtractor(nil)
	rec := e.Extract(context.Background(), "Send Rs.500 to scam123@paytm for verification")
	assert.Equal(t, []string{"scam123@paytm"}, rec.UPIIDs)
}

func TestExtract_UPINotEatenByEmail(t *testing.T) {
	e := NewExtractor(nil)
	rec := e.Extract(context.Background(), "Mail me at officer99@gmail.com and pay to officer99@okicici")
	assert.Equal(t, []string{"officer99@gmail.com"}, rec.EmailAddresses)
	assert.Equal(t, []string{"officer99@okicici"}, rec.UPIIDs)
}

func TestExtract_PhoneNormalization(t *testing.T) {
	e := NewExtractor(nil)

	tests := []struct {
		name string
		text string
		want string
	}{
		{"bare ten digits", "call 9876543210 now", "9876543210"},
		{"country code with space", "call +91 9876543210 now", "9876543210"},
		{"country code with dash", "call +91-9876543210 now", "9876543210"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := e.Extract(context.Background(), tt.text)
			require.Len(t, rec.PhoneNumbers, 1)
			assert.Equal(t, tt.want, rec.PhoneNumbers[0])
		})
	}
}

func TestExtract_PhonePrecedenceOverAccount(t *testing.T) {
	e := NewExtractor(nil)
	rec := e.Extract(context.Background(), "transfer to account 123456789012345, confirm on 9876543210")

	assert.Equal(t, []string{"9876543210"}, rec.PhoneNumbers)
	assert.Equal(t, []string{"123456789012345"}, rec.BankAccounts)
}

func TestExtract_TenDigitTokenNeverAnAccount(t *testing.T) {
	e := NewExtractor(nil)
	rec := e.Extract(context.Background(), "my number 9876543210")
	assert.Empty(t, rec.BankAccounts)
	assert.Equal(t, []string{"9876543210"}, rec.PhoneNumbers)
}

func TestExtract_URLs(t *testing.T) {
	e := NewExtractor(nil)
	rec := e.Extract(context.Background(), "Click https://secure-sbi-verify.com/kyc?token=abc123, or WWW.Fake-Bank.in, or bit.ly/prize-now.")

	assert.Contains(t, rec.PhishingLinks, "https://secure-sbi-verify.com/kyc?token=abc123")
	assert.Contains(t, rec.PhishingLinks, "www.fake-bank.in")
	assert.Contains(t, rec.PhishingLinks, "bit.ly/prize-now")
}

func TestExtract_Email(t *testing.T) {
	e := NewExtractor(nil)
	rec := e.Extract(context.Background(), "send documents to Refund.Desk@Fake-Bank.co.in please")
	assert.Equal(t, []string{"refund.desk@fake-bank.co.in"}, rec.EmailAddresses)
}

func TestExtract_Keywords(t *testing.T) {
	e := NewExtractor(nil)
	rec := e.Extract(context.Background(), "Update KYC immediately or account blocked")

	assert.Contains(t, rec.SuspiciousKeywords, "kyc")
	assert.Contains(t, rec.SuspiciousKeywords, "immediately")
	assert.Contains(t, rec.SuspiciousKeywords, "account")
	assert.Contains(t, rec.SuspiciousKeywords, "blocked")
}

func TestExtract_EmptyAndPathologicalInput(t *testing.T) {
	e := NewExtractor(nil)

	for _, text := range []string{"", "   ", strings.Repeat("9", 5000), strings.Repeat("a@b ", 2000)} {
		rec := e.Extract(context.Background(), text)
		assert.NotNil(t, rec)
	}
}

func TestMerge_DedupAcrossFormats(t *testing.T) {
	e := NewExtractor(nil)
	session := NewRecord()

	session.Merge(e.Extract(context.Background(), "call 9876543210"))
	session.Merge(e.Extract(context.Background(), "call +91 9876543210"))
	session.Merge(e.Extract(context.Background(), "call +91-9876543210 again"))

	assert.Equal(t, []string{"9876543210"}, session.PhoneNumbers)
}

func TestMerge_Idempotent(t *testing.T) {
	e := NewExtractor(nil)
	session := NewRecord()

	msg := "pay to fraud@ybl, visit http://evil.example, mail scam@evil.example, account 123456789012, call 9876543210"
	perMessage := e.Extract(context.Background(), msg)
	session.Merge(perMessage)
	before := session.Clone()
	session.Merge(perMessage)
	session.Merge(e.Extract(context.Background(), msg))

	assert.Equal(t, before, session.Clone())
}

func TestMerge_MonotonicGrowth(t *testing.T) {
	e := NewExtractor(nil)
	session := NewRecord()

	session.Merge(e.Extract(context.Background(), "pay to fraud@ybl"))
	assert.Len(t, session.UPIIDs, 1)

	// A benign message never shrinks anything.
	session.Merge(e.Extract(context.Background(), "ok thank you"))
	assert.Len(t, session.UPIIDs, 1)

	session.Merge(e.Extract(context.Background(), "also second@paytm"))
	assert.Equal(t, []string{"fraud@ybl", "second@paytm"}, session.UPIIDs)
}

func TestCompletenessAndMissing(t *testing.T) {
	e := NewExtractor(nil)
	session := NewRecord()

	assert.False(t, session.Complete())
	assert.Equal(t, []string{"phone number", "UPI ID", "email address", "website link", "bank account number"}, session.Missing())

	session.Merge(e.Extract(context.Background(), "call 9876543210, pay fraud@ybl"))
	assert.Equal(t, []string{"email address", "website link", "bank account number"}, session.Missing())

	session.Merge(e.Extract(context.Background(), "mail x@y.com, open http://evil.example, account 123456789012"))
	assert.True(t, session.Complete())
	assert.Empty(t, session.Missing())
}

func TestRecordJSONFieldsNeverNull(t *testing.T) {
	rec := NewRecord()
	assert.NotNil(t, rec.UPIIDs)
	assert.NotNil(t, rec.SuspiciousKeywords)
	clone := rec.Clone()
	assert.NotNil(t, clone.PhoneNumbers)
}
