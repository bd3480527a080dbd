// Package patterns holds the immutable matcher tables the detection
// and extraction components are built on: the scam keyword list, the
// nine red-flag trigger categories, and the compiled identifier
// regexes. Everything here is built once at init and never mutated.
package patterns

import "regexp"

// ScamKeywords is the fixed keyword library. Matching is always done
// against casefolded text.
var ScamKeywords = []string{
	// Banking / finance
	"urgent", "blocked", "suspended", "verify", "otp", "kyc", "pan",
	"aadhaar", "account", "bank", "upi", "transfer", "payment",
	"immediately", "click", "link", "update", "expire", "freeze",
	"locked", "compromised", "share", "identity", "security",
	"prevent", "suspension", "digit", "minutes", "hours",
	// Lottery / prize
	"lottery", "prize", "winner", "won", "congratulations", "claim",
	"lakh", "crore", "rupees", "jackpot", "lucky", "draw",
	// Threats
	"police", "arrest", "court", "legal", "case", "crime", "fraud",
	// Offers
	"refund", "cashback", "reward", "bonus", "offer", "limited",
}

// RedFlagCategory identifies one of the nine social-engineering
// indicator categories. Values are stable across turns and releases;
// they appear verbatim in callback payloads.
type RedFlagCategory string

const (
	FlagUrgency          RedFlagCategory = "URGENCY_PRESSURE"
	FlagAuthority        RedFlagCategory = "AUTHORITY_IMPERSONATION"
	FlagFinancialRequest RedFlagCategory = "FINANCIAL_REQUEST"
	FlagPersonalInfo     RedFlagCategory = "PERSONAL_INFO_REQUEST"
	FlagTooGoodToBeTrue  RedFlagCategory = "TOO_GOOD_TO_BE_TRUE"
	FlagThreats          RedFlagCategory = "THREATENING_LANGUAGE"
	FlagSuspiciousLinks  RedFlagCategory = "SUSPICIOUS_LINKS"
	FlagUpfrontPayment   RedFlagCategory = "UPFRONT_PAYMENT"
	FlagSecrecy          RedFlagCategory = "SECRECY_REQUEST"
)

// RedFlagRule couples a category with its human-readable label and
// trigger phrases. Triggers are plain lowercase substrings.
type RedFlagRule struct {
	Category RedFlagCategory
	Label    string
	Triggers []string
}

// RedFlagRules lists every category in a fixed order so reports are
// reproducible run to run.
var RedFlagRules = []RedFlagRule{
	{
		Category: FlagUrgency,
		Label:    "Urgency / pressure tactics",
		Triggers: []string{
			"urgent", "immediately", "act now", "expire", "last chance",
			"right now", "act fast", "hurry", "quick", "limited time",
			"within minutes", "within hours", "today only", "don't delay",
			"minutes", "hours", "seconds",
		},
	},
	{
		Category: FlagAuthority,
		Label:    "Impersonation of authority / institution",
		Triggers: []string{
			"bank", "rbi", "sbi", "government", "police", "court",
			"reserve bank", "income tax", "sebi", "customs", "telecom",
			"officer", "manager", "department", "ministry", "aadhaar",
		},
	},
	{
		Category: FlagFinancialRequest,
		Label:    "Request for money / financial transaction",
		Triggers: []string{
			"send money", "transfer", "pay", "upi", "payment",
			"processing fee", "registration fee", "advance amount",
			"deposit", "invest", "amount", "rupees", "rs.",
		},
	},
	{
		Category: FlagPersonalInfo,
		Label:    "Request for sensitive personal information",
		Triggers: []string{
			"otp", "password", "pin", "cvv", "card number",
			"aadhaar", "pan", "kyc", "verify identity", "share details",
			"bank details", "account number", "login", "credentials",
		},
	},
	{
		Category: FlagTooGoodToBeTrue,
		Label:    "Too-good-to-be-true offer",
		Triggers: []string{
			"lottery", "won", "prize", "congratulations", "winner",
			"guaranteed returns", "double", "triple", "jackpot",
			"lakh", "crore", "free", "lucky draw", "cashback", "reward",
		},
	},
	{
		Category: FlagThreats,
		Label:    "Threatening / fear-based language",
		Triggers: []string{
			"arrest", "court", "legal action", "case filed", "jail",
			"warrant", "crime", "fraud", "suspend", "block", "freeze",
			"locked", "compromised", "terminate", "penalty", "fine",
		},
	},
	{
		Category: FlagSuspiciousLinks,
		Label:    "Contains suspicious links or redirects",
		Triggers: []string{
			"http://", "https://", "www.", "click here", "click link",
			".xyz", ".tk", ".ml", "bit.ly", "tinyurl",
		},
	},
	{
		Category: FlagUpfrontPayment,
		Label:    "Upfront payment required before benefit",
		Triggers: []string{
			"processing fee", "registration fee", "tax amount",
			"claim charge", "advance", "fee before", "pay to receive",
			"pay first", "token amount",
		},
	},
	{
		Category: FlagSecrecy,
		Label:    "Request for secrecy",
		Triggers: []string{
			"don't tell", "keep secret", "confidential", "private",
			"between us", "do not share", "alone",
		},
	},
}

// RedFlagLabel returns the human-readable label for a category, or
// the raw category string if it is unknown.
func RedFlagLabel(cat RedFlagCategory) string {
	for _, rule := range RedFlagRules {
		if rule.Category == cat {
			return rule.Label
		}
	}
	return string(cat)
}

// PrizeKeywords and AmountRE drive the lottery+amount detection layer:
// a prize-class word co-occurring with a currency amount or an Indian
// magnitude word in the same message.
var PrizeKeywords = []string{"lottery", "prize", "winner", "won", "jackpot", "lucky draw", "congratulations"}

var AmountRE = regexp.MustCompile(`(?i)(?:₹|rs\.?|inr)\s*[\d,]+|\b\d+\s*(?:lakh|lakhs|crore|crores)\b|\b(?:lakh|crore)\b`)

// UrgencyKeywords and FinanceKeywords drive the urgency+finance layer.
var (
	UrgencyKeywords = []string{"immediately", "urgent", "expire", "hurry", "right now", "act now", "within hours", "within minutes", "last chance"}
	FinanceKeywords = []string{"account", "payment", "transfer", "upi", "bank", "kyc", "otp", "card"}
)

// Identifier extraction patterns. Phone-shaped tokens are claimed
// before bank accounts; extraction code relies on that precedence.
var (
	UPIRE     = regexp.MustCompile(`[a-zA-Z0-9._-]+@[a-zA-Z][a-zA-Z0-9]*`)
	PhoneRE   = regexp.MustCompile(`\+91[\s-]?\d{10}\b|\b\d{10}\b`)
	URLRE     = regexp.MustCompile(`(?i)https?://[^\s]+|www\.[^\s]+`)
	AccountRE = regexp.MustCompile(`\b\d{9,18}\b`)
	EmailRE   = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
)

// KnownUPIHandles are payment-provider handle suffixes accepted even
// when the token would otherwise look ambiguous.
var KnownUPIHandles = map[string]bool{
	"paytm": true, "ybl": true, "upi": true, "oksbi": true,
	"okicici": true, "okhdfcbank": true, "okaxis": true,
	"gpay": true, "phonepe": true, "apl": true, "axl": true,
	"ibl": true, "sbi": true,
}

// ShortenerRE matches bare link-shortener tokens that carry no scheme.
var ShortenerRE = regexp.MustCompile(`(?i)\b(?:bit\.ly|tinyurl\.com|t\.co|goo\.gl|cutt\.ly|rb\.gy|is\.gd|tiny\.cc)/[^\s]+`)
