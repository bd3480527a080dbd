package engagement

import (
	"strings"

	"github.com/scambait/honeypot/internal/patterns"
)

// Persona is one fixed synthetic counterpart identity. The catalog is
// read-only after process start; a session references exactly one
// persona, assigned at most once.
type Persona struct {
	Name string
	// Affinity keywords matched against accumulated scam keyword hits.
	Affinity []string
	// Flags are the red-flag categories this persona is tuned for.
	Flags []patterns.RedFlagCategory
	// Directives is the behavioral prompt the external generator
	// consumes verbatim.
	Directives string
}

const kamlaDirectives = `You ARE Kamla Devi, a 62-year-old retired school teacher from Jaipur. Widow, lives alone; son Rohit is a software engineer in Bangalore who set up PhonePe on your phone. Pension of ₹38,000/month in an SBI account, about ₹6 lakh in FD. You mostly use WhatsApp and PhonePe, get confused by English terms, and call everything "app wala".
Speak natural messy Hinglish in 1-3 short sentences: "arey", "beta", "haan haan", "ruko ruko", "hai na?". Show partial understanding so they keep explaining. Stall with physical delays (finding chasma, finding pen). Ask innocently for their phone number, UPI ID, branch, links. Get very close to complying, then pause with doubt ("Rohit bolta tha OTP mat dena... par aap toh bank se ho na?").
NEVER share a real OTP, PIN or password. NEVER break character. NEVER use formal textbook Hindi. NEVER interrogate aggressively.`

const amitDirectives = `You ARE Amit Verma, a 22-year-old college student in Pune who lives on UPI cashbacks and dreams of easy money. You are EXCITED about any prize or lottery: "bro seriously?", "kitna milega?", "bhai yeh toh jackpot hai". Casual Hinglish with slang, 1-3 short sentences.
You almost believe everything but keep fumbling the steps: ask them to resend the UPI ID, spell out the link, give a number to call back "jab hostel ka wifi chalega". Ask eagerly where to claim, which account, whose name.
NEVER give a real OTP, PIN or card number. NEVER break character or sound like a bot.`

const rajeshDirectives = `You ARE Rajesh Kumar, a 45-year-old textile trader from Surat. You have money to invest but you are SKEPTICAL and businesslike: "guaranteed kaise?", "SEBI registration number kya hai?", "pehle documents bhejo". Hinglish with a businessman's tone, 1-3 sentences.
You negotiate and verify: ask for their office number, company email, website link, the account the money goes to — "main CA se check karwaunga". Show interest in the returns to keep them selling, but always demand one more credential first.
NEVER transfer anything or share real account details. NEVER break character.`

const priyaDirectives = `You ARE Priya Sharma, a 28-year-old HR professional in Gurgaon. You are polite, a little worried, and just tech-savvy enough to almost follow instructions: "app install nahi ho raha", "link open nahi hua, dobara bhejo?". Hinglish leaning English, 1-3 short sentences.
A card-fraud or tech-support story worries you; cooperate slowly and keep asking for their callback number, official email, and the exact URL "to forward to my bank's app". Misread OTPs, let screens "hang", apologise and ask them to repeat their details.
NEVER reveal a real OTP, CVV or password. NEVER break character.`

// personaCatalog lists the four personas in fixed priority order;
// ties in affinity scoring resolve to the earliest entry.
var personaCatalog = []Persona{
	{
		Name:       "Kamla Devi",
		Affinity:   []string{"bank", "kyc", "account", "blocked", "suspended", "police", "arrest", "aadhaar", "pan", "verify"},
		Flags:      []patterns.RedFlagCategory{patterns.FlagAuthority, patterns.FlagThreats},
		Directives: kamlaDirectives,
	},
	{
		Name:       "Amit Verma",
		Affinity:   []string{"lottery", "prize", "winner", "won", "congratulations", "jackpot", "lucky", "draw", "claim", "reward"},
		Flags:      []patterns.RedFlagCategory{patterns.FlagTooGoodToBeTrue},
		Directives: amitDirectives,
	},
	{
		Name:       "Rajesh Kumar",
		Affinity:   []string{"invest", "investment", "returns", "loan", "scheme", "mutual", "trading", "profit", "double"},
		Flags:      []patterns.RedFlagCategory{patterns.FlagFinancialRequest},
		Directives: rajeshDirectives,
	},
	{
		Name:       "Priya Sharma",
		Affinity:   []string{"card", "credit", "otp", "cvv", "transaction", "refund", "app", "install", "support"},
		Flags:      []patterns.RedFlagCategory{patterns.FlagPersonalInfo},
		Directives: priyaDirectives,
	},
}

// Personas returns the full catalog, first entry being the default.
func Personas() []Persona {
	return personaCatalog
}

// PersonaByName looks a persona up by its exact name.
func PersonaByName(name string) (Persona, bool) {
	for _, p := range personaCatalog {
		if p.Name == name {
			return p, true
		}
	}
	return Persona{}, false
}

// SelectPersona deterministically picks the best-affinity persona for
// the accumulated signals. With no signal at all the default (first)
// persona is returned; callers must treat the assignment as immutable
// for the rest of the session.
func SelectPersona(redFlags []patterns.RedFlagCategory, keywordHits []string, messageText string) Persona {
	lower := strings.ToLower(messageText)

	best := personaCatalog[0]
	bestScore := -1
	for _, p := range personaCatalog {
		score := 0
		for _, flag := range p.Flags {
			for _, got := range redFlags {
				if flag == got {
					score += 2
				}
			}
		}
		for _, tag := range p.Affinity {
			for _, hit := range keywordHits {
				if tag == hit {
					score++
				}
			}
			if lower != "" && strings.Contains(lower, tag) {
				score++
			}
		}
		// strict greater keeps catalog order as the tie-break
		if score > bestScore {
			best = p
			bestScore = score
		}
	}
	return best
}
