package detection

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scambait/honeypot/internal/patterns"
)

func TestDetector_Detect(t *testing.T) {
	detector := NewDetector(nil, 2)
	ctx := context.Background()

	tests := []struct {
		name       string
		message    string
		wantScam   bool
		wantLayers []Layer
	}{
		{
			name:       "lottery with amount",
			message:    "Congratulations! You won Rs.25 lakh lottery",
			wantScam:   true,
			wantLayers: []Layer{LayerLotteryAmount},
		},
		{
			name:       "urgency plus finance",
			message:    "Your account will expire, act immediately",
			wantScam:   true,
			wantLayers: []Layer{LayerUrgencyFinance},
		},
		{
			name:     "keyword density",
			message:  "share your otp for kyc verification",
			wantScam: true,
		},
		{
			name:     "multi signal without scam keywords",
			message:  "Main manager bol raha hoon, keep this between us",
			wantScam: true,
		},
		{
			name:     "benign greeting",
			message:  "hello, good morning, how are you today",
			wantScam: false,
		},
		{
			name:     "empty input",
			message:  "",
			wantScam: false,
		},
		{
			name:     "whitespace only",
			message:  "   \t\n ",
			wantScam: false,
		},
		{
			name:     "mixed case tolerated",
			message:  "URGENT: your ACCOUNT payment pending",
			wantScam: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := detector.Detect(ctx, tt.message)
			assert.Equal(t, tt.wantScam, res.IsScam)
			for _, layer := range tt.wantLayers {
				assert.Contains(t, res.Evidence, layer)
			}
			if !tt.wantScam {
				assert.Empty(t, res.Evidence)
			}
		})
	}
}

func TestDetector_EvidenceNotSuppressed(t *testing.T) {
	detector := NewDetector(nil, 2)

	// Fires the lottery layer, the density layer, and the multi-signal
	// layer at once; all three must be retained as evidence.
	res := detector.Detect(context.Background(), "Congratulations you won Rs.50 lakh lottery, pay processing fee immediately")
	assert.True(t, res.IsScam)
	assert.Contains(t, res.Evidence, LayerLotteryAmount)
	assert.Contains(t, res.Evidence, LayerKeywordDensity)
	assert.Contains(t, res.Evidence, LayerMultiSignal)
}

func TestDetector_DensityThresholdConfigurable(t *testing.T) {
	strict := NewDetector(nil, 5)
	res := strict.Detect(context.Background(), "verify otp")
	assert.NotContains(t, res.Evidence, LayerKeywordDensity)

	loose := NewDetector(nil, 1)
	res = loose.Detect(context.Background(), "verify this")
	assert.Contains(t, res.Evidence, LayerKeywordDensity)
}

func TestDetector_BankKYCScenario(t *testing.T) {
	detector := NewDetector(nil, 2)
	res := detector.Detect(context.Background(), "Your SBI account will be blocked! Update KYC immediately or call 9876543210")
	assert.True(t, res.IsScam)
}

func TestIdentifyRedFlags(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    []patterns.RedFlagCategory
		absent  []patterns.RedFlagCategory
	}{
		{
			name:    "kyc block message",
			message: "Your SBI account will be blocked! Update KYC immediately or call 9876543210",
			want: []patterns.RedFlagCategory{
				patterns.FlagUrgency,
				patterns.FlagAuthority,
				patterns.FlagPersonalInfo,
				patterns.FlagThreats,
			},
		},
		{
			name:    "lottery prize",
			message: "Congratulations! You won a lottery of 50 lakh. Pay registration fee first.",
			want: []patterns.RedFlagCategory{
				patterns.FlagTooGoodToBeTrue,
				patterns.FlagUpfrontPayment,
			},
			absent: []patterns.RedFlagCategory{patterns.FlagSecrecy},
		},
		{
			name:    "secrecy and link",
			message: "Keep secret, click here https://bit.ly/x",
			want: []patterns.RedFlagCategory{
				patterns.FlagSecrecy,
				patterns.FlagSuspiciousLinks,
			},
		},
		{
			name:    "no flags",
			message: "good morning ji",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags := IdentifyRedFlags(tt.message)
			for _, want := range tt.want {
				assert.Contains(t, flags, want)
			}
			for _, absent := range tt.absent {
				assert.NotContains(t, flags, absent)
			}
			if tt.want == nil {
				assert.Empty(t, flags)
			}
		})
	}
}

func TestIdentifyRedFlagsDetailed_MatchesSimpleMode(t *testing.T) {
	messages := []string{
		"Your SBI account will be blocked! Update KYC immediately",
		"Congratulations you won lakh prize, don't tell anyone",
		"plain harmless text",
		"",
	}

	for _, msg := range messages {
		simple := IdentifyRedFlags(msg)
		detailed := IdentifyRedFlagsDetailed(msg)

		assert.Len(t, detailed, len(simple))
		for i, match := range detailed {
			assert.Equal(t, simple[i], match.Category)
			assert.NotEmpty(t, match.Matched)
			assert.NotEmpty(t, match.Label)
		}
	}
}
