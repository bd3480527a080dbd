// Package detection evaluates inbound scammer messages: a four-layer
// scam detector and the red-flag category identifier. Both are pure
// functions over message text plus immutable pattern tables, so the
// same message always yields the same result.
package detection

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/scambait/honeypot/internal/patterns"
	"github.com/scambait/honeypot/pkg/logging"
)

var detectorTracer = otel.Tracer("honeypot/scam-detector")

// Layer identifies one of the independent detection signal layers.
type Layer string

const (
	LayerLotteryAmount  Layer = "lottery_amount"
	LayerUrgencyFinance Layer = "urgency_finance"
	LayerKeywordDensity Layer = "keyword_density"
	LayerMultiSignal    Layer = "multi_signal"
)

// Result is the outcome of one detection pass. Evidence retains every
// layer that fired, never suppressed by another layer firing first.
type Result struct {
	IsScam      bool
	Evidence    []Layer
	KeywordHits []string
}

// Detector runs the four detection layers over a message.
type Detector struct {
	logger           *logging.Logger
	densityThreshold int
}

// NewDetector builds a detector. densityThreshold is the number of
// distinct keyword-library hits that fires the density layer; values
// below 1 fall back to 2.
func NewDetector(logger *logging.Logger, densityThreshold int) *Detector {
	if logger == nil {
		logger = logging.Default()
	}
	if densityThreshold < 1 {
		densityThreshold = 2
	}
	return &Detector{logger: logger, densityThreshold: densityThreshold}
}

// Detect evaluates the message against all four layers and ORs them.
// Empty or malformed input is a valid non-scam outcome, never an error.
func (d *Detector) Detect(ctx context.Context, text string) Result {
	_, span := detectorTracer.Start(ctx, "detection.detect")
	defer span.End()

	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return Result{}
	}

	res := Result{KeywordHits: KeywordHits(lower)}

	if containsAny(lower, patterns.PrizeKeywords) && patterns.AmountRE.MatchString(text) {
		res.Evidence = append(res.Evidence, LayerLotteryAmount)
	}
	if containsAny(lower, patterns.UrgencyKeywords) && containsAny(lower, patterns.FinanceKeywords) {
		res.Evidence = append(res.Evidence, LayerUrgencyFinance)
	}
	if len(res.KeywordHits) >= d.densityThreshold {
		res.Evidence = append(res.Evidence, LayerKeywordDensity)
	}
	// Multi-signal: two or more red-flag categories on one message is
	// scam-shaped even when no dedicated keyword appears.
	if len(IdentifyRedFlags(text)) >= 2 {
		res.Evidence = append(res.Evidence, LayerMultiSignal)
	}

	res.IsScam = len(res.Evidence) > 0

	span.SetAttributes(
		attribute.Bool("detection.is_scam", res.IsScam),
		attribute.Int("detection.layers_fired", len(res.Evidence)),
		attribute.Int("detection.keyword_hits", len(res.KeywordHits)),
	)
	if res.IsScam {
		d.logger.Debug("scam signals detected",
			"layers", res.Evidence,
			"keyword_hits", len(res.KeywordHits),
		)
	}
	return res
}

// KeywordHits returns the distinct scam-library keywords present in
// the already-lowercased text, in library order.
func KeywordHits(lower string) []string {
	var hits []string
	for _, kw := range patterns.ScamKeywords {
		if strings.Contains(lower, kw) {
			hits = append(hits, kw)
		}
	}
	return hits
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
