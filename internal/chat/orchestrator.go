package chat

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/Vovarama1992/quote-agent/internal/knowledge"
	"github.com/Vovarama1992/quote-agent/internal/logger"
	"github.com/Vovarama1992/quote-agent/internal/pricing"
)

// KnowledgeBase is the general-question lookup.
type KnowledgeBase interface {
	Lookup(query string) (knowledge.Record, bool)
}

// Reply is the English answer chosen for one message.
type Reply struct {
	Text           string
	Profile        Profile
	EstimatedPrice *string
	Negotiation    *pricing.NegotiationDecision
}

// Orchestrator picks the reply for a normalized message: negotiation when the
// previous assistant turn quoted a price, then quote, then knowledge lookup,
// then handoff.
type Orchestrator struct {
	pricing      *pricing.PricingConfiguration
	kb           KnowledgeBase
	handoffEmail string
	log          *logger.Logger
}

func NewOrchestrator(cfg *pricing.PricingConfiguration, kb KnowledgeBase, handoffEmail string, log *logger.Logger) *Orchestrator {
	if cfg == nil {
		cfg = &pricing.PricingConfiguration{
			MaxDiscountFraction:  pricing.DefaultMaxDiscountFraction,
			LowballFloorFraction: pricing.DefaultLowballFloorFraction,
		}
	}
	if kb == nil {
		kb = knowledge.New(nil)
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Orchestrator{pricing: cfg, kb: kb, handoffEmail: handoffEmail, log: log}
}

func (o *Orchestrator) Decide(message string, history []Turn) Reply {
	if r, ok := o.negotiate(message, history); ok {
		return r
	}

	if q, ok := pricing.ComputeQuote(message, o.pricing); ok {
		price := q.PriceRange()
		return Reply{
			Text:           q.Render(o.pricing.Disclaimer),
			Profile:        ProfileQuotation,
			EstimatedPrice: &price,
		}
	}

	if rec, ok := o.kb.Lookup(message); ok {
		return Reply{Text: rec.Answer, Profile: ProfileGeneralInfo}
	}

	return Reply{
		Text: fmt.Sprintf(
			"I'm not sure about that specific detail. Let me connect you with a human expert at %s.",
			o.handoffEmail,
		),
		Profile: ProfileHumanHandoff,
	}
}

func (o *Orchestrator) negotiate(message string, history []Turn) (Reply, bool) {
	if !containsDigit(message) {
		return Reply{}, false
	}
	ref, ok := ReferencePrice(history)
	if !ok {
		return Reply{}, false
	}

	d, err := pricing.EvaluateOffer(message, ref, o.pricing)
	if err != nil {
		o.log.Debug("negotiation abandoned", "error", err)
		return Reply{}, false
	}

	var offered string
	if d.UserOfferedPrice != nil {
		offered = pricing.FormatAmount(*d.UserOfferedPrice)
	}
	// The quoted price must be the first "$" token; the next turn reads it back
	// as the reference.
	quoted := fmt.Sprintf("Our quote for this scope is %s. ", pricing.FormatAmount(ref))

	switch d.Outcome {
	case pricing.OutcomeAcceptImmediate:
		return Reply{
			Text:        quoted + fmt.Sprintf("Great news! We can move forward at %s. Let's finalize the deal.", offered),
			Profile:     ProfileLeadAccept,
			Negotiation: &d,
		}, true
	case pricing.OutcomeTentativeApproval:
		return Reply{
			Text: quoted + fmt.Sprintf(
				"We can tentatively accept %s, pending approval from our manager. Please share your email so we can send the revised proposal.",
				offered,
			),
			Profile:     ProfileLeadTentative,
			Negotiation: &d,
		}, true
	case pricing.OutcomeRejectLowball:
		return Reply{
			Text: quoted + fmt.Sprintf(
				"Unfortunately %s is below what we can offer for this scope. The lowest we can go is %s. We can also adjust the scope to fit your budget.",
				offered, pricing.FormatAmount(roundFloor(*d.CounterFloor)),
			),
			Profile:     ProfileNegotiationReject,
			Negotiation: &d,
		}, true
	default:
		return Reply{}, false
	}
}

// ReferencePrice recovers the last quoted price from history: the most recent
// turn must be an assistant turn containing "$<digits>". Negotiation replies
// open with the quoted price, so it survives any number of counter-offers.
func ReferencePrice(history []Turn) (decimal.Decimal, bool) {
	if len(history) == 0 {
		return decimal.Zero, false
	}
	last := history[len(history)-1]
	if !last.IsAssistant() || !strings.Contains(last.Content, "$") {
		return decimal.Zero, false
	}
	return pricing.ExtractReferencePrice(last.Content)
}

func containsDigit(s string) bool {
	return strings.IndexFunc(s, unicode.IsDigit) >= 0
}

// roundFloor keeps cents when the floor is fractional.
func roundFloor(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
