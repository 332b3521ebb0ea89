package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/Vovarama1992/quote-agent/internal/apperr"
)

type Outcome string

const (
	OutcomeAcceptImmediate   Outcome = "accept_immediate"
	OutcomeTentativeApproval Outcome = "tentative_approval"
	OutcomeRejectLowball     Outcome = "reject_lowball"
	OutcomeUnparseable       Outcome = "unparseable"
)

// NegotiationDecision is the verdict on a single counter-offer.
// UserOfferedPrice is nil when the offer was unparseable; CounterFloor is set
// only for OutcomeRejectLowball.
type NegotiationDecision struct {
	Outcome          Outcome
	UserOfferedPrice *decimal.Decimal
	ReferencePrice   decimal.Decimal
	DiscountFraction decimal.Decimal
	CounterFloor     *decimal.Decimal
}

// EvaluateOffer classifies the first number in userMessage against
// referencePrice. It fails with apperr.KindInvalidReferencePrice when
// referencePrice is not positive.
func EvaluateOffer(userMessage string, referencePrice decimal.Decimal, cfg *PricingConfiguration) (NegotiationDecision, error) {
	if !referencePrice.IsPositive() {
		return NegotiationDecision{}, apperr.InvalidReferencePrice("reference price must be positive").
			WithOp("pricing.EvaluateOffer").
			WithDetails(referencePrice.String())
	}

	decision := NegotiationDecision{ReferencePrice: referencePrice}

	offer, ok := ExtractOffer(userMessage)
	if !ok {
		decision.Outcome = OutcomeUnparseable
		return decision, nil
	}
	decision.UserOfferedPrice = &offer
	decision.DiscountFraction = decimal.NewFromInt(1).Sub(offer.Div(referencePrice))

	maxDiscount, floorFraction := DefaultMaxDiscountFraction, DefaultLowballFloorFraction
	if cfg != nil {
		maxDiscount, floorFraction = cfg.MaxDiscountFraction, cfg.LowballFloorFraction
	}

	// 1 - offer/ref <= max  <=>  offer >= ref*(1-max) for ref > 0. The
	// multiplied form keeps the boundary exact.
	tolerated := referencePrice.Mul(decimal.NewFromInt(1).Sub(maxDiscount))

	switch {
	case offer.GreaterThanOrEqual(referencePrice):
		decision.Outcome = OutcomeAcceptImmediate
	case offer.GreaterThanOrEqual(tolerated):
		decision.Outcome = OutcomeTentativeApproval
	default:
		decision.Outcome = OutcomeRejectLowball
		floor := referencePrice.Mul(floorFraction)
		decision.CounterFloor = &floor
	}

	return decision, nil
}
