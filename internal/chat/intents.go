package chat

// Profile is the fixed confidence and suggested actions attached to a reply.
// These are business constants, not measured signals.
type Profile struct {
	Intent           Intent
	Confidence       float64
	SuggestedActions []string
}

var (
	ProfileQuotation = Profile{
		Intent:           IntentQuotation,
		Confidence:       0.90,
		SuggestedActions: []string{"Book a Call", "Download Rate Card"},
	}
	ProfileGeneralInfo = Profile{
		Intent:           IntentGeneralInfo,
		Confidence:       0.85,
		SuggestedActions: []string{"Ask about Pricing", "View Portfolio"},
	}
	ProfileHumanHandoff = Profile{
		Intent:           IntentHumanHandoff,
		Confidence:       0.20,
		SuggestedActions: []string{"Contact Support"},
	}
	ProfileLeadAccept = Profile{
		Intent:           IntentLeadCapture,
		Confidence:       0.98,
		SuggestedActions: []string{"Finalize Deal"},
	}
	ProfileLeadTentative = Profile{
		Intent:           IntentLeadCapture,
		Confidence:       0.95,
		SuggestedActions: []string{"Provide Email"},
	}
	ProfileNegotiationReject = Profile{
		Intent:           IntentNegotiationReject,
		Confidence:       0.90,
		SuggestedActions: []string{"Adjust Scope", "Accept Standard Rate"},
	}
)

func (p Profile) actions() []string {
	return append([]string(nil), p.SuggestedActions...)
}
