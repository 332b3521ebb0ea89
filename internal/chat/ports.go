package chat

import (
	"context"
	"strings"
	"time"
)

type Intent string

const (
	IntentQuotation         Intent = "quotation"
	IntentGeneralInfo       Intent = "general_info"
	IntentHumanHandoff      Intent = "human_handoff"
	IntentLeadCapture       Intent = "lead_capture"
	IntentNegotiationReject Intent = "negotiation_reject"
)

const RoleAssistant = "assistant"

// Turn is one entry of the caller-owned conversation history.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func (t Turn) IsAssistant() bool {
	return strings.EqualFold(strings.TrimSpace(t.Role), RoleAssistant)
}

type Request struct {
	UserID      string `json:"user_id" validate:"required"`
	Message     string `json:"message" validate:"required"`
	Platform    string `json:"platform" validate:"required"`
	ChatHistory []Turn `json:"chat_history"`
}

type Response struct {
	ResponseText     string   `json:"response_text"`
	Intent           Intent   `json:"intent"`
	EstimatedPrice   *string  `json:"estimated_price"`
	ConfidenceScore  float64  `json:"confidence_score"`
	SuggestedActions []string `json:"suggested_actions"`
}

// Exchange is one answered request, kept for audit only.
type Exchange struct {
	RequestID        string
	UserID           string
	Platform         string
	Message          string
	DetectedLanguage string
	Intent           Intent
	ResponseText     string
	SuggestedActions []string
	CreatedAt        time.Time
}

// Notification is sent to operators for leads and handoffs.
type Notification struct {
	UserID       string  `json:"user_id"`
	Platform     string  `json:"platform"`
	Intent       Intent  `json:"intent"`
	Message      string  `json:"message"`
	ResponseText string  `json:"response_text"`
	OfferedPrice *string `json:"offered_price,omitempty"`
}

// Repo persists answered exchanges.
type Repo interface {
	SaveExchange(ctx context.Context, ex *Exchange) error
}

// Outbound delivers operator notifications.
type Outbound interface {
	Notify(ctx context.Context, n Notification) error
}

// Service answers one incoming chat message.
type Service interface {
	HandleIncoming(ctx context.Context, req Request) (Response, error)
}
