package chat

import (
	"context"
	"strings"
	"time"

	"github.com/Vovarama1992/quote-agent/internal/apperr"
	"github.com/Vovarama1992/quote-agent/internal/language"
	"github.com/Vovarama1992/quote-agent/internal/logger"
	"github.com/Vovarama1992/quote-agent/internal/metrics"
	"github.com/Vovarama1992/quote-agent/internal/pricing"
	"github.com/Vovarama1992/quote-agent/internal/validator"
)

// sideEffectTimeout bounds the transcript save and the operator webhook so a
// slow store or endpoint cannot hold the reply.
const sideEffectTimeout = 2 * time.Second

type service struct {
	orchestrator *Orchestrator
	translator   language.Translator
	repo         Repo
	outbound     Outbound
	validator    *validator.Validator
	metrics      *metrics.Metrics
	log          *logger.Logger
	now          func() time.Time

	sideEffectTimeout time.Duration
}

type Deps struct {
	Orchestrator *Orchestrator
	Translator   language.Translator
	Repo         Repo     // optional
	Outbound     Outbound // optional
	Validator    *validator.Validator
	Metrics      *metrics.Metrics
	Log          *logger.Logger
}

func NewService(d Deps) Service {
	if d.Translator == nil {
		d.Translator = language.Identity()
	}
	if d.Repo == nil {
		d.Repo = NopRepo{}
	}
	if d.Outbound == nil {
		d.Outbound = NopOutbound{}
	}
	if d.Validator == nil {
		d.Validator = validator.New()
	}
	if d.Log == nil {
		d.Log = logger.Nop()
	}
	return &service{
		orchestrator: d.Orchestrator,
		translator:   d.Translator,
		repo:         d.Repo,
		outbound:     d.Outbound,
		validator:    d.Validator,
		metrics:      d.Metrics,
		log:          d.Log,
		now:          time.Now,

		sideEffectTimeout: sideEffectTimeout,
	}
}

func (s *service) HandleIncoming(ctx context.Context, req Request) (Response, error) {
	if err := s.validator.Struct(req); err != nil {
		return Response{}, apperr.Validation("missing or invalid fields").
			WithOp("chat.HandleIncoming").
			WithDetails(s.validator.Fields(err))
	}

	ctx = context.WithValue(ctx, logger.UserIDKey, req.UserID)
	log := s.log.WithContext(ctx)

	normalized := s.translator.Normalize(ctx, req.Message)
	reply := s.orchestrator.Decide(normalized.EnglishQuery, req.ChatHistory)

	text := s.translator.Localize(ctx, reply.Text, normalized.DetectedLanguage)

	resp := Response{
		ResponseText:     text,
		Intent:           reply.Profile.Intent,
		EstimatedPrice:   reply.EstimatedPrice,
		ConfidenceScore:  reply.Profile.Confidence,
		SuggestedActions: reply.Profile.actions(),
	}

	log.Info("chat answered",
		"platform", req.Platform,
		"language", normalized.DetectedLanguage,
		"intent", resp.Intent,
	)
	s.metrics.ObserveIntent(string(resp.Intent))
	if reply.Negotiation != nil {
		s.metrics.ObserveNegotiation(string(reply.Negotiation.Outcome))
	}

	s.record(ctx, req, normalized, resp)
	s.notify(ctx, req, reply, resp)

	return resp, nil
}

func (s *service) record(ctx context.Context, req Request, n language.Normalized, resp Response) {
	requestID, _ := ctx.Value(logger.RequestIDKey).(string)

	ctx, cancel := context.WithTimeout(ctx, s.sideEffectTimeout)
	defer cancel()

	err := s.repo.SaveExchange(ctx, &Exchange{
		RequestID:        requestID,
		UserID:           req.UserID,
		Platform:         req.Platform,
		Message:          req.Message,
		DetectedLanguage: n.DetectedLanguage,
		Intent:           resp.Intent,
		ResponseText:     resp.ResponseText,
		SuggestedActions: resp.SuggestedActions,
		CreatedAt:        s.now().UTC(),
	})
	if err != nil {
		s.log.WithContext(ctx).Warn("transcript save failed", "error", err)
	}
}

// notify forwards leads and handoffs to operators. Failures stay in the log.
func (s *service) notify(ctx context.Context, req Request, reply Reply, resp Response) {
	if resp.Intent != IntentLeadCapture && resp.Intent != IntentHumanHandoff {
		return
	}

	n := Notification{
		UserID:       req.UserID,
		Platform:     req.Platform,
		Intent:       resp.Intent,
		Message:      strings.TrimSpace(req.Message),
		ResponseText: resp.ResponseText,
	}
	if reply.Negotiation != nil && reply.Negotiation.UserOfferedPrice != nil {
		offered := pricing.FormatAmount(*reply.Negotiation.UserOfferedPrice)
		n.OfferedPrice = &offered
	}

	ctx, cancel := context.WithTimeout(ctx, s.sideEffectTimeout)
	defer cancel()

	if err := s.outbound.Notify(ctx, n); err != nil {
		s.log.WithContext(ctx).Warn("operator notify failed", "intent", resp.Intent, "error", err)
	}
}
