// Package language wraps the external model used to normalize incoming chat
// messages to English and to localize replies back to the user's language.
package language

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Vovarama1992/quote-agent/internal/ai"
	"github.com/Vovarama1992/quote-agent/internal/apperr"
	"github.com/Vovarama1992/quote-agent/internal/logger"
	"github.com/Vovarama1992/quote-agent/internal/metrics"
)

const defaultTimeout = 8 * time.Second

type Options struct {
	Timeout time.Duration
	Cache   Cache // optional
	Metrics *metrics.Metrics
	Log     *logger.Logger
}

type translator struct {
	ai      ai.AI
	timeout time.Duration
	cache   Cache
	metrics *metrics.Metrics
	log     *logger.Logger
}

// NewTranslator builds a Translator on top of the AI port.
func NewTranslator(aiClient ai.AI, opts Options) Translator {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Log == nil {
		opts.Log = logger.Nop()
	}
	return &translator{
		ai:      aiClient,
		timeout: opts.Timeout,
		cache:   opts.Cache,
		metrics: opts.Metrics,
		log:     opts.Log,
	}
}

func (t *translator) Normalize(ctx context.Context, raw string) Normalized {
	if strings.TrimSpace(raw) == "" {
		return Fallback(raw)
	}
	log := t.log.WithContext(ctx)

	if t.cache != nil {
		n, ok, err := t.cache.Get(ctx, raw)
		if err != nil {
			log.Debug("normalize cache read failed", "error", err)
		}
		if ok {
			t.metrics.ObserveTranslation("normalize", "cached", 0)
			return n
		}
	}

	n, err := t.normalize(ctx, raw)
	if err != nil {
		log.ExternalFallback("normalize", err, "treat input as English")
		return Fallback(raw)
	}

	if t.cache != nil {
		if err := t.cache.Set(ctx, raw, n); err != nil {
			log.Debug("normalize cache write failed", "error", err)
		}
	}
	return n
}

func (t *translator) normalize(ctx context.Context, raw string) (n Normalized, err error) {
	input, err := json.Marshal(map[string]string{"message": raw})
	if err != nil {
		return Normalized{}, apperr.Internal("encode normalize input", err)
	}

	reply, err := t.call(ctx, "normalize", NormalizePrompt, string(input))
	if err != nil {
		return Normalized{}, err
	}

	n, err = parseNormalized(reply)
	if err != nil {
		return Normalized{}, apperr.ExternalService("malformed normalize reply", err).WithOp("language.Normalize")
	}
	return n, nil
}

func (t *translator) Localize(ctx context.Context, text, language string) string {
	if IsEnglish(language) || strings.TrimSpace(text) == "" {
		return text
	}

	reply, err := t.call(ctx, "localize", fmt.Sprintf(localizePromptTemplate, language), text)
	if err == nil && strings.TrimSpace(reply) == "" {
		err = apperr.ExternalService("empty localize reply", nil).WithOp("language.Localize")
	}
	if err != nil {
		t.log.WithContext(ctx).ExternalFallback("localize", err, "return English text")
		return text
	}
	return reply
}

// call invokes the model under the configured timeout and records latency.
func (t *translator) call(ctx context.Context, op, systemPrompt, input string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	start := time.Now()
	reply, err := t.ai.GetReply(callCtx, systemPrompt, input)
	status := "ok"
	if err != nil {
		status = "error"
	}
	t.metrics.ObserveTranslation(op, status, time.Since(start))

	if err != nil {
		return "", apperr.ExternalService(op+" call failed", err).WithOp("language." + op)
	}
	return reply, nil
}

// parseNormalized accepts the model reply with or without markdown fences.
func parseNormalized(reply string) (Normalized, error) {
	clean := strings.TrimSpace(reply)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	clean = strings.TrimSpace(clean)

	var n Normalized
	if err := json.Unmarshal([]byte(clean), &n); err != nil {
		return Normalized{}, err
	}
	n.EnglishQuery = strings.TrimSpace(n.EnglishQuery)
	n.DetectedLanguage = strings.TrimSpace(n.DetectedLanguage)

	if n.EnglishQuery == "" {
		return Normalized{}, errors.New("english_query is empty")
	}
	if IsEnglish(n.DetectedLanguage) {
		n.DetectedLanguage = English
	}
	return n, nil
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), b)
}

type identity struct{}

// Identity is the Translator used when no model is configured.
func Identity() Translator { return identity{} }

func (identity) Normalize(_ context.Context, raw string) Normalized { return Fallback(raw) }

func (identity) Localize(_ context.Context, text, _ string) string { return text }
