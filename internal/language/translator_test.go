package language

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/Vovarama1992/quote-agent/internal/logger"
)

type fakeAI struct {
	mu      sync.Mutex
	replies []string
	err     error
	delay   time.Duration
	calls   int
	prompts []string
}

func (f *fakeAI) GetReply(ctx context.Context, systemPrompt, input string) (string, error) {
	f.mu.Lock()
	f.calls++
	f.prompts = append(f.prompts, systemPrompt)
	idx := f.calls - 1
	f.mu.Unlock()

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if f.err != nil {
		return "", f.err
	}
	if idx < len(f.replies) {
		return f.replies[idx], nil
	}
	return f.replies[len(f.replies)-1], nil
}

func newTestTranslator(a *fakeAI, cache Cache) Translator {
	return NewTranslator(a, Options{Timeout: 50 * time.Millisecond, Cache: cache, Log: logger.Nop()})
}

func TestNormalizeParsesReply(t *testing.T) {
	cases := map[string]string{
		"plain":  `{"detected_language":"Urdu","english_query":"How much for a website?"}`,
		"fenced": "```json\n{\"detected_language\":\"Urdu\",\"english_query\":\"How much for a website?\"}\n```",
	}
	for name, reply := range cases {
		t.Run(name, func(t *testing.T) {
			tr := newTestTranslator(&fakeAI{replies: []string{reply}}, nil)
			n := tr.Normalize(context.Background(), "ویب سائٹ کتنے کی ہے؟")
			if n.DetectedLanguage != "Urdu" || n.EnglishQuery != "How much for a website?" {
				t.Fatalf("unexpected normalization %+v", n)
			}
		})
	}
}

func TestNormalizeCanonicalizesEnglish(t *testing.T) {
	tr := newTestTranslator(&fakeAI{replies: []string{`{"detected_language":"english","english_query":"hi"}`}}, nil)
	if n := tr.Normalize(context.Background(), "hi"); n.DetectedLanguage != English {
		t.Fatalf("expected canonical English, got %q", n.DetectedLanguage)
	}
}

func TestNormalizeFallsBack(t *testing.T) {
	raw := "Necesito un sitio web"
	cases := map[string]*fakeAI{
		"error":         {err: errors.New("upstream 500")},
		"timeout":       {replies: []string{`{"detected_language":"Spanish","english_query":"x"}`}, delay: time.Second},
		"malformed":     {replies: []string{"Sure! The language is Spanish."}},
		"empty english": {replies: []string{`{"detected_language":"Spanish","english_query":"  "}`}},
	}
	for name, a := range cases {
		t.Run(name, func(t *testing.T) {
			n := newTestTranslator(a, nil).Normalize(context.Background(), raw)
			if n.EnglishQuery != raw || n.DetectedLanguage != English {
				t.Fatalf("expected fallback, got %+v", n)
			}
		})
	}
}

func TestNormalizeBlankSkipsCall(t *testing.T) {
	a := &fakeAI{replies: []string{`{}`}}
	newTestTranslator(a, nil).Normalize(context.Background(), "   ")
	if a.calls != 0 {
		t.Fatalf("expected no model call, got %d", a.calls)
	}
}

func TestLocalize(t *testing.T) {
	a := &fakeAI{replies: []string{"Hola, el precio es $800."}}
	tr := newTestTranslator(a, nil)

	if got := tr.Localize(context.Background(), "The price is $800.", English); got != "The price is $800." {
		t.Fatalf("expected identity for English, got %q", got)
	}
	if a.calls != 0 {
		t.Fatal("expected no call for English")
	}

	got := tr.Localize(context.Background(), "The price is $800.", "Spanish")
	if got != "Hola, el precio es $800." {
		t.Fatalf("unexpected localization %q", got)
	}
	if !strings.Contains(a.prompts[0], "Spanish") {
		t.Fatalf("expected target language in prompt, got %q", a.prompts[0])
	}
}

func TestLocalizeFallsBackToEnglish(t *testing.T) {
	for name, a := range map[string]*fakeAI{
		"error": {err: errors.New("boom")},
		"empty": {replies: []string{"  "}},
	} {
		t.Run(name, func(t *testing.T) {
			if got := newTestTranslator(a, nil).Localize(context.Background(), "Hello", "Urdu"); got != "Hello" {
				t.Fatalf("expected English fallback, got %q", got)
			}
		})
	}
}

func TestIdentityTranslator(t *testing.T) {
	tr := Identity()
	n := tr.Normalize(context.Background(), "Bonjour")
	if n.EnglishQuery != "Bonjour" || n.DetectedLanguage != English {
		t.Fatalf("unexpected identity normalization %+v", n)
	}
	if tr.Localize(context.Background(), "Hi", "French") != "Hi" {
		t.Fatal("identity localize must return input")
	}
}

func TestNormalizeUsesRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := NewRedisCacheFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Hour)

	a := &fakeAI{replies: []string{`{"detected_language":"Spanish","english_query":"I need a website"}`}}
	tr := newTestTranslator(a, cache)

	first := tr.Normalize(context.Background(), "Necesito un sitio web")
	second := tr.Normalize(context.Background(), "Necesito un sitio web")

	if first != second || second.DetectedLanguage != "Spanish" {
		t.Fatalf("expected cached normalization, got %+v / %+v", first, second)
	}
	if a.calls != 1 {
		t.Fatalf("expected 1 model call, got %d", a.calls)
	}

	mr.FastForward(2 * time.Hour)
	tr.Normalize(context.Background(), "Necesito un sitio web")
	if a.calls != 2 {
		t.Fatalf("expected expired entry to trigger a new call, got %d calls", a.calls)
	}
}

func TestFallbackIsNotCached(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := NewRedisCacheFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Hour)

	tr := newTestTranslator(&fakeAI{err: errors.New("down")}, cache)
	tr.Normalize(context.Background(), "hola")

	if _, ok, _ := cache.Get(context.Background(), "hola"); ok {
		t.Fatal("fallback result must not be cached")
	}
}

func TestCacheErrorsDoNotBreakNormalize(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := NewRedisCacheFromClient(redis.NewClient(&redis.Options{
		Addr:        mr.Addr(),
		MaxRetries:  -1,
		DialTimeout: 100 * time.Millisecond,
	}), time.Hour)
	mr.Close()

	a := &fakeAI{replies: []string{`{"detected_language":"German","english_query":"website price"}`}}
	n := newTestTranslator(a, cache).Normalize(context.Background(), "Webseite Preis")
	if n.EnglishQuery != "website price" {
		t.Fatalf("expected model result despite cache outage, got %+v", n)
	}
}
