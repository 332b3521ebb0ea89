package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"
)

// WebhookOutbound posts operator notifications to a configured URL.
type WebhookOutbound struct {
	url    string
	token  string
	client *http.Client
}

func NewWebhookOutbound(url, token string) *WebhookOutbound {
	return &WebhookOutbound{
		url:    strings.TrimSpace(url),
		token:  strings.TrimSpace(token),
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

func (o *WebhookOutbound) Notify(ctx context.Context, n Notification) error {
	return o.send(ctx, n)
}

func (o *WebhookOutbound) send(ctx context.Context, body any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.url, bytes.NewReader(b))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	if o.token != "" {
		req.Header.Set("Authorization", "Bearer "+o.token)
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return errors.New(
			"operator webhook error: " +
				resp.Status +
				" body=" + string(respBody),
		)
	}

	return nil
}

// NopOutbound is used when no operator webhook is configured.
type NopOutbound struct{}

func (NopOutbound) Notify(context.Context, Notification) error { return nil }
