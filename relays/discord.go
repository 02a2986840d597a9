package relays

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"donasi/normalizer"
)

// DiscordSink posts a donation summary embed to a configured webhook URL.
type DiscordSink struct {
	Client *http.Client
}

func (s *DiscordSink) Name() string {
	return "discord"
}

func (s *DiscordSink) Send(ctx context.Context, event Event) error {
	webhookURL := os.Getenv("DISCORD_WEBHOOK_URL")
	if webhookURL == "" {
		return ErrNotConfigured
	}

	color := 0x9333ea
	if event.Donation.Platform == normalizer.PlatformBagiBagi {
		color = 0xf59e0b
	}

	message := event.Donation.Message
	if message == "" {
		message = "_No message_"
	}

	payload := map[string]any{
		"embeds": []map[string]any{{
			"title": fmt.Sprintf("💎 Donasi Baru dari %s!", strings.ToUpper(event.Donation.Platform)),
			"color": color,
			"fields": []map[string]any{
				{"name": "Donor", "value": event.Donation.Donor, "inline": true},
				{"name": "Amount", "value": fmt.Sprintf("Rp %d", event.Donation.Amount), "inline": true},
				{"name": "Game", "value": event.GameName(), "inline": true},
				{"name": "Message", "value": message, "inline": false},
			},
			"timestamp": event.Donation.Timestamp.Format(time.RFC3339),
			"footer":    map[string]string{"text": event.Donation.Platform + " Webhook"},
		}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("discord responded %s: %s", resp.Status, string(raw))
	}
	return nil
}

func (s *DiscordSink) client() *http.Client {
	if s.Client != nil {
		return s.Client
	}
	return http.DefaultClient
}

func init() {
	Register(&DiscordSink{})
}
