package relays

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"
)

// RobloxSink publishes accepted donations to the Roblox MessagingService
// topic the game servers subscribe to.
type RobloxSink struct {
	Client *http.Client
}

func (s *RobloxSink) Name() string {
	return "roblox"
}

func (s *RobloxSink) Send(ctx context.Context, event Event) error {
	apiKey := os.Getenv("ROBLOX_API_KEY")
	universeID := os.Getenv("UNIVERSE_ID")
	if event.Game != nil && event.Game.RobloxGameID != 0 {
		universeID = strconv.FormatInt(event.Game.RobloxGameID, 10)
	}
	if apiKey == "" || universeID == "" {
		return ErrNotConfigured
	}

	topic := os.Getenv("MESSAGING_TOPIC")
	if topic == "" {
		topic = "Donations"
	}
	baseURL := os.Getenv("ROBLOX_API_URL")
	if baseURL == "" {
		baseURL = "https://apis.roblox.com"
	}

	// MessagingService takes the payload as a single JSON-encoded string.
	message, err := json.Marshal(map[string]any{
		"donor":      event.Donation.Donor,
		"amount":     event.Donation.Amount,
		"message":    event.Donation.Message,
		"created_at": event.Donation.Timestamp.Format(time.RFC3339),
		"id":         event.Donation.DonationID,
		"platform":   event.Donation.Platform,
		"game":       event.GameName(),
	})
	if err != nil {
		return err
	}

	body, err := json.Marshal(map[string]string{"message": string(message)})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/messaging-service/v1/universes/%s/topics/%s", baseURL, universeID, topic)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("x-api-key", apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("roblox responded %s: %s", resp.Status, string(raw))
	}
	return nil
}

func (s *RobloxSink) client() *http.Client {
	if s.Client != nil {
		return s.Client
	}
	return http.DefaultClient
}

func init() {
	Register(&RobloxSink{})
}
