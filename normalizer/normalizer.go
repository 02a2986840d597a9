// Package normalizer maps the heterogeneous webhook payloads of the
// supported donation platforms onto one canonical record. Field resolution
// follows a priority-ordered alias list per platform: the first key holding a
// usable value wins.
package normalizer

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	PlatformSaweria  = "saweria"
	PlatformBagiBagi = "bagibagi"
)

var (
	ErrInvalidPayload = errors.New("invalid payload")
	ErrInvalidAmount  = errors.New("invalid amount")
)

// Donation is the canonical shape all ingestion paths converge to.
type Donation struct {
	ID        string
	Donor     string
	Amount    int64
	Message   string
	Platform  string
	CreatedAt string
}

type aliasTable struct {
	donor   []string
	amount  []string
	message []string
}

var aliases = map[string]aliasTable{
	PlatformSaweria: {
		donor:   []string{"donator_name", "donor_name", "donor"},
		amount:  []string{"amount_raw", "amount"},
		message: []string{"message", "note"},
	},
	PlatformBagiBagi: {
		donor:   []string{"name", "supporter_name", "donor_name"},
		amount:  []string{"amount"},
		message: []string{"message", "comment"},
	},
}

// ParsePlatform maps the platform tag from a query parameter or X-Platform
// header to a known platform. Anything that is not bagibagi falls through to
// saweria, the primary platform.
func ParsePlatform(tag string) string {
	if strings.ToLower(strings.TrimSpace(tag)) == PlatformBagiBagi {
		return PlatformBagiBagi
	}
	return PlatformSaweria
}

// Normalize resolves a platform payload into a canonical donation. It is pure
// and never panics for any key-value input; failures come back as
// ErrInvalidPayload or ErrInvalidAmount.
func Normalize(platform string, payload map[string]any) (Donation, error) {
	if payload == nil {
		return Donation{}, ErrInvalidPayload
	}

	platform = ParsePlatform(platform)
	table := aliases[platform]

	donor := firstString(payload, table.donor)
	if donor == "" {
		donor = "Anonymous"
	}

	amount := firstAmount(payload, table.amount)
	if amount <= 0 {
		return Donation{}, ErrInvalidAmount
	}

	return Donation{
		ID:        stringValue(payload["id"]),
		Donor:     donor,
		Amount:    amount,
		Message:   firstString(payload, table.message),
		Platform:  platform,
		CreatedAt: stringValue(payload["created_at"]),
	}, nil
}

func firstString(payload map[string]any, keys []string) string {
	for _, key := range keys {
		if s := stringValue(payload[key]); s != "" {
			return s
		}
	}
	return ""
}

// firstAmount walks the alias list and commits to the first key holding a
// parseable value. Unset encodings (absent, null, "", numeric zero) fall
// through to the next alias; a set-but-zero string like "0" is a real value
// and wins, so validation can reject it.
func firstAmount(payload map[string]any, keys []string) int64 {
	for _, key := range keys {
		v, ok := payload[key]
		if !ok || isUnset(v) {
			continue
		}
		if n, parsed := amountValue(v); parsed {
			return n
		}
	}
	return 0
}

func isUnset(v any) bool {
	switch n := v.(type) {
	case nil:
		return true
	case string:
		return n == ""
	case float64:
		return n == 0
	case int64:
		return n == 0
	case int:
		return n == 0
	case json.Number:
		return n.String() == "0"
	}
	return false
}

// stringValue coerces the loosely typed JSON values the platforms send
// (strings, numbers) into a string, the same way their ids and names arrive.
func stringValue(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return decimal.NewFromFloat(s).String()
	case int64:
		return strconv.FormatInt(s, 10)
	case int:
		return strconv.Itoa(s)
	case json.Number:
		return s.String()
	default:
		return ""
	}
}

// amountValue coerces an amount field to whole currency units. Platforms send
// amounts as strings ("15000"), integers, or floats ("15000.00").
func amountValue(v any) (int64, bool) {
	switch n := v.(type) {
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return d.IntPart(), true
	case float64:
		return decimal.NewFromFloat(n).IntPart(), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		if err != nil {
			return 0, false
		}
		return d.IntPart(), true
	default:
		return 0, false
	}
}
