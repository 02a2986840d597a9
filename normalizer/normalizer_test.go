package normalizer

import (
	"errors"
	"reflect"
	"testing"
)

func TestNormalizeSaweriaAliasPrecedence(t *testing.T) {
	t.Parallel()

	payload := map[string]any{
		"donator_name": "Alice",
		"donor_name":   "Bob",
		"donor":        "Carol",
		"amount_raw":   "15000",
		"amount":       "999",
		"message":      "hi",
		"note":         "ignored",
	}

	got, err := Normalize(PlatformSaweria, payload)
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if got.Donor != "Alice" {
		t.Fatalf("donator_name should win, got donor %q", got.Donor)
	}
	if got.Amount != 15000 {
		t.Fatalf("amount_raw should win, got %d", got.Amount)
	}
	if got.Message != "hi" {
		t.Fatalf("message should win over note, got %q", got.Message)
	}
}

func TestNormalizeBagiBagiAliases(t *testing.T) {
	t.Parallel()

	payload := map[string]any{
		"supporter_name": "Dewi",
		"amount":         float64(25000),
		"comment":        "semangat",
	}

	got, err := Normalize(PlatformBagiBagi, payload)
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if got.Donor != "Dewi" {
		t.Fatalf("unexpected donor %q", got.Donor)
	}
	if got.Amount != 25000 {
		t.Fatalf("unexpected amount %d", got.Amount)
	}
	if got.Message != "semangat" {
		t.Fatalf("comment should be used as message, got %q", got.Message)
	}
	if got.Platform != PlatformBagiBagi {
		t.Fatalf("unexpected platform %q", got.Platform)
	}
}

func TestNormalizeDefaults(t *testing.T) {
	t.Parallel()

	got, err := Normalize(PlatformSaweria, map[string]any{"amount": 5000})
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if got.Donor != "Anonymous" {
		t.Fatalf("missing donor should default to Anonymous, got %q", got.Donor)
	}
	if got.Message != "" {
		t.Fatalf("missing message should default to empty, got %q", got.Message)
	}
	if got.ID != "" || got.CreatedAt != "" {
		t.Fatalf("id and created_at should be empty when absent")
	}
}

func TestNormalizeInvalidAmount(t *testing.T) {
	t.Parallel()

	cases := []map[string]any{
		{"donator_name": "Alice"},
		{"donator_name": "Alice", "amount": 0},
		{"donator_name": "Alice", "amount": -500},
		{"donator_name": "Alice", "amount": "-500"},
		{"donator_name": "Alice", "amount": "not a number"},
	}

	for _, payload := range cases {
		if _, err := Normalize(PlatformSaweria, payload); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("payload %v: want ErrInvalidAmount, got %v", payload, err)
		}
	}
}

func TestNormalizeAmountAliasFallthrough(t *testing.T) {
	t.Parallel()

	// A set string "0" on the highest-priority alias is a real value: it must
	// win and be rejected, not fall through to a later alias.
	if _, err := Normalize(PlatformSaweria, map[string]any{
		"amount_raw": "0",
		"amount":     "500",
	}); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("string zero amount_raw should win and be rejected, got %v", err)
	}

	// Unset encodings fall through to the next alias.
	fallthroughCases := []struct {
		name  string
		value any
	}{
		{"empty string", ""},
		{"null", nil},
		{"numeric zero", float64(0)},
		{"unparseable", "abc"},
	}
	for _, tc := range fallthroughCases {
		got, err := Normalize(PlatformSaweria, map[string]any{
			"amount_raw": tc.value,
			"amount":     "500",
		})
		if err != nil {
			t.Fatalf("%s amount_raw should fall through: %v", tc.name, err)
		}
		if got.Amount != 500 {
			t.Fatalf("%s amount_raw: want 500, got %d", tc.name, got.Amount)
		}
	}
}

func TestNormalizeNilPayload(t *testing.T) {
	t.Parallel()

	if _, err := Normalize(PlatformSaweria, nil); !errors.Is(err, ErrInvalidPayload) {
		t.Fatalf("want ErrInvalidPayload, got %v", err)
	}
}

func TestNormalizeDeterministic(t *testing.T) {
	t.Parallel()

	payload := map[string]any{
		"donator_name": "Alice",
		"amount_raw":   "15000",
		"message":      "hi",
		"id":           "saweria-trx-1",
		"created_at":   "2025-03-01T10:00:00Z",
	}

	first, err := Normalize(PlatformSaweria, payload)
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := Normalize(PlatformSaweria, payload)
		if err != nil {
			t.Fatalf("normalize failed on repeat: %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("normalize is not deterministic: %+v vs %+v", first, again)
		}
	}
}

func TestNormalizeAmountCoercion(t *testing.T) {
	t.Parallel()

	cases := []struct {
		value any
		want  int64
	}{
		{"15000", 15000},
		{"15000.00", 15000},
		{float64(15000), 15000},
		{int(250), 250},
	}

	for _, tc := range cases {
		got, err := Normalize(PlatformSaweria, map[string]any{"amount": tc.value})
		if err != nil {
			t.Fatalf("amount %v: normalize failed: %v", tc.value, err)
		}
		if got.Amount != tc.want {
			t.Fatalf("amount %v: want %d, got %d", tc.value, tc.want, got.Amount)
		}
	}
}

func TestParsePlatform(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"":          PlatformSaweria,
		"saweria":   PlatformSaweria,
		"bagibagi":  PlatformBagiBagi,
		"BagiBagi":  PlatformBagiBagi,
		"something": PlatformSaweria,
	}

	for tag, want := range cases {
		if got := ParsePlatform(tag); got != want {
			t.Fatalf("tag %q: want %q, got %q", tag, want, got)
		}
	}
}
