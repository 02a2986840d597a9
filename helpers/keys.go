package helpers

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"
)

const keyCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

func randomKey(n int) string {
	src := rand.New(rand.NewSource(time.Now().UnixNano()))
	b := make([]byte, n)
	for i := range b {
		b[i] = keyCharset[src.Intn(len(keyCharset))]
	}
	return string(b)
}

// GenerateGameSecretKey returns a gsk_-prefixed capability token for one game.
func GenerateGameSecretKey() string {
	return "gsk_" + randomKey(32)
}

// GenerateLicenseSecretKey returns an sk_live_-prefixed license key.
func GenerateLicenseSecretKey() string {
	return "sk_live_" + randomKey(32)
}

func GenerateGameID() string {
	return "game_" + strconv.FormatInt(time.Now().UnixMilli(), 36)
}

func GenerateLicenseID() string {
	return "LIC_" + strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
}

// GenerateDonationID builds a server-side donation id for payloads that carry
// no platform id.
func GenerateDonationID() string {
	return fmt.Sprintf("don_%d_%s", time.Now().UnixMilli(), randomKey(9))
}
