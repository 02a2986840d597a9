package services

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"donasi/database"
	"donasi/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// One connection keeps the in-memory database alive and serializes writes.
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	database.DB = db
}

func seedGame(t *testing.T, name, gameID, secretKey string) *models.Game {
	t.Helper()

	game := &models.Game{
		GameID:       gameID,
		Name:         name,
		RobloxGameID: 123456,
		SecretKey:    secretKey,
	}
	if err := CreateGame(game); err != nil {
		t.Fatalf("failed to seed game: %v", err)
	}
	return game
}

func seedDonation(t *testing.T, game string, amount int64, ts time.Time) {
	t.Helper()

	d := &models.Donation{
		DonationID: fmt.Sprintf("don_%d", ts.UnixNano()),
		Game:       game,
		Donor:      "Tester",
		Amount:     amount,
		Platform:   "saweria",
		Timestamp:  ts,
	}
	if err := AppendDonation(d); err != nil {
		t.Fatalf("failed to seed donation: %v", err)
	}
}

func TestGetGameBySecretKey(t *testing.T) {
	setupTestDB(t)
	seedGame(t, "Lobby", "game_1", "gsk_lobby")

	game, err := GetGameBySecretKey("gsk_lobby")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if game == nil || game.Name != "Lobby" {
		t.Fatalf("expected Lobby, got %+v", game)
	}

	missing, err := GetGameBySecretKey("gsk_unknown")
	if err != nil {
		t.Fatalf("missing key must not be an error, got %v", err)
	}
	if missing != nil {
		t.Fatalf("unknown key should resolve to nil, got %+v", missing)
	}

	// Lookup is exact, never case-insensitive.
	upper, err := GetGameBySecretKey("GSK_LOBBY")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if upper != nil {
		t.Fatalf("secret key comparison must be exact-match")
	}
}

func TestIncrementGameStatsAggregates(t *testing.T) {
	setupTestDB(t)
	seedGame(t, "Lobby", "game_1", "gsk_lobby")

	amounts := []int64{15000, 2500, 100000, 777, 42}
	var want int64
	now := time.Now().UTC()
	for i, a := range amounts {
		seedDonation(t, "Lobby", a, now.Add(time.Duration(i)*time.Second))
		if err := IncrementGameStats("game_1", a); err != nil {
			t.Fatalf("increment failed: %v", err)
		}
		want += a
	}

	game, err := GetGameByID("game_1")
	if err != nil || game == nil {
		t.Fatalf("game lookup failed: %v", err)
	}
	if game.DonationCount != int64(len(amounts)) {
		t.Fatalf("want donation count %d, got %d", len(amounts), game.DonationCount)
	}
	if game.TotalAmount != want {
		t.Fatalf("want total %d, got %d", want, game.TotalAmount)
	}
}

func TestIncrementGameStatsConcurrent(t *testing.T) {
	setupTestDB(t)
	seedGame(t, "Lobby", "game_1", "gsk_lobby")

	amounts := []int64{15000, 2500, 100000, 777, 42, 1, 999, 31337}
	var want int64
	for _, a := range amounts {
		want += a
	}

	now := time.Now().UTC()
	errs := make(chan error, 2*len(amounts))
	var wg sync.WaitGroup
	for i, a := range amounts {
		wg.Add(1)
		go func(i int, a int64) {
			defer wg.Done()
			d := &models.Donation{
				DonationID: fmt.Sprintf("don_par_%d", i),
				Game:       "Lobby",
				Donor:      "Tester",
				Amount:     a,
				Platform:   "saweria",
				Timestamp:  now.Add(time.Duration(i) * time.Millisecond),
			}
			if err := AppendDonation(d); err != nil {
				errs <- err
				return
			}
			if err := IncrementGameStats("game_1", a); err != nil {
				errs <- err
			}
		}(i, a)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent write failed: %v", err)
	}

	game, err := GetGameByID("game_1")
	if err != nil || game == nil {
		t.Fatalf("game lookup failed: %v", err)
	}
	if game.DonationCount != int64(len(amounts)) {
		t.Fatalf("want donation count %d, got %d", len(amounts), game.DonationCount)
	}
	if game.TotalAmount != want {
		t.Fatalf("want total %d, got %d", want, game.TotalAmount)
	}

	stored, err := QueryDonations("Lobby", time.Time{}, 0)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(stored) != len(amounts) {
		t.Fatalf("want %d stored donations, got %d", len(amounts), len(stored))
	}
}

func TestQueryDonationsCursor(t *testing.T) {
	setupTestDB(t)
	seedGame(t, "Lobby", "game_1", "gsk_lobby")

	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		seedDonation(t, "Lobby", int64(1000*(i+1)), base.Add(time.Duration(i)*time.Minute))
	}

	all, err := QueryDonations("Lobby", time.Time{}, 0)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("want 5 donations, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].Timestamp.After(all[i-1].Timestamp) {
			t.Fatalf("donations must come back newest-first")
		}
	}

	// Cursor between the third and fourth stored donation.
	cursor := base.Add(2*time.Minute + 30*time.Second)
	after, err := QueryDonations("Lobby", cursor, 0)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(after) != 2 {
		t.Fatalf("want 2 donations after cursor, got %d", len(after))
	}
	for _, d := range after {
		if !d.Timestamp.After(cursor) {
			t.Fatalf("donation at %v is not strictly after cursor %v", d.Timestamp, cursor)
		}
	}

	// Cursor exactly on a stored timestamp excludes that record.
	exact, err := QueryDonations("Lobby", base.Add(4*time.Minute), 0)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(exact) != 0 {
		t.Fatalf("cursor filter must be strict, got %d records", len(exact))
	}

	limited, err := QueryDonations("Lobby", time.Time{}, 2)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("want limit 2, got %d", len(limited))
	}
}

func TestDeleteGameCascades(t *testing.T) {
	setupTestDB(t)
	game := seedGame(t, "Lobby", "game_1", "gsk_lobby")
	seedGame(t, "Arena", "game_2", "gsk_arena")

	now := time.Now().UTC()
	for i := 0; i < 3; i++ {
		seedDonation(t, "Lobby", 1000, now.Add(time.Duration(i)*time.Second))
	}
	seedDonation(t, "Arena", 5000, now)

	if err := DeleteGame(game); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	remaining, err := QueryDonations("Lobby", time.Time{}, 0)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("cascade delete left %d donations", len(remaining))
	}

	other, err := QueryDonations("Arena", time.Time{}, 0)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(other) != 1 {
		t.Fatalf("unrelated game's donations must survive, got %d", len(other))
	}
}

func TestDonorLeaderboard(t *testing.T) {
	setupTestDB(t)
	seedGame(t, "Lobby", "game_1", "gsk_lobby")

	now := time.Now().UTC()
	donors := []struct {
		name   string
		amount int64
	}{
		{"Alice", 10000},
		{"Bob", 50000},
		{"Alice", 25000},
	}
	for i, d := range donors {
		if err := AppendDonation(&models.Donation{
			DonationID: fmt.Sprintf("don_%d", i),
			Game:       "Lobby",
			Donor:      d.name,
			Amount:     d.amount,
			Platform:   "saweria",
			Timestamp:  now.Add(time.Duration(i) * time.Second),
		}); err != nil {
			t.Fatalf("append failed: %v", err)
		}
	}

	entries, err := DonorLeaderboard(10, 0)
	if err != nil {
		t.Fatalf("leaderboard failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("want 2 entries, got %d", len(entries))
	}
	if entries[0].Username != "Bob" || entries[0].Total != 50000 {
		t.Fatalf("Bob should lead with 50000, got %+v", entries[0])
	}
	if entries[1].Username != "Alice" || entries[1].Total != 35000 || entries[1].Contribution != 2 {
		t.Fatalf("unexpected Alice entry: %+v", entries[1])
	}
}

func TestParseSinceCursor(t *testing.T) {
	t.Parallel()

	if !ParseSinceCursor("").IsZero() {
		t.Fatalf("empty cursor must be zero time")
	}

	epoch := ParseSinceCursor("1740825600000")
	if epoch.UnixMilli() != 1740825600000 {
		t.Fatalf("epoch-millis cursor mishandled: %v", epoch)
	}

	date := ParseSinceCursor("2025-03-01T10:00:00Z")
	if date != time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC) {
		t.Fatalf("RFC3339 cursor mishandled: %v", date)
	}

	if !ParseSinceCursor("garbage").IsZero() {
		t.Fatalf("unparseable cursor must fall back to zero time")
	}
}
