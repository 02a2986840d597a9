package jobs

import (
	"time"

	tasks "donasi/task"
)

// StartExpiryScheduler sweeps expired temporary games and trial licenses in
// the background.
func StartExpiryScheduler() {
	ticker := time.NewTicker(1 * time.Hour)
	go func() {
		for {
			<-ticker.C
			tasks.CleanupExpiredGames()
			tasks.DeactivateExpiredLicenses()
		}
	}()
}
