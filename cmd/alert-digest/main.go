// Command-line tool that evaluates due job alerts and records their matches.
// Intended to run from cron. Delivery is limited to log output for now, the
// matched counts and notification timestamps are persisted either way.
package main

import (
	"context"
	"log"
	"time"

	"adboard-backend/internal/controller/alert"
	"adboard-backend/internal/database"
	"adboard-backend/internal/search"
)

const digestMatchLimit = 50

func main() {
	db, err := database.GetMainDB()
	if err != nil {
		log.Fatalf("Database failed to initialize: %s", err)
	}

	now := time.Now()
	due, err := alert.DueAlerts(db.DB, now)
	if err != nil {
		log.Fatalf("Failed to collect due alerts: %s", err)
	}
	log.Printf("%d alert(s) due", len(due))

	matcher := &search.Matcher{DB: db.DB}
	ctx := context.Background()

	for i := range due {
		a := &due[i]

		matches, err := matcher.MatchAlert(ctx, a, digestMatchLimit)
		if err != nil {
			log.Printf("alert %d (%s): match failed: %s", a.ID, a.Name, err)
			continue
		}

		updates := map[string]any{
			"last_notified_at":   now,
			"last_matched_count": len(matches),
		}
		if err := db.Model(a).Updates(updates).Error; err != nil {
			log.Printf("alert %d (%s): update failed: %s", a.ID, a.Name, err)
			continue
		}

		log.Printf("alert %d (%s): %d match(es) for %s", a.ID, a.Name, len(matches), a.NotificationEmail)
		for _, m := range matches {
			log.Printf("  - [%d] %s", m.ID, m.Title)
		}
	}
}
