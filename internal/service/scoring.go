package service

import (
	"sort"

	"github.com/civicpulse/backend/internal/models"
)

// Point and penalty constants. Trust scores start at 100 and move only on
// explicit judgment events.
const (
	SubmitUtilityAward = 10
	JoinUtilityAward   = 5

	CitizenRejectionPenalty   = 15
	SupervisorFraudPenalty    = 10
	SupervisorFeedbackPenalty = 10

	// Ratings at or below this trigger the supervisor feedback penalty.
	NegativeRatingThreshold = 2
)

// DeadlineDays computes the recommended resolution window: a per-priority
// baseline plus one day per ten pending tickets, halved for High priority.
// Both divisions floor.
func DeadlineDays(p models.Priority, pendingTickets int) int {
	base := 14
	switch p {
	case models.PriorityHigh:
		base = 3
	case models.PriorityMedium:
		base = 7
	}

	adj := pendingTickets / 10
	if p == models.PriorityHigh {
		adj = adj / 2
	}
	return base + adj
}

// ReporterStats summarizes a citizen's cumulative ticket history for badge
// evaluation.
type ReporterStats struct {
	ValidReports   int
	Joins          int
	MaxSeverity    int
	CategoryCounts map[models.Category]int
}

// StatsFromHistory derives reporter stats from the full set of tickets the
// citizen appears on. A "valid report" is any persisted ticket the citizen
// originated; appearing in reportedBy without originating counts as a join.
func StatsFromHistory(userID string, tickets []models.Ticket) ReporterStats {
	stats := ReporterStats{CategoryCounts: map[models.Category]int{}}
	for _, t := range tickets {
		if t.ReporterID == userID {
			stats.ValidReports++
			stats.CategoryCounts[t.Category]++
			if t.SeverityScore > stats.MaxSeverity {
				stats.MaxSeverity = t.SeverityScore
			}
			continue
		}
		for _, id := range t.ReportedBy {
			if id == userID {
				stats.Joins++
				break
			}
		}
	}
	return stats
}

type badgeRule struct {
	ID   string
	Test func(ReporterStats) bool
}

var badgeRules = []badgeRule{
	{"first-report", func(s ReporterStats) bool { return s.ValidReports >= 1 }},
	{"community-helper", func(s ReporterStats) bool { return s.ValidReports >= 5 }},
	{"pothole-hunter", func(s ReporterStats) bool { return s.CategoryCounts[models.CategoryPothole] >= 3 }},
	{"light-bringer", func(s ReporterStats) bool { return s.CategoryCounts[models.CategoryStreetlight] >= 5 }},
	{"hazard-spotter", func(s ReporterStats) bool { return s.MaxSeverity >= 8 }},
	{"team-player", func(s ReporterStats) bool { return s.Joins >= 5 }},
}

// EvaluateBadges returns every badge the stats unlock, sorted for stable
// storage.
func EvaluateBadges(stats ReporterStats) []string {
	var out []string
	for _, rule := range badgeRules {
		if rule.Test(stats) {
			out = append(out, rule.ID)
		}
	}
	sort.Strings(out)
	return out
}
