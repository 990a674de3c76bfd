package service

import (
	"testing"

	"github.com/civicpulse/backend/internal/models"
)

func TestDeadlineDaysHighPriorityHalvesBacklogAdjustment(t *testing.T) {
	// 3 base + 20/10 backlog days, halved adjustment for High = 3 + 1
	got := DeadlineDays(models.PriorityHigh, 20)
	if got != 4 {
		t.Fatalf("expected 4 days for High with 20 pending, got %d", got)
	}
}

func TestDeadlineDaysMediumPriority(t *testing.T) {
	// 7 base + 25/10 floored = 9
	got := DeadlineDays(models.PriorityMedium, 25)
	if got != 9 {
		t.Fatalf("expected 9 days for Medium with 25 pending, got %d", got)
	}
}

func TestDeadlineDaysLowPriorityNoBacklog(t *testing.T) {
	got := DeadlineDays(models.PriorityLow, 0)
	if got != 14 {
		t.Fatalf("expected 14 days for Low with empty backlog, got %d", got)
	}
}

func TestDeadlineDaysFloorsDivisions(t *testing.T) {
	if got := DeadlineDays(models.PriorityMedium, 9); got != 7 {
		t.Fatalf("expected backlog under 10 to add nothing, got %d", got)
	}
	if got := DeadlineDays(models.PriorityHigh, 10); got != 3 {
		t.Fatalf("expected halved adjustment 10/10/2 to floor to 0, got %d", got)
	}
}

func TestStatsFromHistorySeparatesOriginsAndJoins(t *testing.T) {
	tickets := []models.Ticket{
		{ReporterID: "u1", Category: models.CategoryPothole, SeverityScore: 6, ReportedBy: []string{"u1"}},
		{ReporterID: "u1", Category: models.CategoryPothole, SeverityScore: 9, ReportedBy: []string{"u1", "u2"}},
		{ReporterID: "u2", Category: models.CategoryGarbage, ReportedBy: []string{"u2", "u1"}},
	}

	stats := StatsFromHistory("u1", tickets)
	if stats.ValidReports != 2 {
		t.Fatalf("expected 2 valid reports, got %d", stats.ValidReports)
	}
	if stats.Joins != 1 {
		t.Fatalf("expected 1 join, got %d", stats.Joins)
	}
	if stats.MaxSeverity != 9 {
		t.Fatalf("expected max severity 9, got %d", stats.MaxSeverity)
	}
	if stats.CategoryCounts[models.CategoryPothole] != 2 {
		t.Fatalf("expected 2 pothole reports, got %d", stats.CategoryCounts[models.CategoryPothole])
	}
}

func TestEvaluateBadgesThresholds(t *testing.T) {
	badges := EvaluateBadges(ReporterStats{ValidReports: 4, CategoryCounts: map[models.Category]int{}})
	if contains(badges, "community-helper") {
		t.Fatalf("community-helper should require 5 valid reports, got %v", badges)
	}
	if !contains(badges, "first-report") {
		t.Fatalf("expected first-report, got %v", badges)
	}

	badges = EvaluateBadges(ReporterStats{ValidReports: 5, CategoryCounts: map[models.Category]int{}})
	if !contains(badges, "community-helper") {
		t.Fatalf("expected community-helper at 5 valid reports, got %v", badges)
	}
}

func TestEvaluateBadgesCategoryAndSeverity(t *testing.T) {
	stats := ReporterStats{
		ValidReports: 3,
		MaxSeverity:  8,
		CategoryCounts: map[models.Category]int{
			models.CategoryPothole: 3,
		},
	}
	badges := EvaluateBadges(stats)
	if !contains(badges, "pothole-hunter") {
		t.Fatalf("expected pothole-hunter at 3 pothole reports, got %v", badges)
	}
	if !contains(badges, "hazard-spotter") {
		t.Fatalf("expected hazard-spotter at severity 8, got %v", badges)
	}
	if contains(badges, "team-player") {
		t.Fatalf("team-player should require 5 joins, got %v", badges)
	}
}

func TestEvaluateBadgesTeamPlayer(t *testing.T) {
	badges := EvaluateBadges(ReporterStats{Joins: 5, CategoryCounts: map[models.Category]int{}})
	if !contains(badges, "team-player") {
		t.Fatalf("expected team-player at 5 joins, got %v", badges)
	}
	if contains(badges, "first-report") {
		t.Fatalf("first-report should require an originated ticket, got %v", badges)
	}
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
