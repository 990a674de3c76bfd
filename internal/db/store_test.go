package db

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/civicpulse/backend/internal/models"
)

type fixture struct {
	store        *Store
	municipality models.Municipality
	user         models.UserProfile
	supervisor   models.Supervisor
}

func setupStore(t *testing.T) fixture {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	store, err := New(ctx, url)
	if err != nil {
		t.Fatalf("db connect: %v", err)
	}
	t.Cleanup(store.Close)

	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	mun, err := store.CreateMunicipality(ctx, models.Municipality{
		Name:         "Test City",
		LoginID:      uuid.NewString(),
		PasswordHash: "x",
	})
	if err != nil {
		t.Fatalf("create municipality: %v", err)
	}
	user, err := store.CreateUser(ctx, models.UserProfile{
		Email:        uuid.NewString() + "@example.com",
		DisplayName:  "Citizen",
		PasswordHash: "x",
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	sup, err := store.CreateSupervisor(ctx, models.Supervisor{
		Name:           "Supervisor",
		LoginID:        uuid.NewString(),
		PasswordHash:   "x",
		Department:     models.DepartmentRoads,
		MunicipalityID: mun.ID,
	})
	if err != nil {
		t.Fatalf("create supervisor: %v", err)
	}
	return fixture{store: store, municipality: mun, user: user, supervisor: sup}
}

func (f fixture) newTicket(t *testing.T) models.Ticket {
	t.Helper()
	ticket, err := f.store.CreateTicket(context.Background(), models.Ticket{
		ReporterID:              f.user.ID,
		MunicipalityID:          f.municipality.ID,
		Title:                   "Pothole: test",
		Category:                models.CategoryPothole,
		Priority:                models.PriorityMedium,
		Lat:                     51.1,
		Lng:                     71.4,
		EstimatedResolutionDate: time.Now().UTC().AddDate(0, 0, 7),
	}, 10)
	if err != nil {
		t.Fatalf("create ticket: %v", err)
	}
	return ticket
}

func TestAssignTicketIntegration(t *testing.T) {
	f := setupStore(t)
	ctx := context.Background()
	ticket := f.newTicket(t)
	deadline := time.Now().UTC().AddDate(0, 0, 7)

	if err := f.store.AssignTicket(ctx, ticket.ID, f.municipality.ID, f.supervisor, deadline); err != nil {
		t.Fatalf("assign: %v", err)
	}

	err := f.store.AssignTicket(ctx, ticket.ID, f.municipality.ID, f.supervisor, deadline)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict on second assignment, got %v", err)
	}

	got, err := f.store.GetTicket(ctx, ticket.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != models.StatusInProgress {
		t.Fatalf("expected In Progress, got %s", got.Status)
	}
	if got.AssignedSupervisorID == nil || *got.AssignedSupervisorID != f.supervisor.ID {
		t.Fatalf("expected assignment recorded, got %+v", got)
	}
}

func TestAssignTicketScopedToMunicipality(t *testing.T) {
	f := setupStore(t)
	ticket := f.newTicket(t)

	err := f.store.AssignTicket(context.Background(), ticket.ID, uuid.NewString(), f.supervisor, time.Now().UTC())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found outside the municipality, got %v", err)
	}
}

func TestCompletionApprovalFlowIntegration(t *testing.T) {
	f := setupStore(t)
	ctx := context.Background()
	ticket := f.newTicket(t)

	if err := f.store.AssignTicket(ctx, ticket.ID, f.municipality.ID, f.supervisor, time.Now().UTC().AddDate(0, 0, 7)); err != nil {
		t.Fatalf("assign: %v", err)
	}

	rep, err := f.store.SubmitCompletion(ctx, models.CompletionReport{
		TicketID:     ticket.ID,
		SupervisorID: f.supervisor.ID,
		Notes:        "patched",
		ImageURLs:    []string{"/uploads/after.jpg"},
	})
	if err != nil {
		t.Fatalf("submit completion: %v", err)
	}
	if rep.Attempt != 1 {
		t.Fatalf("expected attempt 1, got %d", rep.Attempt)
	}

	resolved, err := f.store.ApproveTicket(ctx, ticket.ID, f.municipality.ID)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if resolved.Status != models.StatusResolved || resolved.ResolvedAt == nil {
		t.Fatalf("expected resolved ticket, got %+v", resolved)
	}

	sup, err := f.store.GetSupervisor(ctx, f.supervisor.ID)
	if err != nil {
		t.Fatalf("get supervisor: %v", err)
	}
	if sup.EfficiencyPoints != 1 {
		t.Fatalf("expected efficiency credit, got %d", sup.EfficiencyPoints)
	}
}

func TestRejectionFlowIntegration(t *testing.T) {
	f := setupStore(t)
	ctx := context.Background()
	ticket := f.newTicket(t)

	if err := f.store.AssignTicket(ctx, ticket.ID, f.municipality.ID, f.supervisor, time.Now().UTC().AddDate(0, 0, 7)); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if _, err := f.store.SubmitCompletion(ctx, models.CompletionReport{
		TicketID:     ticket.ID,
		SupervisorID: f.supervisor.ID,
		ImageURLs:    []string{"/uploads/one.jpg"},
	}); err != nil {
		t.Fatalf("submit completion: %v", err)
	}

	rejected, err := f.store.RejectTicket(ctx, ticket.ID, f.municipality.ID, "wrong site", true, 10)
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if rejected.Status != models.StatusInProgress {
		t.Fatalf("expected In Progress after rejection, got %s", rejected.Status)
	}
	if rejected.RejectionReason == nil || *rejected.RejectionReason != "wrong site" {
		t.Fatalf("expected rejection reason persisted, got %+v", rejected.RejectionReason)
	}

	sup, err := f.store.GetSupervisor(ctx, f.supervisor.ID)
	if err != nil {
		t.Fatalf("get supervisor: %v", err)
	}
	if sup.TrustPoints != 90 {
		t.Fatalf("expected trust penalty applied, got %d", sup.TrustPoints)
	}

	// second attempt after rework
	rep, err := f.store.SubmitCompletion(ctx, models.CompletionReport{
		TicketID:     ticket.ID,
		SupervisorID: f.supervisor.ID,
		ImageURLs:    []string{"/uploads/two.jpg"},
	})
	if err != nil {
		t.Fatalf("resubmit completion: %v", err)
	}
	if rep.Attempt != 2 {
		t.Fatalf("expected attempt 2, got %d", rep.Attempt)
	}
	reports, err := f.store.ListCompletionReports(ctx, ticket.ID)
	if err != nil {
		t.Fatalf("list reports: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("expected full completion history, got %d reports", len(reports))
	}
}

func TestJoinTicketIntegration(t *testing.T) {
	f := setupStore(t)
	ctx := context.Background()
	ticket := f.newTicket(t)

	joiner, err := f.store.CreateUser(ctx, models.UserProfile{
		Email:        uuid.NewString() + "@example.com",
		DisplayName:  "Neighbor",
		PasswordHash: "x",
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	joined, err := f.store.JoinTicket(ctx, ticket.ID, joiner.ID, 5)
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if joined.ReportCount != 2 {
		t.Fatalf("expected report count 2, got %d", joined.ReportCount)
	}

	if _, err := f.store.JoinTicket(ctx, ticket.ID, joiner.ID, 5); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict on duplicate join, got %v", err)
	}

	got, err := f.store.GetUser(ctx, joiner.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.UtilityPoints != 5 {
		t.Fatalf("expected join utility award, got %d", got.UtilityPoints)
	}
}
