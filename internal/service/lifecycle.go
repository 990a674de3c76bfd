package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/civicpulse/backend/internal/ai"
	"github.com/civicpulse/backend/internal/db"
	"github.com/civicpulse/backend/internal/events"
	"github.com/civicpulse/backend/internal/geocode"
	"github.com/civicpulse/backend/internal/models"
	"github.com/civicpulse/backend/internal/utils"
)

// Proximity window for join suggestions: same category, open, within 150 m.
const (
	nearbyRadiusKm  = 0.15
	nearbyWindowDeg = 0.005
)

// Store is the persistence surface the lifecycle controller needs. Every
// transition method applies its guard and side effects atomically and
// returns db.ErrConflict when a status race is lost.
type Store interface {
	CreateTicket(ctx context.Context, t models.Ticket, utilityAward int) (models.Ticket, error)
	GetTicket(ctx context.Context, id string) (models.Ticket, error)
	ListTickets(ctx context.Context, f db.TicketFilter) ([]models.Ticket, error)
	NearbyOpenTickets(ctx context.Context, municipalityID string, category models.Category, lat, lng, windowDeg float64) ([]models.Ticket, error)
	AssignTicket(ctx context.Context, ticketID, municipalityID string, sup models.Supervisor, deadline time.Time) error
	SubmitCompletion(ctx context.Context, rep models.CompletionReport) (models.CompletionReport, error)
	ApproveTicket(ctx context.Context, ticketID, municipalityID string) (models.Ticket, error)
	RejectTicket(ctx context.Context, ticketID, municipalityID, reason string, penalizeSupervisor bool, trustPenalty int) (models.Ticket, error)
	JoinTicket(ctx context.Context, ticketID, userID string, utilityAward int) (models.Ticket, error)
	SaveFeedback(ctx context.Context, fb models.Feedback, trustPenalty int) (models.Feedback, error)
	CountPendingTickets(ctx context.Context, municipalityID string) (int, error)
	GetSupervisor(ctx context.Context, id string) (models.Supervisor, error)
	UpdateUserBadges(ctx context.Context, userID string, badges []string) error
	AdjustUserTrust(ctx context.Context, userID string, delta int) error
	FlagSupervisorAIImage(ctx context.Context, supervisorID string, trustPenalty int) error
}

// Lifecycle owns the ticket state machine. All transitions go through here.
type Lifecycle struct {
	Store    Store
	Triage   Triage
	Geocoder geocode.ReverseGeocoder
	Bus      events.Bus
	Logger   zerolog.Logger
}

type SubmitInput struct {
	ReporterID     string
	MunicipalityID string
	Category       models.Category
	Notes          string
	ImageURLs      []string
	Lat            float64
	Lng            float64
	Audio          []byte
	AudioFormat    string
}

// Submit runs the Draft -> Submitted transition: validation, reverse
// geocoding, AI triage, then a single persisted write. Any pipeline failure
// before the write leaves no partial ticket behind.
func (l Lifecycle) Submit(ctx context.Context, in SubmitInput) (models.Ticket, error) {
	if len(in.ImageURLs) == 0 {
		return models.Ticket{}, ValidationError{Msg: "at least one photo is required"}
	}
	if !models.ValidCategory(in.Category) {
		return models.Ticket{}, ValidationError{Msg: "unknown category"}
	}
	if in.Lat == 0 && in.Lng == 0 {
		return models.Ticket{}, ValidationError{Msg: "location is required"}
	}
	if in.MunicipalityID == "" {
		return models.Ticket{}, ValidationError{Msg: "municipality is required"}
	}

	address, err := l.Geocoder.Reverse(ctx, in.Lat, in.Lng)
	if err != nil {
		l.Logger.Error().Err(err).Msg("reverse geocode failed")
		return models.Ticket{}, ErrLocationUnresolved
	}

	triaged, err := l.Triage.Run(ctx, TriageInput{
		Category:    in.Category,
		Notes:       in.Notes,
		ImageURLs:   in.ImageURLs,
		Audio:       in.Audio,
		AudioFormat: in.AudioFormat,
	})
	if err != nil {
		var rejected RejectedError
		if errors.As(err, &rejected) {
			if trustErr := l.Store.AdjustUserTrust(ctx, in.ReporterID, -CitizenRejectionPenalty); trustErr != nil {
				l.Logger.Error().Err(trustErr).Str("user_id", in.ReporterID).Msg("trust adjustment failed")
			}
		}
		return models.Ticket{}, err
	}

	pending, err := l.Store.CountPendingTickets(ctx, in.MunicipalityID)
	if err != nil {
		return models.Ticket{}, err
	}
	now := time.Now().UTC()
	estimate := now.AddDate(0, 0, DeadlineDays(triaged.Priority, pending))

	ticket := models.Ticket{
		ReporterID:              in.ReporterID,
		MunicipalityID:          in.MunicipalityID,
		Title:                   triaged.Title,
		Category:                in.Category,
		Notes:                   in.Notes,
		Transcription:           triaged.Transcription,
		ImageURLs:               in.ImageURLs,
		Lat:                     in.Lat,
		Lng:                     in.Lng,
		Address:                 address,
		Priority:                triaged.Priority,
		SeverityScore:           triaged.SeverityScore,
		SeverityReasoning:       triaged.SeverityReasoning,
		SubmittedAt:             now,
		EstimatedResolutionDate: estimate,
	}

	created, err := l.Store.CreateTicket(ctx, ticket, SubmitUtilityAward)
	if err != nil {
		return models.Ticket{}, err
	}

	l.refreshBadges(ctx, in.ReporterID)
	l.publish(ctx, events.TicketSubmitted, created)
	return created, nil
}

// Nearby returns open tickets of the same category within the join radius,
// for the client to offer as join candidates before a fresh submission.
func (l Lifecycle) Nearby(ctx context.Context, municipalityID string, category models.Category, lat, lng float64) ([]models.Ticket, error) {
	candidates, err := l.Store.NearbyOpenTickets(ctx, municipalityID, category, lat, lng, nearbyWindowDeg)
	if err != nil {
		return nil, err
	}
	var out []models.Ticket
	for _, t := range candidates {
		if utils.HaversineKm(lat, lng, t.Lat, t.Lng) <= nearbyRadiusKm {
			out = append(out, t)
		}
	}
	return out, nil
}

// Assign runs Submitted -> In Progress. The supervisor must belong to the
// staff session's municipality; the conditional update in the store
// serializes concurrent assignments so exactly one wins.
func (l Lifecycle) Assign(ctx context.Context, sess SessionScope, ticketID, supervisorID string, deadlineOverride *time.Time) (models.Ticket, error) {
	sup, err := l.Store.GetSupervisor(ctx, supervisorID)
	if err != nil {
		return models.Ticket{}, err
	}
	if sup.MunicipalityID != sess.MunicipalityID {
		return models.Ticket{}, ErrForbidden
	}

	ticket, err := l.Store.GetTicket(ctx, ticketID)
	if err != nil {
		return models.Ticket{}, err
	}
	if ticket.MunicipalityID != sess.MunicipalityID {
		return models.Ticket{}, db.ErrNotFound
	}

	deadline := time.Time{}
	if deadlineOverride != nil {
		deadline = *deadlineOverride
	} else {
		pending, err := l.Store.CountPendingTickets(ctx, sess.MunicipalityID)
		if err != nil {
			return models.Ticket{}, err
		}
		deadline = time.Now().UTC().AddDate(0, 0, DeadlineDays(ticket.Priority, pending))
	}

	if err := l.Store.AssignTicket(ctx, ticketID, sess.MunicipalityID, sup, deadline); err != nil {
		return models.Ticket{}, err
	}

	assigned, err := l.Store.GetTicket(ctx, ticketID)
	if err != nil {
		return models.Ticket{}, err
	}
	l.publish(ctx, events.TicketAssigned, assigned)
	return assigned, nil
}

type CompletionInput struct {
	TicketID     string
	SupervisorID string
	Notes        string
	ImageURLs    []string
}

// Complete runs In Progress -> Pending Approval. Verification outage is not
// fatal: the report is stored with analysis_pending set so staff see the
// "AI analysis unavailable" marker instead of deciding blind.
func (l Lifecycle) Complete(ctx context.Context, in CompletionInput) (models.CompletionReport, error) {
	if len(in.ImageURLs) == 0 {
		return models.CompletionReport{}, ValidationError{Msg: "a completion photo is required"}
	}

	ticket, err := l.Store.GetTicket(ctx, in.TicketID)
	if err != nil {
		return models.CompletionReport{}, err
	}
	if ticket.AssignedSupervisorID == nil || *ticket.AssignedSupervisorID != in.SupervisorID {
		return models.CompletionReport{}, ErrForbidden
	}

	rep := models.CompletionReport{
		TicketID:     in.TicketID,
		SupervisorID: in.SupervisorID,
		Notes:        in.Notes,
		ImageURLs:    in.ImageURLs,
	}

	verification, err := l.Triage.Verify(ctx, ai.VerificationInput{
		OriginalImages:   ticket.ImageURLs,
		OriginalNotes:    ticket.Notes,
		Transcription:    ticket.Transcription,
		CompletionImages: in.ImageURLs,
		CompletionNotes:  in.Notes,
	})
	if err != nil {
		rep.AnalysisPending = true
	} else {
		rep.Analysis = verification.Analysis
		if verification.SuspectedAIImage {
			if flagErr := l.Store.FlagSupervisorAIImage(ctx, in.SupervisorID, SupervisorFraudPenalty); flagErr != nil {
				l.Logger.Error().Err(flagErr).Msg("failed to flag supervisor")
			}
		}
	}

	stored, err := l.Store.SubmitCompletion(ctx, rep)
	if err != nil {
		return models.CompletionReport{}, err
	}

	ticket.Status = models.StatusPendingApproval
	l.publish(ctx, events.TicketCompleted, ticket)
	return stored, nil
}

// Approve runs Pending Approval -> Resolved and credits the supervisor.
func (l Lifecycle) Approve(ctx context.Context, sess SessionScope, ticketID string) (models.Ticket, error) {
	ticket, err := l.Store.ApproveTicket(ctx, ticketID, sess.MunicipalityID)
	if err != nil {
		return models.Ticket{}, err
	}
	l.refreshBadges(ctx, ticket.ReporterID)
	l.publish(ctx, events.TicketApproved, ticket)
	return ticket, nil
}

// Reject runs Pending Approval -> In Progress, the single legal backward
// edge. A reason is mandatory; fraudulent evidence also costs the
// supervisor trust points.
func (l Lifecycle) Reject(ctx context.Context, sess SessionScope, ticketID, reason string, fraudulent bool) (models.Ticket, error) {
	if strings.TrimSpace(reason) == "" {
		return models.Ticket{}, ValidationError{Msg: "a rejection reason is required"}
	}
	ticket, err := l.Store.RejectTicket(ctx, ticketID, sess.MunicipalityID, reason, fraudulent, SupervisorFraudPenalty)
	if err != nil {
		return models.Ticket{}, err
	}
	l.publish(ctx, events.TicketRejected, ticket)
	return ticket, nil
}

// Join adds a citizen to an existing open report.
func (l Lifecycle) Join(ctx context.Context, userID, ticketID string) (models.Ticket, error) {
	ticket, err := l.Store.JoinTicket(ctx, ticketID, userID, JoinUtilityAward)
	if err != nil {
		return models.Ticket{}, err
	}
	l.refreshBadges(ctx, userID)
	l.publish(ctx, events.TicketJoined, ticket)
	return ticket, nil
}

// Feedback records a citizen rating on a resolved ticket they reported.
func (l Lifecycle) Feedback(ctx context.Context, userID, ticketID string, rating int, comment string) (models.Feedback, error) {
	if rating < 1 || rating > 5 {
		return models.Feedback{}, ValidationError{Msg: "rating must be between 1 and 5"}
	}
	ticket, err := l.Store.GetTicket(ctx, ticketID)
	if err != nil {
		return models.Feedback{}, err
	}
	reported := false
	for _, id := range ticket.ReportedBy {
		if id == userID {
			reported = true
			break
		}
	}
	if !reported {
		return models.Feedback{}, ErrForbidden
	}

	penalty := 0
	if rating <= NegativeRatingThreshold {
		penalty = SupervisorFeedbackPenalty
	}
	return l.Store.SaveFeedback(ctx, models.Feedback{
		TicketID: ticketID,
		UserID:   userID,
		Rating:   rating,
		Comment:  comment,
	}, penalty)
}

// SessionScope is the slice of an auth session the lifecycle cares about.
type SessionScope struct {
	MunicipalityID string
}

func (l Lifecycle) refreshBadges(ctx context.Context, userID string) {
	history, err := l.Store.ListTickets(ctx, db.TicketFilter{ReporterID: userID, Limit: 200})
	if err != nil {
		l.Logger.Error().Err(err).Str("user_id", userID).Msg("badge history load failed")
		return
	}
	badges := EvaluateBadges(StatsFromHistory(userID, history))
	if err := l.Store.UpdateUserBadges(ctx, userID, badges); err != nil {
		l.Logger.Error().Err(err).Str("user_id", userID).Msg("badge update failed")
	}
}

func (l Lifecycle) publish(ctx context.Context, typ events.EventType, t models.Ticket) {
	if l.Bus == nil {
		return
	}
	ev := events.TicketEvent{
		Type:           typ,
		TicketID:       t.ID,
		MunicipalityID: t.MunicipalityID,
		ReporterID:     t.ReporterID,
		Status:         t.Status,
		At:             time.Now().UTC(),
	}
	if t.AssignedSupervisorID != nil {
		ev.SupervisorID = *t.AssignedSupervisorID
	}
	if err := l.Bus.Publish(ctx, ev); err != nil {
		l.Logger.Error().Err(err).Str("ticket_id", t.ID).Msg("event publish failed")
	}
}
