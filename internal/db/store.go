package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/civicpulse/backend/internal/models"
)

type Store struct {
	Pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Store{Pool: pool}, nil
}

func (s *Store) Close() {
	s.Pool.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.Pool.Ping(ctx)
}

func (s *Store) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

const ticketColumns = `id, reporter_id, municipality_id, title, category, notes, transcription,
	image_urls, lat, lng, address, status, priority, severity_score, severity_reasoning,
	submitted_at, estimated_resolution_date, deadline_date, resolved_at,
	assigned_supervisor_id, assigned_supervisor_name, report_count, reported_by, rejection_reason`

func scanTicket(row pgx.Row) (models.Ticket, error) {
	var t models.Ticket
	err := row.Scan(
		&t.ID, &t.ReporterID, &t.MunicipalityID, &t.Title, &t.Category, &t.Notes, &t.Transcription,
		&t.ImageURLs, &t.Lat, &t.Lng, &t.Address, &t.Status, &t.Priority, &t.SeverityScore, &t.SeverityReasoning,
		&t.SubmittedAt, &t.EstimatedResolutionDate, &t.DeadlineDate, &t.ResolvedAt,
		&t.AssignedSupervisorID, &t.AssignedSupervisorName, &t.ReportCount, &t.ReportedBy, &t.RejectionReason,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Ticket{}, ErrNotFound
	}
	return t, err
}

func collectTickets(rows pgx.Rows) ([]models.Ticket, error) {
	defer rows.Close()
	var out []models.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// CreateTicket persists a triaged ticket and credits the reporter's utility
// points in the same transaction.
func (s *Store) CreateTicket(ctx context.Context, t models.Ticket, utilityAward int) (models.Ticket, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.SubmittedAt.IsZero() {
		t.SubmittedAt = time.Now().UTC()
	}
	t.Status = models.StatusSubmitted
	t.ReportCount = 1
	t.ReportedBy = []string{t.ReporterID}

	err := s.WithTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO tickets (id, reporter_id, municipality_id, title, category, notes, transcription,
				image_urls, lat, lng, address, status, priority, severity_score, severity_reasoning,
				submitted_at, estimated_resolution_date, report_count, reported_by)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
		`, t.ID, t.ReporterID, t.MunicipalityID, t.Title, t.Category, t.Notes, t.Transcription,
			t.ImageURLs, t.Lat, t.Lng, t.Address, t.Status, t.Priority, t.SeverityScore, t.SeverityReasoning,
			t.SubmittedAt, t.EstimatedResolutionDate, t.ReportCount, t.ReportedBy)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `UPDATE users SET utility_points = utility_points + $1 WHERE id = $2`, utilityAward, t.ReporterID)
		return err
	})
	if err != nil {
		return models.Ticket{}, err
	}
	return t, nil
}

func (s *Store) GetTicket(ctx context.Context, id string) (models.Ticket, error) {
	row := s.Pool.QueryRow(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE id = $1`, id)
	return scanTicket(row)
}

type TicketFilter struct {
	MunicipalityID string
	ReporterID     string
	SupervisorID   string
	Statuses       []models.TicketStatus
	Category       models.Category
	Limit          int
	Offset         int
}

func (s *Store) ListTickets(ctx context.Context, f TicketFilter) ([]models.Ticket, error) {
	if f.Limit <= 0 || f.Limit > 200 {
		f.Limit = 50
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	query := `SELECT ` + ticketColumns + ` FROM tickets`
	var args []any
	var wheres []string
	if f.MunicipalityID != "" {
		args = append(args, f.MunicipalityID)
		wheres = append(wheres, fmt.Sprintf("municipality_id = $%d", len(args)))
	}
	if f.ReporterID != "" {
		args = append(args, f.ReporterID)
		wheres = append(wheres, fmt.Sprintf("($%d = ANY(reported_by))", len(args)))
	}
	if f.SupervisorID != "" {
		args = append(args, f.SupervisorID)
		wheres = append(wheres, fmt.Sprintf("assigned_supervisor_id = $%d", len(args)))
	}
	if len(f.Statuses) > 0 {
		statuses := make([]string, 0, len(f.Statuses))
		for _, st := range f.Statuses {
			statuses = append(statuses, string(st))
		}
		args = append(args, statuses)
		wheres = append(wheres, fmt.Sprintf("status = ANY($%d)", len(args)))
	}
	if f.Category != "" {
		args = append(args, string(f.Category))
		wheres = append(wheres, fmt.Sprintf("category = $%d", len(args)))
	}
	if len(wheres) > 0 {
		query += " WHERE " + strings.Join(wheres, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY submitted_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, f.Limit, f.Offset)

	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectTickets(rows)
}

// NearbyOpenTickets returns unresolved tickets of the same category inside a
// rough bounding window; the caller applies the precise distance cut.
func (s *Store) NearbyOpenTickets(ctx context.Context, municipalityID string, category models.Category, lat, lng, windowDeg float64) ([]models.Ticket, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT `+ticketColumns+` FROM tickets
		WHERE municipality_id = $1 AND category = $2 AND status != 'Resolved'
			AND lat BETWEEN $3 AND $4 AND lng BETWEEN $5 AND $6
		ORDER BY submitted_at DESC LIMIT 50
	`, municipalityID, category, lat-windowDeg, lat+windowDeg, lng-windowDeg, lng+windowDeg)
	if err != nil {
		return nil, err
	}
	return collectTickets(rows)
}

// AssignTicket moves a Submitted ticket to In Progress. The status guard in
// the WHERE clause makes concurrent assignments race on a single conditional
// update: the loser matches zero rows and gets ErrConflict.
func (s *Store) AssignTicket(ctx context.Context, ticketID, municipalityID string, sup models.Supervisor, deadline time.Time) error {
	tag, err := s.Pool.Exec(ctx, `
		UPDATE tickets
		SET status = $1, assigned_supervisor_id = $2, assigned_supervisor_name = $3,
			deadline_date = $4, estimated_resolution_date = $4
		WHERE id = $5 AND municipality_id = $6 AND status = $7
	`, models.StatusInProgress, sup.ID, sup.Name, deadline, ticketID, municipalityID, models.StatusSubmitted)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return s.conflictOrMissing(ctx, ticketID, municipalityID)
	}
	return nil
}

// SubmitCompletion moves an In Progress ticket to Pending Approval and
// appends the completion report in one transaction.
func (s *Store) SubmitCompletion(ctx context.Context, rep models.CompletionReport) (models.CompletionReport, error) {
	if rep.ID == "" {
		rep.ID = uuid.NewString()
	}
	if rep.SubmittedAt.IsZero() {
		rep.SubmittedAt = time.Now().UTC()
	}

	err := s.WithTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE tickets SET status = $1
			WHERE id = $2 AND status = $3 AND assigned_supervisor_id = $4
		`, models.StatusPendingApproval, rep.TicketID, models.StatusInProgress, rep.SupervisorID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrConflict
		}

		if err := tx.QueryRow(ctx,
			`SELECT COUNT(*) + 1 FROM completion_reports WHERE ticket_id = $1`, rep.TicketID,
		).Scan(&rep.Attempt); err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO completion_reports (id, ticket_id, supervisor_id, notes, image_urls, analysis, analysis_pending, attempt, submitted_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		`, rep.ID, rep.TicketID, rep.SupervisorID, rep.Notes, rep.ImageURLs, rep.Analysis, rep.AnalysisPending, rep.Attempt, rep.SubmittedAt)
		return err
	})
	if err != nil {
		return models.CompletionReport{}, err
	}
	return rep, nil
}

// ApproveTicket resolves a Pending Approval ticket and credits the assigned
// supervisor's efficiency points atomically with the status flip.
func (s *Store) ApproveTicket(ctx context.Context, ticketID, municipalityID string) (models.Ticket, error) {
	var t models.Ticket
	err := s.WithTx(ctx, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `
			UPDATE tickets SET status = $1, resolved_at = NOW()
			WHERE id = $2 AND municipality_id = $3 AND status = $4
			RETURNING `+ticketColumns+`
		`, models.StatusResolved, ticketID, municipalityID, models.StatusPendingApproval)
		var err error
		t, err = scanTicket(row)
		if errors.Is(err, ErrNotFound) {
			return s.conflictOrMissing(ctx, ticketID, municipalityID)
		}
		if err != nil {
			return err
		}
		if t.AssignedSupervisorID != nil {
			_, err = tx.Exec(ctx, `UPDATE supervisors SET efficiency_points = efficiency_points + 1 WHERE id = $1`, *t.AssignedSupervisorID)
		}
		return err
	})
	if err != nil {
		return models.Ticket{}, err
	}
	return t, nil
}

// RejectTicket sends a Pending Approval ticket back to In Progress with the
// staff reason. Completion report rows are never touched; history stays.
func (s *Store) RejectTicket(ctx context.Context, ticketID, municipalityID, reason string, penalizeSupervisor bool, trustPenalty int) (models.Ticket, error) {
	var t models.Ticket
	err := s.WithTx(ctx, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `
			UPDATE tickets SET status = $1, rejection_reason = $2
			WHERE id = $3 AND municipality_id = $4 AND status = $5
			RETURNING `+ticketColumns+`
		`, models.StatusInProgress, reason, ticketID, municipalityID, models.StatusPendingApproval)
		var err error
		t, err = scanTicket(row)
		if errors.Is(err, ErrNotFound) {
			return s.conflictOrMissing(ctx, ticketID, municipalityID)
		}
		if err != nil {
			return err
		}
		if penalizeSupervisor && t.AssignedSupervisorID != nil {
			_, err = tx.Exec(ctx, `UPDATE supervisors SET trust_points = trust_points - $1 WHERE id = $2`, trustPenalty, *t.AssignedSupervisorID)
		}
		return err
	})
	if err != nil {
		return models.Ticket{}, err
	}
	return t, nil
}

// JoinTicket records a citizen joining an existing report. The array guard
// keeps the operation idempotent per citizen.
func (s *Store) JoinTicket(ctx context.Context, ticketID, userID string, utilityAward int) (models.Ticket, error) {
	var t models.Ticket
	err := s.WithTx(ctx, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `
			UPDATE tickets
			SET report_count = report_count + 1, reported_by = array_append(reported_by, $1)
			WHERE id = $2 AND status != $3 AND NOT ($1 = ANY(reported_by))
			RETURNING `+ticketColumns+`
		`, userID, ticketID, models.StatusResolved)
		var err error
		t, err = scanTicket(row)
		if errors.Is(err, ErrNotFound) {
			if _, getErr := s.getTicketTx(ctx, tx, ticketID); errors.Is(getErr, ErrNotFound) {
				return ErrNotFound
			}
			return ErrConflict
		}
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `UPDATE users SET utility_points = utility_points + $1 WHERE id = $2`, utilityAward, userID)
		return err
	})
	if err != nil {
		return models.Ticket{}, err
	}
	return t, nil
}

// SaveFeedback stores citizen feedback on a resolved ticket, penalizing the
// supervisor's trust points when the rating is negative.
func (s *Store) SaveFeedback(ctx context.Context, fb models.Feedback, trustPenalty int) (models.Feedback, error) {
	if fb.ID == "" {
		fb.ID = uuid.NewString()
	}
	if fb.CreatedAt.IsZero() {
		fb.CreatedAt = time.Now().UTC()
	}
	err := s.WithTx(ctx, func(tx pgx.Tx) error {
		t, err := s.getTicketTx(ctx, tx, fb.TicketID)
		if err != nil {
			return err
		}
		if t.Status != models.StatusResolved {
			return ErrConflict
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO feedback (id, ticket_id, user_id, rating, comment, created_at)
			VALUES ($1,$2,$3,$4,$5,$6)
		`, fb.ID, fb.TicketID, fb.UserID, fb.Rating, fb.Comment, fb.CreatedAt)
		if err != nil {
			return err
		}
		if trustPenalty > 0 && t.AssignedSupervisorID != nil {
			_, err = tx.Exec(ctx, `UPDATE supervisors SET trust_points = trust_points - $1 WHERE id = $2`, trustPenalty, *t.AssignedSupervisorID)
		}
		return err
	})
	if err != nil {
		return models.Feedback{}, err
	}
	return fb, nil
}

func (s *Store) getTicketTx(ctx context.Context, tx pgx.Tx, id string) (models.Ticket, error) {
	row := tx.QueryRow(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE id = $1`, id)
	return scanTicket(row)
}

func (s *Store) conflictOrMissing(ctx context.Context, ticketID, municipalityID string) error {
	var exists bool
	err := s.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM tickets WHERE id = $1 AND municipality_id = $2)`,
		ticketID, municipalityID,
	).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	return ErrConflict
}

// CountPendingTickets is the workload input for deadline computation.
func (s *Store) CountPendingTickets(ctx context.Context, municipalityID string) (int, error) {
	var n int
	err := s.Pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM tickets
		WHERE municipality_id = $1 AND status IN ($2, $3)
	`, municipalityID, models.StatusSubmitted, models.StatusInProgress).Scan(&n)
	return n, err
}

func (s *Store) ListCompletionReports(ctx context.Context, ticketID string) ([]models.CompletionReport, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT id, ticket_id, supervisor_id, notes, image_urls, analysis, analysis_pending, attempt, submitted_at
		FROM completion_reports WHERE ticket_id = $1 ORDER BY attempt ASC
	`, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.CompletionReport
	for rows.Next() {
		var r models.CompletionReport
		if err := rows.Scan(&r.ID, &r.TicketID, &r.SupervisorID, &r.Notes, &r.ImageURLs, &r.Analysis, &r.AnalysisPending, &r.Attempt, &r.SubmittedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) CreateUser(ctx context.Context, u models.UserProfile) (models.UserProfile, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.JoinedAt.IsZero() {
		u.JoinedAt = time.Now().UTC()
	}
	u.TrustPoints = 100
	u.Badges = []string{}
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO users (id, email, display_name, password_hash, utility_points, trust_points, badges, joined_at)
		VALUES ($1,$2,$3,$4,0,$5,$6,$7)
	`, u.ID, u.Email, u.DisplayName, u.PasswordHash, u.TrustPoints, u.Badges, u.JoinedAt)
	if err != nil {
		return models.UserProfile{}, err
	}
	return u, nil
}

func (s *Store) GetUser(ctx context.Context, id string) (models.UserProfile, error) {
	row := s.Pool.QueryRow(ctx, `
		SELECT id, email, display_name, password_hash, utility_points, trust_points, badges, joined_at
		FROM users WHERE id = $1
	`, id)
	return scanUser(row)
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (models.UserProfile, error) {
	row := s.Pool.QueryRow(ctx, `
		SELECT id, email, display_name, password_hash, utility_points, trust_points, badges, joined_at
		FROM users WHERE email = $1
	`, email)
	return scanUser(row)
}

func scanUser(row pgx.Row) (models.UserProfile, error) {
	var u models.UserProfile
	err := row.Scan(&u.ID, &u.Email, &u.DisplayName, &u.PasswordHash, &u.UtilityPoints, &u.TrustPoints, &u.Badges, &u.JoinedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.UserProfile{}, ErrNotFound
	}
	return u, err
}

func (s *Store) UpdateUserBadges(ctx context.Context, userID string, badges []string) error {
	_, err := s.Pool.Exec(ctx, `UPDATE users SET badges = $1 WHERE id = $2`, badges, userID)
	return err
}

func (s *Store) AdjustUserTrust(ctx context.Context, userID string, delta int) error {
	_, err := s.Pool.Exec(ctx, `UPDATE users SET trust_points = trust_points + $1 WHERE id = $2`, delta, userID)
	return err
}

const supervisorColumns = `id, name, login_id, password_hash, department, phone, municipality_id,
	trust_points, ai_image_warning_count, efficiency_points, created_at`

func scanSupervisor(row pgx.Row) (models.Supervisor, error) {
	var sv models.Supervisor
	err := row.Scan(&sv.ID, &sv.Name, &sv.LoginID, &sv.PasswordHash, &sv.Department, &sv.Phone,
		&sv.MunicipalityID, &sv.TrustPoints, &sv.AIImageWarningCount, &sv.EfficiencyPoints, &sv.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Supervisor{}, ErrNotFound
	}
	return sv, err
}

func (s *Store) CreateSupervisor(ctx context.Context, sv models.Supervisor) (models.Supervisor, error) {
	if sv.ID == "" {
		sv.ID = uuid.NewString()
	}
	if sv.CreatedAt.IsZero() {
		sv.CreatedAt = time.Now().UTC()
	}
	sv.TrustPoints = 100
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO supervisors (id, name, login_id, password_hash, department, phone, municipality_id, trust_points, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`, sv.ID, sv.Name, sv.LoginID, sv.PasswordHash, sv.Department, sv.Phone, sv.MunicipalityID, sv.TrustPoints, sv.CreatedAt)
	if err != nil {
		return models.Supervisor{}, err
	}
	return sv, nil
}

func (s *Store) GetSupervisor(ctx context.Context, id string) (models.Supervisor, error) {
	row := s.Pool.QueryRow(ctx, `SELECT `+supervisorColumns+` FROM supervisors WHERE id = $1`, id)
	return scanSupervisor(row)
}

func (s *Store) GetSupervisorByLogin(ctx context.Context, loginID string) (models.Supervisor, error) {
	row := s.Pool.QueryRow(ctx, `SELECT `+supervisorColumns+` FROM supervisors WHERE login_id = $1`, loginID)
	return scanSupervisor(row)
}

func (s *Store) ListSupervisors(ctx context.Context, municipalityID string) ([]models.Supervisor, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT `+supervisorColumns+` FROM supervisors WHERE municipality_id = $1 ORDER BY name ASC
	`, municipalityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Supervisor
	for rows.Next() {
		sv, err := scanSupervisor(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sv)
	}
	return out, rows.Err()
}

// FlagSupervisorAIImage records a suspected AI-generated completion photo.
func (s *Store) FlagSupervisorAIImage(ctx context.Context, supervisorID string, trustPenalty int) error {
	_, err := s.Pool.Exec(ctx, `
		UPDATE supervisors
		SET ai_image_warning_count = ai_image_warning_count + 1, trust_points = trust_points - $1
		WHERE id = $2
	`, trustPenalty, supervisorID)
	return err
}

func (s *Store) CreateMunicipality(ctx context.Context, m models.Municipality) (models.Municipality, error) {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO municipalities (id, name, login_id, password_hash, created_at)
		VALUES ($1,$2,$3,$4,$5)
	`, m.ID, m.Name, m.LoginID, m.PasswordHash, m.CreatedAt)
	if err != nil {
		return models.Municipality{}, err
	}
	return m, nil
}

func (s *Store) GetMunicipalityByLogin(ctx context.Context, loginID string) (models.Municipality, error) {
	row := s.Pool.QueryRow(ctx, `
		SELECT id, name, login_id, password_hash, created_at FROM municipalities WHERE login_id = $1
	`, loginID)
	var m models.Municipality
	err := row.Scan(&m.ID, &m.Name, &m.LoginID, &m.PasswordHash, &m.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Municipality{}, ErrNotFound
	}
	return m, err
}

// StatusCounts powers the staff analytics view.
func (s *Store) StatusCounts(ctx context.Context, municipalityID string) (map[models.TicketStatus]int, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT status, COUNT(*) FROM tickets WHERE municipality_id = $1 GROUP BY status
	`, municipalityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[models.TicketStatus]int{}
	for rows.Next() {
		var st models.TicketStatus
		var n int
		if err := rows.Scan(&st, &n); err != nil {
			return nil, err
		}
		out[st] = n
	}
	return out, rows.Err()
}

// ResolutionStats reports average resolution time and how many resolved
// tickets beat their deadline.
func (s *Store) ResolutionStats(ctx context.Context, municipalityID string) (avgDays float64, onTime, total int, err error) {
	err = s.Pool.QueryRow(ctx, `
		SELECT COALESCE(AVG(EXTRACT(EPOCH FROM resolved_at - submitted_at) / 86400), 0),
			COUNT(*) FILTER (WHERE deadline_date IS NOT NULL AND resolved_at <= deadline_date),
			COUNT(*)
		FROM tickets
		WHERE municipality_id = $1 AND status = $2 AND resolved_at IS NOT NULL
	`, municipalityID, models.StatusResolved).Scan(&avgDays, &onTime, &total)
	return avgDays, onTime, total, err
}
