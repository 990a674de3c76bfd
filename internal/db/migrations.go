package db

import "context"

const schema = `
CREATE TABLE IF NOT EXISTS municipalities (
	id            TEXT PRIMARY KEY,
	name          TEXT NOT NULL,
	login_id      TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS users (
	id             TEXT PRIMARY KEY,
	email          TEXT NOT NULL UNIQUE,
	display_name   TEXT NOT NULL,
	password_hash  TEXT NOT NULL,
	utility_points INT NOT NULL DEFAULT 0,
	trust_points   INT NOT NULL DEFAULT 100,
	badges         TEXT[] NOT NULL DEFAULT '{}',
	joined_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS supervisors (
	id                     TEXT PRIMARY KEY,
	name                   TEXT NOT NULL,
	login_id               TEXT NOT NULL UNIQUE,
	password_hash          TEXT NOT NULL,
	department             TEXT NOT NULL,
	phone                  TEXT NOT NULL DEFAULT '',
	municipality_id        TEXT NOT NULL REFERENCES municipalities(id),
	trust_points           INT NOT NULL DEFAULT 100,
	ai_image_warning_count INT NOT NULL DEFAULT 0,
	efficiency_points      INT NOT NULL DEFAULT 0,
	created_at             TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS tickets (
	id                        TEXT PRIMARY KEY,
	reporter_id               TEXT NOT NULL REFERENCES users(id),
	municipality_id           TEXT NOT NULL REFERENCES municipalities(id),
	title                     TEXT NOT NULL,
	category                  TEXT NOT NULL CHECK (category IN ('Pothole','Streetlight','Garbage','Water Leakage','Safety Hazard','Other')),
	notes                     TEXT NOT NULL DEFAULT '',
	transcription             TEXT NOT NULL DEFAULT '',
	image_urls                TEXT[] NOT NULL DEFAULT '{}',
	lat                       DOUBLE PRECISION NOT NULL,
	lng                       DOUBLE PRECISION NOT NULL,
	address                   TEXT NOT NULL DEFAULT '',
	status                    TEXT NOT NULL CHECK (status IN ('Submitted','In Progress','Pending Approval','Resolved')),
	priority                  TEXT NOT NULL CHECK (priority IN ('Low','Medium','High')),
	severity_score            INT NOT NULL DEFAULT 0,
	severity_reasoning        TEXT NOT NULL DEFAULT '',
	submitted_at              TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	estimated_resolution_date TIMESTAMPTZ NOT NULL,
	deadline_date             TIMESTAMPTZ,
	resolved_at               TIMESTAMPTZ,
	assigned_supervisor_id    TEXT REFERENCES supervisors(id),
	assigned_supervisor_name  TEXT,
	report_count              INT NOT NULL DEFAULT 1 CHECK (report_count >= 1),
	reported_by               TEXT[] NOT NULL DEFAULT '{}',
	rejection_reason          TEXT
);

CREATE INDEX IF NOT EXISTS idx_tickets_municipality_status ON tickets (municipality_id, status);
CREATE INDEX IF NOT EXISTS idx_tickets_supervisor ON tickets (assigned_supervisor_id);
CREATE INDEX IF NOT EXISTS idx_tickets_reporter ON tickets (reporter_id);

CREATE TABLE IF NOT EXISTS completion_reports (
	id               TEXT PRIMARY KEY,
	ticket_id        TEXT NOT NULL REFERENCES tickets(id),
	supervisor_id    TEXT NOT NULL REFERENCES supervisors(id),
	notes            TEXT NOT NULL DEFAULT '',
	image_urls       TEXT[] NOT NULL DEFAULT '{}',
	analysis         TEXT NOT NULL DEFAULT '',
	analysis_pending BOOLEAN NOT NULL DEFAULT FALSE,
	attempt          INT NOT NULL,
	submitted_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_completion_reports_ticket ON completion_reports (ticket_id);

CREATE TABLE IF NOT EXISTS feedback (
	id         TEXT PRIMARY KEY,
	ticket_id  TEXT NOT NULL REFERENCES tickets(id),
	user_id    TEXT NOT NULL REFERENCES users(id),
	rating     INT NOT NULL CHECK (rating BETWEEN 1 AND 5),
	comment    TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (ticket_id, user_id)
);
`

// Migrate applies the schema. Statements are idempotent so startup can run
// this unconditionally.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.Pool.Exec(ctx, schema)
	return err
}
