package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	_ "github.com/mattn/go-sqlite3"

	"github.com/abrezinsky/eventdash/internal/models"
)

// Repository provides data access methods
type Repository struct {
	db      *sql.DB
	node    *snowflake.Node
	nodeID  int64
	latency time.Duration
}

// Option configures a Repository
type Option func(*Repository)

// WithLatency delays every data access call by d to mimic a remote backend
func WithLatency(d time.Duration) Option {
	return func(r *Repository) { r.latency = d }
}

// WithNodeID sets the snowflake node used to generate record ids
func WithNodeID(id int64) Option {
	return func(r *Repository) { r.nodeID = id }
}

// New creates a new Repository
func New(dbPath string, opts ...Option) (*Repository, error) {
	repo := &Repository{nodeID: 1}
	for _, opt := range opts {
		opt(repo)
	}

	node, err := snowflake.NewNode(repo.nodeID)
	if err != nil {
		return nil, fmt.Errorf("creating id generator: %w", err)
	}
	repo.node = node

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable foreign key constraints
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, err
	}

	// Set connection pool settings
	db.SetMaxOpenConns(1) // SQLite works best with single connection
	db.SetMaxIdleConns(1)
	repo.db = db

	// Run migrations
	if err := repo.migrate(); err != nil {
		return nil, err
	}

	return repo, nil
}

// DB returns the underlying database connection (for transactions)
func (r *Repository) DB() *sql.DB {
	return r.db
}

// Close closes the database connection
func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping checks if the database connection is alive
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// migrate runs database migrations
func (r *Repository) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS events (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			date TEXT NOT NULL,
			location TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'Ativo',
			description TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS participants (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			event_id TEXT NOT NULL,
			event_name TEXT NOT NULL DEFAULT '',
			checked_in INTEGER NOT NULL DEFAULT 0,
			checked_in_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS checkin_rules (
			event_id TEXT NOT NULL,
			id TEXT NOT NULL,
			position INTEGER NOT NULL,
			name TEXT NOT NULL DEFAULT '',
			enabled INTEGER NOT NULL DEFAULT 1,
			required INTEGER NOT NULL DEFAULT 0,
			minutes_before INTEGER NOT NULL DEFAULT 0,
			minutes_after INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (event_id, id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_participants_event ON participants(event_id)`,
		`CREATE INDEX IF NOT EXISTS idx_participants_checked_in_at ON participants(checked_in_at)`,
	}

	for _, m := range migrations {
		if _, err := r.db.Exec(m); err != nil {
			return err
		}
	}
	return nil
}

// wait applies the configured latency, returning early if ctx ends first
func (r *Repository) wait(ctx context.Context) error {
	if r.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(r.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (r *Repository) nextID() string {
	return r.node.Generate().String()
}

// ==================== Event Methods ====================

// ListEvents returns all events in creation order
func (r *Repository) ListEvents(ctx context.Context) ([]models.Event, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, date, location, status, description
		FROM events
		ORDER BY rowid
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []models.Event{}
	for rows.Next() {
		var e models.Event
		if err := rows.Scan(&e.ID, &e.Name, &e.Date, &e.Location, &e.Status, &e.Description); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// GetEvent returns an event by ID
func (r *Repository) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	var e models.Event
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, date, location, status, description
		FROM events WHERE id = ?
	`, id).Scan(&e.ID, &e.Name, &e.Date, &e.Location, &e.Status, &e.Description)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// CreateEvent stores a new event, assigning an ID when it has none
func (r *Repository) CreateEvent(ctx context.Context, event models.Event) (models.Event, error) {
	if err := r.wait(ctx); err != nil {
		return models.Event{}, err
	}
	if event.ID == "" {
		event.ID = r.nextID()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO events (id, name, date, location, status, description)
		VALUES (?, ?, ?, ?, ?, ?)
	`, event.ID, event.Name, event.Date, event.Location, event.Status, event.Description)
	if err != nil {
		return models.Event{}, err
	}
	return event, nil
}

// UpdateEvent overwrites all fields of an existing event
func (r *Repository) UpdateEvent(ctx context.Context, event models.Event) error {
	if err := r.wait(ctx); err != nil {
		return err
	}
	result, err := r.db.ExecContext(ctx, `
		UPDATE events SET name = ?, date = ?, location = ?, status = ?, description = ?
		WHERE id = ?
	`, event.Name, event.Date, event.Location, event.Status, event.Description, event.ID)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// DeleteEvent removes an event and its check-in rules.
// Deleting an unknown event is not an error.
func (r *Repository) DeleteEvent(ctx context.Context, id string) error {
	if err := r.wait(ctx); err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM checkin_rules WHERE event_id = ?`, id); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	return err
}

// CountEvents returns the number of events
func (r *Repository) CountEvents(ctx context.Context) (int, error) {
	if err := r.wait(ctx); err != nil {
		return 0, err
	}
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&n)
	return n, err
}

// ListUpcomingEvents returns up to limit active events, earliest first
func (r *Repository) ListUpcomingEvents(ctx context.Context, limit int) ([]models.UpcomingEvent, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, date, location
		FROM events
		WHERE status = ?
		ORDER BY date, rowid
		LIMIT ?
	`, models.EventStatusActive, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []models.UpcomingEvent{}
	for rows.Next() {
		var e models.UpcomingEvent
		if err := rows.Scan(&e.ID, &e.Name, &e.Date, &e.Location); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// ==================== Participant Methods ====================

const participantColumns = `id, name, email, event_id, event_name, checked_in, checked_in_at`

func scanParticipant(scan func(dest ...any) error) (models.Participant, error) {
	var p models.Participant
	var checkedInAt sql.NullString
	if err := scan(&p.ID, &p.Name, &p.Email, &p.EventID, &p.EventName, &p.CheckedIn, &checkedInAt); err != nil {
		return p, err
	}
	p.CheckedInAt = checkedInAt.String
	return p, nil
}

// ListParticipants returns all participants in registration order
func (r *Repository) ListParticipants(ctx context.Context) ([]models.Participant, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, `SELECT `+participantColumns+` FROM participants ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	participants := []models.Participant{}
	for rows.Next() {
		p, err := scanParticipant(rows.Scan)
		if err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}

// GetParticipant returns a participant by ID
func (r *Repository) GetParticipant(ctx context.Context, id string) (*models.Participant, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	row := r.db.QueryRowContext(ctx, `SELECT `+participantColumns+` FROM participants WHERE id = ?`, id)
	p, err := scanParticipant(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateParticipant stores a new participant, assigning an ID when it has none
func (r *Repository) CreateParticipant(ctx context.Context, p models.Participant) (models.Participant, error) {
	if err := r.wait(ctx); err != nil {
		return models.Participant{}, err
	}
	if p.ID == "" {
		p.ID = r.nextID()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO participants (id, name, email, event_id, event_name, checked_in, checked_in_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.Name, p.Email, p.EventID, p.EventName, p.CheckedIn, nullString(p.CheckedInAt))
	if err != nil {
		return models.Participant{}, err
	}
	return p, nil
}

// UpdateParticipant overwrites all fields of an existing participant
func (r *Repository) UpdateParticipant(ctx context.Context, p models.Participant) error {
	if err := r.wait(ctx); err != nil {
		return err
	}
	result, err := r.db.ExecContext(ctx, `
		UPDATE participants
		SET name = ?, email = ?, event_id = ?, event_name = ?, checked_in = ?, checked_in_at = ?
		WHERE id = ?
	`, p.Name, p.Email, p.EventID, p.EventName, p.CheckedIn, nullString(p.CheckedInAt), p.ID)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// DeleteParticipant removes a participant. Deleting an unknown participant is not an error.
func (r *Repository) DeleteParticipant(ctx context.Context, id string) error {
	if err := r.wait(ctx); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `DELETE FROM participants WHERE id = ?`, id)
	return err
}

// SetCheckedIn records a participant's check-in state. An empty at clears the timestamp.
func (r *Repository) SetCheckedIn(ctx context.Context, id string, checkedIn bool, at string) error {
	if err := r.wait(ctx); err != nil {
		return err
	}
	result, err := r.db.ExecContext(ctx,
		`UPDATE participants SET checked_in = ?, checked_in_at = ? WHERE id = ?`,
		checkedIn, nullString(at), id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// RenameParticipantsEvent updates the denormalised event name of an event's participants
func (r *Repository) RenameParticipantsEvent(ctx context.Context, eventID, eventName string) error {
	if err := r.wait(ctx); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `UPDATE participants SET event_name = ? WHERE event_id = ?`, eventName, eventID)
	return err
}

// CountParticipants returns the number of participants
func (r *Repository) CountParticipants(ctx context.Context) (int, error) {
	if err := r.wait(ctx); err != nil {
		return 0, err
	}
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM participants`).Scan(&n)
	return n, err
}

// ListRecentCheckins returns up to limit check-ins, most recent first
func (r *Repository) ListRecentCheckins(ctx context.Context, limit int) ([]models.RecentCheckin, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, event_name, checked_in_at
		FROM participants
		WHERE checked_in = 1 AND checked_in_at IS NOT NULL
		ORDER BY checked_in_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	checkins := []models.RecentCheckin{}
	for rows.Next() {
		var c models.RecentCheckin
		if err := rows.Scan(&c.ID, &c.ParticipantName, &c.EventName, &c.Time); err != nil {
			return nil, err
		}
		checkins = append(checkins, c)
	}
	return checkins, rows.Err()
}

// ==================== Check-in Rule Methods ====================

// ListCheckinRules returns an event's rules in stored order
func (r *Repository) ListCheckinRules(ctx context.Context, eventID string) ([]models.CheckinRule, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, event_id, name, enabled, required, minutes_before, minutes_after
		FROM checkin_rules
		WHERE event_id = ?
		ORDER BY position
	`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rules := []models.CheckinRule{}
	for rows.Next() {
		var rule models.CheckinRule
		if err := rows.Scan(&rule.ID, &rule.EventID, &rule.Name, &rule.Enabled, &rule.Required,
			&rule.MinutesBefore, &rule.MinutesAfter); err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}

// ReplaceCheckinRules atomically replaces all of an event's rules, keeping their order
func (r *Repository) ReplaceCheckinRules(ctx context.Context, eventID string, rules []models.CheckinRule) error {
	if err := r.wait(ctx); err != nil {
		return err
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM checkin_rules WHERE event_id = ?`, eventID); err != nil {
		return err
	}
	for i, rule := range rules {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO checkin_rules (event_id, id, position, name, enabled, required, minutes_before, minutes_after)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, eventID, rule.ID, i, rule.Name, rule.Enabled, rule.Required, rule.MinutesBefore, rule.MinutesAfter)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ==================== Helpers ====================

func requireAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
