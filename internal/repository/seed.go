package repository

import (
	"context"

	"github.com/abrezinsky/eventdash/internal/models"
)

// SampleEvents are loaded by Seed
var SampleEvents = []models.Event{
	{ID: "1", Name: "Tech Summit 2026", Date: "2026-03-15T09:00:00", Location: "Centro de Convenções SP", Status: models.EventStatusActive, Description: "Conferência anual de tecnologia"},
	{ID: "2", Name: "Workshop React Avançado", Date: "2026-03-20T14:00:00", Location: "Hub de Inovação RJ", Status: models.EventStatusActive, Description: "Workshop hands-on de React"},
	{ID: "3", Name: "Meetup Frontend", Date: "2026-02-10T19:00:00", Location: "Coworking Digital BH", Status: models.EventStatusClosed, Description: "Encontro mensal de devs frontend"},
	{ID: "4", Name: "Hackathon AI", Date: "2026-04-01T08:00:00", Location: "Campus Google SP", Status: models.EventStatusActive, Description: "Hackathon de inteligência artificial"},
	{ID: "5", Name: "DevOps Conference", Date: "2026-01-25T10:00:00", Location: "Teatro Municipal POA", Status: models.EventStatusClosed, Description: "Conferência sobre cultura DevOps"},
	{ID: "6", Name: "UX Design Week", Date: "2026-03-28T09:00:00", Location: "Museu da Imagem SP", Status: models.EventStatusActive, Description: "Semana dedicada ao design de experiência"},
}

// SampleParticipants are loaded by Seed
var SampleParticipants = []models.Participant{
	{ID: "1", Name: "Ana Silva", Email: "ana@email.com", EventID: "1", EventName: "Tech Summit 2026", CheckedIn: true, CheckedInAt: "2026-02-28T10:30:00"},
	{ID: "2", Name: "Carlos Oliveira", Email: "carlos@email.com", EventID: "1", EventName: "Tech Summit 2026"},
	{ID: "3", Name: "Maria Santos", Email: "maria@email.com", EventID: "2", EventName: "Workshop React Avançado", CheckedIn: true, CheckedInAt: "2026-02-28T09:15:00"},
	{ID: "4", Name: "João Pereira", Email: "joao@email.com", EventID: "2", EventName: "Workshop React Avançado"},
	{ID: "5", Name: "Fernanda Costa", Email: "fernanda@email.com", EventID: "3", EventName: "Meetup Frontend", CheckedIn: true, CheckedInAt: "2026-02-27T19:05:00"},
	{ID: "6", Name: "Pedro Almeida", Email: "pedro@email.com", EventID: "4", EventName: "Hackathon AI"},
	{ID: "7", Name: "Juliana Lima", Email: "juliana@email.com", EventID: "1", EventName: "Tech Summit 2026", CheckedIn: true, CheckedInAt: "2026-02-27T08:45:00"},
	{ID: "8", Name: "Rafael Souza", Email: "rafael@email.com", EventID: "6", EventName: "UX Design Week"},
}

// SampleCheckinRules are loaded by Seed
var SampleCheckinRules = []models.CheckinRule{
	{ID: "1", EventID: "1", Name: "QR Code", Enabled: true, Required: true, MinutesBefore: 30, MinutesAfter: 60},
	{ID: "2", EventID: "1", Name: "Documento", Enabled: true, Required: false, MinutesBefore: 15, MinutesAfter: 30},
	{ID: "3", EventID: "1", Name: "Lista Impressa", Enabled: false, Required: false, MinutesBefore: 60, MinutesAfter: 120},
}

// Seed loads the sample data when the store holds no events.
// It reports whether anything was inserted.
func (r *Repository) Seed(ctx context.Context) (bool, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&n); err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	for _, e := range SampleEvents {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO events (id, name, date, location, status, description)
			VALUES (?, ?, ?, ?, ?, ?)
		`, e.ID, e.Name, e.Date, e.Location, e.Status, e.Description); err != nil {
			return false, err
		}
	}
	for _, p := range SampleParticipants {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO participants (id, name, email, event_id, event_name, checked_in, checked_in_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, p.ID, p.Name, p.Email, p.EventID, p.EventName, p.CheckedIn, nullString(p.CheckedInAt)); err != nil {
			return false, err
		}
	}
	for i, rule := range SampleCheckinRules {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO checkin_rules (event_id, id, position, name, enabled, required, minutes_before, minutes_after)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, rule.EventID, rule.ID, i, rule.Name, rule.Enabled, rule.Required, rule.MinutesBefore, rule.MinutesAfter); err != nil {
			return false, err
		}
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}
