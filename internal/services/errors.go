package services

import (
	"github.com/abrezinsky/eventdash/internal/errors"
)

// Service errors
var (
	ErrEventNotFound        = errors.NotFound("Evento não encontrado")
	ErrParticipantNotFound  = errors.NotFound("Participante não encontrado")
	ErrSessionNotFound      = errors.NotFound("Sessão de edição não encontrada")
	ErrRuleNotFound         = errors.NotFound("Regra não encontrada")
	ErrSaveInProgress       = errors.Conflict("Salvamento já em andamento")
	ErrRuleNameRequired     = errors.Validation("Todas as regras precisam de um nome")
	ErrEventNameRequired    = errors.Validation("Nome é obrigatório")
	ErrEventDateRequired    = errors.Validation("Data é obrigatória")
	ErrEventLocationMissing = errors.Validation("Local é obrigatório")
	ErrInvalidEventStatus   = errors.Validation("Status deve ser Ativo ou Encerrado")
	ErrParticipantName      = errors.Validation("Nome é obrigatório")
	ErrParticipantEmailMiss = errors.Validation("E-mail é obrigatório")
	ErrParticipantEmail     = errors.Validation("E-mail inválido")
	ErrParticipantEvent     = errors.Validation("Selecione um evento")
)

// WebSocket message types
const (
	MsgEventsChanged       = "events_changed"
	MsgParticipantsChanged = "participants_changed"
	MsgParticipantCheckin  = "participant_checkin"
	MsgCheckinRulesSaved   = "checkin_rules_saved"
	MsgDashboardStats      = "dashboard_stats"
)
