package repository

import (
	"time"

	"github.com/automaten-pro/automaten-api/internal/domain/entity"
)

// SalesRepository is the persistence port for sales sessions and their items.
// Closed sessions are terminal; only EmailSent may change afterwards.
type SalesRepository interface {
	CreateSession(session *entity.SalesSession) error
	GetSession(id string) (*entity.SalesSession, error)
	GetOpenByMachine(machineID string) (*entity.SalesSession, error)
	CloseSession(session *entity.SalesSession) error
	MarkEmailSent(id string) error
	CountOpen() (int, error)
	ListSessions(from, to time.Time, limit, offset int) ([]*entity.SalesSession, error)

	AddItem(item *entity.SalesItem) error
	ListItems(sessionID string) ([]*entity.SalesItem, error)
}
