package repository

import (
	"time"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// TransferRepository define el puerto de persistencia de traslados.
type TransferRepository interface {
	Create(transfer *entity.Transfer) error
	GetByID(id string) (*entity.Transfer, error)
	GetByIDForUpdate(id string) (*entity.Transfer, error)
	// UpdateStatus muta el estado; at alimenta sent_at/completed_at según el
	// estado destino.
	UpdateStatus(transferID, status string, at time.Time) error
	ListByCompany(companyID, status string, limit, offset int) ([]*entity.Transfer, error)
}
