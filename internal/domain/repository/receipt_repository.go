package repository

import "github.com/jhoicas/Kardex-api/internal/domain/entity"

// ReceiptRepository define el puerto de las recepciones de compra.
// Append-only: una recepción nunca se edita después de insertada.
type ReceiptRepository interface {
	Create(receipt *entity.Receipt) error
	ListByPurchaseOrder(orderID string) ([]*entity.Receipt, error)
}
