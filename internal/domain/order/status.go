package order

import (
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// Máquinas de estado de los documentos de orden. Las transiciones válidas son
// cerradas y el estado tras una recepción/despacho se deriva de las líneas,
// nunca se asigna a mano.

// CanReceive indica si una orden de compra admite recepciones en su estado actual.
func CanReceive(status string) bool {
	return status == entity.PurchaseStatusSent || status == entity.PurchaseStatusPartiallyReceived
}

// DerivePurchaseStatus deriva el estado de una orden de compra de sus líneas:
// COMPLETED si toda línea está completamente recibida, PARTIALLY_RECEIVED si
// alguna recibió algo, si no el estado abierto actual.
func DerivePurchaseStatus(lines []*entity.PurchaseOrderLine, openStatus string) string {
	allComplete := len(lines) > 0
	anyReceived := false
	for _, l := range lines {
		if l.ReceivedQty.IsPositive() {
			anyReceived = true
		}
		if l.ReceivedQty.LessThan(l.OrderedQty) {
			allComplete = false
		}
	}
	switch {
	case allComplete:
		return entity.PurchaseStatusCompleted
	case anyReceived:
		return entity.PurchaseStatusPartiallyReceived
	default:
		return openStatus
	}
}

// ValidatePurchaseTransition valida una transición explícita de orden de compra
// (Send/Cancel; las recepciones derivan el estado con DerivePurchaseStatus).
func ValidatePurchaseTransition(current, next string) error {
	allowed := map[string][]string{
		entity.PurchaseStatusDraft: {entity.PurchaseStatusSent, entity.PurchaseStatusCancelled},
		entity.PurchaseStatusSent:  {entity.PurchaseStatusCancelled},
	}
	return validate("purchase_order", current, next, allowed)
}

// ValidateSalesTransition valida una transición de orden de venta.
// DRAFT -> FULFILLED directo se rechaza: el despacho exige reserva previa
// (CONFIRMED) para que la validación de disponibilidad ya haya ocurrido.
func ValidateSalesTransition(current, next string) error {
	allowed := map[string][]string{
		entity.SalesStatusDraft:     {entity.SalesStatusConfirmed, entity.SalesStatusCancelled},
		entity.SalesStatusConfirmed: {entity.SalesStatusFulfilled, entity.SalesStatusCancelled},
		entity.SalesStatusFulfilled: {entity.SalesStatusInvoiced},
	}
	return validate("sales_order", current, next, allowed)
}

// ValidateTransferTransition valida una transición de traslado.
func ValidateTransferTransition(current, next string) error {
	allowed := map[string][]string{
		entity.TransferStatusDraft:     {entity.TransferStatusInTransit, entity.TransferStatusCancelled},
		entity.TransferStatusInTransit: {entity.TransferStatusCompleted, entity.TransferStatusCancelled},
	}
	return validate("transfer", current, next, allowed)
}

func validate(document, current, next string, allowed map[string][]string) error {
	for _, s := range allowed[current] {
		if s == next {
			return nil
		}
	}
	return &domain.InvalidTransitionError{Document: document, Current: current, Attempted: next}
}
