package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/application/orders"
)

// SalesHandler maneja las órdenes de venta: confirmar reserva, despachar,
// facturar y cancelar (protegido).
type SalesHandler struct {
	uc *orders.SalesUseCase
}

// NewSalesHandler construye el handler.
func NewSalesHandler(uc *orders.SalesUseCase) *SalesHandler {
	return &SalesHandler{uc: uc}
}

// Create crea una orden de venta en DRAFT.
// POST /api/sales-orders
func (h *SalesHandler) Create(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateSalesRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lines := make([]orders.SalesLineInput, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, orders.SalesLineInput{
			ProductID:  l.ProductID,
			OrderedQty: l.OrderedQty,
			UnitPrice:  l.UnitPrice,
		})
	}
	so, err := h.uc.Create(c.Context(), orders.CreateSalesInput{
		CompanyID:    companyID,
		UserID:       userID,
		WarehouseID:  in.WarehouseID,
		Number:       in.Number,
		CustomerName: in.CustomerName,
		Lines:        lines,
		Notes:        in.Notes,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SalesFromEntity(so))
}

// Confirm reserva el stock de cada línea (DRAFT -> CONFIRMED).
// POST /api/sales-orders/:id/confirm
func (h *SalesHandler) Confirm(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	if err := h.uc.Confirm(c.Context(), companyID, c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "orden confirmada, stock reservado"})
}

// Fulfill despacha la orden: sin body despacha todo lo pendiente, con body
// permite un despacho parcial contra líneas específicas.
// POST /api/sales-orders/:id/fulfill
func (h *SalesHandler) Fulfill(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var lines []orders.FulfillLineInput
	if len(c.Body()) > 0 {
		var in dto.FulfillRequest
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
		for _, l := range in.Lines {
			lines = append(lines, orders.FulfillLineInput{LineID: l.LineID, Quantity: l.Quantity})
		}
	}
	if err := h.uc.Fulfill(c.Context(), companyID, userID, c.Params("id"), lines); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "orden despachada"})
}

// Invoice marca la orden despachada como facturada (FULFILLED -> INVOICED).
// POST /api/sales-orders/:id/invoice
func (h *SalesHandler) Invoice(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	if err := h.uc.Invoice(c.Context(), companyID, c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "orden facturada"})
}

// Cancel cancela la orden; si estaba CONFIRMED libera las reservas.
// POST /api/sales-orders/:id/cancel
func (h *SalesHandler) Cancel(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	if err := h.uc.Cancel(c.Context(), companyID, c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "orden cancelada"})
}

// GetByID devuelve la orden con sus líneas.
// GET /api/sales-orders/:id
func (h *SalesHandler) GetByID(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	so, err := h.uc.GetByID(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.SalesFromEntity(so))
}

// List lista las órdenes de la empresa.
// GET /api/sales-orders?status=&limit=&offset=
func (h *SalesHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	list, err := h.uc.List(c.Context(), companyID, c.Query("status"), c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		return writeError(c, err)
	}
	items := make([]dto.SalesOrderResponse, 0, len(list))
	for _, so := range list {
		items = append(items, dto.SalesFromEntity(so))
	}
	return c.JSON(fiber.Map{"total": len(items), "orders": items})
}
