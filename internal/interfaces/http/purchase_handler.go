package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/application/orders"
)

// PurchaseHandler maneja las órdenes de compra y sus recepciones (protegido).
type PurchaseHandler struct {
	uc *orders.PurchaseUseCase
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(uc *orders.PurchaseUseCase) *PurchaseHandler {
	return &PurchaseHandler{uc: uc}
}

// Create crea una orden de compra en DRAFT.
// POST /api/purchase-orders
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreatePurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lines := make([]orders.PurchaseLineInput, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, orders.PurchaseLineInput{
			ProductID:  l.ProductID,
			OrderedQty: l.OrderedQty,
			UnitCost:   l.UnitCost,
		})
	}
	po, err := h.uc.Create(c.Context(), orders.CreatePurchaseInput{
		CompanyID:    companyID,
		UserID:       userID,
		WarehouseID:  in.WarehouseID,
		Number:       in.Number,
		SupplierName: in.SupplierName,
		Lines:        lines,
		Notes:        in.Notes,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.PurchaseFromEntity(po))
}

// Send transiciona la orden DRAFT -> SENT.
// POST /api/purchase-orders/:id/send
func (h *PurchaseHandler) Send(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	if err := h.uc.Send(c.Context(), companyID, c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "orden enviada"})
}

// Receive aplica una recepción parcial o total contra la orden.
// POST /api/purchase-orders/:id/receive
func (h *PurchaseHandler) Receive(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ReceiveRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lines := make([]orders.ReceiveLineInput, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, orders.ReceiveLineInput{LineID: l.LineID, Quantity: l.Quantity})
	}
	receipt, err := h.uc.Receive(c.Context(), companyID, userID, c.Params("id"), lines)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ReceiptFromEntity(receipt))
}

// Cancel transiciona la orden a CANCELLED (solo sin recepciones).
// POST /api/purchase-orders/:id/cancel
func (h *PurchaseHandler) Cancel(c *fiber.Ctx) error {
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
// GET /api/purchase-orders/:id
func (h *PurchaseHandler) GetByID(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	po, err := h.uc.GetByID(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.PurchaseFromEntity(po))
}

// List lista las órdenes de la empresa.
// GET /api/purchase-orders?status=&limit=&offset=
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	list, err := h.uc.List(c.Context(), companyID, c.Query("status"), c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		return writeError(c, err)
	}
	items := make([]dto.PurchaseOrderResponse, 0, len(list))
	for _, po := range list {
		items = append(items, dto.PurchaseFromEntity(po))
	}
	return c.JSON(fiber.Map{"total": len(items), "orders": items})
}
