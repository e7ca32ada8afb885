package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/application/orders"
)

// TransferHandler maneja los traslados entre bodegas (protegido).
type TransferHandler struct {
	uc *orders.TransferUseCase
}

// NewTransferHandler construye el handler.
func NewTransferHandler(uc *orders.TransferUseCase) *TransferHandler {
	return &TransferHandler{uc: uc}
}

// Create crea un traslado en DRAFT.
// POST /api/transfers
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lines := make([]orders.TransferLineInput, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, orders.TransferLineInput{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	tr, err := h.uc.Create(c.Context(), orders.CreateTransferInput{
		CompanyID:       companyID,
		UserID:          userID,
		FromWarehouseID: in.FromWarehouseID,
		ToWarehouseID:   in.ToWarehouseID,
		Number:          in.Number,
		Lines:           lines,
		Notes:           in.Notes,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.TransferFromEntity(tr))
}

// Send debita el origen y deja el traslado IN_TRANSIT.
// POST /api/transfers/:id/send
func (h *TransferHandler) Send(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	if err := h.uc.Send(c.Context(), companyID, userID, c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "traslado en tránsito"})
}

// Complete acredita el destino (IN_TRANSIT -> COMPLETED).
// POST /api/transfers/:id/complete
func (h *TransferHandler) Complete(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	if err := h.uc.Complete(c.Context(), companyID, userID, c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "traslado completado"})
}

// Cancel cancela el traslado; desde IN_TRANSIT devuelve el stock al origen.
// POST /api/transfers/:id/cancel
func (h *TransferHandler) Cancel(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	if err := h.uc.Cancel(c.Context(), companyID, userID, c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "traslado cancelado"})
}

// GetByID devuelve el traslado con sus líneas.
// GET /api/transfers/:id
func (h *TransferHandler) GetByID(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	tr, err := h.uc.GetByID(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.TransferFromEntity(tr))
}

// List lista los traslados de la empresa.
// GET /api/transfers?status=&limit=&offset=
func (h *TransferHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	list, err := h.uc.List(c.Context(), companyID, c.Query("status"), c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		return writeError(c, err)
	}
	items := make([]dto.TransferResponse, 0, len(list))
	for _, tr := range list {
		items = append(items, dto.TransferFromEntity(tr))
	}
	return c.JSON(fiber.Map{"total": len(items), "transfers": items})
}
