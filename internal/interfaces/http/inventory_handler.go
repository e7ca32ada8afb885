package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/application/ledger"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// InventoryHandler maneja las peticiones HTTP del kardex: movimientos manuales,
// ajustes, consulta de stock, lista de reposición y auditoría (protegido).
type InventoryHandler struct {
	uc *ledger.UseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *ledger.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// RegisterMovement registra una entrada o salida manual del kardex.
// POST /api/inventory/movements
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.uc.RecordMovement(c.Context(), ledger.MovementInput{
		CompanyID:   companyID,
		UserID:      userID,
		ProductID:   in.ProductID,
		WarehouseID: in.WarehouseID,
		Type:        in.Type,
		Quantity:    in.Quantity,
		UnitCost:    in.UnitCost,
		Notes:       in.Notes,
		Initial:     in.Initial,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementFromEntity(mov))
}

// AdjustStock registra un ajuste de inventario con razón cerrada.
// POST /api/inventory/adjustments
func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.uc.AdjustStock(c.Context(), ledger.AdjustInput{
		CompanyID:   companyID,
		UserID:      userID,
		ProductID:   in.ProductID,
		WarehouseID: in.WarehouseID,
		Increase:    in.Increase,
		Quantity:    in.Quantity,
		Reason:      in.Reason,
		Notes:       in.Notes,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementFromEntity(mov))
}

// ListMovements lista el kardex por producto o bodega en un rango de fechas.
// GET /api/inventory/movements?product_id=&warehouse_id=&from=&to=&limit=&offset=
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	from, err := parseTimeQuery(c, "from")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser RFC3339"})
	}
	to, err := parseTimeQuery(c, "to")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe ser RFC3339"})
	}
	list, err := h.uc.ListMovements(c.Context(), companyID,
		c.Query("product_id"), c.Query("warehouse_id"),
		from, to, c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		return writeError(c, err)
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, dto.MovementFromEntity(m))
	}
	return c.JSON(fiber.Map{"total": len(items), "movements": items})
}

// GetStock devuelve el nivel de stock de un producto en una bodega.
// GET /api/inventory/stock?product_id=&warehouse_id=
func (h *InventoryHandler) GetStock(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	productID := c.Query("product_id")
	warehouseID := c.Query("warehouse_id")
	if productID == "" || warehouseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id y warehouse_id son requeridos"})
	}
	level, err := h.uc.GetStock(c.Context(), companyID, productID, warehouseID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.StockLevelFromEntity(level))
}

// ListStock lista los niveles de stock de la empresa.
// GET /api/inventory/stock-levels?warehouse_id=&limit=&offset=
func (h *InventoryHandler) ListStock(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	list, err := h.uc.ListStock(c.Context(), companyID, c.Query("warehouse_id"), c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		return writeError(c, err)
	}
	items := make([]dto.StockLevelResponse, 0, len(list))
	for _, s := range list {
		items = append(items, dto.StockLevelFromEntity(s))
	}
	return c.JSON(fiber.Map{"total": len(items), "stock_levels": items})
}

// GetReorderList devuelve los productos bajo su punto de reorden con la
// cantidad sugerida de pedido.
// GET /api/inventory/reorder-list?warehouse_id=
func (h *InventoryHandler) GetReorderList(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	list, err := h.uc.GenerateReorderList(c.Context(), companyID, c.Query("warehouse_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "suggestions": list})
}

// AuditPair contrasta el kardex contra el stock cacheado de un par (producto, bodega).
// GET /api/inventory/audit?product_id=&warehouse_id=
func (h *InventoryHandler) AuditPair(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	productID := c.Query("product_id")
	warehouseID := c.Query("warehouse_id")
	if productID == "" || warehouseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id y warehouse_id son requeridos"})
	}
	result, err := h.uc.AuditPair(c.Context(), companyID, productID, warehouseID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.AuditResultResponse{
		ProductID:    result.ProductID,
		WarehouseID:  result.WarehouseID,
		LedgerTotal:  result.LedgerTotal,
		CachedOnHand: result.CachedOnHand,
		Consistent:   result.Consistent,
		Movements:    result.Movements,
	})
}

func parseTimeQuery(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// roles que pueden mutar inventario; vendedor solo consulta
var inventoryWriterRoles = []string{entity.RoleAdmin, entity.RoleBodeguero}
