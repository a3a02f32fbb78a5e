package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
	"go.opentelemetry.io/otel/attribute"

	"github.com/agilqrcode-web/agil-scan-order-sub000/internal/dto"
	"github.com/agilqrcode-web/agil-scan-order-sub000/internal/service"
	"github.com/agilqrcode-web/agil-scan-order-sub000/pkg/response"
	"github.com/agilqrcode-web/agil-scan-order-sub000/pkg/telemetry"
)

// qrImageSize is the width and height of generated QR PNGs in pixels
const qrImageSize = 512

// TableHandler handles table HTTP requests
type TableHandler struct {
	tableService service.TableService
	// publicBaseURL is the externally reachable prefix encoded into QR codes
	publicBaseURL string
}

// NewTableHandler creates a new table handler
func NewTableHandler(tableService service.TableService, publicBaseURL string) *TableHandler {
	return &TableHandler{
		tableService:  tableService,
		publicBaseURL: publicBaseURL,
	}
}

// Create handles POST /tables
func (h *TableHandler) Create(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.table.create")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}
	if valid, msg := req.Validate(); !valid {
		c.JSON(http.StatusBadRequest, response.BadRequest(msg))
		return
	}

	table, err := h.tableService.Create(ctx, userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	span.SetAttributes(attribute.String("table_id", table.ID))
	c.JSON(http.StatusCreated, response.Success(table))
}

// List handles GET /restaurants/:id/tables
func (h *TableHandler) List(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.table.list")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	tables, err := h.tableService.List(ctx, userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(tables))
}

// Delete handles DELETE /tables/:id
func (h *TableHandler) Delete(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.table.delete")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.tableService.Delete(ctx, userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// QRCode handles GET /tables/:id/qrcode. The PNG encodes the public
// resolution URL so a printed code opens the customer flow directly.
func (h *TableHandler) QRCode(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.table.qrcode")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	table, err := h.tableService.Get(ctx, userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	url := fmt.Sprintf("%s/api/v1/public/tables/resolve?qr_identifier=%s", h.publicBaseURL, table.QRCodeIdentifier)
	png, err := qrcode.Encode(url, qrcode.Medium, qrImageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

// Resolve handles GET /public/tables/resolve?qr_identifier=X. This is the
// entry point of the customer flow: it maps an opaque scanned token to the
// table and the restaurant's active menu.
func (h *TableHandler) Resolve(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.table.resolve")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	token := c.Query("qr_identifier")
	if token == "" {
		c.JSON(http.StatusBadRequest, response.BadRequest("qr_identifier is required"))
		return
	}

	resolved, err := h.tableService.Resolve(ctx, token)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(resolved))
}
