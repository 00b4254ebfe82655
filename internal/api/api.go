package api

import (
	"client-records-service/internal/entity"
	"context"
	"database/sql"
	"errors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"strconv"
)

// RecordService is the operations surface the handlers need.
type RecordService interface {
	ListRecords(ctx context.Context) ([]*entity.ClientRecord, error)
	GetRecordByID(ctx context.Context, id int) (*entity.ClientRecord, error)
	CreateRecord(ctx context.Context, record *entity.ClientRecord, idempotentKey string) (*entity.ClientRecord, error)
	UpdateRecord(ctx context.Context, record *entity.ClientRecord) (*entity.ClientRecord, error)
	DeleteRecord(ctx context.Context, id int) error
}

type RecordHandler struct {
	recordService RecordService
}

// NewRecordHandler creates a new instance of RecordHandler
func NewRecordHandler(recordService RecordService) *RecordHandler {
	return &RecordHandler{recordService: recordService}
}

// JwtCustomClaims is the claims payload of tokens accepted on mutating routes.
type JwtCustomClaims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// ListRecords returns every client record --> GET /test
func (h *RecordHandler) ListRecords(c echo.Context) error {
	records, err := h.recordService.ListRecords(c.Request().Context())
	if err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}

	return c.JSON(200, records)
}

// GetRecordByID retrieves a client record by ID --> GET /test/:id
func (h *RecordHandler) GetRecordByID(c echo.Context) error {
	id := c.Param("id")
	idInt, err := strconv.Atoi(id)
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}

	record, err := h.recordService.GetRecordByID(c.Request().Context(), idInt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(404, map[string]string{"error": "Record not found"})
		}
		return c.JSON(500, map[string]string{"error": err.Error()})
	}

	return c.JSON(200, record)
}

// CreateRecord creates a new client record --> POST /test
func (h *RecordHandler) CreateRecord(c echo.Context) error {
	record := entity.ClientRecord{}
	if err := c.Bind(&record); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}
	idempotentKey := c.Request().Header.Get("Idempotent-Key")

	createdRecord, err := h.recordService.CreateRecord(c.Request().Context(), &record, idempotentKey)
	if err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}

	return c.JSON(201, createdRecord)
}

// UpdateRecord overwrites a client record --> PUT /test/:id
func (h *RecordHandler) UpdateRecord(c echo.Context) error {
	id := c.Param("id")
	idInt, err := strconv.Atoi(id)
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}

	record := entity.ClientRecord{}
	if err := c.Bind(&record); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}
	record.ID = idInt

	updatedRecord, err := h.recordService.UpdateRecord(c.Request().Context(), &record)
	if err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}

	return c.JSON(200, updatedRecord)
}

// DeleteRecord removes a client record --> DELETE /test/:id
func (h *RecordHandler) DeleteRecord(c echo.Context) error {
	id := c.Param("id")
	idInt, err := strconv.Atoi(id)
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}

	if err := h.recordService.DeleteRecord(c.Request().Context(), idInt); err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}

	return c.NoContent(204)
}
