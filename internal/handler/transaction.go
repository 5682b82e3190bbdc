package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/bowling-center/internal/config"
	"github.com/iliyamo/bowling-center/internal/model"
)

// TransactionWorkflow is the business layer behind TransactionHandler;
// *service.TransactionWorkflow satisfies it.
type TransactionWorkflow interface {
	Create(ctx context.Context, req model.TransactionRequest) (*model.Transaction, error)
	Get(ctx context.Context, transactionID string) (*model.Transaction, error)
	List(ctx context.Context) ([]*model.Transaction, error)
	Update(ctx context.Context, transactionID string, req model.TransactionRequest) (*model.Transaction, error)
	Delete(ctx context.Context, transactionID string) error
}

// TransactionHandler serves /api/transactions for transaction-service.
// Errors use the {httpStatus, path, message} shape.
type TransactionHandler struct {
	Workflow TransactionWorkflow
	IDs      config.IDFormat
}

func NewTransactionHandler(wf TransactionWorkflow, ids config.IDFormat) *TransactionHandler {
	if wf == nil {
		panic("nil workflow passed to NewTransactionHandler")
	}
	return &TransactionHandler{Workflow: wf, IDs: ids}
}

// Create handles POST /api/transactions.  A missing status is left for the
// workflow to reject so that it answers with its own message.
func (h *TransactionHandler) Create(c echo.Context) error {
	req, err := bindTransaction(c)
	if err != nil {
		return writeError(c, StyleTransaction, err)
	}
	t, err := h.Workflow.Create(c.Request().Context(), req)
	if err != nil {
		return writeError(c, StyleTransaction, err)
	}
	return c.JSON(http.StatusCreated, t)
}

func (h *TransactionHandler) Get(c echo.Context) error {
	id, err := checkID(h.IDs, c.Param("id"), "Invalid UUID format: ")
	if err != nil {
		return writeError(c, StyleTransaction, err)
	}
	t, err := h.Workflow.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, StyleTransaction, err)
	}
	return c.JSON(http.StatusOK, t)
}

func (h *TransactionHandler) List(c echo.Context) error {
	list, err := h.Workflow.List(c.Request().Context())
	if err != nil {
		return writeError(c, StyleTransaction, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *TransactionHandler) Update(c echo.Context) error {
	id, err := checkID(h.IDs, c.Param("id"), "Invalid UUID format: ")
	if err != nil {
		return writeError(c, StyleTransaction, err)
	}
	req, err := bindTransaction(c)
	if err != nil {
		return writeError(c, StyleTransaction, err)
	}
	t, err := h.Workflow.Update(c.Request().Context(), id, req)
	if err != nil {
		return writeError(c, StyleTransaction, err)
	}
	return c.JSON(http.StatusOK, t)
}

func (h *TransactionHandler) Delete(c echo.Context) error {
	id, err := checkID(h.IDs, c.Param("id"), "Invalid UUID format: ")
	if err != nil {
		return writeError(c, StyleTransaction, err)
	}
	if err := h.Workflow.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, StyleTransaction, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func bindTransaction(c echo.Context) (model.TransactionRequest, error) {
	var req model.TransactionRequest
	if err := c.Bind(&req); err != nil {
		return req, err
	}
	return req, req.Validate()
}
