package handler

import (
	"context"  // context is threaded from the request into the store
	"errors"   // errors.Is detects repository sentinels
	"net/http" // http provides status code constants

	"github.com/labstack/echo/v4" // echo is the web framework used for handlers

	"github.com/iliyamo/bowling-center/internal/apperr"
	"github.com/iliyamo/bowling-center/internal/config"
	"github.com/iliyamo/bowling-center/internal/model"
	"github.com/iliyamo/bowling-center/internal/repository"
)

// LaneStore is the persistence LaneHandler needs; *repository.LaneRepo
// satisfies it.
type LaneStore interface {
	Create(ctx context.Context, l *model.Lane) error
	GetByID(ctx context.Context, id string) (*model.Lane, error)
	List(ctx context.Context) ([]*model.Lane, error)
	Update(ctx context.Context, l *model.Lane) error
	Delete(ctx context.Context, id string) error
}

// LaneHandler serves /lanes for lane-service.
type LaneHandler struct {
	Lanes LaneStore       // Lanes persists lane records
	IDs   config.IDFormat // IDs is the path id policy
}

// NewLaneHandler constructs a LaneHandler and panics if the store is nil.
func NewLaneHandler(lanes LaneStore, ids config.IDFormat) *LaneHandler {
	if lanes == nil {
		panic("nil store passed to NewLaneHandler")
	}
	return &LaneHandler{Lanes: lanes, IDs: ids}
}

// Create handles POST /lanes.
func (h *LaneHandler) Create(c echo.Context) error {
	var req model.LaneRequest
	if err := c.Bind(&req); err != nil { // enum and syntax errors surface here
		return writeError(c, StyleStandard, err)
	}
	if err := req.Validate(); err != nil { // required fields
		return writeError(c, StyleStandard, err)
	}
	var lane model.Lane
	req.Apply(&lane)
	if err := h.Lanes.Create(c.Request().Context(), &lane); err != nil {
		return writeError(c, StyleStandard, err)
	}
	return c.JSON(http.StatusCreated, lane)
}

// Get handles GET /lanes/:id.
func (h *LaneHandler) Get(c echo.Context) error {
	id, err := h.pathID(c)
	if err != nil {
		return writeError(c, StyleStandard, err)
	}
	lane, err := h.Lanes.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, StyleStandard, laneErr(id, err))
	}
	return c.JSON(http.StatusOK, lane)
}

// List handles GET /lanes.
func (h *LaneHandler) List(c echo.Context) error {
	lanes, err := h.Lanes.List(c.Request().Context())
	if err != nil {
		return writeError(c, StyleStandard, err)
	}
	return c.JSON(http.StatusOK, lanes)
}

// Update handles PUT /lanes/:id.  Every non-id field is replaced.
func (h *LaneHandler) Update(c echo.Context) error {
	id, err := h.pathID(c)
	if err != nil {
		return writeError(c, StyleStandard, err)
	}
	var req model.LaneRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, StyleStandard, err)
	}
	if err := req.Validate(); err != nil {
		return writeError(c, StyleStandard, err)
	}
	lane, err := h.Lanes.GetByID(c.Request().Context(), id) // 404 before touching the row
	if err != nil {
		return writeError(c, StyleStandard, laneErr(id, err))
	}
	req.Apply(lane)
	if err := h.Lanes.Update(c.Request().Context(), lane); err != nil {
		return writeError(c, StyleStandard, laneErr(id, err))
	}
	return c.JSON(http.StatusOK, lane)
}

// Delete handles DELETE /lanes/:id.
func (h *LaneHandler) Delete(c echo.Context) error {
	id, err := h.pathID(c)
	if err != nil {
		return writeError(c, StyleStandard, err)
	}
	if err := h.Lanes.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, StyleStandard, laneErr(id, err))
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *LaneHandler) pathID(c echo.Context) (string, error) {
	return checkID(h.IDs, c.Param("id"), "Invalid Lane ID format: ")
}

func laneErr(id string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("Lane not found with ID: " + id)
	}
	return err
}

// checkID applies the id policy to a path parameter.
func checkID(f config.IDFormat, id, prefix string) (string, error) {
	if !f.Accepts(id) {
		return "", apperr.InvalidInput(prefix + id)
	}
	return id, nil
}
