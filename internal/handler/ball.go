package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/bowling-center/internal/apperr"
	"github.com/iliyamo/bowling-center/internal/config"
	"github.com/iliyamo/bowling-center/internal/model"
	"github.com/iliyamo/bowling-center/internal/repository"
)

type BallStore interface {
	Create(ctx context.Context, b *model.Ball) error
	GetByID(ctx context.Context, id string) (*model.Ball, error)
	List(ctx context.Context) ([]*model.Ball, error)
	Update(ctx context.Context, b *model.Ball) error
	Delete(ctx context.Context, id string) error
}

// BallHandler serves /bowlingballs for ball-service.
type BallHandler struct {
	Balls BallStore
	IDs   config.IDFormat
}

func NewBallHandler(balls BallStore, ids config.IDFormat) *BallHandler {
	if balls == nil {
		panic("nil store passed to NewBallHandler")
	}
	return &BallHandler{Balls: balls, IDs: ids}
}

func (h *BallHandler) Create(c echo.Context) error {
	req, err := bindBall(c)
	if err != nil {
		return writeError(c, StyleStandard, err)
	}
	var ball model.Ball
	req.Apply(&ball)
	if err := h.Balls.Create(c.Request().Context(), &ball); err != nil {
		return writeError(c, StyleStandard, err)
	}
	return c.JSON(http.StatusCreated, ball)
}

func (h *BallHandler) Get(c echo.Context) error {
	id, err := checkID(h.IDs, c.Param("id"), "Invalid BowlingBall ID format: ")
	if err != nil {
		return writeError(c, StyleStandard, err)
	}
	ball, err := h.Balls.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, StyleStandard, ballErr(id, err))
	}
	return c.JSON(http.StatusOK, ball)
}

func (h *BallHandler) List(c echo.Context) error {
	balls, err := h.Balls.List(c.Request().Context())
	if err != nil {
		return writeError(c, StyleStandard, err)
	}
	return c.JSON(http.StatusOK, balls)
}

func (h *BallHandler) Update(c echo.Context) error {
	id, err := checkID(h.IDs, c.Param("id"), "Invalid BowlingBall ID format: ")
	if err != nil {
		return writeError(c, StyleStandard, err)
	}
	req, err := bindBall(c)
	if err != nil {
		return writeError(c, StyleStandard, err)
	}
	ball, err := h.Balls.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, StyleStandard, ballErr(id, err))
	}
	req.Apply(ball)
	if err := h.Balls.Update(c.Request().Context(), ball); err != nil {
		return writeError(c, StyleStandard, ballErr(id, err))
	}
	return c.JSON(http.StatusOK, ball)
}

func (h *BallHandler) Delete(c echo.Context) error {
	id, err := checkID(h.IDs, c.Param("id"), "Invalid BowlingBall ID format: ")
	if err != nil {
		return writeError(c, StyleStandard, err)
	}
	if err := h.Balls.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, StyleStandard, ballErr(id, err))
	}
	return c.NoContent(http.StatusNoContent)
}

func bindBall(c echo.Context) (model.BallRequest, error) {
	var req model.BallRequest
	if err := c.Bind(&req); err != nil {
		return req, err
	}
	return req, req.Validate()
}

func ballErr(id string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("Bowling ball not found with ID: " + id)
	}
	return err
}
