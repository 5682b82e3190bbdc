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

type ShoeStore interface {
	Create(ctx context.Context, s *model.Shoe) error
	GetByID(ctx context.Context, id string) (*model.Shoe, error)
	List(ctx context.Context) ([]*model.Shoe, error)
	Update(ctx context.Context, s *model.Shoe) error
	Delete(ctx context.Context, id string) error
}

// ShoeHandler serves /shoes for shoe-service.
type ShoeHandler struct {
	Shoes ShoeStore
	IDs   config.IDFormat
}

func NewShoeHandler(shoes ShoeStore, ids config.IDFormat) *ShoeHandler {
	if shoes == nil {
		panic("nil store passed to NewShoeHandler")
	}
	return &ShoeHandler{Shoes: shoes, IDs: ids}
}

func (h *ShoeHandler) Create(c echo.Context) error {
	var req model.ShoeRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, StyleStandard, err)
	}
	if err := req.Validate(); err != nil {
		return writeError(c, StyleStandard, err)
	}
	var shoe model.Shoe
	req.Apply(&shoe)
	if err := h.Shoes.Create(c.Request().Context(), &shoe); err != nil {
		return writeError(c, StyleStandard, err)
	}
	return c.JSON(http.StatusCreated, shoe)
}

func (h *ShoeHandler) Get(c echo.Context) error {
	id, err := checkID(h.IDs, c.Param("id"), "Invalid Shoe ID format: ")
	if err != nil {
		return writeError(c, StyleStandard, err)
	}
	shoe, err := h.Shoes.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, StyleStandard, shoeErr(id, err))
	}
	return c.JSON(http.StatusOK, shoe)
}

func (h *ShoeHandler) List(c echo.Context) error {
	shoes, err := h.Shoes.List(c.Request().Context())
	if err != nil {
		return writeError(c, StyleStandard, err)
	}
	return c.JSON(http.StatusOK, shoes)
}

func (h *ShoeHandler) Update(c echo.Context) error {
	id, err := checkID(h.IDs, c.Param("id"), "Invalid Shoe ID format: ")
	if err != nil {
		return writeError(c, StyleStandard, err)
	}
	var req model.ShoeRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, StyleStandard, err)
	}
	if err := req.Validate(); err != nil {
		return writeError(c, StyleStandard, err)
	}
	shoe, err := h.Shoes.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, StyleStandard, shoeErr(id, err))
	}
	req.Apply(shoe)
	if err := h.Shoes.Update(c.Request().Context(), shoe); err != nil {
		return writeError(c, StyleStandard, shoeErr(id, err))
	}
	return c.JSON(http.StatusOK, shoe)
}

func (h *ShoeHandler) Delete(c echo.Context) error {
	id, err := checkID(h.IDs, c.Param("id"), "Invalid Shoe ID format: ")
	if err != nil {
		return writeError(c, StyleStandard, err)
	}
	if err := h.Shoes.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, StyleStandard, shoeErr(id, err))
	}
	return c.NoContent(http.StatusNoContent)
}

func shoeErr(id string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("Shoe not found with ID: " + id)
	}
	return err
}
