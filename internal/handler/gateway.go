package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/bowling-center/internal/gateway"
	"github.com/iliyamo/bowling-center/internal/model"
)

// Downstream is the CRUD surface of a gateway client;
// *gateway.Client[Req, Resp] satisfies it.
type Downstream[Req any, Resp gateway.Keyed] interface {
	Resource() gateway.Resource
	List(ctx context.Context) ([]Resp, error)
	Get(ctx context.Context, id string) (*Resp, error)
	Create(ctx context.Context, req Req) (*Resp, error)
	Update(ctx context.Context, id string, req Req) (*Resp, error)
	Delete(ctx context.Context, id string) error
}

// Proxy serves one public collection on the gateway.  Bodies are
// validated locally before anything is sent downstream, and every entity
// goes back out with hypermedia links.
type Proxy[Req any, Resp gateway.Keyed] struct {
	down     Downstream[Req, Resp]
	validate func(Req) error
}

func NewProxy[Req any, Resp gateway.Keyed](down Downstream[Req, Resp], validate func(Req) error) *Proxy[Req, Resp] {
	if validate == nil {
		validate = func(Req) error { return nil }
	}
	return &Proxy[Req, Resp]{down: down, validate: validate}
}

// Gateway proxies for the four public collections.
func NewLaneProxy(c *gateway.LaneClient) *Proxy[model.LaneRequest, model.Lane] {
	return NewProxy[model.LaneRequest, model.Lane](c, model.LaneRequest.Validate)
}

func NewBallProxy(c *gateway.BallClient) *Proxy[model.BallRequest, model.Ball] {
	return NewProxy[model.BallRequest, model.Ball](c, model.BallRequest.Validate)
}

func NewShoeProxy(c *gateway.ShoeClient) *Proxy[model.ShoeRequest, model.Shoe] {
	return NewProxy[model.ShoeRequest, model.Shoe](c, model.ShoeRequest.Validate)
}

func NewTransactionProxy(c *gateway.TransactionClient) *Proxy[model.TransactionRequest, model.Transaction] {
	return NewProxy[model.TransactionRequest, model.Transaction](c, model.TransactionRequest.ValidateWithStatus)
}

func (p *Proxy[Req, Resp]) Create(c echo.Context) error {
	var req Req
	if err := c.Bind(&req); err != nil {
		return writeError(c, StyleStandard, err)
	}
	if err := p.validate(req); err != nil {
		return writeError(c, StyleStandard, err)
	}
	out, err := p.down.Create(c.Request().Context(), req)
	if err != nil {
		return writeError(c, StyleStandard, err)
	}
	return p.entity(c, http.StatusCreated, *out)
}

func (p *Proxy[Req, Resp]) Get(c echo.Context) error {
	out, err := p.down.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, StyleStandard, err)
	}
	return p.entity(c, http.StatusOK, *out)
}

func (p *Proxy[Req, Resp]) List(c echo.Context) error {
	items, err := p.down.List(c.Request().Context())
	if err != nil {
		return writeError(c, StyleStandard, err)
	}
	coll, err := gateway.Collect(p.down.Resource(), items)
	if err != nil {
		return writeError(c, StyleStandard, err)
	}
	return c.JSON(http.StatusOK, coll)
}

func (p *Proxy[Req, Resp]) Update(c echo.Context) error {
	var req Req
	if err := c.Bind(&req); err != nil {
		return writeError(c, StyleStandard, err)
	}
	if err := p.validate(req); err != nil {
		return writeError(c, StyleStandard, err)
	}
	out, err := p.down.Update(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return writeError(c, StyleStandard, err)
	}
	return p.entity(c, http.StatusOK, *out)
}

func (p *Proxy[Req, Resp]) Delete(c echo.Context) error {
	if err := p.down.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, StyleStandard, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (p *Proxy[Req, Resp]) entity(c echo.Context, code int, v Resp) error {
	raw, err := gateway.Entity(p.down.Resource(), v)
	if err != nil {
		return writeError(c, StyleStandard, err)
	}
	return c.JSONBlob(code, raw)
}
