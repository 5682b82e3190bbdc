package router // package router defines how HTTP routes are registered for each service

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/bowling-center/internal/handler" // handlers that implement each endpoint
)

// CRUD is the handler set every collection exposes.  The resource
// handlers, the transaction handler and the gateway proxies all satisfy it.
type CRUD interface {
	Create(c echo.Context) error
	Get(c echo.Context) error
	List(c echo.Context) error
	Update(c echo.Context) error
	Delete(c echo.Context) error
}

// RegisterHealth maps GET /healthz.  db may be nil for services without a
// datastore.
func RegisterHealth(e *echo.Echo, db handler.Pinger) {
	e.GET("/healthz", handler.Health(db))
}

// RegisterCollection mounts the five CRUD routes of h under prefix, e.g.
// /lanes or /api/transactions.  Middlewares apply to this group only.
func RegisterCollection(e *echo.Echo, prefix string, h CRUD, m ...echo.MiddlewareFunc) {
	g := e.Group(prefix, m...)
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

// Gateway groups the four public proxies.
type Gateway struct {
	Balls        CRUD
	Lanes        CRUD
	Shoes        CRUD
	Transactions CRUD
}

// RegisterGateway mounts the public /api collections.  m is applied to
// every one of them, in order; the rate limiter and the write guard go
// here.
func RegisterGateway(e *echo.Echo, gw Gateway, m ...echo.MiddlewareFunc) {
	RegisterHealth(e, nil)
	RegisterCollection(e, "/api/balls", gw.Balls, m...)
	RegisterCollection(e, "/api/lanes", gw.Lanes, m...)
	RegisterCollection(e, "/api/shoes", gw.Shoes, m...)
	RegisterCollection(e, "/api/transactions", gw.Transactions, m...)
}
