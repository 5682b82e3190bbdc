package gateway

import (
	"net/http"

	"github.com/iliyamo/bowling-center/internal/client"
	"github.com/iliyamo/bowling-center/internal/config"
	"github.com/iliyamo/bowling-center/internal/model"
)

// Descriptors for the four public collections.  IDFormat is filled in by
// the constructors below.
var (
	LaneResource = Resource{
		Path: "/lanes", Public: "/api/lanes", Rel: "lanes",
		Label: "Lane", NotFound: "Lane not found: ", BadID: "Invalid Lane ID format: ",
	}
	BallResource = Resource{
		Path: "/bowlingballs", Public: "/api/balls", Rel: "bowlingBalls",
		Label: "Bowling Ball", NotFound: "Bowling ball not found: ", BadID: "Invalid BowlingBall ID format: ",
	}
	ShoeResource = Resource{
		Path: "/shoes", Public: "/api/shoes", Rel: "shoes",
		Label: "Shoe", NotFound: "Shoe not found: ", BadID: "Invalid Shoe ID format: ",
	}
	TransactionResource = Resource{
		Path: "/api/transactions", Public: "/api/transactions", Rel: "transactions",
		NotFound: "Transaction not found: ", BadID: "Invalid UUID format: ",
	}
)

type (
	LaneClient        = Client[model.LaneRequest, model.Lane]
	BallClient        = Client[model.BallRequest, model.Ball]
	ShoeClient        = Client[model.ShoeRequest, model.Shoe]
	TransactionClient = Client[model.TransactionRequest, model.Transaction]
)

func with(r Resource, f config.IDFormat) Resource {
	r.IDFormat = f
	return r
}

func NewLaneClient(cfg client.Config, hc *http.Client, f config.IDFormat) *LaneClient {
	return NewClient[model.LaneRequest, model.Lane](cfg, hc, with(LaneResource, f))
}

func NewBallClient(cfg client.Config, hc *http.Client, f config.IDFormat) *BallClient {
	return NewClient[model.BallRequest, model.Ball](cfg, hc, with(BallResource, f))
}

func NewShoeClient(cfg client.Config, hc *http.Client, f config.IDFormat) *ShoeClient {
	return NewClient[model.ShoeRequest, model.Shoe](cfg, hc, with(ShoeResource, f))
}

func NewTransactionClient(cfg client.Config, hc *http.Client, f config.IDFormat) *TransactionClient {
	return NewClient[model.TransactionRequest, model.Transaction](cfg, hc, with(TransactionResource, f))
}
