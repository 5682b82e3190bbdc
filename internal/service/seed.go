package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/iliyamo/bowling-center/internal/model"
)

type sample struct {
	customer string
	zone     string
	status   model.TransactionStatus
	price    string
	daysAgo  int
}

var samples = []sample{
	{"Alice Smith", "ZONE_1", model.TransactionOpen, "28.50", 2},
	{"Bob Johnson", "ZONE_2", model.TransactionCompleted, "35.00", 1},
	{"Clara Wu", "ZONE_3", model.TransactionCancelled, "0.00", 5},
	{"Daniel Lee", "ZONE_1", model.TransactionCompleted, "31.75", 3},
	{"Ella Martinez", "ZONE_2", model.TransactionOpen, "26.99", 4},
	{"Frank O'Reilly", "ZONE_3", model.TransactionOpen, "29.99", 6},
	{"Grace Kim", "ZONE_1", model.TransactionCancelled, "0.00", 7},
	{"Henry Zhao", "ZONE_2", model.TransactionCompleted, "33.00", 8},
	{"Isabelle Dubois", "ZONE_3", model.TransactionOpen, "27.45", 9},
	{"Jayden Patel", "ZONE_1", model.TransactionCompleted, "34.99", 10},
}

// SampleTransactions builds the demo data set relative to now.  Lane,
// ball and shoe ids are random and do not exist on the other services.
func SampleTransactions(now time.Time) []*model.Transaction {
	out := make([]*model.Transaction, 0, len(samples))
	for _, s := range samples {
		out = append(out, &model.Transaction{
			TransactionID: uuid.NewString(),
			CustomerName:  s.customer,
			LaneID:        uuid.NewString(),
			BowlingBallID: uuid.NewString(),
			ShoeID:        uuid.NewString(),
			LaneZone:      s.zone,
			TotalPrice:    decimal.RequireFromString(s.price),
			DateCompleted: now.AddDate(0, 0, -s.daysAgo).Format(model.DateLayout),
			Status:        s.status,
		})
	}
	return out
}

// SeedSampleData inserts SampleTransactions when store is empty and
// reports how many rows were written.
func SeedSampleData(ctx context.Context, store TransactionStore, now time.Time) (int, error) {
	n, err := store.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("seed: count: %w", err)
	}
	if n > 0 {
		log.Printf("seed: %d transactions already stored; skipping", n)
		return 0, nil
	}
	written := 0
	for _, t := range SampleTransactions(now) {
		if err := store.Create(ctx, t); err != nil {
			return written, fmt.Errorf("seed: insert %s: %w", t.CustomerName, err)
		}
		written++
	}
	log.Printf("seed: inserted %d sample transactions", written)
	return written, nil
}
