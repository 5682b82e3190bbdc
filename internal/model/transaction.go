package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// TransactionStatus is the lifecycle state of a rental transaction.
type TransactionStatus string

const (
	TransactionOpen      TransactionStatus = "OPEN"
	TransactionCompleted TransactionStatus = "COMPLETED"
	TransactionCancelled TransactionStatus = "CANCELLED"
)

var TransactionStatuses = []TransactionStatus{TransactionOpen, TransactionCompleted, TransactionCancelled}

func (s *TransactionStatus) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(b, s, TransactionStatuses, "transaction status")
}

// Transaction records one customer's use of a lane, a ball and a pair of
// shoes.  The lane, ball and shoe ids are references into the owning
// services and are not enforced by the store.
//
// Fields:
//  ID            – storage key, never exposed; updates upsert on it.
//  TransactionID – public uuid generated at creation.
//  CustomerName  – who the transaction is for.
//  LaneID        – lane-service id.
//  BowlingBallID – ball-service id.
//  ShoeID        – shoe-service id.
//  LaneZone      – zone of the lane at the last create/update.
//  TotalPrice    – computed at creation, never recomputed.
//  DateCompleted – creation date (YYYY-MM-DD), never changed.
//  Status        – OPEN, COMPLETED or CANCELLED.
type Transaction struct {
	ID            uint64            `json:"-"`             // transactions.id
	TransactionID string            `json:"transactionId"` // transactions.transaction_id
	CustomerName  string            `json:"customerName"`  // transactions.customer_name
	LaneID        string            `json:"laneId"`        // transactions.lane_id
	BowlingBallID string            `json:"bowlingBallId"` // transactions.bowling_ball_id
	ShoeID        string            `json:"shoeId"`        // transactions.shoe_id
	LaneZone      string            `json:"laneZone"`      // transactions.lane_zone
	TotalPrice    decimal.Decimal   `json:"totalPrice"`    // transactions.total_price
	DateCompleted string            `json:"dateCompleted"` // transactions.date_completed
	Status        TransactionStatus `json:"status"`        // transactions.status
}

// MarshalJSON writes TotalPrice as a JSON number.  Other decimals keep the
// library's quoted form.
func (t Transaction) MarshalJSON() ([]byte, error) {
	type plain Transaction
	return json.Marshal(struct {
		plain
		TotalPrice json.Number `json:"totalPrice"`
	}{plain(t), json.Number(t.TotalPrice.String())})
}

// TransactionRequest is the body accepted by POST and PUT on transactions.
// Status is a pointer so that an absent status can be told apart from an
// invalid one: the former is a workflow error, the latter a decode error.
type TransactionRequest struct {
	CustomerName  string             `json:"customerName"`
	LaneID        string             `json:"laneId"`
	BowlingBallID string             `json:"bowlingBallId"`
	ShoeID        string             `json:"shoeId"`
	Status        *TransactionStatus `json:"status"`
}

// Validate checks the text fields only; the status is checked by the
// transaction workflow itself.
func (r TransactionRequest) Validate() error {
	if err := mustNotBeBlank("customerName", r.CustomerName); err != nil {
		return err
	}
	if err := mustNotBeBlank("laneId", r.LaneID); err != nil {
		return err
	}
	if err := mustNotBeBlank("bowlingBallId", r.BowlingBallID); err != nil {
		return err
	}
	return mustNotBeBlank("shoeId", r.ShoeID)
}

// ValidateWithStatus is Validate plus a non-null status check; the gateway
// uses it to reject incomplete bodies before calling downstream.
func (r TransactionRequest) ValidateWithStatus() error {
	if err := r.Validate(); err != nil {
		return err
	}
	return mustNotBeNull("status", r.Status != nil)
}

// Key returns the public transaction id; the storage key never leaves the
// service.
func (t Transaction) Key() string { return t.TransactionID }
