package model

import (
	"bytes"
	"encoding/json"
	"time"
)

// DateLayout is the calendar-date format used on the wire and in
// transaction records.
const DateLayout = "2006-01-02"

// Date is a calendar date that travels as "YYYY-MM-DD" in JSON.
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar date in UTC.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func (d Date) String() string { return d.Format(DateLayout) }

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return &EnumError{Message: "Invalid date. Expected format: YYYY-MM-DD."}
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return &EnumError{Message: "Invalid date. Expected format: YYYY-MM-DD."}
	}
	d.Time = t
	return nil
}

// ShoeSize is a rental shoe size.  Sizes travel as strings ("9") but a
// bare number is accepted on input.
type ShoeSize string

const (
	Shoe5  ShoeSize = "5"
	Shoe6  ShoeSize = "6"
	Shoe7  ShoeSize = "7"
	Shoe8  ShoeSize = "8"
	Shoe9  ShoeSize = "9"
	Shoe10 ShoeSize = "10"
	Shoe11 ShoeSize = "11"
	Shoe12 ShoeSize = "12"
)

var ShoeSizes = []ShoeSize{Shoe5, Shoe6, Shoe7, Shoe8, Shoe9, Shoe10, Shoe11, Shoe12}

func (s *ShoeSize) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(b, s, ShoeSizes, "shoe size")
}

type ShoeStatus string

const (
	ShoeAvailable ShoeStatus = "AVAILABLE"
	ShoeInUse     ShoeStatus = "IN_USE"
)

var ShoeStatuses = []ShoeStatus{ShoeAvailable, ShoeInUse}

func (s *ShoeStatus) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(b, s, ShoeStatuses, "shoe status")
}

// Shoe is a pair of rental shoes owned by shoe-service.  Unlike lanes and
// balls, shoe ids are stored in a native uuid column.
//
// Fields:
//  ID           – uuid generated at creation.
//  Size         – one of ShoeSizes.
//  PurchaseDate – day the pair was bought.
//  Status       – AVAILABLE or IN_USE.
type Shoe struct {
	ID           string     `json:"id"`           // shoes.id
	Size         ShoeSize   `json:"size"`         // shoes.size
	PurchaseDate Date       `json:"purchaseDate"` // shoes.purchase_date
	Status       ShoeStatus `json:"status"`       // shoes.status
}

type ShoeRequest struct {
	Size         *ShoeSize   `json:"size"`
	PurchaseDate *Date       `json:"purchaseDate"`
	Status       *ShoeStatus `json:"status"`
}

func (r ShoeRequest) Validate() error {
	if err := mustNotBeNull("size", r.Size != nil); err != nil {
		return err
	}
	if err := mustNotBeNull("purchaseDate", r.PurchaseDate != nil); err != nil {
		return err
	}
	return mustNotBeNull("status", r.Status != nil)
}

func (r ShoeRequest) Apply(s *Shoe) {
	if r.Size != nil {
		s.Size = *r.Size
	}
	if r.PurchaseDate != nil {
		s.PurchaseDate = *r.PurchaseDate
	}
	if r.Status != nil {
		s.Status = *r.Status
	}
}

type ShoeSnapshot struct {
	ID           string     `json:"id"`
	Size         ShoeSize   `json:"size"`
	PurchaseDate Date       `json:"purchaseDate"`
	Status       ShoeStatus `json:"status"`
}

func (s Shoe) Key() string { return s.ID }
