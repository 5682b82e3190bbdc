package model

// BallSize is the weight class of a bowling ball, in pounds spelled out.
type BallSize string

const (
	BallSix      BallSize = "SIX"
	BallEight    BallSize = "EIGHT"
	BallTen      BallSize = "TEN"
	BallTwelve   BallSize = "TWELVE"
	BallFourteen BallSize = "FOURTEEN"
	BallSixteen  BallSize = "SIXTEEN"
)

var BallSizes = []BallSize{BallSix, BallEight, BallTen, BallTwelve, BallFourteen, BallSixteen}

func (s *BallSize) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(b, s, BallSizes, "ball size")
}

// BallStatus tells whether a ball is on the rack or with a customer.
type BallStatus string

const (
	BallAvailable BallStatus = "AVAILABLE"
	BallInUse     BallStatus = "IN_USE"
)

var BallStatuses = []BallStatus{BallAvailable, BallInUse}

func (s *BallStatus) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(b, s, BallStatuses, "ball status")
}

// Ball is a house bowling ball owned by ball-service.
type Ball struct {
	ID       string     `json:"id"`       // bowling_balls.id
	Size     BallSize   `json:"size"`     // bowling_balls.size
	GripType string     `json:"gripType"` // bowling_balls.grip_type
	Color    string     `json:"color"`    // bowling_balls.color
	Status   BallStatus `json:"status"`   // bowling_balls.status
}

type BallRequest struct {
	Size     *BallSize   `json:"size"`
	GripType string      `json:"gripType"`
	Color    string      `json:"color"`
	Status   *BallStatus `json:"status"`
}

func (r BallRequest) Validate() error {
	if err := mustNotBeNull("size", r.Size != nil); err != nil {
		return err
	}
	if err := mustNotBeBlank("gripType", r.GripType); err != nil {
		return err
	}
	if err := mustNotBeBlank("color", r.Color); err != nil {
		return err
	}
	return mustNotBeNull("status", r.Status != nil)
}

func (r BallRequest) Apply(b *Ball) {
	if r.Size != nil {
		b.Size = *r.Size
	}
	b.GripType = r.GripType
	b.Color = r.Color
	if r.Status != nil {
		b.Status = *r.Status
	}
}

// BallSnapshot is the remote view of a ball.  Transaction-service only
// needs to know it exists.
type BallSnapshot struct {
	ID       string     `json:"id"`
	Size     BallSize   `json:"size"`
	GripType string     `json:"gripType"`
	Color    string     `json:"color"`
	Status   BallStatus `json:"status"`
}

func (b Ball) Key() string { return b.ID }
