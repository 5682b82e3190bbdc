package model

// LaneStatus is the operational state of a lane.
type LaneStatus string

const (
	LaneAvailable   LaneStatus = "AVAILABLE"
	LaneInUse       LaneStatus = "IN_USE"
	LaneMaintenance LaneStatus = "MAINTENANCE"
)

// LaneStatuses lists every legal LaneStatus in declaration order.
var LaneStatuses = []LaneStatus{LaneAvailable, LaneInUse, LaneMaintenance}

func (s *LaneStatus) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(b, s, LaneStatuses, "lane status")
}

// Valid reports whether s is one of LaneStatuses.
func (s LaneStatus) Valid() bool { return validEnum(s, LaneStatuses) }

// Lane is a bowling lane owned by lane-service.  Zone is free text
// (for example "ZONE_1") and is copied onto transactions that use the
// lane.
//
// Fields:
//  ID         – opaque identifier generated at creation.
//  LaneNumber – number painted on the lane.
//  Zone       – area of the centre the lane belongs to.
//  Status     – AVAILABLE, IN_USE or MAINTENANCE.
type Lane struct {
	ID         string     `json:"id"`         // lanes.id
	LaneNumber int        `json:"laneNumber"` // lanes.lane_number
	Zone       string     `json:"zone"`       // lanes.zone
	Status     LaneStatus `json:"status"`     // lanes.status
}

// LaneRequest is the body accepted by POST and PUT on lanes.
type LaneRequest struct {
	LaneNumber *int        `json:"laneNumber"`
	Zone       string      `json:"zone"`
	Status     *LaneStatus `json:"status"`
}

// Validate checks required fields in declaration order and returns the
// first failure.
func (r LaneRequest) Validate() error {
	if err := mustNotBeNull("laneNumber", r.LaneNumber != nil); err != nil {
		return err
	}
	if err := mustNotBeBlank("zone", r.Zone); err != nil {
		return err
	}
	return mustNotBeNull("status", r.Status != nil)
}

// Apply copies the request onto l, leaving l.ID untouched.
func (r LaneRequest) Apply(l *Lane) {
	if r.LaneNumber != nil {
		l.LaneNumber = *r.LaneNumber
	}
	l.Zone = r.Zone
	if r.Status != nil {
		l.Status = *r.Status
	}
}

// LaneSnapshot is the view of a lane that transaction-service fetches from
// lane-service.  It is never stored.
type LaneSnapshot struct {
	ID         string     `json:"id"`
	LaneNumber int        `json:"laneNumber"`
	Zone       string     `json:"zone"`
	Status     LaneStatus `json:"status"`
}

// Key returns the id used in hypermedia links.
func (l Lane) Key() string { return l.ID }
