package domain

type Status string

const (
	StatusPending   Status = "pending"
	StatusReady     Status = "ready"
	StatusDelivered Status = "delivered"
)

// Next returns the only status an order may move to from s.
// Delivered is terminal and has no successor.
func (s Status) Next() (Status, bool) {
	switch s {
	case StatusPending:
		return StatusReady, true
	case StatusReady:
		return StatusDelivered, true
	default:
		return "", false
	}
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusReady, StatusDelivered:
		return true
	}
	return false
}

type Direction string

const (
	DirectionIn  Direction = "in"
	DirectionOut Direction = "out"
)
