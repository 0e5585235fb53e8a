package position

import "time"

type Position struct {
	ID        string
	Code      *string
	Name      string
	Active    bool
	CreatedAt time.Time
}

// Unit is an organizational unit a position is held in.
type Unit struct {
	ID        string
	Name      string
	Active    bool
	CreatedAt time.Time
}

type MovementType string

const (
	MovementInitial      MovementType = "INITIAL"
	MovementPromotion    MovementType = "PROMOTION"
	MovementReassignment MovementType = "REASSIGNMENT"
	MovementTermination  MovementType = "TERMINATION"
)

// Movement is one entry of a user's position history. A movement is active while EndDate is nil;
// a user has at most one active movement.
type Movement struct {
	ID         string
	UserID     string
	Type       MovementType
	PositionID *string
	UnitID     *string
	StartDate  string
	EndDate    *string
	Note       *string
	CreatedBy  string
	CreatedAt  time.Time

	// Joined
	PositionName *string
	UnitName     *string
}

func (m Movement) IsActive() bool {
	return m.EndDate == nil
}
