package attendance

import (
	"time"

	"github.com/cmlabs-hris/hr-attendance-go/internal/domain/user"
)

type Kind string

const (
	KindEntry Kind = "ENTRY"
	KindExit  Kind = "EXIT"
)

func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindEntry, KindExit:
		return Kind(s), nil
	}
	return "", ErrInvalidKind
}

type Status string

const (
	StatusValid   Status = "VALID"
	StatusInvalid Status = "INVALID"
	StatusVoid    Status = "VOID"
)

type Origin string

const (
	OriginWeb    Origin = "web"
	OriginManual Origin = "manual"
	OriginApp    Origin = "app"
)

// Event is a single clock action. Events are never deleted; reviewers change Status instead.
type Event struct {
	ID         string
	OccurredAt time.Time
	Kind       Kind
	Status     Status
	Origin     Origin
	SourceIP   *string
	Note       *string
	OwnerID    string
	ReviewerID *string
	// LocalDate is the local calendar date of OccurredAt, stored for indexing.
	LocalDate  string
	RecordedAt time.Time

	// Joined
	Owner    user.Ref
	Reviewer *user.Ref
}

// DayState is the per-user, per-local-day position in the marking state machine.
type DayState string

const (
	DayEmpty  DayState = "EMPTY"
	DayOpen   DayState = "OPEN"
	DayClosed DayState = "CLOSED"
)

// DayStateOf derives the state from one user's events of a single local day.
// Only VALID events count.
func DayStateOf(dayEvents []Event) DayState {
	last := lastValid(dayEvents)
	if last == nil {
		return DayEmpty
	}
	if hasValidExit(dayEvents) {
		return DayClosed
	}
	return DayOpen
}

// CheckMark decides whether kind may be marked next, given the user's events for the
// current local day. Rules are applied in order: closed day, same-kind repeat, EXIT
// without a prior ENTRY.
func CheckMark(dayEvents []Event, kind Kind) error {
	if hasValidExit(dayEvents) {
		return ErrDayClosed
	}

	last := lastValid(dayEvents)
	if last != nil && last.Kind == kind {
		return ErrSameKindRepeated
	}
	if kind == KindExit && last == nil {
		return ErrExitWithoutEntry
	}
	return nil
}

func hasValidExit(events []Event) bool {
	for _, e := range events {
		if e.Status == StatusValid && e.Kind == KindExit {
			return true
		}
	}
	return false
}

func lastValid(events []Event) *Event {
	var last *Event
	for i := range events {
		e := &events[i]
		if e.Status != StatusValid {
			continue
		}
		// ties go to the later element
		if last == nil || !e.OccurredAt.Before(last.OccurredAt) {
			last = e
		}
	}
	return last
}

type DayStatus string

const (
	DayStatusOK         DayStatus = "OK"
	DayStatusIncomplete DayStatus = "INCOMPLETE"
	DayStatusNoRecord   DayStatus = "NO_RECORD"
	DayStatusOnLeave    DayStatus = "ON_LEAVE"
	DayStatusWeekend    DayStatus = "WEEKEND"
)

// DailySummaryRow is derived per request and never stored.
// EntryTime and ExitTime keep the "00:00" marker for absent values; EntryAt and ExitAt
// are nil instead.
type DailySummaryRow struct {
	Date          string     `json:"date"`
	EntryTime     string     `json:"entry_time"`
	ExitTime      string     `json:"exit_time"`
	EntryAt       *time.Time `json:"entry_at"`
	ExitAt        *time.Time `json:"exit_at"`
	WorkedMinutes int        `json:"worked_minutes"`
	TargetMinutes int        `json:"target_minutes"`
	Status        DayStatus  `json:"status"`
}
