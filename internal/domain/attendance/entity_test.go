package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ev(kind Kind, status Status, minute int) Event {
	return Event{
		Kind:       kind,
		Status:     status,
		OccurredAt: time.Date(2025, 12, 1, 14, minute, 0, 0, time.UTC),
	}
}

func TestCheckMark(t *testing.T) {
	tests := []struct {
		name   string
		events []Event
		kind   Kind
		want   error
	}{
		{"entry on empty day", nil, KindEntry, nil},
		{"exit on empty day", nil, KindExit, ErrExitWithoutEntry},
		{"exit after entry", []Event{ev(KindEntry, StatusValid, 0)}, KindExit, nil},
		{"entry after entry", []Event{ev(KindEntry, StatusValid, 0)}, KindEntry, ErrSameKindRepeated},
		{"entry after exit", []Event{ev(KindEntry, StatusValid, 0), ev(KindExit, StatusValid, 5)}, KindEntry, ErrDayClosed},
		{"exit after exit", []Event{ev(KindEntry, StatusValid, 0), ev(KindExit, StatusValid, 5)}, KindExit, ErrDayClosed},
		{"void exit does not close", []Event{ev(KindEntry, StatusValid, 0), ev(KindExit, StatusVoid, 5)}, KindExit, nil},
		{"void entry is ignored", []Event{ev(KindEntry, StatusVoid, 0)}, KindExit, ErrExitWithoutEntry},
		{"invalid entry is ignored", []Event{ev(KindEntry, StatusInvalid, 0)}, KindEntry, nil},
		{"order by time not slice position", []Event{ev(KindExit, StatusVoid, 9), ev(KindEntry, StatusValid, 1)}, KindEntry, ErrSameKindRepeated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckMark(tt.events, tt.kind)
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestDayStateOf(t *testing.T) {
	assert.Equal(t, DayEmpty, DayStateOf(nil))
	assert.Equal(t, DayEmpty, DayStateOf([]Event{ev(KindEntry, StatusVoid, 0)}))
	assert.Equal(t, DayOpen, DayStateOf([]Event{ev(KindEntry, StatusValid, 0)}))
	assert.Equal(t, DayClosed, DayStateOf([]Event{ev(KindEntry, StatusValid, 0), ev(KindExit, StatusValid, 1)}))
	assert.Equal(t, DayOpen, DayStateOf([]Event{ev(KindEntry, StatusValid, 0), ev(KindExit, StatusVoid, 1)}))
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("EXIT")
	assert.NoError(t, err)
	assert.Equal(t, KindExit, k)

	_, err = ParseKind("exit")
	assert.ErrorIs(t, err, ErrInvalidKind)
}
