package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hr-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hr-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hr-attendance-go/internal/domain/schedule"
	"github.com/cmlabs-hris/hr-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-attendance-go/internal/pkg/clock"
	"golang.org/x/sync/errgroup"
)

const day = 24 * time.Hour

// Summarize implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Summarize(ctx context.Context, actor user.Actor, userID string, filter attendance.SummaryFilter) ([]attendance.DailySummaryRow, error) {
	if !actor.IsAuthenticated() {
		return nil, attendance.ErrUnauthenticated
	}
	if !actor.IsSelf(userID) && !actor.Can(user.PermissionAttendanceManage) {
		return nil, attendance.ErrForbidden
	}

	start, end, err := a.resolveRange(filter)
	if err != nil {
		return nil, err
	}

	var (
		events []attendance.Event
		spans  leave.Spans
		week   schedule.Week
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		events, err = a.AttendanceRepository.ListValidBetween(gctx, userID, start, end.Add(day))
		if err != nil {
			return fmt.Errorf("failed to load events: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		spans, err = a.leave.ApprovedBetween(gctx, userID, a.clock.LocalDateKey(start), a.clock.LocalDateKey(end))
		if err != nil {
			return fmt.Errorf("failed to load approved leave: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		week, err = a.schedule.WeekForUser(gctx, userID)
		if err != nil {
			return fmt.Errorf("failed to load work schedule: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return BuildDailySummary(a.clock, start, end, events, spans.Blocks, week.TargetMinutes), nil
}

// resolveRange returns the local midnights of the first and last day, both inclusive.
// Missing bounds default to the first day of the current local month and today.
func (a *AttendanceServiceImpl) resolveRange(filter attendance.SummaryFilter) (time.Time, time.Time, error) {
	now := a.clock.Now()
	start := a.clock.StartOfLocalMonth(now)
	end := a.clock.StartOfLocalDay(now)

	if filter.From != "" {
		from, err := a.clock.ParseLocalDate(filter.From)
		if err != nil {
			return time.Time{}, time.Time{}, attendance.ErrInvalidDate
		}
		start = from
	}
	if filter.To != "" {
		to, err := a.clock.ParseLocalDate(filter.To)
		if err != nil {
			return time.Time{}, time.Time{}, attendance.ErrInvalidDate
		}
		end = to
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, attendance.ErrInvalidRange
	}
	if int(end.Sub(start)/day)+1 > maxSummaryDays {
		return time.Time{}, time.Time{}, attendance.ErrRangeTooLong
	}
	return start, end, nil
}

// BuildDailySummary emits one row per local day from start to end inclusive, never skipping a day.
// start and end must be local midnights. events are the owner's VALID events in range; onLeave and
// targetMinutes answer per date key and per ISO weekday.
//
// Status precedence: ON_LEAVE, WEEKEND, NO_RECORD, then OK or INCOMPLETE from the day's events.
func BuildDailySummary(
	c *clock.Clock,
	start, end time.Time,
	events []attendance.Event,
	onLeave func(dateKey string) bool,
	targetMinutes func(weekday int) int,
) []attendance.DailySummaryRow {
	byDate := make(map[string][]attendance.Event)
	for _, e := range events {
		if e.Status != attendance.StatusValid {
			continue
		}
		key := c.LocalDateKey(e.OccurredAt)
		byDate[key] = append(byDate[key], e)
	}

	rows := make([]attendance.DailySummaryRow, 0, int(end.Sub(start)/day)+1)
	for d := start; !d.After(end); d = d.Add(day) {
		key := c.LocalDateKey(d)
		row := attendance.DailySummaryRow{
			Date:          key,
			EntryTime:     clock.NoTimeMarker,
			ExitTime:      clock.NoTimeMarker,
			TargetMinutes: targetMinutes(c.LocalWeekday(d)),
		}

		dayEvents := byDate[key]
		switch {
		case onLeave(key):
			row.Status = attendance.DayStatusOnLeave
		case c.IsWeekend(d):
			row.Status = attendance.DayStatusWeekend
		case len(dayEvents) == 0:
			row.Status = attendance.DayStatusNoRecord
		default:
			firstEntry, lastExit := outerBounds(dayEvents)
			row.EntryAt = firstEntry
			row.ExitAt = lastExit
			row.EntryTime = c.LocalTimeOfDay(firstEntry)
			row.ExitTime = c.LocalTimeOfDay(lastExit)
			if firstEntry != nil && lastExit != nil {
				row.WorkedMinutes = workedMinutes(*firstEntry, *lastExit)
				row.Status = attendance.DayStatusOK
			} else {
				row.Status = attendance.DayStatusIncomplete
			}
		}

		rows = append(rows, row)
	}
	return rows
}

// outerBounds returns the earliest ENTRY and the latest EXIT, so stray extra marks never shrink the day.
func outerBounds(events []attendance.Event) (firstEntry, lastExit *time.Time) {
	for _, e := range events {
		at := e.OccurredAt.UTC()
		switch e.Kind {
		case attendance.KindEntry:
			if firstEntry == nil || at.Before(*firstEntry) {
				firstEntry = &at
			}
		case attendance.KindExit:
			if lastExit == nil || at.After(*lastExit) {
				lastExit = &at
			}
		}
	}
	return firstEntry, lastExit
}

func workedMinutes(entry, exit time.Time) int {
	minutes := int(exit.Sub(entry) / time.Minute)
	if minutes < 0 {
		return 0
	}
	return minutes
}
