package schedule

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"github.com/zhotheone/nailapp/internal/httperr"
	"github.com/zhotheone/nailapp/internal/models"
)

var hhmm = regexp.MustCompile(`^([01][0-9]|2[0-3]):([0-5][0-9])$`)

type Repository interface {
	// FindByWeekday returns nil, nil when the weekday has no template.
	FindByWeekday(ctx context.Context, weekday int) (*models.Schedule, error)
	// FindByID returns nil, nil when the id is unknown.
	FindByID(ctx context.Context, id uint) (*models.Schedule, error)
	List(ctx context.Context) ([]models.Schedule, error)
	// Upsert creates or fully overwrites the row for s.DayOfWeek.
	Upsert(ctx context.Context, s *models.Schedule) error
	Save(ctx context.Context, s *models.Schedule) error
}

// ParseHHMM accepts strict 24-hour "HH:MM".
func ParseHHMM(s string) (hour, minute int, err error) {
	m := hhmm.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, fmt.Errorf("invalid time of day %q", s)
	}
	hour, _ = strconv.Atoi(m[1])
	minute, _ = strconv.Atoi(m[2])
	return hour, minute, nil
}

func IsHHMM(s string) bool {
	return hhmm.MatchString(s)
}

// DefaultIsWeekend is the fallback when a weekday has no template.
func DefaultIsWeekend(weekday int) bool {
	return weekday == 0 || weekday == 6
}

func ValidateWeekday(weekday int) error {
	if weekday < 0 || weekday > 6 {
		return httperr.ErrValidation("invalid_day_of_week", "dayOfWeek must be between 0 and 6")
	}
	return nil
}

// Normalize validates the template and returns the table to store. Weekend
// days store an empty table.
func Normalize(weekday int, isWeekend bool, tt models.TimeTable) (models.TimeTable, error) {
	if err := ValidateWeekday(weekday); err != nil {
		return nil, err
	}
	if isWeekend {
		return models.TimeTable{}, nil
	}

	out := make(models.TimeTable, len(tt))
	for idx, v := range tt {
		if !IsHHMM(v) {
			return nil, httperr.ErrValidation(
				"invalid_time_format",
				fmt.Sprintf("timeTable[%d]: %q is not a valid HH:MM time", idx, v),
			)
		}
		out[idx] = v
	}
	return out, nil
}

// SortedTimes returns the distinct slot times in chronological order.
// Zero-padded HH:MM sorts lexically in time order.
func SortedTimes(tt models.TimeTable) []string {
	seen := make(map[string]struct{}, len(tt))
	out := make([]string, 0, len(tt))
	for _, v := range tt {
		if !IsHHMM(v) {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
