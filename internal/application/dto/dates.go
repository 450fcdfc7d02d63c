package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Gestion-api/internal/domain"
)

const dateLayout = "2006-01-02"

// ParseDateRange interpreta date_from/date_to (YYYY-MM-DD o RFC3339).
// Una fecha sin hora en date_to cubre el día completo. required exige ambas.
func ParseDateRange(from, to string, required bool) (*time.Time, *time.Time, error) {
	from, to = strings.TrimSpace(from), strings.TrimSpace(to)
	if required && (from == "" || to == "") {
		return nil, nil, fmt.Errorf("%w: date_from y date_to son obligatorios", domain.ErrValidation)
	}
	var start, end *time.Time
	if from != "" {
		t, _, err := parseDate(from)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: date_from inválida (%s)", domain.ErrValidation, from)
		}
		start = &t
	}
	if to != "" {
		t, dateOnly, err := parseDate(to)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: date_to inválida (%s)", domain.ErrValidation, to)
		}
		if dateOnly {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		end = &t
	}
	if start != nil && end != nil && end.Before(*start) {
		return nil, nil, fmt.Errorf("%w: date_to anterior a date_from", domain.ErrValidation)
	}
	return start, end, nil
}

func parseDate(s string) (t time.Time, dateOnly bool, err error) {
	if t, err = time.Parse(dateLayout, s); err == nil {
		return t, true, nil
	}
	t, err = time.Parse(time.RFC3339, s)
	return t, false, err
}
