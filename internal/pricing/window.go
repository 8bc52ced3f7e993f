package pricing

import (
	"fmt"
	"math"
	"strings"
	"time"

	"rentaldesk-backend/internal/domain"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// FieldError describes one rejected window field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned when a rental window is not in chronological
// order or carries unreadable values.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "invalid rental window: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) add(field, msg string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: msg})
}

// parseMoment combines a date and an optional time. ok is false when the date
// is missing; err is set when either part cannot be read.
func parseMoment(date, clock string) (t time.Time, ok bool, err error) {
	date = strings.TrimSpace(date)
	clock = strings.TrimSpace(clock)
	if date == "" {
		return time.Time{}, false, nil
	}
	if clock == "" {
		clock = "00:00"
	}
	t, err = time.Parse(dateLayout+" "+timeLayout, date+" "+clock)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("expected YYYY-MM-DD and HH:MM")
	}
	return t, true, nil
}

// ValidateWindow checks that finish >= start >= load-in. Offending later
// fields are cleared in the returned window and reported in a
// *ValidationError; earlier fields are never touched.
func ValidateWindow(w domain.RentalWindow) (domain.RentalWindow, error) {
	verr := &ValidationError{}

	loadIn, hasLoadIn, err := parseMoment(w.LoadInDate, w.LoadInTime)
	if err != nil {
		verr.add("load_in", err.Error())
		w.LoadInDate, w.LoadInTime = "", ""
	}
	start, hasStart, err := parseMoment(w.StartDate, w.StartTime)
	if err != nil {
		verr.add("start", err.Error())
		w.StartDate, w.StartTime = "", ""
	}
	finish, hasFinish, err := parseMoment(w.FinishDate, w.FinishTime)
	if err != nil {
		verr.add("finish", err.Error())
		w.FinishDate, w.FinishTime = "", ""
	}

	if hasLoadIn && hasStart && start.Before(loadIn) {
		verr.add("start", "start cannot be before load-in")
		w.StartDate, w.StartTime = "", ""
		hasStart = false
		if hasFinish {
			w.FinishDate, w.FinishTime = "", ""
			hasFinish = false
		}
	}
	if hasStart && hasFinish && finish.Before(start) {
		verr.add("finish", "finish cannot be before start")
		w.FinishDate, w.FinishTime = "", ""
	}

	if len(verr.Fields) > 0 {
		return w, verr
	}
	return w, nil
}

// RentalDays is the number of started 24-hour periods from start to finish,
// at least 1. It is 1 whenever start or finish is missing, unreadable or out
// of order.
func RentalDays(w domain.RentalWindow) int {
	start, hasStart, err := parseMoment(w.StartDate, w.StartTime)
	if err != nil || !hasStart {
		return 1
	}
	finish, hasFinish, err := parseMoment(w.FinishDate, w.FinishTime)
	if err != nil || !hasFinish || finish.Before(start) {
		return 1
	}
	days := int(math.Ceil(finish.Sub(start).Hours() / 24))
	if days < 1 {
		return 1
	}
	return days
}
