package pricing

import (
	"testing"

	"rentaldesk-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validWindow() domain.RentalWindow {
	return domain.RentalWindow{
		LoadInDate: "2026-05-10", LoadInTime: "07:00",
		StartDate: "2026-05-11", StartTime: "09:00",
		FinishDate: "2026-05-13", FinishTime: "18:00",
	}
}

func TestValidateWindow(t *testing.T) {
	t.Run("Valid window", func(t *testing.T) {
		w, err := ValidateWindow(validWindow())
		assert.NoError(t, err)
		assert.Equal(t, validWindow(), w)
	})

	t.Run("Start before load-in clears start and finish", func(t *testing.T) {
		in := validWindow()
		in.StartDate = "2026-05-09"

		w, err := ValidateWindow(in)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		require.Len(t, verr.Fields, 1)
		assert.Equal(t, "start", verr.Fields[0].Field)
		assert.Empty(t, w.StartDate)
		assert.Empty(t, w.StartTime)
		assert.Empty(t, w.FinishDate)
		assert.Empty(t, w.FinishTime)
		assert.Equal(t, in.LoadInDate, w.LoadInDate)
	})

	t.Run("Finish before start clears finish only", func(t *testing.T) {
		in := validWindow()
		in.FinishDate = "2026-05-11"
		in.FinishTime = "08:59"

		w, err := ValidateWindow(in)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "finish", verr.Fields[0].Field)
		assert.Contains(t, err.Error(), "finish cannot be before start")
		assert.Equal(t, in.StartDate, w.StartDate)
		assert.Equal(t, in.StartTime, w.StartTime)
		assert.Empty(t, w.FinishDate)
	})

	t.Run("Same moment is allowed", func(t *testing.T) {
		in := validWindow()
		in.StartDate, in.StartTime = in.LoadInDate, in.LoadInTime
		in.FinishDate, in.FinishTime = in.LoadInDate, in.LoadInTime
		_, err := ValidateWindow(in)
		assert.NoError(t, err)
	})

	t.Run("Missing fields are not errors", func(t *testing.T) {
		_, err := ValidateWindow(domain.RentalWindow{StartDate: "2026-05-11"})
		assert.NoError(t, err)
	})

	t.Run("Unreadable date", func(t *testing.T) {
		in := validWindow()
		in.FinishDate = "13/05/2026"
		w, err := ValidateWindow(in)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "finish", verr.Fields[0].Field)
		assert.Empty(t, w.FinishDate)
	})
}

func TestRentalDays(t *testing.T) {
	tests := []struct {
		name     string
		window   domain.RentalWindow
		expected int
	}{
		{"Missing both", domain.RentalWindow{}, 1},
		{"Missing finish", domain.RentalWindow{StartDate: "2026-05-11"}, 1},
		{"Same day", domain.RentalWindow{StartDate: "2026-05-11", StartTime: "09:00", FinishDate: "2026-05-11", FinishTime: "17:00"}, 1},
		{"Exactly 24 hours", domain.RentalWindow{StartDate: "2026-05-11", StartTime: "09:00", FinishDate: "2026-05-12", FinishTime: "09:00"}, 1},
		{"Just over 24 hours", domain.RentalWindow{StartDate: "2026-05-11", StartTime: "09:00", FinishDate: "2026-05-12", FinishTime: "09:01"}, 2},
		{"Dates only", domain.RentalWindow{StartDate: "2026-05-11", FinishDate: "2026-05-14"}, 3},
		{"Out of order", domain.RentalWindow{StartDate: "2026-05-14", FinishDate: "2026-05-11"}, 1},
		{"Unreadable", domain.RentalWindow{StartDate: "soon", FinishDate: "2026-05-11"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RentalDays(tt.window))
		})
	}
}
