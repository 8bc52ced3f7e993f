package jobs

import (
	"context"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/logger"
)

// CloseEndedForms closes published forms whose event finished before today
// (UTC) so their links stop taking orders.
func (jr *JobRunner) CloseEndedForms() {
	jr.runWithRecovery("CloseEndedForms", func() {
		if _, err := jr.closeEndedForms(context.Background()); err != nil {
			logger.Error("Failed to close ended forms", "error", err)
		}
	})
}

func (jr *JobRunner) closeEndedForms(ctx context.Context) (int, error) {
	today := jr.now().UTC().Format("2006-01-02")
	forms, err := jr.forms.ListPublishedEndedBefore(ctx, today)
	if err != nil {
		return 0, err
	}

	closed := 0
	for _, f := range forms {
		if err := jr.forms.UpdateStatus(ctx, f.ID, domain.FormStatusClosed); err != nil {
			logger.Error("Failed to close form", "form_id", f.ID, "error", err)
			continue
		}
		logger.Debug("Closed ended form", "form_id", f.ID, "finish_date", f.Event.Window.FinishDate)
		closed++
	}

	logger.Info("Closed ended forms", "count", closed, "found", len(forms))
	return closed, nil
}
