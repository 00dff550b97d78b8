package update_appointment_status

import (
	"fmt"

	"github.com/m04kA/SMC-CounselingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}

	if !domain.AppointmentStatus(req.Status).IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	if req.CompletionNotes != nil && len(*req.CompletionNotes) > domain.MaxCompletionNotesLength {
		return fmt.Errorf("%w: completion notes must not exceed %d characters", ErrInvalidInput, domain.MaxCompletionNotesLength)
	}

	return nil
}
