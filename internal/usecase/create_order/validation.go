package create_order

import (
	"fmt"

	"github.com/m04kA/SMC-CounselingService/internal/domain"
)

// validateRequest валидирует входные данные запроса.
// Несовпадение количества слотов и сессий отклоняется здесь,
// до какого-либо обращения к слотам.
func validateRequest(req *Request) error {
	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if req.DoctorID <= 0 {
		return fmt.Errorf("%w: doctorID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.SessionCount < domain.MinSessionCount {
		return fmt.Errorf("%w: sessionCount must be at least %d", ErrInvalidInput, domain.MinSessionCount)
	}

	if req.Amount < 0 {
		return fmt.Errorf("%w: amount must not be negative", ErrInvalidInput)
	}

	if len(req.SlotIDs) > 0 {
		if len(req.SlotIDs) != req.SessionCount {
			return fmt.Errorf("%w: got %d slots for %d sessions", ErrSlotCountMismatch, len(req.SlotIDs), req.SessionCount)
		}
		if err := validateSlotIDsUnique(req.SlotIDs); err != nil {
			return err
		}
	}

	return nil
}

// validateSlotIDsUnique проверяет, что слоты не повторяются
func validateSlotIDsUnique(ids []int64) error {
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if id <= 0 {
			return fmt.Errorf("%w: slot id must be positive", ErrInvalidInput)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: duplicate slot id=%d", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// validateSlotOwnership проверяет, что все слоты принадлежат врачу
func validateSlotOwnership(slots []*domain.AvailabilitySlot, doctorID int64) error {
	for _, s := range slots {
		if s.DoctorID != doctorID {
			return fmt.Errorf("%w: slot id=%d belongs to doctor=%d", ErrSlotNotOwned, s.ID, s.DoctorID)
		}
	}
	return nil
}
