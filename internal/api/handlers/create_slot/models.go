package create_slot

import (
	"time"

	"github.com/m04kA/SMC-CounselingService/internal/domain"
	"github.com/m04kA/SMC-CounselingService/internal/service/slots/models"
	"github.com/m04kA/SMC-CounselingService/pkg/types"
)

// CreateSlotRequest HTTP request model
type CreateSlotRequest struct {
	DoctorID  int64  `json:"doctorId"`
	Date      string `json:"date"`      // "2025-10-15"
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "11:00"
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
// (с парсингом даты и времени)
func (r *CreateSlotRequest) ToServiceRequest() (*models.CreateSlotRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &models.CreateSlotRequest{
		DoctorID:  r.DoctorID,
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
	}, nil
}
