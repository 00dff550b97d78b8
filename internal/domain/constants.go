package domain

import "github.com/m04kA/SMC-CounselingService/pkg/types"

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Appointment generation constants
const (
	// DefaultSessionStartTime время начала встреч, сгенерированных при
	// подтверждении заказа без предварительно выбранных слотов
	DefaultSessionStartTime = types.TimeString("10:00")

	// SessionIntervalDays интервал между сгенерированными встречами
	SessionIntervalDays = 7
)

// Business validation constants
const (
	MinSessionCount          = 1
	MaxNotesLength           = 500
	MaxCompletionNotesLength = 2000
)
