package doctordirectory

// Doctor модель врача из DoctorDirectory
type Doctor struct {
	ID             int64  `json:"id"`
	FullName       string `json:"full_name"`
	Specialization string `json:"specialization"`
	DepartmentID   int64  `json:"department_id"`
	IsActive       bool   `json:"is_active"`
}

// ErrorResponse модель ошибки от DoctorDirectory
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
