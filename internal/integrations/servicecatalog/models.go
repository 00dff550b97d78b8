package servicecatalog

// CounselingService модель услуги из каталога
type CounselingService struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	DepartmentID int64   `json:"department_id"`
	MaxSessions  int     `json:"max_sessions"`
	Price        float64 `json:"price"`
	IsActive     bool    `json:"is_active"`
}

// ErrorResponse модель ошибки от ServiceCatalog
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
