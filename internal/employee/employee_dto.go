package employee

type CreateEmployeeRequest struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"omitempty,email"`
	Team         string `json:"team"`
	TotalPtoDays *int   `json:"total_pto_days" binding:"omitempty,min=0"`
}

type UpdateEmployeeRequest struct {
	Name         *string `json:"name"`
	Email        *string `json:"email" binding:"omitempty,email"`
	Team         *string `json:"team"`
	TotalPtoDays *int    `json:"total_pto_days" binding:"omitempty,min=0"`
}

type EmployeeResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email,omitempty"`
	Team         string `json:"team,omitempty"`
	TotalPtoDays int    `json:"total_pto_days"`

	// Current-year usage, Approved records only
	PtoUsed       int `json:"pto_used"`
	PtoRemaining  int `json:"pto_remaining"`
	MaternityDays int `json:"maternity_days"`
	PaternityDays int `json:"paternity_days"`

	CreatedAt string `json:"created_at"`
}
