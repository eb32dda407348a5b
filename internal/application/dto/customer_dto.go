package dto

// CreateCustomerRequest alta de cliente.
type CreateCustomerRequest struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	LoyaltyPoints int    `json:"loyalty_points"`
}

// UpdateCustomerRequest edición de cliente.
type UpdateCustomerRequest struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	LoyaltyPoints int    `json:"loyalty_points"`
	Active        bool   `json:"active"`
}

// CustomerResponse cliente expuesto por la API.
type CustomerResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	LoyaltyPoints int    `json:"loyalty_points"`
	Active        bool   `json:"active"`
}
