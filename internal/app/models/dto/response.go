package dto

// SuccessResponse represents a standard success response for API endpoints
type SuccessResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Student marks saved successfully."`
}

// CountResponse carries a row count
type CountResponse struct {
	Count int64 `json:"count" example:"42"`
}

// HealthResponse is returned by the health endpoint
type HealthResponse struct {
	Status  string `json:"status" example:"ok"`
	Storage string `json:"storage" example:"postgres"`
	Clients int    `json:"clients" example:"3"`
}
