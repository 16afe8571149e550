package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type registerRequest struct {
	Username     string `json:"username"     validate:"required"`
	Password     string `json:"password"     validate:"required"`
	Organization string `json:"organization" validate:"required"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type createRequestRequest struct {
	Date        string `json:"date"        validate:"required"`
	Time        string `json:"time"        validate:"required"`
	Area        string `json:"area"        validate:"required"`
	Description string `json:"description" validate:"required"`
}

type decideRequest struct {
	Status   string `json:"status"   validate:"required,oneof=accepted declined"`
	Feedback string `json:"feedback"`
}
