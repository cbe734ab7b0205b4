package models

type ApiResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message,omitempty"`
	Data    interface{}         `json:"data,omitempty"`
	Error   string              `json:"error,omitempty"`
	Flash   map[string][]string `json:"flash,omitempty"`
}

func SuccessResponse(data interface{}, message string) ApiResponse {
	return ApiResponse{
		Success: true,
		Data:    data,
		Message: message,
	}
}

func ErrorResponse(err string) ApiResponse {
	return ApiResponse{
		Success: false,
		Error:   err,
	}
}

// ViewResponse carries data plus the one-time notices accumulated since
// the previous render.
func ViewResponse(data interface{}, flash map[string][]string) ApiResponse {
	return ApiResponse{
		Success: true,
		Data:    data,
		Flash:   flash,
	}
}
