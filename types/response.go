package types

type ApiResponse struct {
	Message string            `json:"message"`
	Status  int               `json:"status"`
	Token   string            `json:"token,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
	Data    interface{}       `json:"data,omitempty"`
}
