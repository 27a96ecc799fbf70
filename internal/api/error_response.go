package api

// ErrorResponse 全域錯誤響應模型
// swagger:model api.ErrorResponse
type ErrorResponse struct {
	// message 錯誤描述
	Message string `json:"message" example:"Product does not exist"`
}

// MessageResponse 僅含訊息的成功回應
// swagger:model api.MessageResponse
type MessageResponse struct {
	Message string `json:"message" example:"Cart deleted!"`
}

// PingResponse 健康檢查回應模型
// swagger:model api.PingResponse
type PingResponse struct {
	Message string `json:"message" example:"pong"`
}
