package request_models

type ProjectRequest struct {
	ClientID    uint   `json:"client_id" binding:"required,min=1"`
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description"`
	Status      string `json:"status" binding:"omitempty,oneof=prospect quote_sent quote_accepted started completed cancelled"`
}
