package request_models

type ClientRequest struct {
	// Only admins may attach a client to another account.
	AccountID   *uint  `json:"account_id" binding:"omitempty,min=1"`
	FirstName   string `json:"first_name" binding:"required,max=100"`
	LastName    string `json:"last_name" binding:"required,max=100"`
	Email       string `json:"email" binding:"omitempty,email,max=255"`
	Phone       string `json:"phone" binding:"omitempty,max=30"`
	Address     string `json:"address" binding:"omitempty,max=255"`
	PostalCode  string `json:"postal_code" binding:"omitempty,max=20"`
	City        string `json:"city" binding:"omitempty,max=100"`
	Country     string `json:"country" binding:"omitempty,max=100"`
	CompanyName string `json:"company_name" binding:"omitempty,max=255"`
}
