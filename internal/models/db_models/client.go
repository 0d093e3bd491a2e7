package db_models

type Client struct {
	BaseModel
	AccountID   uint   `gorm:"index;not null"`
	FirstName   string `gorm:"size:100;not null"`
	LastName    string `gorm:"size:100;not null"`
	Email       string `gorm:"size:255"`
	Phone       string `gorm:"size:30"`
	Address     string `gorm:"size:255"`
	PostalCode  string `gorm:"size:20"`
	City        string `gorm:"size:100"`
	Country     string `gorm:"size:100"`
	CompanyName string `gorm:"size:255"`

	Account  Account   `gorm:"foreignKey:AccountID"`
	Projects []Project `gorm:"constraint:OnDelete:CASCADE"`
}
