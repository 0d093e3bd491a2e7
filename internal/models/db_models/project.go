package db_models

type ProjectStatus string

const (
	ProjectProspect      ProjectStatus = "prospect"
	ProjectQuoteSent     ProjectStatus = "quote_sent"
	ProjectQuoteAccepted ProjectStatus = "quote_accepted"
	ProjectStarted       ProjectStatus = "started"
	ProjectCompleted     ProjectStatus = "completed"
	ProjectCancelled     ProjectStatus = "cancelled"
)

type Project struct {
	BaseModel
	ClientID    uint          `gorm:"index;not null"`
	Name        string        `gorm:"size:255;not null"`
	Description string        `gorm:"type:text"`
	Status      ProjectStatus `gorm:"size:20;index;not null;default:prospect"`

	Client   Client    `gorm:"foreignKey:ClientID"`
	Quotes   []Quote   `gorm:"constraint:OnDelete:CASCADE"`
	Invoices []Invoice `gorm:"constraint:OnDelete:CASCADE"`
}
