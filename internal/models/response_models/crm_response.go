package response_models

import (
	"time"

	"github.com/samber/lo"

	"facturo/internal/models/db_models"
)

type ClientResponse struct {
	ID          uint      `json:"id"`
	AccountID   uint      `json:"account_id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	PostalCode  string    `json:"postal_code"`
	City        string    `json:"city"`
	Country     string    `json:"country"`
	CompanyName string    `json:"company_name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ProjectResponse struct {
	ID          uint      `json:"id"`
	ClientID    uint      `json:"client_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func FromClient(c db_models.Client) ClientResponse {
	return ClientResponse{
		ID:          c.ID,
		AccountID:   c.AccountID,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		Email:       c.Email,
		Phone:       c.Phone,
		Address:     c.Address,
		PostalCode:  c.PostalCode,
		City:        c.City,
		Country:     c.Country,
		CompanyName: c.CompanyName,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func FromClients(clients []db_models.Client) []ClientResponse {
	return lo.Map(clients, func(c db_models.Client, _ int) ClientResponse { return FromClient(c) })
}

func FromProject(p db_models.Project) ProjectResponse {
	return ProjectResponse{
		ID:          p.ID,
		ClientID:    p.ClientID,
		Name:        p.Name,
		Description: p.Description,
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func FromProjects(projects []db_models.Project) []ProjectResponse {
	return lo.Map(projects, func(p db_models.Project, _ int) ProjectResponse { return FromProject(p) })
}
