package services

import (
	"context"

	"go.uber.org/zap"

	"facturo/internal/models/db_models"
	"facturo/internal/models/request_models"
	resp "facturo/internal/models/response_models"
	"facturo/internal/repositories"
	"facturo/pkg/i18n"
	"facturo/pkg/utils"
)

type ClientServiceInterface interface {
	List(ctx context.Context, scope utils.Scope, params utils.ListParams) (*utils.Page[resp.ClientResponse], error)
	Get(ctx context.Context, scope utils.Scope, id uint) (*resp.ClientResponse, error)
	Create(ctx context.Context, scope utils.Scope, request request_models.ClientRequest) (*resp.ClientResponse, error)
	Update(ctx context.Context, scope utils.Scope, id uint, request request_models.ClientRequest) (*resp.ClientResponse, error)
	Delete(ctx context.Context, scope utils.Scope, id uint) error
}

type ClientService struct {
	clientRepo  repositories.ClientRepository
	accountRepo repositories.AccountRepository
	log         *zap.Logger
}

func NewClientService(clientRepo repositories.ClientRepository, accountRepo repositories.AccountRepository, log *zap.Logger) ClientServiceInterface {
	return &ClientService{
		clientRepo:  clientRepo,
		accountRepo: accountRepo,
		log:         log.Named("clients"),
	}
}

func (s *ClientService) List(ctx context.Context, scope utils.Scope, params utils.ListParams) (*utils.Page[resp.ClientResponse], error) {
	clients, total, err := s.clientRepo.List(ctx, scope, params)
	if err != nil {
		return nil, utils.WrapDB("list clients", err)
	}
	page := utils.NewPage(resp.FromClients(clients), params, total)
	return &page, nil
}

func (s *ClientService) Get(ctx context.Context, scope utils.Scope, id uint) (*resp.ClientResponse, error) {
	client, err := s.find(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	out := resp.FromClient(*client)
	return &out, nil
}

func (s *ClientService) Create(ctx context.Context, scope utils.Scope, request request_models.ClientRequest) (*resp.ClientResponse, error) {
	client := &db_models.Client{AccountID: scope.AccountID}
	if err := s.apply(ctx, scope, client, request); err != nil {
		return nil, err
	}
	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, utils.WrapDB("create client", err)
	}
	out := resp.FromClient(*client)
	return &out, nil
}

func (s *ClientService) Update(ctx context.Context, scope utils.Scope, id uint, request request_models.ClientRequest) (*resp.ClientResponse, error) {
	client, err := s.find(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, scope, client, request); err != nil {
		return nil, err
	}
	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, storeError("update client", err)
	}
	out := resp.FromClient(*client)
	return &out, nil
}

func (s *ClientService) Delete(ctx context.Context, scope utils.Scope, id uint) error {
	if _, err := s.find(ctx, scope, id); err != nil {
		return err
	}
	if err := s.clientRepo.DeleteCascade(ctx, id); err != nil {
		return storeError("delete client", err)
	}
	s.log.Info("client deleted", zap.Uint("client_id", id), zap.Uint("by", scope.AccountID))
	return nil
}

func (s *ClientService) find(ctx context.Context, scope utils.Scope, id uint) (*db_models.Client, error) {
	client, err := s.clientRepo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, utils.WrapDB("find client", err)
	}
	if client == nil {
		return nil, utils.ErrNotFound
	}
	return client, nil
}

// apply copies the request onto client. Only admins may move a client to
// another account.
func (s *ClientService) apply(ctx context.Context, scope utils.Scope, client *db_models.Client, r request_models.ClientRequest) error {
	if r.AccountID != nil && *r.AccountID != client.AccountID {
		if !scope.Admin {
			return utils.ErrForbidden
		}
		owner, err := s.accountRepo.FindById(ctx, *r.AccountID)
		if err != nil {
			return utils.WrapDB("find account", err)
		}
		if owner == nil {
			return utils.NewValidationError("account_id", i18n.KeyParentNotFound)
		}
		client.AccountID = owner.ID
	}

	client.FirstName = r.FirstName
	client.LastName = r.LastName
	client.Email = normalizeEmail(r.Email)
	client.Phone = r.Phone
	client.Address = r.Address
	client.PostalCode = r.PostalCode
	client.City = r.City
	client.Country = r.Country
	client.CompanyName = r.CompanyName
	return nil
}
