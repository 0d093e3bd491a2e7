package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"facturo/internal/models/db_models"
	"facturo/internal/models/request_models"
	resp "facturo/internal/models/response_models"
	"facturo/internal/repositories"
	"facturo/pkg/i18n"
	"facturo/pkg/utils"
)

type AccountServiceInterface interface {
	List(ctx context.Context, scope utils.Scope, params utils.ListParams) (*utils.Page[resp.AccountResponse], error)
	Get(ctx context.Context, scope utils.Scope, id uint) (*resp.AccountResponse, error)
	Create(ctx context.Context, scope utils.Scope, request request_models.CreateAccountRequest) (*resp.AccountResponse, error)
	Update(ctx context.Context, scope utils.Scope, id uint, request request_models.UpdateAccountRequest) (*resp.AccountResponse, error)
	Delete(ctx context.Context, scope utils.Scope, id uint) error
}

type AccountService struct {
	accountRepo repositories.AccountRepository
	log         *zap.Logger
}

func NewAccountService(accountRepo repositories.AccountRepository, log *zap.Logger) AccountServiceInterface {
	return &AccountService{
		accountRepo: accountRepo,
		log:         log.Named("accounts"),
	}
}

func (a *AccountService) List(ctx context.Context, scope utils.Scope, params utils.ListParams) (*utils.Page[resp.AccountResponse], error) {
	if !scope.Admin {
		return nil, utils.ErrForbidden
	}
	accounts, total, err := a.accountRepo.List(ctx, params)
	if err != nil {
		return nil, utils.WrapDB("list accounts", err)
	}
	page := utils.NewPage(resp.FromAccounts(accounts), params, total)
	return &page, nil
}

func (a *AccountService) Get(ctx context.Context, scope utils.Scope, id uint) (*resp.AccountResponse, error) {
	account, err := a.find(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	out := resp.FromAccount(*account)
	return &out, nil
}

func (a *AccountService) Create(ctx context.Context, scope utils.Scope, request request_models.CreateAccountRequest) (*resp.AccountResponse, error) {
	if !scope.Admin {
		return nil, utils.ErrForbidden
	}
	if err := a.ensureEmailFree(ctx, request.Email, 0); err != nil {
		return nil, err
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	account := &db_models.Account{PasswordHash: hashedPassword, IsAdmin: request.IsAdmin}
	applyProfile(account, request.AccountProfile)

	if err := a.accountRepo.InsertTx(ctx, account); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.NewValidationError("email", i18n.KeyEmailTaken)
		}
		return nil, utils.WrapDB("insert account", err)
	}

	out := resp.FromAccount(*account)
	return &out, nil
}

func (a *AccountService) Update(ctx context.Context, scope utils.Scope, id uint, request request_models.UpdateAccountRequest) (*resp.AccountResponse, error) {
	account, err := a.find(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if err := a.ensureEmailFree(ctx, request.Email, account.ID); err != nil {
		return nil, err
	}

	applyProfile(account, request.AccountProfile)
	if request.Password != nil {
		hashedPassword, err := utils.HashPassword(*request.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		account.PasswordHash = hashedPassword
	}
	if request.IsAdmin != nil && scope.Admin {
		account.IsAdmin = *request.IsAdmin
	}

	if err := a.accountRepo.Update(ctx, account); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.NewValidationError("email", i18n.KeyEmailTaken)
		}
		return nil, utils.WrapDB("update account", err)
	}

	out := resp.FromAccount(*account)
	return &out, nil
}

func (a *AccountService) Delete(ctx context.Context, scope utils.Scope, id uint) error {
	if _, err := a.find(ctx, scope, id); err != nil {
		return err
	}
	if err := a.accountRepo.DeleteCascade(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrNotFound
		}
		return utils.WrapDB("delete account", err)
	}
	a.log.Info("account deleted", zap.Uint("account_id", id), zap.Uint("by", scope.AccountID))
	return nil
}

// find enforces self-or-admin before touching the store.
func (a *AccountService) find(ctx context.Context, scope utils.Scope, id uint) (*db_models.Account, error) {
	if !scope.CanAccessAccount(id) {
		return nil, utils.ErrForbidden
	}
	account, err := a.accountRepo.FindById(ctx, id)
	if err != nil {
		return nil, utils.WrapDB("find account", err)
	}
	if account == nil {
		return nil, utils.ErrNotFound
	}
	return account, nil
}

func (a *AccountService) ensureEmailFree(ctx context.Context, email string, exceptID uint) error {
	taken, err := a.accountRepo.EmailTaken(ctx, normalizeEmail(email), exceptID)
	if err != nil {
		return utils.WrapDB("check email", err)
	}
	if taken {
		return utils.NewValidationError("email", i18n.KeyEmailTaken)
	}
	return nil
}

func applyProfile(account *db_models.Account, p request_models.AccountProfile) {
	account.FirstName = p.FirstName
	account.LastName = p.LastName
	account.Email = normalizeEmail(p.Email)
	account.Phone = p.Phone
	account.Address = p.Address
	account.PostalCode = p.PostalCode
	account.City = p.City
	account.Country = p.Country
	account.CompanyName = p.CompanyName
	account.Siret = p.Siret
	if p.MaxAnnualRevenue != nil {
		account.MaxAnnualRevenue = *p.MaxAnnualRevenue
	}
	if p.ExpenseRate != nil {
		account.ExpenseRate = *p.ExpenseRate
	}
}
