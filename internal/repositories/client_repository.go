package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"facturo/internal/models/db_models"
	"facturo/pkg/utils"
)

type ClientRepository interface {
	Create(ctx context.Context, client *db_models.Client) error
	FindByID(ctx context.Context, scope utils.Scope, id uint) (*db_models.Client, error)
	List(ctx context.Context, scope utils.Scope, params utils.ListParams) ([]db_models.Client, int64, error)
	Update(ctx context.Context, client *db_models.Client) error
	DeleteCascade(ctx context.Context, id uint) error
}

var clientSortable = map[string]string{
	"id":           "id",
	"last_name":    "last_name",
	"company_name": "company_name",
	"email":        "email",
	"created_at":   "created_at",
}

type clientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepository{db: db}
}

func ownedClients(scope utils.Scope) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if scope.Admin {
			return db
		}
		return db.Where("account_id = ?", scope.AccountID)
	}
}

func (r *clientRepository) Create(ctx context.Context, client *db_models.Client) error {
	return r.db.WithContext(ctx).Omit("Account", "Projects").Create(client).Error
}

func (r *clientRepository) FindByID(ctx context.Context, scope utils.Scope, id uint) (*db_models.Client, error) {
	var client db_models.Client
	err := r.db.WithContext(ctx).Scopes(ownedClients(scope)).First(&client, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) List(ctx context.Context, scope utils.Scope, params utils.ListParams) ([]db_models.Client, int64, error) {
	q := r.db.WithContext(ctx).Model(&db_models.Client{}).Scopes(ownedClients(scope))
	if term, ok := params.Filter("q"); ok {
		p := likePattern(term)
		q = q.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(company_name) LIKE ?",
			p, p, p, p,
		)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var clients []db_models.Client
	err := q.Scopes(paginate(params, clientSortable, "id")).Find(&clients).Error
	return clients, total, err
}

func (r *clientRepository) Update(ctx context.Context, client *db_models.Client) error {
	return r.db.WithContext(ctx).Omit("Account", "Projects").Save(client).Error
}

func (r *clientRepository) DeleteCascade(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		projectIDs := subquery(tx).Model(&db_models.Project{}).Select("id").Where("client_id = ?", id)
		if err := deleteProjects(tx, projectIDs); err != nil {
			return err
		}
		res := tx.Delete(&db_models.Client{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
