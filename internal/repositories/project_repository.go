package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"facturo/internal/models/db_models"
	"facturo/pkg/utils"
)

type ProjectRepository interface {
	Create(ctx context.Context, project *db_models.Project) error
	FindByID(ctx context.Context, scope utils.Scope, id uint) (*db_models.Project, error)
	List(ctx context.Context, scope utils.Scope, params utils.ListParams) ([]db_models.Project, int64, error)
	Update(ctx context.Context, project *db_models.Project) error
	UpdateStatus(ctx context.Context, id uint, status db_models.ProjectStatus) error
	DeleteCascade(ctx context.Context, id uint) error
}

var projectSortable = map[string]string{
	"id":         "id",
	"name":       "name",
	"status":     "status",
	"created_at": "created_at",
}

type projectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *db_models.Project) error {
	return r.db.WithContext(ctx).Omit("Client", "Quotes", "Invoices").Create(project).Error
}

func (r *projectRepository) FindByID(ctx context.Context, scope utils.Scope, id uint) (*db_models.Project, error) {
	var project db_models.Project
	err := r.db.WithContext(ctx).
		Scopes(ownedBy(scope, "client_id", clientIDsOf)).
		First(&project, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) List(ctx context.Context, scope utils.Scope, params utils.ListParams) ([]db_models.Project, int64, error) {
	q := r.db.WithContext(ctx).Model(&db_models.Project{}).Scopes(ownedBy(scope, "client_id", clientIDsOf))
	if v, ok := params.Filter("client_id"); ok {
		q = q.Where("client_id = ?", v)
	}
	if v, ok := params.Filter("status"); ok {
		q = q.Where("status = ?", v)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var projects []db_models.Project
	err := q.Scopes(paginate(params, projectSortable, "id")).Find(&projects).Error
	return projects, total, err
}

func (r *projectRepository) Update(ctx context.Context, project *db_models.Project) error {
	return r.db.WithContext(ctx).Omit("Client", "Quotes", "Invoices").Save(project).Error
}

func (r *projectRepository) UpdateStatus(ctx context.Context, id uint, status db_models.ProjectStatus) error {
	return r.db.WithContext(ctx).Model(&db_models.Project{}).Where("id = ?", id).Update("status", status).Error
}

func (r *projectRepository) DeleteCascade(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&db_models.Project{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
		return deleteProjects(tx, []uint{id})
	})
}
