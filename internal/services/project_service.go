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

type ProjectServiceInterface interface {
	List(ctx context.Context, scope utils.Scope, params utils.ListParams) (*utils.Page[resp.ProjectResponse], error)
	Get(ctx context.Context, scope utils.Scope, id uint) (*resp.ProjectResponse, error)
	Create(ctx context.Context, scope utils.Scope, request request_models.ProjectRequest) (*resp.ProjectResponse, error)
	Update(ctx context.Context, scope utils.Scope, id uint, request request_models.ProjectRequest) (*resp.ProjectResponse, error)
	Delete(ctx context.Context, scope utils.Scope, id uint) error
}

type ProjectService struct {
	projectRepo repositories.ProjectRepository
	clientRepo  repositories.ClientRepository
	log         *zap.Logger
}

func NewProjectService(projectRepo repositories.ProjectRepository, clientRepo repositories.ClientRepository, log *zap.Logger) ProjectServiceInterface {
	return &ProjectService{
		projectRepo: projectRepo,
		clientRepo:  clientRepo,
		log:         log.Named("projects"),
	}
}

func (s *ProjectService) List(ctx context.Context, scope utils.Scope, params utils.ListParams) (*utils.Page[resp.ProjectResponse], error) {
	projects, total, err := s.projectRepo.List(ctx, scope, params)
	if err != nil {
		return nil, utils.WrapDB("list projects", err)
	}
	page := utils.NewPage(resp.FromProjects(projects), params, total)
	return &page, nil
}

func (s *ProjectService) Get(ctx context.Context, scope utils.Scope, id uint) (*resp.ProjectResponse, error) {
	project, err := s.find(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	out := resp.FromProject(*project)
	return &out, nil
}

func (s *ProjectService) Create(ctx context.Context, scope utils.Scope, request request_models.ProjectRequest) (*resp.ProjectResponse, error) {
	project := &db_models.Project{Status: db_models.ProjectProspect}
	if err := s.apply(ctx, scope, project, request); err != nil {
		return nil, err
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, utils.WrapDB("create project", err)
	}
	out := resp.FromProject(*project)
	return &out, nil
}

func (s *ProjectService) Update(ctx context.Context, scope utils.Scope, id uint, request request_models.ProjectRequest) (*resp.ProjectResponse, error) {
	project, err := s.find(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, scope, project, request); err != nil {
		return nil, err
	}
	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, storeError("update project", err)
	}
	out := resp.FromProject(*project)
	return &out, nil
}

func (s *ProjectService) Delete(ctx context.Context, scope utils.Scope, id uint) error {
	if _, err := s.find(ctx, scope, id); err != nil {
		return err
	}
	if err := s.projectRepo.DeleteCascade(ctx, id); err != nil {
		return storeError("delete project", err)
	}
	s.log.Info("project deleted", zap.Uint("project_id", id), zap.Uint("by", scope.AccountID))
	return nil
}

func (s *ProjectService) find(ctx context.Context, scope utils.Scope, id uint) (*db_models.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, utils.WrapDB("find project", err)
	}
	if project == nil {
		return nil, utils.ErrNotFound
	}
	return project, nil
}

func (s *ProjectService) apply(ctx context.Context, scope utils.Scope, project *db_models.Project, r request_models.ProjectRequest) error {
	if r.ClientID != project.ClientID {
		client, err := s.clientRepo.FindByID(ctx, scope, r.ClientID)
		if err != nil {
			return utils.WrapDB("find client", err)
		}
		if client == nil {
			return utils.NewValidationError("client_id", i18n.KeyParentNotFound)
		}
		project.ClientID = client.ID
	}
	project.Name = r.Name
	project.Description = r.Description
	if r.Status != "" {
		project.Status = db_models.ProjectStatus(r.Status)
	}
	return nil
}
