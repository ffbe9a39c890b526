package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"rangeapi/internal/model"
	"rangeapi/internal/repository"
	"rangeapi/internal/validator"
)

var (
	ErrInvalidID        = errors.New("id is not a valid uuid4")
	ErrTemplateNotFound = errors.New("template not found")
	ErrValidation       = errors.New("validation failed")
)

// TemplateService defines the use cases for infrastructure templates. Every
// read and delete is scoped to the calling user; admins see all templates.
type TemplateService interface {
	CreateRangeTemplate(ctx context.Context, caller *model.User, t *model.RangeTemplate) (*model.RangeTemplate, error)
	GetRangeTemplate(ctx context.Context, caller *model.User, id string) (*model.RangeTemplate, error)
	ListRangeTemplates(ctx context.Context, caller *model.User, standaloneOnly bool) ([]model.TemplateHeader, error)
	DeleteRangeTemplate(ctx context.Context, caller *model.User, id string) error

	CreateVPCTemplate(ctx context.Context, caller *model.User, t *model.VPCTemplate) (*model.VPCTemplate, error)
	GetVPCTemplate(ctx context.Context, caller *model.User, id string) (*model.VPCTemplate, error)
	ListVPCTemplates(ctx context.Context, caller *model.User, standaloneOnly bool) ([]model.TemplateHeader, error)
	DeleteVPCTemplate(ctx context.Context, caller *model.User, id string) error

	CreateSubnetTemplate(ctx context.Context, caller *model.User, t *model.SubnetTemplate) (*model.SubnetTemplate, error)
	GetSubnetTemplate(ctx context.Context, caller *model.User, id string) (*model.SubnetTemplate, error)
	ListSubnetTemplates(ctx context.Context, caller *model.User, standaloneOnly bool) ([]model.TemplateHeader, error)
	DeleteSubnetTemplate(ctx context.Context, caller *model.User, id string) error

	CreateHostTemplate(ctx context.Context, caller *model.User, t *model.HostTemplate) (*model.HostTemplate, error)
	GetHostTemplate(ctx context.Context, caller *model.User, id string) (*model.HostTemplate, error)
	ListHostTemplates(ctx context.Context, caller *model.User, standaloneOnly bool) ([]model.TemplateHeader, error)
	DeleteHostTemplate(ctx context.Context, caller *model.User, id string) error
}

type templateService struct {
	repo repository.TemplateRepository
}

// NewTemplateService constructs a new TemplateService.
func NewTemplateService(repo repository.TemplateRepository) TemplateService {
	return &templateService{repo: repo}
}

// scope builds the repository query for a caller. Admin reads are unscoped.
func scope(caller *model.User, standaloneOnly bool) repository.TemplateQuery {
	q := repository.TemplateQuery{StandaloneOnly: standaloneOnly}
	if !caller.IsAdmin {
		q.OwnerID = caller.ID
	}
	return q
}

func checkID(id string) error {
	if !validator.IsValidUUID4(id) {
		return ErrInvalidID
	}
	return nil
}

func notFoundOr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrTemplateNotFound
	}
	return err
}

// --- range templates ---

func (s *templateService) CreateRangeTemplate(ctx context.Context, caller *model.User, t *model.RangeTemplate) (*model.RangeTemplate, error) {
	if err := validator.ValidateRangeTemplate(t); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	t.OwnerID = caller.ID
	return s.repo.CreateRangeTemplate(ctx, t)
}

func (s *templateService) GetRangeTemplate(ctx context.Context, caller *model.User, id string) (*model.RangeTemplate, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	t, err := s.repo.FindRangeTemplate(ctx, id, scope(caller, false))
	if err != nil {
		return nil, notFoundOr(err)
	}
	return t, nil
}

func (s *templateService) ListRangeTemplates(ctx context.Context, caller *model.User, standaloneOnly bool) ([]model.TemplateHeader, error) {
	headers, err := s.repo.ListRangeTemplateHeaders(ctx, scope(caller, standaloneOnly))
	if err != nil {
		return nil, err
	}
	if len(headers) == 0 {
		return nil, ErrTemplateNotFound
	}
	return headers, nil
}

func (s *templateService) DeleteRangeTemplate(ctx context.Context, caller *model.User, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	// Verify visibility before deleting so foreign templates 404.
	if _, err := s.repo.FindRangeTemplate(ctx, id, scope(caller, false)); err != nil {
		return notFoundOr(err)
	}
	return s.repo.DeleteRangeTemplate(ctx, id, scope(caller, false))
}

// --- vpc templates ---

func (s *templateService) CreateVPCTemplate(ctx context.Context, caller *model.User, t *model.VPCTemplate) (*model.VPCTemplate, error) {
	if err := validator.ValidateVPCTemplate(t); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	t.OwnerID = caller.ID
	return s.repo.CreateVPCTemplate(ctx, t)
}

func (s *templateService) GetVPCTemplate(ctx context.Context, caller *model.User, id string) (*model.VPCTemplate, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	t, err := s.repo.FindVPCTemplate(ctx, id, scope(caller, false))
	if err != nil {
		return nil, notFoundOr(err)
	}
	return t, nil
}

func (s *templateService) ListVPCTemplates(ctx context.Context, caller *model.User, standaloneOnly bool) ([]model.TemplateHeader, error) {
	headers, err := s.repo.ListVPCTemplateHeaders(ctx, scope(caller, standaloneOnly))
	if err != nil {
		return nil, err
	}
	if len(headers) == 0 {
		return nil, ErrTemplateNotFound
	}
	return headers, nil
}

func (s *templateService) DeleteVPCTemplate(ctx context.Context, caller *model.User, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	if _, err := s.repo.FindVPCTemplate(ctx, id, scope(caller, false)); err != nil {
		return notFoundOr(err)
	}
	return s.repo.DeleteVPCTemplate(ctx, id, scope(caller, false))
}

// --- subnet templates ---

func (s *templateService) CreateSubnetTemplate(ctx context.Context, caller *model.User, t *model.SubnetTemplate) (*model.SubnetTemplate, error) {
	if err := validator.ValidateSubnetTemplate(t); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	t.OwnerID = caller.ID
	return s.repo.CreateSubnetTemplate(ctx, t)
}

func (s *templateService) GetSubnetTemplate(ctx context.Context, caller *model.User, id string) (*model.SubnetTemplate, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	t, err := s.repo.FindSubnetTemplate(ctx, id, scope(caller, false))
	if err != nil {
		return nil, notFoundOr(err)
	}
	return t, nil
}

func (s *templateService) ListSubnetTemplates(ctx context.Context, caller *model.User, standaloneOnly bool) ([]model.TemplateHeader, error) {
	headers, err := s.repo.ListSubnetTemplateHeaders(ctx, scope(caller, standaloneOnly))
	if err != nil {
		return nil, err
	}
	if len(headers) == 0 {
		return nil, ErrTemplateNotFound
	}
	return headers, nil
}

func (s *templateService) DeleteSubnetTemplate(ctx context.Context, caller *model.User, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	if _, err := s.repo.FindSubnetTemplate(ctx, id, scope(caller, false)); err != nil {
		return notFoundOr(err)
	}
	return s.repo.DeleteSubnetTemplate(ctx, id, scope(caller, false))
}

// --- host templates ---

func (s *templateService) CreateHostTemplate(ctx context.Context, caller *model.User, t *model.HostTemplate) (*model.HostTemplate, error) {
	if err := validator.ValidateHostTemplate(t); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	t.OwnerID = caller.ID
	return s.repo.CreateHostTemplate(ctx, t)
}

func (s *templateService) GetHostTemplate(ctx context.Context, caller *model.User, id string) (*model.HostTemplate, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	t, err := s.repo.FindHostTemplate(ctx, id, scope(caller, false))
	if err != nil {
		return nil, notFoundOr(err)
	}
	return t, nil
}

func (s *templateService) ListHostTemplates(ctx context.Context, caller *model.User, standaloneOnly bool) ([]model.TemplateHeader, error) {
	headers, err := s.repo.ListHostTemplateHeaders(ctx, scope(caller, standaloneOnly))
	if err != nil {
		return nil, err
	}
	if len(headers) == 0 {
		return nil, ErrTemplateNotFound
	}
	return headers, nil
}

func (s *templateService) DeleteHostTemplate(ctx context.Context, caller *model.User, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	if _, err := s.repo.FindHostTemplate(ctx, id, scope(caller, false)); err != nil {
		return notFoundOr(err)
	}
	return s.repo.DeleteHostTemplate(ctx, id, scope(caller, false))
}
