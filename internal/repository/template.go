package repository

import (
	"context"

	"rangeapi/internal/model"
)

// TemplateQuery filters template lookups. OwnerID scopes results to a user;
// an empty OwnerID skips the ownership filter (admin reads). StandaloneOnly
// restricts listings to templates not embedded in a parent template.
type TemplateQuery struct {
	OwnerID        string
	StandaloneOnly bool
}

// TemplateRepository defines data access for infrastructure templates.
//
// Range template uploads persist the whole tree: the range row carries the
// full spec, and child vpc/subnet/host rows are inserted with parent links so
// non-standalone listings can see them.
type TemplateRepository interface {
	CreateRangeTemplate(ctx context.Context, t *model.RangeTemplate) (*model.RangeTemplate, error)
	FindRangeTemplate(ctx context.Context, id string, q TemplateQuery) (*model.RangeTemplate, error)
	ListRangeTemplateHeaders(ctx context.Context, q TemplateQuery) ([]model.TemplateHeader, error)
	DeleteRangeTemplate(ctx context.Context, id string, q TemplateQuery) error

	CreateVPCTemplate(ctx context.Context, t *model.VPCTemplate) (*model.VPCTemplate, error)
	FindVPCTemplate(ctx context.Context, id string, q TemplateQuery) (*model.VPCTemplate, error)
	ListVPCTemplateHeaders(ctx context.Context, q TemplateQuery) ([]model.TemplateHeader, error)
	DeleteVPCTemplate(ctx context.Context, id string, q TemplateQuery) error

	CreateSubnetTemplate(ctx context.Context, t *model.SubnetTemplate) (*model.SubnetTemplate, error)
	FindSubnetTemplate(ctx context.Context, id string, q TemplateQuery) (*model.SubnetTemplate, error)
	ListSubnetTemplateHeaders(ctx context.Context, q TemplateQuery) ([]model.TemplateHeader, error)
	DeleteSubnetTemplate(ctx context.Context, id string, q TemplateQuery) error

	CreateHostTemplate(ctx context.Context, t *model.HostTemplate) (*model.HostTemplate, error)
	FindHostTemplate(ctx context.Context, id string, q TemplateQuery) (*model.HostTemplate, error)
	ListHostTemplateHeaders(ctx context.Context, q TemplateQuery) ([]model.TemplateHeader, error)
	DeleteHostTemplate(ctx context.Context, id string, q TemplateQuery) error
}
