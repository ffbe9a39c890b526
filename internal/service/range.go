package service

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"rangeapi/internal/crypto"
	"rangeapi/internal/deploy"
	"rangeapi/internal/model"
	"rangeapi/internal/repository"
	"rangeapi/internal/storage"
	"rangeapi/internal/validator"
)

var (
	ErrRangeNotFound = errors.New("range not found")
	ErrNoCredentials = errors.New("no credentials configured for provider")
	ErrDecryptFailed = errors.New("failed to decrypt cloud credentials")
	ErrInvalidRegion = errors.New("unsupported region")
	ErrForbidden     = errors.New("not the owner of this template")
)

// RangeListResult is the service-level DTO for paginated ranges.
type RangeListResult struct {
	Items []model.Range `json:"data"`
	Total int           `json:"total"`
}

// RangeService defines the deploy/destroy/read use cases for ranges.
type RangeService interface {
	// Deploy renders a template into a terraform plan, applies it with the
	// caller's decrypted cloud credentials, persists the state file and plan
	// to object storage, and records the range.
	Deploy(ctx context.Context, caller *model.User, masterKey []byte, templateID string, region model.Region) (*model.Range, error)

	// Destroy tears down a deployed range and removes its artifacts.
	Destroy(ctx context.Context, caller *model.User, masterKey []byte, id string) error

	// Get returns a deployed range by ID, owner-scoped unless admin.
	Get(ctx context.Context, caller *model.User, id string) (*model.Range, error)

	// List returns the caller's deployed ranges.
	List(ctx context.Context, caller *model.User, limit, offset int) (*RangeListResult, error)
}

type rangeService struct {
	ranges    repository.RangeRepository
	templates repository.TemplateRepository
	secrets   repository.SecretRepository
	store     storage.Storage
	deployer  deploy.Deployer
	now       func() time.Time
}

// NewRangeService constructs a new RangeService.
func NewRangeService(
	ranges repository.RangeRepository,
	templates repository.TemplateRepository,
	secrets repository.SecretRepository,
	store storage.Storage,
	deployer deploy.Deployer,
) RangeService {
	return &rangeService{
		ranges:    ranges,
		templates: templates,
		secrets:   secrets,
		store:     store,
		deployer:  deployer,
		now:       time.Now,
	}
}

func (s *rangeService) Deploy(ctx context.Context, caller *model.User, masterKey []byte, templateID string, region model.Region) (*model.Range, error) {
	if !validator.IsValidUUID4(templateID) {
		return nil, ErrInvalidID
	}
	if !region.Valid() {
		return nil, ErrInvalidRegion
	}

	tpl, err := s.templates.FindRangeTemplate(ctx, templateID, scope(caller, false))
	if err != nil {
		// A template that exists but belongs to someone else is a permission
		// problem, not a missing resource.
		if errors.Is(err, sql.ErrNoRows) && !caller.IsAdmin {
			if _, uerr := s.templates.FindRangeTemplate(ctx, templateID, repository.TemplateQuery{}); uerr == nil {
				return nil, ErrForbidden
			}
		}
		return nil, notFoundOr(err)
	}

	creds, err := s.awsCredentials(ctx, caller.ID, masterKey)
	if err != nil {
		return nil, err
	}

	rangeID := uuid.NewString()
	plan, err := deploy.Synthesize(tpl, region, rangeID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	state, err := s.deployer.Deploy(ctx, plan, creds)
	if err != nil {
		return nil, fmt.Errorf("deploy range: %w", err)
	}

	planJSON, err := plan.JSON()
	if err != nil {
		return nil, err
	}
	stateKey, planKey := storage.StateKey(rangeID), storage.PlanKey(rangeID)
	if err := s.putObject(ctx, stateKey, state); err != nil {
		return nil, fmt.Errorf("persist state: %w", err)
	}
	if err := s.putObject(ctx, planKey, planJSON); err != nil {
		return nil, fmt.Errorf("persist plan: %w", err)
	}

	rng := &model.Range{
		ID:         rangeID,
		OwnerID:    caller.ID,
		TemplateID: tpl.ID,
		Name:       tpl.Name,
		Provider:   tpl.Provider,
		Region:     region,
		State:      model.RangeStateOn,
		StateKey:   stateKey,
		PlanKey:    planKey,
		DeployedAt: s.now().UTC(),
	}
	stored, err := s.ranges.Create(ctx, rng)
	if err != nil {
		return nil, fmt.Errorf("record range: %w", err)
	}
	return stored, nil
}

func (s *rangeService) Destroy(ctx context.Context, caller *model.User, masterKey []byte, id string) error {
	if !validator.IsValidUUID4(id) {
		return ErrInvalidID
	}

	rng, err := s.ranges.FindByID(ctx, id, ownerScope(caller))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrRangeNotFound
		}
		return err
	}

	// Always the caller's own credentials: an admin tearing down someone
	// else's range cannot unseal the owner's keys.
	creds, err := s.awsCredentials(ctx, caller.ID, masterKey)
	if err != nil {
		return err
	}

	state, err := s.getObject(ctx, rng.StateKey)
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}
	plan, err := s.loadPlan(ctx, rng)
	if err != nil {
		return err
	}

	if err := s.ranges.UpdateState(ctx, rng.ID, model.RangeStateDestroying); err != nil {
		return err
	}
	if err := s.deployer.Destroy(ctx, plan, state, creds); err != nil {
		// Leave the row in destroying state so the failure is visible.
		return fmt.Errorf("destroy range: %w", err)
	}

	for _, key := range []string{rng.StateKey, rng.PlanKey, rng.ReadmeKey} {
		if key == "" {
			continue
		}
		if err := s.store.Delete(ctx, key); err != nil {
			return fmt.Errorf("delete artifact %s: %w", key, err)
		}
	}
	return s.ranges.Delete(ctx, rng.ID)
}

func (s *rangeService) Get(ctx context.Context, caller *model.User, id string) (*model.Range, error) {
	if !validator.IsValidUUID4(id) {
		return nil, ErrInvalidID
	}
	rng, err := s.ranges.FindByID(ctx, id, ownerScope(caller))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRangeNotFound
		}
		return nil, err
	}
	return rng, nil
}

func (s *rangeService) List(ctx context.Context, caller *model.User, limit, offset int) (*RangeListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	res, err := s.ranges.List(ctx, caller.ID, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &RangeListResult{Items: res.Items, Total: res.Total}, nil
}

// ownerScope returns the owner filter for range reads; admins read unscoped.
func ownerScope(caller *model.User) string {
	if caller.IsAdmin {
		return ""
	}
	return caller.ID
}

// awsCredentials loads and unseals the caller's AWS keys with the master key.
func (s *rangeService) awsCredentials(ctx context.Context, userID string, masterKey []byte) (deploy.Credentials, error) {
	sec, err := s.secrets.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return deploy.Credentials{}, ErrNoCredentials
		}
		return deploy.Credentials{}, err
	}
	if !sec.HasAWS() {
		return deploy.Credentials{}, ErrNoCredentials
	}

	accessKey, err := crypto.Open(masterKey, sec.AWSAccessKey)
	if err != nil {
		return deploy.Credentials{}, fmt.Errorf("%w: %v", ErrDecryptFailed, err)
	}
	secretKey, err := crypto.Open(masterKey, sec.AWSSecretKey)
	if err != nil {
		return deploy.Credentials{}, fmt.Errorf("%w: %v", ErrDecryptFailed, err)
	}
	return deploy.Credentials{
		AccessKey: string(accessKey),
		SecretKey: string(secretKey),
	}, nil
}

// loadPlan rebuilds the terraform plan for a range from its stored artifact.
func (s *rangeService) loadPlan(ctx context.Context, rng *model.Range) (*deploy.Plan, error) {
	raw, err := s.getObject(ctx, rng.PlanKey)
	if err != nil {
		return nil, fmt.Errorf("load plan: %w", err)
	}
	var stack map[string]any
	if err := json.Unmarshal(raw, &stack); err != nil {
		return nil, fmt.Errorf("decode plan: %w", err)
	}
	regionName, err := model.AWSRegionName(rng.Region)
	if err != nil {
		return nil, err
	}
	return &deploy.Plan{ID: rng.ID, Name: rng.Name, Region: regionName, Stack: stack}, nil
}

func (s *rangeService) putObject(ctx context.Context, key string, data []byte) error {
	_, err := s.store.Put(ctx, key, bytes.NewReader(data), storage.PutObjectOptions{
		Size:        int64(len(data)),
		ContentType: "application/json",
	})
	return err
}

func (s *rangeService) getObject(ctx context.Context, key string) ([]byte, error) {
	rc, _, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
