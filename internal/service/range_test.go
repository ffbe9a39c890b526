package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rangeapi/internal/crypto"
	deployMocks "rangeapi/internal/deploy/mocks"
	"rangeapi/internal/model"
	"rangeapi/internal/repository"
	repoMocks "rangeapi/internal/repository/mocks"
	"rangeapi/internal/storage"
	storeMocks "rangeapi/internal/storage/mocks"
)

const rangeID = "55555555-5555-4555-8555-555555555555"

// sealedSecret stores AWS keys encrypted under masterKey, the way the
// secrets table holds them.
func sealedSecret(t *testing.T, userID string, masterKey []byte) *model.Secret {
	t.Helper()

	access, err := crypto.Seal(masterKey, []byte("AKIAEXAMPLE"))
	require.NoError(t, err)
	secret, err := crypto.Seal(masterKey, []byte("secret-key-value"))
	require.NoError(t, err)

	return &model.Secret{UserID: userID, AWSAccessKey: access, AWSSecretKey: secret}
}

func testMasterKey(t *testing.T) []byte {
	t.Helper()
	key, _, err := crypto.DeriveMasterKey("password123")
	require.NoError(t, err)
	return key
}

type rangeMocks struct {
	ranges    *repoMocks.MockRangeRepository
	templates *repoMocks.MockTemplateRepository
	secrets   *repoMocks.MockSecretRepository
	store     *storeMocks.MockStorage
	deployer  *deployMocks.MockDeployer
}

func newRangeService(t *testing.T) (RangeService, *rangeMocks) {
	t.Helper()
	m := &rangeMocks{
		ranges:    new(repoMocks.MockRangeRepository),
		templates: new(repoMocks.MockTemplateRepository),
		secrets:   new(repoMocks.MockSecretRepository),
		store:     new(storeMocks.MockStorage),
		deployer:  new(deployMocks.MockDeployer),
	}
	svc := NewRangeService(m.ranges, m.templates, m.secrets, m.store, m.deployer)
	return svc, m
}

func (m *rangeMocks) assertExpectations(t *testing.T) {
	m.ranges.AssertExpectations(t)
	m.templates.AssertExpectations(t)
	m.secrets.AssertExpectations(t)
	m.store.AssertExpectations(t)
	m.deployer.AssertExpectations(t)
}

func TestRangeService_Deploy(t *testing.T) {
	ctx := context.Background()
	caller := regularUser()
	masterKey := testMasterKey(t)

	t.Run("happy path persists artifacts and row", func(t *testing.T) {
		svc, m := newRangeService(t)

		tpl := validRangeTemplate()
		tpl.ID = tplID
		m.templates.On("FindRangeTemplate", ctx, tplID, repository.TemplateQuery{OwnerID: caller.ID}).
			Return(tpl, nil)
		m.secrets.On("Get", ctx, caller.ID).Return(sealedSecret(t, caller.ID, masterKey), nil)
		m.deployer.On("Deploy", ctx, mock.Anything, mock.Anything).
			Return([]byte(`{"version":4}`), nil)
		m.store.On("Put", ctx, mock.MatchedBy(func(key string) bool {
			return strings.HasSuffix(key, "/terraform.tfstate")
		}), mock.Anything, mock.Anything).Return(storage.ObjectInfo{}, nil)
		m.store.On("Put", ctx, mock.MatchedBy(func(key string) bool {
			return strings.HasSuffix(key, "/plan.json")
		}), mock.Anything, mock.Anything).Return(storage.ObjectInfo{}, nil)
		m.ranges.On("Create", ctx, mock.MatchedBy(func(r *model.Range) bool {
			return r.OwnerID == caller.ID &&
				r.TemplateID == tplID &&
				r.State == model.RangeStateOn &&
				r.StateKey == storage.StateKey(r.ID) &&
				r.PlanKey == storage.PlanKey(r.ID)
		})).Return(&model.Range{ID: rangeID, State: model.RangeStateOn}, nil)

		rng, err := svc.Deploy(ctx, caller, masterKey, tplID, model.RegionUSEast1)
		assert.NoError(t, err)
		assert.Equal(t, model.RangeStateOn, rng.State)
		m.assertExpectations(t)
	})

	t.Run("non-uuid4 template id", func(t *testing.T) {
		svc, m := newRangeService(t)
		_, err := svc.Deploy(ctx, caller, masterKey, "not-a-uuid", model.RegionUSEast1)
		assert.ErrorIs(t, err, ErrInvalidID)
		m.assertExpectations(t)
	})

	t.Run("unsupported region", func(t *testing.T) {
		svc, m := newRangeService(t)
		_, err := svc.Deploy(ctx, caller, masterKey, tplID, model.Region("mars_central_1"))
		assert.ErrorIs(t, err, ErrInvalidRegion)
		m.assertExpectations(t)
	})

	t.Run("unknown template not found", func(t *testing.T) {
		svc, m := newRangeService(t)
		m.templates.On("FindRangeTemplate", ctx, tplID, repository.TemplateQuery{OwnerID: caller.ID}).
			Return(nil, sql.ErrNoRows)
		m.templates.On("FindRangeTemplate", ctx, tplID, repository.TemplateQuery{}).
			Return(nil, sql.ErrNoRows)

		_, err := svc.Deploy(ctx, caller, masterKey, tplID, model.RegionUSEast1)
		assert.ErrorIs(t, err, ErrTemplateNotFound)
		m.assertExpectations(t)
	})

	t.Run("foreign template forbidden", func(t *testing.T) {
		svc, m := newRangeService(t)
		m.templates.On("FindRangeTemplate", ctx, tplID, repository.TemplateQuery{OwnerID: caller.ID}).
			Return(nil, sql.ErrNoRows)
		m.templates.On("FindRangeTemplate", ctx, tplID, repository.TemplateQuery{}).
			Return(validRangeTemplate(), nil)

		_, err := svc.Deploy(ctx, caller, masterKey, tplID, model.RegionUSEast1)
		assert.ErrorIs(t, err, ErrForbidden)
		m.assertExpectations(t)
	})

	t.Run("missing credentials", func(t *testing.T) {
		svc, m := newRangeService(t)
		m.templates.On("FindRangeTemplate", ctx, tplID, repository.TemplateQuery{OwnerID: caller.ID}).
			Return(validRangeTemplate(), nil)
		m.secrets.On("Get", ctx, caller.ID).Return(&model.Secret{UserID: caller.ID}, nil)

		_, err := svc.Deploy(ctx, caller, masterKey, tplID, model.RegionUSEast1)
		assert.ErrorIs(t, err, ErrNoCredentials)
		m.assertExpectations(t)
	})

	t.Run("wrong master key", func(t *testing.T) {
		svc, m := newRangeService(t)
		m.templates.On("FindRangeTemplate", ctx, tplID, repository.TemplateQuery{OwnerID: caller.ID}).
			Return(validRangeTemplate(), nil)
		m.secrets.On("Get", ctx, caller.ID).Return(sealedSecret(t, caller.ID, masterKey), nil)

		wrongKey := make([]byte, 32)
		_, err := svc.Deploy(ctx, caller, wrongKey, tplID, model.RegionUSEast1)
		assert.ErrorIs(t, err, ErrDecryptFailed)
		m.assertExpectations(t)
	})

	t.Run("deployer failure writes no row", func(t *testing.T) {
		svc, m := newRangeService(t)
		m.templates.On("FindRangeTemplate", ctx, tplID, repository.TemplateQuery{OwnerID: caller.ID}).
			Return(validRangeTemplate(), nil)
		m.secrets.On("Get", ctx, caller.ID).Return(sealedSecret(t, caller.ID, masterKey), nil)
		m.deployer.On("Deploy", ctx, mock.Anything, mock.Anything).
			Return(nil, errors.New("terraform apply: exit status 1"))

		_, err := svc.Deploy(ctx, caller, masterKey, tplID, model.RegionUSEast1)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "deploy range")
		m.assertExpectations(t)
	})
}

func TestRangeService_Destroy(t *testing.T) {
	ctx := context.Background()
	caller := regularUser()
	masterKey := testMasterKey(t)

	deployed := &model.Range{
		ID:       rangeID,
		OwnerID:  caller.ID,
		Name:     "test-range",
		Provider: model.ProviderAWS,
		Region:   model.RegionUSEast1,
		State:    model.RangeStateOn,
		StateKey: storage.StateKey(rangeID),
		PlanKey:  storage.PlanKey(rangeID),
	}

	t.Run("happy path", func(t *testing.T) {
		svc, m := newRangeService(t)

		m.ranges.On("FindByID", ctx, rangeID, caller.ID).Return(deployed, nil)
		m.secrets.On("Get", ctx, caller.ID).Return(sealedSecret(t, caller.ID, masterKey), nil)
		m.store.On("Get", ctx, deployed.StateKey).
			Return(io.NopCloser(strings.NewReader(`{"version":4}`)), storage.ObjectInfo{}, nil)
		m.store.On("Get", ctx, deployed.PlanKey).
			Return(io.NopCloser(strings.NewReader(`{"resource":{}}`)), storage.ObjectInfo{}, nil)
		m.ranges.On("UpdateState", ctx, rangeID, model.RangeStateDestroying).Return(nil)
		m.deployer.On("Destroy", ctx, mock.Anything, []byte(`{"version":4}`), mock.Anything).Return(nil)
		m.store.On("Delete", ctx, deployed.StateKey).Return(nil)
		m.store.On("Delete", ctx, deployed.PlanKey).Return(nil)
		m.ranges.On("Delete", ctx, rangeID).Return(nil)

		assert.NoError(t, svc.Destroy(ctx, caller, masterKey, rangeID))
		m.assertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		svc, m := newRangeService(t)
		m.ranges.On("FindByID", ctx, rangeID, caller.ID).Return(nil, sql.ErrNoRows)

		assert.ErrorIs(t, svc.Destroy(ctx, caller, masterKey, rangeID), ErrRangeNotFound)
		m.assertExpectations(t)
	})

	t.Run("admin destroys a foreign range with own credentials", func(t *testing.T) {
		svc, m := newRangeService(t)
		admin := adminUser()
		adminKey := testMasterKey(t)

		m.ranges.On("FindByID", ctx, rangeID, "").Return(deployed, nil)
		m.secrets.On("Get", ctx, admin.ID).Return(sealedSecret(t, admin.ID, adminKey), nil)
		m.store.On("Get", ctx, deployed.StateKey).
			Return(io.NopCloser(strings.NewReader(`{"version":4}`)), storage.ObjectInfo{}, nil)
		m.store.On("Get", ctx, deployed.PlanKey).
			Return(io.NopCloser(strings.NewReader(`{"resource":{}}`)), storage.ObjectInfo{}, nil)
		m.ranges.On("UpdateState", ctx, rangeID, model.RangeStateDestroying).Return(nil)
		m.deployer.On("Destroy", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)
		m.store.On("Delete", ctx, deployed.StateKey).Return(nil)
		m.store.On("Delete", ctx, deployed.PlanKey).Return(nil)
		m.ranges.On("Delete", ctx, rangeID).Return(nil)

		assert.NoError(t, svc.Destroy(ctx, admin, adminKey, rangeID))
		m.assertExpectations(t)
	})

	t.Run("destroy failure leaves row destroying", func(t *testing.T) {
		svc, m := newRangeService(t)

		m.ranges.On("FindByID", ctx, rangeID, caller.ID).Return(deployed, nil)
		m.secrets.On("Get", ctx, caller.ID).Return(sealedSecret(t, caller.ID, masterKey), nil)
		m.store.On("Get", ctx, deployed.StateKey).
			Return(io.NopCloser(strings.NewReader(`{"version":4}`)), storage.ObjectInfo{}, nil)
		m.store.On("Get", ctx, deployed.PlanKey).
			Return(io.NopCloser(strings.NewReader(`{}`)), storage.ObjectInfo{}, nil)
		m.ranges.On("UpdateState", ctx, rangeID, model.RangeStateDestroying).Return(nil)
		m.deployer.On("Destroy", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return(errors.New("terraform destroy: exit status 1"))

		err := svc.Destroy(ctx, caller, masterKey, rangeID)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "destroy range")
		m.assertExpectations(t)
	})
}

func TestRangeService_GetAndList(t *testing.T) {
	ctx := context.Background()
	caller := regularUser()
	admin := adminUser()

	t.Run("get scoped to owner", func(t *testing.T) {
		svc, m := newRangeService(t)
		m.ranges.On("FindByID", ctx, rangeID, caller.ID).Return(&model.Range{ID: rangeID}, nil)

		rng, err := svc.Get(ctx, caller, rangeID)
		assert.NoError(t, err)
		assert.Equal(t, rangeID, rng.ID)
		m.assertExpectations(t)
	})

	t.Run("admin get unscoped", func(t *testing.T) {
		svc, m := newRangeService(t)
		m.ranges.On("FindByID", ctx, rangeID, "").Return(&model.Range{ID: rangeID}, nil)

		_, err := svc.Get(ctx, admin, rangeID)
		assert.NoError(t, err)
		m.assertExpectations(t)
	})

	t.Run("list defaults pagination", func(t *testing.T) {
		svc, m := newRangeService(t)
		m.ranges.On("List", ctx, caller.ID, repository.PageQuery{Limit: 10, Offset: 0}).
			Return(&repository.PageResult[model.Range]{Items: []model.Range{{ID: rangeID}}, Total: 1}, nil)

		res, err := svc.List(ctx, caller, 0, -1)
		assert.NoError(t, err)
		assert.Equal(t, 1, res.Total)
		m.assertExpectations(t)
	})
}
