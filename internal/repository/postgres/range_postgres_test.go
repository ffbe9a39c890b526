package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"rangeapi/internal/model"
	"rangeapi/internal/repository"
)

var rangeCols = []string{"id", "owner_id", "template_id", "name", "provider", "region", "state", "state_key", "plan_key", "readme_key", "deployed_at"}

func rangeRow(rg *model.Range) *sqlmock.Rows {
	return sqlmock.NewRows(rangeCols).AddRow(
		rg.ID, rg.OwnerID, rg.TemplateID, rg.Name, rg.Provider, rg.Region,
		rg.State, rg.StateKey, rg.PlanKey, rg.ReadmeKey, rg.DeployedAt,
	)
}

func testRange() *model.Range {
	return &model.Range{
		ID:         "range-1",
		OwnerID:    "user-1",
		TemplateID: "tpl-1",
		Name:       "example-range-1",
		Provider:   model.ProviderAWS,
		Region:     model.RegionUSEast1,
		State:      model.RangeStateOn,
		StateKey:   "ranges/range-1/terraform.tfstate",
		PlanKey:    "ranges/range-1/plan.json",
		DeployedAt: time.Now().UTC(),
	}
}

func TestRangePostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewRangePostgres(db)
	ctx := context.Background()
	rg := testRange()

	mock.ExpectQuery("INSERT INTO ranges").
		WithArgs(rg.ID, rg.OwnerID, rg.TemplateID, rg.Name, rg.Provider, rg.Region,
			rg.State, rg.StateKey, rg.PlanKey, rg.ReadmeKey, rg.DeployedAt).
		WillReturnRows(rangeRow(rg))

	result, err := repo.Create(ctx, rg)

	assert.NoError(t, err)
	assert.Equal(t, rg.ID, result.ID)
	assert.Equal(t, model.RangeStateOn, result.State)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRangePostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewRangePostgres(db)
	ctx := context.Background()

	t.Run("owner scoped", func(t *testing.T) {
		rg := testRange()
		mock.ExpectQuery("SELECT (.+) FROM ranges WHERE id = (.+) AND owner_id = ?").
			WithArgs("range-1", "user-1").
			WillReturnRows(rangeRow(rg))

		got, err := repo.FindByID(ctx, "range-1", "user-1")
		assert.NoError(t, err)
		assert.Equal(t, "range-1", got.ID)
	})

	t.Run("admin unscoped", func(t *testing.T) {
		rg := testRange()
		mock.ExpectQuery("SELECT (.+) FROM ranges WHERE id = ?").
			WithArgs("range-1").
			WillReturnRows(rangeRow(rg))

		got, err := repo.FindByID(ctx, "range-1", "")
		assert.NoError(t, err)
		assert.Equal(t, "range-1", got.ID)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM ranges WHERE id = ?").
			WithArgs("missing", "user-1").
			WillReturnError(sql.ErrNoRows)

		got, err := repo.FindByID(ctx, "missing", "user-1")
		assert.True(t, errors.Is(err, sql.ErrNoRows))
		assert.Nil(t, got)
	})
}

func TestRangePostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewRangePostgres(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM ranges").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	mock.ExpectQuery("SELECT (.+) FROM ranges WHERE owner_id = (.+) ORDER BY").
		WithArgs("user-1", 10, 0).
		WillReturnRows(rangeRow(testRange()))

	res, err := repo.List(ctx, "user-1", repository.PageQuery{Limit: 10, Offset: 0})

	assert.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	assert.Len(t, res.Items, 1)
}

func TestRangePostgres_UpdateState(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewRangePostgres(db)
	ctx := context.Background()

	t.Run("updated", func(t *testing.T) {
		mock.ExpectExec("UPDATE ranges SET state").
			WithArgs("range-1", model.RangeStateOff).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdateState(ctx, "range-1", model.RangeStateOff))
	})

	t.Run("missing row", func(t *testing.T) {
		mock.ExpectExec("UPDATE ranges SET state").
			WithArgs("missing", model.RangeStateOff).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateState(ctx, "missing", model.RangeStateOff)
		assert.True(t, errors.Is(err, sql.ErrNoRows))
	})
}

func TestRangePostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewRangePostgres(db)
	ctx := context.Background()

	mock.ExpectExec("DELETE FROM ranges").
		WithArgs("range-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Delete(ctx, "range-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
