package repositories

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app "github.com/turtacn/AtomSense/internal/application/perception"
	"github.com/turtacn/AtomSense/pkg/errors"
	"github.com/turtacn/AtomSense/pkg/types/common"
)

var resultColumns = []string{
	"id", "molecule_id", "name", "formula", "mode",
	"content_hash", "atoms", "unmatched_count", "created_at",
}

func sampleResult() *app.Result {
	return &app.Result{
		ID:          common.NewID(),
		MoleculeID:  common.NewID(),
		Name:        "methanol",
		Formula:     "CH4O",
		Mode:        "permissive",
		ContentHash: "abc123",
		Atoms: []app.Assignment{
			{Index: 0, Symbol: "C", Type: "C.sp3", Matched: true},
			{Index: 1, Symbol: "O", Type: "O.sp3", Matched: true},
		},
		CreatedAt: time.Now().UTC(),
	}
}

func mockRepo(t *testing.T) (pgxmock.PgxPoolIface, *ResultRepo) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, newResultRepo(mock, nil)
}

func TestResultRepo_Save(t *testing.T) {
	mock, repo := mockRepo(t)
	res := sampleResult()

	mock.ExpectExec("INSERT INTO perception_results").
		WithArgs(string(res.ID), string(res.MoleculeID), res.Name, res.Formula,
			res.Mode, res.ContentHash, pgxmock.AnyArg(), res.UnmatchedCount, res.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.Save(context.Background(), res))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResultRepo_SaveNil(t *testing.T) {
	_, repo := mockRepo(t)
	err := repo.Save(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeBadRequest))
}

func TestResultRepo_FindByHash(t *testing.T) {
	mock, repo := mockRepo(t)
	res := sampleResult()
	atoms, err := json.Marshal(res.Atoms)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT .* FROM perception_results WHERE content_hash").
		WithArgs(res.ContentHash, res.Mode).
		WillReturnRows(pgxmock.NewRows(resultColumns).AddRow(
			string(res.ID), string(res.MoleculeID), res.Name, res.Formula,
			res.Mode, res.ContentHash, atoms, res.UnmatchedCount, res.CreatedAt))

	got, err := repo.FindByHash(context.Background(), res.ContentHash, res.Mode)
	require.NoError(t, err)
	assert.Equal(t, res.ID, got.ID)
	assert.Equal(t, res.Atoms, got.Atoms)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResultRepo_FindByID_NotFound(t *testing.T) {
	mock, repo := mockRepo(t)

	mock.ExpectQuery("SELECT .* FROM perception_results WHERE id").
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows(resultColumns))

	_, err := repo.FindByID(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestResultRepo_ListRecent(t *testing.T) {
	mock, repo := mockRepo(t)
	res := sampleResult()
	atoms, err := json.Marshal(res.Atoms)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT .* FROM perception_results ORDER BY created_at").
		WithArgs(5).
		WillReturnRows(pgxmock.NewRows(resultColumns).
			AddRow(string(res.ID), string(res.MoleculeID), res.Name, res.Formula,
				res.Mode, res.ContentHash, atoms, res.UnmatchedCount, res.CreatedAt))

	results, err := repo.ListRecent(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "methanol", results[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
