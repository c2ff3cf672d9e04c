package user

import (
	"context"
	"log/slog"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/loci-travel-bot/internal/types"
)

func newRepoWithMock(t *testing.T) (*RepositoryImpl, pgxmock.PgxPoolIface) {
	t.Helper()
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockPool.Close)
	return NewRepositoryImpl(mockPool, slog.Default()), mockPool
}

func TestGetLanguage(t *testing.T) {
	repo, mockPool := newRepoWithMock(t)

	lang := "ru"
	mockPool.ExpectQuery(`SELECT language_code FROM users WHERE telegram_id = \$1`).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"language_code"}).AddRow(&lang))

	got, err := repo.GetLanguage(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "ru", got)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestGetLanguage_NoRow(t *testing.T) {
	repo, mockPool := newRepoWithMock(t)

	mockPool.ExpectQuery(`SELECT language_code FROM users WHERE telegram_id = \$1`).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"language_code"}))

	_, err := repo.GetLanguage(context.Background(), 7)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestGetLanguage_NullLanguage(t *testing.T) {
	repo, mockPool := newRepoWithMock(t)

	mockPool.ExpectQuery(`SELECT language_code FROM users WHERE telegram_id = \$1`).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"language_code"}).AddRow((*string)(nil)))

	_, err := repo.GetLanguage(context.Background(), 7)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestSetLanguage(t *testing.T) {
	repo, mockPool := newRepoWithMock(t)

	mockPool.ExpectExec(`INSERT INTO users`).
		WithArgs(int64(7), "fr").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.SetLanguage(context.Background(), 7, "fr")
	require.NoError(t, err)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestSetLanguage_EmptyCode(t *testing.T) {
	repo, _ := newRepoWithMock(t)

	err := repo.SetLanguage(context.Background(), 7, "")
	assert.ErrorIs(t, err, types.ErrBadRequest)
}
