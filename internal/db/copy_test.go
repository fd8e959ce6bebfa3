package db

import (
	"context"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyFrom_EmptyRows(t *testing.T) {
	n, err := CopyFrom(context.TODO(), nil, "results", []string{"a", "b"}, nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestCopyFrom_Success(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectCopyFrom(pgx.Identifier{"results"}, []string{"well_id", "depth"}).WillReturnResult(3)

	rows := [][]any{{"W-1", 1000.0}, {"W-1", 1000.5}, {"W-1", 1001.0}}
	n, err := CopyFrom(context.Background(), mock, "results", []string{"well_id", "depth"}, rows)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCopyFrom_Error(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectCopyFrom(pgx.Identifier{"results"}, []string{"well_id"}).WillReturnError(fmt.Errorf("copy failed"))

	rows := [][]any{{"W-1"}}
	_, err = CopyFrom(context.Background(), mock, "results", []string{"well_id"}, rows)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "COPY INTO results")
	assert.NoError(t, mock.ExpectationsWereMet())
}
