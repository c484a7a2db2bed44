package pgversion

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerVersion_ParsesMajorMinorFromVerboseString(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SHOW server_version").
		WillReturnRows(sqlmock.NewRows([]string{"server_version"}).AddRow("15.4 (Debian 15.4-1.pgdg110+1)"))

	p := &Prober{DB: db}
	got, err := p.ServerVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "15.4", got)
}

func TestServerVersion_PatchVersionTruncatesToMajorMinor(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SHOW server_version").
		WillReturnRows(sqlmock.NewRows([]string{"server_version"}).AddRow("9.6.24"))

	p := &Prober{DB: db}
	got, err := p.ServerVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "9.6", got)
}

func TestServerVersion_QueryErrorPropagates(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SHOW server_version").WillReturnError(assert.AnError)

	p := &Prober{DB: db}
	_, err = p.ServerVersion(context.Background())
	require.Error(t, err)
}

func TestServerVersion_UnparseableVersionString(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SHOW server_version").
		WillReturnRows(sqlmock.NewRows([]string{"server_version"}).AddRow("unknown"))

	p := &Prober{DB: db}
	_, err = p.ServerVersion(context.Background())
	require.Error(t, err)
}
