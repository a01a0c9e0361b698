package catalog_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/leapstack-labs/leaplineage/pkg/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfoSchemaLoadTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("information_schema.columns").
		WithArgs("public", "users").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}).
			AddRow("id").
			AddRow("name").
			AddRow("email"))

	loader := &catalog.InfoSchemaLoader{DB: db}
	st := catalog.NewSymbolTable()

	err = loader.LoadTable(context.Background(), st, "public", "users")
	require.NoError(t, err)

	_, cols, ok := st.Lookup("", "public", "users")
	require.True(t, ok)
	assert.Equal(t, []string{"id", "name", "email"}, cols)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInfoSchemaLoadTableNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("information_schema.columns").
		WithArgs("public", "missing").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}))

	loader := &catalog.InfoSchemaLoader{DB: db}
	st := catalog.NewSymbolTable()

	err = loader.LoadTable(context.Background(), st, "public", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestInfoSchemaLoadTableNoConnection(t *testing.T) {
	loader := &catalog.InfoSchemaLoader{}
	err := loader.LoadTable(context.Background(), catalog.NewSymbolTable(), "public", "users")
	require.Error(t, err)
}

func TestInfoSchemaLoadSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("information_schema.tables").
		WithArgs("public").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).
			AddRow("orders").
			AddRow("users"))

	mock.ExpectQuery("information_schema.columns").
		WithArgs("public", "orders").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}).
			AddRow("id").
			AddRow("total"))

	mock.ExpectQuery("information_schema.columns").
		WithArgs("public", "users").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}).
			AddRow("id"))

	loader := &catalog.InfoSchemaLoader{DB: db}
	st := catalog.NewSymbolTable()

	err = loader.LoadSchema(context.Background(), st, "public")
	require.NoError(t, err)
	assert.Equal(t, 2, st.Len())

	require.NoError(t, mock.ExpectationsWereMet())
}
