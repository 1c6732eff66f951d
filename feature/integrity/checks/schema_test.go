package checks

import (
	"errors"
	"regexp"
	"testing"

	"license-sync/core/database"
	"license-sync/feature/license/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func showColumns() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"})
}

func TestCheckSchema_NilDB(t *testing.T) {
	report, err := CheckSchema(nil, models.LicenseDetail{})
	assert.Error(t, err)
	assert.Nil(t, report)
}

func TestCheckSchema_NoTableName(t *testing.T) {
	db, _ := setupMockDB(t)
	_, err := CheckSchema(db, struct{ A int }{})
	assert.Error(t, err)
}

func TestCheckSchema_SQLiteMigrated(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.LicenseDetail{}))

	report, err := CheckSchema(db, &models.LicenseDetail{})
	require.NoError(t, err)
	assert.True(t, report.Matched, "%+v", report)
	assert.Equal(t, "API_REPORT_LICENSE_DETAILS", report.Table)
	assert.Empty(t, report.MissingColumns)
}

func TestCheckSchema_MissingTable(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)

	report, err := CheckSchema(db, models.LicenseDetail{})
	require.NoError(t, err)
	assert.False(t, report.Matched)
	assert.NotEmpty(t, report.Errors)
}

func TestCheckSchema_LegacyTableWithoutURLs(t *testing.T) {
	db, mock := setupMockDB(t)

	rows := showColumns().
		AddRow("id", "int(11)", "NO", "PRI", nil, "auto_increment").
		AddRow("customer_name", "varchar(255)", "YES", "", nil, "").
		AddRow("customer_ref", "int(11)", "YES", "", nil, "").
		AddRow("license_start", "varchar(32)", "YES", "", nil, "").
		AddRow("license_end", "varchar(32)", "YES", "", nil, "")
	mock.ExpectQuery(regexp.QuoteMeta("SHOW COLUMNS FROM `API_REPORT_LICENSE_DETAILS`")).WillReturnRows(rows)

	report, err := CheckSchema(db, models.LicenseDetail{})
	require.NoError(t, err)
	assert.False(t, report.Matched)
	assert.Contains(t, report.MissingColumns, "customer_url")
	assert.Contains(t, report.MissingColumns, "customer_url3")
	assert.Contains(t, report.TypeMismatches, "customer_ref: expected varchar(255), got int(11)")
}

func TestCheckSchema_InspectError(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery("SHOW COLUMNS").WillReturnError(errors.New("access denied"))

	report, err := CheckSchema(db, models.LicenseDetail{})
	require.NoError(t, err)
	assert.False(t, report.Matched)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "access denied")
}

func TestRequireColumns(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery("SHOW COLUMNS").WillReturnRows(showColumns().
		AddRow("customer_name", "varchar(255)", "YES", "", nil, "").
		AddRow("customer_url", "varchar(1024)", "YES", "", nil, ""))

	err := RequireColumns(db, "API_REPORT_LICENSE_DETAILS", "customer_url", "customer_url2", "customer_url3")
	assert.ErrorIs(t, err, ErrSchemaMismatch)
	assert.Contains(t, err.Error(), "customer_url2, customer_url3")

	mock.ExpectQuery("SHOW COLUMNS").WillReturnRows(showColumns().
		AddRow("customer_url", "varchar(1024)", "YES", "", nil, ""))
	assert.NoError(t, RequireColumns(db, "API_REPORT_LICENSE_DETAILS", "customer_url"))
}

func TestParseGormTags(t *testing.T) {
	assert.Equal(t, "id", parseGormColumn("column:id;primaryKey"))
	assert.Equal(t, "customer_url", parseGormColumn("primaryKey;column:customer_url;type:varchar(1024)"))
	assert.Equal(t, "int(11)", parseGormType("column:id;type:int(11)"))
	assert.Equal(t, "", parseGormType("column:id"))
	assert.Equal(t, "varchar", baseType("varchar(255)"))
	assert.Equal(t, "text", baseType("text"))
}
