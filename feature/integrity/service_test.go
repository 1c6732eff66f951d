package integrity

import (
	"context"
	"testing"

	"license-sync/core/storage/mocks"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// setupMockDB creates a mock GORM DB for testing.
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

func TestService_CheckSchema(t *testing.T) {
	db, sqlMock := setupMockDB(t)
	sqlMock.ExpectQuery("SHOW COLUMNS FROM `API_REPORT_LICENSE_DETAILS`").
		WillReturnRows(sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
			AddRow("id", "int(11)", "NO", "PRI", nil, ""))

	svc := NewService(nil, "license-reports", "reports", zap.NewNop(), db)
	report, err := svc.CheckSchema()
	require.NoError(t, err)
	assert.False(t, report.Matched)
	assert.Contains(t, report.MissingColumns, "customer_name")
}

func TestService_CheckArchive(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "license-reports").Return(false, nil)

	svc := NewService(client, "license-reports", "reports", nil, nil)
	report, err := svc.CheckArchive(context.Background())
	require.NoError(t, err)
	assert.False(t, report.Exists)
}

func TestService_CheckArchiveNotConfigured(t *testing.T) {
	svc := NewService(nil, "license-reports", "reports", nil, nil)
	_, err := svc.CheckArchive(context.Background())
	assert.Error(t, err)
}
