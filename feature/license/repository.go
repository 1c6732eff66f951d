package license

import (
	"context"

	"license-sync/core/remote"
	"license-sync/feature/license/models"

	"gorm.io/gorm"
)

// PageSize is the fixed page size of QueryDetails.
const PageSize = 100

const insertBatchSize = 500

// DetailsQuery filters stored license rows.
type DetailsQuery struct {
	DateFrom     string
	DateTo       string
	CustomerName string
	// Page is 1-based.
	Page int
}

// Repository reads and writes the license details table.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a repository on db.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// BackfillRows returns the name and reference of every stored row.
func (r *Repository) BackfillRows(ctx context.Context) ([]BackfillRow, error) {
	var scanned []struct {
		CustomerName *string `gorm:"column:customer_name"`
		CustomerRef  *string `gorm:"column:customer_ref"`
	}
	err := r.db.WithContext(ctx).
		Model(&models.LicenseDetail{}).
		Select("customer_name", "customer_ref").
		Scan(&scanned).Error
	if err != nil {
		return nil, err
	}

	rows := make([]BackfillRow, len(scanned))
	for i, s := range scanned {
		if s.CustomerName != nil {
			rows[i].CustomerName = *s.CustomerName
		}
		if s.CustomerRef != nil {
			rows[i].CustomerRef = *s.CustomerRef
		}
	}
	return rows, nil
}

// UpdateURLsByName sets the URL columns of every row whose customer_name equals name.
func (r *Repository) UpdateURLsByName(ctx context.Context, name string, urls models.CustomerURLs) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.LicenseDetail{}).
		Where("customer_name = ?", name).
		Updates(map[string]any{
			"customer_url":  urls.URL,
			"customer_url2": urls.URL2,
			"customer_url3": urls.URL3,
		})
	return res.RowsAffected, res.Error
}

// ListCustomers returns the distinct non-null customer names in order.
func (r *Repository) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	customers := []models.Customer{}
	err := r.db.WithContext(ctx).
		Model(&models.LicenseDetail{}).
		Distinct("customer_name").
		Where("customer_name IS NOT NULL").
		Order("customer_name").
		Scan(&customers).Error
	if err != nil {
		return nil, storageErr("list customers", err)
	}
	return customers, nil
}

// QueryDetails returns one page of rows. With both dates, rows whose license period
// overlaps [DateFrom, DateTo] are returned; with one date, the open-ended overlap.
func (r *Repository) QueryDetails(ctx context.Context, q DetailsQuery) ([]models.LicenseDetail, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}

	tx := r.db.WithContext(ctx).Model(&models.LicenseDetail{})
	switch {
	case q.DateFrom != "" && q.DateTo != "":
		tx = tx.Where("license_start <= ? AND license_end >= ?", q.DateTo, q.DateFrom)
	case q.DateFrom != "":
		tx = tx.Where("license_end >= ?", q.DateFrom)
	case q.DateTo != "":
		tx = tx.Where("license_start <= ?", q.DateTo)
	}
	if q.CustomerName != "" {
		tx = tx.Where("customer_name = ?", q.CustomerName)
	}

	rows := []models.LicenseDetail{}
	err := tx.Order("id").Limit(PageSize).Offset((page - 1) * PageSize).Find(&rows).Error
	if err != nil {
		return nil, storageErr("query details", err)
	}
	return rows, nil
}

// ReplaceWindow stores rows as the result of fetching window, removing rows from
// any earlier fetch of the same window in the same transaction.
// It returns the number of rows removed.
func (r *Repository) ReplaceWindow(ctx context.Context, window remote.DateRange, rows []models.LicenseDetail) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("fetch_date_from = ? AND fetch_date_to = ?", window.From, window.To).
			Delete(&models.LicenseDetail{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected

		if len(rows) == 0 {
			return nil
		}
		return tx.CreateInBatches(rows, insertBatchSize).Error
	})
	if err != nil {
		return 0, storageErr("replace window", err)
	}
	return deleted, nil
}

// Migrate creates or updates the license details table.
func (r *Repository) Migrate() error {
	return storageErr("migrate", r.db.AutoMigrate(&models.LicenseDetail{}))
}
