package checks

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"license-sync/core/database"

	"gorm.io/gorm"
)

// ErrSchemaMismatch is returned when a table lacks columns a flow writes to.
var ErrSchemaMismatch = errors.New("table schema does not match")

// SchemaReport strictly types the result of a schema check.
type SchemaReport struct {
	Table          string   `json:"table"`
	Matched        bool     `json:"matched"`
	MissingColumns []string `json:"missing_columns"`
	TypeMismatches []string `json:"type_mismatches"`
	Errors         []string `json:"errors"`
}

// CheckSchema verifies a table against a gorm model: every tagged column must exist and,
// when the tag carries a type, the live column type must contain it.
func CheckSchema(db *gorm.DB, model any) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	t := reflect.TypeOf(model)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	tabler, ok := reflect.New(t).Interface().(interface{ TableName() string })
	if !ok {
		return nil, fmt.Errorf("model %s does not implement TableName", t.Name())
	}

	report := &SchemaReport{
		Table:          tabler.TableName(),
		Matched:        true,
		MissingColumns: []string{},
		TypeMismatches: []string{},
		Errors:         []string{},
	}

	actualCols, err := database.GetTableColumns(db, report.Table)
	if err != nil {
		report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", report.Table, err))
		report.Matched = false
		return report, nil
	}
	if len(actualCols) == 0 {
		report.Errors = append(report.Errors, fmt.Sprintf("Table %s does not exist", report.Table))
		report.Matched = false
		return report, nil
	}

	actual := make(map[string]database.ColumnInfo, len(actualCols))
	for _, col := range actualCols {
		actual[col.Field] = col
	}

	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("gorm")
		colName := parseGormColumn(tag)
		if colName == "" {
			continue
		}

		col, exists := actual[colName]
		if !exists {
			report.MissingColumns = append(report.MissingColumns, colName)
			report.Matched = false
			continue
		}

		expType := strings.ToLower(parseGormType(tag))
		if expType != "" && !strings.Contains(col.Type, baseType(expType)) {
			report.TypeMismatches = append(report.TypeMismatches,
				fmt.Sprintf("%s: expected %s, got %s", colName, expType, col.Type))
			report.Matched = false
		}
	}

	return report, nil
}

// RequireColumns fails with ErrSchemaMismatch when table lacks any of columns.
func RequireColumns(db *gorm.DB, table string, columns ...string) error {
	missing, err := database.MissingColumns(db, table, columns...)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s is missing %s", ErrSchemaMismatch, table, strings.Join(missing, ", "))
	}
	return nil
}

// baseType drops the length so int matches int(11) and varchar(255) matches varchar(191).
func baseType(t string) string {
	if i := strings.IndexByte(t, '('); i > 0 {
		return t[:i]
	}
	return t
}

func parseGormColumn(tag string) string {
	for _, p := range strings.Split(tag, ";") {
		if strings.HasPrefix(p, "column:") {
			return strings.TrimPrefix(p, "column:")
		}
	}
	return ""
}

func parseGormType(tag string) string {
	for _, p := range strings.Split(tag, ";") {
		if strings.HasPrefix(p, "type:") {
			return strings.TrimPrefix(p, "type:")
		}
	}
	return ""
}
