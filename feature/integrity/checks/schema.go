package checks

import (
	"fmt"
	"reflect"
	"strings"

	"immich-album-sync/core/manifest"

	"gorm.io/gorm"
)

// SchemaReport strictly types the result of a manifest schema check.
type SchemaReport struct {
	Table          string   `json:"table"`
	Matched        bool     `json:"matched"`
	MissingColumns []string `json:"missing_columns"`
	Errors         []string `json:"errors"`
}

// CheckManifestSchema verifies the manifest table using the gorm model as the source of truth.
func CheckManifestSchema(db *gorm.DB) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	model := &manifest.Entry{}
	report := &SchemaReport{
		Table:          model.TableName(),
		Matched:        true,
		MissingColumns: []string{},
		Errors:         []string{},
	}

	migrator := db.Migrator()
	if !migrator.HasTable(model) {
		report.Matched = false
		report.Errors = append(report.Errors, fmt.Sprintf("table %s does not exist", report.Table))
		return report, nil
	}

	t := reflect.TypeOf(*model)
	for i := 0; i < t.NumField(); i++ {
		col := parseGormColumn(t.Field(i).Tag.Get("gorm"))
		if col == "" {
			continue
		}
		if !migrator.HasColumn(model, col) {
			report.MissingColumns = append(report.MissingColumns, col)
			report.Matched = false
		}
	}

	return report, nil
}

// parseGormColumn extracts column:<name> from a gorm tag.
func parseGormColumn(tag string) string {
	for _, p := range strings.Split(tag, ";") {
		if strings.HasPrefix(p, "column:") {
			return strings.TrimPrefix(p, "column:")
		}
	}
	return ""
}
