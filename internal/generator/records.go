package generator

import (
	"fmt"
	"strings"

	"pgtypegen/internal/models"
	"pgtypegen/internal/naming"
	"pgtypegen/internal/typemap"
)

// BuildRecords groups columns by table. Columns must be ordered by table
// name and ordinal position.
func BuildRecords(cols []models.ColumnRow, enums map[string]models.EnumDefinition, singular naming.Singularizer) []models.RecordType {
	runs := GroupRuns(cols, func(c models.ColumnRow) string { return c.Table })

	records := make([]models.RecordType, 0, len(runs))
	for _, run := range runs {
		rec := models.RecordType{
			Table:  run.Key,
			Name:   naming.RecordName(run.Key, singular),
			Fields: make([]models.Field, 0, len(run.Items)),
		}
		for _, col := range run.Items {
			rec.Fields = append(rec.Fields, models.Field{
				Name:     col.Column,
				Type:     typemap.Map(col, enums),
				Nullable: col.Nullable,
			})
		}
		records = append(records, rec)
	}
	return records
}

// RenderRecord writes one record type block, without the trailing blank
// line.
func RenderRecord(rec models.RecordType) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("export type %s = {\n", rec.Name))
	for _, f := range rec.Fields {
		sb.WriteString(fmt.Sprintf("  %s: %s;\n", f.Name, f.Type))
	}
	sb.WriteString("};\n")
	return sb.String()
}
