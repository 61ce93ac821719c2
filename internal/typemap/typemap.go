// Package typemap maps PostgreSQL column types to TypeScript type
// expressions.
package typemap

import (
	"strings"

	"pgtypegen/internal/models"
)

const (
	TypeNumber      = "number"
	TypeBoolean     = "boolean"
	TypeAny         = "any"
	TypeStringArray = "string[]"
	TypeDate        = "Date"
	TypeString      = "string"

	nullSuffix = " | null"
)

// Map returns the type expression for col. enums is keyed by
// models.QualifiedName of the catalog type; a USER-DEFINED column whose udt name is not in enums falls
// through to string like any other unrecognized type.
func Map(col models.ColumnRow, enums map[string]models.EnumDefinition) string {
	expr := baseType(col, enums)
	if col.Nullable {
		return expr + nullSuffix
	}
	return expr
}

func baseType(col models.ColumnRow, enums map[string]models.EnumDefinition) string {
	switch {
	case col.SQLType == "integer" || col.SQLType == "numeric" || col.SQLType == "decimal":
		return TypeNumber
	case col.SQLType == "boolean":
		return TypeBoolean
	case col.SQLType == "jsonb":
		return TypeAny
	case col.SQLType == "ARRAY" && col.UDTName == "_text":
		return TypeStringArray
	case strings.HasPrefix(col.SQLType, "timestamp") || col.SQLType == "date":
		return TypeDate
	case col.SQLType == "USER-DEFINED":
		if def, ok := enums[models.QualifiedName(col.UDTSchema, col.UDTName)]; ok {
			return def.DisplayName
		}
	}
	return TypeString
}
