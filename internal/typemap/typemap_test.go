package typemap

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pgtypegen/internal/models"
)

func TestMap(t *testing.T) {
	enums := map[string]models.EnumDefinition{
		"status_type": {TypeKey: "status_type", DisplayName: "StatusType"},
	}

	tests := []struct {
		name    string
		sqlType string
		udtName string
		want    string
	}{
		{"integer", "integer", "int4", "number"},
		{"numeric", "numeric", "numeric", "number"},
		{"decimal", "decimal", "numeric", "number"},
		{"boolean", "boolean", "bool", "boolean"},
		{"jsonb", "jsonb", "jsonb", "any"},
		{"text array", "ARRAY", "_text", "string[]"},
		{"int array falls back", "ARRAY", "_int4", "string"},
		{"timestamptz", "timestamp with time zone", "timestamptz", "Date"},
		{"timestamp", "timestamp without time zone", "timestamp", "Date"},
		{"date", "date", "date", "Date"},
		{"known enum", "USER-DEFINED", "status_type", "StatusType"},
		{"unknown user type", "USER-DEFINED", "citext", "string"},
		{"text", "text", "text", "string"},
		{"bigint is not integer", "bigint", "int8", "string"},
		{"json is not jsonb", "json", "json", "string"},
		{"uuid", "uuid", "uuid", "string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col := models.ColumnRow{SQLType: tt.sqlType, UDTName: tt.udtName}
			assert.Equal(t, tt.want, Map(col, enums))

			col.Nullable = true
			assert.Equal(t, tt.want+" | null", Map(col, enums))
		})
	}
}

func TestMap_NilEnums(t *testing.T) {
	col := models.ColumnRow{SQLType: "USER-DEFINED", UDTName: "status_type"}
	assert.Equal(t, "string", Map(col, nil))
}

func TestMap_QualifiedEnumLookup(t *testing.T) {
	enums := map[string]models.EnumDefinition{
		models.QualifiedName("public", "status"): {Schema: "public", TypeKey: "status", DisplayName: "Status"},
	}

	col := models.ColumnRow{SQLType: "USER-DEFINED", UDTSchema: "public", UDTName: "status"}
	assert.Equal(t, "Status", Map(col, enums))

	col.UDTSchema = "audit"
	assert.Equal(t, "string", Map(col, enums))
}
