package models

// EnumRow is one member of a catalog-defined enumerated type.
type EnumRow struct {
	Schema   string
	TypeKey  string
	RawValue string
}

// ColumnRow describes one column of an ordinary table.
type ColumnRow struct {
	Table           string
	Column          string
	Nullable        bool
	SQLType         string
	UDTSchema       string
	UDTName         string
	OrdinalPosition int
}

type EnumMember struct {
	Key      string
	RawValue string
}

// EnumDefinition is the grouped form of all rows sharing a Schema and
// TypeKey.
type EnumDefinition struct {
	Schema      string
	TypeKey     string
	DisplayName string
	Members     []EnumMember
}

type Field struct {
	Name     string
	Type     string
	Nullable bool
}

// RecordType is the row shape of a single table.
type RecordType struct {
	Table  string
	Name   string
	Fields []Field
}

// Catalog holds both row sequences read from the database.
type Catalog struct {
	Enums   []EnumRow
	Columns []ColumnRow
}

// QualifiedName joins a namespace and a type name the way the catalog
// spells them. An empty schema yields the bare name.
func QualifiedName(schema, name string) string {
	if schema == "" {
		return name
	}
	return schema + "." + name
}
