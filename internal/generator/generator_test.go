package generator

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pgtypegen/internal/models"
	"pgtypegen/internal/naming"
	"pgtypegen/internal/testutil"
)

func invoiceCatalog() models.Catalog {
	return models.Catalog{
		Enums: []models.EnumRow{
			{TypeKey: "status_type", RawValue: "active"},
			{TypeKey: "status_type", RawValue: "done"},
		},
		Columns: []models.ColumnRow{
			{Table: "invoices", Column: "id", SQLType: "integer", UDTName: "int4", OrdinalPosition: 1},
			{Table: "invoices", Column: "status", SQLType: "USER-DEFINED", UDTName: "status_type", OrdinalPosition: 2},
		},
	}
}

func TestGenerate_InvoiceScenario(t *testing.T) {
	g := New(testutil.NewTestLogger(t), nil)

	doc := g.Generate(invoiceCatalog())

	want := `export enum StatusType {
  active = 'active',
  done = 'done',
}

export type Invoice = {
  id: number;
  status: StatusType;
};

`
	assert.Equal(t, want, doc.Text)
	require.Len(t, doc.Enums, 1)
	assert.Len(t, doc.Enums[0].Members, 2)
	require.Len(t, doc.Records, 1)
	assert.Equal(t, "Invoice", doc.Records[0].Name)
}

func TestGenerate_Idempotent(t *testing.T) {
	g := New(nil, nil)
	first := g.Generate(invoiceCatalog())
	second := g.Generate(invoiceCatalog())
	assert.Equal(t, first.Text, second.Text)
}

func TestGenerate_Empty(t *testing.T) {
	doc := New(nil, nil).Generate(models.Catalog{})
	assert.Empty(t, doc.Text)
	assert.Empty(t, doc.Enums)
	assert.Empty(t, doc.Records)
}

func TestBuildEnums_Grouping(t *testing.T) {
	rows := []models.EnumRow{
		{TypeKey: "color", RawValue: "red"},
		{TypeKey: "color", RawValue: "green"},
		{TypeKey: "color", RawValue: "blue"},
		{TypeKey: "mood", RawValue: "happy"},
		{TypeKey: "size", RawValue: "s"},
		{TypeKey: "size", RawValue: "m"},
	}

	defs := BuildEnums(rows)

	require.Len(t, defs, 3)
	assert.Equal(t, "Color", defs[0].DisplayName)
	assert.Equal(t, []models.EnumMember{
		{Key: "red", RawValue: "red"},
		{Key: "green", RawValue: "green"},
		{Key: "blue", RawValue: "blue"},
	}, defs[0].Members)
	assert.Len(t, defs[1].Members, 1)
	assert.Len(t, defs[2].Members, 2)

	total := 0
	for _, d := range defs {
		for _, m := range d.Members {
			assert.NotEmpty(t, m.RawValue)
			total++
		}
	}
	assert.Equal(t, len(rows), total)
}

func TestMemberKey(t *testing.T) {
	assert.Equal(t, "v1_2", MemberKey("v1.2"))
	assert.Equal(t, "in_progress", MemberKey("in-progress"))
	assert.Equal(t, "a_b_c", MemberKey("a.b-c"))
	assert.Equal(t, "plain", MemberKey("plain"))
}

func TestRenderEnum_SanitizedKeysKeepRawValue(t *testing.T) {
	def := BuildEnums([]models.EnumRow{
		{TypeKey: "api_version", RawValue: "v1.0"},
		{TypeKey: "api_version", RawValue: "v2-beta"},
	})[0]

	out := RenderEnum(def)
	assert.Contains(t, out, "export enum ApiVersion {\n")
	assert.Contains(t, out, "  v1_0 = 'v1.0',\n")
	assert.Contains(t, out, "  v2_beta = 'v2-beta',\n")
}

func TestDuplicateKeys(t *testing.T) {
	def := BuildEnums([]models.EnumRow{
		{TypeKey: "k", RawValue: "a.b"},
		{TypeKey: "k", RawValue: "a-b"},
		{TypeKey: "k", RawValue: "a_b"},
		{TypeKey: "k", RawValue: "c"},
	})[0]

	assert.Equal(t, []string{"a_b"}, DuplicateKeys(def))

	// colliding members are all still rendered
	assert.Equal(t, 3, strings.Count(RenderEnum(def), "a_b = "))
}

func TestBuildRecords_Ordering(t *testing.T) {
	cols := []models.ColumnRow{
		{Table: "accounts", Column: "id", SQLType: "integer", OrdinalPosition: 1},
		{Table: "accounts", Column: "tags", SQLType: "ARRAY", UDTName: "_text", OrdinalPosition: 2},
		{Table: "accounts", Column: "closed_at", SQLType: "timestamp with time zone", Nullable: true, OrdinalPosition: 3},
		{Table: "categories", Column: "id", SQLType: "integer", OrdinalPosition: 1},
		{Table: "categories", Column: "meta", SQLType: "jsonb", Nullable: true, OrdinalPosition: 2},
	}

	recs := BuildRecords(cols, nil, naming.Singularize)

	require.Len(t, recs, 2)
	assert.Equal(t, "Account", recs[0].Name)
	assert.Equal(t, "Category", recs[1].Name)
	assert.Equal(t, []models.Field{
		{Name: "id", Type: "number"},
		{Name: "tags", Type: "string[]"},
		{Name: "closed_at", Type: "Date | null", Nullable: true},
	}, recs[0].Fields)

	out := RenderRecord(recs[1])
	assert.Equal(t, "export type Category = {\n  id: number;\n  meta: any | null;\n};\n", out)
}

func TestGenerate_EnumsBeforeRecords(t *testing.T) {
	cat := invoiceCatalog()
	cat.Columns = append([]models.ColumnRow{
		{Table: "audits", Column: "id", SQLType: "integer", OrdinalPosition: 1},
	}, cat.Columns...)

	text := New(nil, nil).Generate(cat).Text

	enumAt := strings.Index(text, "export enum StatusType")
	auditAt := strings.Index(text, "export type Audit ")
	invoiceAt := strings.Index(text, "export type Invoice ")
	assert.True(t, enumAt >= 0 && enumAt < auditAt && auditAt < invoiceAt,
		fmt.Sprintf("unexpected block order:\n%s", text))
}

func TestGenerate_InflectSingularizer(t *testing.T) {
	s, ok := naming.SingularizerFor(naming.ModeInflect)
	require.True(t, ok)

	doc := New(nil, s).Generate(models.Catalog{Columns: []models.ColumnRow{
		{Table: "addresses", Column: "id", SQLType: "integer", OrdinalPosition: 1},
	}})
	assert.Equal(t, "Address", doc.Records[0].Name)
}

func TestGenerate_SameEnumNameInTwoSchemas(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	doc := New(logger, nil).Generate(models.Catalog{
		Enums: []models.EnumRow{
			{Schema: "audit", TypeKey: "status", RawValue: "a"},
			{Schema: "audit", TypeKey: "status", RawValue: "b"},
			{Schema: "public", TypeKey: "status", RawValue: "x"},
			{Schema: "public", TypeKey: "status", RawValue: "y"},
		},
		Columns: []models.ColumnRow{
			{Table: "events", Column: "status", SQLType: "USER-DEFINED", UDTSchema: "audit", UDTName: "status", OrdinalPosition: 1},
			{Table: "events", Column: "kind", SQLType: "USER-DEFINED", UDTSchema: "billing", UDTName: "status", OrdinalPosition: 2},
		},
	})

	require.Len(t, doc.Enums, 2)
	assert.Equal(t, "export enum Status {\n  a = 'a',\n  b = 'b',\n}\n", RenderEnum(doc.Enums[0]))
	assert.Equal(t, "export enum Status {\n  x = 'x',\n  y = 'y',\n}\n", RenderEnum(doc.Enums[1]))
	assert.Equal(t, []models.Field{
		{Name: "status", Type: "Status"},
		{Name: "kind", Type: "string"},
	}, doc.Records[0].Fields)

	assert.Contains(t, logs.String(), "enum type names are defined in more than one schema")
	assert.Contains(t, logs.String(), "types=[status]")
}

func TestSharedNames(t *testing.T) {
	defs := []models.EnumDefinition{
		{Schema: "a", TypeKey: "status"},
		{Schema: "b", TypeKey: "status"},
		{Schema: "c", TypeKey: "status"},
		{Schema: "a", TypeKey: "mood"},
	}
	assert.Equal(t, []string{"status"}, SharedNames(defs))
	assert.Empty(t, SharedNames(defs[3:]))
}
