package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"pgtypegen/internal/models"
)

// Querier is satisfied by *sql.DB, *sql.Conn and *sql.Tx.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// CatalogError wraps any failure while reading the catalog.
type CatalogError struct {
	Op  string
	Err error
}

func (e *CatalogError) Error() string {
	return fmt.Sprintf("catalog %s: %v", e.Op, e.Err)
}

func (e *CatalogError) Unwrap() error { return e.Err }

type CatalogRepository struct {
	db       Querier
	schema   string
	excluded []string
}

// NewCatalogRepository reads tables from schema, skipping the excluded table
// names. An empty schema means "public".
func NewCatalogRepository(db Querier, schema string, excluded []string) *CatalogRepository {
	if schema == "" {
		schema = "public"
	}
	return &CatalogRepository{db: db, schema: schema, excluded: excluded}
}

// Read issues both catalog queries and returns their combined result.
func (r *CatalogRepository) Read(ctx context.Context) (models.Catalog, error) {
	var cat models.Catalog

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		enums, err := r.GetEnums(gctx)
		cat.Enums = enums
		return err
	})
	g.Go(func() error {
		cols, err := r.GetColumns(gctx)
		cat.Columns = cols
		return err
	})
	if err := g.Wait(); err != nil {
		return models.Catalog{}, err
	}
	return cat, nil
}

const enumQuery = `
	SELECT n.nspname, t.typname, e.enumlabel
	FROM pg_type t
	JOIN pg_namespace n ON n.oid = t.typnamespace
	JOIN pg_enum e ON e.enumtypid = t.oid
	ORDER BY t.typname, n.nspname, e.enumsortorder
`

// GetEnums returns every enum member ordered by type name, then schema, then
// declaration order. Members of same-named types from different schemas are
// never interleaved.
func (r *CatalogRepository) GetEnums(ctx context.Context) ([]models.EnumRow, error) {
	rows, err := r.db.QueryContext(ctx, enumQuery)
	if err != nil {
		return nil, &CatalogError{Op: "query enums", Err: err}
	}
	defer func() { _ = rows.Close() }()

	var enums []models.EnumRow
	for rows.Next() {
		var row models.EnumRow
		if err := rows.Scan(&row.Schema, &row.TypeKey, &row.RawValue); err != nil {
			return nil, &CatalogError{Op: "scan enum", Err: err}
		}
		enums = append(enums, row)
	}

	if err := rows.Err(); err != nil {
		return nil, &CatalogError{Op: "iterate enums", Err: err}
	}

	return enums, nil
}

// GetColumns returns the columns of every base table in the schema ordered by
// table name and ordinal position.
func (r *CatalogRepository) GetColumns(ctx context.Context) ([]models.ColumnRow, error) {
	query, args := r.columnQuery()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &CatalogError{Op: "query columns", Err: err}
	}
	defer func() { _ = rows.Close() }()

	var columns []models.ColumnRow
	for rows.Next() {
		var col models.ColumnRow
		var nullable string
		if err := rows.Scan(&col.Table, &col.Column, &nullable, &col.SQLType, &col.UDTSchema, &col.UDTName, &col.OrdinalPosition); err != nil {
			return nil, &CatalogError{Op: "scan column", Err: err}
		}
		col.Nullable = nullable == "YES"
		columns = append(columns, col)
	}

	if err := rows.Err(); err != nil {
		return nil, &CatalogError{Op: "iterate columns", Err: err}
	}

	return columns, nil
}

func (r *CatalogRepository) columnQuery() (string, []any) {
	args := []any{r.schema}

	exclusion := ""
	if len(r.excluded) > 0 {
		placeholders := make([]string, 0, len(r.excluded))
		for _, name := range r.excluded {
			args = append(args, name)
			placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
		}
		exclusion = fmt.Sprintf("\n\t\tAND c.table_name NOT IN (%s)", strings.Join(placeholders, ", "))
	}

	query := fmt.Sprintf(`
		SELECT c.table_name, c.column_name, c.is_nullable, c.data_type, c.udt_schema, c.udt_name, c.ordinal_position
		FROM information_schema.columns c
		JOIN information_schema.tables t
			ON t.table_schema = c.table_schema
			AND t.table_name = c.table_name
		WHERE c.table_schema = $1
		AND t.table_type = 'BASE TABLE'%s
		ORDER BY c.table_name, c.ordinal_position
	`, exclusion)

	return query, args
}
