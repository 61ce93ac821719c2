// Package generator turns catalog rows into TypeScript declarations.
package generator

import (
	"log/slog"
	"strings"

	"pgtypegen/internal/models"
	"pgtypegen/internal/naming"
)

// Document is the result of one generation pass.
type Document struct {
	Enums   []models.EnumDefinition
	Records []models.RecordType
	Text    string
}

type Generator struct {
	logger   *slog.Logger
	singular naming.Singularizer
}

// New creates a Generator. If logger is nil, a discard logger is used; a
// nil singularizer selects the legacy rules.
func New(logger *slog.Logger, singular naming.Singularizer) *Generator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if singular == nil {
		singular = naming.Singularize
	}
	return &Generator{logger: logger, singular: singular}
}

// Generate renders all enum blocks followed by all record blocks, each
// followed by a blank line. The output depends only on cat.
func (g *Generator) Generate(cat models.Catalog) Document {
	enums := BuildEnums(cat.Enums)
	for _, def := range enums {
		if dups := DuplicateKeys(def); len(dups) > 0 {
			g.logger.Warn("enum member keys collide after sanitization",
				slog.String("enum", models.QualifiedName(def.Schema, def.TypeKey)),
				slog.Any("keys", dups))
		}
	}
	if shared := SharedNames(enums); len(shared) > 0 {
		g.logger.Warn("enum type names are defined in more than one schema",
			slog.Any("types", shared))
	}

	records := BuildRecords(cat.Columns, EnumIndex(enums), g.singular)

	var sb strings.Builder
	for _, def := range enums {
		sb.WriteString(RenderEnum(def))
		sb.WriteString("\n")
	}
	for _, rec := range records {
		sb.WriteString(RenderRecord(rec))
		sb.WriteString("\n")
	}

	g.logger.Debug("generated declarations",
		slog.Int("enums", len(enums)),
		slog.Int("records", len(records)))

	return Document{Enums: enums, Records: records, Text: sb.String()}
}
