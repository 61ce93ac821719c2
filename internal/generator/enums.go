package generator

import (
	"fmt"
	"strings"

	"pgtypegen/internal/models"
	"pgtypegen/internal/naming"
)

var memberKeyReplacer = strings.NewReplacer(".", "_", "-", "_")

// MemberKey turns a raw enum label into a usable member name.
func MemberKey(raw string) string {
	return memberKeyReplacer.Replace(raw)
}

type enumKey struct {
	schema  string
	typeKey string
}

// BuildEnums groups rows by schema and type key. The rows must already be
// ordered so that each type's members are contiguous and in declaration
// order.
func BuildEnums(rows []models.EnumRow) []models.EnumDefinition {
	runs := GroupRuns(rows, func(r models.EnumRow) enumKey { return enumKey{r.Schema, r.TypeKey} })

	defs := make([]models.EnumDefinition, 0, len(runs))
	for _, run := range runs {
		def := models.EnumDefinition{
			Schema:      run.Key.schema,
			TypeKey:     run.Key.typeKey,
			DisplayName: naming.ToIdentifier(run.Key.typeKey),
			Members:     make([]models.EnumMember, 0, len(run.Items)),
		}
		for _, row := range run.Items {
			def.Members = append(def.Members, models.EnumMember{
				Key:      MemberKey(row.RawValue),
				RawValue: row.RawValue,
			})
		}
		defs = append(defs, def)
	}
	return defs
}

// DuplicateKeys reports member keys that appear more than once in def after
// sanitization, in order of their second appearance.
func DuplicateKeys(def models.EnumDefinition) []string {
	seen := make(map[string]int, len(def.Members))
	var dups []string
	for _, m := range def.Members {
		seen[m.Key]++
		if seen[m.Key] == 2 {
			dups = append(dups, m.Key)
		}
	}
	return dups
}

// SharedNames reports type keys defined in more than one schema, in order of
// their second appearance.
func SharedNames(defs []models.EnumDefinition) []string {
	seen := make(map[string]int, len(defs))
	var shared []string
	for _, d := range defs {
		seen[d.TypeKey]++
		if seen[d.TypeKey] == 2 {
			shared = append(shared, d.TypeKey)
		}
	}
	return shared
}

// RenderEnum writes one enum declaration block, without the trailing blank
// line.
func RenderEnum(def models.EnumDefinition) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("export enum %s {\n", def.DisplayName))
	for _, m := range def.Members {
		sb.WriteString(fmt.Sprintf("  %s = '%s',\n", m.Key, escapeLiteral(m.RawValue)))
	}
	sb.WriteString("}\n")
	return sb.String()
}

func escapeLiteral(s string) string {
	return strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(s)
}

// EnumIndex keys definitions by their schema-qualified type name.
func EnumIndex(defs []models.EnumDefinition) map[string]models.EnumDefinition {
	idx := make(map[string]models.EnumDefinition, len(defs))
	for _, d := range defs {
		idx[models.QualifiedName(d.Schema, d.TypeKey)] = d
	}
	return idx
}
