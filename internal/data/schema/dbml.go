// Package schema renders the live database schema as DBML.
package schema

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"gorm.io/gorm"
	gormschema "gorm.io/gorm/schema"
)

// Table is one table as reported by the database.
type Table struct {
	Name    string
	Columns []Column
}

// Column describes one column with the constraints DBML can express.
type Column struct {
	Name       string
	Type       string
	PrimaryKey bool
	Unique     bool
	NotNull    bool
	Default    string
}

// Ref is a many-to-one reference from From to To, both written as table.column.
type Ref struct {
	From string
	To   string
}

// Document is the full schema rendered by WriteDBML.
type Document struct {
	Tables []Table
	Refs   []Ref
}

// Inspect reads the columns of every model's table through the migrator and
// the references declared on the models.
func Inspect(ctx context.Context, db *gorm.DB, models []any) (*Document, error) {
	if db == nil {
		return nil, eris.New("gorm DB is required")
	}

	migrator := db.WithContext(ctx).Migrator()
	doc := &Document{}
	seen := make(map[Ref]struct{})

	for _, model := range models {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return nil, eris.Wrapf(err, "parsing model %T", model)
		}
		parsed := stmt.Schema

		if !migrator.HasTable(parsed.Table) {
			return nil, eris.Errorf("table %s does not exist; run migrate first", parsed.Table)
		}

		columnTypes, err := migrator.ColumnTypes(model)
		if err != nil {
			return nil, eris.Wrapf(err, "reading columns of %s", parsed.Table)
		}

		table := Table{Name: parsed.Table, Columns: make([]Column, 0, len(columnTypes))}
		for _, columnType := range columnTypes {
			table.Columns = append(table.Columns, toColumn(columnType, parsed))
		}
		doc.Tables = append(doc.Tables, table)

		for _, ref := range references(parsed) {
			if _, ok := seen[ref]; ok {
				continue
			}
			seen[ref] = struct{}{}
			doc.Refs = append(doc.Refs, ref)
		}
	}

	sort.Slice(doc.Refs, func(i, j int) bool {
		if doc.Refs[i].From == doc.Refs[j].From {
			return doc.Refs[i].To < doc.Refs[j].To
		}
		return doc.Refs[i].From < doc.Refs[j].From
	})

	return doc, nil
}

// Export inspects the schema and writes it to w as DBML.
func Export(ctx context.Context, db *gorm.DB, models []any, w io.Writer) error {
	doc, err := Inspect(ctx, db, models)
	if err != nil {
		return err
	}
	return doc.WriteDBML(w)
}

func (d *Document) WriteDBML(w io.Writer) error {
	var b strings.Builder

	for i, table := range d.Tables {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "Table %s {\n", table.Name)
		for _, column := range table.Columns {
			fmt.Fprintf(&b, "  %s %s%s\n", column.Name, column.Type, settings(column))
		}
		b.WriteString("}\n")
	}

	if len(d.Refs) > 0 {
		b.WriteString("\n")
	}
	for _, ref := range d.Refs {
		fmt.Fprintf(&b, "Ref: %s > %s\n", ref.From, ref.To)
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return eris.Wrap(err, "writing dbml")
	}
	return nil
}

func toColumn(columnType gorm.ColumnType, parsed *gormschema.Schema) Column {
	column := Column{
		Name: columnType.Name(),
		Type: strings.ToLower(columnType.DatabaseTypeName()),
	}
	if column.Type == "" {
		column.Type = "text"
	}

	if pk, ok := columnType.PrimaryKey(); ok {
		column.PrimaryKey = pk
	}
	if unique, ok := columnType.Unique(); ok {
		column.Unique = unique
	}
	if nullable, ok := columnType.Nullable(); ok {
		column.NotNull = !nullable
	}
	if value, ok := columnType.DefaultValue(); ok {
		column.Default = value
	}

	// Some drivers do not report keys; fall back to the model definition.
	if field := parsed.LookUpField(column.Name); field != nil {
		column.PrimaryKey = column.PrimaryKey || field.PrimaryKey
		column.Unique = column.Unique || field.Unique || hasUniqueIndex(parsed, field.DBName)
		column.NotNull = column.NotNull || field.NotNull || field.PrimaryKey
		if column.Default == "" && field.HasDefaultValue && field.DefaultValue != "" {
			column.Default = field.DefaultValue
		}
	}

	return column
}

func hasUniqueIndex(parsed *gormschema.Schema, column string) bool {
	for _, index := range parsed.ParseIndexes() {
		if index.Class != "UNIQUE" || len(index.Fields) != 1 {
			continue
		}
		if index.Fields[0].DBName == column {
			return true
		}
	}
	return false
}

func settings(column Column) string {
	var parts []string
	if column.PrimaryKey {
		parts = append(parts, "pk")
	} else if column.Unique {
		parts = append(parts, "unique")
	}
	if column.NotNull && !column.PrimaryKey {
		parts = append(parts, "not null")
	}
	if column.Default != "" {
		parts = append(parts, "default: '"+strings.Trim(column.Default, "'\"")+"'")
	}

	if len(parts) == 0 {
		return ""
	}
	return " [" + strings.Join(parts, ", ") + "]"
}

// references turns belongs-to and has-one/has-many relations into foreign key refs.
func references(parsed *gormschema.Schema) []Ref {
	var refs []Ref
	for _, rel := range parsed.Relationships.Relations {
		switch rel.Type {
		case gormschema.BelongsTo, gormschema.HasOne, gormschema.HasMany:
		default:
			continue
		}

		for _, reference := range rel.References {
			if reference.ForeignKey == nil || reference.PrimaryKey == nil {
				continue
			}
			refs = append(refs, Ref{
				From: reference.ForeignKey.Schema.Table + "." + reference.ForeignKey.DBName,
				To:   reference.PrimaryKey.Schema.Table + "." + reference.PrimaryKey.DBName,
			})
		}
	}
	return refs
}
