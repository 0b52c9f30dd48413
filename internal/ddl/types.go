package ddl

// ColumnDef describes a single column in a table definition produced or
// consumed by ddl. It intentionally uses simple, database-agnostic fields.
//
// Fields:
//   - Name: logical column name (unquoted; quoting/escaping happens at render time)
//   - SQLType: target SQL type, or one of the logical kinds below before a
//     backend has mapped it (e.g., TypeText, TypeReal)
//   - Nullable: whether NULL is allowed
//   - PrimaryKey: whether the column is part of the primary key (not used by all generators)
//   - Default: raw default expression (e.g., 'anon', CURRENT_TIMESTAMP)
type ColumnDef struct {
	Name       string
	SQLType    string
	Nullable   bool
	PrimaryKey bool
	Default    string
}

// TableDef holds the fully-qualified table name (FQN) and an ordered list of
// columns. The FQN is expected in dotted form (e.g., "schema.table") and will
// be quoted/escaped by renderers as needed.
type TableDef struct {
	FQN     string
	Columns []ColumnDef
}

// Logical column kinds. Flattened tables only ever hold text cells and
// float-coerced cells, so two kinds cover the whole surface. Each storage
// backend maps them to its own SQL types at render time.
const (
	TypeText = "text"
	TypeReal = "real"
)

// TableFor builds a TableDef for a flat output table. columns holds the
// destination column names in output order; real[i], when present and true,
// marks columns[i] as a float column (TypeReal), everything else is TypeText.
// All columns are nullable: empty and unparseable cells arrive as NULL.
func TableFor(table string, columns []string, real []bool) TableDef {
	defs := make([]ColumnDef, 0, len(columns))
	for i, name := range columns {
		kind := TypeText
		if i < len(real) && real[i] {
			kind = TypeReal
		}
		defs = append(defs, ColumnDef{
			Name:     name,
			SQLType:  kind,
			Nullable: true,
		})
	}
	return TableDef{FQN: table, Columns: defs}
}
