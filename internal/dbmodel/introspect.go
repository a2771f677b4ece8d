// Package dbmodel reverse-engineers a model shape from a live database
// table for the case where the model class does not exist in source yet.
// SQLite and PostgreSQL are supported through database/sql.
package dbmodel

import (
	"database/sql"
	"fmt"
	"strings"

	// database/sql drivers for the supported providers
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/weftgen/weft/internal/scaffold"
	wstrings "github.com/weftgen/weft/internal/util/strings"
)

// Supported driver names.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// Open connects to the database named by url and reports which driver it
// picked. postgres:// and postgresql:// URLs go to lib/pq; anything else is
// treated as a SQLite file path or DSN.
func Open(url string) (*sql.DB, string, error) {
	driver := DriverSQLite
	if strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://") {
		driver = DriverPostgres
	}

	db, err := sql.Open(driver, url)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open database %s: %w", url, err)
	}
	return db, driver, nil
}

// column is one introspected table column.
type column struct {
	name       string
	sqlType    string
	primaryKey bool
}

// Introspect reads the named table's columns and synthesizes a model shape
// as if a class with those members existed in source. The type name is the
// singular PascalCase form of the table name; the namespace is the caller's
// choice (usually <project>.Models).
func Introspect(db *sql.DB, driver, table, namespace string) (*scaffold.ModelShapeDescriptor, error) {
	var (
		cols []column
		err  error
	)

	switch driver {
	case DriverSQLite:
		cols, err = sqliteColumns(db, table)
	case DriverPostgres:
		cols, err = postgresColumns(db, table)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("table %q has no columns or does not exist", table)
	}

	typeName := wstrings.ToPascalCase(singular(table))
	desc := &scaffold.ModelShapeDescriptor{
		TypeName:  typeName,
		Namespace: namespace,
	}
	if namespace == "" {
		desc.FullName = typeName
	} else {
		desc.FullName = namespace + "." + typeName
	}

	for _, col := range cols {
		member := scaffold.MemberDescriptor{
			Name: wstrings.ToPascalCase(col.name),
			Type: clrType(col.sqlType),
		}
		desc.Members = append(desc.Members, member)

		if col.primaryKey && desc.PrimaryKeyName == "" {
			desc.PrimaryKeyName = member.Name
			desc.PrimaryKeyTypeName = member.Type
			desc.PrimaryKeyShortTypeName = member.Type
		}
	}

	return desc, nil
}

// quoteIdent quotes a SQLite identifier, doubling embedded quotes.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// sqliteColumns reads the table shape via PRAGMA table_info.
func sqliteColumns(db *sql.DB, table string) ([]column, error) {
	rows, err := db.Query("PRAGMA table_info(" + quoteIdent(table) + ")")
	if err != nil {
		return nil, fmt.Errorf("failed to introspect table %s: %w", table, err)
	}
	defer rows.Close()

	var cols []column
	for rows.Next() {
		var (
			cid     int
			name    string
			sqlType string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &sqlType, &notNull, &dflt, &pk); err != nil {
			return nil, fmt.Errorf("failed to scan column row: %w", err)
		}
		cols = append(cols, column{name: name, sqlType: sqlType, primaryKey: pk > 0})
	}
	return cols, rows.Err()
}

// postgresColumns reads the table shape from information_schema.
func postgresColumns(db *sql.DB, table string) ([]column, error) {
	const query = `
SELECT c.column_name, c.data_type,
       EXISTS (
         SELECT 1
         FROM information_schema.table_constraints tc
         JOIN information_schema.key_column_usage kcu
           ON kcu.constraint_name = tc.constraint_name
         WHERE tc.table_name = c.table_name
           AND tc.constraint_type = 'PRIMARY KEY'
           AND kcu.column_name = c.column_name
       ) AS is_primary
FROM information_schema.columns c
WHERE c.table_name = $1
ORDER BY c.ordinal_position`

	rows, err := db.Query(query, table)
	if err != nil {
		return nil, fmt.Errorf("failed to introspect table %s: %w", table, err)
	}
	defer rows.Close()

	var cols []column
	for rows.Next() {
		var col column
		if err := rows.Scan(&col.name, &col.sqlType, &col.primaryKey); err != nil {
			return nil, fmt.Errorf("failed to scan column row: %w", err)
		}
		cols = append(cols, col)
	}
	return cols, rows.Err()
}

// clrType maps a SQL column type to the member type generated classes use.
func clrType(sqlType string) string {
	fields := strings.Fields(strings.ToLower(sqlType))
	if len(fields) == 0 {
		return "string"
	}
	base := fields[0]
	if i := strings.Index(base, "("); i >= 0 {
		base = base[:i]
	}

	switch base {
	case "integer", "int", "int4", "smallint", "bigint", "int8":
		return "int"
	case "real", "float", "double", "numeric", "decimal":
		return "decimal"
	case "boolean", "bool":
		return "bool"
	case "timestamp", "timestamptz", "date", "datetime":
		return "DateTime"
	case "uuid":
		return "Guid"
	default:
		return "string"
	}
}

// singular trims a plural table name down to the entity name.
func singular(table string) string {
	lower := strings.ToLower(table)
	switch {
	case strings.HasSuffix(lower, "ies"):
		return table[:len(table)-3] + "y"
	case strings.HasSuffix(lower, "ses"), strings.HasSuffix(lower, "xes"),
		strings.HasSuffix(lower, "zes"), strings.HasSuffix(lower, "ches"),
		strings.HasSuffix(lower, "shes"):
		return table[:len(table)-2]
	case strings.HasSuffix(lower, "s"):
		return table[:len(table)-1]
	default:
		return table
	}
}
