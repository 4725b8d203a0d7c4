package owid

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"math"
	"strings"
)

// All code interacting with a database is here

var (
	//go:embed skeletons/clickhouse/create.txt
	chCreate string
	//go:embed skeletons/postgres/create.txt
	pgCreate string
	//go:embed skeletons/duckdb/create.txt
	duckCreate string

	//go:embed skeletons/clickhouse/types.txt
	chTypes string
	//go:embed skeletons/postgres/types.txt
	pgTypes string
	//go:embed skeletons/duckdb/types.txt
	duckTypes string

	//go:embed skeletons/fields.txt
	fieldsSkel string
	//go:embed skeletons/dropIf.txt
	dropIfSkel string
	//go:embed skeletons/insert.txt
	insertSkel string
)

const (
	CH   = "clickhouse"
	PG   = "postgres"
	Duck = "duckdb"
)

type Dialect struct {
	db      *sql.DB
	dialect string

	dtTypes []DataTypes
	dbTypes []string

	create string
	fields string
	dropIf string
	insert string
}

func NewDialect(dialect string, db *sql.DB) (*Dialect, error) {
	dialect = strings.ToLower(dialect)

	d := &Dialect{db: db, dialect: dialect, fields: fieldsSkel, dropIf: dropIfSkel, insert: insertSkel}

	var types string
	switch d.dialect {
	case CH:
		d.create, types = chCreate, chTypes
	case PG:
		d.create, types = pgCreate, pgTypes
	case Duck:
		d.create, types = duckCreate, duckTypes
	default:
		return nil, fmt.Errorf("no skeletons for database %s", dialect)
	}

	for _, lm := range strings.Split(types, "\n") {
		if strings.TrimSpace(lm) == "" {
			continue
		}

		t := strings.Split(strings.TrimSpace(lm), ",")
		if len(t) != 2 {
			return nil, fmt.Errorf("bad type line in %s skeleton: %s", dialect, lm)
		}

		dt := DTFromString(t[0])
		if dt == DTunknown {
			return nil, fmt.Errorf("unknown data type in NewDialect: %s", t[0])
		}

		d.dtTypes = append(d.dtTypes, dt)
		d.dbTypes = append(d.dbTypes, t[1])
	}

	return d, nil
}

// ***************** Methods *****************

func (d *Dialect) Close() error {
	if d.db == nil {
		return nil
	}

	return d.db.Close()
}

func (d *Dialect) DB() *sql.DB {
	return d.db
}

func (d *Dialect) DialectName() string {
	return d.dialect
}

// CreateSQL returns the CREATE TABLE statement. orderBy defaults to the first field.
func (d *Dialect) CreateSQL(tableName, orderBy string, fields []string, types []DataTypes) (string, error) {
	if len(fields) != len(types) || len(fields) == 0 {
		return "", fmt.Errorf("fields and types must be non-empty and the same length in CreateSQL")
	}

	if orderBy == "" {
		orderBy = fields[0]
	}

	var flds []string
	for ind := 0; ind < len(fields); ind++ {
		var (
			dbType string
			e      error
		)
		if dbType, e = d.dbtype(types[ind]); e != nil {
			return "", e
		}

		field := strings.ReplaceAll(d.fields, "?Field", fields[ind])
		field = strings.ReplaceAll(field, "?Type", dbType)
		flds = append(flds, strings.TrimSpace(field))
	}

	create := strings.ReplaceAll(d.create, "?TableName", tableName)
	create = strings.ReplaceAll(create, "?OrderBy", orderBy)
	create = strings.Replace(create, "?fields", strings.Join(flds, ", "), 1)

	if strings.Contains(create, "?") {
		return "", fmt.Errorf("create still has placeholders: %s", create)
	}

	return strings.TrimSpace(create), nil
}

func (d *Dialect) Create(ctx context.Context, tableName, orderBy string, fields []string, types []DataTypes) error {
	create, e := d.CreateSQL(tableName, orderBy, fields, types)
	if e != nil {
		return e
	}

	_, e = d.db.ExecContext(ctx, create)

	return e
}

func (d *Dialect) DropTable(ctx context.Context, tableName string) error {
	qry := strings.TrimSpace(strings.ReplaceAll(d.dropIf, "?TableName", tableName))
	_, e := d.db.ExecContext(ctx, qry)

	return e
}

// InsertSQL returns a parameterized INSERT for one row of fields.
func (d *Dialect) InsertSQL(tableName string, fields []string) string {
	var ph []string
	for ind := 1; ind <= len(fields); ind++ {
		ph = append(ph, d.Placeholder(ind))
	}

	qry := strings.ReplaceAll(d.insert, "?TableName", tableName)
	qry = strings.Replace(qry, "?Fields", strings.Join(fields, ", "), 1)
	qry = strings.Replace(qry, "?Values", strings.Join(ph, ", "), 1)

	return strings.TrimSpace(qry)
}

// Placeholder returns the bind variable for the ind-th (1-based) parameter.
func (d *Dialect) Placeholder(ind int) string {
	if d.dialect == PG {
		return fmt.Sprintf("$%d", ind)
	}

	return "?"
}

// ToDB converts x to the value bound for the database.
func (d *Dialect) ToDB(x any) any {
	switch v := x.(type) {
	case int:
		return int64(v)
	case float64:
		if math.IsNaN(v) {
			return nil
		}
		return v
	default:
		return v
	}
}

func (d *Dialect) dbtype(dt DataTypes) (string, error) {
	if pos := position(dt, d.dtTypes); pos >= 0 {
		return d.dbTypes[pos], nil
	}

	return "", fmt.Errorf("no %s type for %v", d.dialect, dt)
}
