// Package fixture seeds the SQLite development store from YAML.
package fixture

import (
	"context"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Tables lists the loadable tables in insert order; parents precede the
// tables that reference them.
var Tables = []string{
	"clients",
	"persons",
	"mobiles",
	"person_mobiles",
	"loans",
	"cams_loan_scrips",
	"loan_scrips",
	"provider_requests",
	"provider_logs",
	"eligibility_leads",
	"eligibility_securities",
	"person_locations",
	"person_emails",
	"banker_checks",
}

var columnName = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Row maps column names to values.
type Row map[string]any

// File is a parsed fixture document: rows keyed by table name.
type File struct {
	Tables map[string][]Row `yaml:"tables"`
}

// Parse decodes a fixture document and checks its table and column names.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, eris.Wrap(err, "fixture: parse")
	}
	known := make(map[string]bool, len(Tables))
	for _, t := range Tables {
		known[t] = true
	}
	for table, rows := range f.Tables {
		if !known[table] {
			return nil, eris.Errorf("fixture: unknown table %q", table)
		}
		for i, row := range rows {
			if len(row) == 0 {
				return nil, eris.Errorf("fixture: %s row %d is empty", table, i)
			}
			for col := range row {
				if !columnName.MatchString(col) {
					return nil, eris.Errorf("fixture: %s row %d has invalid column %q", table, i, col)
				}
			}
		}
	}
	return &f, nil
}

// ReadFile reads and parses the fixture document at path.
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "fixture: read %s", path)
	}
	return Parse(data)
}

// Load inserts every row of f in one transaction and returns the number of
// rows inserted per table.
func Load(ctx context.Context, db *sqlx.DB, f *File) (map[string]int, error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, eris.Wrap(err, "fixture: begin")
	}
	defer tx.Rollback() //nolint:errcheck

	counts := make(map[string]int, len(f.Tables))
	for _, table := range Tables {
		for i, row := range f.Tables[table] {
			if _, err := tx.NamedExecContext(ctx, insertQuery(table, row), map[string]any(row)); err != nil {
				return nil, eris.Wrapf(err, "fixture: insert %s row %d", table, i)
			}
			counts[table]++
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, eris.Wrap(err, "fixture: commit")
	}
	return counts, nil
}

// LoadFile reads the fixture at path and loads it into db.
func LoadFile(ctx context.Context, db *sqlx.DB, path string) (map[string]int, error) {
	f, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Load(ctx, db, f)
}

func insertQuery(table string, row Row) string {
	cols := make([]string, 0, len(row))
	for col := range row {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	return "INSERT INTO " + table + " (" + strings.Join(cols, ", ") + ") VALUES (:" + strings.Join(cols, ", :") + ")"
}
