// Package recording persists test-run traces into SQLite databases so that
// failed runs can be inspected after the fact with the shiba CLI.
package recording

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/fatih/structs"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

// A Recorder is a backend that can record and store trace data.
type Recorder interface {
	// CreateTable creates a new table shaped after the sample entry.
	CreateTable(tableName string, sampleEntry any)

	// InsertData writes a same-type entry into a table that already exists.
	InsertData(tableName string, entry any)

	// ListTables returns a slice containing the names of all tables.
	ListTables() []string

	// Flush writes all the buffered entries into the database.
	Flush()

	// Close flushes and closes the database.
	Close()
}

// flushThreshold is the number of buffered entries that triggers an
// automatic flush.
const flushThreshold = 100000

// NewRecorder creates a SQLite-backed Recorder writing to path + ".sqlite3".
// An empty path picks a unique name. The recorder flushes on process exit.
func NewRecorder(path string) Recorder {
	if path == "" {
		path = "shiba_run_" + xid.New().String()
	}

	r := &runDB{
		db:     openRunDB(path),
		tables: make(map[string]*traceTable),
	}

	atexit.Register(r.Flush)

	return r
}

// A traceTable buffers the pending rows of one table together with the
// column list derived from the entry struct.
type traceTable struct {
	columns []string
	pending []any
}

// runDB writes the trace entries of one test run into a SQLite database.
type runDB struct {
	db      *sql.DB
	tables  map[string]*traceTable
	pending int
}

func openRunDB(path string) *sql.DB {
	filename := path + ".sqlite3"

	if _, err := os.Stat(filename); err == nil {
		log.Panicf("run database %s already exists", filename)
	}

	fmt.Fprintf(os.Stderr, "Recording run to %s\n", filename)

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		log.Panic(err)
	}

	return db
}

func storableKind(kind reflect.Kind) bool {
	switch kind {
	case
		reflect.Bool,
		reflect.Int,
		reflect.Int8,
		reflect.Int16,
		reflect.Int32,
		reflect.Int64,
		reflect.Uint,
		reflect.Uint8,
		reflect.Uint16,
		reflect.Uint32,
		reflect.Uint64,
		reflect.Float32,
		reflect.Float64,
		reflect.String:
		return true
	default:
		return false
	}
}

func entryColumns(sampleEntry any) []string {
	entryType := reflect.TypeOf(sampleEntry)
	for i := 0; i < entryType.NumField(); i++ {
		field := entryType.Field(i)
		if !storableKind(field.Type.Kind()) {
			log.Panicf("cannot record field %s of type %s",
				field.Name, field.Type)
		}
	}

	return structs.Names(sampleEntry)
}

// CreateTable creates a new table shaped after the sample entry.
func (r *runDB) CreateTable(tableName string, sampleEntry any) {
	columns := entryColumns(sampleEntry)

	_, err := r.db.Exec("CREATE TABLE " + tableName +
		" (" + strings.Join(columns, ", ") + ")")
	if err != nil {
		log.Panic(err)
	}

	r.tables[tableName] = &traceTable{columns: columns}
}

// InsertData buffers one entry for a table that already exists.
func (r *runDB) InsertData(tableName string, entry any) {
	table, ok := r.tables[tableName]
	if !ok {
		log.Panicf("no table named %s has been created", tableName)
	}

	table.pending = append(table.pending, entry)

	r.pending++
	if r.pending >= flushThreshold {
		r.Flush()
	}
}

// ListTables returns the table names in sorted order.
func (r *runDB) ListTables() []string {
	names := make([]string, 0, len(r.tables))
	for name := range r.tables {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Flush writes all the buffered entries into the database.
func (r *runDB) Flush() {
	if err := r.flush(); err != nil {
		log.Panic(err)
	}
}

func (r *runDB) flush() error {
	if r.pending == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for name, table := range r.tables {
		if err := flushTable(tx, name, table); err != nil {
			return fmt.Errorf("flushing table %s: %w", name, err)
		}
	}

	r.pending = 0

	return tx.Commit()
}

func flushTable(tx *sql.Tx, name string, table *traceTable) error {
	if len(table.pending) == 0 {
		return nil
	}

	marks := strings.TrimSuffix(
		strings.Repeat("?, ", len(table.columns)), ", ")

	stmt, err := tx.Prepare("INSERT INTO " + name + " VALUES (" + marks + ")")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, entry := range table.pending {
		value := reflect.ValueOf(entry)

		row := make([]any, value.NumField())
		for i := range row {
			row[i] = value.Field(i).Interface()
		}

		if _, err := stmt.Exec(row...); err != nil {
			return err
		}
	}

	table.pending = nil

	return nil
}

// Close flushes the buffered entries and closes the database.
func (r *runDB) Close() {
	r.Flush()

	if err := r.db.Close(); err != nil {
		log.Panic(err)
	}
}
