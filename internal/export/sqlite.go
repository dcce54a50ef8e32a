package export

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/melodypapa/autosar-pdf/internal/model"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS packages (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	path TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS types (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	package_id INTEGER NOT NULL REFERENCES packages(id),
	name TEXT NOT NULL,
	kind TEXT NOT NULL,
	note TEXT,
	atp_type TEXT,
	is_abstract INTEGER NOT NULL DEFAULT 0,
	parent TEXT,
	UNIQUE(package_id, name)
);

CREATE TABLE IF NOT EXISTS attributes (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	type_id INTEGER NOT NULL REFERENCES types(id) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	name TEXT NOT NULL,
	attr_type TEXT NOT NULL,
	multiplicity TEXT,
	kind TEXT NOT NULL,
	note TEXT,
	is_ref INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS literals (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	type_id INTEGER NOT NULL REFERENCES types(id) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	name TEXT NOT NULL,
	idx INTEGER,
	value TEXT,
	description TEXT
);
`

// WriteSQLite dumps the extracted model into a SQLite database at path.
// Existing data for the same packages is replaced.
func WriteSQLite(path string, doc *model.Document) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("enabling foreign keys: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	var walkErr error
	doc.Walk(func(pkgPath string, pkg *model.Package) {
		if walkErr != nil || len(pkg.Types) == 0 {
			return
		}
		walkErr = insertPackage(tx, pkgPath, pkg)
	})
	if walkErr != nil {
		return walkErr
	}

	return tx.Commit()
}

func insertPackage(tx *sql.Tx, pkgPath string, pkg *model.Package) error {
	if _, err := tx.Exec("INSERT OR IGNORE INTO packages (path) VALUES (?)", pkgPath); err != nil {
		return fmt.Errorf("inserting package %s: %w", pkgPath, err)
	}

	var pkgID int64
	if err := tx.QueryRow("SELECT id FROM packages WHERE path = ?", pkgPath).Scan(&pkgID); err != nil {
		return fmt.Errorf("looking up package %s: %w", pkgPath, err)
	}

	for _, t := range pkg.Types {
		if err := insertType(tx, pkgID, t); err != nil {
			return err
		}
	}
	return nil
}

func insertType(tx *sql.Tx, pkgID int64, t model.Type) error {
	base := t.Base()

	isAbstract := 0
	parent := ""
	if c, ok := t.(*model.Class); ok {
		if c.IsAbstract {
			isAbstract = 1
		}
		parent = c.Parent
	}

	res, err := tx.Exec(
		`INSERT OR REPLACE INTO types (package_id, name, kind, note, atp_type, is_abstract, parent)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		pkgID, base.Name, string(t.Kind()), base.Note, string(base.ATP), isAbstract, parent,
	)
	if err != nil {
		return fmt.Errorf("inserting type %s: %w", base.Name, err)
	}

	typeID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading type id for %s: %w", base.Name, err)
	}

	var attrs []model.Attribute
	switch v := t.(type) {
	case *model.Class:
		attrs = v.Attributes
	case *model.Primitive:
		attrs = v.Attributes
	case *model.Enumeration:
		for i, literal := range v.Literals {
			var idx any
			if literal.Index != nil {
				idx = *literal.Index
			}
			if _, err := tx.Exec(
				`INSERT INTO literals (type_id, position, name, idx, value, description)
				 VALUES (?, ?, ?, ?, ?, ?)`,
				typeID, i, literal.Name, idx, literal.Value, literal.Description,
			); err != nil {
				return fmt.Errorf("inserting literal %s.%s: %w", base.Name, literal.Name, err)
			}
		}
	}

	for i, attr := range attrs {
		isRef := 0
		if attr.IsRef {
			isRef = 1
		}
		if _, err := tx.Exec(
			`INSERT INTO attributes (type_id, position, name, attr_type, multiplicity, kind, note, is_ref)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			typeID, i, attr.Name, attr.Type, attr.Multiplicity, string(attr.Kind), attr.Note, isRef,
		); err != nil {
			return fmt.Errorf("inserting attribute %s.%s: %w", base.Name, attr.Name, err)
		}
	}

	return nil
}
