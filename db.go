package dnaimage

import (
	"crypto/sha1"
	"database/sql"
	"errors"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/bodgit/dnaimage/address"
	"github.com/bodgit/dnaimage/strand"
	_ "github.com/mattn/go-sqlite3"
)

var (
	errNoPool        = errors.New("dnaimage: no such pool")
	errDuplicatePool = errors.New("dnaimage: image already archived")
)

// PoolDB archives encoded pools keyed by name and by the SHA-1 of the
// source image.
type PoolDB struct {
	db *sql.DB
}

// PoolInfo summarises one archived pool.
type PoolInfo struct {
	Name    string
	SHA1    string
	Strands int
}

// NewPoolDB opens, creating if necessary, the archive in file.
func NewPoolDB(file string) (*PoolDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS pool (id INTEGER PRIMARY KEY NOT NULL, name TEXT NOT NULL UNIQUE, sha1 TEXT NOT NULL UNIQUE)"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS strand (pool_id INTEGER NOT NULL, image_row INTEGER NOT NULL, image_col INTEGER NOT NULL, sequence TEXT NOT NULL, UNIQUE(pool_id, image_row, image_col), FOREIGN KEY(pool_id) REFERENCES pool(id) ON DELETE CASCADE)"); err != nil {
		db.Close()
		return nil, err
	}

	return &PoolDB{
		db: db,
	}, nil
}

// Close closes the archive
func (db *PoolDB) Close() error {
	return db.db.Close()
}

// AddPool stores p under name. If the same name already holds sha its id
// is returned and nothing is written; sha stored under any other name is
// an error naming that pool.
func (db *PoolDB) AddPool(name, sha string, p strand.Pool) (int64, error) {
	var (
		id       int64
		existing string
	)
	switch err := db.db.QueryRow("SELECT id, name FROM pool WHERE sha1 = ?", sha).Scan(&id, &existing); err {
	case sql.ErrNoRows:
	case nil:
		if existing != name {
			return 0, fmt.Errorf("%w as %s", errDuplicatePool, existing)
		}
		return id, nil
	default:
		return 0, err
	}

	tx, err := db.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	result, err := tx.Exec("INSERT INTO pool (name, sha1) VALUES (?, ?)", name, sha)
	if err != nil {
		return 0, err
	}
	if id, err = result.LastInsertId(); err != nil {
		return 0, err
	}

	stmt, err := tx.Prepare("INSERT INTO strand (pool_id, image_row, image_col, sequence) VALUES (?, ?, ?, ?)")
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for y, row := range p {
		for x, s := range row {
			if _, err := stmt.Exec(id, y+1, x+1, string(s)); err != nil {
				return 0, err
			}
		}
	}

	return id, tx.Commit()
}

// Pool returns the pool stored under name.
func (db *PoolDB) Pool(name string) (strand.Pool, error) {
	var id int64
	switch err := db.db.QueryRow("SELECT id FROM pool WHERE name = ?", name).Scan(&id); err {
	case sql.ErrNoRows:
		return nil, fmt.Errorf("%w: %s", errNoPool, name)
	case nil:
	default:
		return nil, err
	}

	rows, err := db.db.Query("SELECT image_row, image_col, sequence FROM strand WHERE pool_id = ? ORDER BY image_row, image_col", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	p := make(strand.Pool, address.Rows)
	for rows.Next() {
		var (
			c   address.Coordinate
			seq string
		)
		if err := rows.Scan(&c.Row, &c.Column, &seq); err != nil {
			return nil, err
		}
		if !c.Valid() {
			return nil, fmt.Errorf("dnaimage: pool %s has strand at %v", name, c)
		}
		p[c.Row-1] = append(p[c.Row-1], strand.Strand(seq))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return p, nil
}

// List returns every archived pool ordered by name.
func (db *PoolDB) List() ([]PoolInfo, error) {
	rows, err := db.db.Query("SELECT p.name, p.sha1, COUNT(s.sequence) FROM pool AS p LEFT JOIN strand AS s ON s.pool_id = p.id GROUP BY p.id ORDER BY p.name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var info []PoolInfo
	for rows.Next() {
		var i PoolInfo
		if err := rows.Scan(&i.Name, &i.SHA1, &i.Strands); err != nil {
			return nil, err
		}
		info = append(info, i)
	}
	return info, rows.Err()
}

// Delete removes the pool stored under name.
func (db *PoolDB) Delete(name string) error {
	result, err := db.db.Exec("DELETE FROM pool WHERE name = ?", name)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", errNoPool, name)
	}
	return nil
}

// Import encodes the image in file and archives its pool under name.
func (c *Codec) Import(name, file string) (strand.Pool, error) {
	if c.db == nil {
		return nil, errNoDB
	}

	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	h := sha1.New()
	m, _, err := image.Decode(io.TeeReader(f, h))
	if err != nil {
		return nil, err
	}
	sha := fmt.Sprintf("%X", h.Sum(nil))

	p, err := c.Encode(m)
	if err != nil {
		return nil, err
	}

	if _, err := c.db.AddPool(name, sha, p); err != nil {
		return nil, err
	}
	c.logger.Printf("Archived \"%s\" as %s with SHA1 %s\n", file, name, sha)

	return p, nil
}

// Export writes the archived pool name to w as a read list.
func (c *Codec) Export(name string, w io.Writer) error {
	if c.db == nil {
		return errNoDB
	}

	p, err := c.db.Pool(name)
	if err != nil {
		return err
	}

	return strand.WriteReads(w, p.Strands())
}
