package wiki

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

const schema = `
CREATE TABLE IF NOT EXISTS pages (
	name TEXT PRIMARY KEY
) WITHOUT ROWID;
`

// Index is a wiki whose list of existing pages is kept in SQLite database,
// usually exported from the wiki engine itself. Connection is shared, so all
// access is serialized.
type Index struct {
	mu   sync.Mutex
	conn *sqlite.Conn
	base string
	log  *zap.Logger
}

// OpenIndex opens (creating when necessary) page index at path.
func OpenIndex(path, baseURL string, log *zap.Logger) (*Index, error) {
	if log == nil {
		log = zap.NewNop()
	}
	conn, err := sqlite.OpenConn(path, sqlite.OpenReadWrite, sqlite.OpenCreate, sqlite.OpenWAL)
	if err != nil {
		return nil, fmt.Errorf("unable to open page index (%s): %w", path, err)
	}
	if err := sqlitex.ExecuteScript(conn, schema, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("unable to prepare page index (%s): %w", path, err)
	}
	return &Index{conn: conn, base: baseURL, log: log.Named("wiki")}, nil
}

// AddPages records pages as existing, duplicates are ignored.
func (x *Index) AddPages(pages ...string) (err error) {
	x.mu.Lock()
	defer x.mu.Unlock()

	defer sqlitex.Save(x.conn)(&err)
	for _, p := range pages {
		name := PageName(p)
		if name == "" {
			continue
		}
		if err := sqlitex.Execute(x.conn, `INSERT OR IGNORE INTO pages (name) VALUES (?)`,
			&sqlitex.ExecOptions{Args: []any{name}}); err != nil {
			return fmt.Errorf("unable to add page %q: %w", name, err)
		}
	}
	return nil
}

// Count returns number of known pages.
func (x *Index) Count() (int, error) {
	x.mu.Lock()
	defer x.mu.Unlock()

	var n int
	err := sqlitex.Execute(x.conn, `SELECT count(*) FROM pages`,
		&sqlitex.ExecOptions{ResultFunc: func(stmt *sqlite.Stmt) error {
			n = stmt.ColumnInt(0)
			return nil
		}})
	if err != nil {
		return 0, fmt.Errorf("unable to count pages: %w", err)
	}
	return n, nil
}

// HasPage reports whether page is in the index. Lookup errors are logged and
// page is treated as missing.
func (x *Index) HasPage(page string) bool {
	x.mu.Lock()
	defer x.mu.Unlock()

	found := false
	err := sqlitex.Execute(x.conn, `SELECT 1 FROM pages WHERE name = ?`,
		&sqlitex.ExecOptions{
			Args: []any{PageName(page)},
			ResultFunc: func(*sqlite.Stmt) error {
				found = true
				return nil
			},
		})
	if err != nil {
		x.log.Warn("Unable to look up wiki page", zap.String("page", page), zap.Error(err))
		return false
	}
	return found
}

func (x *Index) URLForPage(page string) string {
	return pageURL(x.base, page)
}

func (x *Index) Close() error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if x.conn == nil {
		return nil
	}
	err := x.conn.Close()
	x.conn = nil
	return err
}
