package database

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/mattn/go-sqlite3"
)

const mysqlDuplicateEntry = 1062

// DuplicateKey reports whether err is a unique-constraint violation and names the
// violated key: the index name on MySQL, the column on SQLite. The duplicate value
// itself never leaks into key.
func DuplicateKey(err error) (key string, ok bool) {
	if err == nil {
		return "", false
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
		// Duplicate entry '<value>' for key '<table>.<index>'
		const marker = "for key '"
		i := strings.LastIndex(myErr.Message, marker)
		if i < 0 {
			return "", true
		}
		return afterDot(strings.TrimSuffix(myErr.Message[i+len(marker):], "'")), true
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) && liteErr.Code == sqlite3.ErrConstraint &&
		(liteErr.ExtendedCode == sqlite3.ErrConstraintUnique || liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey) {
		// UNIQUE constraint failed: <table>.<column>
		msg := liteErr.Error()
		if i := strings.LastIndex(msg, ": "); i >= 0 {
			msg = msg[i+2:]
		}
		return afterDot(msg), true
	}

	return "", false
}

func afterDot(s string) string {
	return s[strings.LastIndex(s, ".")+1:]
}
