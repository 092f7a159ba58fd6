// Package dbutil adapts gendry-built queries for Postgres.
package dbutil

import (
	"errors"
	"regexp"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// gendry emits MySQL syntax. Its "LIMIT ?,?" clause (offset first, count
// second) is always the tail of the statement, with the two limit values as
// the last two args.
var limitPattern = regexp.MustCompile(`(?i)LIMIT\s+\?\s*,\s*\?`)

// Finalize converts a gendry query into Postgres form: the LIMIT clause is
// rewritten to "LIMIT ? OFFSET ?" (swapping the matching args) and all ?
// placeholders become $N.
func Finalize(query string, args []interface{}) (string, []interface{}) {
	if idx := limitPattern.FindStringIndex(query); idx != nil && len(args) >= 2 {
		last := len(args) - 1
		args[last-1], args[last] = args[last], args[last-1]
		query = query[:idx[0]] + "LIMIT ? OFFSET ?" + query[idx[1]:]
	}
	return sqlx.Rebind(sqlx.DOLLAR, query), args
}

// IsConflict reports whether err is a Postgres unique-constraint violation.
func IsConflict(err error) bool {
	var pgErr *pq.Error
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
