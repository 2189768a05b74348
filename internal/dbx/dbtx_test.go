package dbx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDialect_Rebind(t *testing.T) {
	q := `UPDATE kv SET value = ? WHERE key = ? AND value = ?`

	assert.Equal(t, q, DialectSQLite.Rebind(q))
	assert.Equal(t,
		`UPDATE kv SET value = $1 WHERE key = $2 AND value = $3`,
		DialectPostgres.Rebind(q))
}

func TestDialect_Rebind_NoPlaceholders(t *testing.T) {
	assert.Equal(t, `DELETE FROM kv`, DialectPostgres.Rebind(`DELETE FROM kv`))
}
