package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"doccstock/internal/domain/pba"
)

type base struct {
	ID string `db:"id"`
}

type sample struct {
	base
	Code    string `db:"code"`
	Skipped string `db:"-"`
	Plain   string
	Qty     int64 `db:"qty"`
}

func TestColumns_FlattensEmbedded(t *testing.T) {
	assert.Equal(t, []string{"id", "code", "qty"}, Columns[sample]())
	assert.Equal(t, []string{"id", "code", "qty"}, Columns[sample](), "cached result")
}

func TestQualifiedColumns(t *testing.T) {
	assert.Equal(t,
		[]string{"p.id", "p.code", "p.description", "p.created_at"},
		QualifiedColumns[pba.ProductType]("p"))
}
