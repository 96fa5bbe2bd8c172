package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWhereBuilderEmpty(t *testing.T) {
	var w whereBuilder
	assert.Equal(t, "1=1", w.sql())
	assert.Empty(t, w.args)
}

func TestWhereBuilderPlaceholdersIncrement(t *testing.T) {
	var w whereBuilder
	w.eq("client_id", "c1")
	w.in("status", []string{"open", "in_progress"})
	w.search("  Roof ", "title", "description")
	w.raw("(sender_id=$%d)", "u1")

	assert.Equal(t,
		"client_id=$1 AND status IN ($2,$3) AND (LOWER(title) LIKE $4 OR LOWER(description) LIKE $4) AND (sender_id=$5)",
		w.sql())
	assert.Equal(t, []any{"c1", "open", "in_progress", "%roof%", "u1"}, w.args)
}

func TestWhereBuilderSkipsEmptyInputs(t *testing.T) {
	var w whereBuilder
	w.in("status", nil)
	w.search("   ", "title")
	assert.Equal(t, "1=1", w.sql())
}

func TestPageNormalization(t *testing.T) {
	var w whereBuilder
	assert.Equal(t, "LIMIT 20 OFFSET 0", w.page(Page{}))
	assert.Equal(t, "LIMIT 100 OFFSET 0", w.page(Page{Limit: 1000, Offset: -5}))
	assert.Equal(t, "LIMIT 10 OFFSET 30", w.page(Page{Limit: 10, Offset: 30}))
}
