package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestQuote_Value(t *testing.T) {
	created := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	q := &Quote{
		ID:        "abc",
		QuoteID:   "Q20250615001",
		Service:   "pcb",
		CreatedAt: created,
		Fields:    map[string]interface{}{"total": 42.5},
	}

	// Known fields answer to both spellings.
	for _, field := range []string{"quoteId", "quote_id"} {
		v, ok := q.Value(field)
		assert.True(t, ok)
		assert.Equal(t, "Q20250615001", v)
	}
	for _, field := range []string{"createdAt", "created_at"} {
		v, ok := q.Value(field)
		assert.True(t, ok)
		assert.Equal(t, created, v)
	}

	v, ok := q.Value("total")
	assert.True(t, ok)
	assert.Equal(t, 42.5, v)

	_, ok = q.Value("missing")
	assert.False(t, ok)
}

func TestQuote_Value_ZeroFieldsAbsent(t *testing.T) {
	q := &Quote{}
	_, ok := q.Value("quoteId")
	assert.False(t, ok)
	_, ok = q.Value("createdAt")
	assert.False(t, ok)
}

func TestQuote_Clone(t *testing.T) {
	q := &Quote{ID: "abc", Fields: map[string]interface{}{"layers": 4}}

	c := q.Clone()
	c.Fields["layers"] = 6
	c.ID = "other"

	assert.Equal(t, "abc", q.ID)
	assert.Equal(t, 4, q.Fields["layers"])

	var nilQuote *Quote
	assert.Nil(t, nilQuote.Clone())
}

func TestQuote_SetField(t *testing.T) {
	q := &Quote{}
	q.SetField("material", "FR4")

	v, ok := q.Value("material")
	assert.True(t, ok)
	assert.Equal(t, "FR4", v)
}
