package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCompareValues_Nulls(t *testing.T) {
	assert.Equal(t, 0, CompareValues(nil, nil))
	assert.Equal(t, -1, CompareValues(nil, 5))
	assert.Equal(t, 1, CompareValues("x", nil))
	assert.Equal(t, -1, CompareValues(nil, false))
}

func TestCompareValues_SameKind(t *testing.T) {
	assert.Equal(t, -1, CompareValues(false, true))
	assert.Equal(t, 0, CompareValues(true, true))

	assert.Equal(t, -1, CompareValues(1, 2))
	assert.Equal(t, 0, CompareValues(int64(3), 3.0))
	assert.Equal(t, 1, CompareValues(2.5, 1))

	assert.Equal(t, -1, CompareValues("abc", "abd"))
	assert.Equal(t, 0, CompareValues("same", "same"))

	early := time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC)
	late := early.Add(time.Hour)
	assert.Equal(t, -1, CompareValues(early, late))
	assert.Equal(t, 1, CompareValues(late, early))
	assert.Equal(t, 0, CompareValues(early, early))
}

func TestCompareValues_CrossKind(t *testing.T) {
	// bool < number < time < string
	assert.Equal(t, -1, CompareValues(true, 0))
	assert.Equal(t, -1, CompareValues(99, time.Now()))
	assert.Equal(t, -1, CompareValues(time.Now(), "a"))
	assert.Equal(t, 1, CompareValues("a", 1))
}

func TestSortSpec_Compare(t *testing.T) {
	a := &Quote{QuoteID: "Q20250615001", Fields: map[string]interface{}{"total": 100}}
	b := &Quote{QuoteID: "Q20250615002", Fields: map[string]interface{}{"total": 200}}

	spec := SortSpec{{Field: "total"}}
	assert.Equal(t, -1, spec.Compare(a, b))

	desc := SortSpec{{Field: "total", Desc: true}}
	assert.Equal(t, 1, desc.Compare(a, b))

	// First key ties, second decides.
	multi := SortSpec{{Field: "service"}, {Field: "quoteId", Desc: true}}
	assert.Equal(t, 1, multi.Compare(a, b))
}

func TestSortSpec_Sort_MissingFieldsFirst(t *testing.T) {
	withTotal := &Quote{ID: "a", Fields: map[string]interface{}{"total": 10}}
	noTotal := &Quote{ID: "b"}

	quotes := []*Quote{withTotal, noTotal}
	SortSpec{{Field: "total"}}.Sort(quotes)

	assert.Equal(t, "b", quotes[0].ID)
	assert.Equal(t, "a", quotes[1].ID)
}

func TestSortSpec_Sort_Stable(t *testing.T) {
	// All tie under the spec, incoming order survives.
	quotes := []*Quote{
		{ID: "first", Service: "pcb"},
		{ID: "second", Service: "pcb"},
		{ID: "third", Service: "pcb"},
	}
	SortSpec{{Field: "service"}}.Sort(quotes)

	assert.Equal(t, "first", quotes[0].ID)
	assert.Equal(t, "second", quotes[1].ID)
	assert.Equal(t, "third", quotes[2].ID)
}

func TestSortSpec_Sort_DefaultSortNewestFirst(t *testing.T) {
	base := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	quotes := []*Quote{
		{ID: "old", CreatedAt: base},
		{ID: "new", CreatedAt: base.Add(2 * time.Hour)},
		{ID: "mid", CreatedAt: base.Add(time.Hour)},
	}
	DefaultSort().Sort(quotes)

	assert.Equal(t, "new", quotes[0].ID)
	assert.Equal(t, "mid", quotes[1].ID)
	assert.Equal(t, "old", quotes[2].ID)
}
