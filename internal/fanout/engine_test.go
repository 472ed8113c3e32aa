package fanout

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pcbxpress/internal/registry"
	"pcbxpress/internal/routing"
	"pcbxpress/internal/storage/memory"
	"pcbxpress/pkg/model"
)

func newEngine(store *memory.Store, strict bool) *Engine {
	reg := registry.New()
	return New(store, routing.New(reg, strict), nil)
}

func insert(t *testing.T, store *memory.Store, collection string, q *model.Quote) {
	t.Helper()
	require.NoError(t, store.Insert(context.Background(), collection, q))
}

func TestFind_MergesAcrossCollections(t *testing.T) {
	mem := memory.New()
	base := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	insert(t, mem, "pcb_quotes", &model.Quote{QuoteID: "Q20250615001", Service: "pcb", CreatedAt: base.Add(1 * time.Hour)})
	insert(t, mem, "assembly_quotes", &model.Quote{QuoteID: "Q20250615002", Service: "pcb_assembly", CreatedAt: base.Add(3 * time.Hour)})
	insert(t, mem, "printing_quotes", &model.Quote{QuoteID: "Q20250615003", Service: "3d_printing", CreatedAt: base.Add(2 * time.Hour)})

	e := newEngine(mem, false)
	got, err := e.Find(context.Background(), model.Filter{}, model.FindOptions{})
	require.NoError(t, err)
	require.Len(t, got, 3)

	// Newest first across collections.
	assert.Equal(t, "Q20250615002", got[0].QuoteID)
	assert.Equal(t, "Q20250615003", got[1].QuoteID)
	assert.Equal(t, "Q20250615001", got[2].QuoteID)
}

func TestFind_DedupesMigrationWindowDuplicates(t *testing.T) {
	mem := memory.New()
	base := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	// The same testing quote is reachable through both its authoritative
	// collection and the legacy printing collection.
	dup := &model.Quote{ID: "dup-1", QuoteID: "Q20250615001", Service: "testing", CreatedAt: base}
	insert(t, mem, "testing_quotes", dup.Clone())
	insert(t, mem, "printing_quotes", dup.Clone())
	insert(t, mem, "testing_quotes", &model.Quote{ID: "solo-1", QuoteID: "Q20250615002", Service: "testing", CreatedAt: base.Add(time.Hour)})

	e := newEngine(mem, false)
	got, err := e.Find(context.Background(), model.Filter{Service: model.ServiceIs("testing")}, model.FindOptions{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "solo-1", got[0].ID)
	assert.Equal(t, "dup-1", got[1].ID)
}

func TestFind_Pagination(t *testing.T) {
	mem := memory.New()
	base := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	// 30 quotes spread over three collections, interleaved in time.
	colls := []struct {
		name string
		svc  string
	}{
		{"pcb_quotes", "pcb"},
		{"assembly_quotes", "pcb_assembly"},
		{"harness_quotes", "wire_harness"},
	}
	for i := 0; i < 30; i++ {
		c := colls[i%3]
		insert(t, mem, c.name, &model.Quote{
			Service:   c.svc,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}

	e := newEngine(mem, false)
	ctx := context.Background()

	// Two consecutive pages equal one double-size page.
	first, err := e.Find(ctx, model.Filter{}, model.FindOptions{Skip: 0, Limit: 10})
	require.NoError(t, err)
	second, err := e.Find(ctx, model.Filter{}, model.FindOptions{Skip: 10, Limit: 10})
	require.NoError(t, err)
	both, err := e.Find(ctx, model.Filter{}, model.FindOptions{Skip: 0, Limit: 20})
	require.NoError(t, err)

	require.Len(t, first, 10)
	require.Len(t, second, 10)
	require.Len(t, both, 20)
	assert.Equal(t, append(append([]*model.Quote{}, first...), second...), both)

	// Skip past the end yields an empty page, not an error.
	empty, err := e.Find(ctx, model.Filter{}, model.FindOptions{Skip: 100, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestFind_CustomSort(t *testing.T) {
	mem := memory.New()
	insert(t, mem, "pcb_quotes", &model.Quote{Service: "pcb", Fields: map[string]interface{}{"total": 300.0}})
	insert(t, mem, "assembly_quotes", &model.Quote{Service: "pcb_assembly", Fields: map[string]interface{}{"total": 100.0}})
	insert(t, mem, "printing_quotes", &model.Quote{Service: "3d_printing", Fields: map[string]interface{}{"total": 200.0}})

	e := newEngine(mem, false)
	got, err := e.Find(context.Background(), model.Filter{}, model.FindOptions{
		Sort: model.SortSpec{{Field: "total"}},
	})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, 100.0, got[0].Fields["total"])
	assert.Equal(t, 200.0, got[1].Fields["total"])
	assert.Equal(t, 300.0, got[2].Fields["total"])
}

func TestFind_ConditionsApplyPerTarget(t *testing.T) {
	mem := memory.New()
	insert(t, mem, "pcb_quotes", &model.Quote{Service: "pcb", Fields: map[string]interface{}{"status": "open"}})
	insert(t, mem, "pcb_quotes", &model.Quote{Service: "pcb", Fields: map[string]interface{}{"status": "won"}})
	insert(t, mem, "assembly_quotes", &model.Quote{Service: "pcb_assembly", Fields: map[string]interface{}{"status": "open"}})

	e := newEngine(mem, false)
	f := model.Filter{}.Where("status", model.OpEq, "open")
	got, err := e.Find(context.Background(), f, model.FindOptions{})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestFind_StrictModeError(t *testing.T) {
	e := newEngine(memory.New(), true)
	_, err := e.Find(context.Background(), model.Filter{Service: model.ServiceIn("bogus")}, model.FindOptions{})
	assert.ErrorIs(t, err, model.ErrNoTargets)
}

func TestCount_SumsPerTarget(t *testing.T) {
	mem := memory.New()
	base := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	insert(t, mem, "pcb_quotes", &model.Quote{Service: "pcb", CreatedAt: base})
	insert(t, mem, "pcb_quotes", &model.Quote{Service: "pcb", CreatedAt: base})
	insert(t, mem, "testing_quotes", &model.Quote{Service: "testing", CreatedAt: base})

	e := newEngine(mem, false)
	n, err := e.Count(context.Background(), model.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	n, err = e.Count(context.Background(), model.Filter{Service: model.ServiceIs("pcb")})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestCount_MigrationWindowDuplicatesAreNotDeduplicated(t *testing.T) {
	mem := memory.New()
	dup := &model.Quote{ID: "dup-1", QuoteID: "Q20250615001", Service: "testing"}
	insert(t, mem, "testing_quotes", dup.Clone())
	insert(t, mem, "printing_quotes", dup.Clone())

	e := newEngine(mem, false)
	n, err := e.Count(context.Background(), model.Filter{Service: model.ServiceIs("testing")})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
