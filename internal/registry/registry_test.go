package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	r := New()

	assert.Equal(t, ServiceTesting, r.Normalize("testing"))
	assert.Equal(t, ServicePCB, r.Normalize(""))
	assert.Equal(t, ServicePCB, r.Normalize("cnc_machining"))
}

func TestNewWithDefault(t *testing.T) {
	r := NewWithDefault(ServicePrinting3D)
	assert.Equal(t, ServicePrinting3D, r.DefaultService())
	assert.Equal(t, ServicePrinting3D, r.Normalize("nope"))

	// An unknown default falls back to the standard one.
	r = NewWithDefault(Service("bogus"))
	assert.Equal(t, ServicePCB, r.DefaultService())
}

func TestKnown(t *testing.T) {
	r := New()
	assert.True(t, r.Known("wire_harness"))
	assert.False(t, r.Known("Wire_Harness"))
	assert.False(t, r.Known(""))
}

func TestDescriptor(t *testing.T) {
	r := New()

	d := r.Descriptor(ServicePCBAssembly)
	assert.Equal(t, "assembly_quotes", d.Collection)
	assert.Equal(t, "PcbAssemblyQuote", d.Model)
	assert.Contains(t, d.Allowed, ServiceWireHarness)

	// Unknown key resolves to the default descriptor.
	d = r.Descriptor(Service("bogus"))
	assert.Equal(t, "pcb_quotes", d.Collection)
}

func TestServicesAndCollectionsOrder(t *testing.T) {
	r := New()

	assert.Equal(t, []Service{
		ServicePCB, ServicePCBAssembly, ServicePrinting3D, ServiceTesting, ServiceWireHarness,
	}, r.Services())

	assert.Equal(t, []string{
		"pcb_quotes", "assembly_quotes", "printing_quotes", "testing_quotes", "harness_quotes",
	}, r.Collections())
}

func TestCollectionsFor(t *testing.T) {
	r := New()

	// Authoritative collection first, migration-window collections after.
	assert.Equal(t, []string{"testing_quotes", "printing_quotes"}, r.CollectionsFor(ServiceTesting))
	assert.Equal(t, []string{"harness_quotes", "assembly_quotes"}, r.CollectionsFor(ServiceWireHarness))

	assert.Equal(t, []string{"pcb_quotes"}, r.CollectionsFor(ServicePCB))
	assert.Equal(t, []string{"assembly_quotes"}, r.CollectionsFor(ServicePCBAssembly))

	// Unknown keys normalize before expansion.
	assert.Equal(t, []string{"pcb_quotes"}, r.CollectionsFor(Service("bogus")))
}
