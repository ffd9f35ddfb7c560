package courier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocationSelection_CascadeReset(t *testing.T) {
	sel := &LocationSelection{}

	sel.SelectCity(1)
	sel.SelectZone(10)
	sel.SelectArea(100)
	assert.True(t, sel.Complete())

	// Changing the city clears zone and area.
	sel.SelectCity(2)
	assert.Equal(t, 2, sel.CityID)
	assert.Zero(t, sel.ZoneID)
	assert.Zero(t, sel.AreaID)
	assert.False(t, sel.Complete())

	// Changing the zone clears only the area.
	sel.SelectZone(20)
	sel.SelectArea(200)
	sel.SelectZone(21)
	assert.Equal(t, 21, sel.ZoneID)
	assert.Zero(t, sel.AreaID)
}

func TestLocationSelection_ReselectSameLevelKeepsDownstream(t *testing.T) {
	sel := &LocationSelection{}
	sel.SelectCity(1)
	sel.SelectZone(10)
	sel.SelectArea(100)

	sel.SelectCity(1)
	assert.Equal(t, 10, sel.ZoneID)
	assert.Equal(t, 100, sel.AreaID)
}

func TestRegistry(t *testing.T) {
	a := &fakeProvider{name: "steadfast"}
	b := &fakeProvider{name: "pathao"}
	reg := NewRegistry(a, b)

	got, err := reg.Get("pathao")
	assert.NoError(t, err)
	assert.Same(t, b, got.(*fakeProvider))

	_, err = reg.Get("unknown")
	assert.ErrorIs(t, err, ErrUnknown)

	assert.Len(t, reg.All(), 2)
}
