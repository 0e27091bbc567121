package units

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SamiPerttu/fundsp/fundsp"
)

func TestConstantEmitsFixedValue(t *testing.T) {
	n := Constant(3.5)
	n.Allocate()
	out := n.Tick(nil)
	assert.Equal(t, float32(3.5), out[0])
	out = n.Tick(nil)
	assert.Equal(t, float32(3.5), out[0])
}

func TestConstantSettingUpdatesValue(t *testing.T) {
	n := Constant(1)
	n.Allocate()
	n.Set(fundsp.ValueSetting(7), nil)
	out := n.Tick(nil)
	assert.Equal(t, float32(7), out[0])
}

func TestConstantRouteReportsValueTag(t *testing.T) {
	n := Constant(2)
	tags := n.Route(nil)
	assert.Equal(t, fundsp.KindValue, tags[0].Kind)
	assert.Equal(t, 2.0, tags[0].Value)
}
