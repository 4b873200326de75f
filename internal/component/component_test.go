package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type counter struct {
	Base
	wired int
}

func (c *counter) Bind() *counter {
	if c.Activate() {
		c.wired++
	}
	return c
}

var _ Binder[*counter] = (*counter)(nil)

func TestBase_BindOnce(t *testing.T) {
	c := &counter{}
	assert.Equal(t, Constructed, c.State())

	assert.Same(t, c, c.Bind())
	assert.Same(t, c, c.Bind())

	assert.Equal(t, Bound, c.State())
	assert.Equal(t, 1, c.wired)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "constructed", Constructed.String())
	assert.Equal(t, "bound", Bound.String())
	assert.Equal(t, "State(7)", State(7).String())
}
