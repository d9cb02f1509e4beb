package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientEventCodecRejectsForeignValue(t *testing.T) {
	c := newClientEventCodec(nil)
	_, err := c.Encode("not an event")
	assert.ErrorIs(t, err, ErrInvalidValueType)
}
