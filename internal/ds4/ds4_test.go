package ds4

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/usbarmory/procon-bridge/procon/feed"
)

func reportWith(mutate func(buf []byte)) []byte {
	buf := make([]byte, reportLength)
	buf[0] = 0x01
	buf[5] = 0b1000 // D-pad neutral
	mutate(buf)
	return buf
}

func TestDecodeDpadNeutral(t *testing.T) {
	buf := reportWith(func(buf []byte) {})
	f := decode(buf)

	assert.Zero(t, f.Buttons)
}

func TestDecodeDpadUp(t *testing.T) {
	buf := reportWith(func(buf []byte) { buf[5] = 0b0000 })
	f := decode(buf)

	assert.Equal(t, uint32(feed.ButtonUp), f.Buttons)
}

func TestDecodeFaceButtons(t *testing.T) {
	buf := reportWith(func(buf []byte) {
		buf[5] |= 1 << 5 // SOUTH
		buf[6] = 1<<0 | 1<<5 // L1, PLUS
	})
	f := decode(buf)

	assert.Equal(t, uint32(feed.ButtonSouth|feed.ButtonL1|feed.ButtonPlus), f.Buttons)
}

func TestDecodeHomeAndCapture(t *testing.T) {
	buf := reportWith(func(buf []byte) {
		buf[7] = 1<<0 | 1<<1
	})
	f := decode(buf)

	assert.Equal(t, uint32(feed.ButtonHome|feed.ButtonCapture), f.Buttons)
}

func TestDecodeSticks(t *testing.T) {
	buf := reportWith(func(buf []byte) {
		buf[1] = 0xff
		buf[2] = 0x00
		buf[3] = 0x80
		buf[4] = 0x7f
	})
	f := decode(buf)

	assert.Equal(t, scale8to12(0xff), f.LX)
	assert.Equal(t, scale8to12(0x00), f.LY)
	assert.Equal(t, scale8to12(0x80), f.RX)
	assert.Equal(t, scale8to12(0x7f), f.RY)
}
