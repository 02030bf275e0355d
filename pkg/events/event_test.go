package events

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecode(t *testing.T) {
	ev := &Event{
		Kind:      KindRead,
		State:     "READ",
		Line:      "Found ID #3 with confidence of 120\n",
		Reply:     "success",
		Source:    "bench-1",
		Timestamp: 1700000000000000000,
	}
	data, err := Encode(ev)
	require.NoError(t, err)
	decoded, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, ev, decoded)
	require.Equal(t, int64(1700000000000000000), decoded.Time().UnixNano())
}

func TestDecodeGarbage(t *testing.T) {
	_, err := Decode([]byte{0x0a, 0xff})
	require.Error(t, err)
}
