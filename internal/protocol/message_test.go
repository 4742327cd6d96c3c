package protocol

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestEncodeDecodeRoundtrip verifies decode(encode(m)) == m for fields
// not containing the delimiter.
func TestEncodeDecodeRoundtrip(t *testing.T) {
	t.Parallel()

	cases := []Message{
		{From: "BARANGAY_HALL", To: "PUROK1", Event: "FIRE", DurationLabel: "30sec"},
		{From: "BARANGAY_HALL", To: "ALL", Event: "MUTE", DurationLabel: "15sec"},
		{From: "a", To: "b", Event: "c", DurationLabel: "d"},
		{From: "", To: "", Event: "", DurationLabel: ""},
	}

	for _, m := range cases {
		decoded, err := Decode(Encode(m))
		require.NoError(t, err)
		require.Equal(t, m, decoded)
	}
}

// TestDecodeMalformed verifies that lines without exactly four fields
// fail with ErrMalformed.
func TestDecodeMalformed(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{
		"",
		"BARANGAY_HALL",
		"BARANGAY_HALL|PUROK1",
		"BARANGAY_HALL|PUROK1|FIRE",
		"BARANGAY_HALL|PUROK1|FIRE|30sec|extra",
	} {
		_, err := Decode(raw)
		require.ErrorIs(t, err, ErrMalformed, raw)
	}
}

// TestDecodeKeepsFieldsRaw verifies the codec stays purely syntactic:
// unknown events and labels pass through unvalidated.
func TestDecodeKeepsFieldsRaw(t *testing.T) {
	t.Parallel()

	m, err := Decode("somewhere|nobody|DANCE|forever")
	require.NoError(t, err)
	require.Equal(t, "somewhere", m.From)
	require.Equal(t, "nobody", m.To)
	require.Equal(t, "DANCE", m.Event)
	require.Equal(t, "forever", m.DurationLabel)
}
