package api

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeValuesEnvelope(t *testing.T) {
	data := []byte(`{"$id":"1","$values":[{"idMuestra":1,"nombre":"Sangre"},{"idMuestra":2,"nombre":"Orina"}]}`)
	got, err := decodeValues[Sample](data)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "Sangre", got[0].Name)
	require.Equal(t, 2, got[1].ID)
}

func TestDecodeValuesAbsentField(t *testing.T) {
	got, err := decodeValues[Sample]([]byte(`{"$id":"1"}`))
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestDecodeValuesNullField(t *testing.T) {
	got, err := decodeValues[Sample]([]byte(`{"$values":null}`))
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestDecodeValuesBareArray(t *testing.T) {
	got, err := decodeValues[Sample]([]byte(`[{"idMuestra":7,"nombre":"Plasma"}]`))
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, 7, got[0].ID)
}

func TestDecodeValuesEmptyBody(t *testing.T) {
	got, err := decodeValues[Sample](nil)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestDecodeValuesMalformed(t *testing.T) {
	_, err := decodeValues[Sample]([]byte(`{"$values":`))
	require.Error(t, err)
}
