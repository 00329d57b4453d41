package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringArrayScanJSON(t *testing.T) {
	var a StringArray
	require.NoError(t, a.Scan(`["Go","React"]`))
	assert.Equal(t, StringArray{"Go", "React"}, a)

	require.NoError(t, a.Scan([]byte(`["TypeScript"]`)))
	assert.Equal(t, StringArray{"TypeScript"}, a)
}

func TestStringArrayScanLegacyComma(t *testing.T) {
	var a StringArray
	require.NoError(t, a.Scan("Go, React , ,Vue"))
	assert.Equal(t, StringArray{"Go", "React", "Vue"}, a)

	require.NoError(t, a.Scan(`"Go,React"`))
	assert.Equal(t, StringArray{"Go", "React"}, a)
}

func TestStringArrayScanEmpty(t *testing.T) {
	var a StringArray
	require.NoError(t, a.Scan(nil))
	assert.Empty(t, a)

	require.NoError(t, a.Scan(""))
	assert.Empty(t, a)

	require.NoError(t, a.Scan("null"))
	assert.Empty(t, a)
}

func TestStringArrayValue(t *testing.T) {
	v, err := StringArray{"Go", "React"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["Go","React"]`, v)

	v, err = StringArray(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}

func TestSplitCommaList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, SplitCommaList(" a , b "))
	assert.Empty(t, SplitCommaList(" , ,"))
	assert.Empty(t, SplitCommaList(""))
}
