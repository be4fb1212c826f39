package flags

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExpandRoundTrip(t *testing.T) {
	e, err := ParseExpand("files,container,refs")
	require.NoError(t, err)
	assert.True(t, e.Has(ExpandFiles))
	assert.True(t, e.Has(ExpandContainer))
	assert.True(t, e.Has(ExpandRefs))
	assert.False(t, e.Has(ExpandCreator))

	again, err := ParseExpand(e.String())
	require.NoError(t, err)
	assert.Equal(t, e, again)
}

func TestParseExpandEmpty(t *testing.T) {
	e, err := ParseExpand("")
	require.NoError(t, err)
	assert.Equal(t, Expand(0), e)
	assert.Equal(t, "", e.String())
}

func TestParseExpandUnknownToken(t *testing.T) {
	_, err := ParseExpand("bogus")
	require.Error(t, err)
}

func TestParseHideRoundTrip(t *testing.T) {
	h, err := ParseHide("abstracts,contribs")
	require.NoError(t, err)
	assert.True(t, h.Has(HideAbstracts))
	assert.True(t, h.Has(HideContribs))
	assert.False(t, h.Has(HideRefs))
}

func TestParseHideUnknownToken(t *testing.T) {
	_, err := ParseHide("nonsense")
	require.Error(t, err)
}

func TestAllowedExpandPerEntityType(t *testing.T) {
	assert.True(t, AllowedExpand("release").Has(ExpandFiles))
	assert.False(t, AllowedExpand("container").Has(ExpandFiles))
	assert.Equal(t, ExpandReleases, AllowedExpand("work"))
	assert.Equal(t, Expand(0), AllowedExpand("unknown_type"))
}

func TestAllowedHidePerEntityType(t *testing.T) {
	assert.True(t, AllowedHide("release").Has(HideAbstracts))
	assert.Equal(t, Hide(0), AllowedHide("creator"))
}
