package externalid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDOI(t *testing.T) {
	got, err := ParseDOI("10.1234/ABC.def")
	require.NoError(t, err)
	assert.Equal(t, "10.1234/abc.def", got)

	_, err = ParseDOI("not-a-doi")
	require.Error(t, err)

	_, err = ParseDOI("")
	require.Error(t, err)
}

func TestParseORCID(t *testing.T) {
	got, err := ParseORCID("0000-0002-1825-0097")
	require.NoError(t, err)
	assert.Equal(t, "0000-0002-1825-0097", got)

	_, err = ParseORCID("0000-0002-1825-0098")
	require.Error(t, err, "wrong checksum digit")

	_, err = ParseORCID("not-an-orcid")
	require.Error(t, err)
}

func TestParseISSNL(t *testing.T) {
	got, err := ParseISSNL("0378-5955")
	require.NoError(t, err)
	assert.Equal(t, "0378-5955", got)

	_, err = ParseISSNL("0378-5956")
	require.Error(t, err, "wrong checksum digit")
}

func TestParseISBN13(t *testing.T) {
	got, err := ParseISBN13("978-0-306-40615-7")
	require.NoError(t, err)
	assert.Equal(t, "9780306406157", got)

	_, err = ParseISBN13("9780306406158")
	require.Error(t, err, "wrong checksum digit")

	_, err = ParseISBN13("12345")
	require.Error(t, err, "wrong length")
}

func TestParsePMID(t *testing.T) {
	got, err := ParsePMID(" 12345678 ")
	require.NoError(t, err)
	assert.Equal(t, "12345678", got)

	_, err = ParsePMID("abc")
	require.Error(t, err)
}

func TestParsePMCID(t *testing.T) {
	got, err := ParsePMCID("pmc1234567")
	require.NoError(t, err)
	assert.Equal(t, "PMC1234567", got)

	_, err = ParsePMCID("1234567")
	require.Error(t, err)
}

func TestParseWikidataQID(t *testing.T) {
	got, err := ParseWikidataQID("q42")
	require.NoError(t, err)
	assert.Equal(t, "Q42", got)

	_, err = ParseWikidataQID("Q0")
	require.Error(t, err, "leading zero not allowed")
}

func TestParseHexDigests(t *testing.T) {
	md5 := "d41d8cd98f00b204e9800998ecf8427e"
	got, err := ParseMD5(md5)
	require.NoError(t, err)
	assert.Equal(t, md5, got)

	_, err = ParseMD5("not-hex")
	require.Error(t, err)

	sha1 := "da39a3ee5e6b4b0d3255bfef95601890afd80709"
	got, err = ParseSHA1(sha1)
	require.NoError(t, err)
	assert.Equal(t, sha1, got)

	sha256 := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	got, err = ParseSHA256(sha256)
	require.NoError(t, err)
	assert.Equal(t, sha256, got)
}

func TestParseDispatchesByKind(t *testing.T) {
	got, err := Parse(KindDOI, "10.1234/abc")
	require.NoError(t, err)
	assert.Equal(t, "10.1234/abc", got)

	_, err = Parse(KindPMID, "xyz")
	require.Error(t, err)
}

func TestKindLabel(t *testing.T) {
	assert.Equal(t, "WikidataQid", KindWikidataQID.Label())
	assert.Equal(t, "Doi", KindDOI.Label())
}
