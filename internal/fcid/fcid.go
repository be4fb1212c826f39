// Package fcid implements the Fatcat catalog identifier: a 26-character
// Crockford base32 encoding of a 128-bit UUID, and its bijection with
// uuid.UUID.
package fcid

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Ident is a parsed, canonical FCID. The zero value is Nil, the all-zero
// identifier.
type Ident struct {
	id uuid.UUID
}

// Nil is the all-zero identifier.
var Nil = Ident{}

const (
	encodedLen = 26
	alphabet   = "0123456789abcdefghjkmnpqrstvwxyz"
)

var decodeMap [256]byte

func init() {
	for i := range decodeMap {
		decodeMap[i] = 0xff
	}
	for i := 0; i < len(alphabet); i++ {
		decodeMap[alphabet[i]] = byte(i)
		if c := alphabet[i]; c >= 'a' && c <= 'z' {
			decodeMap[c-'a'+'A'] = byte(i)
		}
	}
	// Crockford base32 treats these as visually-ambiguous aliases.
	decodeMap['o'] = decodeMap['0']
	decodeMap['O'] = decodeMap['0']
	decodeMap['i'] = decodeMap['1']
	decodeMap['I'] = decodeMap['1']
	decodeMap['l'] = decodeMap['1']
	decodeMap['L'] = decodeMap['1']
}

// FromUUID wraps an already-parsed UUID as an Ident.
func FromUUID(u uuid.UUID) Ident {
	return Ident{id: u}
}

// New generates a fresh random (v4) identifier.
func New() Ident {
	return Ident{id: uuid.New()}
}

// UUID returns the underlying 128-bit UUID.
func (i Ident) UUID() uuid.UUID {
	return i.id
}

// IsZero reports whether i is the nil identifier.
func (i Ident) IsZero() bool {
	return i.id == uuid.Nil
}

// Equal reports whether two identifiers name the same UUID.
func (i Ident) Equal(o Ident) bool {
	return i.id == o.id
}

// String returns the canonical 26-character lowercase encoding.
func (i Ident) String() string {
	var dst [encodedLen]byte
	encode(&dst, i.id)
	return string(dst[:])
}

// MarshalJSON implements json.Marshaler.
func (i Ident) MarshalJSON() ([]byte, error) {
	return []byte(`"` + i.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (i *Ident) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}

// encode writes the canonical base32 form of u into dst.
//
// A UUID is 128 bits; base32 packs 5 bits per symbol, so 128 bits needs
// ceil(128/5) = 26 symbols with 2 padding bits in the last symbol, which
// must always decode to zero for the encoding to be canonical.
func encode(dst *[encodedLen]byte, u uuid.UUID) {
	var buf [16]byte
	copy(buf[:], u[:])

	// Treat the 16 bytes as a 128-bit big-endian integer and peel off
	// 5-bit groups from the most significant end.
	var acc uint16
	bits := 0
	bi := 0
	di := 0
	for di < encodedLen {
		if bits < 5 {
			if bi < len(buf) {
				acc = acc<<8 | uint16(buf[bi])
				bits += 8
				bi++
			} else {
				acc = acc << 5
				bits += 5
			}
		}
		bits -= 5
		idx := (acc >> uint(bits)) & 0x1f
		dst[di] = alphabet[idx]
		di++
	}
}

// Parse decodes a 26-character FCID string, enforcing canonical form:
// exact length, only valid alphabet characters, and zero padding bits.
func Parse(s string) (Ident, error) {
	if len(s) != encodedLen {
		return Ident{}, malformed(s, "wrong length")
	}

	var acc uint64
	var bits uint
	var out [16]byte
	oi := 0
	for pos := 0; pos < encodedLen; pos++ {
		c := s[pos]
		v := decodeMap[c]
		if v == 0xff {
			return Ident{}, malformed(s, "invalid character")
		}
		acc = acc<<5 | uint64(v)
		bits += 5
		if bits >= 8 {
			bits -= 8
			if oi < 16 {
				out[oi] = byte(acc >> bits)
				oi++
			} else if byte(acc>>bits) != 0 {
				return Ident{}, malformed(s, "non-canonical padding")
			}
		}
	}
	// Remaining bits must be zero padding.
	if bits > 0 && acc&((1<<bits)-1) != 0 {
		return Ident{}, malformed(s, "non-canonical padding")
	}

	u, err := uuid.FromBytes(out[:])
	if err != nil {
		return Ident{}, malformed(s, "invalid uuid bytes")
	}

	ident := Ident{id: u}
	// Re-encode and compare ignoring letter case: this rejects the alias
	// characters (o, i, l) the decode map accepts, so each UUID has one
	// spelling apart from letter case, which is not significant.
	if !strings.EqualFold(ident.String(), s) {
		return Ident{}, malformed(s, "not canonical")
	}
	return ident, nil
}

// MustParse is Parse that panics on error; intended for constants in tests.
func MustParse(s string) Ident {
	id, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return id
}

func malformed(s, reason string) error {
	return &ParseError{Input: s, Reason: reason}
}

// ParseError reports why a candidate FCID string failed to parse.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed fatcat id %q: %s", e.Input, e.Reason)
}
