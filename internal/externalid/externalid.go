// Package externalid validates and canonicalizes the external identifier
// kinds the catalog cross-references: DOI, ORCID, ISSN-L, ISBN-13, PMID,
// PMCID, Core-ID, Wikidata QID, and MD5/SHA-1/SHA-256 content hashes.
//
// Every validator returns the canonical stored form on success, or a
// *MalformedError describing which rule failed.
package externalid

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/iancoleman/strcase"
)

// Kind names an external identifier namespace, used in error messages and
// in the DuplicateExternalId error kind.
type Kind string

const (
	KindDOI         Kind = "doi"
	KindORCID       Kind = "orcid"
	KindISSNL       Kind = "issnl"
	KindISBN13      Kind = "isbn13"
	KindPMID        Kind = "pmid"
	KindPMCID       Kind = "pmcid"
	KindCoreID      Kind = "core_id"
	KindWikidataQID Kind = "wikidata_qid"
	KindMD5         Kind = "md5"
	KindSHA1        Kind = "sha1"
	KindSHA256      Kind = "sha256"
)

// Label renders kind in the delimiter-free title case used in
// human-facing messages (e.g. KindWikidataQID -> "WikidataQid"), rather
// than the snake_case wire form stored in the database.
func (k Kind) Label() string {
	return strcase.ToCamel(string(k))
}

// MalformedError reports why a candidate external ID failed validation.
type MalformedError struct {
	Kind   Kind
	Input  string
	Reason string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed %s %q: %s", e.Kind, e.Input, e.Reason)
}

func malformed(kind Kind, input, reason string) error {
	return &MalformedError{Kind: kind, Input: input, Reason: reason}
}

var (
	pmidRe        = regexp.MustCompile(`^[0-9]{1,9}$`)
	pmcidRe       = regexp.MustCompile(`^PMC[0-9]{1,9}$`)
	coreIDRe      = regexp.MustCompile(`^[0-9]{1,9}$`)
	wikidataQIDRe = regexp.MustCompile(`^Q[1-9][0-9]{0,18}$`)
	orcidShapeRe  = regexp.MustCompile(`^[0-9]{4}-[0-9]{4}-[0-9]{4}-[0-9]{3}[0-9X]$`)
	issnlShapeRe  = regexp.MustCompile(`^[0-9]{4}-[0-9]{3}[0-9X]$`)
	hex32Re       = regexp.MustCompile(`^[0-9a-f]{32}$`)
	hex40Re       = regexp.MustCompile(`^[0-9a-f]{40}$`)
	hex64Re       = regexp.MustCompile(`^[0-9a-f]{64}$`)
)

// ParseDOI validates and lowercases a DOI: ASCII, begins with "10.",
// contains a "/", and has no whitespace.
func ParseDOI(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", malformed(KindDOI, raw, "empty")
	}
	lower := strings.ToLower(s)
	err := validation.Validate(lower,
		validation.Required,
		is.ASCII,
		validation.Match(regexp.MustCompile(`^10\.[^\s]+/[^\s]+$`)),
	)
	if err != nil {
		return "", malformed(KindDOI, raw, err.Error())
	}
	if strings.ContainsAny(lower, " \t\n\r") {
		return "", malformed(KindDOI, raw, "contains whitespace")
	}
	return lower, nil
}

// ParseORCID validates the "####-####-####-####" shape with an ISO 7064
// mod-11-2 checksum over the first 15 digits.
func ParseORCID(raw string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if !orcidShapeRe.MatchString(s) {
		return "", malformed(KindORCID, raw, "does not match ####-####-####-####X shape")
	}
	digits := strings.ReplaceAll(s, "-", "")
	if !mod11_2Valid(digits) {
		return "", malformed(KindORCID, raw, "checksum mismatch")
	}
	return s, nil
}

// mod11_2Valid checks the ISO 7064 mod 11,2 checksum used by ORCID over a
// 16-character digit string (15 payload digits + 1 check digit, 'X'==10).
func mod11_2Valid(digits string) bool {
	if len(digits) != 16 {
		return false
	}
	var total int
	for i := 0; i < 15; i++ {
		d := int(digits[i] - '0')
		if d < 0 || d > 9 {
			return false
		}
		total = (total + d) * 2
	}
	remainder := total % 11
	result := (12 - remainder) % 11
	var check int
	if digits[15] == 'X' {
		check = 10
	} else if digits[15] >= '0' && digits[15] <= '9' {
		check = int(digits[15] - '0')
	} else {
		return false
	}
	return result == check
}

// ParseISSNL validates the "####-###X" shape with a mod-11 checksum.
func ParseISSNL(raw string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if !issnlShapeRe.MatchString(s) {
		return "", malformed(KindISSNL, raw, "does not match ####-###X shape")
	}
	digits := strings.ReplaceAll(s, "-", "")
	sum := 0
	for i := 0; i < 7; i++ {
		sum += int(digits[i]-'0') * (8 - i)
	}
	var check int
	if digits[7] == 'X' {
		check = 10
	} else {
		check = int(digits[7] - '0')
	}
	if (sum+check)%11 != 0 {
		return "", malformed(KindISSNL, raw, "checksum mismatch")
	}
	return s, nil
}

// ParseISBN13 validates 13 digits with a GS1 mod-10 checksum.
func ParseISBN13(raw string) (string, error) {
	s := strings.ReplaceAll(strings.ReplaceAll(strings.TrimSpace(raw), "-", ""), " ", "")
	if len(s) != 13 {
		return "", malformed(KindISBN13, raw, "must be 13 digits")
	}
	sum := 0
	for i := 0; i < 13; i++ {
		d := int(s[i] - '0')
		if d < 0 || d > 9 {
			return "", malformed(KindISBN13, raw, "non-digit character")
		}
		weight := 1
		if i%2 == 1 {
			weight = 3
		}
		sum += d * weight
	}
	if sum%10 != 0 {
		return "", malformed(KindISBN13, raw, "checksum mismatch")
	}
	return s, nil
}

// ParsePMID validates a PubMed ID: 1-9 ASCII digits.
func ParsePMID(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if !pmidRe.MatchString(s) {
		return "", malformed(KindPMID, raw, "must be 1-9 digits")
	}
	return s, nil
}

// ParsePMCID validates a PubMed Central ID: "PMC" followed by 1-9 digits.
func ParsePMCID(raw string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if !pmcidRe.MatchString(s) {
		return "", malformed(KindPMCID, raw, "must match PMC[0-9]+")
	}
	return s, nil
}

// ParseCoreID validates a CORE repository ID: 1-9 ASCII digits.
func ParseCoreID(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if !coreIDRe.MatchString(s) {
		return "", malformed(KindCoreID, raw, "must be 1-9 digits")
	}
	return s, nil
}

// ParseWikidataQID validates a Wikidata entity ID: "Q" followed by a
// non-zero-leading decimal number.
func ParseWikidataQID(raw string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if !wikidataQIDRe.MatchString(s) {
		return "", malformed(KindWikidataQID, raw, "must match Q[1-9][0-9]*")
	}
	if _, err := strconv.ParseUint(s[1:], 10, 64); err != nil {
		return "", malformed(KindWikidataQID, raw, "numeric portion out of range")
	}
	return s, nil
}

// ParseMD5 validates a lowercase 32-character hex digest.
func ParseMD5(raw string) (string, error) {
	return parseHexDigest(KindMD5, raw, hex32Re)
}

// ParseSHA1 validates a lowercase 40-character hex digest.
func ParseSHA1(raw string) (string, error) {
	return parseHexDigest(KindSHA1, raw, hex40Re)
}

// ParseSHA256 validates a lowercase 64-character hex digest.
func ParseSHA256(raw string) (string, error) {
	return parseHexDigest(KindSHA256, raw, hex64Re)
}

func parseHexDigest(kind Kind, raw string, re *regexp.Regexp) (string, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if !re.MatchString(s) {
		return "", malformed(kind, raw, "not a valid lowercase hex digest of the expected length")
	}
	return s, nil
}

// Parse dispatches to the validator for kind.
func Parse(kind Kind, raw string) (string, error) {
	switch kind {
	case KindDOI:
		return ParseDOI(raw)
	case KindORCID:
		return ParseORCID(raw)
	case KindISSNL:
		return ParseISSNL(raw)
	case KindISBN13:
		return ParseISBN13(raw)
	case KindPMID:
		return ParsePMID(raw)
	case KindPMCID:
		return ParsePMCID(raw)
	case KindCoreID:
		return ParseCoreID(raw)
	case KindWikidataQID:
		return ParseWikidataQID(raw)
	case KindMD5:
		return ParseMD5(raw)
	case KindSHA1:
		return ParseSHA1(raw)
	case KindSHA256:
		return ParseSHA256(raw)
	default:
		return "", fmt.Errorf("externalid: unknown kind %q", kind)
	}
}
