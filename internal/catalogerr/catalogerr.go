// Package catalogerr defines the single tagged error type the rest of the
// core returns. Every failure mode the core can produce is a Kind; callers
// at the HTTP boundary classify an error exactly once via As/Kind, never by
// string-matching a message.
package catalogerr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind tags the category of failure, independent of its message.
type Kind string

const (
	KindNotFound              Kind = "not_found"
	KindMalformedFatcatID     Kind = "malformed_fatcat_id"
	KindMalformedExternalID   Kind = "malformed_external_id"
	KindMalformedFlag         Kind = "malformed_flag"
	KindMalformedChecksum     Kind = "malformed_checksum"
	KindEditgroupAccepted     Kind = "editgroup_already_accepted"
	KindEditConflict          Kind = "edit_conflict"
	KindDuplicateExternalID   Kind = "duplicate_external_id"
	KindBadRedirect           Kind = "bad_redirect"
	KindInvalidCredentials    Kind = "invalid_credentials"
	KindInsufficientPrivilege Kind = "insufficient_privileges"
	KindUsernameTaken         Kind = "username_taken"
	KindOtherBadRequest       Kind = "other_bad_request"
	KindDatabaseError         Kind = "database_error"
	KindInternalError         Kind = "internal_error"
)

// httpStatus maps each Kind to the HTTP status category it belongs to;
// the mapping itself is consumed by the (out-of-core) transport boundary,
// not by any code in this repository.
var httpStatus = map[Kind]int{
	KindNotFound:              http.StatusNotFound,
	KindMalformedFatcatID:     http.StatusBadRequest,
	KindMalformedExternalID:   http.StatusBadRequest,
	KindMalformedFlag:         http.StatusBadRequest,
	KindMalformedChecksum:     http.StatusBadRequest,
	KindEditgroupAccepted:     http.StatusBadRequest,
	KindEditConflict:          http.StatusConflict,
	KindDuplicateExternalID:   http.StatusBadRequest,
	KindBadRedirect:           http.StatusBadRequest,
	KindInvalidCredentials:    http.StatusForbidden,
	KindInsufficientPrivilege: http.StatusForbidden,
	KindUsernameTaken:         http.StatusBadRequest,
	KindOtherBadRequest:       http.StatusBadRequest,
	KindDatabaseError:         http.StatusInternalServerError,
	KindInternalError:         http.StatusInternalServerError,
}

// Error is the tagged error variant every core operation returns.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the status category for e's Kind.
func (e *Error) HTTPStatus() int {
	if s, ok := httpStatus[e.Kind]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// Reportable reports whether e should be sent to the telemetry sink: only
// DatabaseError and InternalError are logged/reported.
func (e *Error) Reportable() bool {
	return e.Kind == KindDatabaseError || e.Kind == KindInternalError
}

func new_(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

// NotFound reports a missing entity/edit/editgroup/identifier of the named
// resource type.
func NotFound(resourceType, id string) *Error {
	return new_(KindNotFound, fmt.Sprintf("%s %q not found", resourceType, id), nil)
}

// MalformedFatcatID reports an FCID parse failure.
func MalformedFatcatID(cause error) *Error {
	return new_(KindMalformedFatcatID, "malformed fatcat identifier", cause)
}

// MalformedExternalID reports an external-identifier validation failure.
func MalformedExternalID(cause error) *Error {
	return new_(KindMalformedExternalID, "malformed external identifier", cause)
}

// MalformedFlag reports an unrecognized expand/hide flag token.
func MalformedFlag(token string) *Error {
	return new_(KindMalformedFlag, fmt.Sprintf("unrecognized flag %q", token), nil)
}

// MalformedChecksum reports an identifier checksum failure.
func MalformedChecksum(cause error) *Error {
	return new_(KindMalformedChecksum, "identifier checksum failed", cause)
}

// EditgroupAlreadyAccepted reports a mutation attempted against a closed
// editgroup.
func EditgroupAlreadyAccepted(editgroupID string) *Error {
	return new_(KindEditgroupAccepted, fmt.Sprintf("editgroup %q already accepted", editgroupID), nil)
}

// EditConflict reports an optimistic-concurrency violation on ident.
func EditConflict(ident string) *Error {
	return new_(KindEditConflict, fmt.Sprintf("edit conflict on ident %q", ident), nil)
}

// DuplicateExternalID reports that an edit would create a duplicate live
// external identifier.
func DuplicateExternalID(kind, value string) *Error {
	return new_(KindDuplicateExternalID, fmt.Sprintf("duplicate %s %q", kind, value), nil)
}

// BadRedirect reports a redirect edit whose target is not live or is
// itself a redirect.
func BadRedirect(targetIdent string) *Error {
	return new_(KindBadRedirect, fmt.Sprintf("redirect target %q is not a valid redirect destination", targetIdent), nil)
}

// InvalidCredentials reports a bad, expired, or revoked auth token.
func InvalidCredentials(reason string) *Error {
	return new_(KindInvalidCredentials, reason, nil)
}

// InsufficientPrivileges reports a role or ownership gate failure.
func InsufficientPrivileges(required string) *Error {
	return new_(KindInsufficientPrivilege, fmt.Sprintf("requires role %s or ownership", required), nil)
}

// UsernameTaken reports an OIDC-driven username collision that could not
// be resolved by uniquification.
func UsernameTaken(username string) *Error {
	return new_(KindUsernameTaken, fmt.Sprintf("username %q is taken", username), nil)
}

// OtherBadRequest is the catch-all validation failure kind.
func OtherBadRequest(msg string) *Error {
	return new_(KindOtherBadRequest, msg, nil)
}

// DatabaseError wraps an underlying store failure.
func DatabaseError(cause error) *Error {
	return new_(KindDatabaseError, "database error", cause)
}

// InternalError wraps a bug or invariant violation.
func InternalError(msg string, cause error) *Error {
	return new_(KindInternalError, msg, cause)
}

// Is reports whether err (or any error it wraps) is a catalogerr.Error of
// the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
