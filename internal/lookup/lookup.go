// Package lookup resolves an external identifier to a live entity
// revision: exactly one identifier parameter must be supplied, and the
// match is followed through one redirect hop. Resolve takes no expand/hide
// flags; it returns only the live ident and revision ids.
package lookup

import (
	"context"

	"github.com/google/uuid"

	"github.com/fatcat-project/fatcat/internal/catalogerr"
	"github.com/fatcat-project/fatcat/internal/externalid"
)

// Params is a sparse set of identifier query parameters; exactly one
// field may be non-empty per call.
type Params map[externalid.Kind]string

// AllowedKinds lists the identifier kinds each entity type's lookup
// endpoint accepts.
var AllowedKinds = map[string][]externalid.Kind{
	"release":   {externalid.KindDOI, externalid.KindWikidataQID, externalid.KindISBN13, externalid.KindPMID, externalid.KindPMCID, externalid.KindCoreID},
	"file":      {externalid.KindMD5, externalid.KindSHA1, externalid.KindSHA256},
	"container": {externalid.KindISSNL, externalid.KindWikidataQID},
	"creator":   {externalid.KindORCID, externalid.KindWikidataQID},
}

// Resolver is satisfied by entitystore.Store[...] for one entity type:
// enough surface for lookup to find the matching live ident and follow a
// redirect hop, without lookup needing that store's full generic type
// parameters.
type Resolver interface {
	FindByExternalID(ctx context.Context, kind, value string) (identID uuid.UUID, err error)
	ResolveLive(ctx context.Context, identID uuid.UUID) (liveIdentID uuid.UUID, revID uuid.UUID, err error)
}

// Resolve validates that exactly one parameter in params is set, that its
// kind is allowed for entityType, and dispatches to r to find the live
// revision, following one redirect hop transparently.
func Resolve(ctx context.Context, r Resolver, entityType string, params Params) (identID uuid.UUID, revID uuid.UUID, err error) {
	allowed := AllowedKinds[entityType]

	var kind externalid.Kind
	var value string
	set := 0
	for k, v := range params {
		if v == "" {
			continue
		}
		set++
		kind, value = k, v
	}
	if set == 0 {
		return uuid.Nil, uuid.Nil, catalogerr.OtherBadRequest("missing external identifier query parameter")
	}
	if set > 1 {
		return uuid.Nil, uuid.Nil, catalogerr.OtherBadRequest("multiple external identifier query parameters supplied")
	}
	if !kindAllowed(allowed, kind) {
		return uuid.Nil, uuid.Nil, catalogerr.OtherBadRequest(kind.Label() + " is not a supported identifier for this entity type")
	}

	canonical, err := externalid.Parse(kind, value)
	if err != nil {
		return uuid.Nil, uuid.Nil, catalogerr.MalformedExternalID(err)
	}

	matchIdentID, err := r.FindByExternalID(ctx, string(kind), canonical)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}

	liveIdentID, liveRevID, err := r.ResolveLive(ctx, matchIdentID)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return liveIdentID, liveRevID, nil
}

func kindAllowed(allowed []externalid.Kind, kind externalid.Kind) bool {
	for _, k := range allowed {
		if k == kind {
			return true
		}
	}
	return false
}
