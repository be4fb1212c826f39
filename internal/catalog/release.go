package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/fatcat-project/fatcat/internal/catalogerr"
	"github.com/fatcat-project/fatcat/internal/flags"
	"github.com/fatcat-project/fatcat/pkg/models"
)

// ReleaseView is the fully projected shape returned by GetRelease: the
// live revision plus whichever sub-resources and expand-flag-selected
// related entities the caller asked for, with hide-flag fields dropped.
type ReleaseView struct {
	Ident    *models.ReleaseIdent
	Revision *models.ReleaseRevision

	Contribs []models.ReleaseContrib
	Refs     []models.ReleaseRef

	Container  *models.ContainerRevision
	Creators   []*models.CreatorRevision
	Files      []*models.FileRevision
	Filesets   []*models.FilesetRevision
	Webcaptures []*models.WebcaptureRevision
}

// GetRelease loads the live revision of identID and applies expand/hide
// projection.
func (c *Catalog) GetRelease(ctx context.Context, identID uuid.UUID, expand flags.Expand, hide flags.Hide) (*ReleaseView, error) {
	ident, err := c.Release.Get(ctx, identID)
	if err != nil {
		return nil, err
	}
	if ident.GetRevID() == nil {
		return nil, catalogerr.NotFound("release", identID.String())
	}
	rev, err := c.Release.GetRev(ctx, *ident.GetRevID())
	if err != nil {
		return nil, err
	}

	view := &ReleaseView{Ident: ident, Revision: rev}

	allowed := flags.AllowedExpand("release")
	expand &= allowed
	allowedHide := flags.AllowedHide("release")
	hide &= allowedHide

	if hide.Has(flags.HideAbstracts) {
		rev.Abstract = nil
	}

	if !hide.Has(flags.HideContribs) || expand.Has(flags.ExpandContribs) || expand.Has(flags.ExpandCreator) {
		var contribs []models.ReleaseContrib
		if err := c.Release.DB().WithContext(ctx).
			Order("index asc").
			Find(&contribs, "rev_id = ?", rev.RevID).Error; err != nil {
			return nil, catalogerr.DatabaseError(err)
		}
		if !hide.Has(flags.HideContribs) {
			view.Contribs = contribs
		}
		if expand.Has(flags.ExpandCreator) {
			for _, contrib := range contribs {
				if contrib.CreatorID == nil {
					continue
				}
				creatorIdent, err := c.Creator.Get(ctx, *contrib.CreatorID)
				if err != nil || creatorIdent.GetRevID() == nil {
					continue
				}
				creatorRev, err := c.Creator.GetRev(ctx, *creatorIdent.GetRevID())
				if err != nil {
					continue
				}
				view.Creators = append(view.Creators, creatorRev)
			}
		}
	}

	if !hide.Has(flags.HideRefs) {
		var refs []models.ReleaseRef
		if err := c.Release.DB().WithContext(ctx).
			Order("index asc").
			Find(&refs, "rev_id = ?", rev.RevID).Error; err != nil {
			return nil, catalogerr.DatabaseError(err)
		}
		view.Refs = refs
	}

	if expand.Has(flags.ExpandContainer) && rev.ContainerID != nil {
		containerIdent, err := c.Container.Get(ctx, *rev.ContainerID)
		if err == nil && containerIdent.GetRevID() != nil {
			if containerRev, err := c.Container.GetRev(ctx, *containerIdent.GetRevID()); err == nil {
				view.Container = containerRev
			}
		}
	}

	if expand.Has(flags.ExpandFiles) {
		var links []models.ReleaseFileLink
		if err := c.Release.DB().WithContext(ctx).Find(&links, "release_ident_id = ?", identID).Error; err != nil {
			return nil, catalogerr.DatabaseError(err)
		}
		for _, link := range links {
			fileIdent, err := c.File.Get(ctx, link.FileIdentID)
			if err != nil || fileIdent.GetRevID() == nil {
				continue
			}
			if fileRev, err := c.File.GetRev(ctx, *fileIdent.GetRevID()); err == nil {
				view.Files = append(view.Files, fileRev)
			}
		}
	}

	if expand.Has(flags.ExpandFilesets) {
		var links []models.ReleaseFilesetLink
		if err := c.Release.DB().WithContext(ctx).Find(&links, "release_ident_id = ?", identID).Error; err != nil {
			return nil, catalogerr.DatabaseError(err)
		}
		for _, link := range links {
			filesetIdent, err := c.Fileset.Get(ctx, link.FilesetIdentID)
			if err != nil || filesetIdent.GetRevID() == nil {
				continue
			}
			if filesetRev, err := c.Fileset.GetRev(ctx, *filesetIdent.GetRevID()); err == nil {
				view.Filesets = append(view.Filesets, filesetRev)
			}
		}
	}

	if expand.Has(flags.ExpandWebcaptures) {
		var links []models.ReleaseWebcaptureLink
		if err := c.Release.DB().WithContext(ctx).Find(&links, "release_ident_id = ?", identID).Error; err != nil {
			return nil, catalogerr.DatabaseError(err)
		}
		for _, link := range links {
			wcIdent, err := c.Webcapture.Get(ctx, link.WebcaptureIdentID)
			if err != nil || wcIdent.GetRevID() == nil {
				continue
			}
			if wcRev, err := c.Webcapture.GetRev(ctx, *wcIdent.GetRevID()); err == nil {
				view.Webcaptures = append(view.Webcaptures, wcRev)
			}
		}
	}

	return view, nil
}
