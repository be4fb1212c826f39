package models

// ModelsToAutoMigrate lists every model gorm.AutoMigrate should manage.
// Production deployments apply internal/migrate's versioned SQL instead;
// this list backs the sqlite-backed unit test path, which has no
// versioned-migration runner of its own (internal/migrate only ships
// Postgres/SQLite migration SQL for the production schema, not a
// reduced test schema).
func ModelsToAutoMigrate() []interface{} {
	return []interface{}{
		&Editor{},
		&EditorOIDCLink{},
		&Editgroup{},
		&Changelog{},

		&ContainerIdent{}, &ContainerRevision{}, &ContainerEdit{},
		&CreatorIdent{}, &CreatorRevision{}, &CreatorEdit{},
		&WorkIdent{}, &WorkRevision{}, &WorkEdit{},
		&ReleaseIdent{}, &ReleaseRevision{}, &ReleaseContrib{}, &ReleaseRef{}, &ReleaseEdit{},
		&FileIdent{}, &FileRevision{}, &FileURL{}, &FileEdit{},
		&FilesetIdent{}, &FilesetRevision{}, &FilesetFile{}, &FilesetEdit{},
		&WebcaptureIdent{}, &WebcaptureRevision{}, &WebcaptureCDX{}, &WebcaptureEdit{},

		&ReleaseFileLink{}, &ReleaseFilesetLink{}, &ReleaseWebcaptureLink{},

		&AuthToken{},
	}
}
