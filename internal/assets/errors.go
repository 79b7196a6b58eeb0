package assets

import "errors"

// Sentinel errors for asset loading.
var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrTemplateParse    = errors.New("failed to parse template")
	ErrInvalidAssetName = errors.New("invalid asset name")
	ErrInvalidBasePath  = errors.New("invalid base path")

	// ErrAssetRead covers I/O failures other than a missing file, including
	// symlinks that point outside the custom asset directory.
	ErrAssetRead = errors.New("failed to read asset")
)
