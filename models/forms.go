// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "io"

// CreateGameForm carries the admin game-creation payload. It is sent as
// multipart form data because the cover art is a file upload.
type CreateGameForm struct {
	Name        string
	ReleaseYear int
	Description string
	Publisher   string
	GenreIDs    []int64
	PlatformIDs []int64

	CoverArtFilename string
	CoverArt         io.Reader
}
