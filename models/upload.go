package models

import "io"

// FileUpload is one file received in a multipart request, decoupled from the
// HTTP layer so that services and storages do not depend on net/http types.
type FileUpload struct {
	// OriginalName is the client-supplied file name.
	OriginalName string

	// ContentType is the MIME type reported in the multipart part header.
	ContentType string

	// Content streams the file bytes. The producer of the FileUpload owns
	// the underlying resource and is responsible for closing it.
	Content io.Reader
}
