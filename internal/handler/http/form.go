package http

import (
	"io"
	"net/http"

	"github.com/inkfusion/notes-server/models"
)

const (
	// FilesFormField is the multipart field attachment files arrive under.
	FilesFormField = "files"

	// MaxFilesPerRequest caps how many attachment files a single note
	// request may carry.
	MaxFilesPerRequest = 10

	// maxUploadMemory bounds how much of a multipart body is held in memory
	// while parsing; the rest spills to temporary files.
	maxUploadMemory = 32 << 20
)

// noteForm holds the parsed fields of a multipart note request. Text fields
// are pointers so that handlers can distinguish "field absent" from "field
// set to the empty string".
type noteForm struct {
	title       *string
	description *string
	tag         *string
	files       []models.FileUpload

	closers []io.Closer
}

// parseNoteForm reads the multipart body of an add-note or update-note
// request. The caller must Close the returned form to release the opened
// file parts.
func parseNoteForm(r *http.Request) (*noteForm, error) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return nil, err
	}

	form := &noteForm{
		title:       formValue(r, "title"),
		description: formValue(r, "description"),
		tag:         formValue(r, "tag"),
	}

	headers := r.MultipartForm.File[FilesFormField]
	if len(headers) > MaxFilesPerRequest {
		return nil, ErrTooManyFiles
	}

	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			form.Close()
			return nil, err
		}
		form.closers = append(form.closers, file)
		form.files = append(form.files, models.FileUpload{
			OriginalName: header.Filename,
			ContentType:  header.Header.Get("Content-Type"),
			Content:      file,
		})
	}

	return form, nil
}

func (f *noteForm) Close() {
	for _, closer := range f.closers {
		_ = closer.Close()
	}
}

func formValue(r *http.Request, field string) *string {
	values, ok := r.MultipartForm.Value[field]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}
