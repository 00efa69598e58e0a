package http

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/Molmash/molmash/internal/service"
)

// maxUploadSize bounds the request body on content writes, image included.
const maxUploadSize = 10 << 20

// contentForm holds write fields for blog and project endpoints. Writes
// accept either a JSON body or a multipart form with an optional image
// file. Nil fields were not submitted.
type contentForm struct {
	Title    *string `json:"title"`
	Subject  *string `json:"subject"`
	Category *string `json:"category"`
	Text     *string `json:"text"`

	image *service.ImageUpload
	file  multipart.File
}

// close releases the uploaded file handle, if any.
func (f *contentForm) close() {
	if f.file != nil {
		_ = f.file.Close()
	}
}

// parseContentForm decodes a content write request. Multipart bodies may
// carry an "image" file part; JSON bodies carry text fields only.
func parseContentForm(w http.ResponseWriter, r *http.Request) (*contentForm, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+(1<<20))

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			return nil, err
		}

		form := &contentForm{
			Title:    multipartValue(r, "title"),
			Subject:  multipartValue(r, "subject"),
			Category: multipartValue(r, "category"),
			Text:     multipartValue(r, "text"),
		}

		file, header, err := r.FormFile("image")
		switch {
		case err == nil:
			form.file = file
			form.image = &service.ImageUpload{Filename: header.Filename, Reader: file}
		case errors.Is(err, http.ErrMissingFile):
			// image is optional
		default:
			return nil, err
		}

		return form, nil
	}

	form := &contentForm{}
	if err := json.NewDecoder(r.Body).Decode(form); err != nil {
		return nil, err
	}
	return form, nil
}

func multipartValue(r *http.Request, key string) *string {
	if vs, ok := r.MultipartForm.Value[key]; ok && len(vs) > 0 {
		return &vs[0]
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
