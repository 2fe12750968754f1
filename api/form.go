package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"

	"github.com/pkg/errors"
)

// Form is a multipart/form-data payload. Fields and file contents are
// retained as bytes so the body can be rebuilt for the retry after a
// token refresh; a half-consumed stream is never resent.
type Form struct {
	fields []formField
	files  []formFile
}

type formField struct {
	name  string
	value string
}

type formFile struct {
	field    string
	filename string
	content  []byte
}

// NewForm creates an empty multipart payload.
func NewForm() *Form {
	return &Form{}
}

// Set appends a plain text field. Field order is preserved on the wire.
func (f *Form) Set(name, value string) *Form {
	f.fields = append(f.fields, formField{name: name, value: value})
	return f
}

// SetJSON appends a field whose value is the JSON encoding of v, used for
// structured fields like opening_hours and contact_info.
func (f *Form) SetJSON(name string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "[Form.SetJSON] encode %q", name)
	}
	f.Set(name, string(b))
	return nil
}

// AddFile appends a file part. content is copied by reference; callers
// must not mutate it afterwards.
func (f *Form) AddFile(field, filename string, content []byte) *Form {
	f.files = append(f.files, formFile{field: field, filename: filename, content: content})
	return f
}

// encoder returns a bodyEncoder that produces a fresh multipart body,
// with a fresh boundary, on every call.
func (f *Form) encoder() bodyEncoder {
	return func() (io.Reader, string, error) {
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)

		for _, field := range f.fields {
			if err := w.WriteField(field.name, field.value); err != nil {
				return nil, "", errors.Wrapf(err, "[Form] write field %q", field.name)
			}
		}
		for _, file := range f.files {
			part, err := w.CreateFormFile(file.field, file.filename)
			if err != nil {
				return nil, "", errors.Wrapf(err, "[Form] create file part %q", file.field)
			}
			if _, err := part.Write(file.content); err != nil {
				return nil, "", errors.Wrapf(err, "[Form] write file part %q", file.field)
			}
		}
		if err := w.Close(); err != nil {
			return nil, "", errors.Wrap(err, "[Form] close multipart writer")
		}

		return &buf, w.FormDataContentType(), nil
	}
}
