package api

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
)

// Form builds a multipart/form-data body for the mutating field and product
// endpoints, which take scalar fields and an image part in one submission.
type Form struct {
	buf    bytes.Buffer
	mw     *multipart.Writer
	closed bool
}

// NewForm creates an empty multipart form.
func NewForm() *Form {
	f := &Form{}
	f.mw = multipart.NewWriter(&f.buf)
	return f
}

// Field adds a scalar form field.
func (f *Form) Field(name, value string) error {
	return f.mw.WriteField(name, value)
}

// Fields adds several scalar form fields.
func (f *Form) Fields(values map[string]string) error {
	for name, value := range values {
		if err := f.mw.WriteField(name, value); err != nil {
			return err
		}
	}
	return nil
}

// File adds a file part with an explicit content type.
func (f *Form) File(fieldName, filename, contentType string, data []byte) error {
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`,
		escapeQuotes(fieldName), escapeQuotes(filename)))
	header.Set("Content-Type", contentType)

	part, err := f.mw.CreatePart(header)
	if err != nil {
		return err
	}
	_, err = part.Write(data)
	return err
}

// Encode finalizes the form and returns its content type and body.
func (f *Form) Encode() (string, io.Reader, error) {
	if !f.closed {
		if err := f.mw.Close(); err != nil {
			return "", nil, err
		}
		f.closed = true
	}
	return f.mw.FormDataContentType(), &f.buf, nil
}

func escapeQuotes(s string) string {
	return strings.NewReplacer("\\", "\\\\", `"`, "\\\"").Replace(s)
}
