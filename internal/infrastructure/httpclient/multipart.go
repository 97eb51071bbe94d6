package httpclient

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Multipart is a multipart/form-data request body. Fields keep their order.
type Multipart struct {
	fields []field
	file   *filePart
}

type field struct {
	name, value string
}

type filePart struct {
	field    string
	filename string
	content  io.Reader
}

// NewMultipart returns an empty form.
func NewMultipart() *Multipart { return &Multipart{} }

// Field appends a text field.
func (m *Multipart) Field(name, value string) *Multipart {
	m.fields = append(m.fields, field{name, value})
	return m
}

// File attaches a single file part. A nil content is ignored.
func (m *Multipart) File(fieldName, filename string, content io.Reader) *Multipart {
	if content == nil {
		return m
	}
	m.file = &filePart{field: fieldName, filename: filename, content: content}
	return m
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// Encode writes the form and returns the body with its content type, which
// carries the writer's boundary. The file part's MIME type is sniffed from
// its content.
func (m *Multipart) Encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, f := range m.fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, "", fmt.Errorf("multipart field %s: %w", f.name, err)
		}
	}

	if m.file != nil {
		data, err := io.ReadAll(m.file.content)
		if err != nil {
			return nil, "", fmt.Errorf("multipart read %s: %w", m.file.filename, err)
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			quoteEscaper.Replace(m.file.field), quoteEscaper.Replace(m.file.filename)))
		h.Set("Content-Type", mimetype.Detect(data).String())
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("multipart part %s: %w", m.file.field, err)
		}
		if _, err := part.Write(data); err != nil {
			return nil, "", fmt.Errorf("multipart write %s: %w", m.file.field, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("multipart close: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
