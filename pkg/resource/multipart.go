package resource

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/hldiojin/hmes-dashboard-sub001/pkg/transport"
)

// Attachment is binary content submitted alongside a payload's fields.
type Attachment struct {
	// Field is the form field name the server reads the file from.
	Field string

	// Filename is the client-side name sent in the part header.
	Filename string

	// Content is the attachment bytes.
	Content io.Reader
}

// Multipart is a create/update payload carrying binary attachment content.
// It is encoded as multipart/form-data so the server extracts fields and
// attachments separately instead of receiving one structured body.
type Multipart struct {
	Fields      map[string]string
	Attachments []Attachment
}

// encode writes the form and returns it as a transport body.
func (m *Multipart) encode() (*transport.Body, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for field, value := range m.Fields {
		if err := w.WriteField(field, value); err != nil {
			return nil, fmt.Errorf("writing field %q: %w", field, err)
		}
	}
	for _, att := range m.Attachments {
		part, err := w.CreateFormFile(att.Field, att.Filename)
		if err != nil {
			return nil, fmt.Errorf("creating attachment part %q: %w", att.Field, err)
		}
		if _, err := io.Copy(part, att.Content); err != nil {
			return nil, fmt.Errorf("copying attachment %q: %w", att.Field, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalizing multipart body: %w", err)
	}

	return &transport.Body{ContentType: w.FormDataContentType(), Reader: &buf}, nil
}

// encodePayload turns a payload into a transport body: Multipart payloads
// become form-data, everything else is a single JSON document.
func encodePayload(payload any) (*transport.Body, error) {
	if m, ok := payload.(*Multipart); ok {
		return m.encode()
	}
	return transport.JSONBody(payload)
}
