package http

import (
	"bytes"
	"io"
	"mime/multipart"
)

// Part is a single multipart/form-data entry. Parts with a Filename are
// written as file parts, the rest as plain form fields.
type Part struct {
	Name     string
	Filename string
	Content  io.Reader
}

// BuildMultipartBody creates a multipart form data body from parts
func BuildMultipartBody(parts []Part) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for _, p := range parts {
		var (
			w   io.Writer
			err error
		)
		if p.Filename != "" {
			w, err = writer.CreateFormFile(p.Name, p.Filename)
		} else {
			w, err = writer.CreateFormField(p.Name)
		}
		if err != nil {
			return nil, "", err
		}

		if p.Content == nil {
			continue
		}
		if _, err := io.Copy(w, p.Content); err != nil {
			return nil, "", err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", err
	}

	return body, writer.FormDataContentType(), nil
}
