package vectorize

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
)

// BodyContentType builds the upstream multipart form. The image goes in
// as a binary part with its declared filename and media type, or as a
// plain "image.url" text field. Mode and output format always ride along.
func (r *Request) BodyContentType() (io.Reader, string, error) {
	payload := &bytes.Buffer{}
	writer := multipart.NewWriter(payload)

	if len(r.ImageBytes) > 0 {
		fileName := r.FileName
		if fileName == "" {
			fileName = "image"
		}
		mimeType := r.MimeType
		if mimeType == "" {
			mimeType = http.DetectContentType(r.ImageBytes)
		}
		header := make(textproto.MIMEHeader)
		header.Set("Content-Type", mimeType)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, fileName))
		filePart, err := writer.CreatePart(header)
		if err != nil {
			return nil, "", err
		}
		_, err = filePart.Write(r.ImageBytes)
		if err != nil {
			return nil, "", err
		}
	} else {
		err := writer.WriteField("image.url", r.ImageURL)
		if err != nil {
			return nil, "", err
		}
	}
	_ = writer.WriteField("mode", r.Mode.String())
	_ = writer.WriteField("output.file_format", r.OutputFormat.String())
	err := writer.Close()
	if err != nil {
		return nil, "", err
	}
	return payload, writer.FormDataContentType(), nil
}
