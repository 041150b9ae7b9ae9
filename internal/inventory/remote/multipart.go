package remote

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/autopeer-io/inventory/internal/inventory/core/model"
)

// imagesField is the repeated form field the backend reads uploads from.
const imagesField = "images"

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// encodeImages builds one multi-part body holding every file under the
// repeated "images" field.
func encodeImages(files []model.Blob) (io.Reader, string, error) {
	if len(files) == 0 {
		return nil, "", fmt.Errorf("no files to upload")
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for i, f := range files {
		name := f.Name
		if name == "" {
			name = fmt.Sprintf("image-%d", i+1)
		}
		ct := f.ContentType
		if ct == "" {
			ct = http.DetectContentType(f.Data)
		}

		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			imagesField, quoteEscaper.Replace(name)))
		h.Set("Content-Type", ct)

		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("create part for %s: %w", name, err)
		}
		if _, err := part.Write(f.Data); err != nil {
			return nil, "", fmt.Errorf("write part for %s: %w", name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
