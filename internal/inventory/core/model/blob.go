package model

// Blob is one binary asset (an image file) waiting to be uploaded.
type Blob struct {
	// Name is the file name sent in the multi-part form.
	Name string

	// ContentType is the MIME type; detected from Data when empty.
	ContentType string

	Data []byte
}
