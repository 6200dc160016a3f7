package models

// Image is the stored-resource descriptor returned by the media host after an
// upload. URL is used to display the resource, PublicID to delete it later.
//
// JSON keys follow the media host's upload response so that clients written
// against the legacy API keep working.
type Image struct {
	// URL is the public (https) address of the stored resource.
	URL string `json:"secure_url"`

	// PublicID is the host-side identifier, including the folder prefix
	// (e.g. "vinted/offers/<offerID>/abc123").
	PublicID string `json:"public_id"`
}

// IsZero reports whether the descriptor references no stored resource.
func (i *Image) IsZero() bool {
	return i == nil || i.PublicID == ""
}

// ImageFile is a raw image received from a client, ready to be handed to
// the media uploader.
type ImageFile struct {
	// Filename is the client-side file name, used only as a hint for the
	// stored object's extension and content type.
	Filename string

	// ContentType is the MIME type declared by the client.
	ContentType string

	// Data holds the raw file bytes.
	Data []byte
}

// IsEmpty reports whether no file content was supplied.
func (f *ImageFile) IsEmpty() bool {
	return f == nil || len(f.Data) == 0
}
