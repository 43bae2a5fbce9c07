package schema

// AssetRef is a weak reference to a file in the asset store. The stored
// filename is the whole reference; there is no manifest and no ownership.
// The referenced file may legitimately be gone, in which case the UI shows a
// placeholder rather than failing the document.
type AssetRef struct {
	StoredFilename string `json:"stored_filename"`
	OriginalName   string `json:"original_name,omitempty"`
}

// IsZero reports whether the reference points at nothing.
func (r AssetRef) IsZero() bool {
	return r.StoredFilename == ""
}
