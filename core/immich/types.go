package immich

// Album is an Immich album with its member assets.
type Album struct {
	ID     string  `json:"id"`
	Name   string  `json:"albumName"`
	Assets []Asset `json:"assets"`
}

// Asset is a single remote media object. Only ID and OriginalPath take part in
// synchronization; the other fields are informational.
type Asset struct {
	ID               string `json:"id"`
	OriginalPath     string `json:"originalPath"`
	OriginalFileName string `json:"originalFileName,omitempty"`
	Type             string `json:"type,omitempty"`
	Checksum         string `json:"checksum,omitempty"`
}
