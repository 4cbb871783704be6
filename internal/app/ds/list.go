package ds

// ListMetadata is the metadata half of every list response.
type ListMetadata struct {
	Count int64 `json:"count"`
}

// ListResponse is the envelope of every paginated list endpoint:
// { "data": [...], "metadata": { "count": N } }.
type ListResponse struct {
	Data     interface{}  `json:"data"`
	Metadata ListMetadata `json:"metadata"`
}

// ActionResponse is the envelope of every mutation endpoint.
type ActionResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

// UploadResult describes a stored upload.
type UploadResult struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Format   string `json:"format"`
	Bytes    int64  `json:"bytes"`
}
