package api

type API interface {
	GetInfo() *InfoResponse
	GetStore() *StoreResponse
	GetSlice(sliceName string) (*SliceResponse, error)
	LoadSlice(sliceName string, force bool) error
	SetBackendURL(updateBackendURLRequest *UpdateBackendURLRequest) error
}

type InfoResponse struct {
	Version     string `json:"version"`
	BackendUrl  string `json:"backendUrl"`
	AuthEnabled bool   `json:"authEnabled"`
}

// SliceResponse is the wire form of one store slice. Data is the typed
// payload as fetched from the backend, or null when never loaded.
type SliceResponse struct {
	Data    any    `json:"data"`
	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`
}

type StoreResponse struct {
	Config SliceResponse `json:"config"`
	Status SliceResponse `json:"status"`
	Graph  SliceResponse `json:"graph"`
	Logs   SliceResponse `json:"logs"`
}

type UpdateBackendURLRequest struct {
	Url string `json:"url"`
}
