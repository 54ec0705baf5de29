package api

import (
	"github.com/nodaire/dashhub/config"
	"github.com/nodaire/dashhub/logger"
	"github.com/nodaire/dashhub/pkg/version"
	"github.com/nodaire/dashhub/state"
)

type api struct {
	cfg          config.Config
	stateManager *state.Manager
}

func NewAPI(cfg config.Config, stateManager *state.Manager) *api {
	return &api{
		cfg:          cfg,
		stateManager: stateManager,
	}
}

func (api *api) GetInfo() *InfoResponse {
	return &InfoResponse{
		Version:     version.Tag,
		BackendUrl:  api.cfg.GetBackendURL(),
		AuthEnabled: api.cfg.AuthEnabled(),
	}
}

func (api *api) GetStore() *StoreResponse {
	store := api.stateManager.Snapshot()
	return &StoreResponse{
		Config: toSliceResponse(store.Slice(state.SliceConfig)),
		Status: toSliceResponse(store.Slice(state.SliceStatus)),
		Graph:  toSliceResponse(store.Slice(state.SliceGraph)),
		Logs:   toSliceResponse(store.Slice(state.SliceLogs)),
	}
}

func (api *api) GetSlice(sliceName string) (*SliceResponse, error) {
	name, err := state.ParseSliceName(sliceName)
	if err != nil {
		return nil, err
	}
	sliceResponse := toSliceResponse(api.stateManager.Snapshot().Slice(name))
	return &sliceResponse, nil
}

func (api *api) LoadSlice(sliceName string, force bool) error {
	name, err := state.ParseSliceName(sliceName)
	if err != nil {
		return err
	}
	return api.stateManager.Load(name, force)
}

func (api *api) SetBackendURL(updateBackendURLRequest *UpdateBackendURLRequest) error {
	err := api.cfg.SetBackendURL(updateBackendURLRequest.Url)
	if err != nil {
		return err
	}
	logger.Logger.Info().
		Str("url", updateBackendURLRequest.Url).
		Msg("Updated backend URL")
	return nil
}

func toSliceResponse(slice state.Slice) SliceResponse {
	sliceResponse := SliceResponse{
		Data:    slice.Data,
		Loading: slice.Loading,
	}
	if slice.Err != nil {
		sliceResponse.Error = slice.Err.Error()
	}
	return sliceResponse
}
