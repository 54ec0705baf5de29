package mocks

import (
	"context"

	"github.com/nodaire/dashhub/backend"
	mock "github.com/stretchr/testify/mock"
)

type MockBackendClient struct {
	mock.Mock
}

func NewMockBackendClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockBackendClient {
	m := &MockBackendClient{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *MockBackendClient) FetchConfig(ctx context.Context) (*backend.ConfigResponse, error) {
	ret := _m.Called(ctx)

	var r0 *backend.ConfigResponse
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*backend.ConfigResponse)
	}
	return r0, ret.Error(1)
}

func (_m *MockBackendClient) FetchStatus(ctx context.Context) (*backend.StatusResponse, error) {
	ret := _m.Called(ctx)

	var r0 *backend.StatusResponse
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*backend.StatusResponse)
	}
	return r0, ret.Error(1)
}

func (_m *MockBackendClient) FetchGraph(ctx context.Context) (*backend.GraphResponse, error) {
	ret := _m.Called(ctx)

	var r0 *backend.GraphResponse
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*backend.GraphResponse)
	}
	return r0, ret.Error(1)
}

func (_m *MockBackendClient) FetchLogs(ctx context.Context) (*backend.LogResponse, error) {
	ret := _m.Called(ctx)

	var r0 *backend.LogResponse
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*backend.LogResponse)
	}
	return r0, ret.Error(1)
}
