package mocks

import (
	"github.com/nodaire/dashhub/backend"
	"github.com/nodaire/dashhub/config"
	"github.com/nodaire/dashhub/events"
	"github.com/nodaire/dashhub/state"
	mock "github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockService struct {
	mock.Mock
}

func NewMockService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockService {
	m := &MockService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *MockService) GetDB() *gorm.DB {
	ret := _m.Called()

	var r0 *gorm.DB
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*gorm.DB)
	}
	return r0
}

func (_m *MockService) GetConfig() config.Config {
	ret := _m.Called()

	var r0 config.Config
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(config.Config)
	}
	return r0
}

func (_m *MockService) GetEventPublisher() events.EventPublisher {
	ret := _m.Called()

	var r0 events.EventPublisher
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(events.EventPublisher)
	}
	return r0
}

func (_m *MockService) GetBackendClient() backend.Client {
	ret := _m.Called()

	var r0 backend.Client
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(backend.Client)
	}
	return r0
}

func (_m *MockService) GetStateManager() *state.Manager {
	ret := _m.Called()

	var r0 *state.Manager
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*state.Manager)
	}
	return r0
}

func (_m *MockService) Shutdown() {
	_m.Called()
}
