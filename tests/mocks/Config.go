package mocks

import (
	"github.com/nodaire/dashhub/config"
	mock "github.com/stretchr/testify/mock"
)

type MockConfig struct {
	mock.Mock
}

func NewMockConfig(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockConfig {
	m := &MockConfig{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *MockConfig) Get(key string) (string, error) {
	ret := _m.Called(key)
	return ret.String(0), ret.Error(1)
}

func (_m *MockConfig) SetIgnore(key string, value string) error {
	ret := _m.Called(key, value)
	return ret.Error(0)
}

func (_m *MockConfig) SetUpdate(key string, value string) error {
	ret := _m.Called(key, value)
	return ret.Error(0)
}

func (_m *MockConfig) GetEnv() *config.AppConfig {
	ret := _m.Called()

	var r0 *config.AppConfig
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*config.AppConfig)
	}
	return r0
}

func (_m *MockConfig) GetJWTSecret() (string, error) {
	ret := _m.Called()
	return ret.String(0), ret.Error(1)
}

func (_m *MockConfig) GetBackendURL() string {
	ret := _m.Called()
	return ret.String(0)
}

func (_m *MockConfig) SetBackendURL(value string) error {
	ret := _m.Called(value)
	return ret.Error(0)
}

func (_m *MockConfig) CheckDashboardPassword(password string) bool {
	ret := _m.Called(password)
	return ret.Bool(0)
}

func (_m *MockConfig) AuthEnabled() bool {
	ret := _m.Called()
	return ret.Bool(0)
}

func (_m *MockConfig) GetDefaultWorkDir() string {
	ret := _m.Called()
	return ret.String(0)
}
