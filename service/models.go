package service

import (
	"github.com/nodaire/dashhub/backend"
	"github.com/nodaire/dashhub/config"
	"github.com/nodaire/dashhub/events"
	"github.com/nodaire/dashhub/state"
	"gorm.io/gorm"
)

type Service interface {
	GetDB() *gorm.DB
	GetConfig() config.Config
	GetEventPublisher() events.EventPublisher
	GetBackendClient() backend.Client
	GetStateManager() *state.Manager
	Shutdown()
}
