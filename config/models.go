package config

type AppConfig struct {
	Workdir           string `envconfig:"WORK_DIR"`
	Port              string `envconfig:"PORT" default:"2080"`
	DatabaseUri       string `envconfig:"DATABASE_URI" default:"dashhub.db"`
	LogLevel          string `envconfig:"LOG_LEVEL" default:"4"`
	LogToFile         bool   `envconfig:"LOG_TO_FILE" default:"true"`
	LogDBQueries      bool   `envconfig:"LOG_DB_QUERIES" default:"false"`
	BackendURL        string `envconfig:"BACKEND_URL" default:"http://localhost:9090"`
	DashboardPassword string `envconfig:"DASHBOARD_PASSWORD"`
	Preload           bool   `envconfig:"PRELOAD" default:"false"`
	BaseUrl           string `envconfig:"BASE_URL"`
	FrontendUrl       string `envconfig:"FRONTEND_URL"`
}

func (c *AppConfig) GetBaseFrontendUrl() string {
	url := c.FrontendUrl
	if url == "" {
		url = c.BaseUrl
	}
	return url
}

type Config interface {
	Get(key string) (string, error)
	SetIgnore(key string, value string) error
	SetUpdate(key string, value string) error
	GetEnv() *AppConfig
	GetJWTSecret() (string, error)
	GetBackendURL() string
	SetBackendURL(value string) error
	CheckDashboardPassword(password string) bool
	AuthEnabled() bool
	GetDefaultWorkDir() string
}
