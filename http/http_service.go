package http

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/nodaire/dashhub/api"
	"github.com/nodaire/dashhub/config"
	"github.com/nodaire/dashhub/constants"
	"github.com/nodaire/dashhub/events"
	"github.com/nodaire/dashhub/logger"
	"github.com/nodaire/dashhub/service"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

type authTokenResponse struct {
	Token string `json:"token"`
}

type loginRequest struct {
	Password string `json:"password"`
}

type jwtCustomClaims struct {
	jwt.RegisteredClaims
}

type HttpService struct {
	api            api.API
	cfg            config.Config
	eventPublisher events.EventPublisher
}

func NewHttpService(svc service.Service, eventPublisher events.EventPublisher) *HttpService {
	return &HttpService{
		api:            api.NewAPI(svc.GetConfig(), svc.GetStateManager()),
		cfg:            svc.GetConfig(),
		eventPublisher: eventPublisher,
	}
}

func (httpSvc *HttpService) RegisterSharedRoutes(e *echo.Echo) {
	e.HideBanner = true

	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		ReferrerPolicy:     "no-referrer",
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogRemoteIP:  true,
		LogUserAgent: true,
		LogHost:      true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, values middleware.RequestLoggerValues) error {
			logger.HttpLogger.Info().
				Str("uri", values.URI).
				Int("status", values.Status).
				Str("remote_ip", values.RemoteIP).
				Str("user_agent", values.UserAgent).
				Str("host", values.Host).
				Str("request_id", values.RequestID).
				Msg("handled API request")
			return nil
		},
	}))

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	e.GET("/api/info", httpSvc.infoHandler)
	e.GET("/ws", httpSvc.websocketHandler)

	// allow one login attempt per second
	loginRateLimiter := middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(1))
	e.POST("/api/auth/login", httpSvc.loginHandler, loginRateLimiter)

	apiGroup := e.Group("/api")
	if httpSvc.cfg.AuthEnabled() {
		jwtConfig := echojwt.Config{
			NewClaimsFunc: func(c echo.Context) jwt.Claims {
				return new(jwtCustomClaims)
			},
			KeyFunc: func(token *jwt.Token) (interface{}, error) {
				secret, err := httpSvc.cfg.GetJWTSecret()
				if err != nil {
					return nil, err
				}
				return []byte(secret), nil
			},
			TokenLookup: "header:Authorization:Bearer ,query:token",
		}
		apiGroup.Use(echojwt.WithConfig(jwtConfig))
	}

	apiGroup.GET("/store", httpSvc.storeHandler)
	apiGroup.GET("/store/:slice", httpSvc.sliceHandler)
	apiGroup.POST("/store/:slice/load", httpSvc.loadSliceHandler)
	apiGroup.POST("/settings/backend-url", httpSvc.updateBackendURLHandler)
}

func (httpSvc *HttpService) infoHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, httpSvc.api.GetInfo())
}

func (httpSvc *HttpService) loginHandler(c echo.Context) error {
	var loginRequest loginRequest
	if err := c.Bind(&loginRequest); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: fmt.Sprintf("Bad request: %s", err.Error()),
		})
	}

	if !httpSvc.cfg.AuthEnabled() {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Authentication is disabled",
		})
	}

	if !httpSvc.cfg.CheckDashboardPassword(loginRequest.Password) {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "Invalid password",
		})
	}

	token, err := httpSvc.createJWT()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: fmt.Sprintf("Failed to save session: %s", err.Error()),
		})
	}

	httpSvc.eventPublisher.Publish(&events.Event{
		Event: "dashhub_session_started",
	})

	return c.JSON(http.StatusOK, &authTokenResponse{
		Token: token,
	})
}

func (httpSvc *HttpService) storeHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, httpSvc.api.GetStore())
}

func (httpSvc *HttpService) sliceHandler(c echo.Context) error {
	sliceResponse, err := httpSvc.api.GetSlice(c.Param("slice"))
	if err != nil {
		return c.JSON(http.StatusNotFound, ErrorResponse{
			Message: err.Error(),
		})
	}
	return c.JSON(http.StatusOK, sliceResponse)
}

func (httpSvc *HttpService) loadSliceHandler(c echo.Context) error {
	force, _ := strconv.ParseBool(c.QueryParam("force"))

	err := httpSvc.api.LoadSlice(c.Param("slice"), force)
	if err != nil {
		return c.JSON(http.StatusNotFound, ErrorResponse{
			Message: err.Error(),
		})
	}

	// fire-and-forget: fetch outcome lands in the slice state,
	// observable via /api/store or the websocket feed
	return c.NoContent(http.StatusAccepted)
}

func (httpSvc *HttpService) updateBackendURLHandler(c echo.Context) error {
	var updateBackendURLRequest api.UpdateBackendURLRequest
	if err := c.Bind(&updateBackendURLRequest); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: fmt.Sprintf("Bad request: %s", err.Error()),
		})
	}

	err := httpSvc.api.SetBackendURL(&updateBackendURLRequest)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: err.Error(),
		})
	}

	return c.NoContent(http.StatusNoContent)
}

func (httpSvc *HttpService) createJWT() (string, error) {
	claims := &jwtCustomClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(constants.SESSION_TOKEN_TTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	secret, err := httpSvc.cfg.GetJWTSecret()
	if err != nil {
		return "", err
	}

	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", err
	}
	return signed, nil
}
