package main

import (
	"errors"
	"net/http"
	"qsmart/qsmart-crowd-server/pkg/client"
	"qsmart/qsmart-crowd-server/pkg/crowd"
	"qsmart/qsmart-crowd-server/pkg/infra"
	"qsmart/qsmart-crowd-server/pkg/registration"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type Application struct {
	service    *crowd.Service
	hub        *client.Hub
	wsUpgrader *websocket.Upgrader

	logger *zap.SugaredLogger
}

type joinRequest struct {
	Location string `json:"location" form:"location" query:"location"`
}

type errorResponse struct {
	Message string `json:"message"`
}

func ProvideApplication(service *crowd.Service, hub *client.Hub, loggerFactory *infra.LoggerFactory) *Application {
	return &Application{
		service:    service,
		hub:        hub,
		wsUpgrader: &websocket.Upgrader{},
		logger:     loggerFactory.Create("Application").Sugar(),
	}
}

func (a *Application) Run() {
	go a.hub.Run()
}

func (a *Application) HandleLocations(c echo.Context) error {
	return c.JSON(http.StatusOK, a.service.Locations())
}

func (a *Application) HandleStatus(c echo.Context) error {
	status, err := a.service.GetStatus(c.Request().Context(), c.QueryParam("location"))
	if err != nil {
		return a.errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, status)
}

func (a *Application) HandleJoin(c echo.Context) error {
	req := &joinRequest{}
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, &errorResponse{Message: "invalid request body"})
	}

	if err := a.service.Register(c.Request().Context(), req.Location); err != nil {
		return a.errorJSON(c, err)
	}

	select {
	case a.hub.NotifyRegistration <- strings.TrimSpace(req.Location):
	default:
		a.logger.Warnf("notifyRegistration channel is full, skip location[%v]", req.Location)
	}
	return c.NoContent(http.StatusCreated)
}

func (a *Application) HandleWs(c echo.Context) error {
	conn, err := a.wsUpgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	client.NewClient(conn, c.QueryParam("location"), a.hub).Run()
	return nil
}

func (a *Application) errorJSON(c echo.Context, err error) error {
	switch {
	case errors.Is(err, crowd.ErrEmptyLocation):
		return c.JSON(http.StatusBadRequest, &errorResponse{Message: err.Error()})
	case errors.Is(err, registration.ErrStorageUnavailable):
		return c.JSON(http.StatusServiceUnavailable, &errorResponse{Message: registration.ErrStorageUnavailable.Error()})
	default:
		a.logger.Errorf("unexpected error %v", err)
		return c.JSON(http.StatusInternalServerError, &errorResponse{Message: "internal error"})
	}
}
