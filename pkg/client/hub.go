package client

import (
	"context"
	"encoding/json"
	"qsmart/qsmart-crowd-server/pkg/config"
	"qsmart/qsmart-crowd-server/pkg/crowd"
	"qsmart/qsmart-crowd-server/pkg/infra"
	"qsmart/qsmart-crowd-server/pkg/metrics"
	"qsmart/qsmart-crowd-server/pkg/msg"
	"strings"
	"time"

	"github.com/emirpasic/gods/maps/hashmap"
	"go.uber.org/zap"
)

type ClientRequest struct {
	client    *Client
	wsMessage *msg.WsMessage
}

// Hub pushes location status to websocket clients. Every field below is
// owned by the Run goroutine, so none of them need a lock.
type Hub struct {
	// Connected clients. Key value: client.id -> client.
	clients *hashmap.Map

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Ws message from clients.
	wsRequest chan *ClientRequest

	// A location that just got a new registration.
	NotifyRegistration chan string

	service *crowd.Service

	notifyStatusInterval time.Duration
	pingInterval         time.Duration

	logger *zap.SugaredLogger
}

func ProvideHub(service *crowd.Service, config *config.Config, loggerFactory *infra.LoggerFactory) *Hub {
	return &Hub{
		clients: hashmap.New(),

		register:           make(chan *Client, 1024),
		unregister:         make(chan *Client, 1024),
		wsRequest:          make(chan *ClientRequest, 1024),
		NotifyRegistration: make(chan string, 1024),

		service: service,

		notifyStatusInterval: config.NotifyStatusInterval(),
		pingInterval:         config.PingInterval(),

		logger: loggerFactory.Create("Hub").Sugar(),
	}
}

func (h *Hub) Run() {
	go h.handleClient()
}

func (h *Hub) handleClient() {
	ticker := time.NewTicker(h.notifyStatusInterval)
	defer ticker.Stop()

	for {
		select {
		case client := <-h.register:
			h.logger.Debugf("register client id[%v] location[%v]", client.id, client.location)
			h.clients.Put(client.id, client)
			metrics.StatusSubscribers.Set(float64(h.clients.Size()))

			if client.location != "" {
				h.pushStatus(client.location, []*Client{client})
			}

		case client := <-h.unregister:
			h.logger.Debugf("unregister client id[%v]", client.id)
			if _, ok := h.clients.Get(client.id); !ok {
				continue
			}
			h.removeClient(client)

		case req := <-h.wsRequest:
			switch req.wsMessage.EventCode {
			case msg.SubscribeCode:
				event := &msg.SubscribeClientEvent{}
				if err := json.Unmarshal(req.wsMessage.EventData, event); err != nil {
					h.logger.Errorf("id[%v] %v", req.client.id, err)
					continue
				}

				req.client.location = strings.TrimSpace(event.Location)
				h.logger.Debugf("client id[%v] subscribed location[%v]", req.client.id, req.client.location)
				h.pushStatus(req.client.location, []*Client{req.client})

			default:
				h.logger.Errorf("id[%v] invalid eventCode[%v]", req.client.id, req.wsMessage.EventCode)
			}

		case location := <-h.NotifyRegistration:
			h.logger.Debugf("notifyRegistration location[%v]", location)
			h.pushStatus(location, h.watchers()[location])

		case <-ticker.C:
			// Baseline hour and expired registrations change over time
			// even without new joins.
			for location, clients := range h.watchers() {
				h.pushStatus(location, clients)
			}
		}
	}
}

// watchers groups clients by the location they watch.
func (h *Hub) watchers() map[string][]*Client {
	out := make(map[string][]*Client)
	for _, value := range h.clients.Values() {
		client := value.(*Client)
		if client.location == "" {
			continue
		}
		out[client.location] = append(out[client.location], client)
	}
	return out
}

// pushStatus computes the status once and sends it to every client. A
// client whose send buffer is full is assumed dead and removed.
func (h *Hub) pushStatus(location string, clients []*Client) {
	if len(clients) == 0 {
		return
	}

	var (
		wsMessage *msg.WsMessage
		err       error
	)
	status, statusErr := h.service.GetStatus(context.Background(), location)
	if statusErr != nil {
		h.logger.Errorf("cannot get status location[%v] %v", location, statusErr)
		wsMessage, err = msg.NewWsMessage(msg.ErrorCode, &msg.ErrorServerEvent{Message: statusErr.Error()})
	} else {
		wsMessage, err = msg.NewWsMessage(msg.StatusCode, &msg.StatusServerEvent{
			Location:      status.Location,
			ExpectedCrowd: status.ExpectedCrowd,
			Level:         status.Level,
			Severity:      status.Severity,
			LevelEmoji:    status.LevelEmoji,
			WaitMinutes:   status.WaitMinutes,
			BestTime:      status.BestTime,
		})
	}
	if err != nil {
		h.logger.Errorf("cannot marshal ws message %v", err)
		return
	}

	for _, client := range clients {
		select {
		case client.sendWsMessage <- wsMessage:
		default:
			h.logger.Warnf("id[%v] send channel is full, closing it", client.id)
			h.removeClient(client)
		}
	}
}

func (h *Hub) removeClient(client *Client) {
	h.clients.Remove(client.id)
	metrics.StatusSubscribers.Set(float64(h.clients.Size()))
	client.TryClose() // Notify client it should close now.
}
