package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"tasknest/tasks-service/logging"
	"tasknest/tasks-service/models"
)

// Notifier posts task change events to an external notifications service.
// Deliveries run behind a circuit breaker so a flapping receiver cannot
// slow down task operations; failures are logged and never surfaced to
// the client. With an empty URL the notifier is a no-op.
type Notifier struct {
	url     string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
}

func NewNotifier(url string) *Notifier {
	return &Notifier{
		url:    url,
		client: &http.Client{Timeout: 5 * time.Second},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "notifications-cb",
			MaxRequests: 1,
			Timeout:     5 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures > 3
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logging.Logger.Infof("Event ID: CIRCUIT_BREAKER_STATE_CHANGE, Description: Circuit Breaker '%s' changed from '%s' to '%s'", name, from.String(), to.String())
			},
		}),
	}
}

func (n *Notifier) TaskCreated(t models.Task) {
	n.send("task.created", t.ID, t.Title)
}

func (n *Notifier) TaskUpdated(t models.Task) {
	n.send("task.updated", t.ID, t.Title)
}

func (n *Notifier) TaskDeleted(id string) {
	n.send("task.deleted", id, "")
}

func (n *Notifier) send(event, taskID, title string) {
	if n == nil || n.url == "" {
		return
	}

	body, err := json.Marshal(map[string]string{
		"event":  event,
		"taskId": taskID,
		"title":  title,
	})
	if err != nil {
		return
	}

	_, err = n.breaker.Execute(func() (interface{}, error) {
		resp, err := n.client.Post(n.url, "application/json", bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode >= http.StatusBadRequest {
			return nil, fmt.Errorf("notifications service returned status %d", resp.StatusCode)
		}
		return nil, nil
	})
	if err != nil {
		logging.Logger.Warnf("Event ID: NOTIFICATION_FAILED, Description: Failed to deliver %s notification for task %s: %v", event, taskID, err)
	}
}
