// Package serverless exposes the events API as API Gateway proxy handlers
// for AWS Lambda. Responses match the HTTP adapter's /api/events routes.
package serverless

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"

	"treetroopers/internal/adapters/email"
	calendarStore "treetroopers/internal/adapters/storage/calendar"
	"treetroopers/internal/application/orchestrators"
	"treetroopers/internal/application/projections"
	"treetroopers/internal/domain/calendar"
)

// Handlers serves list and create for one event store.
type Handlers struct {
	EventStore calendarStore.Store
	Sender     email.Sender // optional
	AnnounceTo string       // optional
	Location   *time.Location
}

type createRequest struct {
	Title       string `json:"title"`
	EventDate   string `json:"event_date"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

// Route dispatches on the HTTP method: GET lists, POST creates.
func (h *Handlers) Route(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	switch req.HTTPMethod {
	case http.MethodGet:
		return h.List(ctx, req)
	case http.MethodPost:
		return h.Create(ctx, req)
	default:
		resp := respond(http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		resp.Headers["Allow"] = "GET, POST"
		return resp, nil
	}
}

// List returns every event, newest id first, as {"events":[...]}.
func (h *Handlers) List(ctx context.Context, _ events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	list, err := projections.QueryListEvents(ctx, projections.ListEventsDeps{EventStore: h.EventStore})
	if err != nil {
		slog.Error("lambda_event", "event", "list_failed", "error", err)
		return failure(http.StatusInternalServerError, err), nil
	}
	return respond(http.StatusOK, map[string]any{"events": list}), nil
}

// Create stores the event in the request body and returns {"event":{...}}.
// Missing title or event_date is a 400; anything else that fails, including
// a body that is not JSON, is a 500 carrying the error text.
func (h *Handlers) Create(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	body := req.Body
	if req.IsBase64Encoded {
		raw, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return failure(http.StatusInternalServerError, fmt.Errorf("decode body: %w", err)), nil
		}
		body = string(raw)
	}
	if body == "" {
		body = "{}"
	}

	var in createRequest
	if err := json.Unmarshal([]byte(body), &in); err != nil {
		return failure(http.StatusInternalServerError, err), nil
	}

	ev, err := orchestrators.ExecuteCreateEvent(ctx, orchestrators.CreateEventInput{
		Title:       in.Title,
		EventDate:   in.EventDate,
		Location:    in.Location,
		Description: in.Description,
	}, orchestrators.CreateEventDeps{
		EventStore: h.EventStore,
		Sender:     h.Sender,
		AnnounceTo: h.AnnounceTo,
		Location:   h.Location,
	})
	switch {
	case errors.Is(err, calendar.ErrMissingTitleOrDate):
		return respond(http.StatusBadRequest, map[string]string{"error": "Missing title or event_date"}), nil
	case errors.Is(err, calendar.ErrTitleTooLong),
		errors.Is(err, calendar.ErrLocationTooLong),
		errors.Is(err, calendar.ErrDescriptionTooLong):
		return failure(http.StatusBadRequest, err), nil
	case err != nil:
		slog.Error("lambda_event", "event", "create_failed", "error", err)
		return failure(http.StatusInternalServerError, err), nil
	}
	return respond(http.StatusOK, map[string]any{"event": ev}), nil
}

func failure(status int, err error) events.APIGatewayProxyResponse {
	return respond(status, map[string]string{"error": err.Error()})
}

func respond(status int, v any) events.APIGatewayProxyResponse {
	data, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		data = []byte(`{"error":"encode response"}`)
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(data),
	}
}
