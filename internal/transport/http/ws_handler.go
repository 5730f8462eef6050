package http

import (
	"encoding/json"
	"log"
	"net/http"

	"lesson-author-service/internal/app"
	"lesson-author-service/internal/quiz"
	"github.com/gorilla/websocket"
)

// WSHandler runs the editing session protocol: the client sends edit
// commands, the server answers with acknowledgements and pushes a full
// document snapshot after every mutation.
type WSHandler struct {
	service  *app.LessonService
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.LessonService) *WSHandler {
	return &WSHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type appliedPayload struct {
	CreatedID string `json:"createdId,omitempty"`
}

type savedPayload struct {
	LessonID  string `json:"lessonId"`
	UpdatedAt string `json:"updatedAt"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades the connection and wires it into the lesson's
// editing session.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	lessonID := r.URL.Query().Get("lessonId")
	if lessonID == "" {
		http.Error(w, "missing lessonId", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	doc, err := h.service.Open(r.Context(), lessonID)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}

	updates, cancel, err := h.service.Subscribe(r.Context(), lessonID)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}
	defer cancel()
	defer h.service.Close(r.Context(), lessonID)

	send := make(chan outboundMessage[any], 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	updatesDone := make(chan struct{})

	// Single writer goroutine; gorilla connections do not allow
	// concurrent writes.
	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	// Queue the opened snapshot before the forwarder starts so it always
	// precedes the subscription's initial document push.
	send <- outboundMessage[any]{Type: "opened", Payload: doc}

	go func() {
		defer close(updatesDone)
		for {
			select {
			case update, ok := <-updates:
				if !ok {
					return
				}
				select {
				case send <- outboundMessage[any]{Type: "document", Payload: update}:
				case <-closeSignals:
					return
				}
			case <-closeSignals:
				return
			}
		}
	}()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "command":
			var cmd quiz.Command
			if err := json.Unmarshal(inbound.Payload, &cmd); err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid command payload"}}
				continue
			}
			_, createdID, err := h.service.Apply(r.Context(), lessonID, cmd)
			if err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
				continue
			}
			send <- outboundMessage[any]{Type: "applied", Payload: appliedPayload{CreatedID: createdID}}
		case "save":
			lesson, err := h.service.Save(r.Context(), lessonID)
			if err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
				continue
			}
			send <- outboundMessage[any]{Type: "saved", Payload: savedPayload{
				LessonID:  lesson.ID,
				UpdatedAt: lesson.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
			}}
		default:
			send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "unsupported message type"}}
		}
	}

	close(closeSignals)
	<-updatesDone
	close(send)
	<-writerDone
}
