package websocket

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	gorilla "github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHandler struct {
	mu     sync.Mutex
	events []*Event
}

func (r *recordingHandler) HandleEvent(event *Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingHandler) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.events))
	for _, e := range r.events {
		names = append(names, e.Event)
	}
	return names
}

func startServer(t *testing.T, handler EventHandler) (*Hub, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := NewHub(handler, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	router := gin.New()
	router.GET("/ws", NewHandler(hub, zerolog.Nop()).HandleConnection)
	srv := httptest.NewServer(router)

	t.Cleanup(func() {
		cancel()
		srv.Close()
	})
	return hub, "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func TestEventsReachHandler(t *testing.T) {
	rec := &recordingHandler{}
	hub, url := startServer(t, rec)

	conn, _, err := gorilla.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.WriteMessage(gorilla.TextMessage, []byte(`{"event":"sessionUpdate","data":{"id":1}}`)))
	require.NoError(t, conn.WriteMessage(gorilla.TextMessage, []byte(`not json`)))
	require.NoError(t, conn.WriteMessage(gorilla.TextMessage, []byte(`{"event":"resourceUpdate"}`)))

	require.Eventually(t, func() bool { return len(rec.names()) == 2 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{EventSessionUpdate, EventResourceUpdate}, rec.names())

	rec.mu.Lock()
	first := rec.events[0]
	rec.mu.Unlock()
	assert.JSONEq(t, `{"id":1}`, string(first.Data))
	assert.NotEmpty(t, first.ClientID)
}

func TestDisconnectUnregistersClient(t *testing.T) {
	hub, url := startServer(t, &recordingHandler{})

	conn, _, err := gorilla.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	conn.WriteMessage(gorilla.CloseMessage, gorilla.FormatCloseMessage(gorilla.CloseNormalClosure, ""))
	conn.Close()

	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 10*time.Millisecond)
}

func TestEventLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := NewEventLogger(zerolog.New(&buf))

	l.HandleEvent(&Event{Event: EventTimetableUpdate, Data: []byte(`{"id":2}`), ClientID: "c1"})
	assert.Contains(t, buf.String(), `"level":"info"`)
	assert.Contains(t, buf.String(), `"message":"Timetable update"`)
	assert.Contains(t, buf.String(), `"data":{"id":2}`)

	buf.Reset()
	l.HandleEvent(&Event{Event: "chatMessage", ClientID: "c1"})
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), `"event":"chatMessage"`)
}
