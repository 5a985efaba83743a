package websocket

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/marksheet/internal/app/models"
	"github.com/yigit/marksheet/internal/middleware"
	"github.com/yigit/marksheet/internal/pkg/events"
)

type frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type harness struct {
	bus  *events.Bus
	hub  *Hub
	srv  *httptest.Server
	stop context.CancelFunc
}

// newHarness serves the handler behind a stub that installs the given session
func newHarness(t *testing.T, session models.SessionDescriptor) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	bus := events.NewBus(16, zerolog.Nop())
	hub := NewHub(bus, 16, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	router := gin.New()
	router.GET("/api/events/ws", func(c *gin.Context) {
		c.Set(middleware.SessionKey, session)
	}, NewHandler(hub, zerolog.Nop()).HandleConnection)
	srv := httptest.NewServer(router)

	t.Cleanup(func() {
		srv.Close()
		cancel()
		bus.Close()
	})
	return &harness{bus: bus, hub: hub, srv: srv, stop: cancel}
}

func (h *harness) dial(t *testing.T) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(h.srv.URL, "http") + "/api/events/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.Eventually(t, func() bool { return h.hub.Clients() == 1 }, 2*time.Second, 10*time.Millisecond)
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) frame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var f frame
	require.NoError(t, conn.ReadJSON(&f))
	return f
}

func TestStudentReceivesOnlyRelevantEvents(t *testing.T) {
	h := newHarness(t, models.SessionDescriptor{Role: models.RoleStudent, StudentID: 7, ClassID: 5, Section: "A"})
	conn := h.dial(t)

	h.bus.Publish(events.NewMarksUpdated(8))
	h.bus.Publish(events.NewTeacherAdded(&models.Teacher{ID: 1, TeacherID: "T1", Fullname: "Priya Sharma"}))
	h.bus.Publish(events.NewMarksUpdated(7))

	f := readFrame(t, conn)
	assert.Equal(t, "marks:updated", f.Event)
	assert.JSONEq(t, `{"student_id":7}`, string(f.Data))
}

func TestDeletionRevokesOwnSession(t *testing.T) {
	student := &models.Student{ID: 7, Fullname: "Amit Kumar", ClassID: 5, Section: "A"}
	h := newHarness(t, models.StudentSession(student))
	conn := h.dial(t)

	h.bus.PublishWithNotice(events.NewStudentDeleted(student))

	assert.Equal(t, "student:deleted", readFrame(t, conn).Event)
	revoked := readFrame(t, conn)
	assert.Equal(t, "session:revoked", revoked.Event)
	assert.JSONEq(t, `{"reason":"account removed"}`, string(revoked.Data))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.ClosePolicyViolation), "got %v", err)

	assert.Eventually(t, func() bool { return h.hub.Clients() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestTeacherSeesOwnClassOnly(t *testing.T) {
	h := newHarness(t, models.SessionDescriptor{Role: models.RoleTeacher, TeacherID: "T1", ClassAssigned: 5, Section: "A"})
	conn := h.dial(t)

	h.bus.Publish(events.NewStudentAdded(&models.Student{ID: 1, Fullname: "Other", ClassID: 6, Section: "A"}))
	h.bus.Publish(events.NewStudentAdded(&models.Student{ID: 2, Fullname: "Mine", ClassID: 5, Section: "A"}))

	f := readFrame(t, conn)
	assert.Equal(t, "student:added", f.Event)
	assert.Contains(t, string(f.Data), `"Mine"`)
}

func TestClientDisconnectUnregisters(t *testing.T) {
	h := newHarness(t, models.AdminSession("admin"))
	conn := h.dial(t)
	assert.Equal(t, 1, h.bus.Subscribers())

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool {
		return h.hub.Clients() == 0 && h.bus.Subscribers() == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestShutdownSendsGoingAway(t *testing.T) {
	h := newHarness(t, models.AdminSession("admin"))
	conn := h.dial(t)

	h.stop()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	require.Error(t, err)
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "got %v", err)

	select {
	case <-h.hub.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("hub did not stop")
	}
	assert.Equal(t, 0, h.hub.Clients())
	assert.Equal(t, 0, h.bus.Subscribers())
}
