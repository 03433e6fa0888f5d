package realtime

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipehub/internal/model"
)

func dial(t *testing.T, hub *Hub, userID int) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.Atoi(r.URL.Query().Get("user_id"))
		_ = hub.Serve(w, r, id)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?user_id=" + strconv.Itoa(userID)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	var welcome Message
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	require.NoError(t, conn.ReadJSON(&welcome))
	require.Equal(t, "connected", welcome.Type)
	return conn
}

func TestHub_PublishReachesRecipient(t *testing.T) {
	hub := NewHub(nil)
	conn := dial(t, hub, 7)
	assert.Equal(t, 1, hub.Connections(7))

	err := hub.Publish(context.Background(), model.Notification{ID: 3, UserID: 7, OriginUserID: 1, Message: "alice added a new recipe: Soup"})
	require.NoError(t, err)

	var got Message
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, "notification", got.Type)
	assert.EqualValues(t, 3, got.ID)
	assert.Equal(t, "alice added a new recipe: Soup", got.Message)
}

func TestHub_PublishWithoutSubscribers(t *testing.T) {
	hub := NewHub(nil)

	assert.NoError(t, hub.Publish(context.Background(), model.Notification{UserID: 99, Message: "x"}))
	assert.Zero(t, hub.Connections(99))
}

func TestHub_DisconnectUnregisters(t *testing.T) {
	hub := NewHub(nil)
	conn := dial(t, hub, 5)
	require.Equal(t, 1, hub.Connections(5))

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
	conn.Close()

	assert.Eventually(t, func() bool { return hub.Connections(5) == 0 }, 5*time.Second, 10*time.Millisecond)
}
