package studio

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/auth"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/model"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/workspace"
)

func dialHub(t *testing.T, srv *httptest.Server, device string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	header := http.Header{}
	header.Set(auth.DeviceHeader, device)
	conn, resp, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	require.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestHub_PushesTransitions(t *testing.T) {
	env := newTestEnv(t, defaultOptions())
	env.gen.resp = textResponse("hello")
	srv := httptest.NewServer(env.handler)
	defer srv.Close()

	conn := dialHub(t, srv, "desk-1")

	hello := readMessage(t, conn)
	assert.Equal(t, MessageRefresh, hello.Type)
	assert.NotEmpty(t, hello.ClientID)

	seen := map[model.Workspace]bool{}
	for range model.Workspaces {
		msg := readMessage(t, conn)
		require.Equal(t, MessageSnapshot, msg.Type)
		require.NotNil(t, msg.Snapshot)
		assert.Equal(t, workspace.StateIdle, msg.Snapshot.State)
		seen[msg.Snapshot.Workspace] = true
	}
	assert.Len(t, seen, len(model.Workspaces))

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/prompt/craft", strings.NewReader(`{"draft":"x"}`))
	require.NoError(t, err)
	req.Header.Set(auth.DeviceHeader, "desk-1")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	submitting := readMessage(t, conn)
	require.NotNil(t, submitting.Snapshot)
	assert.Equal(t, model.WorkspacePrompt, submitting.Snapshot.Workspace)
	assert.Equal(t, workspace.StateSubmitting, submitting.Snapshot.State)
	assert.True(t, submitting.Snapshot.Result.Loading)

	done := readMessage(t, conn)
	require.NotNil(t, done.Snapshot)
	assert.Equal(t, workspace.StateSuccess, done.Snapshot.State)
	assert.Equal(t, "hello", done.Snapshot.Result.Text)
}

func TestHub_PingPong(t *testing.T) {
	env := newTestEnv(t, defaultOptions())
	srv := httptest.NewServer(env.handler)
	defer srv.Close()

	conn := dialHub(t, srv, "desk-2")
	for i := 0; i < 1+len(model.Workspaces); i++ {
		readMessage(t, conn)
	}

	require.NoError(t, conn.WriteJSON(Message{Type: MessagePing}))
	assert.Equal(t, MessagePong, readMessage(t, conn).Type)
}

func TestHub_TracksConnections(t *testing.T) {
	env := newTestEnv(t, defaultOptions())
	srv := httptest.NewServer(env.handler)
	defer srv.Close()

	conn := dialHub(t, srv, "desk-3")
	readMessage(t, conn)

	require.Eventually(t, func() bool { return env.server.Hub().Len() == 1 }, time.Second, 5*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool { return env.server.Hub().Len() == 0 }, time.Second, 5*time.Millisecond)
}
