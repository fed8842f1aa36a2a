package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labyrinth-server/config"
)

func TestCreateRoomGeneratesUniqueCodes(t *testing.T) {
	reg := NewRegistry(&fakeBroadcaster{})

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		r := reg.CreateRoom(clientID(i), "Creator")
		require.Len(t, r.Code, config.RoomCodeLength)
		assert.False(t, seen[r.Code], "duplicate room code %s", r.Code)
		seen[r.Code] = true
		for _, ch := range r.Code {
			assert.True(t, strings.ContainsRune(codeChars, ch), "unexpected character %q in code %s", ch, r.Code)
		}
	}
	assert.Len(t, reg.Codes(), 50)
}

func TestGetUnknownRoom(t *testing.T) {
	reg := NewRegistry(&fakeBroadcaster{})
	_, ok := reg.Get("NOPE99")
	assert.False(t, ok)
}

func TestRemoveMakesCodeUnreachable(t *testing.T) {
	reg := NewRegistry(&fakeBroadcaster{})
	r := reg.CreateRoom("client-1", "Alice")

	var removed string
	reg.OnRemove = func(code string) { removed = code }

	reg.Remove(r.Code)

	_, ok := reg.Get(r.Code)
	assert.False(t, ok)
	assert.Equal(t, r.Code, removed)
}

func TestLeaveDeletesEmptyLobby(t *testing.T) {
	reg := NewRegistry(&fakeBroadcaster{})
	r := reg.CreateRoom("client-1", "Alice")

	reg.Leave(r.Code, "client-1")

	_, ok := reg.Get(r.Code)
	assert.False(t, ok, "an emptied lobby is deleted immediately")
}

func TestLeaveKeepsPopulatedRoom(t *testing.T) {
	reg := NewRegistry(&fakeBroadcaster{})
	r := reg.CreateRoom("client-1", "Alice")
	require.NoError(t, r.AddPlayer("client-2", "Bob"))

	reg.Leave(r.Code, "client-2")

	got, ok := reg.Get(r.Code)
	require.True(t, ok)
	assert.Equal(t, 1, got.PlayerCount())
}

func TestHandleDisconnectFindsRoom(t *testing.T) {
	reg := NewRegistry(&fakeBroadcaster{})
	r := reg.CreateRoom("client-1", "Alice")
	require.NoError(t, r.AddPlayer("client-2", "Bob"))

	reg.HandleDisconnect("client-2")

	got, ok := reg.Get(r.Code)
	require.True(t, ok)
	assert.Equal(t, 1, got.PlayerCount())
	assert.False(t, got.HasClient("client-2"))
}

func TestHandleDisconnectUnknownClient(t *testing.T) {
	reg := NewRegistry(&fakeBroadcaster{})
	reg.CreateRoom("client-1", "Alice")

	// Must not panic or disturb any room.
	reg.HandleDisconnect("ghost")
	assert.Len(t, reg.Codes(), 1)
}

func TestRunningRoomSurvivesEmptying(t *testing.T) {
	reg := NewRegistry(&fakeBroadcaster{})
	r := reg.CreateRoom("client-1", "Alice")
	require.NoError(t, r.AddPlayer("client-2", "Bob"))
	require.NoError(t, r.Start("client-1"))
	defer r.Close()

	reg.HandleDisconnect("client-1")
	reg.HandleDisconnect("client-2")

	// The grace timer holds the running room for reconnects.
	_, ok := reg.Get(r.Code)
	assert.True(t, ok)
}

func TestModeratorQuitRemovesRoomFromRegistry(t *testing.T) {
	reg := NewRegistry(&fakeBroadcaster{})
	r := reg.CreateRoom("client-1", "Alice")
	require.NoError(t, r.AddPlayer("client-2", "Bob"))
	require.NoError(t, r.Start("client-1"))

	r.Quit("Alice")

	_, ok := reg.Get(r.Code)
	assert.False(t, ok)
}

func TestCounts(t *testing.T) {
	reg := NewRegistry(&fakeBroadcaster{})
	r1 := reg.CreateRoom("client-1", "Alice")
	require.NoError(t, r1.UpdateGameMode("client-1", SinglePlayer))
	require.NoError(t, r1.UpdateBotSettings("client-1", 2, Medium))
	require.NoError(t, r1.Start("client-1"))
	defer r1.Close()

	reg.CreateRoom("client-9", "Zoe")

	counts := reg.Counts()
	assert.Equal(t, 2, counts["rooms"])
	assert.Equal(t, 1, counts["running"])
	assert.Equal(t, 2, counts["players"])
	assert.Equal(t, 2, counts["bots"])
	assert.GreaterOrEqual(t, counts["resources"], config.ResourceFloor)
}
