package status

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/farfania/oblivion-launcher/internal/model"
	"github.com/stretchr/testify/require"
)

type fakePinger struct {
	online   map[string]model.ServerStatus
	inFlight int32
	peak     int32
}

func (f *fakePinger) Ping(ctx context.Context, host string, port int) (model.ServerStatus, error) {
	n := atomic.AddInt32(&f.inFlight, 1)
	defer atomic.AddInt32(&f.inFlight, -1)
	for {
		peak := atomic.LoadInt32(&f.peak)
		if n <= peak || atomic.CompareAndSwapInt32(&f.peak, peak, n) {
			break
		}
	}
	time.Sleep(5 * time.Millisecond)

	if st, ok := f.online[host]; ok {
		return st, nil
	}
	return model.ServerStatus{}, errors.New("connection refused")
}

func TestNetwork_Check(t *testing.T) {
	pinger := &fakePinger{online: map[string]model.ServerStatus{
		"a.example.net": {Online: true, OnlinePlayers: 2, MaxPlayers: 10},
	}}
	servers := []*model.Server{
		{ID: "a", Name: "A", Address: "a.example.net"},
		{ID: "b", Name: "B", Address: "b.example.net:25570"},
		{ID: "c", Name: "C", Address: "c.example.net"},
		{ID: "d", Name: "D"},
	}

	result := NewNetwork(pinger, 2, nil).Check(context.Background(), servers)

	require.Len(t, result.Servers, 4)
	require.Equal(t, model.StatusGreen, result.Color)
	require.Equal(t, "A", result.Servers[0].Name)
	require.Equal(t, "2/10", result.Servers[0].PlayersText("Restarting"))
	require.Equal(t, "Restarting", result.Servers[1].PlayersText("Restarting"))
	require.False(t, result.Servers[3].Online)
	require.LessOrEqual(t, atomic.LoadInt32(&pinger.peak), int32(2))
}

func TestNetwork_AllOffline(t *testing.T) {
	pinger := &fakePinger{}
	result := NewNetwork(pinger, 4, nil).Check(context.Background(), []*model.Server{{ID: "a", Address: "a"}})
	require.Equal(t, model.StatusRed, result.Color)
}

func TestNetwork_Empty(t *testing.T) {
	result := NewNetwork(&fakePinger{}, 4, nil).Check(context.Background(), nil)
	require.True(t, result.IsEmpty())
	require.Equal(t, model.StatusGrey, result.Color)
}

func TestServerFetcher(t *testing.T) {
	pinger := &fakePinger{online: map[string]model.ServerStatus{
		"play.example.net": {Online: true, OnlinePlayers: 1, MaxPlayers: 20},
	}}

	var selected *model.Server
	fetch := ServerFetcher(pinger, func() *model.Server { return selected })

	_, err := fetch(context.Background())
	require.ErrorIs(t, err, ErrNoServer)

	selected = &model.Server{ID: "main", Name: "Main", Address: "play.example.net"}
	st, err := fetch(context.Background())
	require.NoError(t, err)
	require.True(t, st.Online)
	require.Equal(t, "Main", st.Name)

	selected = &model.Server{ID: "down", Name: "Down", Address: "down.example.net"}
	st, err = fetch(context.Background())
	require.NoError(t, err)
	require.False(t, st.Online)
}
