package status

import (
	"context"
	"sync"

	"github.com/farfania/oblivion-launcher/internal/model"
	"github.com/remeh/sizedwaitgroup"
	"go.uber.org/zap"
)

// NetworkStatus is the status of every server of the distribution
type NetworkStatus struct {
	Servers []model.ServerStatus
	Color   model.StatusColor
}

// IsEmpty reports whether the distribution lists no servers
func (n NetworkStatus) IsEmpty() bool {
	return len(n.Servers) == 0
}

// Network pings all servers of a distribution with bounded concurrency
type Network struct {
	pinger      Pinger
	concurrency int
	logger      *zap.Logger
}

// NewNetwork creates a network status checker
func NewNetwork(pinger Pinger, concurrency int, logger *zap.Logger) *Network {
	if concurrency < 1 {
		concurrency = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Network{pinger: pinger, concurrency: concurrency, logger: logger}
}

// Check pings each server. Unreachable servers are reported offline, never
// as an error. The colour is green if at least one server answered.
func (n *Network) Check(ctx context.Context, servers []*model.Server) NetworkStatus {
	result := NetworkStatus{
		Servers: make([]model.ServerStatus, len(servers)),
		Color:   model.StatusGrey,
	}
	if len(servers) == 0 {
		return result
	}

	var mu sync.Mutex
	online := 0
	swg := sizedwaitgroup.New(n.concurrency)
	for i, server := range servers {
		swg.Add()
		go func(i int, server *model.Server) {
			defer swg.Done()
			st := n.ping(ctx, server)
			mu.Lock()
			result.Servers[i] = st
			if st.Online {
				online++
			}
			mu.Unlock()
		}(i, server)
	}
	swg.Wait()

	if online == 0 {
		result.Color = model.StatusRed
	} else {
		result.Color = model.StatusGreen
	}
	return result
}

func (n *Network) ping(ctx context.Context, server *model.Server) model.ServerStatus {
	offline := model.ServerStatus{Name: server.Name}
	host, port, err := server.HostPort()
	if err != nil {
		n.logger.Debug("skipping server without address", zap.String("server", server.ID), zap.Error(err))
		return offline
	}
	st, err := n.pinger.Ping(ctx, host, port)
	if err != nil {
		n.logger.Debug("server ping failed", zap.String("server", server.ID), zap.Error(err))
		return offline
	}
	st.Name = server.Name
	return st
}
