package status

import (
	"context"
	"errors"

	"github.com/farfania/oblivion-launcher/internal/model"
)

// ErrNoServer is returned when no server is selected
var ErrNoServer = errors.New("no server selected")

// ServerFetcher returns a fetch function pinging the currently selected
// server. An unreachable server is reported offline rather than as an error,
// so a failed ping replaces the last known player count with the offline
// label instead of keeping it. Only a missing selection is an error, and
// that one leaves the displayed value alone.
func ServerFetcher(pinger Pinger, selected func() *model.Server) func(context.Context) (model.ServerStatus, error) {
	return func(ctx context.Context) (model.ServerStatus, error) {
		server := selected()
		if server == nil {
			return model.ServerStatus{}, ErrNoServer
		}
		offline := model.ServerStatus{Name: server.Name}

		host, port, err := server.HostPort()
		if err != nil {
			return offline, nil
		}
		st, err := pinger.Ping(ctx, host, port)
		if err != nil {
			return offline, nil
		}
		st.Name = server.Name
		return st, nil
	}
}

// NetworkFetcher returns a fetch function checking every server of the
// current distribution
func NetworkFetcher(network *Network, servers func() ([]*model.Server, error)) func(context.Context) (NetworkStatus, error) {
	return func(ctx context.Context) (NetworkStatus, error) {
		list, err := servers()
		if err != nil {
			return NetworkStatus{}, err
		}
		return network.Check(ctx, list), nil
	}
}

// MojangSummary is the painted Mojang status: the service lists and their aggregate
type MojangSummary struct {
	Essential    []model.ServiceStatus
	NonEssential []model.ServiceStatus
	Color        model.StatusColor
}

// MojangFetcher returns a fetch function summarizing the Mojang services
func MojangFetcher(client *MojangClient) func(context.Context) (MojangSummary, error) {
	return func(ctx context.Context) (MojangSummary, error) {
		statuses, err := client.Status(ctx)
		if err != nil {
			return MojangSummary{}, err
		}
		essential, nonEssential := Split(statuses)
		return MojangSummary{
			Essential:    essential,
			NonEssential: nonEssential,
			Color:        Aggregate(statuses),
		}, nil
	}
}
