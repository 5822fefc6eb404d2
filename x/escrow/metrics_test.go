package escrow

import (
	"testing"

	"github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/coin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestLifecycleMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, RegisterMetrics(reg))
	require.Error(t, RegisterMetrics(reg), "counters must not be registered twice")

	before := transitionCounts(t, reg)

	f := newFixture(t)
	f.createEscrow(t, 1000)
	f.createEscrow(t, 1000)
	_, err := f.deliver(t, f.seller, &CancelEscrowMsg{Metadata: &nftescrow.Metadata{Schema: 1}, EscrowID: 0})
	require.NoError(t, err)
	_, err = f.deliver(t, f.buyer, &SendFundsMsg{
		Metadata: &nftescrow.Metadata{Schema: 1},
		EscrowID: 1,
		Funds:    funds(coin.NewCoin(1000, testDenom)),
	})
	require.NoError(t, err)

	after := transitionCounts(t, reg)
	require.Equal(t, float64(2), after[transitionCreated]-before[transitionCreated])
	require.Equal(t, float64(1), after[transitionCanceled]-before[transitionCanceled])
	require.Equal(t, float64(1), after[transitionSettled]-before[transitionSettled])
}

func transitionCounts(t *testing.T, reg *prometheus.Registry) map[string]float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	counts := make(map[string]float64)
	for _, f := range families {
		if f.GetName() != "escrow_transitions_total" {
			continue
		}
		for _, m := range f.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "transition" {
					counts[l.GetValue()] = m.GetCounter().GetValue()
				}
			}
		}
	}
	return counts
}
