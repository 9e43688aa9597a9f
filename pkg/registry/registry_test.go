package registry_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	aegis "github.com/DavidOsipov/Aegis-Animator"
	"github.com/DavidOsipov/Aegis-Animator/pkg/adapters/memory"
	"github.com/DavidOsipov/Aegis-Animator/pkg/domain"
	"github.com/DavidOsipov/Aegis-Animator/pkg/observability"
	"github.com/DavidOsipov/Aegis-Animator/pkg/registry"
)

func testOptions() domain.Options {
	return domain.Options{
		Tracks: domain.TrackSpec{domain.TrackTarget: {
			{Properties: map[string]string{"opacity": "0"}},
			{Properties: map[string]string{"opacity": "1"}},
		}},
		Timing:  domain.Timing{Duration: 150 * time.Millisecond},
		Trigger: domain.TriggerConfig{Kind: domain.TriggerHover},
	}
}

func newFixture(t *testing.T) (*memory.Host, *registry.Registry) {
	t.Helper()
	host := memory.NewHost()
	animator, err := aegis.New(host)
	require.NoError(t, err)
	return host, registry.New(animator)
}

func TestAttachAndGet(t *testing.T) {
	host, reg := newFixture(t)
	card := host.NewElement("div", "card")
	host.Root().AppendChild(card)

	ctrl, err := reg.Attach(card, testOptions())
	require.NoError(t, err)
	assert.Equal(t, 1, reg.Len())

	got, ok := reg.Get(card)
	require.True(t, ok)
	assert.Same(t, ctrl, got)
}

func TestAttachReplacesExistingInstance(t *testing.T) {
	host, reg := newFixture(t)
	card := host.NewElement("div", "card")
	host.Root().AppendChild(card)

	first, err := reg.Attach(card, testOptions())
	require.NoError(t, err)
	second, err := reg.Attach(card, testOptions())
	require.NoError(t, err)

	assert.True(t, first.Destroyed(), "one element, one instance")
	assert.False(t, second.Destroyed())
	assert.Equal(t, 1, reg.Len())
}

func TestAttachErrorLeavesNothingBehind(t *testing.T) {
	host, reg := newFixture(t)
	loose := host.NewElement("div", "loose") // never connected

	_, err := reg.Attach(loose, testOptions())
	var initErr *domain.InitializationError
	require.ErrorAs(t, err, &initErr)
	assert.Zero(t, reg.Len())
}

func TestDetach(t *testing.T) {
	host, reg := newFixture(t)
	card := host.NewElement("div", "card")
	host.Root().AppendChild(card)

	ctrl, err := reg.Attach(card, testOptions())
	require.NoError(t, err)

	assert.True(t, reg.Detach(card))
	assert.True(t, ctrl.Destroyed())
	assert.Zero(t, reg.Len())
	assert.False(t, reg.Detach(card), "already gone")
}

func TestDetachAll(t *testing.T) {
	host, reg := newFixture(t)
	var ctrls []*aegis.Controller
	for _, id := range []string{"a", "b", "c"} {
		el := host.NewElement("div", id)
		host.Root().AppendChild(el)
		ctrl, err := reg.Attach(el, testOptions())
		require.NoError(t, err)
		ctrls = append(ctrls, ctrl)
	}

	reg.DetachAll()
	assert.Zero(t, reg.Len())
	for _, ctrl := range ctrls {
		assert.True(t, ctrl.Destroyed())
	}
}

func TestStatuses(t *testing.T) {
	host, reg := newFixture(t)
	card := host.NewElement("div", "card")
	host.Root().AppendChild(card)
	_, err := reg.Attach(card, testOptions())
	require.NoError(t, err)

	card.Dispatch("mouseenter")

	statuses := reg.Statuses()
	require.Len(t, statuses, 1)
	assert.Equal(t, "div#card", statuses[0].Target)
	assert.False(t, statuses[0].Destroyed)
	assert.Equal(t, uint64(1), statuses[0].Metrics.Transitions)
	assert.Equal(t, domain.LevelPremium, statuses[0].Metrics.Level)
}

func TestMetricsFollowLifecycle(t *testing.T) {
	host := memory.NewHost()
	animator, err := aegis.New(host)
	require.NoError(t, err)

	promReg := prometheus.NewPedanticRegistry()
	metrics := observability.New(promReg)
	reg := registry.New(animator, registry.WithMetrics(metrics))

	card := host.NewElement("div", "card")
	host.Root().AppendChild(card)
	_, err = reg.Attach(card, testOptions())
	require.NoError(t, err)

	assert.Equal(t, 1.0, gatherValues(t, promReg)["aegis_animator_active_instances"])

	card.Dispatch("mouseenter")
	card.Dispatch("mouseleave")
	require.True(t, reg.Detach(card))

	values := gatherValues(t, promReg)
	assert.Equal(t, 1.0, values["aegis_animator_attaches_total"])
	assert.Equal(t, 1.0, values["aegis_animator_detaches_total"])
	assert.Equal(t, 0.0, values["aegis_animator_active_instances"])
	assert.Equal(t, 2.0, values["aegis_animator_transitions_total"])
	assert.Equal(t, 0.0, values["aegis_animator_instance_errors_total"])
}

// gatherValues flattens a registry scrape into name -> summed value.
func gatherValues(t *testing.T, reg prometheus.Gatherer) map[string]float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	values := map[string]float64{}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				values[mf.GetName()] += m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				values[mf.GetName()] += m.GetGauge().GetValue()
			}
		}
	}
	return values
}

func TestRegistryWithoutMetricsIsSafe(t *testing.T) {
	host, reg := newFixture(t)
	card := host.NewElement("div", "card")
	host.Root().AppendChild(card)

	_, err := reg.Attach(card, testOptions())
	require.NoError(t, err)
	assert.NotPanics(t, func() { reg.DetachAll() })
}
