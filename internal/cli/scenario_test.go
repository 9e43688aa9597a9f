package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DavidOsipov/Aegis-Animator/internal/logging"
	"github.com/DavidOsipov/Aegis-Animator/pkg/domain"
)

const sampleScenario = `
viewport_height: 600
elements:
  - tag: div
    id: card
    classes: [widget]
    children:
      - tag: span
        classes: [icon]
animators:
  - target: "#card"
    options:
      tracks:
        target:
          - properties: {opacity: "0"}
          - properties: {opacity: "1"}
      timing:
        duration: 300ms
      trigger:
        kind: hover
script:
  - {event: hover, target: "#card"}
  - {event: unhover, target: "#card"}
`

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, sampleScenario))
	require.NoError(t, err)

	assert.Equal(t, 600.0, sc.ViewportHeight)
	require.Len(t, sc.Elements, 1)
	assert.Equal(t, "card", sc.Elements[0].ID)
	require.Len(t, sc.Elements[0].Children, 1)
	require.Len(t, sc.Animators, 1)
	assert.Len(t, sc.Script, 2)
}

func TestLoadScenarioRejectsEmptyAnimators(t *testing.T) {
	_, err := LoadScenario(writeScenario(t, "elements: []\n"))
	assert.ErrorContains(t, err, "no animators")
}

func TestLoadScenarioMissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestHostOptionsUnknownFeature(t *testing.T) {
	sc := &Scenario{Disable: []string{"teleportation"}}
	_, err := sc.HostOptions()
	assert.ErrorContains(t, err, "teleportation")
}

func TestDecodeOptionsDurationsAndTrigger(t *testing.T) {
	raw := map[string]any{
		"tracks": map[string]any{
			"target": []any{
				map[string]any{"properties": map[string]any{"opacity": "0"}},
				map[string]any{"properties": map[string]any{"opacity": "1"}},
			},
		},
		"timing": map[string]any{"duration": "250ms", "fill": "forwards"},
		"trigger": map[string]any{
			"kind":        "viewport-exit",
			"sentinel":    map[string]any{"top_offset": 120, "class_name": "mark"},
			"debounce_ms": 40,
		},
		"revert_on_hover": true,
	}

	opts, err := DecodeOptions(raw)
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, opts.Timing.Duration)
	assert.Equal(t, domain.FillForwards, opts.Timing.Fill)
	assert.Equal(t, domain.TriggerViewportExit, opts.Trigger.Kind)
	assert.Equal(t, 120.0, opts.Trigger.Sentinel.TopOffset)
	assert.Equal(t, "mark", opts.Trigger.Sentinel.ClassName)
	assert.Equal(t, 40, opts.Trigger.DebounceMs)
	assert.True(t, opts.RevertOnHover)
	assert.NoError(t, opts.Validate())
}

func TestDecodeOptionsBadDuration(t *testing.T) {
	raw := map[string]any{
		"timing": map[string]any{"duration": "soon"},
	}
	_, err := DecodeOptions(raw)
	assert.Error(t, err)
}

func TestParseDelay(t *testing.T) {
	d, err := ParseDelay("")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultHoverDebounce, d)

	d, err = ParseDelay("150ms")
	require.NoError(t, err)
	assert.Equal(t, 150*time.Millisecond, d)

	_, err = ParseDelay("whenever")
	assert.Error(t, err)
}

func TestSessionRunsScript(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, sampleScenario))
	require.NoError(t, err)

	var out bytes.Buffer
	session, err := NewSession(sc, logging.NewNop(), NewPrinter(&out))
	require.NoError(t, err)
	defer session.Close()

	require.NoError(t, session.Run())

	card, err := session.Host.QueryFirst("#card", nil)
	require.NoError(t, err)
	require.NotNil(t, card)
	_, ready := card.Attribute(domain.AttrReady)
	assert.True(t, ready)

	statuses := session.Registry.Statuses()
	require.Len(t, statuses, 1)
	assert.Equal(t, uint64(2), statuses[0].Metrics.Transitions)

	assert.Contains(t, out.String(), "attached #card (ready)")
	assert.Contains(t, out.String(), "hover #card")

	var summary bytes.Buffer
	session.PrintSummary(&summary)
	assert.Contains(t, summary.String(), "div#card")
}

func TestSessionRejectsMissingTarget(t *testing.T) {
	sc := &Scenario{
		Animators: []AnimatorSpec{{Target: "#ghost", Options: map[string]any{}}},
	}
	var out bytes.Buffer
	_, err := NewSession(sc, logging.NewNop(), NewPrinter(&out))
	assert.ErrorContains(t, err, "matches no element")
}
