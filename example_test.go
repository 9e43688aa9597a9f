package aegis_test

import (
	"fmt"
	"time"

	aegis "github.com/DavidOsipov/Aegis-Animator"
	"github.com/DavidOsipov/Aegis-Animator/pkg/adapters/memory"
	"github.com/DavidOsipov/Aegis-Animator/pkg/domain"
)

// Example attaches a hover-triggered fade to an element of an in-memory
// host and drives it through one hover cycle.
func Example() {
	host := memory.NewHost()
	card := host.NewElement("div", "card")
	host.Root().AppendChild(card)

	animator, err := aegis.New(host)
	if err != nil {
		panic(err)
	}

	ctrl, err := animator.Attach(card, domain.Options{
		Tracks: domain.TrackSpec{
			domain.TrackTarget: {
				{Properties: map[string]string{"opacity": "0"}},
				{Properties: map[string]string{"opacity": "1"}},
			},
		},
		Timing:  domain.Timing{Duration: 300 * time.Millisecond},
		Trigger: domain.TriggerConfig{Kind: domain.TriggerHover},
	})
	if err != nil {
		panic(err)
	}
	defer ctrl.Destroy()

	card.Dispatch("mouseenter")
	fmt.Println("triggered:", ctrl.Triggered())

	card.Dispatch("mouseleave")
	fmt.Println("triggered:", ctrl.Triggered())

	fmt.Println("transitions:", ctrl.Metrics().Transitions)
	// Output:
	// triggered: true
	// triggered: false
	// transitions: 2
}
