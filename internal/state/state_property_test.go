//go:build property

package state

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/pagewright/pagewright/internal/types"
)

// genEvent produces a random event drawn from a small id universe so that
// adds, updates, and removals actually collide with each other.
func genEvent() gopter.Gen {
	ids := gen.IntRange(0, 7)
	coord := gen.Float64Range(-500, 500)
	return gen.OneGenOf(
		gopter.CombineGens(ids, coord, coord).Map(func(vs []interface{}) Event {
			id := fmt.Sprintf("s%d", vs[0].(int))
			return Event{ID: "g-sa-" + id, Payload: SurfaceAdded{Surface: types.Surface{
				ID: id, Name: "Page " + id, Width: 800, Height: 600, IsPublishTarget: true,
			}}}
		}),
		ids.Map(func(n int) Event {
			return Event{ID: "g-sr", Payload: SurfaceRemoved{ID: fmt.Sprintf("s%d", n)}}
		}),
		gopter.CombineGens(ids, ids).Map(func(vs []interface{}) Event {
			elID := fmt.Sprintf("e%d", vs[0].(int))
			sfID := fmt.Sprintf("s%d", vs[1].(int))
			return Event{ID: "g-ea-" + elID, Payload: ElementAdded{Element: types.Element{
				ID: elID, SurfaceID: sfID, Kind: "text", Width: 100, Height: 20, Opacity: 1,
			}}}
		}),
		gopter.CombineGens(ids, coord, coord).Map(func(vs []interface{}) Event {
			return Event{ID: "g-em", Payload: ElementMoved{
				ID: fmt.Sprintf("e%d", vs[0].(int)), X: vs[1].(float64), Y: vs[2].(float64),
			}}
		}),
		ids.Map(func(n int) Event {
			return Event{ID: "g-er", Payload: ElementRemoved{ID: fmt.Sprintf("e%d", n)}}
		}),
		ids.Map(func(n int) Event {
			return Event{ID: "g-sel", Payload: SelectionChanged{IDs: []string{fmt.Sprintf("e%d", n)}}}
		}),
	)
}

// TestStateProperties validates replay and integrity invariants of the
// reducer over arbitrary event sequences.
func TestStateProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(1234) // For reproducible results
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	events := gen.SliceOf(genEvent())

	properties.Property("replayThrough equals prefix fold at every index", prop.ForAll(
		func(evs []Event) bool {
			initial := NewState()
			s := initial
			for n := 0; n < len(evs); n++ {
				s = Reduce(s, evs[n])
				replayed := ReplayThrough(initial, evs, n)
				if fmt.Sprintf("%+v", replayed) != fmt.Sprintf("%+v", s) {
					return false
				}
			}
			return true
		},
		events,
	))

	properties.Property("surface removal cascades onto owned elements", prop.ForAll(
		func(evs []Event) bool {
			s := NewState()
			for _, ev := range evs {
				s = Reduce(s, ev)
				sr, ok := ev.Payload.(SurfaceRemoved)
				if !ok {
					continue
				}
				for _, el := range s.Elements {
					if el.SurfaceID == sr.ID {
						return false
					}
				}
			}
			return true
		},
		events,
	))

	properties.Property("fold is deterministic", prop.ForAll(
		func(evs []Event) bool {
			a := ApplyAll(NewState(), evs)
			b := ApplyAll(NewState(), evs)
			return fmt.Sprintf("%+v", a) == fmt.Sprintf("%+v", b)
		},
		events,
	))

	properties.TestingRun(t)
}
