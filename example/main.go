// Command example demonstrates the wikistore library with typed records:
// creatures ranked by attack, then by attack per point of cost after a
// policy swap.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/jpalmerr/wikistore"
	"github.com/jpalmerr/wikistore/instrument"
)

// Creature is a sample record type.
type Creature struct {
	Name    string
	Attack  float64
	Defense float64
	Cost    float64
}

// Key implements wikistore.Keyed.
func (c Creature) Key() string { return c.Name }

var (
	strongest = wikistore.ScoreFunc[Creature](func(c Creature) float64 { return c.Attack })

	// attack per point of cost; free creatures are unscorable
	efficient = wikistore.Ratio[Creature](
		func(c Creature) float64 { return c.Attack },
		func(c Creature) float64 { return c.Cost },
	)
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	bestiary, err := wikistore.New[Creature](strongest, wikistore.WithLogger(logger))
	if err != nil {
		slog.Error("failed to create store", "error", err)
		os.Exit(1)
	}

	detach := instrument.LogEvents(bestiary, logger)
	defer detach()

	// announce replacements before they happen
	bestiary.OnBeforeSet(func(e wikistore.BeforeSetEvent[Creature]) {
		if e.Found {
			fmt.Printf("  %s: attack %.0f -> %.0f\n", e.New.Name, e.Existing.Attack, e.New.Attack)
		}
	})

	creatures := []Creature{
		{Name: "wolf", Attack: 10, Defense: 5, Cost: 2},
		{Name: "wolf", Attack: 90, Defense: 5, Cost: 9},
		{Name: "rat", Attack: 1, Defense: 1, Cost: 1},
		{Name: "bear", Attack: 90, Defense: 40, Cost: 30},
		{Name: "wisp", Attack: 3, Defense: 0, Cost: 0},
	}

	fmt.Println("Loading creatures")
	for _, c := range creatures {
		if err := bestiary.Set(c); err != nil {
			slog.Error("failed to store creature", "name", c.Name, "error", err)
			os.Exit(1)
		}
	}

	if wolf, ok := bestiary.Get("wolf"); ok {
		fmt.Printf("wolf: %+v\n", wolf)
	}
	if _, ok := bestiary.Get("dragon"); !ok {
		fmt.Println("dragon: not found")
	}

	printBest("Strongest", bestiary.Best())

	if err := bestiary.SetBestStrategy(efficient); err != nil {
		slog.Error("failed to swap policy", "error", err)
		os.Exit(1)
	}
	printBest("Most efficient", bestiary.Best())

	printBest("Toughest", bestiary.BestByScore(func(c Creature) float64 { return c.Defense }))
}

func printBest(title string, creatures []Creature) {
	fmt.Printf("%s:\n", title)
	for _, c := range creatures {
		fmt.Printf("  %-6s attack=%-4.0f defense=%-4.0f cost=%.0f\n", c.Name, c.Attack, c.Defense, c.Cost)
	}
}
