// Package wikistore provides an in-memory keyed record store with
// synchronous change notifications and pluggable "best record" selection.
//
// A [Store] maps string keys to records of any type satisfying [Keyed]. It
// publishes a [BeforeSetEvent] before every write and a [ReadEvent] on every
// read, and answers best-of queries by scanning all records with a scoring
// [Policy].
//
// # Quick Start
//
//	type Creature struct {
//	    Name   string
//	    Attack int
//	}
//
//	func (c Creature) Key() string { return c.Name }
//
//	byAttack := wikistore.ScoreFunc[Creature](func(c Creature) float64 {
//	    return float64(c.Attack)
//	})
//
//	s, _ := wikistore.New[Creature](byAttack)
//	s.Set(Creature{Name: "wolf", Attack: 10})
//	s.Set(Creature{Name: "wolf", Attack: 90}) // replaces, keeps position
//	s.Set(Creature{Name: "rat", Attack: 1})
//
//	best := s.Best() // [{wolf 90}]
//
// # Notifications
//
// Observers subscribe with [Store.OnBeforeSet] and [Store.OnRead]; both
// return a handle that removes the subscription. Observers run synchronously
// inside the triggering call and cannot veto it, but a panicking observer
// unwinds through it. Because before-set observers run before the commit, a
// panic there leaves the store unchanged.
//
// Package notify holds the underlying channel. Package instrument attaches
// logging and Prometheus observers to a store.
//
// # Policies
//
// A [Policy] maps a record to a float64 score. [ScoreFunc] adapts plain
// functions; [Ratio], [Weighted] and [Negate] compose them. Policies return
// [MinScore] for records they cannot score. [Store.BestByScore] takes an
// ad-hoc score function, while [Store.Best] uses the store's current policy,
// replaceable at any time with [Store.SetBestStrategy].
//
// Ties are kept: best-of queries return every record sharing the top score,
// in insertion order.
package wikistore
