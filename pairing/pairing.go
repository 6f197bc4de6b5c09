// Package pairing splits a list of players into two-person teams.
package pairing

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/playerz/playerz-api/models"
)

// NoPartner fills the second slot of the last pair when the player count is odd.
const NoPartner = 0

var ErrNotEnoughPlayers = errors.New("at least two players are required to organize teams")

// Pairer pairs players, shuffling with its own random source when asked to.
type Pairer struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// New returns a Pairer drawing from src. Tests pass a seeded source.
func New(src rand.Source) *Pairer {
	return &Pairer{rnd: rand.New(src)}
}

var defaultPairer = New(rand.NewSource(time.Now().UnixNano()))

// Pair uses a process-wide Pairer seeded from the clock.
func Pair(playerIDs []int, randomize bool) ([]models.Pair, error) {
	return defaultPairer.Pair(playerIDs, randomize)
}

// Pair consumes playerIDs two at a time, after an optional uniform shuffle.
// The input slice is never modified.
func (p *Pairer) Pair(playerIDs []int, randomize bool) ([]models.Pair, error) {
	if len(playerIDs) < 2 {
		return nil, ErrNotEnoughPlayers
	}

	ids := make([]int, len(playerIDs))
	copy(ids, playerIDs)

	if randomize {
		p.mu.Lock()
		p.rnd.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
		p.mu.Unlock()
	}

	pairs := make([]models.Pair, 0, (len(ids)+1)/2)
	for i := 0; i < len(ids); i += 2 {
		pair := models.Pair{PlayerOne: ids[i], PlayerTwo: NoPartner}
		if i+1 < len(ids) {
			pair.PlayerTwo = ids[i+1]
		}
		pairs = append(pairs, pair)
	}
	return pairs, nil
}
