// Package bot holds move-selection policies that drive a side without a
// human player.
package bot

import (
	"math/rand"
	"sync"

	"github.com/benbeisheim/chessrules/internal/model"
)

// RandomBot picks uniformly among the moves it is offered. The same seed and
// the same sequence of offers always produce the same choices.
type RandomBot struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewRandomBot(seed int64) *RandomBot {
	return &RandomBot{rng: rand.New(rand.NewSource(seed))}
}

func (b *RandomBot) Choose(moves []model.SimpleMove) (model.SimpleMove, bool) {
	if len(moves) == 0 {
		return model.SimpleMove{}, false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return moves[b.rng.Intn(len(moves))], true
}

func (b *RandomBot) Name() string {
	return "random"
}
