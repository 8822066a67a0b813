package tetris

import (
	"math/rand/v2"
	"slices"
)

// randomizer picks the next shape to spawn.
type randomizer interface {
	draw() Shape
}

// uniform draws every shape of the set with the same probability.
type uniform struct {
	n   int
	rng *rand.Rand
}

func (u *uniform) draw() Shape { return Shape(u.rng.IntN(u.n)) }

// bag follows https://tetris.wiki/Random_Generator: every shape of the set
// is dealt once, in random order, before the bag is refilled.
type bag struct {
	n     int
	rng   *rand.Rand
	bag   []Shape
	first bool
}

func newBag(n int, rng *rand.Rand) *bag {
	b := &bag{n: n, rng: rng, first: true}
	b.fill()
	return b
}

func (b *bag) fill() {
	b.bag = b.bag[:0]
	for i := range b.n {
		b.bag = append(b.bag, Shape(i))
	}
	b.rng.Shuffle(len(b.bag), func(i, j int) { b.bag[i], b.bag[j] = b.bag[j], b.bag[i] })
}

func (b *bag) draw() Shape {
	if len(b.bag) == 0 {
		b.fill()
	}
	i := 0
	if b.first {
		b.first = false
		// the first piece is never S, Z or O when there's something else to deal.
		if j := slices.IndexFunc(b.bag, func(s Shape) bool { return s != S && s != Z && s != O }); j >= 0 {
			i = j
		}
	}
	s := b.bag[i]
	b.bag = slices.Delete(b.bag, i, i+1)
	return s
}

func newRandomizer(kind string, n int, rng *rand.Rand) randomizer {
	if kind == RandomBag {
		return newBag(n, rng)
	}
	return &uniform{n: n, rng: rng}
}
