package tetris

import (
	"fmt"
	"image/color"
	"math/rand/v2"
)

// Kind identifies one of the seven tetromino shapes.
type Kind int

const (
	KindI Kind = iota
	KindJ
	KindL
	KindO
	KindS
	KindT
	KindZ
)

// KindCount is the number of distinct shapes in the catalog.
const KindCount = 7

var kindNames = [KindCount]string{"I", "J", "L", "O", "S", "T", "Z"}

func (k Kind) String() string {
	if k < 0 || int(k) >= KindCount {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Shapes are anchored at the origin with non-negative offsets.
var shapes = [KindCount][4]Point{
	KindI: {{0, 0}, {0, 1}, {0, 2}, {0, 3}},
	KindJ: {{0, 0}, {1, 0}, {1, 1}, {1, 2}},
	KindL: {{0, 0}, {1, 0}, {0, 1}, {0, 2}},
	KindO: {{0, 0}, {1, 0}, {0, 1}, {1, 1}},
	KindS: {{0, 0}, {1, 0}, {1, 1}, {2, 1}},
	KindT: {{0, 0}, {1, 0}, {2, 0}, {1, 1}},
	KindZ: {{0, 1}, {1, 1}, {1, 0}, {2, 0}},
}

var kindColors = [KindCount]color.RGBA{
	KindI: {R: 0, G: 255, B: 255, A: 255},
	KindJ: {R: 0, G: 0, B: 255, A: 255},
	KindL: {R: 255, G: 84, B: 0, A: 255},
	KindO: {R: 255, G: 235, B: 4, A: 255},
	KindS: {R: 0, G: 255, B: 0, A: 255},
	KindT: {R: 128, G: 0, B: 128, A: 255},
	KindZ: {R: 255, G: 0, B: 0, A: 255},
}

// ColorOf returns the fixed color assigned to a kind.
func ColorOf(k Kind) color.RGBA {
	return kindColors[k]
}

// NewKindPiece builds a fresh piece of the given kind at the origin.
func NewKindPiece(k Kind) *Piece {
	shape := shapes[k]
	blocks := make([]Block, len(shape))
	for i, offset := range shape {
		blocks[i] = Block{Offset: offset, Color: kindColors[k]}
	}
	return NewPiece(k, blocks, Point{})
}

// Generator yields the sequence of kinds handed out by a Catalog.
type Generator interface {
	Next() Kind
}

// UniformGenerator picks every kind with equal probability.
type UniformGenerator struct {
	rng *rand.Rand
}

// NewUniformGenerator draws from rng.
func NewUniformGenerator(rng *rand.Rand) *UniformGenerator {
	return &UniformGenerator{rng: rng}
}

// Next returns a uniformly chosen kind.
func (g *UniformGenerator) Next() Kind {
	return Kind(g.rng.IntN(KindCount))
}

// BagGenerator deals all seven kinds in shuffled order before reshuffling.
type BagGenerator struct {
	rng *rand.Rand
	bag []Kind
}

// NewBagGenerator shuffles its bags with rng.
func NewBagGenerator(rng *rand.Rand) *BagGenerator {
	return &BagGenerator{rng: rng}
}

// Next deals the next kind, refilling the bag when it is empty.
func (g *BagGenerator) Next() Kind {
	if len(g.bag) == 0 {
		g.bag = []Kind{KindI, KindJ, KindL, KindO, KindS, KindT, KindZ}
		g.rng.Shuffle(len(g.bag), func(i, j int) {
			g.bag[i], g.bag[j] = g.bag[j], g.bag[i]
		})
	}
	kind := g.bag[0]
	g.bag = g.bag[1:]
	return kind
}

// Randomizer names accepted by NewGenerator.
const (
	RandomizerUniform = "uniform"
	RandomizerBag     = "bag"
)

// NewGenerator returns the generator registered under name.
func NewGenerator(name string, rng *rand.Rand) (Generator, error) {
	switch name {
	case "", RandomizerUniform:
		return NewUniformGenerator(rng), nil
	case RandomizerBag:
		return NewBagGenerator(rng), nil
	default:
		return nil, fmt.Errorf("unknown randomizer %q", name)
	}
}

// Catalog produces pieces from a generator.
type Catalog struct {
	gen Generator
}

// NewCatalog wraps gen.
func NewCatalog(gen Generator) *Catalog {
	return &Catalog{gen: gen}
}

// Random returns a new piece of the next kind at the origin.
func (c *Catalog) Random() *Piece {
	return NewKindPiece(c.gen.Next())
}
