// Package benchutil provides synthetic data generation for benchmarks and testing.
package benchutil

import (
	"math/rand"
	"strings"
)

// AbsentWord contains an uppercase letter, which the generator never emits.
const AbsentWord = "Cactus"

// GeneratorConfig configures synthetic word generation.
type GeneratorConfig struct {
	// NumWords is the total number of words to generate.
	NumWords int
	// MinLen and MaxLen bound word lengths (inclusive).
	MinLen int
	MaxLen int
	// Alphabet is the set of characters words are drawn from.
	// A small alphabet produces many shared prefixes.
	Alphabet string
	// Seed for reproducible generation. 0 = use default seed.
	Seed int64
}

// DefaultConfig returns English-like word lengths over lowercase letters.
func DefaultConfig(numWords int) GeneratorConfig {
	return GeneratorConfig{
		NumWords: numWords,
		MinLen:   2,
		MaxLen:   12,
		Alphabet: "abcdefghijklmnopqrstuvwxyz",
		Seed:     BenchmarkSeed,
	}
}

// SharedPrefixConfig returns fixed-length words over a two-letter alphabet,
// the worst case for character-by-character comparison.
func SharedPrefixConfig(numWords int) GeneratorConfig {
	return GeneratorConfig{
		NumWords: numWords,
		MinLen:   16,
		MaxLen:   16,
		Alphabet: "ab",
		Seed:     BenchmarkSeed,
	}
}

// Generator generates synthetic words.
type Generator struct {
	cfg GeneratorConfig
	rng *rand.Rand
}

// NewGenerator creates a new word generator.
func NewGenerator(cfg GeneratorConfig) *Generator {
	seed := cfg.Seed
	if seed == 0 {
		seed = BenchmarkSeed
	}
	if cfg.Alphabet == "" {
		cfg.Alphabet = "abcdefghijklmnopqrstuvwxyz"
	}
	if cfg.MinLen < 1 {
		cfg.MinLen = 1
	}
	if cfg.MaxLen < cfg.MinLen {
		cfg.MaxLen = cfg.MinLen
	}
	return &Generator{
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Generate returns a slice of synthetic words.
func (g *Generator) Generate() []string {
	words := make([]string, g.cfg.NumWords)
	for i := range words {
		words[i] = g.generateWord()
	}
	return words
}

// Text joins generated words with mixed whitespace, as a word list file would hold them.
func (g *Generator) Text() string {
	var sb strings.Builder
	seps := []string{" ", "\n", "\t", "  "}
	for i, w := range g.Generate() {
		if i > 0 {
			sb.WriteString(seps[g.rng.Intn(len(seps))])
		}
		sb.WriteString(w)
	}
	sb.WriteString("\n")
	return sb.String()
}

func (g *Generator) generateWord() string {
	n := g.cfg.MinLen + g.rng.Intn(g.cfg.MaxLen-g.cfg.MinLen+1)
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = g.cfg.Alphabet[g.rng.Intn(len(g.cfg.Alphabet))]
	}
	return string(buf)
}

// GenerateWords returns numWords words using DefaultConfig.
func GenerateWords(numWords int) []string {
	return NewGenerator(DefaultConfig(numWords)).Generate()
}

// GenerateValues returns n values in [0, 1000) from a seeded source.
func GenerateValues(n int, seed int64) []int {
	rng := rand.New(rand.NewSource(seed))
	values := make([]int, n)
	for i := range values {
		values[i] = rng.Intn(1000)
	}
	return values
}
