// Package praise picks encouragement phrases from a fixed catalog.
package praise

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

var phrases = [...]string{
	"えらい。今日もちゃんと働いてる。",
	"その一手間、未来の自分が助かるやつ。",
	"焦らず丁寧。めちゃ強い。",
	"積み上げの人、いちばん信頼できる。",
	"仕事してる時点で優勝。",
	"見えない努力、ちゃんと価値ある。",
	"今日のあなた、ちゃんと頼もしい。",
	"それ、誰かの安心になってるよ。",
	"よく踏ん張ってる。ほんとに。",
	"今のペース、いい感じ。",
}

var hints = [...]string{
	"資料づくり",
	"顧客対応",
	"調整",
	"分析",
	"コーディング",
	"会議",
	"運用監視",
}

const (
	hintOpen  = "（"
	hintClose = "、いい感じ）"
)

// Phrases returns a copy of the phrase catalog.
func Phrases() []string { return append([]string(nil), phrases[:]...) }

// Hints returns a copy of the work hint catalog.
func Hints() []string { return append([]string(nil), hints[:]...) }

// Compose joins a phrase and a hint the way the page displays them.
func Compose(phrase, hint string) string {
	return fmt.Sprintf("%s%s%s%s", phrase, hintOpen, hint, hintClose)
}

// Selector draws praise messages. Draws are independent and with replacement,
// so the same message can come up twice in a row.
type Selector struct {
	rng       *rand.Rand
	withHints bool
}

// Option configures a Selector.
type Option func(*Selector)

// WithHints appends a random work hint to every phrase.
func WithHints(enabled bool) Option {
	return func(s *Selector) { s.withHints = enabled }
}

// WithSource replaces the random source, mainly for tests.
func WithSource(src rand.Source) Option {
	return func(s *Selector) { s.rng = rand.New(src) }
}

// NewSelector returns a Selector backed by an unseeded generator.
func NewSelector(opts ...Option) *Selector {
	s := &Selector{
		rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Select returns one message.
func (s *Selector) Select() string {
	phrase := phrases[s.rng.IntN(len(phrases))]
	if !s.withHints {
		return phrase
	}
	return Compose(phrase, hints[s.rng.IntN(len(hints))])
}

// Intn returns a uniform index in [0, n), used to pick a random worker with
// the same source. n must be positive.
func (s *Selector) Intn(n int) int {
	return s.rng.IntN(n)
}

// IsCatalogMessage reports whether msg is a bare catalog phrase or a phrase
// composed with exactly one catalog hint.
func IsCatalogMessage(msg string) bool {
	for _, p := range phrases {
		if msg == p {
			return true
		}
		rest, ok := strings.CutPrefix(msg, p)
		if !ok {
			continue
		}
		for _, h := range hints {
			if rest == hintOpen+h+hintClose {
				return true
			}
		}
	}
	return false
}
