package analyze

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/jonreiter/govader"
	"go.uber.org/zap"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/lexicon"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/parse"
)

// ErrUnscorable marks a message the scorer could not rate.
var ErrUnscorable = errors.New("message cannot be scored")

// Scorer rates text on [-1, 1]; the sign carries the sentiment.
type Scorer interface {
	Polarity(text string) (float64, error)
}

// VaderScorer scores with the VADER lexicon and returns its compound value.
type VaderScorer struct {
	mu       sync.Mutex
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVaderScorer() *VaderScorer {
	return &VaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (v *VaderScorer) Polarity(text string) (score float64, err error) {
	if !utf8.ValidString(text) {
		return 0, fmt.Errorf("%w: invalid utf-8", ErrUnscorable)
	}
	defer func() {
		if r := recover(); r != nil {
			score, err = 0, fmt.Errorf("%w: %v", ErrUnscorable, r)
		}
	}()

	v.mu.Lock()
	defer v.mu.Unlock()
	c := v.analyzer.PolarityScores(text).Compound
	return math.Max(-1, math.Min(1, c)), nil
}

type Sentiment struct {
	Positive int `json:"Positive"`
	Neutral  int `json:"Neutral"`
	Negative int `json:"Negative"`
}

func (s Sentiment) Total() int {
	return s.Positive + s.Neutral + s.Negative
}

// SentimentAnalysis classifies every message in scope by the sign of its
// polarity. A message that cannot be scored is not skipped: it counts as
// Neutral, so Neutral may include unscored messages and the three counts
// always add up to the number of messages in scope.
func SentimentAnalysis(user string, records []parse.Record, scorer Scorer) Sentiment {
	var s Sentiment
	for _, r := range Scope(user, records) {
		p, err := scorer.Polarity(r.Body)
		switch {
		case err != nil || p == 0:
			s.Neutral++
		case p > 0:
			s.Positive++
		default:
			s.Negative++
		}
	}
	return s
}

// ExtractMoodCounts tallies emoji found in the mood table. Moods that never
// occur are absent from the map.
func ExtractMoodCounts(user string, records []parse.Record, moods lexicon.MoodMap) map[lexicon.Mood]int {
	out := make(map[lexicon.Mood]int)
	for _, r := range Scope(user, records) {
		emojis(r.Body, func(cluster string) {
			if mood, ok := moods.Lookup(cluster); ok {
				out[mood]++
			}
		})
	}
	return out
}

type Emotion string

const (
	EmotionPositive Emotion = "positive"
	EmotionNeutral  Emotion = "neutral"
	EmotionNegative Emotion = "negative"
)

// compoundBand is the half-width of the neutral band around 0.
const compoundBand = 0.05

// DetectDominantEmotion classifies each text message with a ±0.05 neutral
// band and returns the most frequent class. Empty, whitespace-only and media
// bodies are skipped, as are messages that fail scoring. With nothing to
// score the result is neutral. Ties go to positive, then neutral.
func DetectDominantEmotion(user string, records []parse.Record, scorer Scorer, logger *zap.Logger) Emotion {
	if logger == nil {
		logger = zap.NewNop()
	}
	counts := map[Emotion]int{}
	skipped := 0
	for _, r := range Scope(user, records) {
		if strings.TrimSpace(r.Body) == "" || r.IsMedia() {
			continue
		}
		p, err := scorer.Polarity(r.Body)
		if err != nil {
			skipped++
			logger.Debug("message skipped", zap.Int("index", r.Index), zap.Error(err))
			continue
		}
		switch {
		case p >= compoundBand:
			counts[EmotionPositive]++
		case p <= -compoundBand:
			counts[EmotionNegative]++
		default:
			counts[EmotionNeutral]++
		}
	}
	if skipped > 0 {
		logger.Debug("unscorable messages", zap.Int("skipped", skipped))
	}

	best, bestN := EmotionNeutral, 0
	for _, e := range []Emotion{EmotionPositive, EmotionNeutral, EmotionNegative} {
		if counts[e] > bestN {
			best, bestN = e, counts[e]
		}
	}
	return best
}
