package reconcile

import (
	"strings"

	"github.com/kapu/subtitle-vocab-go/internal/domain"
)

// Classifier assigns an episode label to a sentence by literal substring
// containment. References are checked in order; the first hit wins.
type Classifier struct {
	refs []domain.Reference
}

func NewClassifier(refs []domain.Reference) *Classifier {
	return &Classifier{refs: refs}
}

// Match returns the label of the first reference containing sentence.
// Empty sentences and empty references never match.
func (c *Classifier) Match(sentence string) (string, bool) {
	if sentence == "" {
		return "", false
	}
	for _, ref := range c.refs {
		if ref.Text == "" {
			continue
		}
		if strings.Contains(ref.Text, sentence) {
			return ref.Label, true
		}
	}
	return "", false
}

// Rules are the fixed values forced onto every record.
type Rules struct {
	SeriesName string
	Status     int
}

// Apply sets the forced columns and, on a match, the episode. An unmatched
// record keeps whatever episode it already had.
func (c *Classifier) Apply(record *domain.WordRecord, rules Rules) (string, bool) {
	record.SeriesName = rules.SeriesName
	record.Status = rules.Status

	label, ok := c.Match(record.Sentence)
	if ok {
		episode := label
		record.Episode = &episode
	}
	return label, ok
}
