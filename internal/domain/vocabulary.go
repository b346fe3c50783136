package domain

import (
	"github.com/kapu/subtitle-vocab-go/internal/util"
	"github.com/kapu/subtitle-vocab-go/pkg/errors"
)

// VocabularyQuery is one request for a memorisation explanation: a subtitle
// line, its translation and the word the learner wants to remember.
type VocabularyQuery struct {
	EnglishSentence string `json:"english_sentence"`
	ChineseSentence string `json:"chinese_sentence"`
	Word            string `json:"word"`
}

func (q VocabularyQuery) Validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"english_sentence", q.EnglishSentence},
		{"chinese_sentence", q.ChineseSentence},
		{"word", q.Word},
	}
	for _, f := range fields {
		if util.IsBlank(f.value) {
			return errors.NewValidationError(f.name+" is required", f.name, f.value)
		}
	}
	return nil
}
