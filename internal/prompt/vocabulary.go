package prompt

import (
	"github.com/kapu/subtitle-vocab-go/internal/domain"
)

// VocabularyMessages is the two-message conversation sent for one query:
// the few-shot system instruction and the user's question.
type VocabularyMessages struct {
	System string
	User   string
}

type vocabularyUserData struct {
	EnglishSentence string
	ChineseSentence string
	Word            string
}

func BuildVocabulary(query domain.VocabularyQuery) (VocabularyMessages, error) {
	return DefaultPromptBuilder().BuildVocabulary(query)
}

func (pb *PromptBuilder) BuildVocabulary(query domain.VocabularyQuery) (VocabularyMessages, error) {
	system, err := pb.Render(TemplateVocabularySystem, nil)
	if err != nil {
		return VocabularyMessages{}, err
	}

	user, err := pb.Render(TemplateVocabularyUser, vocabularyUserData{
		EnglishSentence: query.EnglishSentence,
		ChineseSentence: query.ChineseSentence,
		Word:            query.Word,
	})
	if err != nil {
		return VocabularyMessages{}, err
	}

	return VocabularyMessages{System: system, User: user}, nil
}
