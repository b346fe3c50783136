package domain

import (
	stderrors "errors"
	"testing"

	"github.com/kapu/subtitle-vocab-go/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVocabularyQueryValidate(t *testing.T) {
	valid := VocabularyQuery{
		EnglishSentence: "A marathon? how many superman movies are there?",
		ChineseSentence: "马拉松到底有多少部超人电影啊",
		Word:            "marathon",
	}
	require.NoError(t, valid.Validate())

	missing := valid
	missing.ChineseSentence = "  "
	err := missing.Validate()

	var vErr *errors.ValidationError
	require.True(t, stderrors.As(err, &vErr))
	assert.Equal(t, "chinese_sentence", vErr.Field)
}

func TestWordRecordEpisodeLabel(t *testing.T) {
	var nilRecord *WordRecord
	assert.Equal(t, "", nilRecord.EpisodeLabel())

	ep := "S01E03"
	rec := &WordRecord{ID: 7, SeriesName: "TBBT", Status: 3, Episode: &ep}
	assert.Equal(t, "S01E03", rec.EpisodeLabel())
	assert.Equal(t, Classification{SeriesName: "TBBT", Status: 3, Episode: &ep}, rec.Classification())
}
