package rewrite

import (
	"strings"
	"testing"

	"github.com/ppiankov/textprobe/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggest_TermSubstitution(t *testing.T) {
	s := NewSuggester("")

	got := s.Suggest("É necessário utilizar Python")
	require.Len(t, got, 1)

	assert.Equal(t, model.SuggestionTermSubstitution, got[0].Kind)
	assert.Equal(t, "É necessário utilizar Python", got[0].Original)
	assert.Equal(t, "deve-se usar Python", got[0].Suggestion)
	assert.Equal(t, []string{
		"'utilizar' → 'usar'",
		"'é necessário' → 'deve-se'",
	}, got[0].Changes)
}

func TestSuggest_CaseInsensitiveAndAllMatches(t *testing.T) {
	s := NewSuggester("")

	got := s.Suggest("REALIZAR testes e realizar revisões")
	require.Len(t, got, 1)
	assert.Equal(t, "fazer testes e fazer revisões", got[0].Suggestion)
	assert.Equal(t, []string{"'realizar' → 'fazer'"}, got[0].Changes)
}

func TestSuggest_PassiveVoice(t *testing.T) {
	got := NewSuggester("").Suggest("O método é utilizado e os dados são empregados")
	require.Len(t, got, 1)
	assert.Equal(t, "O método usa-se e os dados usam-se", got[0].Suggestion)
	assert.Len(t, got[0].Changes, 2)
}

func TestSuggest_Restructuring(t *testing.T) {
	sentence := "Deep learning utiliza redes neurais artificiais com múltiplas camadas para modelar dados complexos"
	got := NewSuggester("").Suggest(sentence)

	// "utiliza" does not contain "utilizar", so only the paraphrase applies
	require.Len(t, got, 1)
	assert.Equal(t, model.SuggestionRestructuring, got[0].Kind)
	assert.Equal(t, "In other words, "+strings.ToLower(sentence), got[0].Suggestion)
	assert.Equal(t, []string{"added explanatory connective"}, got[0].Changes)
}

func TestSuggest_CustomPrefix(t *testing.T) {
	sentence := "um dois três quatro cinco seis sete oito nove dez onze"
	got := NewSuggester("Em outras palavras, ").Suggest(sentence)
	require.Len(t, got, 1)
	assert.Equal(t, "Em outras palavras, "+sentence, got[0].Suggestion)
}

func TestSuggest_WordCountBoundary(t *testing.T) {
	s := NewSuggester("")

	ten := "um dois três quatro cinco seis sete oito nove dez"
	assert.Empty(t, s.Suggest(ten))

	eleven := ten + " onze"
	assert.Len(t, s.Suggest(eleven), 1)
}

func TestSuggest_BothKinds(t *testing.T) {
	sentence := "Em muitos projetos é importante desenvolver e implementar testes automatizados desde cedo"
	got := NewSuggester("").Suggest(sentence)

	require.Len(t, got, 2)
	assert.Equal(t, model.SuggestionTermSubstitution, got[0].Kind)
	assert.Equal(t, "Em muitos projetos cabe destacar criar e aplicar testes automatizados desde cedo", got[0].Suggestion)
	assert.Equal(t, model.SuggestionRestructuring, got[1].Kind)
}

func TestSuggest_IdempotentOnceRulesAreExhausted(t *testing.T) {
	s := NewSuggester("")

	first := s.Suggest("É possível realizar e desenvolver sistemas")
	require.Len(t, first, 1)

	second := s.Suggest(first[0].Suggestion)
	for _, sug := range second {
		assert.NotEqual(t, model.SuggestionTermSubstitution, sug.Kind)
	}
}

func TestSuggest_NoMatch(t *testing.T) {
	assert.Empty(t, NewSuggester("").Suggest("O céu está azul hoje"))
}

func TestRule_Change(t *testing.T) {
	assert.Equal(t, "'é (usado|utilizado|empregado)' → 'usa-se'", DefaultRules[0].Change())
	assert.Len(t, DefaultRules, 9)
}
