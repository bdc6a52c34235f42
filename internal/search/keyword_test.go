package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "lowercases and splits on whitespace", in: "  Prevent  SQL\tInjection ", want: []string{"prevent", "sql", "injection"}},
		{name: "punctuation separates", in: "CI/CD, pre-commit!", want: []string{"ci", "cd", "pre", "commit"}},
		{name: "diacritics folded", in: "Café Résumé", want: []string{"cafe", "resume"}},
		{name: "digits kept", in: "OAuth2 http/2", want: []string{"oauth2", "http", "2"}},
		{name: "empty", in: "  ?! ", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.in)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatch_PhraseKeyword(t *testing.T) {
	doc := newTestDoc(t, "sec-1", "security", "xss", "csrf", "sql injection")

	res := Match(NewQuery("how do I prevent sql injection in my API"), doc)

	assert.Equal(t, "sec-1", res.DocumentID)
	assert.Equal(t, []string{"sql injection"}, res.MatchedKeywords)
	assert.InDelta(t, 1.0/3.0, res.Score, 1e-9)
}

func TestMatch_PhraseRequiresContiguousTokens(t *testing.T) {
	doc := newTestDoc(t, "sec-1", "security", "sql injection")

	t.Run("separated by another token", func(t *testing.T) {
		res := Match(NewQuery("sql free injection"), doc)
		assert.Zero(t, res.Score)
		assert.Empty(t, res.MatchedKeywords)
	})

	t.Run("punctuation between tokens still matches", func(t *testing.T) {
		res := Match(NewQuery("SQL-injection attacks"), doc)
		assert.Equal(t, []string{"sql injection"}, res.MatchedKeywords)
	})

	t.Run("token prefix does not match", func(t *testing.T) {
		res := Match(NewQuery("mysql injection"), doc)
		assert.Zero(t, res.Score)
	})
}

func TestMatch_SingleKeywordIsTokenMembership(t *testing.T) {
	doc := newTestDoc(t, "api", "backend", "api")

	assert.Zero(t, Match(NewQuery("rapid prototyping"), doc).Score)
	assert.Equal(t, 1.0, Match(NewQuery("design an API"), doc).Score)
}

func TestMatch_CategoryBonus(t *testing.T) {
	doc := newTestDoc(t, "sec-1", "security", "xss", "csrf", "sql injection")

	t.Run("bonus with keyword hit", func(t *testing.T) {
		res := Match(NewQuery("security review for xss"), doc)
		assert.InDelta(t, 1.0/3.0+CategoryBonus, res.Score, 1e-9)
	})

	t.Run("bonus alone", func(t *testing.T) {
		res := Match(NewQuery("general security questions"), doc)
		assert.Equal(t, CategoryBonus, res.Score)
		assert.Empty(t, res.MatchedKeywords)
	})

	t.Run("substring of a longer token", func(t *testing.T) {
		res := Match(NewQuery("appsecurity"), doc)
		assert.Equal(t, CategoryBonus, res.Score)
	})

	t.Run("multi token category", func(t *testing.T) {
		d := newTestDoc(t, "cicd", "CI/CD", "pipeline")
		res := Match(NewQuery("fix my ci cd pipeline"), d)
		assert.Equal(t, 1.0+CategoryBonus, res.Score)
	})
}

func TestMatch_EmptyQueryScoresZero(t *testing.T) {
	doc := newTestDoc(t, "sec-1", "security", "xss")

	for _, text := range []string{"", "   ", "?!..."} {
		res := Match(NewQuery(text), doc)
		assert.Zero(t, res.Score, "query %q", text)
		assert.Empty(t, res.MatchedKeywords)
	}
}

func TestMatch_ScoreRange(t *testing.T) {
	docs := []*Document{
		newTestDoc(t, "a", "testing", "unit", "integration"),
		newTestDoc(t, "b", "security", "xss"),
		newTestDoc(t, "c", "ops", "deploy", "rollback", "canary", "blue green"),
	}
	queries := []string{
		"unit integration testing",
		"xss security security",
		"deploy rollback canary blue green ops",
		"nothing relevant here",
		"",
	}
	for _, q := range queries {
		query := NewQuery(q)
		for _, d := range docs {
			res := Match(query, d)
			assert.GreaterOrEqual(t, res.Score, 0.0)
			assert.LessOrEqual(t, res.Score, 1.0+CategoryBonus)

			if len(res.MatchedKeywords) == 0 && !containsCategory(query, d) {
				assert.Zero(t, res.Score, "doc %s query %q", d.ID(), q)
			}
		}
	}
}

func containsCategory(q Query, d *Document) bool {
	return strings.Contains(q.Normalized(), d.Category())
}

func TestMatch_MatchedKeywordsFollowDocumentOrder(t *testing.T) {
	doc := newTestDoc(t, "d", "misc", "gamma", "alpha", "beta")

	res := Match(NewQuery("beta alpha gamma"), doc)

	assert.Equal(t, []string{"gamma", "alpha", "beta"}, res.MatchedKeywords)
	assert.Equal(t, 1.0, res.Score)
}

func TestMatch_AddingMatchingKeywordIsMonotonic(t *testing.T) {
	q := NewQuery("deploy with canary and rollback")
	other := newTestDoc(t, "other", "misc", "canary", "feature flags")

	before := newTestDoc(t, "target", "ops", "deploy", "terraform", "helm")
	after := newTestDoc(t, "target", "ops", "deploy", "terraform", "helm", "rollback")

	scoreBefore := Match(q, before).Score
	scoreAfter := Match(q, after).Score
	assert.GreaterOrEqual(t, scoreAfter, scoreBefore)

	rank := func(target *Document) int {
		results := Rank([]MatchResult{Match(q, target), Match(q, other)}, DefaultRankOptions())
		for i, r := range results {
			if r.DocumentID == "target" {
				return i
			}
		}
		return len(results)
	}
	assert.LessOrEqual(t, rank(after), rank(before))
}

func TestNewQuery(t *testing.T) {
	q := NewQuery("Fix the CI pipeline", KindCommand)

	assert.Equal(t, []string{"fix", "the", "ci", "pipeline"}, q.Tokens())
	assert.Equal(t, "fix the ci pipeline", q.Normalized())
	assert.False(t, q.Empty())
	assert.True(t, q.allows(KindCommand))
	assert.False(t, q.allows(KindSkill))

	all := NewQuery("x")
	require.Empty(t, all.Kinds)
	assert.True(t, all.allows(KindWorkflow))
}
