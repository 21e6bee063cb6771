package analysis

import (
	"sort"
	"strings"
	"unicode"

	"github.com/mbolis/reqlicit/model"
)

const (
	// TopKeywords is the maximum number of entries AnalyzeKeywords returns.
	TopKeywords = 10
	// minKeywordLen is the shortest token that is counted.
	minKeywordLen = 3
)

// Tokenize lowercases text, drops every character that is not an ASCII
// letter, digit, underscore or whitespace, and splits on whitespace runs.
// Dropped characters are removed, not replaced: "well-being" is one token.
func Tokenize(text string) []string {
	text = strings.ToLower(text)
	text = strings.Map(func(r rune) rune {
		if isWordChar(r) || isSpace(r) {
			return r
		}
		return -1
	}, text)
	return strings.FieldsFunc(text, isSpace)
}

// isSpace also counts the byte order mark, which unicode.IsSpace does not.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\ufeff'
}

func isWordChar(r rune) bool {
	return r == '_' ||
		('a' <= r && r <= 'z') ||
		('A' <= r && r <= 'Z') ||
		('0' <= r && r <= '9')
}

func keep(token string) bool {
	return len(token) >= minKeywordLen && !IsStopWord(token)
}

// AnalyzeKeywords counts every surviving token occurrence across texts and
// returns the TopKeywords most frequent, highest count first. Equal counts
// keep the order in which the tokens were first seen.
func AnalyzeKeywords(texts []string) []model.KeywordFrequency {
	counts := map[string]int{}
	var order []string

	for _, text := range texts {
		for _, token := range Tokenize(text) {
			if !keep(token) {
				continue
			}
			if _, seen := counts[token]; !seen {
				order = append(order, token)
			}
			counts[token]++
		}
	}

	freqs := make([]model.KeywordFrequency, len(order))
	for i, token := range order {
		freqs[i] = model.KeywordFrequency{Text: token, Count: counts[token]}
	}
	sort.SliceStable(freqs, func(i, j int) bool {
		return freqs[i].Count > freqs[j].Count
	})

	if len(freqs) > TopKeywords {
		freqs = freqs[:TopKeywords]
	}
	return freqs
}
