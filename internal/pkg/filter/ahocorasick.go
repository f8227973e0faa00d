// Package filter provides multi-pattern text matching for the fraud
// signal: on-screen text extracted from sampled frames is scanned against
// a fraud-phrase list in a single pass.
package filter

import (
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Match represents a fraud phrase found in scanned text.
type Match struct {
	Term     string
	Position int
	Category string
}

// Pattern stores a fraud phrase and its category.
type Pattern struct {
	Term     string
	Category string
}

// ahoCorasickNode represents a node in the Aho-Corasick automaton.
type ahoCorasickNode struct {
	children    map[rune]*ahoCorasickNode
	failLink    *ahoCorasickNode
	output      []Pattern
	isEndOfWord bool
}

// AhoCorasick implements the Aho-Corasick string matching algorithm.
// Safe for concurrent Search; Build swaps the automaton under a lock.
type AhoCorasick struct {
	root *ahoCorasickNode
	mu   sync.RWMutex
}

// NewAhoCorasick creates a new Aho-Corasick automaton.
func NewAhoCorasick() *AhoCorasick {
	return &AhoCorasick{
		root: newAhoCorasickNode(),
	}
}

func newAhoCorasickNode() *ahoCorasickNode {
	return &ahoCorasickNode{
		children: make(map[rune]*ahoCorasickNode),
		output:   make([]Pattern, 0),
	}
}

// Build builds the automaton from a list of patterns, replacing any
// previous pattern set.
func (ac *AhoCorasick) Build(patterns []Pattern) {
	ac.mu.Lock()
	defer ac.mu.Unlock()

	ac.root = newAhoCorasickNode()
	for _, pattern := range patterns {
		ac.addPattern(pattern)
	}
	ac.buildFailLinks()
}

// addPattern adds a single pattern to the trie.
func (ac *AhoCorasick) addPattern(pattern Pattern) {
	node := ac.root
	normalized := NormalizeText(pattern.Term)

	for _, char := range normalized {
		if _, ok := node.children[char]; !ok {
			node.children[char] = newAhoCorasickNode()
		}
		node = node.children[char]
	}

	node.isEndOfWord = true
	node.output = append(node.output, pattern)
}

// buildFailLinks builds the fail links using BFS.
func (ac *AhoCorasick) buildFailLinks() {
	queue := make([]*ahoCorasickNode, 0)

	for _, child := range ac.root.children {
		child.failLink = ac.root
		queue = append(queue, child)
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for char, child := range current.children {
			queue = append(queue, child)

			// Longest proper suffix that is also a prefix
			failNode := current.failLink
			for failNode != nil && failNode.children[char] == nil {
				failNode = failNode.failLink
			}

			if failNode == nil {
				child.failLink = ac.root
			} else {
				child.failLink = failNode.children[char]
				child.output = append(child.output, child.failLink.output...)
			}
		}
	}
}

// Search returns all pattern matches in the given text.
func (ac *AhoCorasick) Search(text string) []Match {
	ac.mu.RLock()
	defer ac.mu.RUnlock()

	matches := make([]Match, 0)
	normalized := NormalizeText(text)
	node := ac.root
	position := 0

	for _, char := range normalized {
		for node != nil && node.children[char] == nil {
			node = node.failLink
		}

		if node == nil {
			node = ac.root
		} else {
			node = node.children[char]
		}

		for _, pattern := range node.output {
			matches = append(matches, Match{
				Term:     pattern.Term,
				Position: position - len([]rune(pattern.Term)) + 1,
				Category: pattern.Category,
			})
		}
		position++
	}

	return matches
}

// HasMatch checks if any pattern matches the text (faster than Search).
func (ac *AhoCorasick) HasMatch(text string) bool {
	ac.mu.RLock()
	defer ac.mu.RUnlock()

	normalized := NormalizeText(text)
	node := ac.root

	for _, char := range normalized {
		for node != nil && node.children[char] == nil {
			node = node.failLink
		}

		if node == nil {
			node = ac.root
		} else {
			node = node.children[char]
		}

		if len(node.output) > 0 {
			return true
		}
	}

	return false
}

// NormalizeText normalizes text for matching.
// - Converts to lowercase
// - Removes diacritics
// - Normalizes unicode
// - Handles leetspeak
func NormalizeText(text string) string {
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)), // Remove diacritics
		norm.NFC,
	)
	result, _, _ := transform.String(t, text)

	lowered := make([]rune, 0, len(result))
	for _, r := range result {
		lowered = append(lowered, unicode.ToLower(r))
	}

	// Leetspeak substitutions; scam overlays often obfuscate this way
	leetMap := map[rune]rune{
		'0': 'o',
		'1': 'i',
		'3': 'e',
		'4': 'a',
		'5': 's',
		'7': 't',
		'8': 'b',
		'@': 'a',
		'$': 's',
	}

	normalized := make([]rune, 0, len(lowered))
	for _, r := range lowered {
		if replacement, ok := leetMap[r]; ok {
			normalized = append(normalized, replacement)
		} else {
			normalized = append(normalized, r)
		}
	}

	return string(normalized)
}
