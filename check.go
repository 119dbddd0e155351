package uparse

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// DisallowAll is the default CharacterCheck: no codepoint outside the
// categorical word constituents is merged into words.
type DisallowAll struct{}

// AllowedInWord always returns false.
func (DisallowAll) AllowedInWord(rune, Sequence) bool {
	return false
}

// smallWhitelist checks a handful of codepoints by linear scan.
type smallWhitelist struct {
	allowInWords []rune
}

func (w smallWhitelist) AllowedInWord(cp rune, seq Sequence) bool {
	for _, allowed := range w.allowInWords {
		if cp == allowed {
			return true
		}
	}
	return false
}

// sortedWhitelist checks codepoints against an ordered set.
type sortedWhitelist struct {
	allowInWords *treeset.Set
}

func (w sortedWhitelist) AllowedInWord(cp rune, seq Sequence) bool {
	return w.allowInWords.Contains(cp)
}

// NewWhitelist creates a CharacterCheck accepting exactly the given
// codepoints. Small whitelists are scanned linearly, larger ones are kept
// in an ordered set.
func NewWhitelist(allowInWords []rune) CharacterCheck {
	if len(allowInWords) < 4 {
		w := smallWhitelist{allowInWords: make([]rune, len(allowInWords))}
		copy(w.allowInWords, allowInWords)
		return w
	}
	set := treeset.NewWith(utils.Int32Comparator)
	for _, cp := range allowInWords {
		set.Add(cp)
	}
	return sortedWhitelist{allowInWords: set}
}
