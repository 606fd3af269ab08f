package similarity

import (
	"strings"
	"unicode"
)

// Small English stoplist; ingredient strings and article bodies both pass
// through here. Korean particles are handled by the bigram split below, not
// by a stoplist.
var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "but": true, "by": true, "for": true, "from": true, "in": true,
	"is": true, "it": true, "of": true, "on": true, "or": true, "the": true,
	"to": true, "with": true,
}

// Tokenize normalizes text for vectorization: lowercase, split on anything
// that is not a letter or digit. Runs of Hangul or Han characters are split
// into overlapping character bigrams instead of whitespace tokens, since
// agglutinative ingredient strings ("양파를 볶는다") carry particles that naive
// splitting would fold into the term.
func Tokenize(text string) []string {
	var tokens []string
	var latin []rune
	var cjk []rune

	flushLatin := func() {
		if len(latin) == 0 {
			return
		}
		tok := strings.ToLower(string(latin))
		latin = latin[:0]
		if len(tok) < 2 || stopwords[tok] {
			return
		}
		tokens = append(tokens, tok)
	}
	flushCJK := func() {
		if len(cjk) == 0 {
			return
		}
		if len(cjk) == 1 {
			tokens = append(tokens, string(cjk))
		} else {
			for i := 0; i+1 < len(cjk); i++ {
				tokens = append(tokens, string(cjk[i:i+2]))
			}
		}
		cjk = cjk[:0]
	}

	for _, r := range text {
		switch {
		case unicode.Is(unicode.Hangul, r) || unicode.Is(unicode.Han, r):
			flushLatin()
			cjk = append(cjk, r)
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			flushCJK()
			latin = append(latin, r)
		default:
			flushLatin()
			flushCJK()
		}
	}
	flushLatin()
	flushCJK()

	return tokens
}
