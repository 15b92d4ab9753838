package serime

import "fmt"

// entryPair is one tokenized key/value fragment pair of a {…} body.
type entryPair struct {
	key   string
	value string
}

// splitEntries tokenizes the body between the outermost braces of an entried
// payload into key/value fragment pairs. Braces and key brackets nested
// inside fragments raise the depth counter, so , and : only separate at
// depth zero; the first depth-zero : of each pair splits key from value,
// later ones belong to the value (an accessibility prefix carries its own
// :). Reserved characters
// inside payloads are escaped, so the scan never misfires on content.
//
// The returned slice is pooled; hand it back with putEntryPairs.
func splitEntries(body string) ([]entryPair, error) {
	pairs := getEntryPairs()
	if body == "" {
		return pairs, nil
	}
	depth := 0
	start := 0
	keyAt := -1 // byte offset of the pair's first depth-zero ':'
	flush := func(end int) error {
		if keyAt < 0 {
			return fmt.Errorf("%w: entry %q has no key/value separator", ErrDecodeGrammar, body[start:end])
		}
		pairs = append(pairs, entryPair{key: body[start:keyAt], value: body[keyAt+1 : end]})
		start = end + 1
		keyAt = -1
		return nil
	}
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case tokEntriesOpen, tokKeyOpen:
			depth++
		case tokEntriesEnd, tokKeyClose:
			depth--
			if depth < 0 {
				putEntryPairs(pairs)
				return nil, fmt.Errorf("%w: unbalanced braces in entry body", ErrDecodeGrammar)
			}
		case tokKeyValue:
			if depth == 0 && keyAt < 0 {
				keyAt = i
			}
		case tokEntrySep:
			if depth == 0 {
				if err := flush(i); err != nil {
					putEntryPairs(pairs)
					return nil, err
				}
			}
		}
	}
	if depth != 0 {
		putEntryPairs(pairs)
		return nil, fmt.Errorf("%w: unbalanced braces in entry body", ErrDecodeGrammar)
	}
	if err := flush(len(body)); err != nil {
		putEntryPairs(pairs)
		return nil, err
	}
	return pairs, nil
}
