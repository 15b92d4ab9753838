package serime

import (
	"fmt"
	"strconv"
)

type refAction uint8

const (
	refNone refAction = iota
	refGet
	refSet
)

// blockInfo is the parsed shape of one serialized block: key-index wrapper,
// accessibility prefix, reference action, type tag, and payload.
type blockInfo struct {
	isKeyIndex    bool
	keyBody       string
	descriptor    uint32
	hasDescriptor bool

	access    uint32
	hasAccess bool

	ref   refAction
	refID int

	tag        Tag
	payload    string
	hasPayload bool
}

// countDigits returns the length of the leading decimal run of s.
func countDigits(s string) int {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return i
}

// parseBlockInfo dissects one block fragment. Key fragments ([…] with an
// optional %flags suffix) stop at the key wrapper; value fragments carry an
// optional %flags: accessibility prefix, then exactly one of a #id pointer,
// an @id= declaration, or a plain tagged payload.
func parseBlockInfo(s string) (blockInfo, error) {
	var info blockInfo
	if s == "" {
		return info, fmt.Errorf("%w: empty block", ErrDecodeGrammar)
	}

	if s[0] == tokKeyOpen {
		depth := 0
		end := -1
		for i := 0; i < len(s); i++ {
			switch s[i] {
			case tokKeyOpen:
				depth++
			case tokKeyClose:
				depth--
				if depth == 0 {
					end = i
				}
			}
			if end >= 0 {
				break
			}
		}
		if end < 0 {
			return info, fmt.Errorf("%w: unterminated key index", ErrDecodeGrammar)
		}
		info.isKeyIndex = true
		info.keyBody = s[1:end]
		rest := s[end+1:]
		if rest != "" {
			if rest[0] != tokFlag {
				return info, fmt.Errorf("%w: trailing %q after key index", ErrDecodeGrammar, rest)
			}
			n := countDigits(rest[1:])
			if n == 0 || 1+n != len(rest) {
				return info, fmt.Errorf("%w: bad descriptor flags %q", ErrDecodeGrammar, rest)
			}
			flags, err := strconv.ParseUint(rest[1:], 10, 32)
			if err != nil {
				return info, fmt.Errorf("%w: bad descriptor flags %q", ErrDecodeGrammar, rest)
			}
			info.descriptor = uint32(flags)
			info.hasDescriptor = true
		}
		return info, nil
	}

	rest := s
	if rest[0] == tokFlag {
		n := countDigits(rest[1:])
		if n == 0 || 1+n >= len(rest) || rest[1+n] != tokKeyValue {
			return info, fmt.Errorf("%w: bad accessibility flags in %q", ErrDecodeGrammar, s)
		}
		flags, err := strconv.ParseUint(rest[1:1+n], 10, 32)
		if err != nil {
			return info, fmt.Errorf("%w: bad accessibility flags in %q", ErrDecodeGrammar, s)
		}
		info.access = uint32(flags)
		info.hasAccess = true
		rest = rest[1+n+1:]
		if rest == "" {
			return info, fmt.Errorf("%w: accessibility flags with no value", ErrDecodeGrammar)
		}
	}

	switch rest[0] {
	case tokRefGet:
		n := countDigits(rest[1:])
		if n == 0 || 1+n != len(rest) {
			return info, fmt.Errorf("%w: bad reference pointer %q", ErrDecodeGrammar, rest)
		}
		id, err := strconv.Atoi(rest[1:])
		if err != nil {
			return info, fmt.Errorf("%w: bad reference pointer %q", ErrDecodeGrammar, rest)
		}
		info.ref = refGet
		info.refID = id
		return info, nil
	case tokRefSet:
		n := countDigits(rest[1:])
		if n == 0 || 1+n >= len(rest) || rest[1+n] != tokRefAssign {
			return info, fmt.Errorf("%w: bad reference declaration in %q", ErrDecodeGrammar, s)
		}
		id, err := strconv.Atoi(rest[1 : 1+n])
		if err != nil {
			return info, fmt.Errorf("%w: bad reference declaration in %q", ErrDecodeGrammar, s)
		}
		info.ref = refSet
		info.refID = id
		rest = rest[1+n+1:]
		if rest == "" {
			return info, fmt.Errorf("%w: reference declaration with no value", ErrDecodeGrammar)
		}
	}

	tagEnd := len(rest)
	for i := 0; i < len(rest); i++ {
		if rest[i] == tokPayload {
			tagEnd = i
			break
		}
	}
	tag, err := parseTag(rest[:tagEnd])
	if err != nil {
		return info, err
	}
	info.tag = tag
	if tagEnd < len(rest) {
		info.payload = rest[tagEnd+1:]
		info.hasPayload = true
	}
	return info, nil
}
