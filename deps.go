package serime

import (
	"fmt"
	"strings"
)

// dependencyTable collects the custom classes a graph references, in first
// sighting order. Positions double as the $N tag indices.
type dependencyTable struct {
	classes []*Class
	index   map[*Class]int
}

func (d *dependencyTable) wipe() {
	d.classes = d.classes[:0]
	d.index = make(map[*Class]int)
}

// add returns the table index of class, appending it on first sight.
func (d *dependencyTable) add(class *Class) int {
	if id, ok := d.index[class]; ok {
		return id
	}
	id := len(d.classes)
	d.classes = append(d.classes, class)
	d.index[class] = id
	return id
}

// prelude renders the ![name,…]! table, or "" when no class was seen.
func (d *dependencyTable) prelude() string {
	if len(d.classes) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteByte(tokDepsFence)
	sb.WriteByte(tokKeyOpen)
	for i, class := range d.classes {
		if i > 0 {
			sb.WriteByte(tokEntrySep)
		}
		sb.WriteString(Escape(class.Name))
	}
	sb.WriteByte(tokKeyClose)
	sb.WriteByte(tokDepsFence)
	return sb.String()
}

// parseDependencyPrelude strips a leading ![…]! table from input and
// resolves each listed name against the supplied classes. Names must be
// unique and every one must resolve.
func parseDependencyPrelude(input string, supplied []*Class) (map[int]*Class, string, error) {
	if !strings.HasPrefix(input, string(tokDepsFence)+string(tokKeyOpen)) {
		return nil, input, nil
	}
	closeAt := strings.Index(input, string(tokKeyClose)+string(tokDepsFence))
	if closeAt < 0 {
		return nil, "", fmt.Errorf("%w: unterminated dependency list", ErrDecodeGrammar)
	}
	body := input[2:closeAt]
	rest := input[closeAt+2:]
	byName := make(map[string]*Class, len(supplied))
	for _, class := range supplied {
		byName[class.Name] = class
	}
	resolved := make(map[int]*Class)
	seen := make(map[string]bool)
	names := getStringSlice()
	defer func() { putStringSlice(names) }()
	if body != "" {
		names = append(names, strings.Split(body, string(tokEntrySep))...)
	}
	for i, raw := range names {
		name := Unescape(raw)
		if name == "" {
			return nil, "", fmt.Errorf("%w: empty dependency name", ErrDecodeGrammar)
		}
		if seen[name] {
			return nil, "", fmt.Errorf("%w: duplicate dependency %q", ErrDecodeReference, name)
		}
		seen[name] = true
		class, ok := byName[name]
		if !ok {
			return nil, "", fmt.Errorf("%w: dependency %q not supplied", ErrDecodeReference, name)
		}
		resolved[i] = class
	}
	return resolved, rest, nil
}
