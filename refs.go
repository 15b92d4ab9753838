package serime

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// referenceEncoder interns values by pointer identity during encode. The
// first sighting of a node allocates an id and wraps its serialization in a
// @id= declaration; later sightings collapse to a #id pointer.
type referenceEncoder struct {
	ids        map[*Value]int
	next       int
	duplicates int
}

func (r *referenceEncoder) wipe() {
	r.ids = make(map[*Value]int)
	r.next = 0
	r.duplicates = 0
}

func (r *referenceEncoder) lookup(v *Value) (int, bool) {
	id, ok := r.ids[v]
	return id, ok
}

// declare assigns the next id to v. Number nodes holding ±0 are exempt so
// the two zeroes can never collapse onto one declaration.
func (r *referenceEncoder) declare(v *Value) (int, bool) {
	if v.Kind == KindNumber && v.Num == 0 {
		return 0, false
	}
	id := r.next
	r.ids[v] = id
	r.next++
	return id, true
}

var (
	refDeclRe    = regexp.MustCompile(`@(\d+)=`)
	refPointerRe = regexp.MustCompile(`#(\d+)`)
	refEitherRe  = regexp.MustCompile(`@(\d+)=|#(\d+)`)
)

// cleanReferences prunes declarations no pointer consumes and renumbers the
// survivors to a compact 0..k-1 range in first-declaration order. The @ and
// # characters are reserved, so outside escapes they only ever spell
// reference syntax.
func cleanReferences(s string) string {
	if !strings.ContainsRune(s, tokRefSet) {
		return s
	}
	used := make(map[int]bool)
	for _, m := range refPointerRe.FindAllStringSubmatch(s, -1) {
		id, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		used[id] = true
	}
	remap := make(map[int]int)
	next := 0
	for _, m := range refDeclRe.FindAllStringSubmatch(s, -1) {
		id, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if used[id] {
			if _, ok := remap[id]; !ok {
				remap[id] = next
				next++
			}
		}
	}
	return refEitherRe.ReplaceAllStringFunc(s, func(m string) string {
		if m[0] == tokRefSet {
			id, _ := strconv.Atoi(m[1 : len(m)-1])
			fresh, ok := remap[id]
			if !ok {
				return ""
			}
			return string(tokRefSet) + strconv.Itoa(fresh) + string(tokRefAssign)
		}
		id, _ := strconv.Atoi(m[1:])
		if fresh, ok := remap[id]; ok {
			return string(tokRefGet) + strconv.Itoa(fresh)
		}
		return m
	})
}

// referenceDecoder binds ids to decoded holders. Holders of entried values
// are bound before their children decode, which is what lets cycles close.
type referenceDecoder struct {
	values map[int]*Value
}

func (r *referenceDecoder) wipe() {
	r.values = make(map[int]*Value)
}

func (r *referenceDecoder) get(id int) (*Value, error) {
	v, ok := r.values[id]
	if !ok {
		return nil, fmt.Errorf("%w: unbound id %d", ErrDecodeReference, id)
	}
	return v, nil
}

func (r *referenceDecoder) set(id int, v *Value) {
	r.values[id] = v
}
