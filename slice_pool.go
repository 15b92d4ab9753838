package serime

import "github.com/delaneyj/toolbelt"

var (
	entryPairPool = toolbelt.New(func() []entryPair { return make([]entryPair, 0, 8) })
	stringPool    = toolbelt.New(func() []string { return make([]string, 0, 8) })
)

func getEntryPairs() []entryPair {
	return entryPairPool.Get()[:0]
}

func putEntryPairs(s []entryPair) {
	if s == nil {
		return
	}
	entryPairPool.Put(s[:0])
}

func getStringSlice() []string {
	return stringPool.Get()[:0]
}

func putStringSlice(s []string) {
	if s == nil {
		return
	}
	stringPool.Put(s[:0])
}
