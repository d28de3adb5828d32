// Package naming derives component names from the locations a shared shape
// was found at.
//
// A shape found under "networks" in one response and "network" in another is
// named "network": every last location segment is singularized, the longest
// common prefix (or, failing that, suffix) is taken, and the result is
// cleaned and singularized once more. Allocator then makes the name unique
// against every id already in use.
//
// As an internal package, these functions are not part of the public API
// and may change without notice.
package naming

import (
	"slices"
	"strconv"
	"strings"
	"sync"

	pluralize "github.com/gertd/go-pluralize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Fallback is the name used when the segments share nothing.
const Fallback = "component"

var (
	pluralizeOnce   sync.Once
	pluralizeClient *pluralize.Client
)

func client() *pluralize.Client {
	pluralizeOnce.Do(func() {
		pluralizeClient = pluralize.NewClient()
	})
	return pluralizeClient
}

// Singular returns the singular form of an English word.
// Example: "networks" -> "network", "server" -> "server"
func Singular(word string) string {
	if word == "" {
		return ""
	}
	return client().Singular(word)
}

// Plural returns word in the form matching count: singular for exactly one,
// plural otherwise.
func Plural(word string, count int) string {
	if word == "" {
		return ""
	}
	return client().Pluralize(word, count, false)
}

// CommonPrefix returns the longest prefix shared by all values.
// Sorting first means only the smallest and largest values need comparing.
func CommonPrefix(values []string) string {
	if len(values) == 0 {
		return ""
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	first, last := []rune(sorted[0]), []rune(sorted[len(sorted)-1])
	i := 0
	for i < len(first) && i < len(last) && first[i] == last[i] {
		i++
	}
	return string(first[:i])
}

// CommonSuffix returns the longest suffix shared by all values.
func CommonSuffix(values []string) string {
	reversed := make([]string, len(values))
	for i, v := range values {
		reversed[i] = Reverse(v)
	}
	return Reverse(CommonPrefix(reversed))
}

// Reverse reverses s rune by rune.
func Reverse(s string) string {
	runes := []rune(s)
	slices.Reverse(runes)
	return string(runes)
}

// Clean lowercases s and trims surrounding underscores and whitespace.
func Clean(s string) string {
	s = cases.Lower(language.Und).String(s)
	return strings.TrimSpace(strings.Trim(s, "_"))
}

// DeriveComponentName builds a name from the last segments of the locations
// a shape occurs at.
// Example: ["networks", "network"] -> "network"
// Example: ["primary_ip", "floating_ip"] -> "ip"
func DeriveComponentName(segments []string) string {
	singular := make([]string, len(segments))
	for i, s := range segments {
		singular[i] = Singular(s)
	}
	name := CommonPrefix(singular)
	if name == "" {
		name = CommonSuffix(singular)
	}
	name = Singular(Clean(name))
	if name == "" {
		return Fallback
	}
	return name
}

// Allocator hands out names that are unique against a growing set of ids.
type Allocator struct {
	used map[string]struct{}
}

// NewAllocator returns an Allocator that treats existing as taken.
func NewAllocator(existing ...string) *Allocator {
	a := &Allocator{used: make(map[string]struct{}, len(existing))}
	for _, id := range existing {
		a.used[id] = struct{}{}
	}
	return a
}

// Reserve returns base, or base with the first free "_N" suffix, and marks
// the result as taken.
// Example: with "server" taken, Reserve("server") -> "server_1"
func (a *Allocator) Reserve(base string) string {
	name := base
	for i := 1; a.Taken(name); i++ {
		name = base + "_" + strconv.Itoa(i)
	}
	a.used[name] = struct{}{}
	return name
}

// Taken reports whether name is already in use.
func (a *Allocator) Taken(name string) bool {
	_, found := a.used[name]
	return found
}
