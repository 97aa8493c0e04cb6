package extractor

import (
	"regexp"
	"sort"
	"strings"
)

// Result is a key -> fallback mapping ordered by first sighting in the
// source. When the same key appears more than once the later fallback wins
// but the original position is kept.
type Result struct {
	Order []string
	Pairs map[string]string
}

func (r *Result) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Order)
}

var tCallRE = regexp.MustCompile(`\bt\(\s*(?:'([^']*)'|"([^"]*)"|` + "`([^`]*)`" + `)\s*(?:,\s*(?:'([^']*)'|"([^"]*)"|` + "`([^`]*)`" + `)\s*)?\)`)

var backtickRE = regexp.MustCompile("`([^`]*)`")

var keyRE = regexp.MustCompile(`^[a-z0-9]+(?:[.-][a-z0-9]+)*$`)

// Extract scans generated source text for t(<key>[, <fallback>]) calls plus
// static backtick literals that look like translation keys. Keys carrying
// unresolved interpolation placeholders cannot be statically resolved and
// are skipped. Pure function, deterministic for identical input.
func Extract(src string) *Result {
	res := &Result{Pairs: map[string]string{}}

	type hit struct {
		pos      int
		key      string
		fallback string
	}
	var hits []hit

	calls := tCallRE.FindAllStringSubmatchIndex(src, -1)
	spans := make([][2]int, 0, len(calls))
	for _, m := range calls {
		spans = append(spans, [2]int{m[0], m[1]})
		key, ok := pick(src, m, 1, 2, 3)
		if !ok || strings.Contains(key, "${") {
			continue
		}
		fallback, ok := pick(src, m, 4, 5, 6)
		if !ok || strings.Contains(fallback, "${") {
			fallback = key
		}
		hits = append(hits, hit{pos: m[0], key: key, fallback: fallback})
	}

	for _, m := range backtickRE.FindAllStringSubmatchIndex(src, -1) {
		if inside(spans, m[0]) {
			continue
		}
		lit := src[m[2]:m[3]]
		if !IsValidKey(lit) {
			continue
		}
		hits = append(hits, hit{pos: m[0], key: lit, fallback: lit})
	}

	sort.Slice(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })
	for _, h := range hits {
		if _, seen := res.Pairs[h.key]; !seen {
			res.Order = append(res.Order, h.key)
		}
		res.Pairs[h.key] = h.fallback
	}
	return res
}

// IsValidKey reports whether key is a 3-128 character lowercase identifier
// of dot-separated segments (hyphens allowed within segments).
func IsValidKey(key string) bool {
	if len(key) < 3 || len(key) > 128 {
		return false
	}
	if !strings.Contains(key, ".") {
		return false
	}
	return keyRE.MatchString(key)
}

// pick returns the first present capture group among nums.
func pick(src string, m []int, nums ...int) (string, bool) {
	for _, n := range nums {
		if m[2*n] >= 0 {
			return src[m[2*n]:m[2*n+1]], true
		}
	}
	return "", false
}

func inside(spans [][2]int, pos int) bool {
	for _, s := range spans {
		if pos >= s[0] && pos < s[1] {
			return true
		}
	}
	return false
}
