// internal/planner/itinerary.go
package planner

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

const (
	freeTimeLine = "Free time / local exploration"
	// defaultPerDay only applies when there is nothing to place.
	defaultPerDay = 2

	// MaxTripDays bounds the nights and days accepted at the worker, HTTP and
	// CLI boundaries.
	MaxTripDays = 365
)

// Attractions is either an ordered list of names or a single comma-delimited
// string. The zero value is an empty list.
type Attractions struct {
	items     []string
	delimited string
	isText    bool
}

// AttractionList wraps an ordered list of attraction names.
func AttractionList(items ...string) Attractions {
	return Attractions{items: items}
}

// AttractionText wraps a comma-delimited attraction string.
func AttractionText(text string) Attractions {
	return Attractions{delimited: text, isText: true}
}

// Names resolves the input into trimmed, non-empty names in input order.
func (a Attractions) Names() []string {
	raw := a.items
	if a.isText {
		raw = strings.Split(a.delimited, ",")
	}
	names := make([]string, 0, len(raw))
	for _, item := range raw {
		if s := strings.TrimSpace(item); s != "" {
			names = append(names, s)
		}
	}
	return names
}

// UnmarshalJSON accepts an array or a string. Any other JSON value decodes
// to an empty list. Array elements that are null, false, zero or empty are
// dropped; other scalars are stringified.
func (a *Attractions) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		*a = Attractions{}
		return nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*a = AttractionText(s)
	case '[':
		var elems []interface{}
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		dec.UseNumber()
		if err := dec.Decode(&elems); err != nil {
			return err
		}
		items := make([]string, 0, len(elems))
		for _, e := range elems {
			if s, ok := stringifyAttraction(e); ok {
				items = append(items, s)
			}
		}
		*a = AttractionList(items...)
	default:
		*a = Attractions{}
	}
	return nil
}

// MarshalJSON always emits the resolved list.
func (a Attractions) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Names())
}

// stringifyAttraction drops falsy elements (null, false, 0, "", [] and {})
// and renders the rest as display text.
func stringifyAttraction(v interface{}) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case bool:
		if !t {
			return "", false
		}
		return "True", true
	case string:
		return t, t != ""
	case json.Number:
		if f, err := t.Float64(); err == nil && f == 0 {
			return "", false
		}
		return t.String(), true
	case []interface{}:
		if len(t) == 0 {
			return "", false
		}
	case map[string]interface{}:
		if len(t) == 0 {
			return "", false
		}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v), true
	}
	return string(b), true
}

// PerDay is ceil(count/days), at least 1, or the default when count is 0.
func PerDay(count, days int) int {
	if count == 0 || days <= 0 {
		return defaultPerDay
	}
	per := (count + days - 1) / days
	if per < 1 {
		per = 1
	}
	return per
}

// BuildDayPlans fills day-blocks in order with PerDay names each. A day with
// nothing left gets an empty block. Names beyond days*PerDay are dropped.
func BuildDayPlans(names []string, days int) [][]string {
	if days <= 0 {
		return [][]string{}
	}
	perDay := PerDay(len(names), days)
	plans := make([][]string, days)
	idx := 0
	for d := 0; d < days; d++ {
		end := idx + perDay
		if end > len(names) {
			end = len(names)
		}
		block := []string{}
		if idx < end {
			block = append(block, names[idx:end]...)
		}
		plans[d] = block
		idx += perDay
	}
	return plans
}

// BuildItinerary renders the day-by-day plan for destination as markdown.
func BuildItinerary(destination string, attractions Attractions, days int) string {
	return RenderItinerary(destination, BuildDayPlans(attractions.Names(), days), days)
}

// RenderItinerary formats already distributed day-blocks.
func RenderItinerary(destination string, plans [][]string, days int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s – %d-Day Itinerary\n\n", destination, days)
	for i, block := range plans {
		fmt.Fprintf(&b, "## Day %d\n", i+1)
		if len(block) == 0 {
			fmt.Fprintf(&b, "- %s\n", freeTimeLine)
		}
		for _, name := range block {
			fmt.Fprintf(&b, "- %s\n", name)
		}
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}
