package submit

import (
	"fmt"
	"sort"
	"strconv"
)

// Item is one row of item data. The two concrete forms are Mapping
// (named submit variables) and Sequence (positional values). All rows
// of a submission must use the same form, and every row must be shaped
// like the first.
type Item interface {
	item()
}

// Mapping is a named-variable item row.
type Mapping map[string]string

func (Mapping) item() {}

// Sequence is a positional item row.
type Sequence []string

func (Sequence) item() {}

// Mappings wraps rows already in the mapping form.
func Mappings(rows ...map[string]string) []Item {
	items := make([]Item, len(rows))
	for i, r := range rows {
		items[i] = Mapping(r)
	}
	return items
}

// Sequences wraps rows of positional values.
func Sequences(rows ...[]string) []Item {
	items := make([]Item, len(rows))
	for i, r := range rows {
		items[i] = Sequence(r)
	}
	return items
}

// CheckItemdata validates item data before submission. Nil item data
// is fine (a plain repeated submission); anything else must be
// non-empty, single-form, and internally consistent. Failures match
// ErrInvalidItemData.
func CheckItemdata(items []Item) error {
	if items == nil {
		return nil
	}
	if len(items) == 0 {
		return fmt.Errorf("empty item data, pass nil to submit without items: %w", ErrInvalidItemData)
	}

	switch first := items[0].(type) {
	case Mapping:
		return checkMappings(items, first)
	case Sequence:
		return checkSequences(items, first)
	default:
		return fmt.Errorf("unknown item form %T: %w", items[0], ErrInvalidItemData)
	}
}

func checkMappings(items []Item, first Mapping) error {
	keys := sortedKeys(first)
	for i, it := range items {
		m, ok := it.(Mapping)
		if !ok {
			return fmt.Errorf("item %d is %T, item 0 is a mapping: %w", i, it, ErrInvalidItemData)
		}
		if len(m) != len(first) {
			return fmt.Errorf("item %d has %d keys, item 0 has %d: %w", i, len(m), len(first), ErrInvalidItemData)
		}
		for _, k := range keys {
			if _, ok := m[k]; !ok {
				return fmt.Errorf("item %d is missing key %q: %w", i, k, ErrInvalidItemData)
			}
		}
	}
	return nil
}

func checkSequences(items []Item, first Sequence) error {
	for i, it := range items {
		s, ok := it.(Sequence)
		if !ok {
			return fmt.Errorf("item %d is %T, item 0 is a sequence: %w", i, it, ErrInvalidItemData)
		}
		if len(s) != len(first) {
			return fmt.Errorf("item %d has %d values, item 0 has %d: %w", i, len(s), len(first), ErrInvalidItemData)
		}
	}
	return nil
}

// NormalizeItemdata converts validated item data to the mapping form
// consumed by submitters. Sequence rows become mappings keyed Item0,
// Item1, ... by position. Nil stays nil.
func NormalizeItemdata(items []Item) []map[string]string {
	if items == nil {
		return nil
	}
	out := make([]map[string]string, len(items))
	for i, it := range items {
		switch row := it.(type) {
		case Mapping:
			m := make(map[string]string, len(row))
			for k, v := range row {
				m[k] = v
			}
			out[i] = m
		case Sequence:
			m := make(map[string]string, len(row))
			for j, v := range row {
				m["Item"+strconv.Itoa(j)] = v
			}
			out[i] = m
		}
	}
	return out
}

func sortedKeys(m Mapping) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
