package cli

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/gridwork/jobflow/internal/submit"
)

// LoadDescription reads a submit description from a CUE file. Every
// top-level field becomes one description attribute; values must be
// scalars.
func LoadDescription(path string) (submit.Description, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read description: %w", err)
	}

	ctx := cuecontext.New()
	value := ctx.CompileBytes(data, cue.Filename(path))
	if err := value.Err(); err != nil {
		return nil, fmt.Errorf("compile description %s: %w", path, err)
	}
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("description %s is not concrete: %w", path, err)
	}

	iter, err := value.Fields()
	if err != nil {
		return nil, fmt.Errorf("description %s: %w", path, err)
	}

	desc := submit.Description{}
	for iter.Next() {
		attr := iter.Selector().Unquoted()
		s, err := scalarString(iter.Value())
		if err != nil {
			return nil, fmt.Errorf("description %s, attribute %q: %w", path, attr, err)
		}
		desc[attr] = s
	}
	if len(desc) == 0 {
		return nil, fmt.Errorf("description %s has no attributes", path)
	}
	return desc, nil
}

// scalarString renders one CUE value as a submit attribute value.
func scalarString(v cue.Value) (string, error) {
	switch v.Kind() {
	case cue.StringKind:
		return v.String()
	case cue.IntKind:
		n, err := v.Int64()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d", n), nil
	case cue.FloatKind, cue.NumberKind:
		f, err := v.Float64()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%g", f), nil
	case cue.BoolKind:
		b, err := v.Bool()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%t", b), nil
	default:
		return "", fmt.Errorf("unsupported kind %v, attributes must be scalars", v.Kind())
	}
}

// LoadItemdata reads item data from a YAML file: either a list of
// mappings or a list of sequences. Consistency is checked by
// submit.CheckItemdata, not here.
func LoadItemdata(path string) ([]submit.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read item data: %w", err)
	}

	var raw []interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse item data %s: %w", path, err)
	}

	items := make([]submit.Item, len(raw))
	for i, row := range raw {
		switch row := row.(type) {
		case map[string]interface{}:
			m := make(submit.Mapping, len(row))
			for k, v := range row {
				m[k] = fmt.Sprint(v)
			}
			items[i] = m
		case []interface{}:
			s := make(submit.Sequence, len(row))
			for j, v := range row {
				s[j] = fmt.Sprint(v)
			}
			items[i] = s
		default:
			return nil, fmt.Errorf("item data %s: row %d is %T, want mapping or sequence", path, i, row)
		}
	}
	return items, nil
}
