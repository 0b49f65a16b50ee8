package layout

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

type overridesFile struct {
	Variants []Variant `yaml:"variants"`
}

// LoadOverrides reads extra or replacement variants from a YAML file of the form
//
//	variants:
//	  - name: epd4in2
//	    width: 400
//	    ...
//
// Every variant in the file is validated.
func LoadOverrides(path string) (map[string]Variant, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout file: %w", err)
	}
	return ParseOverrides(raw)
}

// ParseOverrides is LoadOverrides for in-memory YAML.
func ParseOverrides(raw []byte) (map[string]Variant, error) {
	var f overridesFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode layout file: %w", err)
	}
	out := make(map[string]Variant, len(f.Variants))
	for _, v := range f.Variants {
		if err := v.Validate(); err != nil {
			return nil, err
		}
		if _, dup := out[v.Name]; dup {
			return nil, fmt.Errorf("variant %q defined twice", v.Name)
		}
		out[v.Name] = v
	}
	return out, nil
}

// Catalog merges the builtin variants with overrides. Overrides win.
func Catalog(overrides map[string]Variant) map[string]Variant {
	all := Builtin()
	for name, v := range overrides {
		all[name] = v
	}
	return all
}

// Lookup selects the variant called name from the builtin set and overrides.
func Lookup(name string, overrides map[string]Variant) (Variant, error) {
	v, ok := Catalog(overrides)[name]
	if !ok {
		return Variant{}, fmt.Errorf("%w: %q (known: %v)", ErrUnknownVariant, name, Names(overrides))
	}
	if err := v.Validate(); err != nil {
		return Variant{}, err
	}
	return v, nil
}

// Names lists every selectable variant, sorted.
func Names(overrides map[string]Variant) []string {
	all := Catalog(overrides)
	names := make([]string, 0, len(all))
	for n := range all {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
