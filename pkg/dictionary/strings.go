package dictionary

import (
	"maps"
	"slices"
)

// LocalizedString is the result of a lookup. ResourceNotFound marks a value
// synthesized because nothing in the fallback chain matched.
type LocalizedString struct {
	Name             string `json:"name"`
	Value            string `json:"value"`
	ResourceNotFound bool   `json:"resourceNotFound"`
}

func (s LocalizedString) String() string { return s.Value }

// PluralVariant maps an interval to the text used for quantities inside it.
type PluralVariant struct {
	Interval PluralizationInterval `json:"interval"`
	Value    LocalizedString       `json:"value"`
}

// PluralizedString holds a default text and interval variants in declaration order.
type PluralizedString struct {
	Default  LocalizedString `json:"default"`
	Variants []PluralVariant `json:"variants,omitempty"`
}

// Select returns the first variant whose interval contains quantity,
// or the default text when none does.
func (p PluralizedString) Select(quantity int) LocalizedString {
	for _, v := range p.Variants {
		if IsInInterval(quantity, v.Interval) {
			return v.Value
		}
	}
	return p.Default
}

// Clone returns a copy sharing no variant storage with p.
func (p PluralizedString) Clone() PluralizedString {
	p.Variants = slices.Clone(p.Variants)
	return p
}

func clonePluralized(in map[string]PluralizedString) map[string]PluralizedString {
	out := make(map[string]PluralizedString, len(in))
	for k, v := range in {
		out[k] = v.Clone()
	}
	return out
}

func cloneLocalized(in map[string]LocalizedString) map[string]LocalizedString {
	return maps.Clone(in)
}
