package config

// Pairs returns every predictor pair in group-then-declaration order. The
// target is not included.
func (f *FeatureSpec) Pairs() []Pair {
	var out []Pair
	for _, g := range f.Groups {
		out = append(out, g.Columns...)
	}
	return out
}

// SourceColumns returns the required source identifiers, target first.
func (f *FeatureSpec) SourceColumns() []string {
	out := []string{f.Target.Source}
	for _, p := range f.Pairs() {
		out = append(out, p.Source)
	}
	return out
}

// OutputColumns returns the output header, target rename first.
func (f *FeatureSpec) OutputColumns() []string {
	out := []string{f.Target.Rename}
	for _, p := range f.Pairs() {
		out = append(out, p.Rename)
	}
	return out
}
