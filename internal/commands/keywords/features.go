package keywordscmd

// FeatureGates tells keyword command handlers which runtime features the host
// has switched on. Handlers consult the gates at execution time, so a toggle
// flipped between dispatches takes effect without rebuilding the handler set.
type FeatureGates struct {
	// ImportEnabled reports whether markdown directory imports may run.
	// A nil gate leaves imports enabled.
	ImportEnabled func() bool
}

// StaticGates returns gates with fixed answers for hosts whose configuration
// cannot change at runtime.
func StaticGates(importEnabled bool) FeatureGates {
	return FeatureGates{ImportEnabled: func() bool { return importEnabled }}
}

func (g FeatureGates) importEnabled() bool {
	return g.ImportEnabled == nil || g.ImportEnabled()
}
