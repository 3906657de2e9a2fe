package distillcmd

// FeatureGates exposes runtime toggles read by the handlers. Callers supply
// closures over runtimeconfig.Config.Features.
type FeatureGates struct {
	SearchEnabled func() bool
}

func (g FeatureGates) searchEnabled() bool {
	if g.SearchEnabled == nil {
		return true
	}
	return g.SearchEnabled()
}
