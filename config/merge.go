package config

// mergeConfigs merges override configuration into base. Non-zero override
// values win; extension sections are replaced key by key.
func mergeConfigs(base, override *Config) *Config {
	result := *base

	if override.Title != "" {
		result.Title = override.Title
	}

	// Server
	if override.Server.Addr != "" {
		result.Server.Addr = override.Server.Addr
	}
	if override.Server.ReadTimeout != 0 {
		result.Server.ReadTimeout = override.Server.ReadTimeout
	}
	if override.Server.WriteTimeout != 0 {
		result.Server.WriteTimeout = override.Server.WriteTimeout
	}
	if override.Server.ShutdownTimeout != 0 {
		result.Server.ShutdownTimeout = override.Server.ShutdownTimeout
	}

	// Assets
	if override.Assets.Dir != "" {
		result.Assets.Dir = override.Assets.Dir
	}
	if len(override.Assets.Extensions) > 0 {
		result.Assets.Extensions = override.Assets.Extensions
	}
	if len(override.Assets.Exclude) > 0 {
		result.Assets.Exclude = override.Assets.Exclude
	}
	if override.Assets.Placeholders != nil {
		result.Assets.Placeholders = override.Assets.Placeholders
	}
	if override.Assets.PlaceholderCount != 0 {
		result.Assets.PlaceholderCount = override.Assets.PlaceholderCount
	}
	if override.Assets.Watch != nil {
		result.Assets.Watch = override.Assets.Watch
	}

	// Presenter
	if override.Presenter.Variant != "" {
		result.Presenter.Variant = override.Presenter.Variant
	}
	if override.Presenter.Hints != nil {
		result.Presenter.Hints = override.Presenter.Hints
	}
	if override.Presenter.HistoryDisplay != 0 {
		result.Presenter.HistoryDisplay = override.Presenter.HistoryDisplay
	}

	// Session
	if override.Session.CookieName != "" {
		result.Session.CookieName = override.Session.CookieName
	}
	if override.Session.IdleTTL != 0 {
		result.Session.IdleTTL = override.Session.IdleTTL
	}

	// Extensions
	if len(override.Extensions) > 0 {
		merged := make(map[string]interface{}, len(base.Extensions)+len(override.Extensions))
		for k, v := range base.Extensions {
			merged[k] = v
		}
		for k, v := range override.Extensions {
			merged[k] = v
		}
		result.Extensions = merged
	}

	return &result
}
