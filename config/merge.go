package config

// mergeConfigs merges override configuration into base
func mergeConfigs(base, override *Config) *Config {
	result := *base

	if override.Version != "" {
		result.Version = override.Version
	}

	result.Storage = mergeStorage(result.Storage, override.Storage)
	result.Editor = mergeEditor(result.Editor, override.Editor)

	if override.Extensions != nil {
		merged := make(map[string]interface{}, len(result.Extensions)+len(override.Extensions))
		for key, value := range result.Extensions {
			merged[key] = value
		}
		for key, value := range override.Extensions {
			// Maps present on both sides are merged one level deep.
			if baseMap, ok := merged[key].(map[string]interface{}); ok {
				if overrideMap, ok := value.(map[string]interface{}); ok {
					mergedMap := make(map[string]interface{}, len(baseMap)+len(overrideMap))
					for k, v := range baseMap {
						mergedMap[k] = v
					}
					for k, v := range overrideMap {
						mergedMap[k] = v
					}
					merged[key] = mergedMap
					continue
				}
			}
			merged[key] = value
		}
		result.Extensions = merged
	}

	return &result
}

func mergeStorage(base, override StorageConfig) StorageConfig {
	result := base
	if override.Path != "" {
		result.Path = override.Path
	}
	if override.AutoSave != nil {
		result.AutoSave = override.AutoSave
	}
	if override.WatchDebounceMs != 0 {
		result.WatchDebounceMs = override.WatchDebounceMs
	}
	return result
}

func mergeEditor(base, override EditorConfig) EditorConfig {
	result := base
	if override.DefaultExpandAll {
		result.DefaultExpandAll = true
	}
	if override.Highlight != "" {
		result.Highlight = override.Highlight
	}
	if override.Theme != "" {
		result.Theme = override.Theme
	}
	return result
}
