package driven

// SettingsStore supplies persisted engine defaults. Flags override
// settings; settings override built-in defaults.
type SettingsStore interface {
	// GetString retrieves a string setting, "" when unset.
	GetString(key string) string

	// GetInt retrieves an integer setting, 0 when unset.
	GetInt(key string) int

	// GetBool retrieves a boolean setting with a fallback default.
	GetBool(key string, def bool) bool

	// Set stores a setting and persists immediately.
	Set(key string, value any) error
}

// Setting keys understood by the engine.
const (
	// SettingPreserveGroups toggles group-boundary adjustment.
	SettingPreserveGroups = "preserve_groups"

	// SettingMergeMode is the default merge mode.
	SettingMergeMode = "merge_mode"

	// SettingDuplicatePolicy is the default overlay duplicate policy.
	SettingDuplicatePolicy = "duplicate_policy"

	// SettingDuplicateContext duplicates context-definition blocks
	// into every part.
	SettingDuplicateContext = "duplicate_context"

	// SettingPartNaming selects the part naming pattern, "NofM" or
	// "partN".
	SettingPartNaming = "part_naming"
)
