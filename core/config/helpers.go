package config

// GetAllSettings returns the effective settings as a flat map for startup logs.
// Secrets are left out.
func GetAllSettings() map[string]any {
	if Global == nil {
		return map[string]any{}
	}
	return map[string]any{
		"app_version":                    Global.App.Version,
		"app_port":                       Global.App.Port,
		"app_debug":                      Global.App.Debug,
		"app_env":                        Global.App.Environment,
		"db_driver":                      Global.Database.Driver,
		"db_name":                        Global.Database.Name,
		"valkey_enabled":                 Global.Valkey.Enabled,
		"valkey_address":                 Global.Valkey.Address,
		"rules_static_config":            Global.Rules.StaticConfig,
		"rules_lookup_timeout_ms":        Global.Rules.LookupTimeout.Milliseconds(),
		"rules_config_cache_ttl_seconds": int64(Global.Rules.ConfigCacheTTL.Seconds()),
		"rules_idempotency_ttl_seconds":  int64(Global.Rules.IdempotencyTTL.Seconds()),
	}
}
