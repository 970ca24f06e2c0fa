// Package config loads and validates the coven-wallet YAML configuration.
//
// Configuration files support ${VAR_NAME} environment variable expansion in
// any value. Unset fields fall back to documented defaults: a single
// preferred first-party wallet name, the standard recent-connection storage
// key, text logging at info level, and metrics disabled.
package config
