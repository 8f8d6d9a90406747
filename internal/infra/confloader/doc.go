// Package confloader loads configuration for respkv.
//
// It layers koanf providers in priority order (lowest first):
//
//  1. Default values already present in the target struct
//  2. A YAML configuration file
//  3. A .env file, merged into the process environment via godotenv
//  4. RESPKV_* environment variables
//
// Watcher reports changes to the configuration file so that settings which
// can change at runtime (the log level) are reapplied without a restart.
package confloader
