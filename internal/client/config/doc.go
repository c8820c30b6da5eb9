// Package config loads runtime configuration for the GestureTalk shell.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJSON) selected via flags: -c or -config.
//  3. Environment: a .env file, if present, then GESTURETALK_* variables.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   listen address of the web shell
//	-d string   path of the local SQLite database
//	-l int      simulated sign-in latency (milliseconds)
//	-v string   log level
//
// # JSON schema
//
// Durations use timex.Duration, so values can be either strings like "3s"
// or integer nanoseconds. Keys that are absent keep their earlier value:
//
//	{
//	  "listen_addr": "127.0.0.1:8080",
//	  "database_path": "gesturetalk.db",
//	  "storage_driver": "sqlite",
//	  "auth_latency": "1s",
//	  "gemini_api_key": "..."
//	}
//
// # Environment
//
// Every field has a GESTURETALK_ variable, e.g. GESTURETALK_LISTEN_ADDR,
// GESTURETALK_GEMINI_API_KEY or GESTURETALK_CHAT_TIMEOUT=20s.
package config
