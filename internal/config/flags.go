package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags from flag.CommandLine.
// Positional arguments left after the flags (the CLI command) stay available
// through flag.Args.
//
// Flags:
//
//	-d database DSN (SQLite path or postgres:// URL)
//	-c/-config json file path with configs
//	-field-key hex-encoded 256-bit field key
//	-field-key-passphrase passphrase for Argon2id key derivation
//	-field-key-salt salt for Argon2id key derivation
//	-log-file path of the JSON log file
//	-history-retention how long finished trips are kept (e.g. "720h")
//	-prune-interval how often the history pruner runs (e.g. "1h")
func ParseFlags() *StructuredConfig {
	var databaseDSN string
	var jsonConfigPath string
	var fieldKey string
	var fieldKeyPassphrase string
	var fieldKeySalt string
	var logFile string
	var historyRetention time.Duration
	var pruneInterval time.Duration

	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&fieldKey, "field-key", "", "Hex-encoded 256-bit field encryption key")
	flag.StringVar(&fieldKeyPassphrase, "field-key-passphrase", "", "Passphrase to derive the field key from")
	flag.StringVar(&fieldKeySalt, "field-key-salt", "", "Salt for field key derivation")
	flag.StringVar(&logFile, "log-file", "", "Log file path")
	flag.DurationVar(&historyRetention, "history-retention", 0, "Trip history retention (e.g., 720h)")
	flag.DurationVar(&pruneInterval, "prune-interval", 0, "History prune interval (e.g., 1h)")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			FieldKey:           fieldKey,
			FieldKeyPassphrase: fieldKeyPassphrase,
			FieldKeySalt:       fieldKeySalt,
			LogFile:            logFile,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Workers: Workers{
			HistoryRetention: historyRetention,
			PruneInterval:    pruneInterval,
		},
		JSONFilePath: jsonConfigPath,
	}
}
