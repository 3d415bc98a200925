package config

const (
	defaultDataDir      = "~/.local/share/listcmp"
	defaultLogDir       = ""
	defaultMode         = "text"
	defaultLocale       = "en"
	defaultListCount    = 2
	defaultOutputFormat = "table"
	defaultOutputColor  = "auto"
	defaultLogFormat    = "console"
	defaultLogLevel     = "warn"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Comparison: Comparison{
			Mode:          defaultMode,
			CaseSensitive: false,
			Locale:        defaultLocale,
		},
		Lists: Lists{
			DefaultCount: defaultListCount,
		},
		Output: Output{
			Format: defaultOutputFormat,
			Color:  defaultOutputColor,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
