package config

const (
	defaultConfigPath  = "~/.config/compsplit/config.toml"
	defaultIndexPath   = "~/.local/share/compsplit/dictionary.db"
	defaultFloor       = 10
	defaultMinLength   = 1
	defaultPolicy      = PolicyHalt
	defaultEncoding    = EncodingUTF8
	defaultSplitFormat = FormatText
	defaultMaxDepth    = 64
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"

	dictionaryEnvVar = "COMPSPLIT_DICTIONARY"
)

// Dictionary loading policies.
const (
	PolicyHalt   = "halt"
	PolicyFilter = "filter"
)

// Dictionary resource encodings.
const (
	EncodingUTF8   = "utf-8"
	EncodingLatin1 = "latin1"
)

// Output formats for the split command.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatTable = "table"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Dictionary: Dictionary{
			IndexPath: defaultIndexPath,
			Floor:     defaultFloor,
			MinLength: defaultMinLength,
			Policy:    defaultPolicy,
			Encoding:  defaultEncoding,
		},
		Split: Split{
			Format:    defaultSplitFormat,
			MaxDepth:  defaultMaxDepth,
			SkipEmpty: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
