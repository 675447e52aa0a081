package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Storage    StorageConfig    `yaml:"storage"`
	Vocabulary VocabularyConfig `yaml:"vocabulary"`
	Wheel      WheelConfig      `yaml:"wheel"`
	Speech     SpeechConfig     `yaml:"speech"`
	Dictionary DictionaryConfig `yaml:"dictionary"`
	Auth       AuthConfig       `yaml:"auth"`
	Log        LogConfig        `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// Storage drivers
const (
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

// StorageConfig selects where vocabulary and settings live. Raw vocabulary
// entries always go to SQLite; Driver picks the key-value backend for
// mastery and speech settings.
type StorageConfig struct {
	Driver        string `yaml:"driver"         env:"STORAGE_DRIVER"         env-default:"sqlite"`
	SQLitePath    string `yaml:"sqlite_path"    env:"STORAGE_SQLITE_PATH"    env-default:"vocabdrill.db"`
	RedisAddr     string `yaml:"redis_addr"     env:"STORAGE_REDIS_ADDR"     env-default:"localhost:6379"`
	RedisPassword string `yaml:"redis_password" env:"STORAGE_REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redis_db"       env:"STORAGE_REDIS_DB"       env-default:"0"`
	RedisPrefix   string `yaml:"redis_prefix"   env:"STORAGE_REDIS_PREFIX"   env-default:"vocabdrill:"`
}

// VocabularyConfig holds the seed word list.
type VocabularyConfig struct {
	SeedPath string `yaml:"seed_path" env:"VOCABULARY_SEED_PATH"`
}

// WheelConfig holds the wheel game's tunables.
type WheelConfig struct {
	MaxPool        int           `yaml:"max_pool"        env:"WHEEL_MAX_POOL"        env-default:"50"`
	CompactPool    int           `yaml:"compact_pool"    env:"WHEEL_COMPACT_POOL"    env-default:"24"`
	Settle         time.Duration `yaml:"settle"          env:"WHEEL_SETTLE"          env-default:"3300ms"`
	MinTurns       int           `yaml:"min_turns"       env:"WHEEL_MIN_TURNS"       env-default:"5"`
	JitterFraction float64       `yaml:"jitter_fraction" env:"WHEEL_JITTER_FRACTION" env-default:"0.7"`
}

// SpeechConfig holds speech defaults and voice ranking keywords.
type SpeechConfig struct {
	Accent string   `yaml:"accent" env:"SPEECH_ACCENT" env-default:"en-US"`
	Rate   float64  `yaml:"rate"   env:"SPEECH_RATE"   env-default:"0.92"`
	Pitch  float64  `yaml:"pitch"  env:"SPEECH_PITCH"  env-default:"1.0"`
	Prefer []string `yaml:"prefer" env:"SPEECH_PREFER" env-separator:","`
	Avoid  []string `yaml:"avoid"  env:"SPEECH_AVOID"  env-separator:","`
}

// DictionaryConfig holds the definition lookup settings.
type DictionaryConfig struct {
	Disabled bool          `yaml:"disabled" env:"DICTIONARY_DISABLED"`
	BaseURL  string        `yaml:"base_url" env:"DICTIONARY_BASE_URL" env-default:"https://api.dictionaryapi.dev/api/v2/entries/en"`
	Timeout  time.Duration `yaml:"timeout"  env:"DICTIONARY_TIMEOUT"  env-default:"10s"`
}

// AuthConfig holds the API token. An empty token leaves writes open.
type AuthConfig struct {
	APIToken string `yaml:"api_token" env:"AUTH_API_TOKEN"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
