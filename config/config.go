// Package config loads runtime configuration from defaults, an optional
// TOML or YAML file, .env files and SENSE_DICE_ environment variables
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/sense-dice/parameter"
	"github.com/lixenwraith/sense-dice/sensory"
)

// EnvPrefix prefixes every environment override, keys use _ for nesting
// e.g. SENSE_DICE_DICE_ROLL_DURATION=3s
const EnvPrefix = "SENSE_DICE"

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid config")

// Config is the complete runtime configuration
type Config struct {
	Dice    DiceConfig    `mapstructure:"dice" yaml:"dice"`
	Vision  VisionConfig  `mapstructure:"vision" yaml:"vision"`
	Hearing HearingConfig `mapstructure:"hearing" yaml:"hearing"`
	Loop    LoopConfig    `mapstructure:"loop" yaml:"loop"`
	Audio   AudioConfig   `mapstructure:"audio" yaml:"audio"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
}

// DiceConfig holds roll timing and randomness
type DiceConfig struct {
	RollDuration   time.Duration `mapstructure:"roll_duration" yaml:"roll_duration"`
	FlipInterval   time.Duration `mapstructure:"flip_interval" yaml:"flip_interval"`
	BadDieInterval time.Duration `mapstructure:"bad_die_interval" yaml:"bad_die_interval"`
	SpinTurns      float64       `mapstructure:"spin_turns" yaml:"spin_turns"`
	CueVolume      float64       `mapstructure:"cue_volume" yaml:"cue_volume"`
	Seed           uint64        `mapstructure:"seed" yaml:"seed"` // 0 seeds from the clock
}

// VisionConfig is the cone per effective Sight state
type VisionConfig struct {
	Negative sensory.Cone `mapstructure:"negative" yaml:"negative"`
	Neutral  sensory.Cone `mapstructure:"neutral" yaml:"neutral"`
	Positive sensory.Cone `mapstructure:"positive" yaml:"positive"`
}

// HearingConfig is the master gain in dB per effective Hearing state
type HearingConfig struct {
	Negative float64 `mapstructure:"negative" yaml:"negative"`
	Neutral  float64 `mapstructure:"neutral" yaml:"neutral"`
	Positive float64 `mapstructure:"positive" yaml:"positive"`
}

// LoopConfig holds the game loop timing
type LoopConfig struct {
	TickInterval time.Duration `mapstructure:"tick_interval" yaml:"tick_interval"`
}

// AudioConfig controls the audio device
type AudioConfig struct {
	Muted bool `mapstructure:"muted" yaml:"muted"`
}

// LogConfig controls the structured logger
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	File  string `mapstructure:"file" yaml:"file"` // Empty discards
}

// Default returns the configuration built from compiled-in parameters
func Default() *Config {
	t := sensory.DefaultTuning()
	return &Config{
		Dice: DiceConfig{
			RollDuration:   t.RollDuration,
			FlipInterval:   t.FlipInterval,
			BadDieInterval: t.BadDieInterval,
			SpinTurns:      t.SpinTurns,
			CueVolume:      t.CueVolume,
		},
		Vision: VisionConfig{
			Negative: t.Vision[0],
			Neutral:  t.Vision[1],
			Positive: t.Vision[2],
		},
		Hearing: HearingConfig{
			Negative: t.Hearing[0],
			Neutral:  t.Hearing[1],
			Positive: t.Hearing[2],
		},
		Loop: LoopConfig{TickInterval: parameter.TickInterval},
		Log:  LogConfig{Level: "info"},
	}
}

// Tuning converts the dice, vision and hearing sections
func (c *Config) Tuning() sensory.Tuning {
	return sensory.Tuning{
		RollDuration:   c.Dice.RollDuration,
		FlipInterval:   c.Dice.FlipInterval,
		BadDieInterval: c.Dice.BadDieInterval,
		SpinTurns:      c.Dice.SpinTurns,
		CueVolume:      c.Dice.CueVolume,
		Vision:         sensory.ConeTable{c.Vision.Negative, c.Vision.Neutral, c.Vision.Positive},
		Hearing:        sensory.GainTable{c.Hearing.Negative, c.Hearing.Neutral, c.Hearing.Positive},
	}
}

// SlogLevel parses the configured log level
func (c *Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("log level %q: %w", c.Log.Level, err)
	}
	return lvl, nil
}

// Validate reports every invalid field, wrapped in ErrInvalid
func (c *Config) Validate() error {
	var errs []error
	if err := c.Tuning().Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Loop.TickInterval <= 0 {
		errs = append(errs, fmt.Errorf("tick interval must be positive, got %s", c.Loop.TickInterval))
	}
	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}

// Dump writes the configuration as YAML
func (c *Config) Dump(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}

// Loader resolves configuration through viper: flags over env over file
// over defaults
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a loader seeded with defaults and env binding
func NewLoader() *Loader {
	v := viper.New()
	setDefaults(v, Default())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return &Loader{v: v}
}

// BindFlag lets a command line flag override key
func (l *Loader) BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return fmt.Errorf("bind %s: flag not defined", key)
	}
	if err := l.v.BindPFlag(key, flag); err != nil {
		return fmt.Errorf("bind %s: %w", key, err)
	}
	return nil
}

// Load reads path (skipped when empty), decodes and validates
func (l *Loader) Load(path string) (*Config, error) {
	if path != "" {
		l.v.SetConfigFile(path)
		if err := l.v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load resolves configuration without flag bindings
func Load(path string) (*Config, error) {
	return NewLoader().Load(path)
}

// LoadEnvFiles loads .env style files into the process environment
// Missing files are skipped; variables already set are not overridden
func LoadEnvFiles(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("load env file %s: %w", p, err)
		}
	}
	return nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("dice.roll_duration", d.Dice.RollDuration)
	v.SetDefault("dice.flip_interval", d.Dice.FlipInterval)
	v.SetDefault("dice.bad_die_interval", d.Dice.BadDieInterval)
	v.SetDefault("dice.spin_turns", d.Dice.SpinTurns)
	v.SetDefault("dice.cue_volume", d.Dice.CueVolume)
	v.SetDefault("dice.seed", d.Dice.Seed)

	cones := map[string]sensory.Cone{
		"negative": d.Vision.Negative,
		"neutral":  d.Vision.Neutral,
		"positive": d.Vision.Positive,
	}
	for state, c := range cones {
		prefix := "vision." + state + "."
		v.SetDefault(prefix+"inner_angle", c.InnerAngle)
		v.SetDefault(prefix+"outer_angle", c.OuterAngle)
		v.SetDefault(prefix+"radius", c.Radius)
		v.SetDefault(prefix+"intensity", c.Intensity)
	}

	v.SetDefault("hearing.negative", d.Hearing.Negative)
	v.SetDefault("hearing.neutral", d.Hearing.Neutral)
	v.SetDefault("hearing.positive", d.Hearing.Positive)

	v.SetDefault("loop.tick_interval", d.Loop.TickInterval)
	v.SetDefault("audio.muted", d.Audio.Muted)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
}
