package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/fulmenhq/exportsync/pkg/exports"
)

// EnvPrefix is prepended to environment overrides, e.g. EXPORTSYNC_DIST_DIR.
const EnvPrefix = "EXPORTSYNC"

// DefaultMode is the build mode used when resolving mode overlays.
const DefaultMode = "production"

// ErrInvalid wraps configuration files that fail schema validation or
// normalization.
var ErrInvalid = errors.New("invalid configuration")

// projectConfigs are searched in the project root, in order.
var projectConfigs = []string{
	"exportsync.yaml",
	"exportsync.yml",
	"exportsync.json",
	"exportsync.toml",
	".exportsync.yaml",
	".exportsync.yml",
	".exportsync.json",
	".exportsync.toml",
}

// Config holds all configuration for exportsync
type Config struct {
	EntryPointExtensions []string `mapstructure:"entry_point_extensions"`
	HandleTypes          bool     `mapstructure:"handle_types"`
	EnabledDevelopment   bool     `mapstructure:"enabled_development"`
	DistDir              string   `mapstructure:"dist_dir"`

	// CSS and Entry are normalized by hand: viper folds key case and loses
	// mapping order.
	CSS   exports.CSSOptions  `mapstructure:"-"`
	Entry exports.Declaration `mapstructure:"-"`

	// File is the configuration file that was read, "" when defaults only.
	File string `mapstructure:"-"`
	Mode string `mapstructure:"-"`
}

// LoadOptions select where configuration comes from.
type LoadOptions struct {
	// Root is the project root searched for a configuration file.
	Root string
	// File overrides the search with an explicit path.
	File string
	// Mode selects the modes.<mode> overlay; DefaultMode when empty.
	Mode string
	// SkipValidation disables the schema check.
	SkipValidation bool
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		EntryPointExtensions: append([]string(nil), exports.DefaultEntryExtensions...),
		DistDir:              exports.DefaultDistDir,
		CSS:                  exports.DefaultCSSOptions(),
		Mode:                 DefaultMode,
	}
}

// FindFile returns the first project configuration file in root, or "".
func FindFile(root string) string {
	for _, name := range projectConfigs {
		p := filepath.Join(root, name)
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			return p
		}
	}
	return ""
}

// Load reads configuration from defaults, the project file and the
// environment, in increasing precedence.
func Load(opts LoadOptions) (*Config, error) {
	def := Default()
	mode := opts.Mode
	if mode == "" {
		mode = DefaultMode
	}

	v := viper.New()
	v.SetDefault("entry_point_extensions", def.EntryPointExtensions)
	v.SetDefault("handle_types", false)
	v.SetDefault("enabled_development", false)
	v.SetDefault("dist_dir", def.DistDir)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	file := opts.File
	if file == "" && opts.Root != "" {
		file = FindFile(opts.Root)
	}

	var data []byte
	if file != "" {
		var err error
		data, err = os.ReadFile(file) // #nosec G304 -- user-selected configuration file
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
		if !opts.SkipValidation {
			if err := ValidateFile(file, data); err != nil {
				return nil, err
			}
		}
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config %s: %w", file, err)
		}
	}

	cfg := &Config{File: file, Mode: mode}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if strings.TrimSpace(cfg.DistDir) == "" {
		cfg.DistDir = def.DistDir
	}

	css, err := NormalizeCSS(v.Get("css"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	cfg.CSS = css

	if file != "" {
		decl, err := EntryDeclaration(file, data, mode)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
		}
		cfg.Entry = decl
	}
	return cfg, nil
}

// NormalizeCSS turns the raw css option into CSSOptions. Accepted forms are
// nil (defaults), false, true, and a mapping with alias and extensions.
func NormalizeCSS(raw interface{}) (exports.CSSOptions, error) {
	opts := exports.DefaultCSSOptions()
	switch val := raw.(type) {
	case nil:
		return opts, nil
	case bool:
		opts.Enabled = val
		return opts, nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(val))
		if err != nil {
			return opts, fmt.Errorf("css: expected false or a mapping, got %q", val)
		}
		opts.Enabled = b
		return opts, nil
	case map[string]interface{}:
		return normalizeCSSMap(opts, val)
	default:
		return opts, fmt.Errorf("css: unsupported value of type %T", raw)
	}
}

func normalizeCSSMap(opts exports.CSSOptions, m map[string]interface{}) (exports.CSSOptions, error) {
	for key, val := range m {
		switch strings.ToLower(key) {
		case "alias":
			switch a := val.(type) {
			case nil:
			case bool:
				if a {
					return opts, errors.New("css.alias: expected a subpath or false")
				}
				opts.AliasEnabled = false
			case string:
				if strings.TrimSpace(a) == "" {
					return opts, errors.New("css.alias: empty subpath")
				}
				opts.Alias = a
			default:
				return opts, fmt.Errorf("css.alias: unsupported value of type %T", val)
			}
		case "extensions":
			exts, err := stringList(val)
			if err != nil {
				return opts, fmt.Errorf("css.extensions: %w", err)
			}
			opts.Extensions = opts.Extensions[:0]
			for _, e := range exts {
				if n := exports.NormalizeExtension(e); n != "" {
					opts.Extensions = append(opts.Extensions, n)
				}
			}
		default:
			return opts, fmt.Errorf("css: unknown key %q", key)
		}
	}
	return opts, nil
}

func stringList(val interface{}) ([]string, error) {
	switch list := val.(type) {
	case []string:
		return list, nil
	case []interface{}:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("expected strings, got %T", item)
			}
			out = append(out, s)
		}
		return out, nil
	case string:
		return strings.Fields(strings.ReplaceAll(list, ",", " ")), nil
	default:
		return nil, fmt.Errorf("expected a list, got %T", val)
	}
}

// Options converts the configuration into synthesis options for the named
// package.
func (c *Config) Options(packageName string) exports.Options {
	opts := exports.DefaultOptions()
	opts.PackageName = packageName
	if c.DistDir != "" {
		opts.DistDir = c.DistDir
	}
	if len(c.EntryPointExtensions) > 0 {
		opts.EntryExtensions = append([]string(nil), c.EntryPointExtensions...)
	}
	opts.CSS = c.CSS
	opts.HandleTypes = c.HandleTypes
	opts.EnabledDevelopment = c.EnabledDevelopment
	return opts
}
