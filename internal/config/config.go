package config

import (
	"io"
	"regexp"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config holds the full application configuration.
type Config struct {
	Input    InputConfig    `yaml:"input" mapstructure:"input"`
	Analysis AnalysisConfig `yaml:"analysis" mapstructure:"analysis"`
	Output   OutputConfig   `yaml:"output" mapstructure:"output"`
	Render   RenderConfig   `yaml:"render" mapstructure:"render"`
	Tiger    TigerConfig    `yaml:"tiger" mapstructure:"tiger"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// InputConfig locates the tract geometry and the food-access survey.
type InputConfig struct {
	Geometry        string `yaml:"geometry" mapstructure:"geometry"`
	Access          string `yaml:"access" mapstructure:"access"`
	AccessSheet     string `yaml:"access_sheet" mapstructure:"access_sheet"`
	TractIDField    string `yaml:"tract_id_field" mapstructure:"tract_id_field"`
	AccessIDField   string `yaml:"access_id_field" mapstructure:"access_id_field"`
	DropFirstColumn bool   `yaml:"drop_first_column" mapstructure:"drop_first_column"`
}

// AnalysisConfig selects the target state.
type AnalysisConfig struct {
	State string `yaml:"state" mapstructure:"state"`
}

// OutputConfig configures where maps are written.
type OutputConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// RenderConfig configures image size and colors. Colors are #RRGGBB.
type RenderConfig struct {
	Width      int    `yaml:"width" mapstructure:"width"`
	Height     int    `yaml:"height" mapstructure:"height"`
	Background string `yaml:"background" mapstructure:"background"`
	StateFill  string `yaml:"state_fill" mapstructure:"state_fill"`
	Highlight  string `yaml:"highlight" mapstructure:"highlight"`
}

// TigerConfig configures TIGER/Line shapefile downloads.
type TigerConfig struct {
	Year    int    `yaml:"year" mapstructure:"year"`
	TempDir string `yaml:"temp_dir" mapstructure:"temp_dir"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("FOODMAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("input.geometry", "food_access/washington.json")
	v.SetDefault("input.access", "food_access/food_access.csv")
	v.SetDefault("input.access_sheet", "")
	v.SetDefault("input.tract_id_field", "CTIDFP00")
	v.SetDefault("input.access_id_field", "CensusTract")
	v.SetDefault("input.drop_first_column", true)
	v.SetDefault("analysis.state", "WA")
	v.SetDefault("output.dir", ".")
	v.SetDefault("render.width", 1000)
	v.SetDefault("render.height", 800)
	v.SetDefault("render.background", "#EEEEEE")
	v.SetDefault("render.state_fill", "#AAAAAA")
	v.SetDefault("render.highlight", "#1F77B4")
	v.SetDefault("tiger.year", 2010)
	v.SetDefault("tiger.temp_dir", "/tmp/foodmap")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

var hexColor = regexp.MustCompile(`^#?[0-9A-Fa-f]{6}$`)

// Validate checks the settings a run depends on.
func (c *Config) Validate() error {
	var errs []string

	if c.Input.Geometry == "" {
		errs = append(errs, "input.geometry is required")
	}
	if c.Input.Access == "" {
		errs = append(errs, "input.access is required")
	}
	if c.Analysis.State == "" {
		errs = append(errs, "analysis.state is required")
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		errs = append(errs, "render.width and render.height must be positive")
	}
	for _, color := range []struct{ key, value string }{
		{"render.background", c.Render.Background},
		{"render.state_fill", c.Render.StateFill},
		{"render.highlight", c.Render.Highlight},
	} {
		if !hexColor.MatchString(color.value) {
			errs = append(errs, color.key+" must be a #RRGGBB color")
		}
	}

	if len(errs) > 0 {
		return eris.Errorf("config: %s", strings.Join(errs, "; "))
	}
	return nil
}

// WriteYAML writes the effective configuration as YAML, in the layout of
// config.yaml.
func (c *Config) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return eris.Wrap(err, "config: encode yaml")
	}
	return eris.Wrap(enc.Close(), "config: encode yaml")
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
