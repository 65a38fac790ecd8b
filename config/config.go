package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Window      WindowConfig      `mapstructure:"window"`
	Engine      EngineConfig      `mapstructure:"engine"`
	Models      ModelsConfig      `mapstructure:"models"`
	Interaction InteractionConfig `mapstructure:"interaction"`
	Placement   PlacementConfig   `mapstructure:"placement"`
	Camera      CameraConfig      `mapstructure:"camera"`
	Capture     CaptureConfig     `mapstructure:"capture"`
	Panels      PanelsConfig      `mapstructure:"panels"`
}

// WindowConfig holds desktop window settings.
type WindowConfig struct {
	Title  string `mapstructure:"title"`
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	VSync  bool   `mapstructure:"vsync"`
}

// EngineConfig holds frame loop settings.
type EngineConfig struct {
	TickRate  float64 `mapstructure:"tick_rate"`
	Profiling bool    `mapstructure:"profiling"`
}

// ModelsConfig lists the model templates in registry order and where they spawn.
type ModelsConfig struct {
	Paths   []string `mapstructure:"paths"`
	Initial int      `mapstructure:"initial"`
	AnchorX float32  `mapstructure:"anchor_x"`
	AnchorY float32  `mapstructure:"anchor_y"`
	AnchorZ float32  `mapstructure:"anchor_z"`
}

// InteractionConfig holds rotation and touch constants.
type InteractionConfig struct {
	RotationSpeed float32 `mapstructure:"rotation_speed"`
	DragFactor    float32 `mapstructure:"drag_factor"`
	PinchFactor   float32 `mapstructure:"pinch_factor"`
	PinchDeadZone float32 `mapstructure:"pinch_dead_zone"`
	MinScale      float32 `mapstructure:"min_scale"`
	MaxScale      float32 `mapstructure:"max_scale"`
	PinchSpread   float32 `mapstructure:"pinch_spread"`
}

// PlacementConfig holds placement settings and the simulated floor plane.
type PlacementConfig struct {
	FallbackDistance float32 `mapstructure:"fallback_distance"`
	FloorY           float32 `mapstructure:"floor_y"`
	FloorExtent      float32 `mapstructure:"floor_extent"`
}

// CameraConfig holds camera device and bring-up settings.
type CameraConfig struct {
	Synthetic bool          `mapstructure:"synthetic"`
	Width     int           `mapstructure:"width"`
	Height    int           `mapstructure:"height"`
	FPS       int           `mapstructure:"fps"`
	Delay     time.Duration `mapstructure:"delay"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// CaptureConfig holds gallery and capture settings.
type CaptureConfig struct {
	GalleryDir  string `mapstructure:"gallery_dir"`
	ImageAlbum  string `mapstructure:"image_album"`
	PhotoAlbum  string `mapstructure:"photo_album"`
	FileName    string `mapstructure:"file_name"`
	Workers     int    `mapstructure:"workers"`
	UniqueNames bool   `mapstructure:"unique_names"`
}

// PanelsConfig names the mutually exclusive panels.
type PanelsConfig struct {
	Names []string `mapstructure:"names"`
}

// Load reads configuration from file and env. Env var overrides use prefix OXYAR_,
// and OXYAR_CONFIG points at an explicit config file.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("OXYAR_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "oxy-ar"))
		v.AddConfigPath(".")
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("OXYAR")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("window.title", "oxy-ar")
	v.SetDefault("window.width", 1280)
	v.SetDefault("window.height", 720)
	v.SetDefault("window.vsync", true)

	v.SetDefault("engine.tick_rate", 60.0)
	v.SetDefault("engine.profiling", false)

	v.SetDefault("models.paths", []string{})
	v.SetDefault("models.initial", 0)
	v.SetDefault("models.anchor_x", 0.0)
	v.SetDefault("models.anchor_y", -0.5)
	v.SetDefault("models.anchor_z", -2.0)

	v.SetDefault("interaction.rotation_speed", 100.0)
	v.SetDefault("interaction.drag_factor", 0.001)
	v.SetDefault("interaction.pinch_factor", 0.005)
	v.SetDefault("interaction.pinch_dead_zone", 0.01)
	v.SetDefault("interaction.min_scale", 0.05)
	v.SetDefault("interaction.max_scale", 4.0)
	v.SetDefault("interaction.pinch_spread", 100.0)

	v.SetDefault("placement.fallback_distance", 1.98)
	v.SetDefault("placement.floor_y", -1.0)
	v.SetDefault("placement.floor_extent", 10.0)

	v.SetDefault("camera.synthetic", false)
	v.SetDefault("camera.width", 1280)
	v.SetDefault("camera.height", 720)
	v.SetDefault("camera.fps", 30)
	v.SetDefault("camera.delay", time.Second)
	v.SetDefault("camera.timeout", 5*time.Second)

	v.SetDefault("capture.gallery_dir", filepath.Join(os.Getenv("HOME"), "Pictures"))
	v.SetDefault("capture.image_album", "ARPhoto")
	v.SetDefault("capture.photo_album", "MyApp")
	v.SetDefault("capture.file_name", "screenshot.png")
	v.SetDefault("capture.workers", 2)
	v.SetDefault("capture.unique_names", true)

	v.SetDefault("panels.names", []string{"main", "models", "settings", "preview"})
}

// Validate reports every setting that the viewer cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Interaction.MinScale <= 0 || c.Interaction.MinScale > c.Interaction.MaxScale {
		errs = append(errs, fmt.Errorf("scale bounds must satisfy 0 < min <= max, got [%g, %g]", c.Interaction.MinScale, c.Interaction.MaxScale))
	}
	if c.Camera.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("camera timeout must be positive, got %s", c.Camera.Timeout))
	}
	if strings.TrimSpace(c.Capture.ImageAlbum) == "" || strings.TrimSpace(c.Capture.PhotoAlbum) == "" {
		errs = append(errs, errors.New("capture albums must not be empty"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
