package gallery

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
	"github.com/seqsense/pcgol/mat"
	"gopkg.in/yaml.v3"

	"github.com/seqsense/pcgallery/overlay"
)

var (
	ErrInvalidMaxFiles  = errors.New("max_files must be positive")
	ErrInvalidSlots     = errors.New("slots must be positive")
	ErrInvalidBatchSize = errors.New("batch_size must be positive")
	ErrInvalidOpacity   = errors.New("point_opacity must be in [0, 1]")
)

type Config struct {
	BasePath         string `yaml:"base_path"`
	Extension        string `yaml:"extension"`
	OverlayExtension string `yaml:"overlay_extension"`
	MaxFiles         int    `yaml:"max_files"`
	Slots            int    `yaml:"slots"`
	BatchSize        int    `yaml:"batch_size"`

	Background      string  `yaml:"background"`
	PointColor      string  `yaml:"point_color"`
	PointOpacity    float32 `yaml:"point_opacity"`
	VertexColors    bool    `yaml:"vertex_colors"`
	AutoRotate      bool    `yaml:"auto_rotate"`
	AutoRotateSpeed float64 `yaml:"auto_rotate_speed"`
	Damping         float64 `yaml:"damping"`

	TubeRadius      float32        `yaml:"tube_radius"`
	ClassColors     map[int]string `yaml:"class_colors"`
	ShowGroundTruth bool           `yaml:"show_ground_truth"`
	ShowPredictions bool           `yaml:"show_predictions"`

	SyntheticSeed int64 `yaml:"synthetic_seed"`
}

func DefaultConfig() Config {
	colors := make(map[int]string, len(overlay.DefaultClassColors))
	for k, v := range overlay.DefaultClassColors {
		colors[k] = v
	}
	return Config{
		BasePath:         "./pointcloud/pointcloud_",
		Extension:        ".xyz",
		OverlayExtension: ".json",
		MaxFiles:         10,
		Slots:            20,
		BatchSize:        3,
		Background:       "#f8f9fa",
		PointColor:       "#969696",
		PointOpacity:     0.7,
		AutoRotate:       true,
		AutoRotateSpeed:  3,
		Damping:          0.1,
		TubeRadius:       overlay.DefaultRadius,
		ClassColors:      colors,
		ShowPredictions:  true,
	}
}

// LoadConfig overlays YAML b on DefaultConfig. Class colors are merged
// per class.
func LoadConfig(b []byte) (Config, error) {
	c := DefaultConfig()
	defaults := c.ClassColors
	c.ClassColors = nil
	if err := yaml.Unmarshal(b, &c); err != nil {
		return Config{}, pkgerrors.Wrap(err, "parsing config")
	}
	for k, v := range c.ClassColors {
		defaults[k] = v
	}
	c.ClassColors = defaults
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	switch {
	case c.MaxFiles <= 0:
		return ErrInvalidMaxFiles
	case c.Slots <= 0:
		return ErrInvalidSlots
	case c.BatchSize <= 0:
		return ErrInvalidBatchSize
	case c.PointOpacity < 0 || c.PointOpacity > 1:
		return ErrInvalidOpacity
	}
	for name, h := range map[string]string{
		"background":  c.Background,
		"point_color": c.PointColor,
	} {
		if _, err := overlay.ParseHex(h); err != nil {
			return pkgerrors.Wrap(err, name)
		}
	}
	if _, err := c.Palette(); err != nil {
		return err
	}
	return nil
}

// AssetPath returns the point cloud path of 1-based index i.
func (c Config) AssetPath(i int) string {
	return fmt.Sprintf("%s%02d%s", c.BasePath, i, c.Extension)
}

func (c Config) OverlayPath(i int) string {
	return fmt.Sprintf("%s%02d%s", c.BasePath, i, c.OverlayExtension)
}

func (c Config) Palette() (overlay.Palette, error) {
	return overlay.ParsePalette(c.ClassColors)
}

func (c Config) Visibility() overlay.Visibility {
	return overlay.Visibility{
		GroundTruth: c.ShowGroundTruth,
		Predictions: c.ShowPredictions,
	}
}

func (c Config) color(h string) mat.Vec3 {
	v, err := overlay.ParseHex(h)
	if err != nil {
		return mat.Vec3{1, 1, 1}
	}
	return v
}
