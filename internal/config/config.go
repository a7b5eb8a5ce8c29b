// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package config loads the editor settings.
//
// Settings come from an optional TOML file. Every field has a default, and
// any field can be overridden by a LOGICSIM_* environment variable:
//
//	LOGICSIM_SNAP_DISTANCE    snap_distance
//	LOGICSIM_PIN_RADIUS       pin_radius
//	LOGICSIM_GRID_SIZE        grid_size
//	LOGICSIM_SNAP_TO_GRID     snap_to_grid
//	LOGICSIM_AVOID_OBSTACLES  avoid_obstacles
//	LOGICSIM_CLEARANCE        clearance
//	LOGICSIM_DELETE_TOLERANCE delete_tolerance
//	LOGICSIM_HOVER_THRESHOLD  hover_threshold
//	LOGICSIM_CANVAS_WIDTH     canvas_width
//	LOGICSIM_CANVAS_HEIGHT    canvas_height
//	LOGICSIM_SIDEBAR_WIDTH    sidebar_width
//
package config

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/db47h/logicsim"
	"github.com/pkg/errors"
)

// Config holds the editor settings and the canvas size.
//
type Config struct {
	SnapDistance    float64 `toml:"snap_distance"`
	PinRadius       float64 `toml:"pin_radius"`
	GridSize        float64 `toml:"grid_size"`
	SnapToGrid      bool    `toml:"snap_to_grid"`
	AvoidObstacles  bool    `toml:"avoid_obstacles"`
	Clearance       float64 `toml:"clearance"`
	DeleteTolerance float64 `toml:"delete_tolerance"`
	HoverThreshold  float64 `toml:"hover_threshold"`
	CanvasWidth     int     `toml:"canvas_width"`
	CanvasHeight    int     `toml:"canvas_height"`
	SidebarWidth    float64 `toml:"sidebar_width"`
}

// Default returns the default configuration.
//
func Default() *Config {
	s := logicsim.DefaultSettings()
	return &Config{
		SnapDistance:    s.SnapDistance,
		PinRadius:       s.PinRadius,
		GridSize:        s.GridSize,
		SnapToGrid:      s.SnapToGrid,
		AvoidObstacles:  s.AvoidObstacles,
		Clearance:       s.Clearance,
		DeleteTolerance: s.DeleteTolerance,
		HoverThreshold:  s.HoverThreshold,
		CanvasWidth:     1800,
		CanvasHeight:    880,
		SidebarWidth:    s.SidebarWidth,
	}
}

// Load returns the configuration read from the TOML file at path, on top of
// the defaults, with environment overrides applied. An empty path skips the
// file. Unknown keys in the file are an error.
//
func Load(path string) (*Config, error) {
	c := Default()
	if path != "" {
		md, err := toml.DecodeFile(path, c)
		if err != nil {
			return nil, errors.Wrapf(err, "load %s", path)
		}
		if u := md.Undecoded(); len(u) > 0 {
			keys := make([]string, len(u))
			for i, k := range u {
				keys[i] = k.String()
			}
			return nil, errors.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
		}
	}
	if err := c.applyEnv(); err != nil {
		return nil, err
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) applyEnv() error {
	floats := []struct {
		key string
		v   *float64
	}{
		{"LOGICSIM_SNAP_DISTANCE", &c.SnapDistance},
		{"LOGICSIM_PIN_RADIUS", &c.PinRadius},
		{"LOGICSIM_GRID_SIZE", &c.GridSize},
		{"LOGICSIM_CLEARANCE", &c.Clearance},
		{"LOGICSIM_DELETE_TOLERANCE", &c.DeleteTolerance},
		{"LOGICSIM_HOVER_THRESHOLD", &c.HoverThreshold},
		{"LOGICSIM_SIDEBAR_WIDTH", &c.SidebarWidth},
	}
	for _, f := range floats {
		s := os.Getenv(f.key)
		if s == "" {
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return errors.Wrap(err, f.key)
		}
		*f.v = v
	}
	bools := []struct {
		key string
		v   *bool
	}{
		{"LOGICSIM_SNAP_TO_GRID", &c.SnapToGrid},
		{"LOGICSIM_AVOID_OBSTACLES", &c.AvoidObstacles},
	}
	for _, f := range bools {
		s := os.Getenv(f.key)
		if s == "" {
			continue
		}
		v, err := strconv.ParseBool(s)
		if err != nil {
			return errors.Wrap(err, f.key)
		}
		*f.v = v
	}
	ints := []struct {
		key string
		v   *int
	}{
		{"LOGICSIM_CANVAS_WIDTH", &c.CanvasWidth},
		{"LOGICSIM_CANVAS_HEIGHT", &c.CanvasHeight},
	}
	for _, f := range ints {
		s := os.Getenv(f.key)
		if s == "" {
			continue
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			return errors.Wrap(err, f.key)
		}
		*f.v = v
	}
	return nil
}

func (c *Config) validate() error {
	switch {
	case c.SnapDistance < 0:
		return errors.New("snap_distance must not be negative")
	case c.GridSize < 0:
		return errors.New("grid_size must not be negative")
	case c.Clearance < 0:
		return errors.New("clearance must not be negative")
	case c.CanvasWidth <= 0 || c.CanvasHeight <= 0:
		return errors.Errorf("invalid canvas size %dx%d", c.CanvasWidth, c.CanvasHeight)
	}
	return nil
}

// Settings returns the editor settings.
//
func (c *Config) Settings() logicsim.Settings {
	return logicsim.Settings{
		SnapDistance:    c.SnapDistance,
		PinRadius:       c.PinRadius,
		GridSize:        c.GridSize,
		SnapToGrid:      c.SnapToGrid,
		AvoidObstacles:  c.AvoidObstacles,
		Clearance:       c.Clearance,
		DeleteTolerance: c.DeleteTolerance,
		HoverThreshold:  c.HoverThreshold,
		SidebarWidth:    c.SidebarWidth,
	}
}

// Write encodes c as TOML to w.
//
func (c *Config) Write(w io.Writer) error {
	return errors.Wrap(toml.NewEncoder(w).Encode(c), "encode config")
}
