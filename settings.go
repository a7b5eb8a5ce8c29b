// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

// Settings holds the editor tuning knobs.
//
type Settings struct {
	SnapDistance    float64 // pin snap distance
	PinRadius       float64 // drawn pin radius
	GridSize        float64 // placement grid step
	SnapToGrid      bool    // snap placed and moved gates to the grid
	AvoidObstacles  bool    // route wires around gates
	Clearance       float64 // wire to gate clearance when avoiding obstacles
	DeleteTolerance float64 // wire deletion hit test slack
	HoverThreshold  float64 // wire hover distance
	SidebarWidth    float64 // no gates may be placed left of this
}

// DefaultSettings returns the default editor settings.
//
func DefaultSettings() Settings {
	return Settings{
		SnapDistance:    DefaultSnapDistance,
		PinRadius:       6,
		GridSize:        30,
		SnapToGrid:      true,
		Clearance:       DefaultClearance,
		DeleteTolerance: DefaultDeleteTolerance,
		HoverThreshold:  10,
		SidebarWidth:    200,
	}
}
