// Package loader provides the plugin-like feature loading system.
//
// Each feature (license reports, client directory, integrity) implements the Feature
// interface and registers its own routes when loaded.
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The Manager keeps registration order and loads only enabled features.
package loader
