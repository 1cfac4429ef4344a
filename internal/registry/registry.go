// Package registry provides a global registry for demo factories.
// Demos register themselves in init() functions, allowing the platform
// to discover and start them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/tui-scene/internal/scheduler"
)

// SoundRegistry receives the sounds a demo needs, decoded or synthesized.
type SoundRegistry interface {
	Register(name string, buf *beep.Buffer)
	RegisterTone(name string, freq float64, d time.Duration) error
}

// Demo is a playable scene graph built on the engine.
// Demos never touch the terminal; the platform drives the engine.
type Demo interface {
	// ID returns a unique identifier (e.g., "bounce"). Used for CLI
	// commands and score storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Description is a one-line summary for menus and listings.
	Description() string

	// Scene returns the root scene init function.
	Scene() scheduler.InitFunc

	// LoadSounds registers the demo's sounds.
	LoadSounds(r SoundRegistry) error
}

// DemoInfo contains metadata about a registered demo.
type DemoInfo struct {
	ID          string
	Title       string
	Description string
}

// Factory is a function that creates a new instance of a demo.
type Factory func() Demo

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]DemoInfo)
	mu        sync.RWMutex
)

// Register adds a demo factory to the registry.
// Panics if a demo with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: demo %q already registered", id))
	}

	factories[id] = f

	d := f()
	infos[id] = DemoInfo{ID: id, Title: d.Title(), Description: d.Description()}
}

// List returns information about all registered demos, sorted by ID.
func List() []DemoInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]DemoInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new demo by its ID.
func Create(id string) (Demo, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown demo %q", id)
	}

	return f(), nil
}

// Exists checks if a demo with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// unregister removes a demo. Tests only.
func unregister(id string) {
	mu.Lock()
	defer mu.Unlock()
	delete(factories, id)
	delete(infos, id)
}
