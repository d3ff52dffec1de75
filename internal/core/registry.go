package core

import (
	"fmt"
	"sort"
	"sync"
)

var (
	registry   = make(map[string]OpDefinition)
	registryMu sync.RWMutex
)

// Register adds an operation definition to the registry.
// Panics if an operation with the same key is already registered.
func Register(def OpDefinition) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if def.Info.Key == "" {
		panic("operation registered without a key")
	}
	if def.Run == nil {
		panic(fmt.Sprintf("operation %s registered without a run function", def.Info.Key))
	}
	if _, exists := registry[def.Info.Key]; exists {
		panic(fmt.Sprintf("operation already registered: %s", def.Info.Key))
	}

	registry[def.Info.Key] = def
}

// Get returns an operation definition by key.
// Returns false if not found.
func Get(key string) (OpDefinition, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	def, ok := registry[key]
	return def, ok
}

// All returns all registered operation definitions.
// Sorted by group then by key for consistent ordering.
func All() []OpDefinition {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]OpDefinition, 0, len(registry))
	for _, def := range registry {
		result = append(result, def)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Info.Group != result[j].Info.Group {
			return result[i].Info.Group < result[j].Info.Group
		}
		return result[i].Info.Key < result[j].Info.Key
	})

	return result
}

// ByGroup returns all operation definitions for a specific group.
// Sorted by key for consistent ordering.
func ByGroup(group string) []OpDefinition {
	registryMu.RLock()
	defer registryMu.RUnlock()

	var result []OpDefinition
	for _, def := range registry {
		if def.Info.Group == group {
			result = append(result, def)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Info.Key < result[j].Info.Key
	})

	return result
}

// Groups returns all unique group names.
// Sorted alphabetically.
func Groups() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	seen := make(map[string]bool)
	for _, def := range registry {
		seen[def.Info.Group] = true
	}

	groups := make([]string, 0, len(seen))
	for g := range seen {
		groups = append(groups, g)
	}

	sort.Strings(groups)
	return groups
}

// OpCount returns the number of registered operations.
func OpCount() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(registry)
}

// Clear removes all registered operations.
// Primarily useful for testing.
func Clear() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[string]OpDefinition)
}
