package ecs

import "github.com/BurntSushi/toml"

// WorldConfig holds the handful of build-time tunables a host may want to
// externalize. Entity/component data is never persisted through this path —
// only capacity and strictness knobs (§2.1/§6).
type WorldConfig struct {
	InitialEntityCapacity int  `toml:"initial_entity_capacity"`
	ChunkCapacity         int  `toml:"chunk_capacity"`
	StrictRegistration    bool `toml:"strict_registration"`
	StrictPairs           bool `toml:"strict_pairs"`
	MaxDeferredProducers  int  `toml:"max_deferred_producers"`
}

// DefaultWorldConfig returns the tunables the teacher repo defaults to:
// a generous initial entity capacity and the spec's 4096-entity chunk.
func DefaultWorldConfig() WorldConfig {
	return WorldConfig{
		InitialEntityCapacity: 1024,
		ChunkCapacity:         DefaultChunkCapacity,
		StrictRegistration:    false,
		StrictPairs:           false,
		MaxDeferredProducers:  16,
	}
}

// LoadWorldConfig reads a TOML file into a WorldConfig, starting from
// DefaultWorldConfig so an incomplete file only overrides what it specifies.
func LoadWorldConfig(path string) (WorldConfig, error) {
	cfg := DefaultWorldConfig()
	_, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return WorldConfig{}, err
	}
	return cfg, nil
}
