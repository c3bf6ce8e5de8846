package profile

import (
	"encoding/json"
	"fmt"
	"os"
)

// FileProvider hands out profiles read from a JSON array, cycling when exhausted.
type FileProvider struct {
	arena    *Arena
	profiles []*Profile
	next     int
}

// LoadFile reads a JSON array of profiles from filename and stores them in arena.
func LoadFile(filename string, arena *Arena) (*FileProvider, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("profile: read %q: %w", filename, err)
	}
	var profiles []*Profile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("profile: decode %q: %w", filename, err)
	}
	for _, p := range profiles {
		arena.Put(p)
	}
	return &FileProvider{arena: arena, profiles: profiles}, nil
}

// Next returns the next profile in file order.
func (f *FileProvider) Next() (*Profile, error) {
	if len(f.profiles) == 0 {
		return nil, ErrEmptyProvider
	}
	p := f.profiles[f.next%len(f.profiles)]
	f.next++
	return p, nil
}

// Friends resolves p's friends among the loaded profiles.
func (f *FileProvider) Friends(p *Profile) []*Profile {
	return f.arena.Friends(p)
}
