package profile

import "github.com/google/uuid"

// Arena owns every profile of a session, indexed by id.
type Arena struct {
	profiles map[uuid.UUID]*Profile
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{profiles: make(map[uuid.UUID]*Profile)}
}

// Put stores p, replacing any profile with the same id.
func (a *Arena) Put(p *Profile) {
	a.profiles[p.ID] = p
}

// Get returns the profile stored under id.
func (a *Arena) Get(id uuid.UUID) (*Profile, bool) {
	p, ok := a.profiles[id]
	return p, ok
}

// Friends resolves p's friend ids. Ids missing from the arena are skipped.
func (a *Arena) Friends(p *Profile) []*Profile {
	if p == nil || p.SocialConnections == nil {
		return nil
	}
	out := make([]*Profile, 0, len(p.SocialConnections.Friends))
	for _, id := range p.SocialConnections.Friends {
		if f, ok := a.Get(id); ok {
			out = append(out, f)
		}
	}
	return out
}
