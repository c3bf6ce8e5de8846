// Package profile holds the user profile records the layout engine scores.
//
// Profiles live in an Arena keyed by id. Friend lists are ids into the arena,
// never nested profiles, so a profile graph is always one level deep.
package profile

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrEmptyProvider is returned by a Provider that has no profiles to hand out.
var ErrEmptyProvider = errors.New("profile: provider has no profiles")

// Profile is one synthetic user. Every sub-record is optional.
type Profile struct {
	ID                uuid.UUID          `json:"id"`
	Name              string             `json:"name"`
	Email             string             `json:"email"`
	BehaviorHistory   *BehaviorHistory   `json:"behaviorHistory,omitempty"`
	SocialConnections *SocialConnections `json:"socialConnections,omitempty"`
	Location          *Location          `json:"location,omitempty"`
	Demographics      *Demographics      `json:"demographics,omitempty"`
}

// BehaviorHistory records what a user looked at and bought.
type BehaviorHistory struct {
	PagesVisited []string   `json:"pagesVisited"`
	Purchases    []Purchase `json:"purchases"`
}

// Purchase is a single order line.
type Purchase struct {
	ProductID string    `json:"productId"`
	Amount    float64   `json:"amount"`
	Date      time.Time `json:"date"`
}

// SocialConnections lists friend ids. The ids are non-owning references into an Arena.
type SocialConnections struct {
	Friends []uuid.UUID `json:"friends"`
}

// Location is a point on Earth in degrees plus its place names.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Country   string  `json:"country"`
	City      string  `json:"city"`
}

// Demographics describes who the user is.
type Demographics struct {
	Age        float64 `json:"age"`
	Gender     string  `json:"gender"`
	Occupation string  `json:"occupation"`
}

// FirstName returns the first word of the profile name.
func (p *Profile) FirstName() string {
	if p == nil {
		return ""
	}
	first, _, _ := strings.Cut(strings.TrimSpace(p.Name), " ")
	return first
}

// summary is the hover panel view of a profile: identity, place, demographics
// and browsing history, without the friend list.
type summary struct {
	ID           uuid.UUID     `json:"id"`
	Name         string        `json:"name"`
	Email        string        `json:"email"`
	Location     *Location     `json:"location,omitempty"`
	Demographics *Demographics `json:"demographics,omitempty"`
	PagesVisited []string      `json:"pagesVisited,omitempty"`
	Purchases    []Purchase    `json:"purchases,omitempty"`
}

// Summary renders the profile as indented JSON lines for an info panel.
func (p *Profile) Summary() []string {
	if p == nil {
		return nil
	}
	s := summary{
		ID:           p.ID,
		Name:         p.Name,
		Email:        p.Email,
		Location:     p.Location,
		Demographics: p.Demographics,
	}
	if p.BehaviorHistory != nil {
		s.PagesVisited = p.BehaviorHistory.PagesVisited
		s.Purchases = p.BehaviorHistory.Purchases
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil
	}
	return strings.Split(string(data), "\n")
}

// Provider hands out profiles for new particles.
type Provider interface {
	Next() (*Profile, error)
}

// FriendResolver is implemented by providers that can turn friend ids into profiles.
type FriendResolver interface {
	Friends(p *Profile) []*Profile
}
