// Package similarity scores how alike two profiles are.
//
// Four sub-scores are computed independently: browsing/purchase history,
// mutual friends, geographic proximity and demographics. Each treats missing
// data as a zero contribution. The final score fed to the bond builder is an
// affine map of the demographics sub-score only; the other three are exposed
// through Breakdown.
package similarity

import (
	"math"

	"github.com/google/uuid"
	"github.com/olivierh59500/bondgraph-go/internal/profile"
)

// Earth constants in kilometers
const (
	EarthRadiusKm        = 6371.0
	EarthCircumferenceKm = 40075.0
	MaxAgeGap            = 100.0
)

// Weights configures the demographics blend and the final affine map.
type Weights struct {
	Age        float64 `mapstructure:"age_weight"`
	Gender     float64 `mapstructure:"gender_weight"`
	Occupation float64 `mapstructure:"occupation_weight"`

	// CompareOccupation enables the occupation term. When false the
	// occupation similarity is 0 whatever the weight.
	CompareOccupation bool `mapstructure:"compare_occupation"`

	FinalScale  float64 `mapstructure:"final_scale"`
	FinalOffset float64 `mapstructure:"final_offset"`
}

// DefaultWeights returns the production weights.
func DefaultWeights() Weights {
	return Weights{
		Age:         0.01,
		Gender:      0.79,
		Occupation:  0.20,
		FinalScale:  0.75,
		FinalOffset: 0.125,
	}
}

// Breakdown carries every sub-score of a pair plus the final score.
type Breakdown struct {
	History      float64
	Social       float64
	Location     float64
	Demographics float64
	Final        float64
}

// Scorer computes similarity scores. It is safe for concurrent use.
type Scorer struct {
	weights Weights
}

// NewScorer returns a scorer using w.
func NewScorer(w Weights) *Scorer {
	return &Scorer{weights: w}
}

// Score returns the similarity of a and b in [0,1].
func (s *Scorer) Score(a, b *profile.Profile) float64 {
	return s.final(s.Demographics(demographicsOf(a), demographicsOf(b)))
}

// Breakdown returns all sub-scores of a and b.
func (s *Scorer) Breakdown(a, b *profile.Profile) Breakdown {
	var ha, hb *profile.BehaviorHistory
	var sa, sb *profile.SocialConnections
	var la, lb *profile.Location
	if a != nil {
		ha, sa, la = a.BehaviorHistory, a.SocialConnections, a.Location
	}
	if b != nil {
		hb, sb, lb = b.BehaviorHistory, b.SocialConnections, b.Location
	}
	d := s.Demographics(demographicsOf(a), demographicsOf(b))
	return Breakdown{
		History:      History(ha, hb),
		Social:       Social(sa, sb),
		Location:     Location(la, lb),
		Demographics: d,
		Final:        s.final(d),
	}
}

func (s *Scorer) final(demographics float64) float64 {
	return clamp01(demographics*s.weights.FinalScale + s.weights.FinalOffset)
}

// Demographics blends age closeness, gender match and occupation match.
func (s *Scorer) Demographics(a, b *profile.Demographics) float64 {
	if a == nil || b == nil {
		return 0
	}
	age := 1 - math.Min(math.Abs(a.Age-b.Age)/MaxAgeGap, 1)
	gender := 0.0
	if a.Gender == b.Gender {
		gender = 1
	}
	occupation := 0.0
	if s.weights.CompareOccupation && a.Occupation == b.Occupation {
		occupation = 1
	}
	return age*s.weights.Age + gender*s.weights.Gender + occupation*s.weights.Occupation
}

// History scores shared pages and products against the two users' item counts.
//
// An item count is the number of visited pages, or the number of purchases
// when no page was visited. Shared items are counted the same way.
func History(a, b *profile.BehaviorHistory) float64 {
	if a == nil || b == nil {
		return 0
	}
	common := countCommonPages(a.PagesVisited, b.PagesVisited)
	if common == 0 {
		common = countCommonPurchases(a.Purchases, b.Purchases)
	}
	total := itemCount(a) + itemCount(b)
	if total == 0 {
		return 0
	}
	return clamp01(float64(common) / float64(total))
}

func itemCount(h *profile.BehaviorHistory) int {
	if n := len(h.PagesVisited); n > 0 {
		return n
	}
	return len(h.Purchases)
}

func countCommonPages(a, b []string) int {
	seen := make(map[string]struct{}, len(b))
	for _, p := range b {
		seen[p] = struct{}{}
	}
	n := 0
	for _, p := range a {
		if _, ok := seen[p]; ok {
			n++
		}
	}
	return n
}

func countCommonPurchases(a, b []profile.Purchase) int {
	seen := make(map[string]struct{}, len(b))
	for _, p := range b {
		seen[p.ProductID] = struct{}{}
	}
	n := 0
	for _, p := range a {
		if _, ok := seen[p.ProductID]; ok {
			n++
		}
	}
	return n
}

// Social scores mutual friends against the sum of both friend list sizes.
func Social(a, b *profile.SocialConnections) float64 {
	if a == nil || b == nil {
		return 0
	}
	total := len(a.Friends) + len(b.Friends)
	if total == 0 {
		return 0
	}
	friends := make(map[uuid.UUID]struct{}, len(b.Friends))
	for _, id := range b.Friends {
		friends[id] = struct{}{}
	}
	common := 0
	for _, id := range a.Friends {
		if _, ok := friends[id]; ok {
			common++
		}
	}
	return float64(common) / float64(total)
}

// Location maps the great-circle distance between a and b to [0,1], 1 meaning same place.
func Location(a, b *profile.Location) float64 {
	if a == nil || b == nil {
		return 0
	}
	d := HaversineKm(a.Latitude, a.Longitude, b.Latitude, b.Longitude)
	return 1 - math.Min(d/EarthCircumferenceKm, 1)
}

// HaversineKm returns the great-circle distance in kilometers between two points given in degrees.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	h = math.Min(h, 1)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusKm * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

func demographicsOf(p *profile.Profile) *profile.Demographics {
	if p == nil {
		return nil
	}
	return p.Demographics
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
