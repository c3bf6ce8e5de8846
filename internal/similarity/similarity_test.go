package similarity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/olivierh59500/bondgraph-go/internal/profile"
	"github.com/stretchr/testify/assert"
)

func TestScore_SameAgeAndGenderDifferentOccupation(t *testing.T) {
	s := NewScorer(DefaultWeights())
	a := &profile.Profile{Demographics: &profile.Demographics{Age: 31, Gender: "female", Occupation: "Chef"}}
	b := &profile.Profile{Demographics: &profile.Demographics{Age: 31, Gender: "female", Occupation: "Pilot"}}

	assert.InDelta(t, 0.80, s.Demographics(a.Demographics, b.Demographics), 1e-12)
	assert.InDelta(t, 0.725, s.Score(a, b), 1e-12)
}

func TestScore_OccupationDisabledByDefault(t *testing.T) {
	a := &profile.Demographics{Age: 40, Gender: "male", Occupation: "Chef"}
	b := &profile.Demographics{Age: 40, Gender: "male", Occupation: "Chef"}

	assert.InDelta(t, 0.80, NewScorer(DefaultWeights()).Demographics(a, b), 1e-12)

	w := DefaultWeights()
	w.CompareOccupation = true
	assert.InDelta(t, 1.0, NewScorer(w).Demographics(a, b), 1e-12)
}

func TestScore_MissingDemographics(t *testing.T) {
	s := NewScorer(DefaultWeights())
	full := &profile.Profile{Demographics: &profile.Demographics{Age: 20, Gender: "other"}}

	assert.InDelta(t, 0.125, s.Score(full, &profile.Profile{}), 1e-12)
	assert.InDelta(t, 0.125, s.Score(nil, nil), 1e-12)
}

func TestScore_AgeGap(t *testing.T) {
	s := NewScorer(DefaultWeights())
	a := &profile.Demographics{Age: 20, Gender: "male"}
	b := &profile.Demographics{Age: 70, Gender: "female"}
	assert.InDelta(t, 0.005, s.Demographics(a, b), 1e-12)

	b.Age = 200
	assert.InDelta(t, 0, s.Demographics(a, b), 1e-12)
}

func TestLocation(t *testing.T) {
	lisbon := &profile.Location{Latitude: 38.72, Longitude: -9.14}

	tests := []struct {
		name  string
		a, b  *profile.Location
		want  float64
		delta float64
	}{
		{"identical", lisbon, lisbon, 1.0, 1e-12},
		{"antipodal", &profile.Location{Latitude: 0, Longitude: 0}, &profile.Location{Latitude: 0, Longitude: 180}, 0.5013, 1e-3},
		{"missing", lisbon, nil, 0, 0},
		{"both missing", nil, nil, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Location(tt.a, tt.b), tt.delta)
		})
	}
}

func TestHaversineKm(t *testing.T) {
	assert.InDelta(t, 20015.087, HaversineKm(0, 0, 0, 180), 1e-2)
	assert.InDelta(t, 0, HaversineKm(10, 10, 10, 10), 1e-12)
}

func TestHistory(t *testing.T) {
	tests := []struct {
		name string
		a, b *profile.BehaviorHistory
		want float64
	}{
		{
			name: "shared page",
			a:    &profile.BehaviorHistory{PagesVisited: []string{"homepage", "checkout"}, Purchases: []profile.Purchase{{ProductID: "x"}}},
			b:    &profile.BehaviorHistory{PagesVisited: []string{"homepage"}, Purchases: []profile.Purchase{{ProductID: "x"}, {ProductID: "y"}}},
			want: 1.0 / 3,
		},
		{
			name: "purchases only",
			a:    &profile.BehaviorHistory{Purchases: []profile.Purchase{{ProductID: "p1"}, {ProductID: "p2"}}},
			b:    &profile.BehaviorHistory{Purchases: []profile.Purchase{{ProductID: "p2"}}},
			want: 1.0 / 3,
		},
		{
			// Purchases only count when no page is shared, and item counts use pages when present.
			name: "pages shadow purchases",
			a:    &profile.BehaviorHistory{PagesVisited: []string{"homepage"}, Purchases: []profile.Purchase{{ProductID: "p1"}}},
			b:    &profile.BehaviorHistory{PagesVisited: []string{"checkout"}, Purchases: []profile.Purchase{{ProductID: "p1"}}},
			want: 0.5,
		},
		{name: "empty", a: &profile.BehaviorHistory{}, b: &profile.BehaviorHistory{}, want: 0},
		{name: "missing", a: nil, b: &profile.BehaviorHistory{PagesVisited: []string{"homepage"}}, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, History(tt.a, tt.b), 1e-12)
		})
	}
}

func TestSocial(t *testing.T) {
	f1, f2, f3, f4 := uuid.New(), uuid.New(), uuid.New(), uuid.New()

	a := &profile.SocialConnections{Friends: []uuid.UUID{f1, f2}}
	b := &profile.SocialConnections{Friends: []uuid.UUID{f2, f3, f4}}
	assert.InDelta(t, 0.2, Social(a, b), 1e-12)

	assert.Equal(t, 0.0, Social(&profile.SocialConnections{}, &profile.SocialConnections{}))
	assert.Equal(t, 0.0, Social(a, nil))
}

func TestBreakdown(t *testing.T) {
	s := NewScorer(DefaultWeights())
	a := &profile.Profile{
		Location:     &profile.Location{Latitude: 1, Longitude: 1},
		Demographics: &profile.Demographics{Age: 30, Gender: "male"},
	}
	b := &profile.Profile{
		Location:     &profile.Location{Latitude: 1, Longitude: 1},
		Demographics: &profile.Demographics{Age: 30, Gender: "male"},
	}

	got := s.Breakdown(a, b)
	assert.Equal(t, 0.0, got.History)
	assert.Equal(t, 0.0, got.Social)
	assert.InDelta(t, 1.0, got.Location, 1e-12)
	assert.InDelta(t, 0.80, got.Demographics, 1e-12)
	assert.InDelta(t, s.Score(a, b), got.Final, 1e-12)
}
