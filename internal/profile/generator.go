package profile

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/aquilax/go-perlin"
	"github.com/google/uuid"
)

// Generator parameters
const (
	MinAge       = 18.0
	MaxAge       = 80.0
	MaxPurchases = 5
	MaxFriends   = 10
	MinAmount    = 10
	MaxAmount    = 100
	NoiseScale   = 3.0 // Noise frequency over normalized lat/lon
)

var (
	firstNames  = []string{"Ana", "Bruno", "Carla", "Diego", "Elisa", "Felipe", "Gabriela", "Hugo", "Iris", "João", "Karen", "Lucas", "Marina", "Nicolas", "Olivia", "Paulo", "Rafaela", "Samuel", "Tânia", "Vitor"}
	lastNames   = []string{"Almeida", "Barbosa", "Costa", "Dias", "Ferreira", "Gomes", "Lima", "Martins", "Nunes", "Oliveira", "Pereira", "Ribeiro", "Santos", "Teixeira", "Vieira"}
	pages       = []string{"homepage", "product page", "checkout"}
	genders     = []string{"male", "female", "other"}
	occupations = []string{"Engineer", "Designer", "Teacher", "Nurse", "Accountant", "Chef", "Pilot", "Writer", "Analyst", "Architect"}
	productIDs  = []string{"!", "#", "$", "%", "&", "*", "+", "=", "?", "@", "^", "~"}
	places      = []struct{ Country, City string }{
		{"Brazil", "São Paulo"}, {"Portugal", "Lisbon"}, {"France", "Lyon"}, {"Japan", "Osaka"},
		{"Canada", "Toronto"}, {"Kenya", "Nairobi"}, {"Australia", "Perth"}, {"Mexico", "Puebla"},
		{"Norway", "Bergen"}, {"India", "Pune"},
	}
)

// Generator produces random profiles. Ages and genders follow a Perlin noise
// field over coordinates, so nearby profiles tend to share demographics.
// Each generated profile gets friends that are stored in the arena as leaf
// profiles without friends of their own.
type Generator struct {
	arena *Arena
	rng   *rand.Rand
	noise *perlin.Perlin
	now   time.Time
}

// NewGenerator creates a generator writing into arena. Equal seeds yield equal sequences.
func NewGenerator(arena *Arena, seed int64) *Generator {
	return &Generator{
		arena: arena,
		rng:   rand.New(rand.NewSource(seed)),
		noise: perlin.NewPerlin(2, 2, 3, seed),
		now:   time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
}

// Friends resolves p's generated friends.
func (g *Generator) Friends(p *Profile) []*Profile {
	return g.arena.Friends(p)
}

// Next generates a profile with friends and stores all of them in the arena.
func (g *Generator) Next() (*Profile, error) {
	p, err := g.generate(true)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (g *Generator) generate(withFriends bool) (*Profile, error) {
	id, err := uuid.NewRandomFromReader(g.rng)
	if err != nil {
		return nil, fmt.Errorf("profile: generate id: %w", err)
	}
	first := firstNames[g.rng.Intn(len(firstNames))]
	last := lastNames[g.rng.Intn(len(lastNames))]

	p := &Profile{
		ID:              id,
		Name:            first + " " + last,
		Email:           strings.ToLower(first+"."+last) + "@example.com",
		BehaviorHistory: g.history(),
		Location:        g.location(),
	}
	p.Demographics = g.demographics(p.Location)

	if withFriends {
		n := g.rng.Intn(MaxFriends + 1)
		friends := make([]uuid.UUID, 0, n)
		for i := 0; i < n; i++ {
			f, err := g.generate(false)
			if err != nil {
				return nil, err
			}
			friends = append(friends, f.ID)
		}
		p.SocialConnections = &SocialConnections{Friends: friends}
	}

	g.arena.Put(p)
	return p, nil
}

func (g *Generator) history() *BehaviorHistory {
	visited := make([]string, 0, len(pages))
	for _, i := range g.rng.Perm(len(pages))[:1+g.rng.Intn(len(pages))] {
		visited = append(visited, pages[i])
	}

	n := g.rng.Intn(MaxPurchases + 1)
	purchases := make([]Purchase, 0, n)
	for i := 0; i < n; i++ {
		purchases = append(purchases, Purchase{
			ProductID: productIDs[g.rng.Intn(len(productIDs))],
			Amount:    float64(MinAmount + g.rng.Intn(MaxAmount-MinAmount+1)),
			Date:      g.now.Add(-time.Duration(g.rng.Int63n(int64(365 * 24 * time.Hour)))),
		})
	}
	return &BehaviorHistory{PagesVisited: visited, Purchases: purchases}
}

func (g *Generator) location() *Location {
	place := places[g.rng.Intn(len(places))]
	return &Location{
		Latitude:  g.rng.Float64()*180 - 90,
		Longitude: g.rng.Float64()*360 - 180,
		Country:   place.Country,
		City:      place.City,
	}
}

func (g *Generator) demographics(loc *Location) *Demographics {
	x := loc.Latitude / 90 * NoiseScale
	y := loc.Longitude / 180 * NoiseScale

	// Noise2D stays roughly within [-1,1]
	ageField := clamp01((g.noise.Noise2D(x, y) + 1) / 2)
	age := MinAge + (MaxAge-MinAge)*(0.7*ageField+0.3*g.rng.Float64())

	genderField := clamp01((g.noise.Noise2D(y+17, x+17) + 1) / 2)
	gender := genders[int(math.Min(genderField*0.6+g.rng.Float64()*0.4, 0.999)*float64(len(genders)))]

	return &Demographics{
		Age:        age,
		Gender:     gender,
		Occupation: occupations[g.rng.Intn(len(occupations))],
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
