package memory

import (
	"sync"

	"github.com/Temutjin2k/fitness-connect/internal/domain/models"
	"github.com/Temutjin2k/fitness-connect/internal/domain/types"
)

// DefaultTrainers is the static candidate pool
var DefaultTrainers = []models.Trainer{
	{
		ID:           "trainer-carlos",
		Name:         "Carlos Silva",
		Avatar:       "/avatars/carlos.jpg",
		Specialties:  []string{"Musculação", "CrossFit"},
		Rating:       4.9,
		PricePerHour: 80,
		DistanceKm:   1.2,
		Location:     models.Location{Latitude: -23.5614, Longitude: -46.6559},
	},
	{
		ID:           "trainer-ana",
		Name:         "Ana Paula",
		Avatar:       "/avatars/ana.jpg",
		Specialties:  []string{"Yoga", "Pilates"},
		Rating:       4.8,
		PricePerHour: 70,
		DistanceKm:   2.5,
		Location:     models.Location{Latitude: -23.5489, Longitude: -46.6388},
	},
	{
		ID:           "trainer-rafael",
		Name:         "Rafael Costa",
		Avatar:       "/avatars/rafael.jpg",
		Specialties:  []string{"HIIT", "Cardio"},
		Rating:       4.7,
		PricePerHour: 75,
		DistanceKm:   3.1,
		Location:     models.Location{Latitude: -23.5733, Longitude: -46.6417},
	},
}

// Catalog is an in-memory trainer pool. Safe for concurrent readers.
type Catalog struct {
	mu       sync.RWMutex
	trainers []models.Trainer
}

func NewCatalog(trainers []models.Trainer) *Catalog {
	c := &Catalog{}
	c.Replace(trainers)
	return c
}

// NewDefaultCatalog returns a catalog holding DefaultTrainers.
func NewDefaultCatalog() *Catalog {
	return NewCatalog(DefaultTrainers)
}

// Trainers returns a copy of the pool
func (c *Catalog) Trainers() []models.Trainer {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.Trainer, len(c.trainers))
	copy(out, c.trainers)
	return out
}

// Get returns the trainer with the given ID
func (c *Catalog) Get(id string) (models.Trainer, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, t := range c.trainers {
		if t.ID == id {
			return t, nil
		}
	}
	return models.Trainer{}, types.ErrTrainerNotFound
}

// Replace swaps the whole pool
func (c *Catalog) Replace(trainers []models.Trainer) {
	cp := make([]models.Trainer, len(trainers))
	copy(cp, trainers)

	c.mu.Lock()
	c.trainers = cp
	c.mu.Unlock()
}
