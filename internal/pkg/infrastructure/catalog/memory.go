package catalog

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/diwise/idmc-opendata/internal/pkg/domain"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/google/uuid"
)

//Store is the read side of a catalog, used to preview what a run produced
type Store interface {
	Datasets() []domain.Dataset
	Dataset(name string) (*domain.Dataset, bool)
	Showcases() []domain.Showcase
	View(resourceID string) (*domain.ResourceView, bool)
}

//Memory is a Client that keeps everything it is given in memory. It is used for dry runs.
type Memory struct {
	mu         sync.RWMutex
	datasets   map[string]domain.Dataset
	showcases  map[string]domain.Showcase
	views      map[string]domain.ResourceView
	associated map[string][]string
}

func NewMemory() *Memory {
	return &Memory{
		datasets:   map[string]domain.Dataset{},
		showcases:  map[string]domain.Showcase{},
		views:      map[string]domain.ResourceView{},
		associated: map[string][]string{},
	}
}

func (m *Memory) CreateOrUpdateDataset(ctx context.Context, dataset *domain.Dataset) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, found := m.datasets[dataset.Name]
	if found {
		dataset.ID = existing.ID
	} else {
		dataset.ID = uuid.NewString()
	}

	known := map[string]string{}
	for _, r := range existing.Resources {
		known[r.Name] = r.ID
	}

	for i := range dataset.Resources {
		r := &dataset.Resources[i]
		r.PackageID = dataset.ID

		if id, ok := known[r.Name]; ok {
			r.ID = id
		} else {
			r.ID = uuid.NewString()
		}
		r.URL = r.FilePath
	}

	stored := *dataset
	stored.Resources = append([]domain.Resource{}, dataset.Resources...)
	m.datasets[dataset.Name] = stored

	log := logging.GetFromContext(ctx)
	log.Debug().Msgf("dry run stored dataset %s with %d resources", dataset.Name, len(dataset.Resources))

	return nil
}

func (m *Memory) CreateOrUpdateShowcase(ctx context.Context, showcase *domain.Showcase, datasetName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.datasets[datasetName]; !ok {
		return fmt.Errorf("failed to associate showcase %s with %s: %w", showcase.Name, datasetName, ErrNotFound)
	}

	if existing, ok := m.showcases[showcase.Name]; ok {
		showcase.ID = existing.ID
	} else {
		showcase.ID = uuid.NewString()
	}

	m.showcases[showcase.Name] = *showcase

	for _, n := range m.associated[showcase.Name] {
		if n == datasetName {
			return nil
		}
	}
	m.associated[showcase.Name] = append(m.associated[showcase.Name], datasetName)

	return nil
}

func (m *Memory) CreateOrUpdateResourceView(ctx context.Context, view *domain.ResourceView) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, ds := range m.datasets {
		for _, r := range ds.Resources {
			if r.ID == view.ResourceID {
				m.views[view.ResourceID] = *view
				return nil
			}
		}
	}

	return fmt.Errorf("failed to create view for resource %s: %w", view.ResourceID, ErrNotFound)
}

//Datasets returns the stored datasets ordered by name
func (m *Memory) Datasets() []domain.Dataset {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]domain.Dataset, 0, len(m.datasets))
	for _, ds := range m.datasets {
		result = append(result, ds)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })

	return result
}

func (m *Memory) Dataset(name string) (*domain.Dataset, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ds, ok := m.datasets[name]
	if !ok {
		return nil, false
	}

	return &ds, true
}

//Showcases returns the stored showcases ordered by name
func (m *Memory) Showcases() []domain.Showcase {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]domain.Showcase, 0, len(m.showcases))
	for _, sc := range m.showcases {
		result = append(result, sc)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })

	return result
}

func (m *Memory) View(resourceID string) (*domain.ResourceView, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.views[resourceID]
	if !ok {
		return nil, false
	}

	return &v, true
}

//ShowcaseDatasets returns the names of the datasets a showcase has been associated with
func (m *Memory) ShowcaseDatasets(showcaseName string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]string{}, m.associated[showcaseName]...)
}
