package reconcile

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/arcvista/backend/models"
	"github.com/google/uuid"
)

// fakeBlobStore records every Save and Delete so tests can assert exactly
// which blobs an operation touched.
type fakeBlobStore struct {
	saved     []string
	deleted   []string
	deleteErr map[string]error
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{deleteErr: map[string]error{}}
}

func (s *fakeBlobStore) Save(_ context.Context, name string, r io.Reader) error {
	if r != nil {
		io.Copy(io.Discard, r)
	}
	s.saved = append(s.saved, name)
	return nil
}

func (s *fakeBlobStore) Delete(_ context.Context, name string) error {
	if err := s.deleteErr[name]; err != nil {
		return err
	}
	s.deleted = append(s.deleted, name)
	return nil
}

type fakeProjectStore struct {
	records   map[uuid.UUID]*models.Project
	addErr    error
	updateErr error
}

func newFakeProjectStore() *fakeProjectStore {
	return &fakeProjectStore{records: map[uuid.UUID]*models.Project{}}
}

func (s *fakeProjectStore) put(p *models.Project) *models.Project {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	copied := *p
	s.records[p.ID] = &copied
	return s.records[p.ID]
}

func (s *fakeProjectStore) FindByID(id uuid.UUID) (*models.Project, error) {
	p, ok := s.records[id]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (s *fakeProjectStore) FindBySlug(slug string) (*models.Project, error) {
	for _, p := range s.records {
		if p.Slug == slug {
			copied := *p
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *fakeProjectStore) Add(project *models.Project) error {
	if s.addErr != nil {
		return s.addErr
	}
	project.ID = uuid.New()
	project.UpdatedAt = time.Now()
	copied := *project
	s.records[project.ID] = &copied
	return nil
}

func (s *fakeProjectStore) Update(project *models.Project, expectedUpdatedAt time.Time) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	existing, ok := s.records[project.ID]
	if !ok || !existing.UpdatedAt.Equal(expectedUpdatedAt) {
		return context.DeadlineExceeded
	}
	project.UpdatedAt = time.Now()
	copied := *project
	s.records[project.ID] = &copied
	return nil
}

func (s *fakeProjectStore) Delete(id uuid.UUID) error {
	delete(s.records, id)
	return nil
}

type fakeCategoryResolver struct {
	categories map[uuid.UUID]*models.Category
}

func newFakeCategoryResolver(ids ...uuid.UUID) *fakeCategoryResolver {
	r := &fakeCategoryResolver{categories: map[uuid.UUID]*models.Category{}}
	for _, id := range ids {
		r.categories[id] = &models.Category{ID: id, Name: "Residential", Type: models.CategoryTypeProject}
	}
	return r
}

func (r *fakeCategoryResolver) FindByID(id uuid.UUID) (*models.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, nil
	}
	return c, nil
}

type fakeServiceStore struct {
	records   map[uuid.UUID]*models.Service
	addErr    error
	updateErr error
}

func newFakeServiceStore() *fakeServiceStore {
	return &fakeServiceStore{records: map[uuid.UUID]*models.Service{}}
}

func (s *fakeServiceStore) put(svc *models.Service) *models.Service {
	if svc.ID == uuid.Nil {
		svc.ID = uuid.New()
	}
	copied := *svc
	s.records[svc.ID] = &copied
	return s.records[svc.ID]
}

func (s *fakeServiceStore) FindByID(id uuid.UUID) (*models.Service, error) {
	svc, ok := s.records[id]
	if !ok {
		return nil, nil
	}
	copied := *svc
	return &copied, nil
}

func (s *fakeServiceStore) Add(service *models.Service) error {
	if s.addErr != nil {
		return s.addErr
	}
	service.ID = uuid.New()
	service.UpdatedAt = time.Now()
	copied := *service
	s.records[service.ID] = &copied
	return nil
}

func (s *fakeServiceStore) Update(service *models.Service, expectedUpdatedAt time.Time) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	existing, ok := s.records[service.ID]
	if !ok || !existing.UpdatedAt.Equal(expectedUpdatedAt) {
		return context.DeadlineExceeded
	}
	service.UpdatedAt = time.Now()
	copied := *service
	s.records[service.ID] = &copied
	return nil
}

func (s *fakeServiceStore) Delete(id uuid.UUID) error {
	delete(s.records, id)
	return nil
}

type fakeTeamStore struct {
	records   map[uuid.UUID]*models.Team
	addErr    error
	updateErr error
}

func newFakeTeamStore() *fakeTeamStore {
	return &fakeTeamStore{records: map[uuid.UUID]*models.Team{}}
}

func (s *fakeTeamStore) put(m *models.Team) *models.Team {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	copied := *m
	s.records[m.ID] = &copied
	return s.records[m.ID]
}

func (s *fakeTeamStore) FindByID(id uuid.UUID) (*models.Team, error) {
	m, ok := s.records[id]
	if !ok {
		return nil, nil
	}
	copied := *m
	return &copied, nil
}

func (s *fakeTeamStore) Add(member *models.Team) error {
	if s.addErr != nil {
		return s.addErr
	}
	member.ID = uuid.New()
	member.UpdatedAt = time.Now()
	copied := *member
	s.records[member.ID] = &copied
	return nil
}

func (s *fakeTeamStore) Update(member *models.Team, expectedUpdatedAt time.Time) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	existing, ok := s.records[member.ID]
	if !ok || !existing.UpdatedAt.Equal(expectedUpdatedAt) {
		return context.DeadlineExceeded
	}
	member.UpdatedAt = time.Now()
	copied := *member
	s.records[member.ID] = &copied
	return nil
}

func (s *fakeTeamStore) Delete(id uuid.UUID) error {
	delete(s.records, id)
	return nil
}

type fakeCategoryStore struct {
	records map[uuid.UUID]*models.Category
}

func newFakeCategoryStore() *fakeCategoryStore {
	return &fakeCategoryStore{records: map[uuid.UUID]*models.Category{}}
}

func (s *fakeCategoryStore) put(c *models.Category) *models.Category {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	copied := *c
	s.records[c.ID] = &copied
	return s.records[c.ID]
}

func (s *fakeCategoryStore) FindAll(categoryType string) ([]*models.Category, error) {
	var out []*models.Category
	for _, c := range s.records {
		if categoryType == "" || c.Type == categoryType {
			copied := *c
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *fakeCategoryStore) FindByID(id uuid.UUID) (*models.Category, error) {
	c, ok := s.records[id]
	if !ok {
		return nil, nil
	}
	copied := *c
	return &copied, nil
}

func (s *fakeCategoryStore) FindByNameAndType(name, categoryType string, excludeID uuid.UUID) (*models.Category, error) {
	for _, c := range s.records {
		if c.ID == excludeID {
			continue
		}
		if strings.EqualFold(c.Name, name) && c.Type == categoryType {
			copied := *c
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *fakeCategoryStore) Add(category *models.Category) error {
	category.ID = uuid.New()
	copied := *category
	s.records[category.ID] = &copied
	return nil
}

func (s *fakeCategoryStore) Update(category *models.Category) error {
	copied := *category
	s.records[category.ID] = &copied
	return nil
}

func (s *fakeCategoryStore) Delete(id uuid.UUID) error {
	delete(s.records, id)
	return nil
}

type fakeRefCounter struct {
	counts map[uuid.UUID]int64
}

func (c *fakeRefCounter) CountByCategory(categoryID uuid.UUID) (int64, error) {
	return c.counts[categoryID], nil
}
