// Package builder implements the four-step custom project wizard: pick
// components, define requirements, review, blueprint. Draft state lives in
// the session store so a returning client resumes where it left off.
package builder

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"iotshop/internal/domain"
	"iotshop/internal/store"
)

var (
	// ErrNoComponents blocks leaving the component step with an empty list.
	ErrNoComponents = errors.New("no components selected")
	// ErrInvalidQuantity is returned for explicit quantities below one.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	// ErrNoBlueprint blocks submitting before a blueprint was generated.
	ErrNoBlueprint = errors.New("blueprint not generated")
)

type Step int

const (
	StepComponents Step = iota + 1
	StepRequirements
	StepReview
	StepBlueprint
)

const (
	StatusDraft     = "draft"
	StatusSubmitted = "submitted"
)

// Draft is the per-session wizard state.
type Draft struct {
	Step         Step                       `json:"step"`
	Components   []domain.ProjectComponent  `json:"components"`
	Requirements domain.ProjectRequirements `json:"requirements"`
	Blueprint    *domain.Blueprint          `json:"blueprint,omitempty"`
	TotalCents   int64                      `json:"totalCents"`
}

type projectRepository interface {
	Create(ctx context.Context, p domain.CustomProject) (domain.CustomProject, error)
	ByUser(ctx context.Context, userID string) ([]domain.CustomProject, error)
	GetByID(ctx context.Context, id string) (*domain.CustomProject, error)
}

// Service drives the wizard. generateDelay simulates the latency of a real
// blueprint backend and honors context cancellation.
type Service struct {
	kv            store.KV
	projects      projectRepository
	generateDelay time.Duration
}

func New(kv store.KV, projects projectRepository, generateDelay time.Duration) *Service {
	return &Service{kv: kv, projects: projects, generateDelay: generateDelay}
}

func draftKey(sessionID string) string { return "draft:" + sessionID }

// Get loads the session's draft, starting a fresh one when none exists.
func (s *Service) Get(ctx context.Context, sessionID string) (Draft, error) {
	raw, err := s.kv.Get(ctx, draftKey(sessionID))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return Draft{Step: StepComponents}, nil
		}
		return Draft{}, err
	}

	var d Draft
	if err := json.Unmarshal(raw, &d); err != nil {
		// A corrupt blob is unrecoverable; start over.
		return Draft{Step: StepComponents}, nil
	}
	if d.Step < StepComponents {
		d.Step = StepComponents
	}
	return d, nil
}

// AddComponent puts a catalog product into the draft. Repeats of the same
// product bump its quantity instead of adding a second line.
func (s *Service) AddComponent(ctx context.Context, sessionID string, p domain.Product) (Draft, error) {
	d, err := s.Get(ctx, sessionID)
	if err != nil {
		return Draft{}, err
	}

	found := false
	for i := range d.Components {
		if d.Components[i].ID == p.ID {
			d.Components[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		d.Components = append(d.Components, domain.ProjectComponent{
			ID:         p.ID,
			Name:       p.Name,
			Type:       componentType(p.Category),
			PriceCents: p.PriceCents,
			Image:      p.Image,
			Quantity:   1,
		})
	}
	return s.persist(ctx, sessionID, d)
}

// RemoveComponent drops a component by id. Unknown ids are a no-op.
func (s *Service) RemoveComponent(ctx context.Context, sessionID, componentID string) (Draft, error) {
	d, err := s.Get(ctx, sessionID)
	if err != nil {
		return Draft{}, err
	}

	kept := d.Components[:0]
	for _, c := range d.Components {
		if c.ID != componentID {
			kept = append(kept, c)
		}
	}
	d.Components = kept
	return s.persist(ctx, sessionID, d)
}

// SetComponentQuantity sets an explicit quantity for a component.
func (s *Service) SetComponentQuantity(ctx context.Context, sessionID, componentID string, quantity int) (Draft, error) {
	if quantity < 1 {
		return Draft{}, ErrInvalidQuantity
	}

	d, err := s.Get(ctx, sessionID)
	if err != nil {
		return Draft{}, err
	}
	for i := range d.Components {
		if d.Components[i].ID == componentID {
			d.Components[i].Quantity = quantity
			return s.persist(ctx, sessionID, d)
		}
	}
	return Draft{}, domain.ErrNotFound
}

// SetRequirements records the requirements form. Environment and power
// source come from closed sets; anything else is rejected.
func (s *Service) SetRequirements(ctx context.Context, sessionID string, req domain.ProjectRequirements) (Draft, error) {
	fields := map[string]string{}
	if req.Environment != "" && !domain.ValidEnvironment(req.Environment) {
		fields["environment"] = "Unknown environment"
	}
	if req.PowerSource != "" && !domain.ValidPowerSource(req.PowerSource) {
		fields["powerSource"] = "Unknown power source"
	}
	if len(fields) > 0 {
		return Draft{}, domain.NewValidationError(fields)
	}

	d, err := s.Get(ctx, sessionID)
	if err != nil {
		return Draft{}, err
	}
	d.Requirements = req
	return s.persist(ctx, sessionID, d)
}

// Advance moves the wizard forward, enforcing the per-step gates. Leaving
// the review step runs blueprint generation.
func (s *Service) Advance(ctx context.Context, sessionID string) (Draft, error) {
	d, err := s.Get(ctx, sessionID)
	if err != nil {
		return Draft{}, err
	}

	switch d.Step {
	case StepComponents:
		if len(d.Components) == 0 {
			return Draft{}, ErrNoComponents
		}
		d.Step = StepRequirements
	case StepRequirements:
		if err := requirementsComplete(d.Requirements); err != nil {
			return Draft{}, err
		}
		d.Step = StepReview
	case StepReview:
		d, err = s.generate(ctx, d)
		if err != nil {
			return Draft{}, err
		}
	case StepBlueprint:
		// Final step; nothing to advance to.
	}
	return s.persist(ctx, sessionID, d)
}

// Generate builds the blueprint directly, enforcing the same gates the
// step-wise flow does. Regeneration starts from scratch each time.
func (s *Service) Generate(ctx context.Context, sessionID string) (Draft, error) {
	d, err := s.Get(ctx, sessionID)
	if err != nil {
		return Draft{}, err
	}
	d, err = s.generate(ctx, d)
	if err != nil {
		return Draft{}, err
	}
	return s.persist(ctx, sessionID, d)
}

func (s *Service) generate(ctx context.Context, d Draft) (Draft, error) {
	if len(d.Components) == 0 {
		return Draft{}, ErrNoComponents
	}
	if err := requirementsComplete(d.Requirements); err != nil {
		return Draft{}, err
	}
	if err := s.simulateLatency(ctx); err != nil {
		return Draft{}, err
	}
	bp := generateBlueprint(d.Components, d.Requirements)
	d.Blueprint = &bp
	d.Step = StepBlueprint
	return d, nil
}

// Back steps backward without losing entered values.
func (s *Service) Back(ctx context.Context, sessionID string) (Draft, error) {
	d, err := s.Get(ctx, sessionID)
	if err != nil {
		return Draft{}, err
	}
	if d.Step > StepComponents {
		d.Step--
	}
	return s.persist(ctx, sessionID, d)
}

// Save stores the draft as a project without submitting it.
func (s *Service) Save(ctx context.Context, sessionID, userID string) (domain.CustomProject, error) {
	return s.saveProject(ctx, sessionID, userID, StatusDraft, false)
}

// Submit files the project for expert review and resets the wizard. The
// blueprint must have been generated first.
func (s *Service) Submit(ctx context.Context, sessionID, userID string) (domain.CustomProject, error) {
	return s.saveProject(ctx, sessionID, userID, StatusSubmitted, true)
}

func (s *Service) saveProject(ctx context.Context, sessionID, userID, status string, reset bool) (domain.CustomProject, error) {
	d, err := s.Get(ctx, sessionID)
	if err != nil {
		return domain.CustomProject{}, err
	}
	if len(d.Components) == 0 {
		return domain.CustomProject{}, ErrNoComponents
	}
	if status == StatusSubmitted && d.Blueprint == nil {
		return domain.CustomProject{}, ErrNoBlueprint
	}

	now := time.Now().UTC()
	p, err := s.projects.Create(ctx, domain.CustomProject{
		ID:           uuid.NewString(),
		UserID:       userID,
		Components:   d.Components,
		Requirements: d.Requirements,
		TotalCents:   d.TotalCents,
		Status:       status,
		Blueprint:    d.Blueprint,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return domain.CustomProject{}, err
	}

	if reset {
		if err := s.kv.Delete(ctx, draftKey(sessionID)); err != nil {
			return domain.CustomProject{}, err
		}
	}
	return p, nil
}

// Projects lists the user's saved and submitted projects.
func (s *Service) Projects(ctx context.Context, userID string) ([]domain.CustomProject, error) {
	return s.projects.ByUser(ctx, userID)
}

// Project fetches a single project belonging to the user. Someone else's
// project is indistinguishable from a missing one.
func (s *Service) Project(ctx context.Context, userID, projectID string) (domain.CustomProject, error) {
	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return domain.CustomProject{}, err
	}
	if p.UserID != userID {
		return domain.CustomProject{}, domain.ErrNotFound
	}
	return *p, nil
}

func (s *Service) persist(ctx context.Context, sessionID string, d Draft) (Draft, error) {
	total := int64(0)
	for _, c := range d.Components {
		total += c.PriceCents * int64(c.Quantity)
	}
	d.TotalCents = total

	raw, err := json.Marshal(d)
	if err != nil {
		return Draft{}, err
	}
	if err := s.kv.Set(ctx, draftKey(sessionID), raw, 0); err != nil {
		return Draft{}, err
	}
	return d, nil
}

func (s *Service) simulateLatency(ctx context.Context) error {
	if s.generateDelay <= 0 {
		return nil
	}
	t := time.NewTimer(s.generateDelay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func requirementsComplete(req domain.ProjectRequirements) error {
	fields := map[string]string{}
	if strings.TrimSpace(req.Title) == "" {
		fields["title"] = "Title is required"
	}
	if strings.TrimSpace(req.Objective) == "" {
		fields["objective"] = "Objective is required"
	}
	if len(fields) > 0 {
		return domain.NewValidationError(fields)
	}
	return nil
}

func componentType(category string) domain.ComponentType {
	switch domain.ComponentType(category) {
	case domain.ComponentSensor, domain.ComponentMicrocontroller, domain.ComponentActuator,
		domain.ComponentDisplay, domain.ComponentPower:
		return domain.ComponentType(category)
	}
	return domain.ComponentMisc
}
