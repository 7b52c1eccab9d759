package app

import (
	"context"

	"maestro_marketplace/internal/matching/domain"
	"maestro_marketplace/internal/matching/repository"
)

// SearchUseCase candidate search over the specialist and task pools.
// Scoring itself lives in MatchCandidates; this layer loads the pool, maps
// it through the engine, and streams the search event.
type SearchUseCase struct {
	specialistRepo repository.SpecialistRepo
	taskRepo       repository.TaskRepo
	analyzer       *Analyzer
	events         repository.EventPublisher
}

// NewSearchUseCase init search use case
func NewSearchUseCase(
	specialistRepo repository.SpecialistRepo,
	taskRepo repository.TaskRepo,
	analyzer *Analyzer,
	events repository.EventPublisher,
) *SearchUseCase {
	return &SearchUseCase{
		specialistRepo: specialistRepo,
		taskRepo:       taskRepo,
		analyzer:       analyzer,
		events:         events,
	}
}

// Analyze enrich a free-text query; never fails
func (uc *SearchUseCase) Analyze(query string) domain.AIAnalysis {
	return uc.analyzer.Analyze(query)
}

// SearchSpecialists rank the specialist pool against the criteria
func (uc *SearchUseCase) SearchSpecialists(ctx context.Context, criteria domain.Criteria) ([]domain.Specialist, error) {
	specialists, err := uc.specialistRepo.FindAll()
	if err != nil {
		return nil, err
	}

	byID := make(map[string]domain.Specialist, len(specialists))
	candidates := make([]domain.Candidate, 0, len(specialists))
	for _, s := range specialists {
		byID[s.ID] = s
		candidates = append(candidates, s.Candidate())
	}

	ranked := MatchCandidates(candidates, criteria)
	out := make([]domain.Specialist, 0, len(ranked))
	for _, c := range ranked {
		out = append(out, byID[c.ID])
	}

	if uc.events != nil {
		uc.events.Publish(ctx, "specialist_search", map[string]interface{}{
			"criteria": criteria,
			"results":  len(out),
		})
	}
	return out, nil
}

// SearchTasks rank open tasks against the criteria; used by specialists
// browsing for work
func (uc *SearchUseCase) SearchTasks(ctx context.Context, criteria domain.Criteria) ([]domain.Task, error) {
	tasks, err := uc.taskRepo.FindOpen()
	if err != nil {
		return nil, err
	}

	byID := make(map[string]domain.Task, len(tasks))
	candidates := make([]domain.Candidate, 0, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
		candidates = append(candidates, t.Candidate())
	}

	ranked := MatchCandidates(candidates, criteria)
	out := make([]domain.Task, 0, len(ranked))
	for _, c := range ranked {
		out = append(out, byID[c.ID])
	}

	if uc.events != nil {
		uc.events.Publish(ctx, "task_search", map[string]interface{}{
			"criteria": criteria,
			"results":  len(out),
		})
	}
	return out, nil
}
