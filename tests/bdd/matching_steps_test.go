package bdd

import (
	"context"
	"fmt"
	"strings"

	matchapp "maestro_marketplace/internal/matching/app"
	matchdomain "maestro_marketplace/internal/matching/domain"

	"github.com/cucumber/godog"
)

type matchingState struct {
	pool    []matchdomain.Candidate
	results []matchdomain.Candidate
}

func (st *matchingState) reset() {
	st.pool = nil
	st.results = nil
}

func (st *matchingState) search(criteria matchdomain.Criteria) {
	st.results = matchapp.MatchCandidates(st.pool, criteria)
}

func (st *matchingState) resultIDs() string {
	ids := make([]string, 0, len(st.results))
	for _, c := range st.results {
		ids = append(ids, c.ID)
	}
	return strings.Join(ids, ",")
}

func registerMatchingSteps(s *godog.ScenarioContext) {
	st := &matchingState{}
	s.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		st.reset()
		return ctx, nil
	})

	s.Step(`^a specialist "([^"]*)" named "([^"]*)" in category "([^"]*)" located in "([^"]*)" rated ([\d.]+) with (\d+) reviews$`,
		func(id, name, category, location string, rating float64, reviews int) error {
			st.pool = append(st.pool, matchdomain.Candidate{
				ID:           id,
				Name:         name,
				Category:     matchdomain.ServiceCategory(category),
				Location:     location,
				Rating:       rating,
				ReviewsCount: reviews,
			})
			return nil
		})

	s.Step(`^specialist "([^"]*)" is verified$`, func(id string) error {
		for i := range st.pool {
			if st.pool[i].ID == id {
				st.pool[i].Verified = true
				return nil
			}
		}
		return fmt.Errorf("unknown specialist %q", id)
	})

	s.Step(`^I search for category "([^"]*)"$`, func(category string) error {
		st.search(matchdomain.Criteria{Category: matchdomain.ServiceCategory(category)})
		return nil
	})

	s.Step(`^I search for category "([^"]*)" in "([^"]*)"$`, func(category, location string) error {
		st.search(matchdomain.Criteria{
			Category: matchdomain.ServiceCategory(category),
			Location: location,
		})
		return nil
	})

	s.Step(`^I search for keyword "([^"]*)"$`, func(keyword string) error {
		st.search(matchdomain.Criteria{Keyword: keyword})
		return nil
	})

	s.Step(`^I search for category "([^"]*)" with keyword "([^"]*)"$`, func(category, keyword string) error {
		st.search(matchdomain.Criteria{
			Category: matchdomain.ServiceCategory(category),
			Keyword:  keyword,
		})
		return nil
	})

	s.Step(`^the results should be "([^"]*)"$`, func(expected string) error {
		if got := st.resultIDs(); got != expected {
			return fmt.Errorf("results %q, expected %q", got, expected)
		}
		return nil
	})

	s.Step(`^the results should be empty$`, func() error {
		if len(st.results) != 0 {
			return fmt.Errorf("expected no results, got %q", st.resultIDs())
		}
		return nil
	})

	s.Step(`^result (\d+) should be "([^"]*)"$`, func(pos int, id string) error {
		if pos < 1 || pos > len(st.results) {
			return fmt.Errorf("no result at position %d, have %d", pos, len(st.results))
		}
		if got := st.results[pos-1].ID; got != id {
			return fmt.Errorf("result %d is %q, expected %q", pos, got, id)
		}
		return nil
	})
}
