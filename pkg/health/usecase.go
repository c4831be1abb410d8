package health

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Checker represents a dependency health check.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

// Status is the outcome of one checker.
type Status struct {
	Name  string `json:"name"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// ReadinessUseCase describes readiness verification.
type ReadinessUseCase interface {
	// Ready probes every dependency and returns the joined failures.
	Ready(ctx context.Context) ([]Status, error)
}

type service struct {
	checkers []Checker
}

// NewService aggregates dependency checkers. Nil checkers are skipped so
// optional dependencies can be passed unconditionally.
func NewService(checkers ...Checker) ReadinessUseCase {
	s := &service{}
	for _, ch := range checkers {
		if ch != nil {
			s.checkers = append(s.checkers, ch)
		}
	}
	return s
}

func (s *service) Ready(ctx context.Context) ([]Status, error) {
	statuses := make([]Status, len(s.checkers))
	errs := make([]error, len(s.checkers))
	var wg sync.WaitGroup
	for i, ch := range s.checkers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			st := Status{Name: ch.Name(), OK: true}
			if err := ch.Check(ctx); err != nil {
				st.OK, st.Error = false, err.Error()
				errs[i] = fmt.Errorf("%s: %w", ch.Name(), err)
			}
			statuses[i] = st
		}()
	}
	wg.Wait()
	return statuses, errors.Join(errs...)
}
