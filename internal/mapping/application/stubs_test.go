package application

import (
	"context"
	"errors"

	cgmes "cim-mapping/internal/cgmes/domain"
)

// stubCatalog renders "kind|filter" so stubs can answer by key.
type stubCatalog struct{}

func (stubCatalog) Query(kind cgmes.Kind, filter string) (string, error) {
	return string(kind) + "|" + filter, nil
}

func queryKey(kind cgmes.Kind, filter string) string {
	text, _ := stubCatalog{}.Query(kind, filter)
	return text
}

// queueExecutor returns its responses in order and remembers each query.
type queueExecutor struct {
	responses [][]cgmes.Record
	queries   []string
}

func (q *queueExecutor) Query(_ context.Context, text string) ([]cgmes.Record, error) {
	q.queries = append(q.queries, text)
	if len(q.responses) == 0 {
		return nil, nil
	}
	next := q.responses[0]
	q.responses = q.responses[1:]
	return next, nil
}

// modelExecutor answers by query key.
type modelExecutor struct {
	results map[string][]cgmes.Record
	fail    map[string]error
}

func (m *modelExecutor) Query(_ context.Context, text string) ([]cgmes.Record, error) {
	if err, ok := m.fail[text]; ok {
		return nil, err
	}
	return m.results[text], nil
}

var errBackend = errors.New("triple store unavailable")
