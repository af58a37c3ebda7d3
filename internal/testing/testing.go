// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/atredan/sheetgram/internal/models"
)

// RecordedUpdate captures one UpdateRow call made against [MockSheetClient].
type RecordedUpdate struct {
	Range  string
	Values []string
}

// MockSheetClient is a test double for [services.SheetClient]
type MockSheetClient struct {
	Rows      []models.Row
	ReadErr   error
	UpdateErr error
	// UpdateErrFor fails updates only for the given ranges
	UpdateErrFor map[string]error
	TitleValue   string
	TitleErr     error

	ReadCalls int
	Updates   []RecordedUpdate
}

func (m *MockSheetClient) ReadRows(ctx context.Context, readRange string) ([]models.Row, error) {
	m.ReadCalls++
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	return m.Rows, nil
}

func (m *MockSheetClient) UpdateRow(ctx context.Context, writeRange string, values []string) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	if err, ok := m.UpdateErrFor[writeRange]; ok {
		return err
	}
	m.Updates = append(m.Updates, RecordedUpdate{Range: writeRange, Values: values})
	return nil
}

func (m *MockSheetClient) Title(ctx context.Context) (string, error) {
	if m.TitleErr != nil {
		return "", m.TitleErr
	}
	return m.TitleValue, nil
}

// MockFetcher is a test double for [services.ProfileFetcher]
type MockFetcher struct {
	// Output maps usernames to raw lookup text
	Output map[string]string
	// ErrFor fails lookups only for the given usernames
	ErrFor map[string]error
	Err    error

	Calls []string
}

func (m *MockFetcher) Fetch(ctx context.Context, username, session string) (string, error) {
	m.Calls = append(m.Calls, username)
	if m.Err != nil {
		return "", m.Err
	}
	if err, ok := m.ErrFor[username]; ok {
		return "", err
	}
	if out, ok := m.Output[username]; ok {
		return out, nil
	}
	return "", fmt.Errorf("no mock output for %s", username)
}

func (m *MockFetcher) Name() string { return "mock" }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}
