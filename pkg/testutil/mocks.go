package testutil

import (
	"context"
	"slices"

	"github.com/arthur-debert/pacdec/pkg/errors"
)

// MockManager plays the package manager. Install and Uninstall update the
// query lists so a later diff sees the change.
type MockManager struct {
	Explicit  []string
	Installed []string
	Available []string

	// QueryErr is returned by every query when set.
	QueryErr error
	// MutateErr is returned by Install and Uninstall when set.
	MutateErr error

	Installs   [][]string
	Uninstalls [][]string
}

func (m *MockManager) QueryExplicit(context.Context) ([]string, error) {
	return slices.Clone(m.Explicit), m.QueryErr
}

func (m *MockManager) QueryInstalled(context.Context) ([]string, error) {
	return slices.Clone(m.Installed), m.QueryErr
}

func (m *MockManager) QueryAvailable(context.Context) ([]string, error) {
	return slices.Clone(m.Available), m.QueryErr
}

func (m *MockManager) Install(_ context.Context, names []string) error {
	m.Installs = append(m.Installs, slices.Clone(names))
	if m.MutateErr != nil {
		return m.MutateErr
	}
	for _, n := range names {
		if !slices.Contains(m.Explicit, n) {
			m.Explicit = append(m.Explicit, n)
		}
		if !slices.Contains(m.Installed, n) {
			m.Installed = append(m.Installed, n)
		}
	}
	return nil
}

func (m *MockManager) Uninstall(_ context.Context, names []string) error {
	m.Uninstalls = append(m.Uninstalls, slices.Clone(names))
	if m.MutateErr != nil {
		return m.MutateErr
	}
	drop := func(list []string) []string {
		return slices.DeleteFunc(list, func(s string) bool { return slices.Contains(names, s) })
	}
	m.Explicit = drop(m.Explicit)
	m.Installed = drop(m.Installed)
	return nil
}

func (m *MockManager) PreviewCommand(installed bool) string {
	if installed {
		return "mock -Qi {}"
	}
	return "mock -Sii {}"
}

// MockPicker returns scripted choices and records what it was offered.
type MockPicker struct {
	// Many is returned by PickMany, One by PickOne.
	Many []string
	One  string
	// Err is returned by both when set.
	Err error

	Prompts    []string
	Candidates [][]string
	Previews   []string
}

func (p *MockPicker) PickMany(_ context.Context, prompt string, candidates []string, preview string) ([]string, error) {
	p.record(prompt, candidates)
	p.Previews = append(p.Previews, preview)
	if p.Err != nil {
		return nil, p.Err
	}
	return slices.Clone(p.Many), nil
}

func (p *MockPicker) PickOne(_ context.Context, prompt string, candidates []string) (string, error) {
	p.record(prompt, candidates)
	if p.Err != nil {
		return "", p.Err
	}
	if p.One == "" {
		return "", errors.New(errors.ErrUserCancelled, "nothing selected")
	}
	return p.One, nil
}

func (p *MockPicker) record(prompt string, candidates []string) {
	p.Prompts = append(p.Prompts, prompt)
	p.Candidates = append(p.Candidates, slices.Clone(candidates))
}

// MockConfirmer answers from Answers in order, then with Default.
type MockConfirmer struct {
	Answers []bool
	Default bool
	Err     error

	Questions []string
}

func (c *MockConfirmer) Confirm(question string, _ bool) (bool, error) {
	c.Questions = append(c.Questions, question)
	if c.Err != nil {
		return false, c.Err
	}
	if len(c.Answers) == 0 {
		return c.Default, nil
	}
	answer := c.Answers[0]
	c.Answers = c.Answers[1:]
	return answer, nil
}
