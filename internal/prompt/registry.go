// Package prompt holds the fixed registry of instruction templates, one per
// use case. The registry is built once at process start and read-only after.
package prompt

import (
	"fmt"
	"strings"

	"github.com/clearpath-legal/sponsorag/internal/domain"
)

const (
	// ContextPlaceholder marks where retrieved document text is inserted.
	ContextPlaceholder = "{retrieved_chunks}"
	// QueryPlaceholder marks where the user's request is inserted.
	QueryPlaceholder = "{user_query}"

	// EmptyContextNotice replaces the context placeholder when retrieval
	// returned nothing, so the model is told rather than left to assume a
	// complete context.
	EmptyContextNotice = "No matching content was found in the knowledge base for this request."
)

// Template pairs a use case with its instruction body. The body contains each
// placeholder exactly once; Registry construction enforces this.
type Template struct {
	UseCase     domain.UseCase
	Description string
	Body        string
}

// Fill substitutes both placeholders in a single pass, so substituted content
// is never rescanned and user-supplied text cannot re-trigger substitution.
func (t Template) Fill(context, userQuery string) string {
	if strings.TrimSpace(context) == "" {
		context = EmptyContextNotice
	}
	r := strings.NewReplacer(
		ContextPlaceholder, context,
		QueryPlaceholder, userQuery,
	)
	return r.Replace(t.Body)
}

// Registry maps the closed set of use cases to their templates.
type Registry struct {
	templates map[domain.UseCase]Template
	order     []domain.UseCase
}

// NewRegistry builds the registry from the built-in templates, validating
// every body at construction time.
func NewRegistry() (*Registry, error) {
	return newRegistry(builtinTemplates())
}

// MustNewRegistry is NewRegistry for process start, where a malformed
// built-in template is a programming error.
func MustNewRegistry() *Registry {
	r, err := NewRegistry()
	if err != nil {
		panic(err)
	}
	return r
}

func newRegistry(templates []Template) (*Registry, error) {
	r := &Registry{templates: make(map[domain.UseCase]Template, len(templates))}
	for _, t := range templates {
		if !domain.IsValidUseCase(t.UseCase) {
			return nil, fmt.Errorf("template %q: not a known use case", t.UseCase)
		}
		if err := validateBody(t.Body); err != nil {
			return nil, fmt.Errorf("template %q: %w", t.UseCase, err)
		}
		if _, dup := r.templates[t.UseCase]; dup {
			return nil, fmt.Errorf("template %q: registered twice", t.UseCase)
		}
		r.templates[t.UseCase] = t
		r.order = append(r.order, t.UseCase)
	}
	return r, nil
}

func validateBody(body string) error {
	for _, placeholder := range []string{ContextPlaceholder, QueryPlaceholder} {
		switch n := strings.Count(body, placeholder); n {
		case 1:
		case 0:
			return fmt.Errorf("missing placeholder %s", placeholder)
		default:
			return fmt.Errorf("placeholder %s appears %d times, want exactly 1", placeholder, n)
		}
	}
	return nil
}

// Get resolves the template for a use case. Unknown keys fail; there is no
// silent fallback to a default template.
func (r *Registry) Get(useCase domain.UseCase) (Template, error) {
	t, ok := r.templates[useCase]
	if !ok {
		return Template{}, domain.NewDomainErrorWithCause(
			domain.ErrCodeUnknownUseCase,
			fmt.Sprintf("unknown use case: %s", useCase),
			domain.ErrUnknownUseCase,
		)
	}
	return t, nil
}

// List returns the registered templates in registration order.
func (r *Registry) List() []Template {
	out := make([]Template, 0, len(r.order))
	for _, u := range r.order {
		out = append(out, r.templates[u])
	}
	return out
}
