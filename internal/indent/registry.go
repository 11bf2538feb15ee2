package indent

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// Errors returned by the registry.
var (
	// ErrPolicyExists indicates a policy name is already registered.
	ErrPolicyExists = errors.New("indent policy already registered")

	// ErrPolicyNotFound indicates no policy has the requested name.
	ErrPolicyNotFound = errors.New("indent policy not found")
)

// rule maps file names matching a glob to a policy.
type rule struct {
	pattern string
	match   glob.Glob
	policy  string
}

// Registry holds the indent policies available to an editor, and the
// rules that select one for a file. Registries are constructed explicitly
// and injected; there is no global registry.
type Registry struct {
	policies map[string]Policy
	aliases  map[string]string
	rules    []rule
}

// NewRegistry creates a registry holding only the normal policy.
func NewRegistry() *Registry {
	r := &Registry{
		policies: make(map[string]Policy),
		aliases:  make(map[string]string),
	}
	r.policies[PolicyNormal] = NormalPolicy{}
	return r
}

// NewDefaultRegistry creates a registry with the built-in policies and
// language aliases.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	_ = r.Register(BracketsPolicy{})
	_ = r.Register(PythonPolicy{})

	for _, lang := range []string{"c", "c++", "go", "java", "javascript", "typescript", "rust", "css", "json", "php", "c#", "swift", "kotlin"} {
		r.aliases[lang] = PolicyBrackets
	}
	r.aliases["python"] = PolicyPython
	r.aliases["python 2"] = PolicyPython
	return r
}

// Register adds a policy under its name.
func (r *Registry) Register(p Policy) error {
	name := strings.ToLower(p.Name())
	if _, ok := r.policies[name]; ok {
		return fmt.Errorf("%w: %s", ErrPolicyExists, name)
	}
	r.policies[name] = p
	return nil
}

// Replace adds or overwrites a policy.
func (r *Registry) Replace(p Policy) {
	r.policies[strings.ToLower(p.Name())] = p
}

// Alias makes a language name select a policy.
func (r *Registry) Alias(language, policy string) error {
	policy = strings.ToLower(policy)
	if _, ok := r.policies[policy]; !ok {
		return fmt.Errorf("%w: %s", ErrPolicyNotFound, policy)
	}
	r.aliases[strings.ToLower(language)] = policy
	return nil
}

// Get returns the policy with the given name.
func (r *Registry) Get(name string) (Policy, bool) {
	p, ok := r.policies[strings.ToLower(name)]
	return p, ok
}

// ForLanguage returns the policy for a language: a policy of that name,
// else an aliased policy, else the normal policy.
func (r *Registry) ForLanguage(language string) Policy {
	key := strings.ToLower(language)
	if p, ok := r.policies[key]; ok {
		return p
	}
	if name, ok := r.aliases[key]; ok {
		if p, ok := r.policies[name]; ok {
			return p
		}
	}
	return r.policies[PolicyNormal]
}

// AddRule selects policy for files whose base name matches pattern.
// Rules are consulted in the order they were added.
func (r *Registry) AddRule(pattern, policy string) error {
	policy = strings.ToLower(policy)
	if _, ok := r.policies[policy]; !ok {
		return fmt.Errorf("%w: %s", ErrPolicyNotFound, policy)
	}
	g, err := glob.Compile(pattern)
	if err != nil {
		return fmt.Errorf("indent rule %q: %w", pattern, err)
	}
	r.rules = append(r.rules, rule{pattern: pattern, match: g, policy: policy})
	return nil
}

// ForFile returns the policy selected by the first rule matching the
// file's base name.
func (r *Registry) ForFile(filename string) (Policy, bool) {
	base := filepath.Base(filename)
	for _, rl := range r.rules {
		if rl.match.Match(base) {
			return r.policies[rl.policy], true
		}
	}
	return nil, false
}

// Names returns the registered policy names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.policies))
	for name := range r.policies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
