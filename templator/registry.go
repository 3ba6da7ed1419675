package templator

import (
	stderrors "errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kbukum/chatseg/errors"
)

// Registry resolves family names to template configs. It holds the
// built-in families plus any loaded from YAML, and is read-only after
// construction, so one Registry can be shared freely.
type Registry struct {
	configs map[string]TemplateConfig
}

// familyFile is the YAML document accepted by LoadRegistry.
//
//	families:
//	  - name: vicuna
//	    system_template: "{prompt}"
//	    user_template: "USER: {prompt}"
//	    assistant_template: "ASSISTANT: {prompt}</s>"
//	    assistant_template_left: "ASSISTANT: "
//	    assistant_template_right: "</s>"
//	    splitter: "\n"
//	    supports_multi_round: true
type familyFile struct {
	Families []TemplateConfig `yaml:"families"`
}

// DefaultRegistry returns a registry holding only the built-in families.
func DefaultRegistry() *Registry {
	r := &Registry{configs: make(map[string]TemplateConfig, len(familyAliases))}
	for alias, f := range familyAliases {
		r.configs[alias] = f.Config()
	}
	return r
}

// LoadRegistry reads custom family definitions from YAML and returns a
// registry holding them alongside the built-ins. Each definition is
// validated; names may not repeat or shadow a built-in.
func LoadRegistry(src io.Reader) (*Registry, error) {
	dec := yaml.NewDecoder(src)
	dec.KnownFields(true)

	var file familyFile
	if err := dec.Decode(&file); err != nil && !stderrors.Is(err, io.EOF) {
		return nil, errors.InvalidTemplate("", "cannot parse family definitions").WithCause(err)
	}

	r := DefaultRegistry()
	for i, cfg := range file.Families {
		key := strings.ToLower(strings.TrimSpace(cfg.Name))
		if key == "" {
			return nil, errors.InvalidTemplate(fmt.Sprintf("families[%d]", i), "name: is required")
		}
		if _, exists := r.configs[key]; exists {
			return nil, errors.InvalidTemplate(cfg.Name, "a family with this name is already defined")
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		r.configs[key] = cfg
	}
	return r, nil
}

// Lookup returns a copy of the config registered under name.
func (r *Registry) Lookup(name string) (TemplateConfig, error) {
	cfg, ok := r.configs[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return TemplateConfig{}, errors.NotFound("family", name)
	}
	return cfg, nil
}

// Names returns every registered name, aliases included, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.configs))
	for name := range r.configs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
