package segue

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

var (
	// ErrEmptyRegistry is returned when a registry is built with no sections.
	ErrEmptyRegistry = errors.New("segue: registry has no sections")
	// ErrDuplicateSection is returned when two sections share an ID.
	ErrDuplicateSection = errors.New("segue: duplicate section id")
	// ErrIndexMismatch is returned when a section's configured index does not
	// match its position in the list.
	ErrIndexMismatch = errors.New("segue: section index does not match position")
	// ErrMissingID is returned when a section has an empty ID.
	ErrMissingID = errors.New("segue: section id is empty")
)

// Section is one discrete, indexed unit of content or viewpoint. Sections
// are created once from static configuration and never mutated.
type Section struct {
	ID    string `yaml:"id"`
	Index int    `yaml:"index"`
	Label string `yaml:"label"`
	// Pose is the camera viewpoint for this section. Nil for sections that
	// only drive a page transition.
	Pose *Pose `yaml:"pose,omitempty"`
}

// HasPose reports whether the section carries a camera pose.
func (s Section) HasPose() bool {
	return s.Pose != nil
}

// clone returns a copy of s that does not share its Pose.
func (s Section) clone() Section {
	if s.Pose != nil {
		p := *s.Pose
		s.Pose = &p
	}
	return s
}

// Registry is the ordered, read-only list of sections for a session.
type Registry struct {
	sections []Section
	byID     map[string]int
}

// NewRegistry validates sections and returns a Registry holding a copy of
// them. Indices may be left at zero on every entry, in which case they are
// assigned from position; otherwise each index must equal its position.
func NewRegistry(sections []Section) (*Registry, error) {
	if len(sections) == 0 {
		return nil, ErrEmptyRegistry
	}
	assign := true
	for _, s := range sections {
		if s.Index != 0 {
			assign = false
			break
		}
	}

	r := &Registry{
		sections: make([]Section, len(sections)),
		byID:     make(map[string]int, len(sections)),
	}
	for i, s := range sections {
		if s.ID == "" {
			return nil, fmt.Errorf("section %d: %w", i, ErrMissingID)
		}
		if _, dup := r.byID[s.ID]; dup {
			return nil, fmt.Errorf("section %q: %w", s.ID, ErrDuplicateSection)
		}
		if assign {
			s.Index = i
		} else if s.Index != i {
			return nil, fmt.Errorf("section %q has index %d at position %d: %w", s.ID, s.Index, i, ErrIndexMismatch)
		}
		r.sections[i] = s.clone()
		r.byID[s.ID] = i
	}
	return r, nil
}

// registryFile is the YAML layout accepted by LoadRegistry.
type registryFile struct {
	Sections []Section `yaml:"sections"`
}

// LoadRegistry parses a YAML document of the form
//
//	sections:
//	  - id: intro
//	    label: Intro
//	    pose: {position: {x: 0, y: 2, z: 10}, lookAt: {x: 0, y: 0, z: 0}}
//
// and returns the validated Registry.
func LoadRegistry(data []byte) (*Registry, error) {
	var f registryFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse registry: %w", err)
	}
	r, err := NewRegistry(f.Sections)
	if err != nil {
		return nil, fmt.Errorf("parse registry: %w", err)
	}
	return r, nil
}

// Get returns the section at index. ok is false when index is out of range.
func (r *Registry) Get(index int) (Section, bool) {
	if index < 0 || index >= len(r.sections) {
		return Section{}, false
	}
	return r.sections[index].clone(), true
}

// Lookup returns the section with the given ID.
func (r *Registry) Lookup(id string) (Section, bool) {
	i, ok := r.byID[id]
	if !ok {
		return Section{}, false
	}
	return r.sections[i].clone(), true
}

// Len returns the number of sections.
func (r *Registry) Len() int {
	return len(r.sections)
}

// Clamp restricts index to [0, Len()-1].
func (r *Registry) Clamp(index int) int {
	return clampIndex(index, len(r.sections))
}

// Sections returns a copy of the section list.
func (r *Registry) Sections() []Section {
	out := make([]Section, len(r.sections))
	for i, s := range r.sections {
		out[i] = s.clone()
	}
	return out
}
