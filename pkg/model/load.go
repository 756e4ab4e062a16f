package model

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Parse decodes a YAML project document and constructs a validated Project
func Parse(data []byte) (*Project, error) {
	var raw Project
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse project: %w", err)
	}
	return NewProject(raw)
}

// Load reads and constructs a validated Project from a YAML file
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read project file: %w", err)
	}
	return Parse(data)
}

// Write encodes the project as YAML to the given writer
func (p *Project) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("encode project: %w", err)
	}
	return enc.Close()
}

// Save writes the project to a YAML file
func (p *Project) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create project file: %w", err)
	}
	defer f.Close()
	return p.Write(f)
}
