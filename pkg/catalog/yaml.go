package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// yamlCatalog is the on-disk catalog file format:
//
//	tables:
//	  - database: prod
//	    schema: public
//	    name: users
//	    columns: [id, name, email]
type yamlCatalog struct {
	Tables []yamlTable `yaml:"tables"`
}

type yamlTable struct {
	Database string   `yaml:"database"`
	Schema   string   `yaml:"schema"`
	Name     string   `yaml:"name"`
	Columns  []string `yaml:"columns"`
}

// LoadYAMLFile reads a catalog YAML file into a new symbol table.
func LoadYAMLFile(path string) (*SymbolTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	st, err := ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}
	return st, nil
}

// ParseYAML parses catalog YAML into a new symbol table.
func ParseYAML(data []byte) (*SymbolTable, error) {
	var c yamlCatalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("invalid catalog YAML: %w", err)
	}

	st := NewSymbolTable()
	for i, t := range c.Tables {
		if t.Name == "" {
			return nil, fmt.Errorf("catalog table %d: missing name", i)
		}
		st.Add(TableIdentity{Database: t.Database, Schema: t.Schema, Table: t.Name}, t.Columns)
	}
	return st, nil
}
