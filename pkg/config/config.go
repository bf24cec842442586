package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Server declares a simulated server model.
type Server struct {
	// Name is the server (IED) name.
	Name string `yaml:"name"`

	// LogicalDevices declares the functional partitions.
	LogicalDevices []LogicalDevice `yaml:"logicalDevices"`
}

// LogicalDevice declares a logical device and its nodes.
type LogicalDevice struct {
	Name         string        `yaml:"name"`
	LogicalNodes []LogicalNode `yaml:"logicalNodes"`
}

// LogicalNode declares a logical node with its data, datasets, and
// report control blocks.
type LogicalNode struct {
	Name        string       `yaml:"name"`
	DataObjects []DataObject `yaml:"dataObjects"`
	Datasets    []Dataset    `yaml:"datasets,omitempty"`
	Reports     []Report     `yaml:"reports,omitempty"`
}

// DataObject declares a data object and its attributes.
type DataObject struct {
	Name       string      `yaml:"name"`
	Attributes []Attribute `yaml:"attributes"`
}

// Attribute declares a data attribute with its initial value.
// The name may be dotted (phsA.cVal.mag.f) and is one attribute.
type Attribute struct {
	Name  string `yaml:"name"`
	Value any    `yaml:"value"`
}

// Dataset declares a dataset on its logical node. Members are
// node-relative references of the form DataObject.DataAttribute.
type Dataset struct {
	Name    string   `yaml:"name"`
	Members []string `yaml:"members"`
}

// Report declares a report control block bound to a dataset of the same
// logical node.
type Report struct {
	Name     string `yaml:"name"`
	Dataset  string `yaml:"dataset"`
	ReportID string `yaml:"reportId"`
}

// Parse parses a model declaration from YAML bytes.
func Parse(data []byte) (*Server, error) {
	var cfg Server
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse model YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load loads a model declaration from a file.
func Load(path string) (*Server, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model file %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks structural requirements the builder relies on.
// Name collisions and dangling references surface during Build.
func (s *Server) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("server name is required")
	}
	for _, ld := range s.LogicalDevices {
		if ld.Name == "" {
			return fmt.Errorf("logical device name is required")
		}
		for _, ln := range ld.LogicalNodes {
			if ln.Name == "" {
				return fmt.Errorf("logical node name is required in %s", ld.Name)
			}
			for _, ds := range ln.Datasets {
				for _, member := range ds.Members {
					if !strings.Contains(member, ".") {
						return fmt.Errorf("dataset %s/%s.%s: member %q must be DataObject.DataAttribute",
							ld.Name, ln.Name, ds.Name, member)
					}
				}
			}
			for _, rpt := range ln.Reports {
				if rpt.ReportID == "" {
					return fmt.Errorf("report %s/%s.%s: reportId is required", ld.Name, ln.Name, rpt.Name)
				}
			}
		}
	}
	return nil
}
