package plan

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/winapps-org/winapps-setup/internal/messages"
)

//go:embed plans.yaml
var plansYAML []byte

var (
	// ErrInvalidTable wraps every plan table validation failure.
	ErrInvalidTable = errors.New(messages.PlanInvalidTable)
	// ErrUnknownDependency is returned for dependency names outside Dependencies.
	ErrUnknownDependency = errors.New(messages.PlanUnknownDependency)
)

// Dependency names a single dependency that can be installed on its own.
type Dependency string

// Installable dependencies.
const (
	PrivilegeBroker Dependency = "privilege-broker"
	RDPClient       Dependency = "rdp-client"
)

// Dependencies lists every dependency each table entry must provide.
var Dependencies = []Dependency{PrivilegeBroker, RDPClient}

// Entry is the hand-maintained install recipe for one family.
type Entry struct {
	Manager      string                `yaml:"manager"`
	Backports    bool                  `yaml:"backports"`
	Refresh      []string              `yaml:"refresh"`
	Install      string                `yaml:"install"`
	Packages     []string              `yaml:"packages"`
	Dependencies map[Dependency]string `yaml:"dependencies"`
}

// Table maps each family to its recipe.
type Table map[Family]Entry

var defaultTable = sync.OnceValues(func() (Table, error) {
	return LoadTable(plansYAML)
})

// DefaultTable returns the embedded table, parsed and validated once.
func DefaultTable() (Table, error) {
	return defaultTable()
}

// LoadTable decodes a YAML table and validates it against Families.
func LoadTable(data []byte) (Table, error) {
	var table Table
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&table); err != nil {
		return nil, fmt.Errorf(messages.PlanDecodeTableFmt, ErrInvalidTable, err)
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}

// Validate checks that every supported family has a complete entry and that
// no unknown family or dependency is listed.
func (t Table) Validate() error {
	for family := range t {
		if !family.Supported() {
			return fmt.Errorf(messages.PlanUnknownFamilyFmt, ErrInvalidTable, string(family))
		}
	}
	for _, family := range Families {
		entry, ok := t[family]
		if !ok {
			return fmt.Errorf(messages.PlanMissingFamilyFmt, ErrInvalidTable, family)
		}
		if entry.Install == "" {
			return fmt.Errorf(messages.PlanMissingInstallFmt, ErrInvalidTable, family)
		}
		if len(entry.Packages) == 0 {
			return fmt.Errorf(messages.PlanMissingPackagesFmt, ErrInvalidTable, family)
		}
		for dep := range entry.Dependencies {
			if !dep.known() {
				return fmt.Errorf(messages.PlanUnknownDependencyFmt, ErrInvalidTable, family, string(dep))
			}
		}
		for _, dep := range Dependencies {
			if entry.Dependencies[dep] == "" {
				return fmt.Errorf(messages.PlanMissingDependencyFmt, ErrInvalidTable, family, dep)
			}
		}
	}
	return nil
}

func (d Dependency) known() bool {
	for _, candidate := range Dependencies {
		if d == candidate {
			return true
		}
	}
	return false
}

// ParseDependency maps a CLI name to a Dependency.
func ParseDependency(name string) (Dependency, bool) {
	dep := Dependency(name)
	return dep, dep.known()
}
