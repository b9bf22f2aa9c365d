package model

import "fmt"

// DependencyReference is a source path recorded at instrumentation time
// together with the file that declared it.
type DependencyReference struct {
	MainFile     Path `yaml:"main_file"`
	Reference    Path `yaml:"reference"`
	RelativeHint bool `yaml:"relative_hint,omitempty"`
	Lines        int  `yaml:"lines,omitempty"` // distinct marker lines pointing at the reference
}

// Strategy names the lookup step that produced a resolution.
type Strategy int

const (
	// StrategyUnresolved means no existing file was found; the path is a best-effort placeholder.
	StrategyUnresolved Strategy = iota
	// StrategyDirect means the reference existed as recorded.
	StrategyDirect
	// StrategyMainDir means the reference was found next to the main file.
	StrategyMainDir
	// StrategyHierarchy means the reference was matched through a shared directory suffix.
	StrategyHierarchy
	// StrategySearchPath means the reference was found under one of the search paths.
	StrategySearchPath
)

var strategyNames = map[Strategy]string{
	StrategyUnresolved: "unresolved",
	StrategyDirect:     "direct",
	StrategyMainDir:    "main-dir",
	StrategyHierarchy:  "hierarchy",
	StrategySearchPath: "search-path",
}

// String returns the report label for the strategy.
func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}

	return fmt.Sprintf("strategy(%d)", int(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s Strategy) MarshalText() ([]byte, error) {
	if _, ok := strategyNames[s]; !ok {
		return nil, fmt.Errorf("unknown strategy %d", int(s))
	}

	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Strategy) UnmarshalText(text []byte) error {
	for strategy, name := range strategyNames {
		if name == string(text) {
			*s = strategy
			return nil
		}
	}

	return fmt.Errorf("unknown strategy %q", string(text))
}

// Resolution is the outcome of resolving one DependencyReference.
// Exists is false for an unresolved reference, in which case Path is the
// canonical form of the reference as recorded.
type Resolution struct {
	Reference DependencyReference `yaml:"dependency"`
	Path      Path                `yaml:"path"`
	Exists    bool                `yaml:"exists"`
	Strategy  Strategy            `yaml:"strategy"`
}
