package bfrun

import (
	"fmt"
	"log"
	"os"

	"github.com/BurntSushi/toml"
	cp "github.com/jinzhu/copier"

	bf "nickandperla.net/bfrun/brainfuck"
)

// DEFAULT_CELL_COUNT matches the classic 30000-cell tape.
const DEFAULT_CELL_COUNT = 30000

// RunConfig is everything the interpreter needs besides a program and two
// streams. Decoded from the [run] table of the tool config; individual cmds
// clone it and overlay their flags on the clone.
type RunConfig struct {
	Cells                        uint `toml:"cells"`
	CellWidth                    uint `toml:"cell_width"`
	Extensible                   bool `toml:"extensible"`
	MaxInstructionExecutionCount uint `toml:"max_instruction_execution_count"`
}

// ToolConfig is the shared TOML config every cmd decodes.
type ToolConfig struct {
	Run         *RunConfig         `toml:"run"`
	Persistence *PersistenceConfig `toml:"persistence"`
}

func DefaultRunConfig() *RunConfig {
	return &RunConfig{
		Cells:     DEFAULT_CELL_COUNT,
		CellWidth: bf.DEFAULT_CELL_WIDTH,
	}
}

func DefaultPersistenceConfig() *PersistenceConfig {
	return &PersistenceConfig{
		Name: "bfrun.db",
		Path: ".",
	}
}

// LoadToolConfig decodes path. A missing file is not an error: every value
// has a default, so the tools work with no config on disk at all. Partial
// configs are filled in the same way.
func LoadToolConfig(path string) (*ToolConfig, error) {
	config := &ToolConfig{}

	conffile, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			if DEBUG {
				log.Printf("No config at %q, using defaults", path)
			}
			return fillToolConfig(config), nil
		}
		return nil, fmt.Errorf("unable to open config %q: %w", path, err)
	}
	defer conffile.Close()

	if _, err := toml.NewDecoder(conffile).Decode(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config %q: %w", path, err)
	}

	return fillToolConfig(config), nil
}

func fillToolConfig(config *ToolConfig) *ToolConfig {
	if config.Run == nil {
		config.Run = DefaultRunConfig()
	}
	if config.Run.Cells == 0 {
		config.Run.Cells = DEFAULT_CELL_COUNT
	}
	if config.Run.CellWidth == 0 {
		config.Run.CellWidth = bf.DEFAULT_CELL_WIDTH
	}
	if config.Persistence == nil {
		config.Persistence = DefaultPersistenceConfig()
	}
	return config
}

// Validate rejects configs the machine would refuse anyway, so the caller
// gets one message up front instead of a construction error later.
func (rc *RunConfig) Validate() error {
	if rc.Cells == 0 {
		return fmt.Errorf("cells must be at least 1")
	}
	if rc.CellWidth == 0 || rc.CellWidth > bf.MAX_CELL_WIDTH {
		return fmt.Errorf("cell_width [%d] out of bounds [1, %d]", rc.CellWidth, bf.MAX_CELL_WIDTH)
	}
	return nil
}

// Clone deep-copies the config so flag overrides never leak back into the
// decoded ToolConfig.
func (rc *RunConfig) Clone() *RunConfig {
	clone := &RunConfig{}
	cp.Copy(clone, rc)
	return clone
}

func (rc *RunConfig) ToMachineConfig() *bf.MachineConfig {
	return &bf.MachineConfig{
		MaxInstructionExecutionCount: rc.MaxInstructionExecutionCount,
		MemoryConfig: &bf.MemoryConfig{
			CellCount: rc.Cells,
			CellWidth: rc.CellWidth,
			CanExtend: rc.Extensible,
		},
	}
}
