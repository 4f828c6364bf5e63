package commands

import "github.com/MacroPower/smarttask/pkg/config"

type RootArgs struct {
	cfg              *config.Config
	logLevel         *string
	logFormat        *string
	configFile       *string
	store            *string
	theme            *string
	cpuProfile       *string
	memProfile       *string
	heapProfile      *string
	blockProfile     *string
	mutexProfile     *string
	memProfileRate   *int
	blockProfileRate *int
	mutexProfileRate *int
}

func NewRootArgs() *RootArgs {
	return &RootArgs{
		cfg:              new(config.Config),
		logLevel:         new(string),
		logFormat:        new(string),
		configFile:       new(string),
		store:            new(string),
		theme:            new(string),
		cpuProfile:       new(string),
		memProfile:       new(string),
		heapProfile:      new(string),
		blockProfile:     new(string),
		mutexProfile:     new(string),
		memProfileRate:   new(int),
		blockProfileRate: new(int),
		mutexProfileRate: new(int),
	}
}

// GetConfig returns the settings resolved before the command ran: the
// config file, then the environment, then flags.
func (a *RootArgs) GetConfig() config.Config {
	return *a.cfg
}

func (a *RootArgs) GetLogLevel() string {
	return *a.logLevel
}

func (a *RootArgs) GetLogFormat() string {
	return *a.logFormat
}

func (a *RootArgs) GetConfigFile() string {
	return *a.configFile
}

func (a *RootArgs) GetStore() string {
	return *a.store
}

func (a *RootArgs) GetTheme() string {
	return *a.theme
}

func (a *RootArgs) GetCPUProfile() string {
	return *a.cpuProfile
}

func (a *RootArgs) GetMemProfile() string {
	return *a.memProfile
}

func (a *RootArgs) GetHeapProfile() string {
	return *a.heapProfile
}

func (a *RootArgs) GetBlockProfile() string {
	return *a.blockProfile
}

func (a *RootArgs) GetMutexProfile() string {
	return *a.mutexProfile
}

func (a *RootArgs) GetMemProfileRate() int {
	return *a.memProfileRate
}

func (a *RootArgs) GetBlockProfileRate() int {
	return *a.blockProfileRate
}

func (a *RootArgs) GetMutexProfileRate() int {
	return *a.mutexProfileRate
}
