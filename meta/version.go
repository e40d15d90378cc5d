package meta

const (
	// CLIAPIVersion is bumped whenever the result JSON or the command
	// surface changes in an incompatible way.
	CLIAPIVersion    = 1
	CLIAPIMinVersion = 1
)

// Following variables are filled in by the build
var (
	Version   string
	GitCommit string
	BuildDate string
)

type VersionOutput struct {
	Version   string
	GitCommit string
	BuildDate string

	CLIAPIVersion    int
	CLIAPIMinVersion int
}

func GetVersion() *VersionOutput {
	return &VersionOutput{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,

		CLIAPIVersion:    CLIAPIVersion,
		CLIAPIMinVersion: CLIAPIMinVersion,
	}
}
