package domain

// TestCase is one recorded input paired with its expected output
type TestCase struct {
	Name         string // Base name: input file name without the input suffix
	InputPath    string // Path to the input file fed to stdin
	ExpectedPath string // Path to the expected output file
}
