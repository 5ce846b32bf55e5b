package domain

// TestFailure is the persisted record of a test that did not pass
type TestFailure struct {
	TestName     string `json:"test_name"`
	Status       Status `json:"status"`
	Message      string `json:"message"`
	Diff         string `json:"diff,omitempty"`
	InputPath    string `json:"input_path"`
	ExpectedPath string `json:"expected_path"`
	OutputPath   string `json:"output_path,omitempty"`
	Added        int    `json:"added"`
	Removed      int    `json:"removed"`
	Resolved     bool   `json:"resolved,omitempty"` // Track if failure is marked as resolved
}
