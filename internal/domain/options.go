package domain

// CommonOptions contains shared run options for orchestration.
type CommonOptions struct {
	Verbose bool
	DryRun  bool
}

// DefaultCommonOptions returns CommonOptions with default values.
func DefaultCommonOptions() CommonOptions {
	return CommonOptions{}
}
