package operations

// CleanRequest asks for every archive to be unpacked and its delimited
// members cleaned into <archive-base>_processed.csv in OutputDir.
type CleanRequest struct {
	Archives  []string `json:"archives" validate:"required,min=1,dive,nonblank"`
	OutputDir string   `json:"output_dir" validate:"required,nonblank"`
	// CombineMembers appends every member of an archive into its one output
	// file. When false each member rewrites the output, so the last member wins.
	CombineMembers bool `json:"combine_members"`
	// AppendOutput adds to an existing output file instead of replacing it,
	// so repeated runs accumulate rows. It implies CombineMembers.
	AppendOutput bool `json:"append_output"`
}

// VerifyRequest asks for column totals of every file, written once as a
// summary workbook in OutputDir.
type VerifyRequest struct {
	Files     []string `json:"files" validate:"required,min=1,dive,nonblank"`
	OutputDir string   `json:"output_dir" validate:"required,nonblank"`
}

// ValidateRequest asks for every file matching the lookup workbook to be
// reshaped into processed_<stem>.csv in OutputDir.
type ValidateRequest struct {
	Files      []string `json:"files" validate:"required,min=1,dive,nonblank"`
	LookupPath string   `json:"lookup_path" validate:"required,nonblank"`
	OutputDir  string   `json:"output_dir" validate:"required,nonblank"`
}

// MasterListMode selects the master-list set operation
type MasterListMode string

const (
	// MasterListDifference lists values of the first file absent from the second
	MasterListDifference MasterListMode = "diff"
	// MasterListUnion lists the distinct values of both files
	MasterListUnion MasterListMode = "union"
)

// MasterListRequest compares the first two files. Only the first two are read.
type MasterListRequest struct {
	Files []string       `json:"files" validate:"required,min=2,dive,nonblank"`
	Mode  MasterListMode `json:"mode" validate:"required,oneof=diff union"`
	// WorkDir is where outputs land. Empty means the process working directory.
	WorkDir string `json:"work_dir"`
}
