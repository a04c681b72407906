package scoring

// Dimension identifies one of the five weighted evaluation axes.
type Dimension string

const (
	DimTesting       Dimension = "testing"
	DimArchitecture  Dimension = "architecture"
	DimGitHygiene    Dimension = "git_hygiene"
	DimDocumentation Dimension = "documentation"
	DimMetadata      Dimension = "metadata"
)

// dimensionOrder is the fixed output order of dimension results and the
// roadmap tie-break priority: testing fundamentals outrank everything else.
var dimensionOrder = [...]Dimension{
	DimTesting,
	DimArchitecture,
	DimGitHygiene,
	DimDocumentation,
	DimMetadata,
}

var dimensionLabels = map[Dimension]string{
	DimTesting:       "Testing & Quality",
	DimArchitecture:  "Architecture",
	DimGitHygiene:    "Git Hygiene",
	DimDocumentation: "Documentation",
	DimMetadata:      "Metadata",
}

// Signal is a single checkable fact contributing a fixed point value to its
// dimension. Remediation is the exact text surfaced when the signal is
// missing, both in DimensionResult.SignalsMissing and in the roadmap.
type Signal struct {
	Name        string
	Points      int
	Remediation string
}

// Signal names, one constant per checkable fact.
const (
	SignalTestSuite    = "test_suite"
	SignalCIWorkflow   = "ci_workflow"
	SignalLinterConfig = "linter_config"

	SignalSourceLayout       = "source_layout"
	SignalDependencyManifest = "dependency_manifest"

	SignalCommitVolume = "commit_volume"
	SignalGitignore    = "gitignore"

	SignalReadmePresent   = "readme_present"
	SignalReadmeSubstance = "readme_substance"
	SignalReadmeInstall   = "readme_install_section"
	SignalReadmeUsage     = "readme_usage_section"

	SignalDescription = "description"
	SignalLicense     = "license"
)

// signalTable is the single declarative source of truth for per-signal point
// values. The points within each dimension sum to that dimension's weight,
// and the five weights sum to 100 (asserted in tests).
var signalTable = map[Dimension][]Signal{
	DimTesting: {
		{SignalTestSuite, 10, "Add an automated test suite (a tests/ directory or test-suffixed files)"},
		{SignalCIWorkflow, 10, "Set up a CI pipeline with GitHub Actions (.github/workflows)"},
		{SignalLinterConfig, 5, "Add a linter or formatter configuration to enforce code style"},
	},
	DimArchitecture: {
		{SignalSourceLayout, 12, "Organize source files into conventional directories (src/, app/, lib/)"},
		{SignalDependencyManifest, 8, "Declare dependencies in a manifest file (package.json, requirements.txt, go.mod)"},
	},
	DimGitHygiene: {
		{SignalCommitVolume, 10, "Commit regularly with meaningful messages to build a real history"},
		{SignalGitignore, 10, "Add a .gitignore to keep build artifacts out of version control"},
	},
	DimDocumentation: {
		{SignalReadmePresent, 8, "Add a README describing what the project does"},
		{SignalReadmeSubstance, 6, "Expand the README into substantive documentation (aim for 150+ words)"},
		{SignalReadmeInstall, 3, "Document installation steps in the README"},
		{SignalReadmeUsage, 3, "Document usage with examples in the README"},
	},
	DimMetadata: {
		{SignalDescription, 8, "Fill in the repository description so visitors know what it is"},
		{SignalLicense, 7, "Add a license so others know how they may use the code"},
	},
}

// DimensionWeight returns the maximum score (weight ceiling) for a dimension.
func DimensionWeight(dim Dimension) int {
	total := 0
	for _, sig := range signalTable[dim] {
		total += sig.Points
	}
	return total
}

// Thresholds and constants tuned against the documented scoring scenarios.
const (
	// commitVolumeDivisor scales commit count into points, capped at the
	// commit_volume signal's point value (50+ commits earn full credit).
	commitVolumeDivisor = 5

	// readmeSubstantiveWords is the word count at which a README stops
	// counting as boilerplate.
	readmeSubstantiveWords = 150

	// descriptionMinLength is the floor below which a repository
	// description is treated as trivial.
	descriptionMinLength = 10

	// roadmapLimit caps how many remediation suggestions are returned.
	roadmapLimit = 5
)

// conventionalSourceDirs are top-level directories that indicate a
// deliberately organized layout.
var conventionalSourceDirs = map[string]struct{}{
	"src":        {},
	"app":        {},
	"lib":        {},
	"pkg":        {},
	"internal":   {},
	"components": {},
}

// sourceFileExtensions classify loose root files for the flat-layout check.
var sourceFileExtensions = map[string]struct{}{
	".py": {}, ".js": {}, ".ts": {}, ".jsx": {}, ".tsx": {},
	".go": {}, ".java": {}, ".rb": {}, ".rs": {}, ".php": {},
	".c": {}, ".h": {}, ".cpp": {}, ".cc": {}, ".cs": {},
	".kt": {}, ".swift": {}, ".scala": {}, ".ex": {}, ".exs": {},
}

// dependencyManifests are recognized dependency declaration files.
var dependencyManifests = map[string]struct{}{
	"requirements.txt": {},
	"package.json":     {},
	"pyproject.toml":   {},
	"pipfile":          {},
	"go.mod":           {},
	"pom.xml":          {},
	"build.gradle":     {},
	"cargo.toml":       {},
	"gemfile":          {},
	"composer.json":    {},
}

// linterConfigs are recognized linter/formatter configuration files.
var linterConfigs = map[string]struct{}{
	".flake8":         {},
	".pylintrc":       {},
	"ruff.toml":       {},
	".eslintrc":       {},
	".eslintrc.js":    {},
	".eslintrc.json":  {},
	".eslintrc.yml":   {},
	".prettierrc":     {},
	".prettierrc.json": {},
	".golangci.yml":   {},
	".golangci.yaml":  {},
	".rubocop.yml":    {},
}
