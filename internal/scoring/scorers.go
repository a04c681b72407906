package scoring

import (
	"path"
	"sort"
	"strings"

	"github.com/repogauge/repogauge/internal/types"
)

// DimensionResult is the outcome of one dimension scorer. Score is always
// within [0, Max]; SignalsFound holds the names of signals that earned
// points, SignalsMissing the remediation text for signals that earned none.
type DimensionResult struct {
	Name           Dimension `json:"name"`
	Label          string    `json:"label"`
	Score          int       `json:"score"`
	Max            int       `json:"max"`
	SignalsFound   []string  `json:"signals_found"`
	SignalsMissing []string  `json:"signals_missing"`
}

// signalPoints maps signal name to points earned for one dimension run.
type signalPoints map[string]int

// buildResult assembles a DimensionResult from earned points, walking the
// signal table in declaration order so output ordering is fixed.
func buildResult(dim Dimension, earned signalPoints) DimensionResult {
	res := DimensionResult{
		Name:           dim,
		Label:          dimensionLabels[dim],
		Max:            DimensionWeight(dim),
		SignalsFound:   []string{},
		SignalsMissing: []string{},
	}

	for _, sig := range signalTable[dim] {
		pts := earned[sig.Name]
		if pts > sig.Points {
			pts = sig.Points
		}
		res.Score += pts
		if pts > 0 {
			res.SignalsFound = append(res.SignalsFound, sig.Name)
		} else {
			res.SignalsMissing = append(res.SignalsMissing, sig.Remediation)
		}
	}

	return res
}

// ScoreTesting checks for a test suite, a CI workflow, and a linter config.
func ScoreTesting(snap types.RepositorySnapshot) DimensionResult {
	earned := signalPoints{}

	if hasTestConvention(snap) {
		earned[SignalTestSuite] = fullPoints(DimTesting, SignalTestSuite)
	}
	if hasCIWorkflow(snap) {
		earned[SignalCIWorkflow] = fullPoints(DimTesting, SignalCIWorkflow)
	}
	if hasLinterConfig(snap) {
		earned[SignalLinterConfig] = fullPoints(DimTesting, SignalLinterConfig)
	}

	return buildResult(DimTesting, earned)
}

// ScoreArchitecture rewards a conventional source layout over a flat root
// and the presence of a dependency manifest.
func ScoreArchitecture(snap types.RepositorySnapshot) DimensionResult {
	earned := signalPoints{}

	earned[SignalSourceLayout] = layoutPoints(snap)

	for p := range snap.Paths {
		if !strings.Contains(p, "/") {
			if _, ok := dependencyManifests[p]; ok {
				earned[SignalDependencyManifest] = fullPoints(DimArchitecture, SignalDependencyManifest)
				break
			}
		}
	}

	return buildResult(DimArchitecture, earned)
}

// ScoreGitHygiene scores commit volume (scaled, capped) and .gitignore
// presence. Only the commit count matters; squash-merged histories are not
// penalized for date gaps.
func ScoreGitHygiene(snap types.RepositorySnapshot) DimensionResult {
	earned := signalPoints{}

	limit := fullPoints(DimGitHygiene, SignalCommitVolume)
	pts := len(snap.Commits) / commitVolumeDivisor
	if pts > limit {
		pts = limit
	}
	earned[SignalCommitVolume] = pts

	if snap.HasPath(".gitignore") {
		earned[SignalGitignore] = fullPoints(DimGitHygiene, SignalGitignore)
	}

	return buildResult(DimGitHygiene, earned)
}

// ScoreDocumentation scores README presence, a word-count substance tier,
// and a small set of expected section keywords. No content analysis beyond
// word count and keyword presence.
func ScoreDocumentation(snap types.RepositorySnapshot) DimensionResult {
	earned := signalPoints{}

	words := len(strings.Fields(snap.ReadmeText))
	if words > 0 {
		earned[SignalReadmePresent] = fullPoints(DimDocumentation, SignalReadmePresent)

		substance := fullPoints(DimDocumentation, SignalReadmeSubstance)
		if words < readmeSubstantiveWords {
			substance /= 2
		}
		earned[SignalReadmeSubstance] = substance

		lower := strings.ToLower(snap.ReadmeText)
		if strings.Contains(lower, "install") {
			earned[SignalReadmeInstall] = fullPoints(DimDocumentation, SignalReadmeInstall)
		}
		if strings.Contains(lower, "usage") {
			earned[SignalReadmeUsage] = fullPoints(DimDocumentation, SignalReadmeUsage)
		}
	}

	return buildResult(DimDocumentation, earned)
}

// ScoreMetadata scores a non-trivial description and license presence.
func ScoreMetadata(snap types.RepositorySnapshot) DimensionResult {
	earned := signalPoints{}

	if len(strings.TrimSpace(snap.Description)) >= descriptionMinLength {
		earned[SignalDescription] = fullPoints(DimMetadata, SignalDescription)
	}
	if snap.HasLicense {
		earned[SignalLicense] = fullPoints(DimMetadata, SignalLicense)
	}

	return buildResult(DimMetadata, earned)
}

// ScoreAll runs every dimension scorer in the fixed dimension order.
func ScoreAll(snap types.RepositorySnapshot) []DimensionResult {
	scorers := map[Dimension]func(types.RepositorySnapshot) DimensionResult{
		DimTesting:       ScoreTesting,
		DimArchitecture:  ScoreArchitecture,
		DimGitHygiene:    ScoreGitHygiene,
		DimDocumentation: ScoreDocumentation,
		DimMetadata:      ScoreMetadata,
	}

	results := make([]DimensionResult, 0, len(dimensionOrder))
	for _, dim := range dimensionOrder {
		results = append(results, scorers[dim](snap))
	}
	return results
}

func fullPoints(dim Dimension, name string) int {
	for _, sig := range signalTable[dim] {
		if sig.Name == name {
			return sig.Points
		}
	}
	return 0
}

// hasTestConvention matches tests/ or test/ directories anywhere in the
// tree, and *_test.* / *.test.* file naming.
func hasTestConvention(snap types.RepositorySnapshot) bool {
	for p := range snap.Paths {
		for _, seg := range strings.Split(p, "/") {
			if seg == "tests" || seg == "test" {
				return true
			}
		}

		base := path.Base(p)
		if strings.HasPrefix(base, "test_") {
			return true
		}
		if ext := path.Ext(base); ext != "" {
			stem := strings.TrimSuffix(base, ext)
			if strings.HasSuffix(stem, "_test") || strings.HasSuffix(stem, ".test") {
				return true
			}
		}
	}
	return false
}

// hasCIWorkflow matches a file under .github/workflows/ plus the common
// Travis and CircleCI locations.
func hasCIWorkflow(snap types.RepositorySnapshot) bool {
	if snap.HasPath(".travis.yml") || snap.HasPath(".circleci/config.yml") {
		return true
	}
	for p := range snap.Paths {
		if strings.HasPrefix(p, ".github/workflows/") {
			return true
		}
	}
	return false
}

func hasLinterConfig(snap types.RepositorySnapshot) bool {
	for p := range snap.Paths {
		if strings.Contains(p, "/") {
			continue
		}
		if _, ok := linterConfigs[p]; ok {
			return true
		}
		if strings.HasPrefix(p, ".eslintrc") {
			return true
		}
	}
	return false
}

// layoutPoints awards full credit for a conventional top-level source
// directory, partial credit for a root organized into directories, and
// nothing for a flat layout with more loose source files than directories.
// The result does not depend on path set iteration order.
func layoutPoints(snap types.RepositorySnapshot) int {
	full := fullPoints(DimArchitecture, SignalSourceLayout)

	rootDirs := make(map[string]struct{})
	rootFiles := make(map[string]struct{})
	for p := range snap.Paths {
		if i := strings.Index(p, "/"); i >= 0 {
			rootDirs[p[:i]] = struct{}{}
		} else {
			rootFiles[p] = struct{}{}
		}
	}
	// A root entry listed both bare and as a prefix is a directory.
	for d := range rootDirs {
		delete(rootFiles, d)
	}

	for d := range rootDirs {
		if _, ok := conventionalSourceDirs[d]; ok {
			return full
		}
	}

	looseSource := 0
	for f := range rootFiles {
		if _, ok := sourceFileExtensions[path.Ext(f)]; ok {
			looseSource++
		}
	}

	if len(rootDirs) == 0 || looseSource > len(rootDirs) {
		return 0
	}
	return full / 2
}

// sortedPaths is a helper for deterministic diagnostics output.
func sortedPaths(snap types.RepositorySnapshot) []string {
	out := make([]string, 0, len(snap.Paths))
	for p := range snap.Paths {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
