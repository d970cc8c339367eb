package manager

import (
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/ethanolivertroy/porter/internal/models"
)

// scriptMetadata is the PEP 723 inline block uv maintains at the top of a
// standalone script:
//
//	# /// script
//	# dependencies = [
//	#   "requests>=2.28",
//	# ]
//	# ///
type scriptMetadata struct {
	RequiresPython string   `toml:"requires-python"`
	Dependencies   []string `toml:"dependencies"`
}

// specNamePattern captures the package name at the front of a PEP 508
// dependency specification (e.g. "requests>=2.28", "flask[async]==2.0")
var specNamePattern = regexp.MustCompile(`^\s*([A-Za-z0-9][A-Za-z0-9._-]*)`)

// declaredDependencies extracts the script's declared dependency names,
// lower-cased. Content without a metadata block, or with one that fails to
// parse, declares nothing.
func declaredDependencies(content []byte) models.ImportSet {
	deps := models.NewImportSet()

	block, ok := inlineBlock(string(content))
	if !ok {
		return deps
	}

	var meta scriptMetadata
	if err := toml.Unmarshal([]byte(block), &meta); err != nil {
		return deps
	}

	for _, spec := range meta.Dependencies {
		if m := specNamePattern.FindStringSubmatch(spec); m != nil {
			deps.Add(strings.ToLower(m[1]))
		}
	}
	return deps
}

// inlineBlock returns the TOML text between `# /// script` and the closing
// `# ///`, with the comment prefixes stripped
func inlineBlock(content string) (string, bool) {
	var (
		sb   strings.Builder
		open bool
	)

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)

		if !open {
			if trimmed == "# /// script" {
				open = true
			}
			continue
		}
		if trimmed == "# ///" {
			return sb.String(), true
		}

		// Block lines are "#" or "# <toml>"; anything else ends the block.
		switch {
		case trimmed == "#":
			sb.WriteString("\n")
		case strings.HasPrefix(trimmed, "# "):
			sb.WriteString(strings.TrimPrefix(trimmed, "# "))
			sb.WriteString("\n")
		default:
			return "", false
		}
	}
	return "", false
}
