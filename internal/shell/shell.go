// Package shell identifies the supported shells and the ingestion rules
// each one imposes on its history file.
package shell

import "fmt"

// Kind identifies a supported shell.
type Kind int

const (
	Bash Kind = iota
	Zsh
)

// EnvVar is the environment variable consulted when no -shell flag is given.
const EnvVar = "HUI_TERM"

func (k Kind) String() string {
	switch k {
	case Bash:
		return "bash"
	case Zsh:
		return "zsh"
	default:
		return fmt.Sprintf("shell.Kind(%d)", int(k))
	}
}

// ParseKind maps a user-supplied selector to a Kind. Only "bash" and "zsh"
// are accepted; anything else is a configuration error.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "bash":
		return Bash, nil
	case "zsh":
		return Zsh, nil
	case "":
		return 0, fmt.Errorf("no shell selected: set %s or pass -shell (accepted values: bash, zsh)", EnvVar)
	default:
		return 0, fmt.Errorf("unsupported shell %q (accepted values: bash, zsh)", s)
	}
}

// Rules describes how a shell's history file is decoded into entries.
type Rules struct {
	// HistoryFile is the history file name under the user's home directory.
	HistoryFile string

	// Delimiter separates one entry from the next in the raw file. Zsh only
	// breaks entries at its own metadata line, so multi-line commands keep
	// their embedded newlines.
	Delimiter string

	// Unmetafy reports whether the raw bytes use zsh's meta-character
	// encoding and must be unescaped before splitting.
	Unmetafy bool

	// StripTimestamps reports whether each entry carries a leading
	// "<epoch>:<duration>;" metadata prefix to remove.
	StripTimestamps bool
}

var rulesTable = map[Kind]Rules{
	Bash: {
		HistoryFile: ".bash_history",
		Delimiter:   "\n",
	},
	Zsh: {
		HistoryFile:     ".zsh_history",
		Delimiter:       "\n: ",
		Unmetafy:        true,
		StripTimestamps: true,
	},
}

// Rules returns the ingestion rules for the shell.
func (k Kind) Rules() Rules {
	return rulesTable[k]
}
