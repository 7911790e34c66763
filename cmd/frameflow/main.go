package main

import (
	"os"
	"strings"

	"frameflow-cli/internal/cli"
)

func isProjectID(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, "proj-") && len(s) > len("proj-")
}

// persistent flags that take a separate value token
var valueFlags = map[string]bool{
	"--dir":       true,
	"--workspace": true,
	"--format":    true,
}

// rewriteProjectLookupArgs turns `frameflow [flags] <proj-id>` into
// `frameflow [flags] projects show <proj-id>`. Cobra would otherwise read the id as a
// subcommand, so argv is rewritten before parsing.
func rewriteProjectLookupArgs(argv []string) []string {
	insertAt := func(i int) []string {
		out := make([]string, 0, len(argv)+2)
		out = append(out, argv[:i]...)
		out = append(out, "projects", "show")
		return append(out, argv[i:]...)
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		switch {
		case a == "":
			continue
		case a == "--":
			if i+1 < len(argv) && isProjectID(argv[i+1]) {
				return insertAt(i + 1)
			}
			return argv
		case strings.HasPrefix(a, "-"):
			if !strings.Contains(a, "=") && valueFlags[a] {
				i++
			}
			continue
		case isProjectID(a):
			return insertAt(i)
		default:
			return argv
		}
	}
	return argv
}

func main() {
	os.Args = rewriteProjectLookupArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
