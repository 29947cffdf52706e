package command

import (
	"strings"

	"clipdeck/internal/formstate"
	"clipdeck/internal/recipe"
)

const DefaultExecutable = "clipaste"

// Command is an immutable synthesized invocation.
type Command struct {
	Executable string
	Argv       []string
	Preview    string
}

type Synthesizer struct {
	Catalog    recipe.Catalog
	Executable string
}

func (s Synthesizer) executable() string {
	if exe := strings.TrimSpace(s.Executable); exe != "" {
		return exe
	}
	return DefaultExecutable
}

// Synthesize builds recipe args, then mode args, then the tokenized extra
// args. An unresolved recipe id contributes nothing.
func (s Synthesizer) Synthesize(v formstate.FormValues) Command {
	argv := []string{}
	if r, ok := s.Catalog.Lookup(v.RecipeID); ok {
		argv = append(argv, r.Args...)
	}
	argv = append(argv, BuildArgs(v)...)
	argv = append(argv, Tokenize(v.TemplateArgs)...)
	exe := s.executable()
	return Command{Executable: exe, Argv: argv, Preview: Line(exe, argv)}
}

// ForSubmit fills a blank paste output with defaultOutputDir. The live
// preview skips this step so the form shows exactly what was typed.
func ForSubmit(v formstate.FormValues, defaultOutputDir string) formstate.FormValues {
	out := v.Clone()
	if out.Mode == formstate.ModePaste && !notBlank(out.Output) && notBlank(defaultOutputDir) {
		out.Output = defaultOutputDir
	}
	return out
}

// Display is the copy-to-clipboard form of a command.
func (c Command) Display() string {
	return "$ " + c.Preview
}
