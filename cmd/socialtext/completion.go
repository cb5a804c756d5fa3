package main

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	flag "github.com/spf13/pflag"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

var supportedShells = []string{string(ShellBash), string(ShellZsh), string(ShellFish)}

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagInt
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long       string   // --format
	Short      string   // -f (empty if none)
	Type       flagType // completion type
	Desc       string   // help text
	Values     []string // for enum flags
	FileGlob   string   // for file flags
	Repeatable bool     // slice flags may be given several times
}

// commandDef describes a command for completion.
type commandDef struct {
	Name       string
	Desc       string
	Flags      []flagDef
	Args       []string // fixed argument values (shells, commands)
	TakesFiles bool     // accepts message file arguments
}

// completionMeta holds completion-specific metadata for flags.
// This is the ONLY place where completion hints are defined.
// Flag names, types, and descriptions come from the FlagSet.
type completionMeta struct {
	Values   []string // enum values
	FileGlob string   // file glob pattern
	IsDir    bool     // directory completion
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	// Enum flags
	"format": {Values: outputFormats},
	"color":  {Values: colorModes},
	"rules":  {Values: ruleNameList()},

	// File flags with glob patterns
	"config": {FileGlob: "*.yaml,*.yml"},

	// Directory flags
	"asset-path": {IsDir: true},
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
// Enriches with completion metadata from flagCompletionMeta.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		// Determine base type from pflag type
		switch typ := f.Value.Type(); {
		case typ == "bool":
			fd.Type = flagBool
		case typ == "int":
			fd.Type = flagInt
		case strings.HasSuffix(typ, "Slice") || strings.HasSuffix(typ, "Array"):
			fd.Repeatable = true
		}

		// Override type based on completion metadata
		if meta, ok := flagCompletionMeta[f.Name]; ok {
			switch {
			case len(meta.Values) > 0:
				fd.Type = flagEnum
				fd.Values = meta.Values
			case meta.FileGlob != "":
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			case meta.IsDir:
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
// Flags are extracted from the actual FlagSets - single source of truth.
func getCommands() []commandDef {
	cmds := make([]commandDef, 0, len(commandInfos))
	for _, c := range commandInfos {
		def := commandDef{Name: c.name, Desc: c.desc}
		switch c.name {
		case "completion":
			def.Args = supportedShells
		case "help":
			def.Args = commandNames()
		case "doctor":
			def.Flags = []flagDef{{Long: "json", Type: flagBool, Desc: "print the report as JSON"}}
		case "version":
		default:
			def.Flags = extractFlagsFromFlagSet(buildFlagSet(c.name, &cmdFlags{}))
			def.TakesFiles = slices.Contains(messageCommands, c.name)
		}
		cmds = append(cmds, def)
	}
	return cmds
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	var script string
	switch shell {
	case ShellBash:
		script = generateBash(getCommands())
	case ShellZsh:
		script = generateZsh(getCommands())
	case ShellFish:
		script = generateFish(getCommands())
	default:
		return fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedShell, shell, strings.Join(supportedShells, ", "))
	}
	_, err := io.WriteString(w, script)
	return err
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: socialtext completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(socialtext completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (before compinit):")
	fmt.Fprintln(w, "    eval \"$(socialtext completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    socialtext completion fish > ~/.config/fish/completions/socialtext.fish")
}

// ---------------------------------------------------------------------------
// Bash
// ---------------------------------------------------------------------------

func generateBash(cmds []commandDef) string {
	var b strings.Builder

	b.WriteString("# bash completion for socialtext\n\n")
	b.WriteString("_socialtext_completions() {\n")
	b.WriteString("    local cur prev cmd\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    cmd=\"${COMP_WORDS[1]}\"\n\n")
	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W %q -- \"${cur}\"))\n", strings.Join(commandNames(), " "))
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"${cmd}\" in\n")

	for _, c := range cmds {
		if len(c.Flags) == 0 && len(c.Args) == 0 {
			continue
		}
		fmt.Fprintf(&b, "    %s)\n", c.Name)

		if len(c.Args) > 0 {
			fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W %q -- \"${cur}\"))\n", strings.Join(c.Args, " "))
			b.WriteString("        ;;\n")
			continue
		}

		b.WriteString("        case \"${prev}\" in\n")
		for _, f := range c.Flags {
			action := bashFlagAction(f)
			if action == "" {
				continue
			}
			fmt.Fprintf(&b, "        %s)\n", strings.Join(flagNames(f), "|"))
			fmt.Fprintf(&b, "            %s\n", action)
			b.WriteString("            return\n")
			b.WriteString("            ;;\n")
		}
		b.WriteString("        esac\n")

		var names []string
		for _, f := range c.Flags {
			names = append(names, flagNames(f)...)
		}
		b.WriteString("        if [[ ${cur} == -* ]]; then\n")
		fmt.Fprintf(&b, "            COMPREPLY=($(compgen -W %q -- \"${cur}\"))\n", strings.Join(names, " "))
		if c.TakesFiles {
			b.WriteString("        else\n")
			b.WriteString("            COMPREPLY=($(compgen -f -- \"${cur}\"))\n")
		}
		b.WriteString("        fi\n")
		b.WriteString("        ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("complete -o filenames -F _socialtext_completions socialtext\n")
	return b.String()
}

// bashFlagAction returns the completion statement for a flag value, or ""
// for flags without a value.
func bashFlagAction(f flagDef) string {
	switch f.Type {
	case flagBool:
		return ""
	case flagEnum:
		return fmt.Sprintf("COMPREPLY=($(compgen -W %q -- \"${cur}\"))", strings.Join(f.Values, " "))
	case flagFile:
		return "COMPREPLY=($(compgen -f -- \"${cur}\"))"
	case flagDir:
		return "COMPREPLY=($(compgen -d -- \"${cur}\"))"
	default:
		return "COMPREPLY=()"
	}
}

func flagNames(f flagDef) []string {
	names := []string{"--" + f.Long}
	if f.Short != "" {
		names = append(names, "-"+f.Short)
	}
	return names
}

// ---------------------------------------------------------------------------
// Zsh
// ---------------------------------------------------------------------------

func generateZsh(cmds []commandDef) string {
	var b strings.Builder

	b.WriteString("#compdef socialtext\n\n")
	b.WriteString("_socialtext() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, zshQuote(c.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe 'command' commands\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    local cmd=\"${words[2]}\"\n")
	b.WriteString("    shift words\n")
	b.WriteString("    (( CURRENT-- ))\n\n")
	b.WriteString("    case \"${cmd}\" in\n")

	for _, c := range cmds {
		if len(c.Flags) == 0 && len(c.Args) == 0 {
			continue
		}
		fmt.Fprintf(&b, "    %s)\n", c.Name)
		if len(c.Args) > 0 {
			fmt.Fprintf(&b, "        _values '%s' %s\n", c.Name, strings.Join(c.Args, " "))
			b.WriteString("        ;;\n")
			continue
		}

		b.WriteString("        _arguments \\\n")
		for _, f := range c.Flags {
			fmt.Fprintf(&b, "            %s \\\n", zshFlagSpec(f))
		}
		if c.TakesFiles {
			b.WriteString("            '*:file:_files'\n")
		} else {
			b.WriteString("            && return 0\n")
		}
		b.WriteString("        ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("_socialtext \"$@\"\n")
	return b.String()
}

// zshFlagSpec returns the _arguments spec of a flag.
func zshFlagSpec(f flagDef) string {
	desc := "[" + zshQuote(f.Desc) + "]"

	var value string
	switch f.Type {
	case flagBool:
	case flagEnum:
		value = fmt.Sprintf(":%s:(%s)", f.Long, strings.Join(f.Values, " "))
	case flagFile:
		value = ":file:_files"
	case flagDir:
		value = ":directory:_files -/"
	default:
		value = ":" + f.Long + ": "
	}

	prefix := ""
	if f.Repeatable {
		prefix = "*"
	}
	if f.Short == "" {
		return fmt.Sprintf("'%s--%s%s%s'", prefix, f.Long, desc, value)
	}
	if f.Repeatable {
		return fmt.Sprintf("'*'{-%s,--%s}'%s%s'", f.Short, f.Long, desc, value)
	}
	return fmt.Sprintf("'(-%s --%s)'{-%s,--%s}'%s%s'", f.Short, f.Long, f.Short, f.Long, desc, value)
}

// zshQuote escapes text for use inside a single-quoted zsh spec.
func zshQuote(s string) string {
	r := strings.NewReplacer(
		"'", `'\''`,
		"[", `\[`,
		"]", `\]`,
		":", `\:`,
	)
	return r.Replace(s)
}

// ---------------------------------------------------------------------------
// Fish
// ---------------------------------------------------------------------------

func generateFish(cmds []commandDef) string {
	var b strings.Builder

	b.WriteString("# fish completion for socialtext\n\n")
	b.WriteString("function __fish_socialtext_needs_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -eq 1\n")
	b.WriteString("end\n\n")
	b.WriteString("function __fish_socialtext_using_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -gt 1; and test $cmd[2] = $argv[1]\n")
	b.WriteString("end\n\n")
	b.WriteString("complete -c socialtext -f\n\n")

	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c socialtext -n __fish_socialtext_needs_command -a %s -d %s\n", c.Name, fishQuote(c.Desc))
	}

	for _, c := range cmds {
		if len(c.Flags) == 0 && len(c.Args) == 0 {
			continue
		}
		b.WriteString("\n")
		cond := fmt.Sprintf("-n '__fish_socialtext_using_command %s'", c.Name)
		if len(c.Args) > 0 {
			fmt.Fprintf(&b, "complete -c socialtext %s -a %s\n", cond, fishQuote(strings.Join(c.Args, " ")))
			continue
		}
		if c.TakesFiles {
			fmt.Fprintf(&b, "complete -c socialtext %s -F\n", cond)
		}
		for _, f := range c.Flags {
			line := "complete -c socialtext " + cond
			if f.Short != "" {
				line += " -s " + f.Short
			}
			line += " -l " + f.Long
			switch f.Type {
			case flagBool:
			case flagEnum:
				line += " -x -a " + fishQuote(strings.Join(f.Values, " "))
			case flagFile:
				line += " -r -F"
			case flagDir:
				line += " -x -a '(__fish_complete_directories)'"
			default:
				line += " -x"
			}
			line += " -d " + fishQuote(f.Desc)
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}

// fishQuote single-quotes s for fish.
func fishQuote(s string) string {
	return "'" + strings.NewReplacer(`\`, `\\`, "'", `\'`).Replace(s) + "'"
}
