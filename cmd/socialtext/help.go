package main

import (
	"fmt"
	"io"

	"github.com/alnah/go-socialtext/internal/hints"
)

// commandInfo describes a command for usage and completion.
type commandInfo struct {
	name string
	args string
	desc string
}

// commandInfos lists the commands in help order.
var commandInfos = []commandInfo{
	{"tokens", "[files...]", "Print the token stream of each message"},
	{"links", "[files...]", "List links and foreign mentions"},
	{"embed", "[files...]", "Print the link that gets a preview"},
	{"checkbox", "[files...]", "Inspect or edit the initial checkbox"},
	{"tags", "[files...]", "List the hashtags of each message"},
	{"config", "", "Print the effective configuration"},
	{"doctor", "[--json]", "Check configuration, lists and environment"},
	{"completion", "<shell>", "Generate shell completion script"},
	{"version", "", "Show version information"},
	{"help", "[command]", "Show help for a command"},
}

// messageCommands are the commands that read messages.
var messageCommands = []string{"tokens", "links", "embed", "checkbox", "tags"}

func commandNames() []string {
	names := make([]string, len(commandInfos))
	for i, c := range commandInfos {
		names[i] = c.name
	}
	return names
}

func lookupCommand(name string) (commandInfo, bool) {
	for _, c := range commandInfos {
		if c.name == name {
			return c, true
		}
	}
	return commandInfo{}, false
}

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: socialtext <command> [flags] [files...]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, c := range commandInfos {
		fmt.Fprintf(w, "  %-11s %s\n", c.name, c.desc)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Messages are read from files, from --text, or from stdin.")
	fmt.Fprintln(w, "Run 'socialtext help <command>' for details on a specific command.")
}

// printCommandUsage prints usage for one command. Flag lines come from the
// command's FlagSet.
func printCommandUsage(w io.Writer, name string) {
	c, ok := lookupCommand(name)
	if !ok {
		printUsage(w)
		return
	}

	switch name {
	case "completion":
		printCompletionUsage(w)
		return
	case "version", "help":
		fmt.Fprintf(w, "Usage: socialtext %s %s\n", c.name, c.args)
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%s.\n", c.desc)
		return
	case "doctor":
		fmt.Fprintf(w, "Usage: socialtext %s %s\n", c.name, c.args)
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%s.\n", c.desc)
		fmt.Fprintln(w)
		fmt.Fprint(w, commandNotes[name])
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Flags:")
		fmt.Fprintln(w, "      --json   print the report as JSON")
		return
	}

	fmt.Fprintf(w, "Usage: socialtext %s [flags] %s\n", c.name, c.args)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s.\n", c.desc)
	if extra := commandNotes[name]; extra != "" {
		fmt.Fprintln(w)
		fmt.Fprint(w, extra)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprint(w, buildFlagSet(name, &cmdFlags{}).FlagUsages())
}

// commandNotes holds extra help text per command.
var commandNotes = map[string]string{
	"tokens": "Each line shows the token kind, its byte offset and its quoted text.\n",
	"links": "Local links show their path on the site; external links show a short\n" +
		"form. Links to the root of a secondary site domain are external.\n",
	"embed": "Links inside <spoiler> tags and links written right after '!' never\n" +
		"get a preview. Nothing is printed when no link qualifies.\n",
	"checkbox": "Edits print the rewritten message. They exit with code 4 when the\n" +
		"message does not start with a checkbox.\n",
	"tags": "Tags are printed case-folded, sorted and without duplicates.\n",
	"doctor": "Reads the same config file, SOCIALTEXT_* variables and lists as the\n" +
		"message commands. Exits with code 1 when an error is found.\n",
	"config": "Shows the result of merging the config file, SOCIALTEXT_* variables\n" +
		"and flags.\n",
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return nil
	}
	if !isCommand(args[0]) {
		return fmt.Errorf("%w: %s%s", ErrUnknownCommand, args[0], hints.ForUnknownValue(commandNames()))
	}
	printCommandUsage(env.Stdout, args[0])
	return nil
}
