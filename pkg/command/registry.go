package command

import "sort"

// Factory validates argument tokens and builds a Stage.
// It either returns a complete Stage or an error, never both.
type Factory func(args []string) (*Stage, error)

// Command is an entry of the command table.
type Command struct {
	Name    string
	Summary string
	// Forms lists the accepted argument forms, "" being no argument.
	// A nil Forms means arguments are ignored.
	Forms []string

	factory Factory
}

// New builds a Stage for args.
func (c Command) New(args []string) (*Stage, error) {
	return c.factory(args)
}

const (
	SortName = "sort"
	UniqName = "uniq"
	HelpName = "help"
)

var table map[string]Command

func init() {
	table = map[string]Command{
		SortName: {
			Name:    SortName,
			Summary: "Sort lines in natural order, numbers compared by value.",
			Forms:   shapeForms(sortShapes),
			factory: newSort,
		},
		UniqName: {
			Name:    UniqName,
			Summary: "Keep the first occurrence of every line.",
			Forms:   shapeForms(uniqShapes),
			factory: newUniq,
		},
		HelpName: {
			Name:    HelpName,
			Summary: "Show this document. Lines are left untouched.",
			factory: newHelp,
		},
	}
}

// Lookup returns the factory registered under name. Names are case sensitive.
func Lookup(name string) (Factory, bool) {
	cmd, ok := table[name]
	if !ok {
		return nil, false
	}

	return cmd.factory, true
}

// Names returns the registered command names in lexical order.
func Names() []string {
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Commands returns the command table ordered by name.
func Commands() []Command {
	names := Names()
	cmds := make([]Command, len(names))

	for i, name := range names {
		cmds[i] = table[name]
	}

	return cmds
}
