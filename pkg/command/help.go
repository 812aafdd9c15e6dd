package command

import (
	"fmt"
	"strings"
)

const helpTitle = "linepipe"

func newHelp(args []string) (*Stage, error) {
	return newNotifyStage(HelpName, args, HelpDocument()), nil
}

// HelpDocument describes the pipeline syntax and every registered command.
func HelpDocument() Document {
	var body strings.Builder

	body.WriteString("# " + helpTitle + "\n\n")
	body.WriteString("Transform lines with commands joined by `|`, for example `sort desc | uniq`.\n")
	body.WriteString("Each command receives the lines produced by the one before it.\n\n")
	body.WriteString("## Commands\n")

	for _, cmd := range Commands() {
		fmt.Fprintf(&body, "\n### %s\n\n%s\n", cmd.Name, cmd.Summary)

		if cmd.Forms == nil {
			continue
		}

		body.WriteString("\n")

		for _, form := range cmd.Forms {
			fmt.Fprintf(&body, "- `%s`\n", strings.TrimSpace(cmd.Name+" "+form))
		}
	}

	return Document{
		Title: helpTitle,
		Body:  body.String(),
	}
}
