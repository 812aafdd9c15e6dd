package command

import "strings"

// Kind tells the executor how to treat a stage.
type Kind int

const (
	// KindTransform stages map a line sequence to a new one.
	KindTransform Kind = iota
	// KindNotify stages pass lines through and publish a Document.
	KindNotify
)

func (k Kind) String() string {
	switch k {
	case KindTransform:
		return "transform"
	case KindNotify:
		return "notify"
	default:
		return "unknown"
	}
}

// Transform is a pure function over a line sequence. It must not modify its input.
type Transform func(lines []string) []string

// Document is the payload of a notify stage.
type Document struct {
	Title string
	// Body is markdown.
	Body string
}

// Stage is a command bound to its arguments.
type Stage struct {
	Name string
	Args []string
	Kind Kind

	transform Transform
	document  Document
}

func newTransformStage(name string, args []string, fn Transform) *Stage {
	return &Stage{
		Name:      name,
		Args:      args,
		Kind:      KindTransform,
		transform: fn,
	}
}

func newNotifyStage(name string, args []string, doc Document) *Stage {
	return &Stage{
		Name:     name,
		Args:     args,
		Kind:     KindNotify,
		document: doc,
	}
}

// Apply runs the stage on lines. Notify stages return lines as is.
func (s *Stage) Apply(lines []string) []string {
	if s.Kind != KindTransform || s.transform == nil {
		return lines
	}

	return s.transform(lines)
}

// Document returns the notification carried by a notify stage.
func (s *Stage) Document() (Document, bool) {
	if s.Kind != KindNotify {
		return Document{}, false
	}

	return s.document, true
}

// String returns the stage as it would be written in a pipeline.
func (s *Stage) String() string {
	if len(s.Args) == 0 {
		return s.Name
	}

	return s.Name + " " + strings.Join(s.Args, " ")
}
