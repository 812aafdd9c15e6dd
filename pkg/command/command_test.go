package command_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-linepipe/pkg/command"
)

func newStage(t *testing.T, name string, args ...string) *command.Stage {
	t.Helper()

	factory, ok := command.Lookup(name)
	require.True(t, ok, "command %s must be registered", name)

	stage, err := factory(args)
	require.NoError(t, err)
	require.NotNil(t, stage)

	return stage
}

func TestLookup(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		name  string
		found bool
	}{
		"sort":       {name: "sort", found: true},
		"uniq":       {name: "uniq", found: true},
		"help":       {name: "help", found: true},
		"upper case": {name: "Sort", found: false},
		"empty":      {name: "", found: false},
		"unknown":    {name: "frobnicate", found: false},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			factory, ok := command.Lookup(tc.name)
			assert.Equal(t, tc.found, ok)
			assert.Equal(t, tc.found, factory != nil)
		})
	}
}

func TestNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"help", "sort", "uniq"}, command.Names())
}

func TestSortArguments(t *testing.T) {
	t.Parallel()

	input := []string{"b", "c", "a"}

	tcs := map[string]struct {
		args     []string
		expected []string
	}{
		"none": {args: nil, expected: []string{"a", "b", "c"}},
		"asc":  {args: []string{"asc"}, expected: []string{"a", "b", "c"}},
		"-d":   {args: []string{"-d"}, expected: []string{"c", "b", "a"}},
		"desc": {args: []string{"desc"}, expected: []string{"c", "b", "a"}},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			stage := newStage(t, command.SortName, tc.args...)
			assert.Equal(t, command.KindTransform, stage.Kind)
			assert.Equal(t, tc.expected, stage.Apply(input))
		})
	}
}

func TestInvalidArguments(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		name string
		args []string
	}{
		"sort unknown flag":   {name: command.SortName, args: []string{"-x"}},
		"sort two directions": {name: command.SortName, args: []string{"asc", "desc"}},
		"sort upper case":     {name: command.SortName, args: []string{"DESC"}},
		"uniq extra":          {name: command.UniqName, args: []string{"extra"}},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			factory, ok := command.Lookup(tc.name)
			require.True(t, ok)

			stage, err := factory(tc.args)
			require.Error(t, err)
			assert.Nil(t, stage)
			assert.ErrorIs(t, err, command.ErrInvalidArguments)

			var argsErr *command.InvalidArgumentsError
			require.True(t, errors.As(err, &argsErr))
			assert.Equal(t, tc.name, argsErr.Command)
			assert.Equal(t, tc.args, argsErr.Args)
			assert.NotEmpty(t, argsErr.Allowed)
		})
	}
}

func TestInvalidArgumentsMessage(t *testing.T) {
	t.Parallel()

	factory, _ := command.Lookup(command.SortName)
	_, err := factory([]string{"-x"})
	require.Error(t, err)
	assert.Equal(t,
		"invalid arguments for sort: -x (expected no argument, 'asc', '-d', 'desc')",
		err.Error())

	factory, _ = command.Lookup(command.UniqName)
	_, err = factory([]string{"extra"})
	require.Error(t, err)
	assert.Equal(t, "invalid arguments for uniq: extra (expected no argument)", err.Error())
}

func TestUnknownCommandError(t *testing.T) {
	t.Parallel()

	err := error(&command.UnknownCommandError{Name: "frobnicate", Stage: 2})
	assert.Equal(t, "unknown command: 'frobnicate'", err.Error())
	assert.ErrorIs(t, err, command.ErrUnknownCommand)
	assert.NotErrorIs(t, err, command.ErrInvalidArguments)
}

func TestSortNumericAware(t *testing.T) {
	t.Parallel()

	stage := newStage(t, command.SortName)
	assert.Equal(t, []string{"item1", "item2", "item10"}, stage.Apply([]string{"item2", "item10", "item1"}))

	stage = newStage(t, command.SortName, "desc")
	assert.Equal(t, []string{"item10", "item2", "item1"}, stage.Apply([]string{"item2", "item10", "item1"}))
}

func TestSortIsPermutationAndOrdered(t *testing.T) {
	t.Parallel()

	inputs := [][]string{
		{},
		{"single"},
		{"x10", "x9", "x100", "x9", "a", "b2", "b10", "b1"},
		{"2", "10", "1", "01", "20", "3"},
		{"v1.10.0", "v1.2.0", "v1.9.3", "v1.2.0"},
	}

	for _, input := range inputs {
		for _, direction := range []string{"asc", "desc"} {
			got := newStage(t, command.SortName, direction).Apply(input)
			assert.ElementsMatch(t, input, got)

			for i := 1; i < len(got); i++ {
				cmp := command.NaturalCompare(got[i-1], got[i])
				if direction == "asc" {
					assert.LessOrEqual(t, cmp, 0, "%q before %q", got[i-1], got[i])
				} else {
					assert.GreaterOrEqual(t, cmp, 0, "%q before %q", got[i-1], got[i])
				}
			}
		}
	}
}

func TestSortDoesNotModifyInput(t *testing.T) {
	t.Parallel()

	input := []string{"c", "b", "a"}
	_ = newStage(t, command.SortName).Apply(input)
	assert.Equal(t, []string{"c", "b", "a"}, input)
}

func TestUniq(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input    []string
		expected []string
	}{
		"empty":            {input: []string{}, expected: []string{}},
		"no duplicate":     {input: []string{"b", "a"}, expected: []string{"b", "a"}},
		"first occurrence": {input: []string{"b", "a", "b", "c", "a"}, expected: []string{"b", "a", "c"}},
		"blank lines":      {input: []string{"", "x", "", ""}, expected: []string{"", "x"}},
		"case sensitive":   {input: []string{"A", "a", "A"}, expected: []string{"A", "a"}},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := newStage(t, command.UniqName).Apply(tc.input)
			assert.Equal(t, tc.expected, got)

			seen := map[string]bool{}
			for _, line := range got {
				assert.False(t, seen[line], "duplicate %q", line)
				seen[line] = true
				assert.Contains(t, tc.input, line)
			}
		})
	}
}

func TestHelp(t *testing.T) {
	t.Parallel()

	stage := newStage(t, command.HelpName, "anything", "goes")
	assert.Equal(t, command.KindNotify, stage.Kind)

	input := []string{"b", "a"}
	assert.Equal(t, input, stage.Apply(input))

	doc, ok := stage.Document()
	require.True(t, ok)
	assert.Equal(t, command.HelpDocument(), doc)

	for _, name := range command.Names() {
		assert.Contains(t, doc.Body, "### "+name)
	}

	assert.Contains(t, doc.Body, "- `sort desc`")
	assert.Contains(t, doc.Body, "- `uniq`")
}

func TestTransformStageHasNoDocument(t *testing.T) {
	t.Parallel()

	_, ok := newStage(t, command.UniqName).Document()
	assert.False(t, ok)
}

func TestStageString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "sort", newStage(t, command.SortName).String())
	assert.Equal(t, "sort -d", newStage(t, command.SortName, "-d").String())
}
