package command

import (
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type sortOrder int

const (
	ascending sortOrder = iota
	descending
)

var sortShapes = []argShape[sortOrder]{
	{tokens: nil, value: ascending},
	{tokens: []string{"asc"}, value: ascending},
	{tokens: []string{"-d"}, value: descending},
	{tokens: []string{"desc"}, value: descending},
}

func newSort(args []string) (*Stage, error) {
	order, ok := matchArgs(args, sortShapes)
	if !ok {
		return nil, invalidArguments(SortName, args, shapeForms(sortShapes))
	}

	return newTransformStage(SortName, args, sortLines(order)), nil
}

// NaturalCompare compares a and b with the root locale collation, digit runs
// being compared by numeric value.
func NaturalCompare(a, b string) int {
	return newCollator().CompareString(a, b)
}

// newCollator returns a fresh collator, collators are not safe for concurrent use.
func newCollator() *collate.Collator {
	return collate.New(language.Und, collate.Numeric)
}

func sortLines(order sortOrder) Transform {
	return func(lines []string) []string {
		col := newCollator()
		sorted := slices.Clone(lines)

		slices.SortStableFunc(sorted, func(a, b string) int {
			if order == descending {
				return col.CompareString(b, a)
			}

			return col.CompareString(a, b)
		})

		return sorted
	}
}
