package command

var uniqShapes = []argShape[struct{}]{
	{tokens: nil},
}

func newUniq(args []string) (*Stage, error) {
	if _, ok := matchArgs(args, uniqShapes); !ok {
		return nil, invalidArguments(UniqName, args, shapeForms(uniqShapes))
	}

	return newTransformStage(UniqName, args, uniqLines), nil
}

func uniqLines(lines []string) []string {
	seen := make(map[string]struct{}, len(lines))
	out := make([]string, 0, len(lines))

	for _, line := range lines {
		if _, ok := seen[line]; ok {
			continue
		}

		seen[line] = struct{}{}
		out = append(out, line)
	}

	return out
}
