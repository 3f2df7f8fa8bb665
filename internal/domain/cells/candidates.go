package cells

import (
	m "manimcells.dev/pkg/manimcells/internal/model"
)

// Candidates selects every construct method of a class with declared bases and
// splits its body. Order follows class headers, then method headers.
func Candidates(classes []*m.ClassDef, lines []m.SourceLine) []m.Candidate {
	var result []m.Candidate

	for _, class := range classes {
		if !class.HasBases() {
			continue
		}

		for _, method := range class.Methods {
			if method.Name != m.ConstructMethod {
				continue
			}

			result = append(result, m.Candidate{
				ID: m.CandidateID{
					Class:  class.Name,
					Method: method.Name,
					Indent: class.Indent,
				},
				Method: method,
				Cells:  Split(lines, method.Body, method.BodyIndent),
			})
		}
	}

	return result
}
