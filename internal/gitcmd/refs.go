package gitcmd

import "strings"

// Ref is one reference as reported by for-each-ref.
type Ref struct {
	Name     string `json:"name"`
	SHA      string `json:"sha"`
	Type     string `json:"type"`
	Upstream string `json:"upstream,omitempty"`
}

// ForEachRefFormat streams for-each-ref output in a caller-supplied
// format, one record per line, matching all refs when no pattern is
// given.
func ForEachRefFormat(format string, patterns ...string) (string, error) {
	args := []string{"for-each-ref", "--format=" + format}
	args = append(args, patterns...)
	return Run(args...)
}

// ForEachRef lists references matching the given patterns, all refs
// when none are given.
func ForEachRef(patterns ...string) ([]Ref, error) {
	args := []string{
		"for-each-ref",
		"--format=%(refname)%00%(objectname)%00%(objecttype)%00%(upstream:short)",
	}
	args = append(args, patterns...)
	out, err := Run(args...)
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}

	var refs []Ref
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Split(line, "\x00")
		if len(fields) < 3 {
			continue
		}
		ref := Ref{Name: fields[0], SHA: fields[1], Type: fields[2]}
		if len(fields) > 3 {
			ref.Upstream = fields[3]
		}
		refs = append(refs, ref)
	}
	return refs, nil
}
