package report

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/themes/pkg/types"
)

// Parse reads a text report back into PIDs. Comment and blank lines are skipped. Each other
// line is split on its first comma and last semicolon, so titles may contain
// either. The numeric suffix of every PID must equal the abstract ID.
func Parse(r io.Reader) ([]types.PaperID, error) {
	var out []types.PaperID
	seen := make(map[int]int)

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		pid, err := parseLine(text, line)
		if err != nil {
			return nil, err
		}
		if prev, ok := seen[pid.AbstractID]; ok {
			return nil, &types.DataConsistencyError{
				AbstractID: pid.AbstractID,
				Line:       line,
				Reason:     fmt.Sprintf("already listed on line %d", prev),
			}
		}
		seen[pid.AbstractID] = line
		out = append(out, pid)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	return out, nil
}

func parseLine(text string, line int) (types.PaperID, error) {
	idPart, rest, ok := strings.Cut(text, ",")
	if !ok {
		return types.PaperID{}, &types.InvalidInputError{Line: line, Reason: "missing comma after abstract id"}
	}
	semi := strings.LastIndex(rest, ";")
	if semi < 0 {
		return types.PaperID{}, &types.InvalidInputError{Line: line, Reason: "missing semicolon before PID"}
	}

	id, err := strconv.Atoi(strings.TrimSpace(idPart))
	if err != nil || id <= 0 {
		return types.PaperID{}, &types.InvalidInputError{Line: line, Reason: fmt.Sprintf("bad abstract id %q", strings.TrimSpace(idPart))}
	}

	title := strings.TrimSpace(rest[:semi])
	if len(title) >= 2 && strings.HasPrefix(title, `"`) && strings.HasSuffix(title, `"`) {
		title = title[1 : len(title)-1]
	}

	pid := strings.TrimSpace(rest[semi+1:])
	suffix, err := pidSuffix(pid)
	if err != nil {
		return types.PaperID{}, &types.InvalidInputError{AbstractID: id, Line: line, Reason: err.Error()}
	}
	if suffix != id {
		return types.PaperID{}, &types.DataConsistencyError{
			AbstractID: id,
			Line:       line,
			Reason:     fmt.Sprintf("PID %s does not end in the abstract id", pid),
		}
	}

	return types.PaperID{AbstractID: id, Title: title, PID: pid}, nil
}

// pidSuffix validates the shape {letter}{index}-{id} and returns id.
func pidSuffix(pid string) (int, error) {
	head, tail, ok := strings.Cut(pid, "-")
	if !ok || len(head) < 2 || head[0] < 'A' || head[0] > 'Z' {
		return 0, fmt.Errorf("malformed PID %q", pid)
	}
	if _, err := strconv.Atoi(head[1:]); err != nil {
		return 0, fmt.Errorf("malformed PID %q", pid)
	}
	n, err := strconv.Atoi(tail)
	if err != nil {
		return 0, fmt.Errorf("malformed PID %q", pid)
	}
	return n, nil
}
