package core

import (
	"cmp"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"
	tea "github.com/charmbracelet/bubbletea"
)

type Command struct {
	ID          string
	Name        string
	Description string
	Scopes      []string
	Execute     func(m *Model) tea.Cmd
	Disabled    func(m *Model) (bool, string)
}

type CommandResult struct {
	CommandID string
	Name      string
	Desc      string
	Disabled  bool
	Reason    string
	distance  int
}

type CommandRegistry struct {
	commands map[string]Command
}

func NewCommandRegistry(cmds []Command) *CommandRegistry {
	reg := &CommandRegistry{commands: map[string]Command{}}
	for _, c := range cmds {
		reg.Register(c)
	}
	return reg
}

func (r *CommandRegistry) Register(c Command) {
	if c.ID == "" {
		return
	}
	r.commands[c.ID] = c
}

// maxTypoDistance bounds the edit distance accepted between the query and
// any single word of a command.
const maxTypoDistance = 2

// Search returns commands in scope matching query. A substring match wins;
// otherwise a word within a couple of edits of the query still matches.
func (r *CommandRegistry) Search(query, scope string, m *Model) []CommandResult {
	q := strings.ToLower(strings.TrimSpace(query))
	results := make([]CommandResult, 0, len(r.commands))
	for _, c := range r.commands {
		if !scopeMatch(scope, c.Scopes) {
			continue
		}
		dist, ok := matchCommand(c, q)
		if !ok {
			continue
		}
		res := CommandResult{CommandID: c.ID, Name: c.Name, Desc: c.Description, distance: dist}
		if c.Disabled != nil {
			res.Disabled, res.Reason = c.Disabled(m)
		}
		results = append(results, res)
	}
	slices.SortFunc(results, func(a, b CommandResult) int {
		if a.Disabled != b.Disabled {
			if !a.Disabled {
				return -1
			}
			return 1
		}
		if a.distance != b.distance {
			return cmp.Compare(a.distance, b.distance)
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return results
}

func matchCommand(c Command, q string) (int, bool) {
	if q == "" {
		return 0, true
	}
	hay := strings.ToLower(c.Name + " " + c.Description + " " + c.ID)
	if strings.Contains(hay, q) {
		return 0, true
	}
	if len([]rune(q)) < 3 {
		return 0, false
	}
	best := -1
	for _, word := range strings.FieldsFunc(hay, func(r rune) bool { return r == ' ' || r == '-' }) {
		d := levenshtein.ComputeDistance(q, word)
		if best < 0 || d < best {
			best = d
		}
	}
	if best < 0 || best > maxTypoDistance {
		return 0, false
	}
	return best, true
}

func (r *CommandRegistry) Execute(id string, m *Model) tea.Cmd {
	c, ok := r.commands[id]
	if !ok {
		return StatusCmd("Unknown command: " + id)
	}
	if c.Disabled != nil {
		disabled, reason := c.Disabled(m)
		if disabled {
			if reason == "" {
				reason = "command is disabled"
			}
			return StatusCmd(reason)
		}
	}
	if c.Execute == nil {
		return nil
	}
	return c.Execute(m)
}
