package menu

import "strings"

// Command is one palette entry.
type Command struct {
	ID       string
	Label    string
	Keywords []string
	// Href is the navigation target, empty for actions.
	Href string
}

// Group is a headed list of commands.
type Group struct {
	Heading  string
	Commands []Command
}

// PaletteResult reports the effect of a palette key press.
type PaletteResult struct {
	Handled  bool
	Selected *Command
	Closed   bool
}

// Palette is a grouped command menu filtered by a query. Focus indexes the
// flattened list of matching commands and wraps around. A Palette is not
// safe for concurrent use.
type Palette struct {
	groups []Group
	open   bool
	query  string
	focus  int
}

// NewPalette builds a closed palette.
func NewPalette(groups []Group) *Palette {
	return &Palette{groups: groups}
}

// IsOpen reports whether the palette is shown.
func (p *Palette) IsOpen() bool { return p.open }

// Query returns the current filter text.
func (p *Palette) Query() string { return p.query }

// Open shows the palette with an empty query.
func (p *Palette) Open() {
	p.open = true
	p.query = ""
	p.focus = 0
}

// Close hides the palette.
func (p *Palette) Close() {
	p.open = false
}

// Toggle flips the palette, as the Ctrl+K shortcut does.
func (p *Palette) Toggle() {
	if p.open {
		p.Close()
		return
	}
	p.Open()
}

// SetQuery filters the commands and focuses the first match.
func (p *Palette) SetQuery(q string) {
	p.query = q
	p.focus = 0
}

// SetFocus moves focus to the n-th match, clamped to the matches.
func (p *Palette) SetFocus(n int) {
	count := len(p.Matches())
	switch {
	case count == 0 || n < 0:
		n = 0
	case n >= count:
		n = count - 1
	}
	p.focus = n
}

// FocusIndex returns the focused position within Matches.
func (p *Palette) FocusIndex() int { return p.focus }

func (c Command) matches(q string) bool {
	if q == "" {
		return true
	}
	q = strings.ToLower(q)
	if strings.Contains(strings.ToLower(c.Label), q) {
		return true
	}
	for _, kw := range c.Keywords {
		if strings.Contains(strings.ToLower(kw), q) {
			return true
		}
	}
	return false
}

// Groups returns the groups with at least one matching command.
func (p *Palette) Groups() []Group {
	q := strings.TrimSpace(p.query)
	var out []Group
	for _, g := range p.groups {
		var cmds []Command
		for _, c := range g.Commands {
			if c.matches(q) {
				cmds = append(cmds, c)
			}
		}
		if len(cmds) > 0 {
			out = append(out, Group{Heading: g.Heading, Commands: cmds})
		}
	}
	return out
}

// Matches returns the matching commands in group order.
func (p *Palette) Matches() []Command {
	var out []Command
	for _, g := range p.Groups() {
		out = append(out, g.Commands...)
	}
	return out
}

// Empty reports that the query matches nothing.
func (p *Palette) Empty() bool {
	return len(p.Matches()) == 0
}

// Focused returns the focused command.
func (p *Palette) Focused() (Command, bool) {
	matches := p.Matches()
	if p.focus < 0 || p.focus >= len(matches) {
		return Command{}, false
	}
	return matches[p.focus], true
}

// HandleKey applies a key press.
func (p *Palette) HandleKey(k Key) PaletteResult {
	if k == KeyCommand {
		p.Toggle()
		return PaletteResult{Handled: true, Closed: !p.open}
	}
	if !p.open {
		return PaletteResult{}
	}
	count := len(p.Matches())
	switch k {
	case KeyEscape:
		p.Close()
		return PaletteResult{Handled: true, Closed: true}
	case KeyArrowDown:
		if count > 0 {
			p.focus = (p.focus + 1) % count
		}
	case KeyArrowUp:
		if count > 0 {
			p.focus = (p.focus - 1 + count) % count
		}
	case KeyHome:
		p.focus = 0
	case KeyEnd:
		p.focus = max(count-1, 0)
	case KeyEnter:
		cmd, ok := p.Focused()
		if !ok {
			return PaletteResult{Handled: true}
		}
		p.Close()
		return PaletteResult{Handled: true, Selected: &cmd, Closed: true}
	default:
		return PaletteResult{}
	}
	return PaletteResult{Handled: true}
}
