package main

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/scale-codec/buffer"
	"github.com/wippyai/scale-codec/codec"
	"github.com/wippyai/scale-codec/extrinsic"
	"github.com/wippyai/scale-codec/metadata"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	itemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type browserState int

const (
	stateSelectPallet browserState = iota
	stateSelectItem
	stateInputArgs
	stateShowResult
)

type itemKind int

const (
	itemCall itemKind = iota
	itemStorage
	itemConstant
)

func (k itemKind) String() string {
	switch k {
	case itemCall:
		return "call"
	case itemStorage:
		return "storage"
	}
	return "constant"
}

// browserItem is one selectable call, storage entry or constant of a pallet.
type browserItem struct {
	call     *metadata.Function
	entry    *metadata.StorageEntry
	constant *metadata.Constant
	label    string
	params   []paramInfo
	kind     itemKind
}

type paramInfo struct {
	name    string
	typeStr string
}

type browserModel struct {
	err      error
	meta     *metadata.Metadata
	codec    *codec.Codec
	source   string
	result   string
	items    []browserItem
	inputs   []textinput.Model
	pallet   int
	selected int
	focusIdx int
	state    browserState
}

type resultMsg struct {
	err    error
	result string
}

func newBrowserModel(m *metadata.Metadata, c *codec.Codec, source string) *browserModel {
	return &browserModel{
		meta:   m,
		codec:  c,
		source: source,
		state:  stateSelectPallet,
	}
}

func (m *browserModel) Init() tea.Cmd {
	return nil
}

func (m *browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.state != stateInputArgs {
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateSelectPallet && m.pallet > 0 {
				m.pallet--
			}
			if m.state == stateSelectItem && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectPallet && m.pallet < len(m.meta.Pallets)-1 {
				m.pallet++
			}
			if m.state == stateSelectItem && m.selected < len(m.items)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectPallet:
				if len(m.meta.Pallets) > 0 {
					m.items = palletItems(m.meta.Pallets[m.pallet])
					m.selected = 0
					m.state = stateSelectItem
				}

			case stateSelectItem:
				if len(m.items) == 0 {
					return m, nil
				}
				m.prepareInputs()
				if len(m.inputs) == 0 {
					return m, m.run
				}
				m.state = stateInputArgs
				return m, nil

			case stateInputArgs:
				return m, m.run

			case stateShowResult:
				m.state = stateSelectItem
				m.result = ""
				m.err = nil
			}

		case "tab":
			if m.state == stateInputArgs && len(m.inputs) > 1 {
				m.inputs[m.focusIdx].Blur()
				m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
				m.inputs[m.focusIdx].Focus()
			}

		case "esc":
			switch m.state {
			case stateSelectItem:
				m.state = stateSelectPallet
				m.items = nil
			case stateInputArgs:
				m.state = stateSelectItem
				m.inputs = nil
			case stateShowResult:
				m.state = stateSelectItem
				m.result = ""
				m.err = nil
			}
		}

	case resultMsg:
		m.result = msg.result
		m.err = msg.err
		m.state = stateShowResult
	}

	if m.state == stateInputArgs {
		var cmds []tea.Cmd
		for i := range m.inputs {
			var cmd tea.Cmd
			m.inputs[i], cmd = m.inputs[i].Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func palletItems(p *metadata.Pallet) []browserItem {
	var items []browserItem
	for _, f := range p.Calls {
		item := browserItem{kind: itemCall, call: f, label: f.Name}
		for _, arg := range f.Args {
			item.params = append(item.params, paramInfo{name: arg.Name, typeStr: typeLabel(arg.Type, arg.TypeName)})
		}
		items = append(items, item)
	}
	for _, s := range p.Storage {
		item := browserItem{kind: itemStorage, entry: s, label: s.Name}
		for i, td := range s.Keys {
			name := ""
			if i < len(s.KeyNames) {
				name = s.KeyNames[i]
			}
			item.params = append(item.params, paramInfo{
				name:    fmt.Sprintf("key%d", i+1),
				typeStr: typeLabel(td, name),
			})
		}
		items = append(items, item)
	}
	for _, c := range p.Constants {
		items = append(items, browserItem{kind: itemConstant, constant: c, label: c.Name})
	}
	return items
}

func (m *browserModel) prepareInputs() {
	item := m.items[m.selected]
	m.inputs = make([]textinput.Model, len(item.params))
	for i, p := range item.params {
		ti := textinput.New()
		ti.Placeholder = p.typeStr
		ti.Prompt = p.name + ": "
		ti.Width = 40
		if i == 0 {
			ti.Focus()
		}
		m.inputs[i] = ti
	}
	m.focusIdx = 0
}

// run encodes the selected call, builds the storage key or decodes the
// constant, depending on the item kind.
func (m *browserModel) run() tea.Msg {
	item := m.items[m.selected]
	pallet := m.meta.Pallets[m.pallet]

	args := make([]any, len(m.inputs))
	for i, input := range m.inputs {
		v, err := parseValue(input.Value())
		if err != nil {
			return resultMsg{err: fmt.Errorf("%s: %w", item.params[i].name, err)}
		}
		args[i] = v
	}

	switch item.kind {
	case itemCall:
		named := make(map[string]any, len(args))
		for i, arg := range item.call.Args {
			named[arg.Name] = args[i]
		}
		call := extrinsic.Call{Module: pallet.Name, Function: item.call.Name, Args: named}
		td, err := m.meta.CallTypeDef()
		if err != nil {
			return resultMsg{err: err}
		}
		data, err := m.codec.Encode(td, call.Variant())
		if err != nil {
			return resultMsg{err: err}
		}
		return resultMsg{result: buffer.EncodeHex(data)}

	case itemStorage:
		key, err := item.entry.Key(m.codec, args...)
		if err != nil {
			return resultMsg{err: err}
		}
		return resultMsg{result: buffer.EncodeHex(key)}
	}

	v, err := m.meta.Constant(pallet.Name, item.constant.Name)
	if err != nil {
		return resultMsg{err: err}
	}
	var b bytes.Buffer
	if err := printValue(&b, v); err != nil {
		return resultMsg{err: err}
	}
	return resultMsg{result: strings.TrimRight(b.String(), "\n")}
}

func (m *browserModel) View() string {
	if len(m.meta.Pallets) == 0 {
		return "Metadata has no pallets.\n\nPress q to quit."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("SCALE Metadata"))
	b.WriteString(" ")
	b.WriteString(m.source)
	b.WriteString(fmt.Sprintf(" (v%d)", m.meta.Version))
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectPallet:
		b.WriteString("Select a pallet:\n\n")
		for i, p := range m.meta.Pallets {
			line := fmt.Sprintf("%3d %s  %s", p.Index, itemStyle.Render(p.Name),
				typeStyle.Render(fmt.Sprintf("%d calls, %d storage, %d constants",
					len(p.Calls), len(p.Storage), len(p.Constants))))
			writeLine(&b, line, i == m.pallet)
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter open • q quit"))

	case stateSelectItem:
		p := m.meta.Pallets[m.pallet]
		b.WriteString(fmt.Sprintf("%s:\n\n", itemStyle.Render(p.Name)))
		if len(m.items) == 0 {
			b.WriteString("No calls, storage or constants.\n")
		}
		for i, item := range m.items {
			writeLine(&b, m.formatItem(item), i == m.selected)
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter run • esc back • q quit"))

	case stateInputArgs:
		item := m.items[m.selected]
		b.WriteString(fmt.Sprintf("%s %s\n\n", item.kind, itemStyle.Render(item.label)))
		for i, input := range m.inputs {
			b.WriteString(input.View())
			b.WriteString(" ")
			b.WriteString(typeStyle.Render(item.params[i].typeStr))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("values are YAML • tab next field • enter run • esc back"))

	case stateShowResult:
		item := m.items[m.selected]
		b.WriteString(fmt.Sprintf("%s %s:\n\n", item.kind, itemStyle.Render(item.label)))
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(resultStyle.Render(m.result))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}

func writeLine(b *strings.Builder, line string, selected bool) {
	if selected {
		b.WriteString(selectedStyle.Render("> " + line))
	} else {
		b.WriteString("  " + line)
	}
	b.WriteString("\n")
}

func (m *browserModel) formatItem(item browserItem) string {
	var params []string
	for _, p := range item.params {
		params = append(params, p.name+": "+typeStyle.Render(p.typeStr))
	}
	switch item.kind {
	case itemCall:
		return itemStyle.Render(item.label) + "(" + strings.Join(params, ", ") + ")"
	case itemStorage:
		value := typeLabel(item.entry.Value, item.entry.ValueName)
		return "storage " + itemStyle.Render(item.label) + "(" + strings.Join(params, ", ") + ") -> " + typeStyle.Render(value)
	}
	return "const " + itemStyle.Render(item.label) + ": " + typeStyle.Render(typeLabel(item.constant.Type, item.constant.TypeName))
}

func runBrowser(meta *metadata.Metadata, c *codec.Codec, source string) error {
	p := tea.NewProgram(newBrowserModel(meta, c, source), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
