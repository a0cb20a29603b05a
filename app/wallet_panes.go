package app

import (
	"fmt"
	"strings"
	"time"

	tslc "github.com/NimbleMarkets/ntcharts/linechart/timeserieslinechart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/gagliardetto/solana-go"

	"github.com/jask/soldash/core"
	"github.com/jask/soldash/core/widgets"
	"github.com/jask/soldash/internal/service"
	"github.com/jask/soldash/internal/units"
)

// ConnectionPane shows wallet status and owns connect and disconnect.
type ConnectionPane struct {
	core.BasePane
	deps *Deps
}

func NewConnectionPane(spec core.PaneSpec, deps *Deps) *ConnectionPane {
	return &ConnectionPane{BasePane: core.BasePaneFrom(spec), deps: deps}
}

// Init announces a wallet that was connected before the program started.
func (p *ConnectionPane) Init() tea.Cmd {
	if pk, ok := p.deps.identity(); ok {
		return emit(walletConnectedMsg{identity: pk})
	}
	return nil
}

func (p *ConnectionPane) Update(msg tea.Msg) tea.Cmd {
	action, ok := msg.(core.ActionMsg)
	if !ok {
		return nil
	}
	switch action.Action {
	case "connect":
		return connectWallet(p.deps)
	case "disconnect":
		return disconnectWallet(p.deps)
	case "refresh":
		return emit(refreshRequestMsg{})
	}
	return nil
}

func (p *ConnectionPane) View(width, height int, selected, focused bool) string {
	contentWidth := max(1, width-4)
	cluster := p.deps.Config.Network.ClusterLabel
	if cluster == "" {
		cluster = p.deps.Config.Network.RPCEndpoint
	}
	lines := []string{}
	pk, ok := p.deps.identity()
	if ok {
		lines = append(lines,
			labelStyle.Render("Status   ")+successStyle.Render("Connected"),
			labelStyle.Render("Address  ")+textStyle.Render(pk.String()),
			labelStyle.Render("Network  ")+textStyle.Render(cluster),
		)
	} else {
		lines = append(lines,
			labelStyle.Render("Status   ")+warnStyle.Render("Not connected"),
			labelStyle.Render("Network  ")+textStyle.Render(cluster),
			"",
			placeholder(contentWidth),
		)
	}
	for i := range lines {
		lines[i] = ansi.Truncate(lines[i], contentWidth, "…")
	}
	hint := "c connect"
	if ok {
		hint = "d disconnect · r refresh"
	}
	return widgets.Pane{Title: p.PaneTitle, Height: height, Content: strings.Join(lines, "\n"), Hint: hint, Selected: selected, Focused: focused}.Render(width, height)
}

type balanceState struct {
	raw     uint64
	loaded  bool
	loading bool
}

// BalancesPane lists one row per tracked asset. Each asset loads on its own.
type BalancesPane struct {
	core.BasePane
	deps   *Deps
	owner  solana.PublicKey
	states map[string]*balanceState
}

func NewBalancesPane(spec core.PaneSpec, deps *Deps) *BalancesPane {
	p := &BalancesPane{BasePane: core.BasePaneFrom(spec), deps: deps}
	p.reset()
	return p
}

func (p *BalancesPane) reset() {
	p.owner = solana.PublicKey{}
	p.states = make(map[string]*balanceState, len(p.deps.Assets))
	for _, a := range p.deps.Assets {
		p.states[a.ID()] = &balanceState{}
	}
}

// Init starts the optional periodic refresh.
func (p *BalancesPane) Init() tea.Cmd {
	return p.scheduleTick()
}

func (p *BalancesPane) scheduleTick() tea.Cmd {
	every := p.deps.Config.UI.RefreshInterval
	if every <= 0 {
		return nil
	}
	return tea.Tick(every, func(time.Time) tea.Msg { return refreshTickMsg{} })
}

func (p *BalancesPane) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case walletConnectedMsg:
		p.reset()
		return p.refresh()
	case walletDisconnectedMsg:
		p.reset()
		return nil
	case refreshRequestMsg:
		return p.refresh()
	case refreshTickMsg:
		return tea.Batch(p.refresh(), p.scheduleTick())
	case core.ActionMsg:
		if msg.Action == "refresh" {
			return p.refresh()
		}
	case balanceLoadedMsg:
		return p.apply(msg)
	}
	return nil
}

// refresh launches one fetch per asset. A fetch that is still running is not
// started twice.
func (p *BalancesPane) refresh() tea.Cmd {
	owner, ok := p.deps.identity()
	if !ok {
		return nil
	}
	if owner != p.owner {
		p.reset()
		p.owner = owner
	}
	cmds := make([]tea.Cmd, 0, len(p.deps.Assets))
	for _, asset := range p.deps.Assets {
		st := p.states[asset.ID()]
		if st.loading {
			continue
		}
		st.loading = true
		cmds = append(cmds, fetchBalance(p.deps, owner, asset))
	}
	return tea.Batch(cmds...)
}

func fetchBalance(d *Deps, owner solana.PublicKey, asset service.Asset) tea.Cmd {
	return func() tea.Msg {
		raw, err := d.Balances.Fetch(d.context(), owner, asset)
		return balanceLoadedMsg{owner: owner, assetID: asset.ID(), raw: raw, at: d.now(), err: err}
	}
}

func (p *BalancesPane) apply(msg balanceLoadedMsg) tea.Cmd {
	current, ok := p.deps.identity()
	if !ok || current != msg.owner || p.owner != msg.owner {
		return nil
	}
	st, ok := p.states[msg.assetID]
	if !ok {
		return nil
	}
	st.loading = false
	if msg.err != nil {
		return core.ErrorCmd(fmt.Errorf("%s balance: %w", p.symbol(msg.assetID), msg.err))
	}
	st.raw, st.loaded = msg.raw, true
	return nil
}

func (p *BalancesPane) symbol(id string) string {
	for _, a := range p.deps.Assets {
		if a.ID() == id {
			return a.Symbol
		}
	}
	return id
}

// Display returns the shown value of an asset, "--" until the first load.
func (p *BalancesPane) Display(asset service.Asset) string {
	st := p.states[asset.ID()]
	if st == nil || !st.loaded {
		return "--"
	}
	return service.Display(asset, st.raw)
}

// Loading reports whether a fetch for asset is in flight.
func (p *BalancesPane) Loading(asset service.Asset) bool {
	st := p.states[asset.ID()]
	return st != nil && st.loading
}

func (p *BalancesPane) View(width, height int, selected, focused bool) string {
	contentWidth := max(1, width-4)
	var content string
	if !p.deps.connected() {
		content = placeholder(contentWidth)
	} else {
		symWidth := 6
		for _, a := range p.deps.Assets {
			symWidth = max(symWidth, len(a.Symbol)+1)
		}
		lines := make([]string, 0, len(p.deps.Assets))
		for _, a := range p.deps.Assets {
			value := p.Display(a)
			status := ""
			if p.Loading(a) {
				status = mutedStyle.Render("  loading…")
			}
			row := labelStyle.Render(fmt.Sprintf("%-*s", symWidth, a.Symbol)) +
				accentStyle.Render(fmt.Sprintf("%14s", value)) + status
			lines = append(lines, ansi.Truncate(row, contentWidth, "…"))
		}
		content = strings.Join(lines, "\n")
	}
	return widgets.Pane{Title: p.PaneTitle, Height: height, Content: content, Hint: "r refresh", Selected: selected, Focused: focused}.Render(width, height)
}

// historyLimit caps the samples kept for the chart.
const historyLimit = 120

// HistoryPane charts native balance samples taken this session.
type HistoryPane struct {
	core.BasePane
	deps    *Deps
	samples []tslc.TimePoint
}

func NewHistoryPane(spec core.PaneSpec, deps *Deps) *HistoryPane {
	return &HistoryPane{BasePane: core.BasePaneFrom(spec), deps: deps}
}

func (p *HistoryPane) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case walletConnectedMsg, walletDisconnectedMsg:
		p.samples = nil
	case balanceLoadedMsg:
		if msg.err != nil || msg.assetID != p.deps.nativeAsset().ID() {
			return nil
		}
		if current, ok := p.deps.identity(); !ok || current != msg.owner {
			return nil
		}
		native := p.deps.nativeAsset()
		value, _ := units.FromBaseUnits(msg.raw, int32(native.Decimals)).Float64()
		p.samples = append(p.samples, tslc.TimePoint{Time: msg.at, Value: value})
		if len(p.samples) > historyLimit {
			p.samples = p.samples[len(p.samples)-historyLimit:]
		}
	case core.ActionMsg:
		if msg.Action == "refresh" {
			return emit(refreshRequestMsg{})
		}
	}
	return nil
}

// Samples returns the recorded points, oldest first.
func (p *HistoryPane) Samples() []tslc.TimePoint {
	return p.samples
}

func (p *HistoryPane) View(width, height int, selected, focused bool) string {
	contentWidth := max(1, width-4)
	innerHeight := max(1, height-3)
	var content string
	switch {
	case !p.deps.connected():
		content = placeholder(contentWidth)
	case len(p.samples) < 2:
		content = mutedStyle.Render("Collecting samples. Press r to refresh.")
	default:
		content = p.renderChart(contentWidth, innerHeight)
	}
	title := p.PaneTitle
	if n := len(p.samples); n > 0 {
		title = fmt.Sprintf("%s (%d samples)", p.PaneTitle, n)
	}
	return widgets.Pane{Title: title, Height: height, Content: content, Selected: selected, Focused: focused}.Render(width, height)
}

func (p *HistoryPane) renderChart(width, height int) string {
	start, end := p.samples[0].Time, p.samples[len(p.samples)-1].Time
	if !end.After(start) {
		end = start.Add(time.Second)
	}
	lo, hi := p.samples[0].Value, p.samples[0].Value
	for _, s := range p.samples {
		lo, hi = min(lo, s.Value), max(hi, s.Value)
	}
	if hi-lo < 1e-9 {
		lo, hi = lo-1, hi+1
	}
	pad := (hi - lo) * 0.1
	lo, hi = max(0, lo-pad), hi+pad

	chart := tslc.New(max(10, width), max(3, height))
	chart.SetStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1")))
	chart.AxisStyle = mutedStyle
	chart.LabelStyle = mutedStyle
	chart.SetTimeRange(start, end)
	chart.SetViewTimeRange(start, end)
	chart.SetYRange(lo, hi)
	chart.SetViewYRange(lo, hi)
	for _, s := range p.samples {
		chart.Push(s)
	}
	chart.DrawBraille()
	return chart.View()
}
