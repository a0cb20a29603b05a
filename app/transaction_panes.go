package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/gagliardetto/solana-go"

	"github.com/jask/soldash/core"
	"github.com/jask/soldash/core/widgets"
	"github.com/jask/soldash/internal/service"
	"github.com/jask/soldash/internal/units"
)

// AirdropPane requests test SOL from the faucet. It is never focused; enter
// on the selected pane fires the request.
type AirdropPane struct {
	core.BasePane
	deps     *Deps
	inFlight bool
}

func NewAirdropPane(spec core.PaneSpec, deps *Deps) *AirdropPane {
	return &AirdropPane{BasePane: core.BasePaneFrom(spec), deps: deps}
}

// InFlight reports whether a request is pending.
func (p *AirdropPane) InFlight() bool { return p.inFlight }

func (p *AirdropPane) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case core.ActionMsg:
		if msg.Action == "airdrop" {
			return p.request()
		}
	case airdropRequestMsg:
		return p.request()
	case airdropDoneMsg:
		p.inFlight = false
		if msg.err != nil {
			if quietError(msg.err) {
				return nil
			}
			return failCmd("Airdrop", msg.err)
		}
		return tea.Batch(
			core.StatusCmd(fmt.Sprintf("Airdrop of %s %s confirmed: %s", p.amount(), p.deps.nativeAsset().Symbol, shortSig(msg.sig))),
			emit(refreshRequestMsg{}),
		)
	}
	return nil
}

func (p *AirdropPane) request() tea.Cmd {
	if !p.deps.connected() || p.inFlight {
		return nil
	}
	p.inFlight = true
	d := p.deps
	return func() tea.Msg {
		sig, err := d.Transfers.RequestAirdrop(d.context())
		return airdropDoneMsg{sig: sig, err: err}
	}
}

func (p *AirdropPane) amount() string {
	return units.FormatTrimmed(p.deps.Config.Faucet.Lamports, int32(p.deps.nativeAsset().Decimals), 0)
}

func (p *AirdropPane) View(width, height int, selected, focused bool) string {
	contentWidth := max(1, width-4)
	var content string
	hint := ""
	switch {
	case !p.deps.connected():
		content = placeholder(contentWidth)
	case p.inFlight:
		content = warnStyle.Render("Requesting airdrop… waiting for confirmation")
	default:
		content = textStyle.Render(fmt.Sprintf("Request %s test %s from the %s faucet.", p.amount(), p.deps.nativeAsset().Symbol, p.deps.Config.Network.ClusterLabel))
		hint = "enter request airdrop"
	}
	return widgets.Pane{Title: p.PaneTitle, Height: height, Content: ansi.Truncate(content, contentWidth, "…"), Hint: hint, Selected: selected, Focused: focused}.Render(width, height)
}

const (
	fieldRecipient = iota
	fieldAmount
)

// SendPane is a transfer form for one asset. Each form has its own in-flight
// flag; forms never block each other.
type SendPane struct {
	core.BasePane
	deps     *Deps
	asset    service.Asset
	inputs   []textinput.Model
	field    int
	focused  bool
	inFlight bool
	pending  string
}

func NewSendPane(spec core.PaneSpec, deps *Deps, asset service.Asset) *SendPane {
	recipient := textinput.New()
	recipient.Prompt = "To     "
	recipient.Placeholder = "recipient address"
	recipient.CharLimit = 64
	amount := textinput.New()
	amount.Prompt = "Amount "
	amount.Placeholder = "0.0 " + asset.Symbol
	amount.CharLimit = 32
	return &SendPane{BasePane: core.BasePaneFrom(spec), deps: deps, asset: asset, inputs: []textinput.Model{recipient, amount}}
}

// CapturingInput reports whether typed keys belong to the form.
func (p *SendPane) CapturingInput() bool { return p.focused && p.deps.connected() }

// InFlight reports whether a transfer from this form is pending.
func (p *SendPane) InFlight() bool { return p.inFlight }

// Values returns the recipient and amount as typed.
func (p *SendPane) Values() (string, string) {
	return p.inputs[fieldRecipient].Value(), p.inputs[fieldAmount].Value()
}

// SetValues fills the form.
func (p *SendPane) SetValues(recipient, amount string) {
	p.inputs[fieldRecipient].SetValue(recipient)
	p.inputs[fieldAmount].SetValue(amount)
}

func (p *SendPane) OnFocus() tea.Cmd {
	p.focused = true
	return p.focusField(p.field)
}

func (p *SendPane) OnBlur() tea.Cmd {
	p.focused = false
	for i := range p.inputs {
		p.inputs[i].Blur()
	}
	return nil
}

func (p *SendPane) focusField(idx int) tea.Cmd {
	p.field = idx
	for i := range p.inputs {
		if i != idx {
			p.inputs[i].Blur()
		}
	}
	return p.inputs[idx].Focus()
}

func (p *SendPane) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case core.ActionMsg:
		switch msg.Action {
		case "next-field":
			if msg.Key.String() == "shift+tab" {
				return p.focusField((p.field + len(p.inputs) - 1) % len(p.inputs))
			}
			return p.focusField((p.field + 1) % len(p.inputs))
		case "submit":
			return p.submit()
		}
		return nil
	case transferDoneMsg:
		if msg.paneID != p.PaneID {
			return nil
		}
		return p.finish(msg)
	case tea.KeyMsg:
		if !p.focused || !p.deps.connected() {
			return nil
		}
		var cmd tea.Cmd
		p.inputs[p.field], cmd = p.inputs[p.field].Update(msg)
		return cmd
	}
	return nil
}

func (p *SendPane) submit() tea.Cmd {
	if !p.deps.connected() || p.inFlight {
		return nil
	}
	dest, qty := p.Values()
	if strings.TrimSpace(dest) == "" || strings.TrimSpace(qty) == "" {
		return nil
	}
	req := service.TransferRequest{Destination: dest, Quantity: qty, Asset: p.asset}
	p.inFlight = true
	p.pending = strings.TrimSpace(qty)
	d, id := p.deps, p.PaneID
	return func() tea.Msg {
		var (
			sig solana.Signature
			err error
		)
		if req.Asset.Native {
			sig, err = d.Transfers.SendNative(d.context(), req)
		} else {
			sig, err = d.Transfers.SendToken(d.context(), req)
		}
		return transferDoneMsg{paneID: id, amount: req.Quantity, symbol: req.Asset.Symbol, sig: sig, err: err}
	}
}

func (p *SendPane) finish(msg transferDoneMsg) tea.Cmd {
	p.inFlight = false
	p.pending = ""
	if msg.err != nil {
		if quietError(msg.err) {
			return nil
		}
		return failCmd("Send "+msg.symbol, msg.err)
	}
	for i := range p.inputs {
		p.inputs[i].Reset()
	}
	return tea.Batch(
		core.StatusCmd(fmt.Sprintf("Sent %s %s: %s", strings.TrimSpace(msg.amount), msg.symbol, shortSig(msg.sig))),
		emit(refreshRequestMsg{}),
	)
}

func (p *SendPane) View(width, height int, selected, focused bool) string {
	contentWidth := max(1, width-4)
	if !p.deps.connected() {
		return widgets.Pane{Title: p.PaneTitle, Height: height, Content: placeholder(contentWidth), Selected: selected, Focused: focused}.Render(width, height)
	}
	lines := make([]string, 0, len(p.inputs)+2)
	for i := range p.inputs {
		p.inputs[i].Width = max(1, contentWidth-ansi.StringWidth(p.inputs[i].Prompt)-1)
		lines = append(lines, p.inputs[i].View())
	}
	lines = append(lines, "")
	hint := "enter focus"
	switch {
	case p.inFlight:
		lines = append(lines, warnStyle.Render(fmt.Sprintf("Sending %s %s… waiting for confirmation", p.pending, p.asset.Symbol)))
		hint = ""
	case focused:
		hint = "tab next field · enter send · esc done"
	}
	if !p.asset.Native {
		lines = append(lines, mutedStyle.Render("mint "+p.asset.Mint.String()))
	}
	for i := range lines {
		lines[i] = ansi.Truncate(lines[i], contentWidth, "…")
	}
	return widgets.Pane{Title: p.PaneTitle, Height: height, Content: strings.Join(lines, "\n"), Hint: hint, Selected: selected, Focused: focused}.Render(width, height)
}
