package main

import (
	"ballistic-calculator/internal/chart"
	"ballistic-calculator/internal/config"
	"ballistic-calculator/internal/feedback"
	"ballistic-calculator/internal/form"
	"ballistic-calculator/internal/solver"
	"ballistic-calculator/internal/ui"
	"bytes"
	"context"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/labstack/gommon/log"
	"gonum.org/v1/plot/vg"
)

const (
	SIDEBAR_WIDTH = 300
	FIELD_HEIGHT  = 26
	FIELD_SPACING = 48
	PLOT_FILE     = "trajectory.png"
)

type Game struct {
	width, height int
	cfg           *config.Config
	form          *form.Form

	inputs        map[form.FieldID]*ui.TextInput
	feedbackInput *ui.TextInput
	toggles       []*ui.Toggle

	plotImage    *ebiten.Image
	plotSolution *solver.TrajectorySolution

	feedback     *feedback.Client
	sending      bool
	feedbackDone chan error
}

func NewGame(cfg *config.Config) *Game {
	game := &Game{
		width:        cfg.Window.Width,
		height:       cfg.Window.Height,
		cfg:          cfg,
		form:         form.New(cfg.Policy(), cfg.FixedTarget()),
		inputs:       make(map[form.FieldID]*ui.TextInput),
		feedback:     feedback.NewClient(cfg.Feedback.WebhookURL),
		feedbackDone: make(chan error, 1),
	}

	for i, id := range game.form.Order {
		id := id
		game.inputs[id] = ui.NewNumberInput(form.FieldLabelMap[id], 10, 40+i*FIELD_SPACING, SIDEBAR_WIDTH-20, FIELD_HEIGHT,
			func(text string) {
				if text != "" {
					// Set logs and records its own errors.
					_ = game.form.Set(id, text)
				}
			},
			func(n int) { game.form.Step(id, n) },
			func() string { return game.form.Fields[id].Text() },
		)
	}

	toggleY := 40 + len(game.form.Order)*FIELD_SPACING
	game.toggles = []*ui.Toggle{
		ui.NewToggle("[K] Show km/h (+Mach)", 10, toggleY,
			func() bool { return game.form.Unit == solver.KilometersPerHour },
			game.form.ToggleUnit),
		ui.NewToggle("[T] Enter target position", 10, toggleY+24,
			func() bool { return game.form.UseTarget },
			game.form.ToggleTarget),
	}

	game.feedbackInput = ui.NewTextInput("[F] Feedback (Enter to send)", SIDEBAR_WIDTH+10, cfg.Window.Height-48, cfg.Window.Width-SIDEBAR_WIDTH-20, 30, func(text string) {
		game.form.Feedback = text
		game.sendFeedback()
	})
	game.feedbackInput.Placeholder = func() string { return game.form.Feedback }

	game.form.Solve()
	return game
}

func (g *Game) Update() error {
	// Widgets first, so the key that focuses a field is not typed into it.
	for _, id := range g.form.Visible() {
		g.inputs[id].Update()
	}
	g.feedbackInput.Update()
	g.handleInput()

	select {
	case err := <-g.feedbackDone:
		g.sending = false
		if err != nil {
			log.Printf("Feedback failed: %v", err)
			g.form.AddMessage("Sending failed.", true)
		} else {
			g.form.ClearFeedback()
			g.form.AddMessage("Feedback sent. Thank you!", false)
		}
	default:
	}

	if g.form.Last != g.plotSolution {
		g.refreshPlot()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0, 0, 0, 255})

	vector.DrawFilledRect(screen, 0, 0, SIDEBAR_WIDTH, float32(g.height), color.RGBA{30, 30, 40, 255}, false)
	ebitenutil.DebugPrintAt(screen, "Trajectory calculation", 10, 6)

	for _, id := range g.form.Visible() {
		g.inputs[id].Draw(screen)
	}
	for _, t := range g.toggles {
		t.Draw(screen)
	}

	if g.plotImage != nil {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(SIDEBAR_WIDTH+10, 10)
		screen.DrawImage(g.plotImage, op)
	}

	g.drawResults(screen)
	g.feedbackInput.Draw(screen)

	help := "[R] Reset  [P] Save plot  Up/Down: step active field"
	ebitenutil.DebugPrintAt(screen, help, 10, g.height-20)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return g.width, g.height
}

func (g *Game) activeInput() *ui.TextInput {
	if g.feedbackInput.IsActive {
		return g.feedbackInput
	}
	for _, id := range g.form.Visible() {
		if g.inputs[id].IsActive {
			return g.inputs[id]
		}
	}
	return nil
}

func (g *Game) handleInput() {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()

		g.deactivateAll()
		for _, id := range g.form.Visible() {
			if g.inputs[id].IsClicked(x, y) {
				g.inputs[id].Activate()
				return
			}
		}
		if g.feedbackInput.IsClicked(x, y) {
			g.feedbackInput.Activate()
			return
		}
		for _, t := range g.toggles {
			if t.HandleClick(x, y) {
				return
			}
		}
	}

	// Shortcuts only apply while no field is being edited.
	if g.activeInput() != nil {
		return
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyK):
		g.form.ToggleUnit()
	case inpututil.IsKeyJustPressed(ebiten.KeyT):
		g.form.ToggleTarget()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.form.Reset()
		g.form.Solve()
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		g.feedbackInput.Activate()
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		g.savePlot()
	}
}

func (g *Game) deactivateAll() {
	for _, in := range g.inputs {
		in.Deactivate()
	}
	g.feedbackInput.Deactivate()
}

func (g *Game) plotSize() (vg.Length, vg.Length) {
	w := g.width - SIDEBAR_WIDTH - 20
	h := g.height - 250
	// The png canvas renders at 96 dpi.
	return vg.Length(w) * vg.Inch / 96, vg.Length(h) * vg.Inch / 96
}

func (g *Game) refreshPlot() {
	g.plotSolution = g.form.Last
	if g.form.Last == nil {
		g.plotImage = nil
		return
	}

	w, h := g.plotSize()
	img, err := chart.Render(g.form.Last, w, h)
	if err != nil {
		log.Warnf("Plot failed: %v", err)
		g.plotImage = nil
		return
	}
	g.plotImage = ebiten.NewImageFromImage(img)
}

func (g *Game) savePlot() {
	if g.form.Last == nil {
		g.form.AddMessage("Nothing to save.", true)
		return
	}
	w, h := g.plotSize()
	if err := chart.Save(g.form.Last, PLOT_FILE, w, h); err != nil {
		log.Printf("Save plot: %v", err)
		g.form.AddMessage("Could not save the plot.", true)
		return
	}
	g.form.AddMessage("Plot saved to "+PLOT_FILE, false)
}

func (g *Game) sendFeedback() {
	if g.sending {
		g.form.AddMessage("Still sending previous feedback.", true)
		return
	}

	msg := feedback.Message{Text: g.form.Feedback, Filename: PLOT_FILE}
	if g.form.Last != nil {
		buf := new(bytes.Buffer)
		w, h := g.plotSize()
		if err := chart.WritePNG(buf, g.form.Last, w, h); err != nil {
			log.Warnf("Feedback image: %v", err)
		} else {
			msg.Image = buf.Bytes()
		}
	}

	g.sending = true
	timeout := g.cfg.Feedback.Timeout
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		g.feedbackDone <- g.feedback.Send(ctx, msg)
	}()
}

func (g *Game) drawResults(screen *ebiten.Image) {
	x := SIDEBAR_WIDTH + 10
	y := g.height - 230

	ebitenutil.DebugPrintAt(screen, "Results", x, y)
	for i, line := range g.form.ResultLines() {
		ebitenutil.DebugPrintAt(screen, "- "+line, x, y+20+i*16)
	}

	logX := x + (g.width-SIDEBAR_WIDTH)/2
	ebitenutil.DebugPrintAt(screen, "Messages", logX, y)
	start := len(g.form.Log) - 6
	if start < 0 {
		start = 0
	}
	for i, msg := range g.form.Log[start:] {
		prefix := "  "
		if msg.IsError {
			prefix = "! "
		}
		line := prefix + msg.Timestamp.Format("15:04:05") + " " + msg.Text
		ebitenutil.DebugPrintAt(screen, line, logX, y+20+i*16)
	}

	if g.sending {
		ebitenutil.DebugPrintAt(screen, "Sending feedback...", x, g.height-66)
	}
}

func parseLevel(level string) log.Lvl {
	switch strings.ToLower(level) {
	case "debug":
		return log.DEBUG
	case "warn":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	default:
		return log.INFO
	}
}

func main() {
	path := os.Getenv("BALLISTIC_CONFIG")
	if path == "" {
		path = "config.yaml"
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		log.Fatal(err)
	}
	log.SetLevel(parseLevel(cfg.Log.Level))
	log.Printf("Solver policy: max angle %s deg, g %s m/s^2",
		strconv.FormatFloat(cfg.Solver.MaxAngleDeg, 'f', -1, 64),
		strconv.FormatFloat(cfg.Solver.Gravity, 'f', -1, 64))

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetVsyncEnabled(true)

	game := NewGame(cfg)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
