package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const rotateStep = 0.1

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Viewer is an interactive turntable for a particle scene.
type Viewer struct {
	scene    *Scene
	cam      *Camera
	canvas   *Canvas
	title    string
	axes     bool
	spinning bool
	visible  int
}

func NewViewer(scene *Scene, title string, width, height int) Viewer {
	v := Viewer{
		scene:  scene,
		cam:    NewCamera(),
		canvas: NewCanvas(width, height),
		title:  title,
		axes:   true,
	}
	v.draw()
	return v
}

func (v Viewer) Init() tea.Cmd { return nil }

func (v Viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return v, tea.Quit
		case "left", "h":
			v.cam.RotateY(-rotateStep)
		case "right", "l":
			v.cam.RotateY(rotateStep)
		case "up", "k":
			v.cam.RotateX(-rotateStep)
		case "down", "j":
			v.cam.RotateX(rotateStep)
		case "+", "=":
			v.cam.ZoomIn()
		case "-", "_":
			v.cam.ZoomOut()
		case "a":
			v.axes = !v.axes
		case "r":
			v.cam = NewCamera()
		case " ":
			v.spinning = !v.spinning
			if v.spinning {
				v.draw()
				return v, tick()
			}
		}
	case tea.WindowSizeMsg:
		w, h := msg.Width-4, msg.Height-7
		if w > 0 && h > 0 {
			v.canvas = NewCanvas(w, h)
		}
	case tickMsg:
		if !v.spinning {
			return v, nil
		}
		v.cam.RotateY(rotateStep / 3)
		v.draw()
		return v, tick()
	}
	v.draw()
	return v, nil
}

func (v *Viewer) draw() {
	v.visible = Render(v.canvas, v.scene, v.cam, v.axes)
}

func (v Viewer) View() string {
	var b strings.Builder
	b.WriteString(Title.Render(v.title))
	b.WriteByte('\n')
	b.WriteString(Panel.Render(Dots.Render(strings.TrimRight(v.canvas.String(), "\n"))))
	b.WriteByte('\n')

	status := []string{
		Metric("particles", fmt.Sprintf("%d/%d", v.visible, len(v.scene.Points))),
		Metric("pitch", fmt.Sprintf("%.0f°", v.cam.RotX*180/math.Pi)),
		Metric("yaw", fmt.Sprintf("%.0f°", v.cam.RotY*180/math.Pi)),
		Metric("zoom", fmt.Sprintf("%.2fx", v.cam.Zoom)),
	}
	b.WriteString(strings.Join(status, "  "))
	b.WriteByte('\n')
	if len(v.scene.Points) == 0 {
		b.WriteString(Warning.Render("no particles selected"))
		b.WriteByte('\n')
	}
	b.WriteString(KeyHint.Render("arrows/hjkl rotate  +/- zoom  a axes  space spin  r reset  q quit"))
	return b.String()
}

// RunViewer blocks until the user quits the viewer.
func RunViewer(v Viewer) error {
	_, err := tea.NewProgram(v, tea.WithAltScreen()).Run()
	return err
}
