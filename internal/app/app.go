package app

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"wall-overlay/internal/calibrate"
	"wall-overlay/internal/camera"
	"wall-overlay/internal/config"
	"wall-overlay/internal/motion"
	"wall-overlay/internal/overlay"
	"wall-overlay/internal/snapshot"
	"wall-overlay/internal/ui"
	"wall-overlay/internal/units"
)

// Mode is the top-level application mode.
type Mode int

const (
	ModeCalibrate Mode = iota
	ModeOverlay
)

func (m Mode) label() string {
	if m == ModeOverlay {
		return "OVERLAY"
	}
	return "CALIBRATE"
}

// Nudge sizes for keyboard adjustments.
const (
	tiltStepDeg = 5.0
	pointStepPx = 5.0
	dialHeight  = 10
)

// shared holds state shared between the Bubble Tea model copies and main.go.
// Because Bubble Tea uses value receivers, pointer fields ensure all copies
// see the same underlying data.
type shared struct {
	session   *calibrate.Session
	transform *overlay.Transform
	filter    *motion.LevelFilter
	rollHist  *RollRing

	feed      camera.Feed
	motionSrc motion.Source
	saver     *snapshot.Saver

	program   *tea.Program
	motionsOn bool

	// Virtual screen dimensions: full-resolution camera frame pixels.
	// Set once by Start before the UI runs.
	screenW float64
	screenH float64
}

// AppModel is the root Bubble Tea model for the wall overlay viewfinder.
type AppModel struct {
	width  int
	height int

	mode     Mode
	demoMode bool
	device   string

	// Distance entry buffer, active while calibration waits for a distance.
	entryText string
	entryUnit int
	entryErr  string

	// Point adjustment after calibration.
	adjustMode  bool
	activePoint int

	// In-flight pan drag; dragCol/dragRow anchor the press in terminal cells.
	dragging bool
	dragCol  int
	dragRow  int

	camErr string
	notice string

	shared *shared
}

// New creates a new AppModel.
func New(feed camera.Feed, motionSrc motion.Source, saver *snapshot.Saver, demoMode bool, device string) AppModel {
	return AppModel{
		mode:     ModeCalibrate,
		demoMode: demoMode,
		device:   device,
		shared: &shared{
			session:   calibrate.NewSession(),
			transform: overlay.NewTransform(),
			filter:    motion.NewLevelFilter(),
			rollHist:  NewRollRing(config.RollHistorySize),
			feed:      feed,
			motionSrc: motionSrc,
			saver:     saver,
		},
	}
}

func (m AppModel) Init() tea.Cmd {
	return tickCmd()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.reclamp()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case TickMsg:
		return m, tickCmd()

	case MotionMsg:
		m.shared.filter.Update(msg.Sample)
		corr := m.shared.filter.Correction()
		m.shared.transform.SetAutoLevelAngle(corr)
		m.shared.rollHist.Push(corr)
		return m, nil

	case MotionErrorMsg:
		logrus.WithError(msg.Err).Warn("app: motion source failed")
		m.notice = "motion source failed, auto-level off"
		m.setAutoLevel(false)
		return m, nil

	case SnapshotMsg:
		if msg.Err != nil {
			logrus.WithError(msg.Err).Error("app: snapshot failed")
			m.notice = "snapshot failed: " + msg.Err.Error()
		} else {
			logrus.WithField("path", msg.Path).Info("app: snapshot saved")
			m.notice = "saved " + msg.Path
		}
		return m, nil
	}

	return m, nil
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode == ModeCalibrate && m.distanceEntryActive() {
		return m.handleEntryKey(msg)
	}

	switch msg.String() {
	case "q", "Q", "ctrl+c":
		m.shutdown()
		return m, tea.Quit

	case "c", "C":
		m.recalibrate()
		return m, nil

	case "r", "R":
		if m.mode == ModeCalibrate {
			m.shared.session.Reset()
			m.entryText = ""
			m.entryErr = ""
		}
		return m, nil
	}

	if m.mode != ModeOverlay {
		return m, nil
	}

	switch msg.String() {
	case "h":
		m.shared.transform.NudgeTilts(-tiltStepDeg, 0)
	case "H":
		m.shared.transform.NudgeTilts(tiltStepDeg, 0)
	case "j":
		m.shared.transform.NudgeTilts(0, -tiltStepDeg)
	case "J":
		m.shared.transform.NudgeTilts(0, tiltStepDeg)
	case "0":
		m.shared.transform.ResetHorizontalTilt()
		m.shared.transform.ResetVerticalTilt()

	case "a", "A":
		m.setAutoLevel(!m.shared.transform.AutoLevel())

	case "g", "G":
		m.shared.transform.ToggleGrid()
	case "l", "L":
		m.shared.transform.ToggleLabels()
	case "t", "T":
		m.shared.transform.CycleTint()

	case "e", "E":
		m.adjustMode = !m.adjustMode
		m.activePoint = 0

	case "tab":
		if m.adjustMode {
			m.activePoint = 1 - m.activePoint
		}
	case "1":
		if m.adjustMode {
			m.activePoint = 0
		}
	case "2":
		if m.adjustMode {
			m.activePoint = 1
		}
	case "up":
		m.nudgePoint(0, -pointStepPx)
	case "down":
		m.nudgePoint(0, pointStepPx)
	case "left":
		m.nudgePoint(-pointStepPx, 0)
	case "right":
		m.nudgePoint(pointStepPx, 0)

	case "esc":
		m.adjustMode = false

	case "x", "X":
		if m.shared.session.IsCalibrated() {
			return m, m.snapshotCmd()
		}
	}

	return m, nil
}

// handleEntryKey edits the distance buffer while calibration waits for the
// real-world distance.
func (m AppModel) handleEntryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.shutdown()
		return m, tea.Quit

	case "enter":
		m.confirmDistance()

	case "esc":
		m.shared.session.Reset()
		m.entryText = ""
		m.entryErr = ""

	case "u", "U":
		m.entryUnit = (m.entryUnit + 1) % len(units.All)
		m.entryErr = ""

	case "backspace":
		if len(m.entryText) > 0 {
			m.entryText = m.entryText[:len(m.entryText)-1]
		}
		m.entryErr = ""

	default:
		s := msg.String()
		if len(s) == 1 && (s[0] >= '0' && s[0] <= '9' || s[0] == '.') {
			if len(m.entryText) < 8 {
				m.entryText += s
				m.entryErr = ""
			}
		}
	}

	return m, nil
}

// confirmDistance validates the entry buffer and hands the distance to the
// calibration session. Rejections stay in the entry field with a message.
func (m *AppModel) confirmDistance() {
	v, err := strconv.ParseFloat(strings.TrimSpace(m.entryText), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		m.entryErr = "enter a positive number"
		return
	}

	meters := units.ToMeters(v, units.All[m.entryUnit])
	if err := m.shared.session.ConfirmDistance(meters); err != nil {
		if errors.Is(err, calibrate.ErrDegeneratePoints) {
			m.entryErr = "points too close, press r to retap"
		} else {
			m.entryErr = err.Error()
		}
		return
	}

	logrus.WithFields(logrus.Fields{
		"meters": meters,
		"ppm":    m.shared.session.PixelsPerMeter(),
	}).Info("app: calibration complete")

	m.entryText = ""
	m.entryErr = ""
	m.notice = ""
	m.mode = ModeOverlay
	m.reclamp()
}

func (m AppModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	col, row, inside := m.viewfinderCell(msg.X, msg.Y)

	switch m.mode {
	case ModeCalibrate:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && inside {
			x, y := m.mapper().ToScreen(col, row)
			m.shared.session.RecordTap(x, y)
		}

	case ModeOverlay:
		switch {
		case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && inside:
			if m.adjustMode {
				x, y := m.mapper().ToScreen(col, row)
				if err := m.shared.session.MovePoint(m.activePoint, x, y); err != nil {
					m.notice = "point rejected: too close to the other point"
				} else {
					m.reclamp()
				}
				return m, nil
			}
			m.dragging = true
			m.dragCol, m.dragRow = col, row
			m.shared.transform.BeginDrag()

		case msg.Action == tea.MouseActionMotion && m.dragging:
			// Drag takes the cumulative delta since the press anchor.
			mp := m.mapper()
			dx := float64(col-m.dragCol) * mp.ScreenW / float64(mp.Cols)
			dy := float64(row-m.dragRow) * mp.ScreenH / float64(mp.Rows)
			m.shared.transform.Drag(dx, dy)

		case msg.Action == tea.MouseActionRelease && m.dragging:
			m.dragging = false
			m.shared.transform.EndDrag(m.shared.session.PixelsPerMeter(), m.shared.screenW, m.shared.screenH)
		}
	}

	return m, nil
}

func (m *AppModel) nudgePoint(dx, dy float64) {
	if !m.adjustMode {
		return
	}
	pts := m.shared.session.Points()
	if m.activePoint >= len(pts) {
		return
	}
	p := pts[m.activePoint]
	if err := m.shared.session.MovePoint(m.activePoint, p.X+dx, p.Y+dy); err != nil {
		m.notice = "point rejected: too close to the other point"
		return
	}
	m.reclamp()
}

// setAutoLevel flips the auto-level switch and starts or stops the motion
// source to match. The filter resets when sensing stops so a stale roll
// never leaks into the next session.
func (m *AppModel) setAutoLevel(on bool) {
	if on && m.shared.motionSrc == nil {
		m.notice = "no motion source (use --motion-listen or --demo)"
		return
	}
	m.shared.transform.SetAutoLevel(on)

	if on && !m.shared.motionsOn {
		p := m.shared.program
		err := m.shared.motionSrc.Start(
			func(s motion.Sample) {
				p.Send(MotionMsg{Sample: s})
			},
			func(err error) {
				p.Send(MotionErrorMsg{Err: err})
			},
		)
		if err != nil {
			logrus.WithError(err).Warn("app: cannot start motion source")
			m.notice = "motion source unavailable"
			m.shared.transform.SetAutoLevel(false)
			return
		}
		m.shared.motionsOn = true
		logrus.Info("app: motion source started")
		return
	}

	if !on && m.shared.motionsOn {
		m.shared.motionSrc.Stop()
		m.shared.motionsOn = false
		m.shared.filter.Reset()
		m.shared.rollHist.Reset()
		logrus.Info("app: motion source stopped")
	}
}

// recalibrate throws away the scale and the transform and returns to the
// tap workflow.
func (m *AppModel) recalibrate() {
	m.setAutoLevel(false)
	m.shared.session.Reset()
	m.shared.transform.Reset()
	m.mode = ModeCalibrate
	m.adjustMode = false
	m.dragging = false
	m.entryText = ""
	m.entryErr = ""
	m.notice = ""
}

// reclamp re-applies the pan bounds after anything that can move the
// overlay or change the scale.
func (m *AppModel) reclamp() {
	if !m.shared.session.IsCalibrated() {
		return
	}
	m.shared.transform.ClampToScreen(m.shared.session.PixelsPerMeter(), m.shared.screenW, m.shared.screenH)
}

// snapshotRequest copies everything a snapshot needs out of the shared
// state. The returned value is safe to hand to a command goroutine: later
// transform or session mutations cannot reach it.
func (m AppModel) snapshotRequest() snapshot.Request {
	sh := m.shared
	ppm := sh.session.PixelsPerMeter()
	return snapshot.Request{
		Placement:  sh.transform.Placement(ppm, sh.screenW, sh.screenH),
		Points:     sh.session.Points(),
		PPM:        ppm,
		Tint:       sh.transform.Tint(),
		ShowGrid:   sh.transform.ShowGrid(),
		ShowLabels: sh.transform.ShowLabels(),
	}
}

func (m AppModel) snapshotCmd() tea.Cmd {
	sh := m.shared
	req := m.snapshotRequest()

	return func() tea.Msg {
		frame, ok := sh.feed.Frame()
		if !ok {
			return SnapshotMsg{Err: errors.New("no camera frame available")}
		}
		defer frame.Close()

		path, err := sh.saver.Save(frame, req)
		return SnapshotMsg{Path: path, Err: err}
	}
}

func (m AppModel) distanceEntryActive() bool {
	_, ok := m.shared.session.State().(calibrate.WaitingDistance)
	return ok
}

// layout splits the terminal into the viewfinder and side columns the same
// way View composes them, so mouse hits can be mapped back.
func (m AppModel) layout() (viewW, sideW, bodyH int) {
	bodyH = m.height - 2
	if bodyH < 5 {
		bodyH = 5
	}
	viewW = m.width * 3 / 4
	if viewW < 40 {
		viewW = 40
	}
	sideW = m.width - viewW
	if sideW < 26 {
		sideW = 26
		viewW = m.width - sideW
	}
	return
}

// viewfinderCell maps terminal coordinates to a cell inside the viewfinder
// content area, accounting for the menu bar and the panel border.
func (m AppModel) viewfinderCell(x, y int) (col, row int, inside bool) {
	viewW, _, bodyH := m.layout()
	col = x - 1
	row = y - 2
	inside = col >= 0 && col < viewW-2 && row >= 0 && row < bodyH-2
	return
}

func (m AppModel) mapper() ui.CellMapper {
	viewW, _, bodyH := m.layout()
	return ui.CellMapper{
		Cols:    viewW - 2,
		Rows:    bodyH - 2,
		ScreenW: m.shared.screenW,
		ScreenH: m.shared.screenH,
	}
}

func (m AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing " + config.AppName + "..."
	}

	viewW, sideW, bodyH := m.layout()
	sh := m.shared

	menuBar := ui.RenderMenuBar(m.width, m.device, sh.session.IsCalibrated())

	vfState := ui.ViewfinderState{
		Preview:     sh.feed.Preview(),
		ScreenW:     m.shared.screenW,
		ScreenH:     m.shared.screenH,
		PPM:         sh.session.PixelsPerMeter(),
		ShowGrid:    sh.transform.ShowGrid(),
		ShowLabels:  sh.transform.ShowLabels(),
		Tint:        sh.transform.Tint(),
		Points:      sh.session.Points(),
		ActivePoint: -1,
	}
	if m.adjustMode {
		vfState.ActivePoint = m.activePoint
	}
	if sh.session.IsCalibrated() {
		p := sh.transform.Placement(sh.session.PixelsPerMeter(), m.shared.screenW, m.shared.screenH)
		vfState.Placement = &p
	}

	vfContent := ui.RenderViewfinder(viewW-2, bodyH-2, vfState)
	vfPanel := ui.RenderViewfinderPanel(viewW, bodyH, vfContent, m.mode == ModeCalibrate)

	panX, panY := sh.transform.PanOffset()
	side := ui.RenderSidePanel(sideW, bodyH-dialHeight, ui.SidePanelState{
		Mode:          m.mode.label(),
		StateName:     sh.session.State().Name(),
		Points:        sh.session.Points(),
		PPM:           sh.session.PixelsPerMeter(),
		KnownM:        sh.session.KnownMeters(),
		HTiltDeg:      sh.transform.HorizontalTilt(),
		VTiltDeg:      sh.transform.VerticalTilt(),
		PanX:          panX,
		PanY:          panY,
		AutoLevel:     sh.transform.AutoLevel(),
		Tint:          sh.transform.Tint(),
		ShowGrid:      sh.transform.ShowGrid(),
		ShowLabels:    sh.transform.ShowLabels(),
		AdjustMode:    m.adjustMode,
		ActivePoint:   m.activePoint,
		RollHistory:   sh.rollHist.Values(),
		DistanceEntry: m.distanceEntryActive(),
		DistanceText:  m.entryText,
		DistanceUnit:  units.All[m.entryUnit].String(),
		EntryError:    m.entryErr,
		Notice:        m.notice,
	})
	dial := ui.RenderLevelDial(sideW-2, dialHeight-1, sh.transform.AutoLevelAngle(), sh.transform.AutoLevel())
	sideCol := lipgloss.JoinVertical(lipgloss.Left, side, dial)

	statusBar := ui.RenderStatusBar(m.width, sh.feed.Running(), sh.session.PixelsPerMeter(), m.mode.label(), m.camErr)

	return ui.ComposeLayout(menuBar, vfPanel, sideCol, statusBar)
}

// Start opens the camera feed and remembers the program so async sources
// can post messages. Must be called before p.Run().
func (m *AppModel) Start(p *tea.Program) error {
	m.shared.program = p

	if err := m.shared.feed.Start(); err != nil {
		return err
	}

	w, h := m.shared.feed.Size()
	if w <= 0 || h <= 0 {
		m.shared.feed.Stop()
		return fmt.Errorf("camera reported empty frame size %dx%d", w, h)
	}
	m.shared.screenW = float64(w)
	m.shared.screenH = float64(h)

	logrus.WithFields(logrus.Fields{
		"width":  w,
		"height": h,
		"demo":   m.demoMode,
	}).Info("app: camera feed ready")
	return nil
}

func (m *AppModel) shutdown() {
	if m.shared.motionsOn {
		m.shared.motionSrc.Stop()
		m.shared.motionsOn = false
	}
	m.shared.feed.Stop()
	if m.shared.saver != nil {
		m.shared.saver.Close()
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(config.TargetFPS), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
