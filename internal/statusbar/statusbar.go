// internal/statusbar/statusbar.go
package statusbar

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/bethropolis/inkwell/internal/config"
	"github.com/bethropolis/inkwell/internal/theme"
)

// Height is the number of rows the status bar occupies: the toolbar and the
// status line.
const Height = config.StatusBarHeight

// Config defines the behavior of the status bar.
type Config struct {
	MessageTimeout time.Duration
	// Labels maps command names to their toolbar labels. Commands without a
	// label are shown by name.
	Labels map[string]string
}

// DefaultConfig provides sensible defaults.
func DefaultConfig() Config {
	return Config{
		MessageTimeout: config.MessageTimeout,
		Labels: map[string]string{
			"bold":         "B",
			"italic":       "I",
			"strike":       "S",
			"list":         "•",
			"ordered-list": "1.",
			"check":        "☑",
			"quote":        "❝",
			"link":         "@",
			"inline-code":  "`",
			"code":         "{}",
			"table":        "▦",
			"line":         "─",
		},
	}
}

// StatusBar shows the toolbar (formatting commands with their active state,
// undo/redo availability) above the status line (file, modified flag,
// messages or the command line).
type StatusBar struct {
	config Config
	mu     sync.RWMutex

	filePath   string
	isModified bool

	commands []string
	active   map[string]bool
	enabled  map[string]bool

	commandMode bool
	commandLine string

	tempMessage     string
	tempMessageTime time.Time
}

// New creates a StatusBar. Undo and redo start disabled.
func New(cfg Config) *StatusBar {
	return &StatusBar{
		config:  cfg,
		active:  make(map[string]bool),
		enabled: map[string]bool{"undo": false, "redo": false},
	}
}

// SetFileInfo updates the file path and modified flag.
func (sb *StatusBar) SetFileInfo(path string, modified bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.filePath = path
	sb.isModified = modified
}

// SetCommands sets the toolbar commands, in display order.
func (sb *StatusBar) SetCommands(names []string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.commands = append([]string(nil), names...)
}

// SetActive replaces the set of commands shown as active.
func (sb *StatusBar) SetActive(names []string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.active = make(map[string]bool, len(names))
	for _, n := range names {
		sb.active[n] = true
	}
}

// ToggleActive flips the active state of one command.
func (sb *StatusBar) ToggleActive(name string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.active[name] = !sb.active[name]
}

// IsActive reports whether a command is shown as active.
func (sb *StatusBar) IsActive(name string) bool {
	sb.mu.RLock()
	defer sb.mu.RUnlock()
	return sb.active[name]
}

// SetEnabled enables or disables toolbar buttons such as undo and redo.
func (sb *StatusBar) SetEnabled(names []string, enabled bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	for _, n := range names {
		sb.enabled[n] = enabled
	}
}

// IsEnabled reports whether a toolbar button is enabled.
func (sb *StatusBar) IsEnabled(name string) bool {
	sb.mu.RLock()
	defer sb.mu.RUnlock()
	return sb.enabled[name]
}

// SetCommandLine shows text as the command being typed, or hides the command
// line when active is false.
func (sb *StatusBar) SetCommandLine(text string, active bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.commandMode = active
	sb.commandLine = text
}

// SetTemporaryMessage displays a message for the configured duration.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageTime = time.Now()
}

// ResetTemporaryMessage clears any temporary message.
func (sb *StatusBar) ResetTemporaryMessage() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = ""
	sb.tempMessageTime = time.Time{}
}

func (sb *StatusBar) label(name string) string {
	if l, ok := sb.config.Labels[name]; ok {
		return l
	}
	return name
}

// activeText lists the active commands in toolbar order. Caller holds the lock.
func (sb *StatusBar) activeText() string {
	var parts []string
	for _, name := range sb.commands {
		if sb.active[name] {
			parts = append(parts, name)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return " -- " + strings.Join(parts, ", ")
}

// Draw renders the status bar onto the bottom Height rows of the screen.
func (sb *StatusBar) Draw(screen tcell.Screen, width, height int, th *theme.Theme) {
	if height < Height || width <= 0 {
		return
	}
	toolbarY, statusY := height-2, height-1

	sb.mu.Lock()
	msgActive := !sb.tempMessageTime.IsZero() && time.Since(sb.tempMessageTime) <= sb.config.MessageTimeout
	if !sb.tempMessageTime.IsZero() && !msgActive {
		sb.tempMessage = ""
		sb.tempMessageTime = time.Time{}
	}

	barStyle := th.GetStyle("StatusBar")
	activeStyle := th.GetStyle("StatusBarActive")
	mutedStyle := th.Overlay(barStyle, "Prefix")

	type segment struct {
		text  string
		style tcell.Style
	}
	var toolbar []segment
	for _, name := range sb.commands {
		style := barStyle
		if sb.active[name] {
			style = activeStyle
		}
		toolbar = append(toolbar, segment{" " + sb.label(name) + " ", style})
	}
	toolbar = append(toolbar, segment{" |", mutedStyle})
	for _, name := range []string{"undo", "redo"} {
		style := mutedStyle
		if sb.enabled[name] {
			style = barStyle
		}
		toolbar = append(toolbar, segment{" " + name, style})
	}

	var status []segment
	switch {
	case sb.commandMode:
		status = []segment{{":" + sb.commandLine, th.GetStyle("StatusBarCommand")}}
	case msgActive:
		status = []segment{{sb.tempMessage, th.GetStyle("StatusBarMessage")}}
	default:
		fPath := sb.filePath
		if fPath == "" {
			fPath = "[No Name]"
		}
		status = []segment{{fPath, barStyle}}
		if sb.isModified {
			status = append(status, segment{" [Modified]", th.GetStyle("StatusBarModified")})
		}
		status = append(status, segment{sb.activeText(), barStyle})
	}
	sb.mu.Unlock()

	fill(screen, toolbarY, width, barStyle)
	x := 0
	for _, seg := range toolbar {
		x = drawText(screen, x, toolbarY, width, seg.text, seg.style)
	}

	fill(screen, statusY, width, status[0].style)
	x = 0
	for _, seg := range status {
		x = drawText(screen, x, statusY, width, seg.text, seg.style)
	}
}

func fill(screen tcell.Screen, y, width int, style tcell.Style) {
	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}
}

// drawText draws text from column x using visual widths and returns the
// column after it.
func drawText(screen tcell.Screen, x, y, width int, text string, style tcell.Style) int {
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusterWidth := gr.Width()
		if x+clusterWidth > width {
			break
		}
		runes := gr.Runes()
		if len(runes) > 0 {
			screen.SetContent(x, y, runes[0], runes[1:], style)
		}
		x += clusterWidth
	}
	return x
}
