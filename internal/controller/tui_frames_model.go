package controller

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	m "github.com/mouse-blink/stakeout/internal/model"
)

// frameItem is one triaged frame shown in the frames list.
type frameItem struct {
	frame m.TraceFrame
	class m.FrameClass
}

func (i frameItem) FilterValue() string {
	return string(i.frame.File) + " " + i.frame.Func
}

var frameClassStyles = map[m.FrameClass]lipgloss.Style{
	m.FrameTest:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
	m.FrameUser:   lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	m.FrameStdlib: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	m.FrameRunner: lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Faint(true),
}

// frameDelegate renders one frame per row, colored by class.
type frameDelegate struct{}

func (d frameDelegate) Height() int  { return 1 }
func (d frameDelegate) Spacing() int { return 0 }
func (d frameDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d frameDelegate) Render(w io.Writer, l list.Model, index int, item list.Item) {
	fi, ok := item.(frameItem)
	if !ok {
		return
	}

	classStyle, ok := frameClassStyles[fi.class]
	if !ok {
		classStyle = lipgloss.NewStyle()
	}

	line := fmt.Sprintf("%-6s %s:%d in %s",
		fi.class.String(), fi.frame.File, fi.frame.Line, fi.frame.Func)

	line = truncateToWidth(line, l.Width())

	if index == l.Index() {
		line = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("6")).
			Bold(true).
			Render(line)
	} else {
		line = classStyle.Render(line)
	}

	_, _ = fmt.Fprint(w, line)
}

// framesModel pages through triaged frames when they overflow the screen.
type framesModel struct {
	width     int
	height    int
	frameList list.Model
	count     int
}

func newFramesModel(frames []m.TraceFrame, classes []m.FrameClass) framesModel {
	items := make([]list.Item, 0, len(frames))

	for i, frame := range frames {
		class := m.FrameUser
		if i < len(classes) {
			class = classes[i]
		}

		items = append(items, frameItem{frame: frame, class: class})
	}

	frameList := list.New(items, frameDelegate{}, 80, 20)
	frameList.SetShowPagination(false)
	frameList.SetShowFilter(true)
	frameList.SetShowHelp(false)
	frameList.SetShowTitle(false)
	frameList.SetShowStatusBar(false)
	frameList.FilterInput.Placeholder = "Filter by path…"

	return framesModel{frameList: frameList, count: len(items), width: 80, height: 20}
}

// needsPagination reports whether the list overflows the terminal.
func (fm framesModel) needsPagination() bool {
	return fm.count+2 > fm.height
}

func (fm framesModel) Init() tea.Cmd {
	return nil
}

func (fm framesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		fm.width = msg.Width
		fm.height = msg.Height
		fm.frameList.SetWidth(fm.width)
		fm.frameList.SetHeight(fm.height - 2)

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return fm, tea.Quit
		default:
			var newList list.Model

			newList, cmd = fm.frameList.Update(msg)
			fm.frameList = newList

			return fm, cmd
		}
	}

	return fm, cmd
}

func (fm framesModel) View() string {
	if fm.count == 0 {
		return "no relevant frames\n"
	}

	if !fm.needsPagination() {
		// Fits on screen: render the rows directly, no chrome.
		out := ""
		for _, item := range fm.frameList.Items() {
			fi, ok := item.(frameItem)
			if !ok {
				continue
			}

			style, found := frameClassStyles[fi.class]
			if !found {
				style = lipgloss.NewStyle()
			}

			out += style.Render(fmt.Sprintf("%-6s %s:%d in %s",
				fi.class.String(), fi.frame.File, fi.frame.Line, fi.frame.Func)) + "\n"
		}

		return out
	}

	footer := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Render("↑/k up • ↓/j down • / filter • q quit")

	return lipgloss.JoinVertical(lipgloss.Left, fm.frameList.View(), footer)
}

func truncateToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}

	if lipgloss.Width(text) <= width {
		return text
	}

	const ellipsis = "…"

	maxWidth := width - lipgloss.Width(ellipsis)
	if maxWidth <= 0 {
		return ellipsis
	}

	currentWidth := 0

	result := make([]rune, 0, len(text))

	for _, r := range text {
		rWidth := lipgloss.Width(string(r))
		if currentWidth+rWidth > maxWidth {
			break
		}

		result = append(result, r)
		currentWidth += rWidth
	}

	return string(result) + ellipsis
}
