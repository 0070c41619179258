package ui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"

	"filescope/internal/ui/input/keys"
)

// PagerOps runs the ov pager on top of the program
type PagerOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewPagerOps creates a new pager
func NewPagerOps() *PagerOps {
	return &PagerOps{}
}

// SetProgram sets the program reference for terminal management
func (p *PagerOps) SetProgram(program *tea.Program) {
	p.program = program
}

// ShowFile pages a file
func (p *PagerOps) ShowFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	return p.run(func() (*oviewer.Root, error) {
		return oviewer.Open(path)
	})
}

// ShowHelp pages the help text
func (p *PagerOps) ShowHelp(content string) error {
	return p.run(func() (*oviewer.Root, error) {
		return oviewer.NewRoot(strings.NewReader(content))
	})
}

func (p *PagerOps) run(open func() (*oviewer.Root, error)) error {
	if p.program == nil {
		return fmt.Errorf("program not set")
	}

	root, err := open()
	if err != nil {
		return err
	}

	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal()
	}()

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}

// renderHelpContent lists every binding of every mode
func renderHelpContent(km keys.KeyMap) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99"))

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39"))

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220")).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder
	help.WriteString(titleStyle.Render("filescope help"))
	help.WriteString("\n")

	section := func(name string, groups [][]key.Binding) {
		help.WriteString("\n")
		help.WriteString(sectionStyle.Render(name))
		help.WriteString("\n")
		for _, group := range groups {
			for _, b := range group {
				if !b.Enabled() {
					continue
				}
				h := b.Help()
				help.WriteString(fmt.Sprintf("  %s %s\n", keyStyle.Render(h.Key), descStyle.Render(h.Desc)))
			}
		}
	}
	section("Browsing results", km.Browse.FullHelp())
	section("Editing the query", km.Search.FullHelp())
	section("Previewing a file", km.Preview.FullHelp())
	section("Anywhere", [][]key.Binding{{keys.ForceQuit}})

	return strings.TrimRight(help.String(), "\n")
}
