package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/MihkelHunter/mkTasks/internal/config"
	"github.com/MihkelHunter/mkTasks/internal/log"
	"github.com/MihkelHunter/mkTasks/internal/store"
	"github.com/MihkelHunter/mkTasks/internal/todo"
	"github.com/MihkelHunter/mkTasks/internal/view"
)

// ── Colour palette ───────────────────────────────────────────────────────────

var (
	colBackground = color.NRGBA{R: 15, G: 15, B: 20, A: 255}
	colSurface    = color.NRGBA{R: 26, G: 26, B: 36, A: 255}
	colDone       = color.NRGBA{R: 20, G: 30, B: 25, A: 255}
	colAccent     = color.NRGBA{R: 99, G: 102, B: 241, A: 255}
	colMuted      = color.NRGBA{R: 100, G: 116, B: 139, A: 255}
)

var filterLabels = map[todo.FilterMode]string{
	todo.FilterAll:        "📋 All",
	todo.FilterCompleted:  "✅ Completed",
	todo.FilterIncomplete: "⏳ Incomplete",
	todo.FilterDeleted:    "🗑 Deleted",
}

// ── App state ────────────────────────────────────────────────────────────────

type appState struct {
	model *view.Model
	win   fyne.Window

	entry       *widget.Entry
	filterMenu  *fyne.Container
	activeList  *widget.List
	deletedList *widget.List
	purgeBtn    *widget.Button
	statsLabel  *widget.Label

	active  []view.ActiveRow
	deleted []view.DeletedRow
}

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal(err)
	}
	log.Init(cfg.Log)
	logger := log.NewModuleLogger("main", "desktop")

	repo, err := store.Open(cfg.Storage)
	if err != nil {
		fatal(err)
	}
	svc, err := todo.NewService(repo)
	if err != nil {
		repo.Close()
		fatal(err)
	}
	defer svc.Close()
	logger.Info("storage ready", "driver", cfg.Storage.Driver)

	a := app.New()
	a.Settings().SetTheme(&darkTheme{})

	win := a.NewWindow("mkTasks")
	win.Resize(fyne.NewSize(640, 560))
	win.CenterOnScreen()

	s := &appState{model: view.NewModel(svc), win: win}
	win.SetContent(s.buildUI())
	svc.OnChange(s.refresh)
	s.refresh()

	win.ShowAndRun()
}

func fatal(err error) {
	log.GetLogger().Error("startup failed", "error", err)
	os.Exit(1)
}

// ── Build UI ─────────────────────────────────────────────────────────────────

func (s *appState) buildUI() fyne.CanvasObject {
	// Header
	title := canvas.NewText("  ✓  To-Do List", color.White)
	title.TextSize = 20
	title.TextStyle = fyne.TextStyle{Bold: true}

	menuBtn := widget.NewButton("⋯", func() {
		s.model.ToggleMenu()
		s.refresh()
	})

	header := container.NewBorder(nil, nil, title, container.NewPadded(menuBtn))
	headerBG := canvas.NewRectangle(colSurface)
	headerStack := container.NewStack(headerBG, container.NewPadded(header))

	// Filter menu, hidden until toggled
	var buttons []fyne.CanvasObject
	for _, f := range todo.Filters {
		mode := f
		buttons = append(buttons, widget.NewButton(filterLabels[mode], func() {
			s.model.SetFilter(mode)
			s.refresh()
		}))
	}
	s.filterMenu = container.NewHBox(append([]fyne.CanvasObject{layout.NewSpacer()}, buttons...)...)

	// Add row
	s.entry = widget.NewEntry()
	s.entry.SetPlaceHolder("✍️ Enter a task...")
	s.entry.OnChanged = s.model.SetInput
	s.entry.OnSubmitted = func(string) { s.submit() }
	addBtn := widget.NewButton("➕", s.submit)
	addBtn.Importance = widget.HighImportance
	addRow := container.NewBorder(nil, nil, nil, addBtn, s.entry)

	// Lists
	s.activeList = widget.NewList(
		func() int { return len(s.active) },
		s.makeActiveRow,
		s.updateActiveRow,
	)
	s.activeList.OnSelected = func(id widget.ListItemID) { s.activeList.Unselect(id) }

	s.deletedList = widget.NewList(
		func() int { return len(s.deleted) },
		s.makeDeletedRow,
		s.updateDeletedRow,
	)
	s.deletedList.OnSelected = func(id widget.ListItemID) { s.deletedList.Unselect(id) }

	s.purgeBtn = widget.NewButtonWithIcon("Delete Selected", theme.DeleteIcon(), s.purge)
	s.purgeBtn.Importance = widget.DangerImportance

	// Footer / stats
	s.statsLabel = widget.NewLabel("")
	footerBG := canvas.NewRectangle(colSurface)
	footerStack := container.NewStack(footerBG, container.NewPadded(container.NewCenter(s.statsLabel)))

	// Root layout
	bg := canvas.NewRectangle(colBackground)
	lists := container.NewStack(
		container.NewScroll(s.activeList),
		container.NewBorder(nil, container.NewPadded(s.purgeBtn), nil, nil, container.NewScroll(s.deletedList)),
	)
	ui := container.NewBorder(
		container.NewVBox(headerStack, s.filterMenu, container.NewPadded(addRow)),
		footerStack,
		nil, nil,
		lists,
	)
	return container.NewStack(bg, ui)
}

// ── Row templates ────────────────────────────────────────────────────────────
//
// container.NewBorder stores the centre object first, then left and right:
// Objects = [label, left, right].

func (s *appState) makeActiveRow() fyne.CanvasObject {
	checkBtn := widget.NewButtonWithIcon("", theme.RadioButtonIcon(), func() {})
	checkBtn.Importance = widget.LowImportance

	label := widget.NewLabel("text")
	label.Truncation = fyne.TextTruncateEllipsis

	deleteBtn := widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {})
	deleteBtn.Importance = widget.DangerImportance

	row := container.NewBorder(nil, nil, checkBtn, deleteBtn, label)
	rowBG := canvas.NewRectangle(colSurface)
	rowBG.CornerRadius = 8
	return container.NewStack(rowBG, container.NewPadded(row))
}

func (s *appState) updateActiveRow(i widget.ListItemID, obj fyne.CanvasObject) {
	if i >= len(s.active) {
		return
	}
	r := s.active[i]

	stack := obj.(*fyne.Container)
	rowBG := stack.Objects[0].(*canvas.Rectangle)
	row := stack.Objects[1].(*fyne.Container).Objects[0].(*fyne.Container)
	label := row.Objects[0].(*widget.Label)
	checkBtn := row.Objects[1].(*widget.Button)
	deleteBtn := row.Objects[2].(*widget.Button)

	if r.Completed {
		checkBtn.SetIcon(theme.ViewRefreshIcon())
		label.TextStyle = fyne.TextStyle{Italic: true}
		rowBG.FillColor = colDone
	} else {
		checkBtn.SetIcon(theme.ConfirmIcon())
		label.TextStyle = fyne.TextStyle{}
		rowBG.FillColor = colSurface
	}
	rowBG.Refresh()
	label.SetText(r.Text)

	index := r.Index
	checkBtn.OnTapped = func() { s.act(s.model.ToggleComplete(index)) }
	deleteBtn.OnTapped = func() { s.act(s.model.Delete(index)) }
}

func (s *appState) makeDeletedRow() fyne.CanvasObject {
	check := widget.NewCheck("", nil)
	label := widget.NewLabel("text")
	label.Truncation = fyne.TextTruncateEllipsis
	restoreBtn := widget.NewButtonWithIcon("Restore", theme.ContentUndoIcon(), func() {})

	row := container.NewBorder(nil, nil, check, restoreBtn, label)
	rowBG := canvas.NewRectangle(colSurface)
	rowBG.CornerRadius = 8
	return container.NewStack(rowBG, container.NewPadded(row))
}

func (s *appState) updateDeletedRow(i widget.ListItemID, obj fyne.CanvasObject) {
	if i >= len(s.deleted) {
		return
	}
	r := s.deleted[i]

	stack := obj.(*fyne.Container)
	row := stack.Objects[1].(*fyne.Container).Objects[0].(*fyne.Container)
	label := row.Objects[0].(*widget.Label)
	check := row.Objects[1].(*widget.Check)
	restoreBtn := row.Objects[2].(*widget.Button)

	label.SetText(r.Text)
	label.Importance = widget.LowImportance

	index := r.Index
	check.OnChanged = nil
	check.SetChecked(r.Selected)
	check.OnChanged = func(bool) { s.act(s.model.ToggleSelect(index)) }
	restoreBtn.OnTapped = func() { s.act(s.model.Restore(index)) }
}

// ── Actions ───────────────────────────────────────────────────────────────────

func (s *appState) submit() {
	ok, err := s.model.Submit()
	if err != nil {
		dialog.ShowError(err, s.win)
		return
	}
	if ok {
		s.entry.SetText("")
	}
}

func (s *appState) purge() {
	dialog.ShowConfirm("Delete Selected",
		"Permanently delete the selected tasks?",
		func(ok bool) {
			if ok {
				s.act(s.model.DeleteSelected())
			}
		}, s.win)
}

// act reports a failed action. Stale indices from a row rendered before the
// last change are ignored.
func (s *appState) act(err error) {
	if err != nil && !errors.Is(err, todo.ErrIndexOutOfRange) {
		dialog.ShowError(err, s.win)
	}
}

func (s *appState) refresh() {
	if s.model.MenuOpen() {
		s.filterMenu.Show()
	} else {
		s.filterMenu.Hide()
	}

	if s.model.ShowingDeleted() {
		s.deleted = s.model.DeletedRows()
		s.active = nil
		s.activeList.Hide()
		s.deletedList.Show()
		s.deletedList.Refresh()
		if s.model.ShowDeleteSelected() {
			s.purgeBtn.Show()
		} else {
			s.purgeBtn.Hide()
		}
	} else {
		s.active = s.model.ActiveRows()
		s.deleted = nil
		s.deletedList.Hide()
		s.purgeBtn.Hide()
		s.activeList.Show()
		s.activeList.Refresh()
	}

	tasks := s.model.Service().Tasks()
	done := 0
	for _, t := range tasks {
		if t.Completed {
			done++
		}
	}
	s.statsLabel.SetText(fmt.Sprintf("%d / %d completed · %d deleted · %s",
		done, len(tasks), len(s.model.Service().Deleted()), s.model.Filter()))
}

// ── Custom dark theme ─────────────────────────────────────────────────────────

type darkTheme struct{}

func (darkTheme) Color(n fyne.ThemeColorName, v fyne.ThemeVariant) color.Color {
	switch n {
	case theme.ColorNameBackground:
		return colBackground
	case theme.ColorNameButton, theme.ColorNamePrimary:
		return colAccent
	case theme.ColorNameForeground:
		return color.White
	case theme.ColorNameInputBackground:
		return color.NRGBA{R: 35, G: 35, B: 50, A: 255}
	case theme.ColorNameDisabled, theme.ColorNamePlaceHolder:
		return colMuted
	case theme.ColorNameSeparator:
		return color.NRGBA{R: 50, G: 50, B: 65, A: 255}
	}
	return theme.DefaultTheme().Color(n, v)
}

func (darkTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (darkTheme) Icon(n fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(n)
}

func (darkTheme) Size(n fyne.ThemeSizeName) float32 {
	switch n {
	case theme.SizeNamePadding:
		return 10
	case theme.SizeNameText:
		return 14
	}
	return theme.DefaultTheme().Size(n)
}
