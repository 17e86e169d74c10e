package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"go.uber.org/zap"

	"github.com/yamaru/pokesearch/internal/reader"
	"github.com/yamaru/pokesearch/internal/state"
	"github.com/yamaru/pokesearch/internal/types"
	"github.com/yamaru/pokesearch/internal/view"
)

// NarrowWidth is the terminal width in columns below which the detail
// panel is shown as a dialog instead of a side pane.
const NarrowWidth = 100

const (
	mainPage   = "main"
	detailPage = "detail"
)

// Options configures an App
type Options struct {
	Reader   reader.DatasetReader
	MaxCount int           // view.NoLimit for the whole dataset
	Timeout  time.Duration // zero disables the load timeout
	Logger   *zap.Logger
}

// App is the terminal search page: search input, result table, detail pane
type App struct {
	app    *tview.Application
	pages  *tview.Pages
	body   *tview.Flex
	search *tview.InputField
	table  *tview.Table
	status *tview.TextView

	detail      *tview.Flex
	detailName  *tview.TextView
	detailStats *tview.Table
	modal       *tview.Modal

	reader   reader.DatasetReader
	state    *state.FilterState
	logger   *zap.Logger
	maxCount int
	timeout  time.Duration

	dataset []*types.Creature
	view    *view.DerivedView
	loaded  bool
	loadErr error
	narrow  bool

	// queue hands work to the event loop
	queue func(func())
}

// NewApp builds the widgets and wires FilterState to them. The dataset is
// loaded by Run.
func NewApp(opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	a := &App{
		reader:   opts.Reader,
		state:    state.NewFilterState(),
		logger:   logger,
		maxCount: opts.MaxCount,
		timeout:  opts.Timeout,
		view:     &view.DerivedView{},
	}

	a.app = tview.NewApplication()
	a.queue = func(fn func()) { a.app.QueueUpdateDraw(fn) }

	title := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true).
		SetText("[::b]Pokemon Search")

	a.search = tview.NewInputField().
		SetLabel("Search: ").
		SetPlaceholder("Search Pokemon...").
		SetFieldWidth(0)
	a.search.SetChangedFunc(func(text string) {
		a.state.SetSearchText(text)
	})
	a.search.SetInputCapture(a.captureSearch)

	a.table = tview.NewTable().
		SetSelectable(true, false).
		SetFixed(1, 0)
	a.table.SetBorder(true)
	a.table.SetTitle(" Pokemon ")
	a.table.SetSelectedFunc(func(row, column int) {
		a.activateRow(row)
	})
	a.table.SetMouseCapture(a.captureTableMouse)
	a.table.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyTab, tcell.KeyBacktab:
			a.focusSearch()
			return nil
		case tcell.KeyEscape:
			a.Stop()
			return nil
		}
		return event
	})

	a.detailName = tview.NewTextView().SetDynamicColors(true)
	a.detailStats = tview.NewTable().SetSelectable(false, false)
	a.detail = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.detailName, 2, 0, false).
		AddItem(a.detailStats, 0, 1, false)
	a.detail.SetBorder(true)
	a.detail.SetTitle(" Details ")

	left := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.search, 1, 0, true).
		AddItem(a.table, 0, 1, false)

	a.body = tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(left, 0, 7, true).
		AddItem(a.detail, 0, 3, false)

	a.status = tview.NewTextView().SetDynamicColors(true)

	root := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(title, 1, 0, false).
		AddItem(a.body, 0, 1, true).
		AddItem(a.status, 1, 0, false)

	a.modal = tview.NewModal().
		AddButtons([]string{"Close"}).
		SetDoneFunc(func(int, string) {
			a.closeDetail()
		})

	a.pages = tview.NewPages().
		AddPage(mainPage, root, true, true).
		AddPage(detailPage, a.modal, false, false)

	a.app.SetRoot(a.pages, true)
	a.app.EnableMouse(true)
	a.app.SetBeforeDrawFunc(func(screen tcell.Screen) bool {
		w, _ := screen.Size()
		a.setWidth(w)
		return false
	})

	a.state.OnChange(a.onStateChange)
	a.refresh()

	return a
}

// State returns the filter state driven by this App
func (a *App) State() *state.FilterState {
	return a.state
}

// Run loads the dataset in the background and runs the event loop until
// the user quits.
func (a *App) Run(ctx context.Context) error {
	a.focusSearch()
	a.startLoading(ctx)
	return a.app.Run()
}

// Stop ends the event loop
func (a *App) Stop() {
	a.app.Stop()
}

// startLoading loads the dataset once on its own goroutine and hands the
// result to the event loop. The returned channel closes when the goroutine
// has finished.
func (a *App) startLoading(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	if a.reader == nil {
		close(done)
		return done
	}

	a.setStatus(fmt.Sprintf("Loading %s ...", a.reader.Location()))

	go func() {
		defer close(done)

		if a.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, a.timeout)
			defer cancel()
		}

		records, err := a.reader.Load(ctx)
		if err != nil {
			a.logger.Error("failed to load dataset",
				zap.String("location", a.reader.Location()),
				zap.Error(err))
			records = nil
		}

		a.queue(func() {
			a.setDataset(records, err)
		})
	}()

	return done
}

// setDataset installs the loaded records. On failure the dataset stays
// empty and the status line reports the error.
func (a *App) setDataset(records []*types.Creature, err error) {
	a.dataset = records
	a.loadErr = err
	a.loaded = true
	a.refresh()
	a.focusSearch()
}

func (a *App) onStateChange(change state.Change) {
	a.logger.Debug("filter state changed", zap.Stringer("change", change))
	a.refresh()
	a.focusSearch()
}

// refresh recomputes the derived view from scratch and redraws the table,
// detail pane and status line.
func (a *App) refresh() {
	a.view = view.Derive(a.dataset, a.maxCount, a.state.SearchText())

	rowOffset, columnOffset := a.table.GetOffset()
	cursor, _ := a.table.GetSelection()

	a.table.Clear()
	a.table.SetCell(0, 0, headerCell("Pokemon").SetExpansion(2))
	a.table.SetCell(0, 1, headerCell("Type").SetExpansion(1))

	for i, c := range a.view.Records {
		a.table.SetCell(i+1, 0, tview.NewTableCell(c.DisplayName()).SetReference(c))
		a.table.SetCell(i+1, 1, tview.NewTableCell(c.TypeLabel()).SetReference(c))
	}

	if n := a.view.Len(); n > 0 {
		target := cursor
		if idx := a.view.IndexOf(a.state.Selected()); idx >= 0 {
			target = idx + 1
		}
		// Select scrolls the cursor into view on the next draw, so it is
		// only called when the cursor actually moves.
		if target = clamp(target, 1, n); target != cursor {
			a.table.Select(target, 0)
		}
		a.table.SetOffset(rowOffset, columnOffset)
	}

	a.renderDetail()
	a.renderStatus()
}

func (a *App) renderDetail() {
	a.detailStats.Clear()

	selected := a.state.Selected()
	if selected == nil {
		a.detailName.SetText("")
		return
	}

	a.detailName.SetText("[::b]" + tview.Escape(selected.DisplayName()))
	a.detailStats.SetCell(0, 0, headerCell("Base"))
	a.detailStats.SetCell(0, 1, headerCell("Stat"))
	for i, row := range view.DetailRows(selected) {
		a.detailStats.SetCell(i+1, 0, tview.NewTableCell(row.Key.String()))
		a.detailStats.SetCell(i+1, 1, tview.NewTableCell(fmt.Sprintf("%d", row.Value)).SetAlign(tview.AlignRight))
	}

	if a.modalOpen() {
		a.modal.SetText(view.DetailText(selected))
	}
}

func (a *App) renderStatus() {
	switch {
	case a.loadErr != nil:
		a.setStatus(fmt.Sprintf("[red]Failed to load dataset:[white] %s", tview.Escape(a.loadErr.Error())))
	case !a.loaded:
		return
	default:
		legend := "-"
		if len(a.view.Types) > 0 {
			legend = strings.Join(a.view.Types, ", ")
		}
		a.setStatus(fmt.Sprintf("%d of %d shown  [green]Types:[white] %s  [blue]↑/↓ Enter Esc",
			a.view.Len(), len(a.dataset), tview.Escape(legend)))
	}
}

func (a *App) setStatus(text string) {
	a.status.SetText(text)
}

// activateRow selects the creature on a table row; the narrow layout also
// opens the detail dialog.
func (a *App) activateRow(row int) {
	idx := row - 1
	if idx < 0 || idx >= a.view.Len() {
		return
	}
	c := a.view.Records[idx]
	a.logger.Debug("row activated", zap.Int("id", c.ID), zap.Bool("narrow", a.narrow))

	a.state.SetSelected(c)
	if a.narrow {
		a.openDetail()
	}
}

func (a *App) openDetail() {
	selected := a.state.Selected()
	if selected == nil {
		return
	}
	a.modal.SetText(view.DetailText(selected))
	a.pages.ShowPage(detailPage)
	a.app.SetFocus(a.modal)
}

func (a *App) closeDetail() {
	a.pages.HidePage(detailPage)
	a.focusSearch()
}

func (a *App) modalOpen() bool {
	name, _ := a.pages.GetFrontPage()
	return name == detailPage
}

// focusSearch returns focus to the search input unless the detail dialog
// is open. The table keeps its scroll offset.
func (a *App) focusSearch() {
	if a.modalOpen() {
		return
	}
	a.app.SetFocus(a.search)
}

// setWidth switches between the side pane and the dialog layout
func (a *App) setWidth(width int) {
	narrow := width < NarrowWidth
	if narrow == a.narrow {
		return
	}
	a.narrow = narrow

	if narrow {
		a.body.RemoveItem(a.detail)
		return
	}

	a.body.AddItem(a.detail, 0, 3, false)
	if a.modalOpen() {
		// called while drawing; focus changes must wait for the event loop
		a.queue(a.closeDetail)
	}
}

func (a *App) captureSearch(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyUp:
		a.moveCursor(-1)
		return nil
	case tcell.KeyDown:
		a.moveCursor(1)
		return nil
	case tcell.KeyPgUp:
		a.moveCursor(-10)
		return nil
	case tcell.KeyPgDn:
		a.moveCursor(10)
		return nil
	case tcell.KeyEnter:
		row, _ := a.table.GetSelection()
		a.activateRow(row)
		return nil
	case tcell.KeyTab:
		a.app.SetFocus(a.table)
		return nil
	case tcell.KeyEscape:
		a.Stop()
		return nil
	}
	return event
}

func (a *App) moveCursor(delta int) {
	n := a.view.Len()
	if n == 0 {
		return
	}
	row, _ := a.table.GetSelection()
	a.table.Select(clamp(row+delta, 1, n), 0)
}

// captureTableMouse activates the clicked row; the table itself only moves
// the cursor on a click.
func (a *App) captureTableMouse(action tview.MouseAction, event *tcell.EventMouse) (tview.MouseAction, *tcell.EventMouse) {
	if action != tview.MouseLeftClick || !a.table.InRect(event.Position()) {
		return action, event
	}
	row, _ := a.table.CellAt(event.Position())
	if row < 1 || row > a.view.Len() {
		return action, event
	}
	a.activateRow(row)
	return tview.MouseConsumed, nil
}

func headerCell(text string) *tview.TableCell {
	return tview.NewTableCell(text).
		SetTextColor(tcell.ColorYellow).
		SetAttributes(tcell.AttrBold).
		SetSelectable(false)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
