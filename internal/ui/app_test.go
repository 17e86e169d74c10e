package ui

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/stretchr/testify/suite"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/yamaru/pokesearch/internal/types"
	"github.com/yamaru/pokesearch/internal/view"
	"github.com/yamaru/pokesearch/test/fixtures"
)

// stubReader returns a fixed dataset or error
type stubReader struct {
	records []*types.Creature
	err     error
	calls   int
}

func (r *stubReader) Load(ctx context.Context) ([]*types.Creature, error) {
	r.calls++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.records, r.err
}

func (r *stubReader) Location() string {
	return "stub://pokemon.json"
}

// AppTestSuite exercises the App without running the event loop
type AppTestSuite struct {
	suite.Suite
	reader  *stubReader
	app     *App
	dataset []*types.Creature
}

func (suite *AppTestSuite) SetupTest() {
	suite.dataset = fixtures.SampleDataset()
	suite.reader = &stubReader{records: suite.dataset}
	suite.app = NewApp(Options{
		Reader:   suite.reader,
		MaxCount: view.NoLimit,
		Logger:   zap.NewNop(),
	})
	suite.app.queue = func(fn func()) { fn() }
}

func (suite *AppTestSuite) load() {
	<-suite.app.startLoading(context.Background())
}

func (suite *AppTestSuite) rowNames() []string {
	var names []string
	for row := 1; row < suite.app.table.GetRowCount(); row++ {
		names = append(names, suite.app.table.GetCell(row, 0).Text)
	}
	return names
}

// drawTable lays the table out on a simulation screen so that
// click positions and scroll offsets resolve as they do on a terminal.
func (suite *AppTestSuite) drawTable(width, height int) {
	screen := tcell.NewSimulationScreen("UTF-8")
	suite.Require().NoError(screen.Init())
	defer screen.Fini()
	screen.SetSize(width, height)

	suite.app.table.SetRect(0, 0, width, height)
	suite.app.table.Draw(screen)
}

func (suite *AppTestSuite) click(x, y int) bool {
	handler := suite.app.table.MouseHandler()
	event := tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone)
	handler(tview.MouseLeftDown, event, func(tview.Primitive) {})
	consumed, _ := handler(tview.MouseLeftClick, event, func(tview.Primitive) {})
	return consumed
}

func (suite *AppTestSuite) TestEmptyUntilLoaded() {
	suite.Assert().Equal(1, suite.app.table.GetRowCount(), "header only")
	suite.Assert().Equal("Pokemon", suite.app.table.GetCell(0, 0).Text)
	suite.Assert().Equal("Type", suite.app.table.GetCell(0, 1).Text)

	suite.load()

	suite.Assert().Equal(1, suite.reader.calls)
	suite.Assert().Equal([]string{"Bulbasaur", "Ivysaur", "Venusaur", "Charmander", "Pikachu"}, suite.rowNames())
	suite.Assert().Equal("Grass Poison", suite.app.table.GetCell(1, 1).Text)
	suite.Assert().Contains(suite.app.status.GetText(true), "5 of 5 shown")
	suite.Assert().Contains(suite.app.status.GetText(true), "Grass, Poison, Fire, Electric")
}

func (suite *AppTestSuite) TestSearchFiltersRows() {
	suite.load()

	suite.app.State().SetSearchText("SAUR")

	suite.Assert().Equal("SAUR", suite.app.State().SearchText())
	suite.Assert().Equal([]string{"Bulbasaur", "Ivysaur", "Venusaur"}, suite.rowNames())
	suite.Assert().Contains(suite.app.status.GetText(true), "3 of 5 shown")
}

func (suite *AppTestSuite) TestMaxCountAppliesBeforeFilter() {
	suite.app.maxCount = 2
	suite.load()

	suite.app.State().SetSearchText("saur")
	suite.Assert().Equal([]string{"Bulbasaur", "Ivysaur"}, suite.rowNames())
}

func (suite *AppTestSuite) TestActivateRowShowsDetail() {
	suite.load()
	suite.Assert().Equal(0, suite.app.detailStats.GetRowCount(), "no selection, no detail")

	suite.app.activateRow(1)

	suite.Assert().Same(suite.dataset[0], suite.app.State().Selected())
	suite.Assert().Equal("Bulbasaur", suite.app.detailName.GetText(true))
	suite.Require().Equal(7, suite.app.detailStats.GetRowCount())

	expected := [][2]string{
		{"HP", "45"}, {"Attack", "49"}, {"Defense", "49"},
		{"Sp. Attack", "65"}, {"Sp. Defense", "65"}, {"Speed", "45"},
	}
	for i, want := range expected {
		suite.Assert().Equal(want[0], suite.app.detailStats.GetCell(i+1, 0).Text)
		suite.Assert().Equal(want[1], suite.app.detailStats.GetCell(i+1, 1).Text)
	}
	suite.Assert().False(suite.app.modalOpen(), "wide layout uses the side pane")
}

func (suite *AppTestSuite) TestActivateRowOutOfRange() {
	suite.load()

	suite.app.activateRow(0)
	suite.app.activateRow(99)

	suite.Assert().Nil(suite.app.State().Selected())
}

func (suite *AppTestSuite) TestSelectionSurvivesSearch() {
	suite.load()
	suite.app.activateRow(5)
	pikachu := suite.app.State().Selected()
	suite.Require().Equal("Pikachu", pikachu.DisplayName())

	suite.app.State().SetSearchText("saur")

	suite.Assert().Same(pikachu, suite.app.State().Selected())
	suite.Assert().Equal("Pikachu", suite.app.detailName.GetText(true))
}

func (suite *AppTestSuite) TestCursorFollowsSelection() {
	suite.load()
	suite.app.activateRow(3)

	suite.app.State().SetSearchText("venu")
	row, _ := suite.app.table.GetSelection()
	suite.Assert().Equal(1, row)

	suite.app.State().SetSearchText("")
	row, _ = suite.app.table.GetSelection()
	suite.Assert().Equal(3, row)
}

func (suite *AppTestSuite) TestKeyboardNavigationFromSearch() {
	suite.load()

	suite.Assert().Nil(suite.app.captureSearch(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone)))
	suite.Assert().Nil(suite.app.captureSearch(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone)))
	suite.Assert().Nil(suite.app.captureSearch(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)))
	suite.Assert().Equal("Venusaur", suite.app.State().Selected().DisplayName())

	suite.app.captureSearch(tcell.NewEventKey(tcell.KeyPgDn, 0, tcell.ModNone))
	row, _ := suite.app.table.GetSelection()
	suite.Assert().Equal(5, row, "cursor clamps to the last row")

	suite.app.captureSearch(tcell.NewEventKey(tcell.KeyPgUp, 0, tcell.ModNone))
	row, _ = suite.app.table.GetSelection()
	suite.Assert().Equal(1, row, "cursor clamps to the first row")

	key := tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone)
	suite.Assert().Same(key, suite.app.captureSearch(key), "typing reaches the input")
}

func (suite *AppTestSuite) TestFocusReturnsToSearch() {
	suite.load()

	suite.app.app.SetFocus(suite.app.table)
	suite.app.State().SetSelected(suite.dataset[1])
	suite.Assert().True(suite.app.search.HasFocus())
	suite.Assert().False(suite.app.table.HasFocus())

	suite.app.app.SetFocus(suite.app.table)
	suite.app.State().SetSearchText("ivy")
	suite.Assert().True(suite.app.search.HasFocus())
}

func (suite *AppTestSuite) TestNarrowLayoutOpensDialog() {
	suite.load()
	suite.app.setWidth(NarrowWidth - 1)
	suite.Require().True(suite.app.narrow)

	suite.app.activateRow(2)

	suite.Assert().True(suite.app.modalOpen())
	suite.Assert().True(suite.app.modal.HasFocus())
	suite.Assert().Equal("Ivysaur", suite.app.State().Selected().DisplayName())

	suite.app.closeDetail()
	suite.Assert().False(suite.app.modalOpen())
	suite.Assert().True(suite.app.search.HasFocus())
	suite.Assert().Equal("Ivysaur", suite.app.State().Selected().DisplayName(), "closing keeps the selection")
}

func (suite *AppTestSuite) TestClickActivatesRow() {
	suite.load()
	suite.drawTable(60, 12)

	// border on line 0, header on line 1, Bulbasaur on line 2
	suite.Assert().True(suite.click(3, 3))

	suite.Require().NotNil(suite.app.State().Selected())
	suite.Assert().Same(suite.dataset[1], suite.app.State().Selected())
	suite.Assert().Equal("Ivysaur", suite.app.detailName.GetText(true))
	suite.Assert().False(suite.app.modalOpen())
}

func (suite *AppTestSuite) TestClickOpensDialogWhenNarrow() {
	suite.load()
	suite.app.setWidth(NarrowWidth - 1)
	suite.drawTable(60, 12)

	suite.click(3, 3)

	suite.Require().NotNil(suite.app.State().Selected())
	suite.Assert().Equal("Ivysaur", suite.app.State().Selected().DisplayName())
	suite.Assert().True(suite.app.modalOpen())
	row, _ := suite.app.table.GetSelection()
	suite.Assert().Equal(2, row)
}

func (suite *AppTestSuite) TestClickOnHeaderOrBorderIgnored() {
	suite.load()
	suite.drawTable(60, 12)

	suite.click(3, 1)
	suite.click(3, 0)
	suite.click(3, 10)

	suite.Assert().Nil(suite.app.State().Selected())
}

func (suite *AppTestSuite) TestScrollOffsetSurvivesStateChange() {
	var dataset []*types.Creature
	for i := 1; i <= 40; i++ {
		dataset = append(dataset, &types.Creature{
			ID:    i,
			Name:  types.Name{English: fmt.Sprintf("Mon %02d", i)},
			Types: []string{"Normal"},
		})
	}
	suite.reader.records = dataset
	suite.load()

	suite.drawTable(60, 12)
	suite.app.table.SetOffset(20, 0)
	suite.drawTable(60, 12)
	before, _ := suite.app.table.GetOffset()
	suite.Require().Equal(20, before)

	suite.app.State().SetSearchText("mon")
	suite.drawTable(60, 12)

	after, _ := suite.app.table.GetOffset()
	suite.Assert().Equal(before, after, "typing does not jump back to the cursor")
	suite.Assert().Equal(41, suite.app.table.GetRowCount())
}

func (suite *AppTestSuite) TestWideningClosesDialog() {
	suite.load()
	suite.app.setWidth(40)
	suite.app.activateRow(1)
	suite.Require().True(suite.app.modalOpen())

	suite.app.setWidth(NarrowWidth)

	suite.Assert().False(suite.app.narrow)
	suite.Assert().False(suite.app.modalOpen())
}

func (suite *AppTestSuite) TestLoadFailureKeepsTableEmpty() {
	suite.reader.records = nil
	suite.reader.err = errors.New("connection refused")

	suite.NotPanics(suite.load)

	suite.Assert().Equal(1, suite.app.table.GetRowCount())
	suite.Assert().Nil(suite.app.State().Selected())
	suite.Assert().Contains(suite.app.status.GetText(true), "Failed to load dataset: connection refused")
}

func TestAppTestSuite(t *testing.T) {
	suite.Run(t, new(AppTestSuite))
}

func TestStartLoadingDoesNotLeak(t *testing.T) {
	defer goleak.VerifyNone(t)

	a := NewApp(Options{
		Reader:   &stubReader{records: fixtures.SampleDataset()},
		MaxCount: view.NoLimit,
		Timeout:  time.Second,
	})

	updates := make(chan func(), 1)
	a.queue = func(fn func()) { updates <- fn }

	done := a.startLoading(context.Background())
	(<-updates)()
	<-done

	if got := a.table.GetRowCount(); got != 6 {
		t.Fatalf("expected header and 5 rows, got %d", got)
	}
}
