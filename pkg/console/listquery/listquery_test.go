package listquery

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventra-live/eventra-admin-api/pkg/console/page"
)

func newTestController() *Controller {
	return New(page.Query{Page: 1, PageSize: 10}, 30*time.Millisecond)
}

func waitForChange(t *testing.T, c *Controller) Change {
	t.Helper()
	select {
	case ch := <-c.Changes():
		return ch
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for change event")
		return Change{}
	}
}

func assertNoChange(t *testing.T, c *Controller, within time.Duration) {
	t.Helper()
	select {
	case ch := <-c.Changes():
		t.Fatalf("unexpected change event: %+v", ch)
	case <-time.After(within):
	}
}

func TestSearchDebouncesRapidTyping(t *testing.T) {
	c := newTestController()
	defer c.Close()

	for _, text := range []string{"c", "co", "con", "conf", "confe", "conference"} {
		c.SetSearch(text)
		time.Sleep(2 * time.Millisecond)
	}

	assert.Equal(t, "conference", c.PendingSearch())

	ch := waitForChange(t, c)
	assert.Equal(t, "conference", ch.Query.Search)
	assert.Equal(t, 1, ch.Query.Page)

	assertNoChange(t, c, 80*time.Millisecond)
	assert.Equal(t, uint64(1), c.Generation())
}

func TestSearchResetsPage(t *testing.T) {
	c := newTestController()
	defer c.Close()

	c.SetPage(5)
	waitForChange(t, c)

	c.SetSearch("venue")
	ch := waitForChange(t, c)
	assert.Equal(t, 1, ch.Query.Page)
	assert.Equal(t, "venue", ch.Query.Search)
}

func TestSetPageFiresSynchronously(t *testing.T) {
	c := newTestController()
	defer c.Close()

	c.SetPage(3)

	ch := waitForChange(t, c)
	assert.Equal(t, 3, ch.Query.Page)
	assert.Empty(t, ch.Query.Search)
}

func TestSetPageSamePageIsNoop(t *testing.T) {
	c := newTestController()
	defer c.Close()

	c.SetPage(1)
	assertNoChange(t, c, 50*time.Millisecond)
}

func TestSetFilterResetsPageAndFires(t *testing.T) {
	c := newTestController()
	defer c.Close()

	c.SetPage(2)
	waitForChange(t, c)

	c.SetFilter("isActive", "true")
	ch := waitForChange(t, c)
	assert.Equal(t, 1, ch.Query.Page)
	assert.Equal(t, "true", ch.Query.Filters["isActive"])

	c.SetFilter("isActive", "")
	ch = waitForChange(t, c)
	assert.NotContains(t, ch.Query.Filters, "isActive")
}

func TestSetFilterLeavesInitialMapAlone(t *testing.T) {
	initial := map[string]string{"eventType": "expo"}
	c := New(page.Query{Page: 1, PageSize: 10, Filters: initial}, 30*time.Millisecond)
	defer c.Close()

	c.SetFilter("eventType", "conference")
	c.SetFilter("isActive", "true")
	waitForChange(t, c)
	waitForChange(t, c)

	assert.Equal(t, map[string]string{"eventType": "expo"}, initial)
	assert.Equal(t, "conference", c.Query().Filters["eventType"])
}

func TestGenerationsIncreaseAndStaleDetected(t *testing.T) {
	c := newTestController()
	defer c.Close()

	c.SetPage(2)
	first := waitForChange(t, c)
	c.SetPage(3)
	second := waitForChange(t, c)

	require.Greater(t, second.Generation, first.Generation)
	assert.False(t, c.Latest(first.Generation))
	assert.True(t, c.Latest(second.Generation))
}

func TestSyncPageDoesNotEmit(t *testing.T) {
	c := newTestController()
	defer c.Close()

	c.SyncPage(7)
	assertNoChange(t, c, 50*time.Millisecond)
	assert.Equal(t, 7, c.Query().Page)
}

func TestChangeSnapshotIsIsolated(t *testing.T) {
	c := newTestController()
	defer c.Close()

	c.SetFilter("eventType", "expo")
	ch := waitForChange(t, c)

	ch.Query.Filters["eventType"] = "mutated"
	assert.Equal(t, "expo", c.Query().Filters["eventType"])
}

func TestCloseStopsPendingDebounce(t *testing.T) {
	c := newTestController()

	c.SetSearch("abandoned")
	c.Close()

	_, open := <-c.Changes()
	assert.False(t, open)
}
