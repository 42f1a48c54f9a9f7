package views

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"
)

func TestRenderHelpLine_SkipsDisabled(t *testing.T) {
	off := key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "hidden"))
	off.SetEnabled(false)

	line := RenderHelpLine(BrowserKeys.Add, off, BrowserKeys.Quit)
	if !strings.Contains(line, "add") || !strings.Contains(line, "quit") {
		t.Errorf("expected add and quit in %q", line)
	}
	if strings.Contains(line, "hidden") {
		t.Errorf("disabled binding rendered in %q", line)
	}
}

func TestViewBuilder_Order(t *testing.T) {
	out := NewViewBuilder().
		Title("liver").
		Line("node_0").
		Muted("unplaced").
		Message("", false).
		Message("saved", false).
		Help(BrowserKeys.Help).
		String()

	order := []string{"liver", "node_0", "unplaced", "saved", "help"}
	last := -1
	for _, s := range order {
		i := strings.Index(out, s)
		if i <= last {
			t.Fatalf("expected %q after position %d in %q", s, last, out)
		}
		last = i
	}
	if RenderMessage("", true) != "" {
		t.Error("expected empty message to render nothing")
	}
}

func TestBrowser_ViewListsNodes(t *testing.T) {
	store := openStore(t)
	m := NewBrowserModel(t.Context(), store, Services{})
	loadBrowser(t, m, seedSession(t, store))

	out := m.View()
	for _, id := range []string{"liver", "node_0", "node_1", "node_2", "node_3", "strategy all-in-one"} {
		if !strings.Contains(out, id) {
			t.Errorf("expected %q in browser view", id)
		}
	}
}
