package upload

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studynav/internal/upload"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func press(s *UploadScreen, code rune) tea.Cmd {
	_, cmd := s.Update(tea.KeyPressMsg{Code: code})
	return cmd
}

func TestUploadScreen_AddAndProgress(t *testing.T) {
	s := New(0)
	s.input.SetValue(writeFile(t, "notes.txt", "binary trees and heaps\n"))

	cmd := press(s, tea.KeyEnter)
	if cmd == nil {
		t.Fatal("adding a file should start the ticker")
	}
	files := s.Queue().Files()
	if len(files) != 1 || files[0].Status != upload.StatusUploading {
		t.Fatalf("files = %+v", files)
	}
	if s.input.Value() != "" {
		t.Error("input should clear after adding")
	}

	added := files[0].AddedAt
	_, cmd = s.Update(tickMsg(added.Add(time.Second)))
	if cmd == nil {
		t.Fatal("ticker should continue while in flight")
	}
	if got := s.Queue().Files()[0].Progress; got != 50 {
		t.Errorf("progress after 1s = %d, want 50", got)
	}
	if !strings.Contains(s.View(100, 40), "notes.txt") || !strings.Contains(s.View(100, 40), "50%") {
		t.Error("view should list the file with its progress")
	}

	_, cmd = s.Update(tickMsg(added.Add(4 * time.Second)))
	if cmd != nil {
		t.Error("ticker should stop once every file is done")
	}
	if got := s.Queue().Files()[0].Status; got != upload.StatusComplete {
		t.Errorf("status = %s", got)
	}
	if !strings.Contains(s.View(100, 40), "Ready") {
		t.Error("completed file should show Ready")
	}
}

func TestUploadScreen_RejectedType(t *testing.T) {
	s := New(0)
	s.input.SetValue(writeFile(t, "game.exe", "MZ"))

	if cmd := press(s, tea.KeyEnter); cmd != nil {
		t.Error("a rejected file should not start the ticker")
	}
	files := s.Queue().Files()
	if len(files) != 1 || files[0].Status != upload.StatusError {
		t.Fatalf("files = %+v", files)
	}
	if !strings.Contains(s.View(100, 40), "unsupported file type") {
		t.Error("view should show the rejection reason")
	}
}

func TestUploadScreen_MissingFile(t *testing.T) {
	s := New(0)
	s.input.SetValue(filepath.Join(t.TempDir(), "nope.pdf"))
	press(s, tea.KeyEnter)

	if s.Queue().Len() != 0 {
		t.Error("missing file should not be queued")
	}
	if !strings.Contains(s.View(100, 40), "No such file") {
		t.Error("expected missing file message")
	}
	if !s.Capturing() {
		t.Error("the typed path stays in the field")
	}
}

func TestUploadScreen_RemoveFromList(t *testing.T) {
	s := New(0)
	for _, name := range []string{"a.txt", "b.txt"} {
		s.input.SetValue(writeFile(t, name, "x"))
		press(s, tea.KeyEnter)
	}

	press(s, tea.KeyTab)
	if !s.listFocus || s.Capturing() {
		t.Fatal("tab should focus the file list")
	}
	press(s, tea.KeyDown)
	press(s, 'x')

	files := s.Queue().Files()
	if len(files) != 1 || files[0].Name != "a.txt" {
		t.Fatalf("after remove: %+v", files)
	}
	press(s, 'x')
	if s.Queue().Len() != 0 || s.listFocus {
		t.Error("removing the last file should return focus to the input")
	}
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/learner")
	if got := expandHome(" ~/notes.pdf "); got != "/home/learner/notes.pdf" {
		t.Errorf("expandHome = %q", got)
	}
	if got := expandHome("/tmp/a.pdf"); got != "/tmp/a.pdf" {
		t.Errorf("expandHome = %q", got)
	}
}
