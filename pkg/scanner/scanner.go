package scanner

import (
	"fmt"
	"os"
	"path/filepath"
)

// Scanner walks a directory tree and reports the entries that match a grammar.
type Scanner struct {
	root     string
	grammar  Grammar
	observer Observer
}

// NewScanner creates a new Scanner for the given root directory and grammar.
func NewScanner(root string, g Grammar) (*Scanner, error) {
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("invalid grammar %q: %w", g, err)
	}
	return &Scanner{
		root:     root,
		grammar:  g,
		observer: nopObserver{},
	}, nil
}

// SetObserver sets the observer notified of scan events. A nil observer
// disables notifications.
func (s *Scanner) SetObserver(o Observer) {
	if o == nil {
		o = nopObserver{}
	}
	s.observer = o
}

// Root returns the directory the scanner starts from.
func (s *Scanner) Root() string {
	return s.root
}

// Grammar returns the grammar the scanner matches against.
func (s *Scanner) Grammar() Grammar {
	return s.grammar
}

// FileEntries returns every file below the root whose flattened name
// matches the whole grammar.
func (s *Scanner) FileEntries() []Entry {
	return s.fileEntries(s.root, s.grammar)
}

// DirEntries returns every directory below the root that fully consumes the
// grammar. Container directories that only satisfy part of it are descended
// into but not reported.
func (s *Scanner) DirEntries() []Entry {
	want := s.grammar.ExpectedCaptures()

	var entries []Entry
	for _, e := range s.dirEntries(s.root, s.grammar) {
		if len(e.Captures) == want {
			entries = append(entries, e)
		}
	}
	return entries
}

func (s *Scanner) fileEntries(dir string, g Grammar) []Entry {
	files, dirs := s.list(dir)

	var entries []Entry
	for _, f := range files {
		captures, ok := MatchFileName(g, f.name)
		if !ok {
			continue
		}
		s.observer.Observe(Event{Kind: EventFileMatched, Path: f.path, Captures: captures})
		entries = append(entries, Entry{Path: f.path, Captures: captures})
	}

	for _, d := range dirs {
		m, ok := MatchDirName(g, d.name)
		if !ok || m.Consumed >= len(g) {
			continue
		}
		s.observer.Observe(Event{Kind: EventDescend, Path: d.path, Captures: m.Captures})
		for _, e := range s.fileEntries(d.path, g[m.Consumed:]) {
			entries = append(entries, Entry{Path: e.Path, Captures: prepend(m.Captures, e.Captures)})
		}
	}

	return entries
}

// dirEntries returns fully consuming directories below dir, plus any
// partial ones so the caller can filter on capture count.
func (s *Scanner) dirEntries(dir string, g Grammar) []Entry {
	_, dirs := s.list(dir)

	var entries []Entry
	for _, d := range dirs {
		m, ok := MatchDirName(g, d.name)
		if !ok {
			continue
		}

		if m.Consumed >= len(g) {
			s.observer.Observe(Event{Kind: EventDirMatched, Path: d.path, Captures: m.Captures})
			entries = append(entries, Entry{Path: d.path, Captures: m.Captures})
			continue
		}

		s.observer.Observe(Event{Kind: EventDescend, Path: d.path, Captures: m.Captures})
		for _, e := range s.dirEntries(d.path, g[m.Consumed:]) {
			entries = append(entries, Entry{Path: e.Path, Captures: prepend(m.Captures, e.Captures)})
		}
	}

	return entries
}

type child struct {
	name string
	path string
}

// list reads dir once and splits its children into files and directories.
// Escaped names are dropped here, before any grammar logic runs.
func (s *Scanner) list(dir string) (files, dirs []child) {
	items, err := os.ReadDir(dir)
	if err != nil {
		s.observer.Observe(Event{Kind: EventUnreadable, Path: dir, Err: err})
		return nil, nil
	}

	for _, item := range items {
		name := item.Name()
		path := filepath.Join(dir, name)

		if IsEscaped(name) {
			s.observer.Observe(Event{Kind: EventEscaped, Path: path})
			continue
		}

		// Follow symlinks so a linked directory is scanned like a real one
		mode := item.Type()
		if mode&os.ModeSymlink != 0 {
			info, err := os.Stat(path)
			if err != nil {
				continue
			}
			mode = info.Mode()
		}

		switch {
		case mode.IsDir():
			dirs = append(dirs, child{name: name, path: path})
		case mode.IsRegular():
			files = append(files, child{name: name, path: path})
		}
	}

	return files, dirs
}

// prepend returns a new slice holding ancestors followed by captures.
func prepend(ancestors, captures []string) []string {
	out := make([]string, 0, len(ancestors)+len(captures))
	out = append(out, ancestors...)
	return append(out, captures...)
}
