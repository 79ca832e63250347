// Package reading tracks one reader's progress through a book against a
// page deadline. Entries are kept in memory, newest last.
package reading

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"
)

var (
	// ErrNoPage is returned when a submitted page is empty or zero.
	ErrNoPage = errors.New("reading: no page")

	// ErrPageOutOfRange is returned for a page past the end of the book.
	ErrPageOutOfRange = errors.New("reading: page out of range")
)

// Progress status labels.
const (
	StatusBehind  = "Behind Schedule"
	StatusOnTrack = "On Track"
	StatusAhead   = "Ahead of Schedule"
)

var nonWord = regexp.MustCompile(`\W`)

// Book is the book being read.
type Book struct {
	Title string
	Slug  string
	Pages int
}

// NewBook returns a book with its slug derived from the title.
func NewBook(title string, pages int) Book {
	return Book{
		Title: title,
		Slug:  strings.ToLower(nonWord.ReplaceAllString(title, "-")),
		Pages: pages,
	}
}

// Deadline is the page window a reader should be in by EndsOn.
type Deadline struct {
	StartPage int
	Page      int
	EndsOn    time.Time
}

// Compare places page relative to the deadline window:
// -1 before StartPage, 1 past Page, 0 inside.
func (d Deadline) Compare(page int) int {
	switch {
	case page < d.StartPage:
		return -1
	case page > d.Page:
		return 1
	default:
		return 0
	}
}

// String formats the deadline as "Page 350 by March 01, 2026".
func (d Deadline) String() string {
	if d.EndsOn.IsZero() {
		return fmt.Sprintf("Page %d", d.Page)
	}
	return fmt.Sprintf("Page %d by %s", d.Page, d.EndsOn.Format("January 02, 2006"))
}

// Entry is one recorded page.
type Entry struct {
	Page      int
	CreatedAt time.Time
}

// Log is a concurrency-safe in-memory entry log.
type Log struct {
	book     Book
	deadline Deadline
	now      func() time.Time

	mu      sync.RWMutex
	entries []Entry
}

// Option configures a Log.
type Option func(*Log)

// WithClock sets the time source stamped on entries.
func WithClock(now func() time.Time) Option {
	return func(l *Log) {
		if now != nil {
			l.now = now
		}
	}
}

// NewLog returns an empty log for book.
func NewLog(book Book, deadline Deadline, opts ...Option) *Log {
	l := &Log{book: book, deadline: deadline, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Book returns the tracked book.
func (l *Log) Book() Book {
	return l.book
}

// Deadline returns the current deadline.
func (l *Log) Deadline() Deadline {
	return l.deadline
}

// Record validates page and appends it to the log.
func (l *Log) Record(page int) (Entry, error) {
	if page <= 0 {
		return Entry{}, ErrNoPage
	}
	if page > l.book.Pages {
		return Entry{}, fmt.Errorf("%w: %s has %d pages", ErrPageOutOfRange, l.book.Title, l.book.Pages)
	}

	e := Entry{Page: page, CreatedAt: l.now()}
	l.mu.Lock()
	l.entries = append(l.entries, e)
	l.mu.Unlock()
	return e, nil
}

// Recent returns up to n entries, newest first.
func (l *Log) Recent(n int) []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if n > len(l.entries) {
		n = len(l.entries)
	}
	out := make([]Entry, 0, n)
	for i := len(l.entries) - 1; i >= len(l.entries)-n; i-- {
		out = append(out, l.entries[i])
	}
	return out
}

// Graph returns each entry compared with the deadline, oldest first.
func (l *Log) Graph() []int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]int, len(l.entries))
	for i, e := range l.entries {
		out[i] = l.deadline.Compare(e.Page)
	}
	return out
}

// GraphString joins Graph with commas, the format read by the sparkline.
func (l *Log) GraphString() string {
	values := l.Graph()
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

// Status describes the latest entry against the deadline.
// A reader with no entries is behind.
func (l *Log) Status() string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if len(l.entries) == 0 {
		return StatusBehind
	}
	switch l.deadline.Compare(l.entries[len(l.entries)-1].Page) {
	case 1:
		return StatusAhead
	case 0:
		return StatusOnTrack
	default:
		return StatusBehind
	}
}

// Percent returns the latest page as a percentage of the book.
func (l *Log) Percent() float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if len(l.entries) == 0 || l.book.Pages == 0 {
		return 0
	}
	return float64(l.entries[len(l.entries)-1].Page) / float64(l.book.Pages) * 100
}

// Message turns a Record or ParsePage error into text for the reader.
func (l *Log) Message(err error) string {
	switch {
	case errors.Is(err, ErrNoPage):
		return "Please specify a page."
	case errors.Is(err, ErrPageOutOfRange):
		return fmt.Sprintf("%s only has %d pages.", l.book.Title, l.book.Pages)
	default:
		return "Your page could not be recorded."
	}
}

var nonDigit = regexp.MustCompile(`\D`)

// ParsePage reads a page number from form input, ignoring every non-digit
// so "p. 1,079" reads as 1079. Input without digits yields ErrNoPage.
func ParsePage(raw string) (int, error) {
	digits := nonDigit.ReplaceAllString(raw, "")
	if digits == "" {
		return 0, ErrNoPage
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrPageOutOfRange, digits)
	}
	return n, nil
}
