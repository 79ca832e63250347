package cookie

import (
	"strconv"
	"strings"
	"time"
)

const (
	day         = 24 * time.Hour
	defaultPath = "/"
)

// Jar is the ambient cookie string of a page.
// Cookie returns every visible cookie as "a=1; b=2". SetCookie applies one
// assignment such as "a=1; expires=Thu, 01 Jan 1970 00:00:00 GMT; path=/".
type Jar interface {
	Cookie() string
	SetCookie(assignment string)
}

// Store creates, reads and erases cookies in a Jar.
type Store struct {
	jar  Jar
	now  func() time.Time
	path string
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock sets the time source used to compute expiry dates.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithStorePath sets the path attribute written with every cookie.
// Defaults to "/".
func WithStorePath(path string) StoreOption {
	return func(s *Store) {
		if path != "" {
			s.path = path
		}
	}
}

// NewStore returns a Store writing to jar.
func NewStore(jar Jar, opts ...StoreOption) *Store {
	s := &Store{
		jar:  jar,
		now:  time.Now,
		path: defaultPath,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create writes name=value to the jar.
// A non-zero days sets an expiry of now plus days; zero makes a session cookie.
// Name and value are written as given, so callers must escape ';' and '='.
func (s *Store) Create(name, value string, days int) {
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('=')
	b.WriteString(value)
	if days != 0 {
		b.WriteString("; expires=")
		b.WriteString(FormatExpires(s.now().Add(time.Duration(days) * day)))
	}
	b.WriteString("; path=")
	b.WriteString(s.path)

	s.jar.SetCookie(b.String())
}

// Read returns the value of the first cookie called name.
// The second result is false when the jar has no such cookie.
func (s *Store) Read(name string) (string, bool) {
	prefix := name + "="
	for _, entry := range Scan(s.jar.Cookie()) {
		if strings.HasPrefix(entry, prefix) {
			return entry[len(prefix):], true
		}
	}
	return "", false
}

// Erase removes name by overwriting it with an already expired cookie.
func (s *Store) Erase(name string) {
	s.Create(name, "", -1)
}

// Scan splits a jar string into its entries.
// Leading spaces are trimmed from each entry; nothing else is normalised.
func Scan(jar string) []string {
	if jar == "" {
		return nil
	}
	entries := strings.Split(jar, ";")
	for i, e := range entries {
		entries[i] = strings.TrimLeft(e, " ")
	}
	return entries
}

// Pair is one name=value entry of a jar string.
type Pair struct {
	Name  string
	Value string
}

// Pairs scans a jar string into name/value pairs.
// Entries without '=' become a pair with an empty name, as browsers do.
func Pairs(jar string) []Pair {
	entries := Scan(jar)
	out := make([]Pair, 0, len(entries))
	for _, e := range entries {
		if e == "" {
			continue
		}
		name, value, ok := strings.Cut(e, "=")
		if !ok {
			out = append(out, Pair{Value: name})
			continue
		}
		out = append(out, Pair{Name: name, Value: value})
	}
	return out
}

// FormatExpires formats t for the expires attribute.
func FormatExpires(t time.Time) string {
	return t.UTC().Format(expiresLayout)
}

// ParseExpires parses an expires attribute value.
func ParseExpires(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	for _, layout := range []string{expiresLayout, time.RFC850, time.ANSIC, "Mon, 02-Jan-2006 15:04:05 MST"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrBadHeader
}

const expiresLayout = "Mon, 02 Jan 2006 15:04:05 GMT"

// Assignment is a parsed SetCookie argument.
type Assignment struct {
	Expires *time.Time
	MaxAge  *int
	Name    string
	Value   string
	Path    string
	Domain  string
	Secure  bool
}

// Expired reports whether the assignment deletes the cookie at now.
func (a Assignment) Expired(now time.Time) bool {
	if a.MaxAge != nil {
		return *a.MaxAge <= 0
	}
	return a.Expires != nil && !a.Expires.After(now)
}

// ParseAssignment parses one "name=value; attr=..." cookie assignment.
// Unknown attributes are ignored. An assignment without '=' in its first
// segment is rejected with ErrBadHeader.
func ParseAssignment(s string) (Assignment, error) {
	parts := strings.Split(s, ";")
	name, value, ok := strings.Cut(parts[0], "=")
	if !ok {
		return Assignment{}, ErrBadHeader
	}

	a := Assignment{
		Name:  strings.TrimSpace(name),
		Value: strings.TrimSpace(value),
	}

	for _, attr := range parts[1:] {
		key, val, _ := strings.Cut(strings.TrimSpace(attr), "=")
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "expires":
			if t, err := ParseExpires(val); err == nil {
				a.Expires = &t
			}
		case "max-age":
			if n, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
				a.MaxAge = &n
			}
		case "path":
			a.Path = strings.TrimSpace(val)
		case "domain":
			a.Domain = strings.TrimSpace(val)
		case "secure":
			a.Secure = true
		}
	}

	return a, nil
}
