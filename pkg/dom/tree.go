package dom

// Element is a node handle owned by a Tree.
// Handles are only meaningful to the Tree that produced them.
type Element interface {
	Tag() string
	Attr(name string) (string, bool)
}

// Attr is an element attribute.
type Attr struct {
	Name  string
	Value string
}

// A is shorthand for building an Attr.
func A(name, value string) Attr {
	return Attr{Name: name, Value: value}
}

// ClickHandler handles a click delivered to, or bubbling through, an element.
type ClickHandler func(ev *Event)

// Tree is the page manipulation surface used by page-ready routines.
// All methods are synchronous; a Tree is not safe for concurrent use.
type Tree interface {
	// ByID returns the element with the given id.
	ByID(id string) (Element, bool)
	// FirstByClass returns the first element in document order carrying class.
	FirstByClass(class string) (Element, bool)
	// Create returns a new detached element.
	Create(tag string, attrs ...Attr) Element
	// SetAttr sets or replaces an attribute.
	SetAttr(el Element, name, value string)
	// Text returns the text content of el and its descendants.
	Text(el Element) string
	// SetText replaces the children of el with a single text node.
	SetText(el Element, text string)
	// AppendHTML parses markup as a fragment and appends it to parent.
	AppendHTML(parent Element, markup string) error
	// Append moves child to the end of parent's children.
	Append(parent, child Element)
	// Prepend moves child to the start of parent's children.
	Prepend(parent, child Element)
	// Parent returns the parent element, if any.
	Parent(el Element) (Element, bool)
	// Remove detaches el and its subtree.
	Remove(el Element)
	// Focus makes el the focused element.
	Focus(el Element)
	// OnClick subscribes fn to clicks on el and its descendants.
	OnClick(el Element, fn ClickHandler)
}

// Event is a click event. Handlers that replace the browser's default
// action, such as following href="#", must call PreventDefault.
type Event struct {
	Target           Element
	Current          Element
	defaultPrevented bool
	stopped          bool
}

// PreventDefault cancels the default action of the event.
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether a handler called PreventDefault.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// StopPropagation stops the event from reaching further ancestors.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// Stopped reports whether a handler called StopPropagation.
func (e *Event) Stopped() bool {
	return e.stopped
}

// Ancestor walks up levels parents from el.
func Ancestor(t Tree, el Element, levels int) (Element, bool) {
	cur := el
	for range levels {
		p, ok := t.Parent(cur)
		if !ok {
			return nil, false
		}
		cur = p
	}
	return cur, cur != nil
}
