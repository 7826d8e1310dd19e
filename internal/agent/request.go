package agent

// Header is a single additional message header.
type Header struct {
	// Name is the header field name (e.g. "Cc", "In-Reply-To").
	Name string

	// Value is the header field value.
	Value string
}

// Action references a deferred host callback by name.
// The dispatch layer never invokes actions; it only inspects their
// presence and passes them through to a fallback composer.
type Action struct {
	// Name identifies the host operation to run.
	Name string

	// Args are opaque arguments for the operation.
	Args []any
}

// Request is the eight-field compose tuple every composer accepts.
// The zero value of each field means "absent".
type Request struct {
	// To is the recipient address. Empty means absent.
	To string

	// Subject is the message subject. Empty means absent.
	Subject string

	// OtherHeaders are additional headers to place in the message.
	OtherHeaders []Header

	// Continue requests resuming a previously saved draft.
	Continue bool

	// SwitchFunc is the host's window/buffer switch callback.
	SwitchFunc func() error

	// YankAction inserts cited material into the draft.
	YankAction *Action

	// SendActions run in the composer after the message is sent.
	SendActions []*Action

	// ReturnAction runs when the composer returns to the caller.
	ReturnAction *Action
}

// Simple reports whether the request is expressible as a bare mailto:
// URI, i.e. none of the six complex fields is set. To and Subject never
// make a request complex.
func (r *Request) Simple() bool {
	return len(r.OtherHeaders) == 0 &&
		!r.Continue &&
		r.SwitchFunc == nil &&
		r.YankAction == nil &&
		len(r.SendActions) == 0 &&
		r.ReturnAction == nil
}
