package store

// defaultErrorMessage is used when a rejection carries no message.
const defaultErrorMessage = "Something went wrong"

// Status is shared by every slice. After a request settles exactly one of
// Error and SuccessMessage is set; the empty string means none.
type Status struct {
	Loading        bool
	Error          string
	SuccessMessage string
}

func (s *Status) pending() {
	*s = Status{Loading: true}
}

func (s *Status) fulfilled(message string) {
	*s = Status{SuccessMessage: message}
}

func (s *Status) rejected(message string) {
	if message == "" {
		message = defaultErrorMessage
	}
	*s = Status{Error: message}
}

// clear drops both messages and leaves Loading alone.
func (s *Status) clear() {
	s.Error = ""
	s.SuccessMessage = ""
}

// reduceAsync applies the status transition for a's phase. On fulfilment
// merge updates the slice's entities and returns the success message.
func (s *Status) reduceAsync(a Action, merge func() string) {
	switch a.Phase {
	case Pending:
		s.pending()
	case Rejected:
		s.rejected(a.Err)
	case Fulfilled:
		s.fulfilled(merge())
	}
}

// messageOr returns the payload when it is a non-empty string, else
// fallback. Used for operations whose success message comes from the
// server.
func messageOr(payload any, fallback string) string {
	if msg, ok := payload.(string); ok && msg != "" {
		return msg
	}
	return fallback
}
