package store

import "strings"

// Phase is the stage of an asynchronous action. Synchronous actions, such
// as clearing messages, have no phase.
type Phase string

const (
	PhaseNone Phase = ""
	Pending   Phase = "pending"
	Fulfilled Phase = "fulfilled"
	Rejected  Phase = "rejected"
)

// Action is what reducers and subscribers see. Type is "<slice>/<name>".
type Action struct {
	Type      string
	Phase     Phase
	RequestID string
	// Arg is the thunk input; Payload is its result on fulfilment.
	Arg     any
	Payload any
	// Err is the rejection message.
	Err string
}

// String formats the action as type/phase.
func (a Action) String() string {
	if a.Phase == PhaseNone {
		return a.Type
	}
	return a.Type + "/" + string(a.Phase)
}

// Slice returns the slice name prefix of the action type.
func (a Action) Slice() string {
	slice, _, _ := strings.Cut(a.Type, "/")
	return slice
}

// Settled reports whether the action ends a request.
func (a Action) Settled() bool {
	return a.Phase == Fulfilled || a.Phase == Rejected
}

// Slice names.
const (
	SliceAddress      = "address"
	SliceUser         = "user"
	SliceAuth         = "auth"
	SliceCatalog      = "catalog"
	SliceCart         = "cart"
	SliceFavorite     = "favorite"
	SliceRating       = "rating"
	SliceVoucher      = "voucher"
	SliceNotification = "notification"
)

// Slices lists every slice name.
var Slices = []string{
	SliceAddress, SliceUser, SliceAuth, SliceCatalog, SliceCart,
	SliceFavorite, SliceRating, SliceVoucher, SliceNotification,
}

// ClearMessages returns the action that clears a slice's error and success
// message.
func ClearMessages(slice string) Action {
	return Action{Type: slice + "/clearMessages"}
}

func isClearMessages(a Action) bool {
	return a.Phase == PhaseNone && strings.HasSuffix(a.Type, "/clearMessages")
}
