package store

import (
	"context"
	"slices"

	"github.com/hungrynow/hungrynow/internal/domain"
)

// Voucher action types.
const (
	ActionFetchVouchers        = "voucher/fetch"
	ActionApplyVoucher         = "voucher/apply"
	ActionRemoveAppliedVoucher = "voucher/removeApplied"
)

// VoucherState holds the available vouchers and the one applied to the
// current order, if any.
type VoucherState struct {
	Vouchers []domain.Voucher
	Applied  *domain.AppliedVoucher
	Status
}

var fetchVouchers = Thunk[struct{}, []domain.Voucher]{
	Type:     ActionFetchVouchers,
	Fallback: "Failed to fetch vouchers",
	Run: func(ctx context.Context, sess Session, _ struct{}) ([]domain.Voucher, error) {
		env, err := sess.Client().GetVouchers(ctx)
		return env.Data, err
	},
}

var applyVoucher = Thunk[domain.VoucherApplication, domain.AppliedVoucher]{
	Type:     ActionApplyVoucher,
	Fallback: "Failed to apply voucher",
	Run: func(ctx context.Context, sess Session, in domain.VoucherApplication) (domain.AppliedVoucher, error) {
		env, err := sess.Client().ApplyVoucher(ctx, in.Code, in.Subtotal)
		return env.Data, err
	},
}

// FetchVouchers loads the vouchers the user can apply.
func (s *Store) FetchVouchers(ctx context.Context) ([]domain.Voucher, error) {
	return fetchVouchers.Dispatch(ctx, s, struct{}{})
}

// ApplyVoucher applies code to subtotal. A rejected code leaves the
// previously applied voucher in place.
func (s *Store) ApplyVoucher(ctx context.Context, code string, subtotal float64) (domain.AppliedVoucher, error) {
	return applyVoucher.Dispatch(ctx, s, domain.VoucherApplication{Code: code, Subtotal: subtotal})
}

// RemoveAppliedVoucher drops the applied voucher locally.
func (s *Store) RemoveAppliedVoucher() {
	s.Dispatch(Action{Type: ActionRemoveAppliedVoucher})
}

func (st *VoucherState) reduce(a Action) {
	switch a.Type {
	case ActionFetchVouchers:
		st.reduceAsync(a, func() string {
			vs, _ := a.Payload.([]domain.Voucher)
			st.Vouchers = slices.Clone(vs)
			return "Loaded vouchers successfully"
		})
	case ActionApplyVoucher:
		st.reduceAsync(a, func() string {
			if av, ok := a.Payload.(domain.AppliedVoucher); ok {
				st.Applied = &av
			}
			return "Voucher applied"
		})
	case ActionRemoveAppliedVoucher:
		st.Applied = nil
	}
}

// reprice recomputes the applied discount for a changed cart and drops the
// voucher once the cart no longer qualifies.
func (st *VoucherState) reprice(subtotal float64) {
	if st.Applied == nil {
		return
	}
	d := st.Applied.Voucher.Discount(subtotal)
	if d <= 0 {
		st.Applied = nil
		return
	}
	st.Applied.Discount = d
}
