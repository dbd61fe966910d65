package store

import (
	"context"
	"slices"

	"github.com/hungrynow/hungrynow/internal/domain"
)

// Address action types.
const (
	ActionFetchAddresses = "address/fetchAll"
	ActionAddAddress     = "address/add"
	ActionUpdateAddress  = "address/update"
	ActionDeleteAddress  = "address/delete"
)

// AddressState is the address book of the signed-in user.
type AddressState struct {
	Addresses []domain.Address
	Status
}

// AddressUpdate is the input of UpdateAddress.
type AddressUpdate struct {
	ID    string
	Patch domain.AddressPatch
}

var fetchAddresses = Thunk[struct{}, []domain.Address]{
	Type:     ActionFetchAddresses,
	Fallback: "Failed to fetch addresses",
	Run: func(ctx context.Context, sess Session, _ struct{}) ([]domain.Address, error) {
		env, err := sess.Client().GetAddresses(ctx)
		return env.Data, err
	},
}

var addAddress = Thunk[domain.Address, domain.Address]{
	Type:      ActionAddAddress,
	Fallback:  "Failed to add address",
	Exclusive: true,
	Run: func(ctx context.Context, sess Session, a domain.Address) (domain.Address, error) {
		env, err := sess.Client().AddAddress(ctx, a)
		return env.Data, err
	},
}

var updateAddress = Thunk[AddressUpdate, domain.Address]{
	Type:      ActionUpdateAddress,
	Fallback:  "Failed to update address",
	Exclusive: true,
	Run: func(ctx context.Context, sess Session, in AddressUpdate) (domain.Address, error) {
		env, err := sess.Client().UpdateAddress(ctx, in.ID, in.Patch)
		return env.Data, err
	},
}

var deleteAddress = Thunk[string, string]{
	Type:      ActionDeleteAddress,
	Fallback:  "Failed to delete address",
	Exclusive: true,
	Run: func(ctx context.Context, sess Session, id string) (string, error) {
		if _, err := sess.Client().DeleteAddress(ctx, id); err != nil {
			return "", err
		}
		return id, nil
	},
}

// FetchAddresses replaces the address list with the backend's.
func (s *Store) FetchAddresses(ctx context.Context) ([]domain.Address, error) {
	return fetchAddresses.Dispatch(ctx, s, struct{}{})
}

// AddAddress creates an address. A new default clears every other default.
func (s *Store) AddAddress(ctx context.Context, a domain.Address) (domain.Address, error) {
	return addAddress.Dispatch(ctx, s, a)
}

// UpdateAddress applies patch to the address with id.
func (s *Store) UpdateAddress(ctx context.Context, id string, patch domain.AddressPatch) (domain.Address, error) {
	return updateAddress.Dispatch(ctx, s, AddressUpdate{ID: id, Patch: patch})
}

// SetDefaultAddress makes id the only default address.
func (s *Store) SetDefaultAddress(ctx context.Context, id string) (domain.Address, error) {
	yes := true
	return s.UpdateAddress(ctx, id, domain.AddressPatch{IsDefault: &yes})
}

// DeleteAddress removes the address with id.
func (s *Store) DeleteAddress(ctx context.Context, id string) error {
	_, err := deleteAddress.Dispatch(ctx, s, id)
	return err
}

func (st *AddressState) reduce(a Action) {
	switch a.Type {
	case ActionFetchAddresses:
		st.reduceAsync(a, func() string {
			addrs, _ := a.Payload.([]domain.Address)
			st.Addresses = slices.Clone(addrs)
			return "Loaded addresses successfully"
		})
	case ActionAddAddress:
		st.reduceAsync(a, func() string {
			added, _ := a.Payload.(domain.Address)
			if added.IsDefault {
				for i := range st.Addresses {
					st.Addresses[i].IsDefault = false
				}
			}
			st.Addresses = append(st.Addresses, added)
			return "Address added successfully"
		})
	case ActionUpdateAddress:
		st.reduceAsync(a, func() string {
			updated, _ := a.Payload.(domain.Address)
			for i := range st.Addresses {
				if st.Addresses[i].ID == updated.ID {
					st.Addresses[i] = updated
				}
			}
			if updated.IsDefault {
				clearDefaults(st.Addresses, updated.ID)
			}
			return "Address updated successfully"
		})
	case ActionDeleteAddress:
		st.reduceAsync(a, func() string {
			id, _ := a.Payload.(string)
			kept := st.Addresses[:0:0]
			for _, addr := range st.Addresses {
				if addr.ID != id {
					kept = append(kept, addr)
				}
			}
			st.Addresses = kept
			return "Address deleted successfully"
		})
	}
}

// clearDefaults unsets isDefault on every address except keepID.
func clearDefaults(addrs []domain.Address, keepID string) {
	for i := range addrs {
		if addrs[i].ID != keepID {
			addrs[i].IsDefault = false
		}
	}
}
