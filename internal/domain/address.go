package domain

// Address is a delivery address in a user's address book. ID is empty
// until the backend has persisted it.
type Address struct {
	ID            string  `json:"_id,omitempty"`
	Label         string  `json:"label" validate:"required,max=50"`
	AddressDetail string  `json:"addressDetail" validate:"required,max=255"`
	Latitude      float64 `json:"latitude" validate:"latitude"`
	Longitude     float64 `json:"longitude" validate:"longitude"`
	IsDefault     bool    `json:"isDefault"`
}

// AddressPatch is a partial update; nil fields are left unchanged.
type AddressPatch struct {
	Label         *string  `json:"label,omitempty" validate:"omitempty,min=1,max=50"`
	AddressDetail *string  `json:"addressDetail,omitempty" validate:"omitempty,min=1,max=255"`
	Latitude      *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude     *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
	IsDefault     *bool    `json:"isDefault,omitempty"`
}

// Apply returns a copy of a with the patch's non-nil fields set.
func (p AddressPatch) Apply(a Address) Address {
	if p.Label != nil {
		a.Label = *p.Label
	}
	if p.AddressDetail != nil {
		a.AddressDetail = *p.AddressDetail
	}
	if p.Latitude != nil {
		a.Latitude = *p.Latitude
	}
	if p.Longitude != nil {
		a.Longitude = *p.Longitude
	}
	if p.IsDefault != nil {
		a.IsDefault = *p.IsDefault
	}
	return a
}

// IsEmpty reports whether the patch changes nothing.
func (p AddressPatch) IsEmpty() bool {
	return p.Label == nil && p.AddressDetail == nil && p.Latitude == nil && p.Longitude == nil && p.IsDefault == nil
}

// DefaultAddress returns the address flagged as default, if any.
func DefaultAddress(addresses []Address) (Address, bool) {
	for _, a := range addresses {
		if a.IsDefault {
			return a, true
		}
	}
	return Address{}, false
}
