package store

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	// ErrStoreIsNotConstructed is returned when a Store was not created through NewStore or RestoreStore.
	ErrStoreIsNotConstructed = errors.New("Store must be created via NewStore constructor")
	// ErrNameIsRequired is returned when a store has an empty name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
)

// Type tags how a store is operated. It is used for reporting only and never
// influences assignment eligibility.
type Type int

const (
	// TypeUnknown is the zero value and never valid.
	TypeUnknown Type = iota
	// TypeOwn is a store operated by the platform.
	TypeOwn
	// TypePartner is a third-party store fulfilling on the platform's behalf.
	TypePartner
)

func getTypeStrings() map[Type]string {
	return map[Type]string{
		TypeUnknown: "UNKNOWN",
		TypeOwn:     "OWN",
		TypePartner: "PARTNER",
	}
}

// ParseType converts "OWN" or "PARTNER" into a Type.
func ParseType(s string) (Type, error) {
	switch s {
	case "OWN":
		return TypeOwn, nil
	case "PARTNER":
		return TypePartner, nil
	}
	return TypeUnknown, errs.NewValueIsInvalidErrorWithCause("type", fmt.Errorf("%q is not a valid store type", s))
}

// String implements fmt.Stringer.
func (t Type) String() string {
	if s, ok := getTypeStrings()[t]; ok {
		return s
	}
	return getTypeStrings()[TypeUnknown]
}

// Validate rejects TypeUnknown and values outside the enum.
func (t Type) Validate() error {
	if t != TypeOwn && t != TypePartner {
		return errs.NewValueIsInvalidErrorWithCause("type", fmt.Errorf("%d is not a valid store type", t))
	}
	return nil
}

// Store is a fulfillment location. A store is eligible for assignment when it is active
// and its coordinates are configured.
//
// Example:
//
//	loc, _ := kernel.NewLocation(6.5964, 3.3486)
//	ikeja, _ := store.NewStore(kernel.NewUUID(), "Ikeja", &loc, store.TypeOwn)
//	ikeja.IsEligible() // true
type Store struct {
	id        kernel.UUID
	name      string
	location  *kernel.Location
	storeType Type
	active    bool
	guard     guard.ConstructorGuard
}

// NewStore creates an active store. location may be nil for a store whose coordinates are
// not configured yet; such a store is never selected by the locator.
func NewStore(id kernel.UUID, name string, location *kernel.Location, storeType Type) (*Store, error) {
	return RestoreStore(id, name, location, storeType, true)
}

// RestoreStore rebuilds a store from storage.
func RestoreStore(id kernel.UUID, name string, location *kernel.Location, storeType Type, active bool) (*Store, error) {
	s := &Store{
		active: active,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setName(name),
		s.setLocation(location),
		s.setType(storeType),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate ensures the store was created through a constructor.
func (s *Store) Validate() error {
	if s == nil {
		return ErrStoreIsNotConstructed
	}
	return s.guard.Validate(ErrStoreIsNotConstructed)
}

// ID returns the store identifier.
func (s *Store) ID() kernel.UUID {
	return s.id
}

// Name returns the display name.
func (s *Store) Name() string {
	return s.name
}

// Location returns the configured coordinates, nil when unconfigured.
func (s *Store) Location() *kernel.Location {
	if s.location == nil {
		return nil
	}
	l := *s.location
	return &l
}

// Type returns the operating model tag.
func (s *Store) Type() Type {
	return s.storeType
}

// IsActive reports the active flag.
func (s *Store) IsActive() bool {
	return s.active
}

// IsEligible reports whether the store can fulfil new orders.
func (s *Store) IsEligible() bool {
	return s.active && s.location != nil
}

func (s *Store) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Store) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	s.name = name
	return nil
}

func (s *Store) setLocation(location *kernel.Location) error {
	if location == nil {
		s.location = nil
		return nil
	}
	if err := location.Validate(); err != nil {
		return err
	}
	l := *location
	s.location = &l
	return nil
}

func (s *Store) setType(t Type) error {
	if err := t.Validate(); err != nil {
		return err
	}
	s.storeType = t
	return nil
}
