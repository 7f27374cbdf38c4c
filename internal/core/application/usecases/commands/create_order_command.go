package commands

import (
	"errors"
	"time"

	"parcelgo/internal/core/domain/model/kernel"
	"parcelgo/internal/core/domain/model/order"
	"parcelgo/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to place a new delivery order.
// Encapsulates the fulfillment mode, addresses, parcel attributes, and
// payment preference supplied by the user.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	userID        kernel.UUID
	mode          order.FulfillmentMode
	scheduledAt   *time.Time
	pickup        order.Address
	dropoff       order.Address
	pkg           order.Package
	paymentMethod order.PaymentMethod
	promoCode     string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new delivery order.
// The mode/scheduledAt pairing is validated later by the aggregate; the
// command only requires structurally valid inputs.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	userID kernel.UUID,
	mode order.FulfillmentMode,
	scheduledAt *time.Time,
	pickup order.Address,
	dropoff order.Address,
	pkg order.Package,
	paymentMethod order.PaymentMethod,
	promoCode string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		scheduledAt: scheduledAt,
		promoCode:   promoCode,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setUserID(userID),
		cmd.setMode(mode),
		cmd.setPickup(pickup),
		cmd.setDropoff(dropoff),
		cmd.setPackage(pkg),
		cmd.setPaymentMethod(paymentMethod),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID { return c.orderID }

// UserID returns the identifier of the ordering user.
func (c CreateOrderCommand) UserID() kernel.UUID { return c.userID }

// Mode returns the requested fulfillment mode.
func (c CreateOrderCommand) Mode() order.FulfillmentMode { return c.mode }

// ScheduledAt returns the requested delivery time, nil for on-demand orders.
func (c CreateOrderCommand) ScheduledAt() *time.Time { return c.scheduledAt }

// Pickup returns the pickup address.
func (c CreateOrderCommand) Pickup() order.Address { return c.pickup }

// Dropoff returns the dropoff address.
func (c CreateOrderCommand) Dropoff() order.Address { return c.dropoff }

// Package returns the parcel attributes.
func (c CreateOrderCommand) Package() order.Package { return c.pkg }

// PaymentMethod returns the chosen settlement method.
func (c CreateOrderCommand) PaymentMethod() order.PaymentMethod { return c.paymentMethod }

// PromoCode returns the supplied promo code; may be empty.
func (c CreateOrderCommand) PromoCode() string { return c.promoCode }

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	c.userID = userID
	return nil
}

func (c *CreateOrderCommand) setMode(mode order.FulfillmentMode) error {
	if err := mode.Validate(); err != nil {
		return err
	}
	c.mode = mode
	return nil
}

func (c *CreateOrderCommand) setPickup(pickup order.Address) error {
	if err := pickup.Validate(); err != nil {
		return err
	}
	c.pickup = pickup
	return nil
}

func (c *CreateOrderCommand) setDropoff(dropoff order.Address) error {
	if err := dropoff.Validate(); err != nil {
		return err
	}
	c.dropoff = dropoff
	return nil
}

func (c *CreateOrderCommand) setPackage(pkg order.Package) error {
	if err := pkg.Validate(); err != nil {
		return err
	}
	c.pkg = pkg
	return nil
}

func (c *CreateOrderCommand) setPaymentMethod(paymentMethod order.PaymentMethod) error {
	if err := paymentMethod.Validate(); err != nil {
		return err
	}
	c.paymentMethod = paymentMethod
	return nil
}
