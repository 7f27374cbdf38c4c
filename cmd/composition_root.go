package cmd

import (
	"encoding/json"
	"fmt"

	"parcelgo/internal/adapters/out/geo"
	"parcelgo/internal/adapters/out/notify"
	"parcelgo/internal/adapters/out/payment"
	"parcelgo/internal/adapters/out/postgres"
	"parcelgo/internal/core/application/usecases/commands"
	"parcelgo/internal/core/application/usecases/queries"
	"parcelgo/internal/core/domain/services"
	"parcelgo/internal/core/ports"

	"github.com/labstack/gommon/log"
	"gorm.io/gorm"
)

// CompositionRoot wires adapters, domain services, and use case handlers.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	pricing  services.PricingEngine
	planner  services.AssignmentPlanner
	geocoder ports.Geocoder
	payments ports.PaymentGateway
	notifier ports.StatusNotifier
}

// NewCompositionRoot builds the object graph from the loaded configuration.
func NewCompositionRoot(configs Config, gormDB *gorm.DB) (CompositionRoot, error) {
	promos, err := parsePromoTable(configs.PromoTableJSON)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("parse promo table: %w", err)
	}

	pricing, err := services.NewPricingEngine(
		configs.PricingBaseFare,
		configs.PricingPerKm,
		configs.PricingPerKg,
		configs.PricingCurrency,
		promos,
	)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("create pricing engine: %w", err)
	}

	planner, err := services.NewAssignmentPlanner(configs.AvgSpeedKmh)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("create assignment planner: %w", err)
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		pricing:    pricing,
		planner:    planner,
		geocoder:   geo.NewClient(configs.GeoServiceURL),
		payments:   payment.NewClient(configs.PaymentServiceURL),
		notifier:   notify.NewLogNotifier(log.New("tracking")),
	}, nil
}

func parsePromoTable(raw string) (map[string]services.Promo, error) {
	if raw == "" {
		return nil, nil
	}

	var promos map[string]services.Promo
	if err := json.Unmarshal([]byte(raw), &promos); err != nil {
		return nil, err
	}
	return promos, nil
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.geocoder, c.notifier)
}

func (c *CompositionRoot) CreateQuoteOrderCommandHandler() commands.QuoteOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewQuoteOrderCommandHandler(f, c.pricing, c.notifier)
}

func (c *CompositionRoot) CreateConfirmOrderCommandHandler() commands.ConfirmOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewConfirmOrderCommandHandler(f, c.payments, c.notifier)
}

func (c *CompositionRoot) CreateAssignOrderCommandHandler() commands.AssignOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignOrderCommandHandler(f, c.planner, c.notifier)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateStartTransitCommandHandler() commands.StartTransitCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewStartTransitCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateCompleteOrderCommandHandler() commands.CompleteOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteOrderCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateDispatchOrdersCommandHandler() commands.DispatchOrdersCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewDispatchOrdersCommandHandler(f, c.planner, c.notifier)
}

func (c *CompositionRoot) CreateCreateSlotCommandHandler() commands.CreateSlotCommandHandler {
	var f commands.SlotUoWFactory = FuncSlotUoWFactory(func() commands.SlotUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateSlotCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateCourierCommandHandler() commands.CreateCourierCommandHandler {
	var f commands.CourierUoWFactory = FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateCourierCommandHandler(f)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUncompletedOrdersQueryHandler() queries.GetUncompletedOrdersQueryHandler {
	return queries.NewGetUncompletedOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAvailableSlotsQueryHandler() queries.GetAvailableSlotsQueryHandler {
	return queries.NewGetAvailableSlotsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAllCouriersQueryHandler() queries.GetAllCouriersQueryHandler {
	return queries.NewGetAllCouriersQueryHandler(c.gormDB)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncSlotUoWFactory func() commands.SlotUoW

func (f FuncSlotUoWFactory) Create() commands.SlotUoW {
	return f()
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
