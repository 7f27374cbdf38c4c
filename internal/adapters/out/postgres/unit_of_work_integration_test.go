package postgres_test

import (
	"context"
	"testing"
	"time"

	"parcelgo/internal/adapters/out/postgres"
	"parcelgo/internal/adapters/out/postgres/courierrepo"
	"parcelgo/internal/adapters/out/postgres/orderrepo"
	"parcelgo/internal/adapters/out/postgres/slotrepo"
	"parcelgo/internal/core/domain/model/courier"
	"parcelgo/internal/core/domain/model/kernel"
	"parcelgo/internal/core/domain/model/order"
	"parcelgo/internal/core/domain/model/slot"
	"parcelgo/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type UnitOfWorkTestSuite struct {
	suite.Suite
	container *pgcontainer.PostgresContainer
	db        *gorm.DB
	factory   *postgres.GormUnitOfWorkFactory
}

func (s *UnitOfWorkTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := pgcontainer.Run(ctx,
		"postgres:15-alpine",
		pgcontainer.WithDatabase("testdb"),
		pgcontainer.WithUsername("testuser"),
		pgcontainer.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	s.Require().NoError(err)
	s.db = db

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&slotrepo.SlotDTO{},
		&courierrepo.CourierDTO{},
	)
	s.Require().NoError(err)

	s.factory = postgres.NewGormUnitOfWorkFactory(db)
}

func (s *UnitOfWorkTestSuite) TearDownSuite() {
	if s.container != nil {
		err := s.container.Terminate(context.Background())
		s.Require().NoError(err)
	}
}

func (s *UnitOfWorkTestSuite) SetupTest() {
	err := s.db.Exec("TRUNCATE TABLE orders, slots, couriers").Error
	s.Require().NoError(err)
}

func (s *UnitOfWorkTestSuite) newOrder() *order.Order {
	point, err := kernel.NewGeoPoint(12.9716, 77.5946)
	s.Require().NoError(err)

	pickup, err := order.NewAddress("Asha", "", "14 MG Road", "", "Bengaluru", "KA", "560001", &point)
	s.Require().NoError(err)

	dropoff, err := order.NewAddress("Vikram", "", "2 Brigade Road", "", "Bengaluru", "KA", "560025", &point)
	s.Require().NoError(err)

	pkg, err := order.NewPackage("documents", 2.0, nil, nil)
	s.Require().NoError(err)

	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), order.ModeOnDemand, nil,
		pickup, dropoff, pkg, order.PaymentCOD, "",
		time.Now().Truncate(time.Microsecond))
	s.Require().NoError(err)
	return o
}

func (s *UnitOfWorkTestSuite) newSlot(capacity int) *slot.Slot {
	startAt := time.Now().Add(2 * time.Hour).Truncate(time.Microsecond)
	created, err := slot.NewSlot(kernel.NewUUID(), startAt, startAt.Add(2*time.Hour), capacity)
	s.Require().NoError(err)
	return created
}

func (s *UnitOfWorkTestSuite) TestCommit_PersistsAcrossRepositories() {
	ctx := context.Background()
	o := s.newOrder()
	reserved := s.newSlot(3)

	location, err := kernel.NewGeoPoint(12.9352, 77.6245)
	s.Require().NoError(err)
	c, err := courier.NewCourier(kernel.NewUUID(), "Ravi", "KA01AB1234", &location)
	s.Require().NoError(err)

	uow := s.factory.Create()
	s.Require().NoError(uow.Begin(ctx))

	s.Require().NoError(uow.OrderRepository().Add(ctx, o))
	s.Require().NoError(uow.SlotRepository().Add(ctx, reserved))
	s.Require().NoError(uow.CourierRepository().Add(ctx, c))

	s.Require().NoError(uow.Commit(ctx))

	check := s.factory.Create()
	loaded, err := check.OrderRepository().Get(ctx, o.ID())
	s.Require().NoError(err)
	s.True(loaded.ID().IsEqual(o.ID()))

	loadedSlot, err := check.SlotRepository().Get(ctx, reserved.ID())
	s.Require().NoError(err)
	s.Equal(3, loadedSlot.Capacity())

	loadedCourier, err := check.CourierRepository().Get(ctx, c.ID())
	s.Require().NoError(err)
	s.Equal("Ravi", loadedCourier.Name())
}

func (s *UnitOfWorkTestSuite) TestRollback_DiscardsSlotReservation() {
	ctx := context.Background()
	reserved := s.newSlot(2)

	setup := s.factory.Create()
	s.Require().NoError(setup.Begin(ctx))
	s.Require().NoError(setup.SlotRepository().Add(ctx, reserved))
	s.Require().NoError(setup.Commit(ctx))

	uow := s.factory.Create()
	s.Require().NoError(uow.Begin(ctx))
	s.Require().NoError(uow.SlotRepository().Reserve(ctx, reserved.ID()))
	s.Require().NoError(uow.Rollback(ctx))

	check := s.factory.Create()
	loaded, err := check.SlotRepository().Get(ctx, reserved.ID())
	s.Require().NoError(err)
	s.Equal(0, loaded.Used())
}

func (s *UnitOfWorkTestSuite) TestRollback_DiscardsOrderInsert() {
	ctx := context.Background()
	o := s.newOrder()

	uow := s.factory.Create()
	s.Require().NoError(uow.Begin(ctx))
	s.Require().NoError(uow.OrderRepository().Add(ctx, o))
	s.Require().NoError(uow.Rollback(ctx))

	check := s.factory.Create()
	_, err := check.OrderRepository().Get(ctx, o.ID())
	s.Require().Error(err)
	s.ErrorIs(err, errs.ErrObjectNotFound)
}

// Two cancellations race on the same scheduled order. The FOR UPDATE read in
// the order repository must serialize them so the loser sees the committed
// CANCELLED status and fails its transition, leaving the slot released
// exactly once. The slot deliberately carries a second reservation held by
// another order, which a double release would corrupt.
func (s *UnitOfWorkTestSuite) TestConcurrentCancel_ReleasesSlotOnce() {
	ctx := context.Background()

	scheduledAt := time.Now().Add(3 * time.Hour).Truncate(time.Microsecond)
	reserved := s.newSlot(3)

	point, err := kernel.NewGeoPoint(12.9716, 77.5946)
	s.Require().NoError(err)
	pickup, err := order.NewAddress("Asha", "", "14 MG Road", "", "Bengaluru", "KA", "560001", &point)
	s.Require().NoError(err)
	dropoff, err := order.NewAddress("Vikram", "", "2 Brigade Road", "", "Bengaluru", "KA", "560025", &point)
	s.Require().NoError(err)
	pkg, err := order.NewPackage("documents", 2.0, nil, nil)
	s.Require().NoError(err)

	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), order.ModeScheduled, &scheduledAt,
		pickup, dropoff, pkg, order.PaymentCOD, "",
		time.Now().Truncate(time.Microsecond))
	s.Require().NoError(err)

	price, err := kernel.NewMoney(140, "INR")
	s.Require().NoError(err)
	quote, err := order.NewQuote(price, 10, 2)
	s.Require().NoError(err)
	s.Require().NoError(o.AttachQuote(quote, time.Now()))
	s.Require().NoError(o.Confirm("pi_123", time.Now()))

	slotID := reserved.ID()
	assignment, err := order.NewAssignment(kernel.NewUUID(), "KA01AB1234", 60, &slotID)
	s.Require().NoError(err)
	s.Require().NoError(o.AssignTo(assignment, time.Now()))

	setup := s.factory.Create()
	s.Require().NoError(setup.Begin(ctx))
	s.Require().NoError(setup.SlotRepository().Add(ctx, reserved))
	// One reservation for this order, one held by another order.
	s.Require().NoError(setup.SlotRepository().Reserve(ctx, slotID))
	s.Require().NoError(setup.SlotRepository().Reserve(ctx, slotID))
	s.Require().NoError(setup.OrderRepository().Add(ctx, o))
	s.Require().NoError(setup.Commit(ctx))

	cancelOnce := func() error {
		uow := s.factory.Create()
		if beginErr := uow.Begin(ctx); beginErr != nil {
			return beginErr
		}
		defer func() { _ = uow.Rollback(ctx) }()

		loaded, getErr := uow.OrderRepository().Get(ctx, o.ID())
		if getErr != nil {
			return getErr
		}

		detached, cancelErr := loaded.Cancel("customer changed plans", time.Now())
		if cancelErr != nil {
			return cancelErr
		}
		if detached != nil && detached.SlotID() != nil {
			if releaseErr := uow.SlotRepository().Release(ctx, *detached.SlotID()); releaseErr != nil {
				return releaseErr
			}
		}
		if updateErr := uow.OrderRepository().Update(ctx, loaded); updateErr != nil {
			return updateErr
		}
		return uow.Commit(ctx)
	}

	start := make(chan struct{})
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			<-start
			results <- cancelOnce()
		}()
	}
	close(start)

	var succeeded, rejected int
	for i := 0; i < 2; i++ {
		err := <-results
		if err == nil {
			succeeded++
		} else {
			s.ErrorIs(err, errs.ErrInvalidState)
			rejected++
		}
	}
	s.Equal(1, succeeded)
	s.Equal(1, rejected)

	check := s.factory.Create()
	loadedSlot, err := check.SlotRepository().Get(ctx, slotID)
	s.Require().NoError(err)
	s.Equal(1, loadedSlot.Used())

	loadedOrder, err := check.OrderRepository().Get(ctx, o.ID())
	s.Require().NoError(err)
	s.Equal(order.Cancelled, loadedOrder.Status())
}

func (s *UnitOfWorkTestSuite) TestCommit_WithoutBegin_ReturnsError() {
	uow := s.factory.Create()

	err := uow.Commit(context.Background())

	s.Require().Error(err)
	s.ErrorIs(err, gorm.ErrInvalidTransaction)
}

func (s *UnitOfWorkTestSuite) TestBegin_Twice_IsIdempotent() {
	ctx := context.Background()
	uow := s.factory.Create()

	s.Require().NoError(uow.Begin(ctx))
	s.Require().NoError(uow.Begin(ctx))
	s.Require().NoError(uow.Rollback(ctx))
}

func TestUnitOfWorkTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkTestSuite))
}
