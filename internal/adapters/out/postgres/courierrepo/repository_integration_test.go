package courierrepo_test

import (
	"context"
	"testing"
	"time"

	"parcelgo/internal/adapters/out/postgres/courierrepo"
	"parcelgo/internal/core/domain/model/courier"
	"parcelgo/internal/core/domain/model/kernel"
	"parcelgo/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type CourierRepositoryTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	repo      *courierrepo.GormCourierRepository
}

func (s *CourierRepositoryTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
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

	err = db.AutoMigrate(&courierrepo.CourierDTO{})
	s.Require().NoError(err)

	s.repo = courierrepo.NewGormCourierRepository(db, &noopTracker{})
}

func (s *CourierRepositoryTestSuite) TearDownSuite() {
	if s.container != nil {
		err := s.container.Terminate(context.Background())
		s.Require().NoError(err)
	}
}

func (s *CourierRepositoryTestSuite) SetupTest() {
	err := s.db.Exec("TRUNCATE TABLE couriers").Error
	s.Require().NoError(err)
}

func (s *CourierRepositoryTestSuite) newCourier(name string) *courier.Courier {
	location, err := kernel.NewGeoPoint(12.9716, 77.5946)
	s.Require().NoError(err)

	c, err := courier.NewCourier(kernel.NewUUID(), name, "KA01AB1234", &location)
	s.Require().NoError(err)
	return c
}

func (s *CourierRepositoryTestSuite) TestAddAndGet_RoundTrip() {
	created := s.newCourier("Ravi")

	err := s.repo.Add(context.Background(), created)
	s.Require().NoError(err)

	loaded, err := s.repo.Get(context.Background(), created.ID())
	s.Require().NoError(err)

	s.True(loaded.ID().IsEqual(created.ID()))
	s.Equal("Ravi", loaded.Name())
	s.Equal("KA01AB1234", loaded.VehiclePlate())
	s.True(loaded.IsAvailable())
	s.Require().True(loaded.HasLocation())
	s.InDelta(12.9716, loaded.Location().Lat(), 1e-9)
	s.InDelta(77.5946, loaded.Location().Lng(), 1e-9)
}

func (s *CourierRepositoryTestSuite) TestAddAndGet_WithoutLocation() {
	created, err := courier.NewCourier(kernel.NewUUID(), "Meena", "KA02CD5678", nil)
	s.Require().NoError(err)

	s.Require().NoError(s.repo.Add(context.Background(), created))

	loaded, err := s.repo.Get(context.Background(), created.ID())
	s.Require().NoError(err)

	s.False(loaded.HasLocation())
}

func (s *CourierRepositoryTestSuite) TestGet_UnknownCourier_ReturnsObjectNotFound() {
	_, err := s.repo.Get(context.Background(), kernel.NewUUID())

	s.Require().Error(err)
	s.ErrorIs(err, errs.ErrObjectNotFound)
}

func (s *CourierRepositoryTestSuite) TestUpdate_PersistsAvailabilityAndLocation() {
	created := s.newCourier("Ravi")
	s.Require().NoError(s.repo.Add(context.Background(), created))

	newLocation, err := kernel.NewGeoPoint(13.0827, 77.5877)
	s.Require().NoError(err)
	s.Require().NoError(created.ReportLocation(newLocation))
	created.MarkBusy()

	s.Require().NoError(s.repo.Update(context.Background(), created))

	loaded, err := s.repo.Get(context.Background(), created.ID())
	s.Require().NoError(err)

	s.False(loaded.IsAvailable())
	s.InDelta(13.0827, loaded.Location().Lat(), 1e-9)
}

func (s *CourierRepositoryTestSuite) TestGetAllAvailable_FiltersBusyCouriers() {
	available := s.newCourier("Ravi")
	s.Require().NoError(s.repo.Add(context.Background(), available))

	busy := s.newCourier("Meena")
	busy.MarkBusy()
	s.Require().NoError(s.repo.Add(context.Background(), busy))

	couriers, err := s.repo.GetAllAvailable(context.Background())
	s.Require().NoError(err)

	s.Require().Len(couriers, 1)
	s.True(couriers[0].ID().IsEqual(available.ID()))
}

func (s *CourierRepositoryTestSuite) TestGetAllAvailable_Empty_ReturnsEmptySlice() {
	couriers, err := s.repo.GetAllAvailable(context.Background())

	s.Require().NoError(err)
	s.NotNil(couriers)
	s.Empty(couriers)
}

func TestCourierRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(CourierRepositoryTestSuite))
}

// noopTracker implements the aggregate tracker for test purposes.
type noopTracker struct{}

func (t *noopTracker) TrackAggregate(_ kernel.UUID, _ any) {}
