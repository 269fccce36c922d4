package dao

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("could not construct docker pool: %s", err)
	}

	if err = pool.Client.Ping(); err != nil {
		log.Fatalf("could not connect to docker: %s", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_PASSWORD=secret",
			"POSTGRES_USER=postgres",
			"POSTGRES_DB=eventsync_test",
			"listen_addresses = '*'",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("could not start postgres container: %s", err)
	}

	dsn := fmt.Sprintf("host=localhost port=%s user=postgres password=secret dbname=eventsync_test sslmode=disable",
		resource.GetPort("5432/tcp"))

	if err = pool.Retry(func() error {
		db, openErr := gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if openErr != nil {
			return openErr
		}

		sqlDB, dbErr := db.DB()
		if dbErr != nil {
			return dbErr
		}
		if pingErr := sqlDB.Ping(); pingErr != nil {
			return pingErr
		}

		testDB = db
		return nil
	}); err != nil {
		log.Fatalf("could not connect to postgres container: %s", err)
	}

	if err = InitTables(testDB); err != nil {
		log.Fatalf("could not migrate tables: %s", err)
	}

	code := m.Run()

	if err = pool.Purge(resource); err != nil {
		log.Fatalf("could not purge postgres container: %s", err)
	}

	os.Exit(code)
}

func truncateAll(t *testing.T) {
	t.Helper()
	require.NoError(t, testDB.Exec("TRUNCATE event_registrations, events, users, clubs, notifications RESTART IDENTITY CASCADE").Error)
}

func createTestEvent(t *testing.T, mutate func(*Event)) Event {
	t.Helper()

	now := time.Now().UTC()
	event := Event{
		Title:         "Tech Fest",
		Location:      "Main Auditorium",
		StartDate:     now.Add(48 * time.Hour),
		EndDate:       now.Add(52 * time.Hour),
		CreatedBy:     1,
		OrganizerID:   1,
		OrganizerName: "Robotics Club",
		OrganizerType: "club",
		Status:        "approved",
		EventType:     "free",
	}
	if mutate != nil {
		mutate(&event)
	}

	require.NoError(t, testDB.Create(&event).Error)
	return event
}

func registrationOf(eventID, userID uint) Registration {
	return Registration{
		EventID:      eventID,
		UserID:       userID,
		Reference:    fmt.Sprintf("ref-%d-%d", eventID, userID),
		Status:       "registered",
		RegisteredAt: time.Now().UTC(),
	}
}

func TestInsert_CapacityAndDuplicates(t *testing.T) {
	truncateAll(t)

	capacity := 2
	event := createTestEvent(t, func(e *Event) { e.Capacity = &capacity })
	d := NewRegistrationDAO(testDB)
	now := time.Now().UTC()

	_, err := d.Insert(context.Background(), registrationOf(event.ID, 101), now)
	require.NoError(t, err)
	_, err = d.Insert(context.Background(), registrationOf(event.ID, 102), now)
	require.NoError(t, err)

	// Third registrant bounces off the capacity.
	_, err = d.Insert(context.Background(), registrationOf(event.ID, 103), now)
	assert.ErrorIs(t, err, ErrEventFull)

	// Freeing a slot lets the next registrant in.
	require.NoError(t, d.Delete(context.Background(), event.ID, 102))
	_, err = d.Insert(context.Background(), registrationOf(event.ID, 103), now)
	require.NoError(t, err)

	// Duplicate registration for the same user.
	_, err = d.Insert(context.Background(), registrationOf(event.ID, 101), now)
	assert.ErrorIs(t, err, ErrAlreadyRegistered)

	var stored Event
	require.NoError(t, testDB.First(&stored, event.ID).Error)
	assert.Equal(t, 2, stored.RegisteredCount)
}

func TestInsert_StatusAndWindow(t *testing.T) {
	truncateAll(t)

	d := NewRegistrationDAO(testDB)
	now := time.Now().UTC()

	t.Run("pending event", func(t *testing.T) {
		event := createTestEvent(t, func(e *Event) { e.Status = "pending" })
		_, err := d.Insert(context.Background(), registrationOf(event.ID, 101), now)
		assert.ErrorIs(t, err, ErrEventNotOpen)
	})

	t.Run("registration not open yet", func(t *testing.T) {
		opens := now.Add(24 * time.Hour)
		event := createTestEvent(t, func(e *Event) { e.RegistrationStartDate = &opens })
		_, err := d.Insert(context.Background(), registrationOf(event.ID, 101), now)
		assert.ErrorIs(t, err, ErrRegistrationNotOpen)
	})

	t.Run("deadline passed", func(t *testing.T) {
		closed := now.Add(-time.Hour)
		event := createTestEvent(t, func(e *Event) { e.RegistrationDeadline = &closed })
		_, err := d.Insert(context.Background(), registrationOf(event.ID, 101), now)
		assert.ErrorIs(t, err, ErrRegistrationClosed)
	})

	t.Run("unknown event", func(t *testing.T) {
		_, err := d.Insert(context.Background(), registrationOf(99999, 101), now)
		assert.ErrorIs(t, err, ErrEventNotFound)
	})
}

func TestInsert_LastSlotRace(t *testing.T) {
	truncateAll(t)

	capacity := 1
	event := createTestEvent(t, func(e *Event) { e.Capacity = &capacity })
	d := NewRegistrationDAO(testDB)
	now := time.Now().UTC()

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = d.Insert(context.Background(), registrationOf(event.ID, uint(200+i)), now)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrEventFull)
		}
	}
	assert.Equal(t, 1, succeeded)

	var stored Event
	require.NoError(t, testDB.First(&stored, event.ID).Error)
	assert.Equal(t, 1, stored.RegisteredCount)
}

func TestDelete(t *testing.T) {
	truncateAll(t)

	event := createTestEvent(t, nil)
	d := NewRegistrationDAO(testDB)
	now := time.Now().UTC()

	_, err := d.Insert(context.Background(), registrationOf(event.ID, 101), now)
	require.NoError(t, err)

	require.NoError(t, d.Delete(context.Background(), event.ID, 101))

	var stored Event
	require.NoError(t, testDB.First(&stored, event.ID).Error)
	assert.Equal(t, 0, stored.RegisteredCount)

	err = d.Delete(context.Background(), event.ID, 101)
	assert.ErrorIs(t, err, ErrRegistrationNotFound)
}

func TestDeletePendingPayment(t *testing.T) {
	truncateAll(t)

	event := createTestEvent(t, func(e *Event) {
		e.EventType = "paid"
		e.EventFee = "150"
	})
	d := NewRegistrationDAO(testDB)
	now := time.Now().UTC()

	pending := registrationOf(event.ID, 101)
	pending.PaymentStatus = "pending"
	pending, err := d.Insert(context.Background(), pending, now)
	require.NoError(t, err)

	verified := registrationOf(event.ID, 102)
	verified.PaymentStatus = "pending"
	verified, err = d.Insert(context.Background(), verified, now)
	require.NoError(t, err)
	require.NoError(t, d.UpdatePaymentStatus(context.Background(), verified.ID, "verified"))

	// A verified payment survives the rejection attempt.
	err = d.DeletePendingPayment(context.Background(), event.ID, 102)
	assert.ErrorIs(t, err, ErrPaymentAlreadyVerified)
	_, err = d.FindByID(context.Background(), verified.ID)
	require.NoError(t, err)

	// The pending one goes, freeing its slot.
	require.NoError(t, d.DeletePendingPayment(context.Background(), event.ID, 101))
	_, err = d.FindByID(context.Background(), pending.ID)
	assert.ErrorIs(t, err, ErrRegistrationNotFound)

	var stored Event
	require.NoError(t, testDB.First(&stored, event.ID).Error)
	assert.Equal(t, 1, stored.RegisteredCount)

	err = d.DeletePendingPayment(context.Background(), event.ID, 999)
	assert.ErrorIs(t, err, ErrRegistrationNotFound)
}

func TestMarkAttended(t *testing.T) {
	truncateAll(t)

	event := createTestEvent(t, nil)
	d := NewRegistrationDAO(testDB)
	now := time.Now().UTC()

	reg, err := d.Insert(context.Background(), registrationOf(event.ID, 101), now)
	require.NoError(t, err)

	changed, err := d.MarkAttended(context.Background(), reg.ID, now)
	require.NoError(t, err)
	assert.True(t, changed)

	// Second scan of the same code.
	changed, err = d.MarkAttended(context.Background(), reg.ID, now)
	require.NoError(t, err)
	assert.False(t, changed)

	stored, err := d.FindByID(context.Background(), reg.ID)
	require.NoError(t, err)
	assert.Equal(t, "attended", stored.Status)
	require.NotNil(t, stored.CheckedInAt)

	// Reverting clears the check-in timestamp.
	require.NoError(t, d.MarkRegistered(context.Background(), reg.ID))
	stored, err = d.FindByID(context.Background(), reg.ID)
	require.NoError(t, err)
	assert.Equal(t, "registered", stored.Status)
	assert.Nil(t, stored.CheckedInAt)

	_, err = d.MarkAttended(context.Background(), 99999, now)
	assert.ErrorIs(t, err, ErrRegistrationNotFound)
}
