package reservation

import (
	"testing"
	"time"

	accountModel "table-reservation/models/account"
	reservationModel "table-reservation/models/reservation"
	storeModel "table-reservation/models/store"
	"table-reservation/services/guestaccess"
	"table-reservation/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&storeModel.Store{},
		&accountModel.Account{},
		&reservationModel.Reservation{},
		&reservationModel.ReservationChangeLog{},
	))
	return db
}

func createTestStore(t *testing.T, db *gorm.DB) *storeModel.Store {
	t.Helper()

	s := storeModel.Store{Name: "Harbor Kitchen", Address: "1 Pier Rd", Phone: "0223456789"}
	require.NoError(t, db.Create(&s).Error)
	return &s
}

func guestCreateInput(storeID uint) CreateInput {
	return CreateInput{
		StoreID:         storeID,
		CustomerName:    "Lin Wei",
		CustomerPhone:   "0912345678",
		ReservationDate: utils.Today().AddDate(0, 0, 7),
		TimeSlot:        "18:00-19:30",
		PartySize:       4,
		ChildrenCount:   1,
		SpecialRequests: "window seat",
	}
}

func changeLogsFor(t *testing.T, db *gorm.DB, reservationID uint) []reservationModel.ReservationChangeLog {
	t.Helper()

	var logs []reservationModel.ReservationChangeLog
	require.NoError(t, db.Where("reservation_id = ?", reservationID).Order("id ASC").Find(&logs).Error)
	return logs
}

func TestCreateGuestReservation(t *testing.T) {
	db := setupTestDB(t)
	s := createTestStore(t, db)
	svc := NewService(db)

	r, err := svc.Create(guestCreateInput(s.ID))
	require.NoError(t, err)

	assert.NotEmpty(t, r.ReservationNumber)
	assert.Equal(t, reservationModel.StatusPending, r.Status)
	assert.True(t, r.IsGuestReservation())
	assert.Equal(t, guestaccess.Fingerprint("0912345678"), r.PhoneHash)

	logs := changeLogsFor(t, db, r.ID)
	require.Len(t, logs, 1)
	assert.Equal(t, reservationModel.ChangeCreated, logs[0].ChangeType)
	assert.Equal(t, reservationModel.ActorGuest, logs[0].ChangedBy)
	assert.Equal(t, r.ReservationNumber, logs[0].ReservationNumber)

	// Every supplied field lands in new_values, references as identifiers,
	// dates as ISO-8601 strings.
	newValues := logs[0].NewValues
	assert.EqualValues(t, s.ID, newValues["store"])
	assert.Equal(t, "Lin Wei", newValues["customer_name"])
	assert.Equal(t, r.ReservationDate.Format("2006-01-02"), newValues["reservation_date"])
	assert.Equal(t, "18:00-19:30", newValues["time_slot"])
	assert.EqualValues(t, 4, newValues["party_size"])
	assert.EqualValues(t, 1, newValues["children_count"])
	assert.Equal(t, "window seat", newValues["special_requests"])
}

func TestCreateMemberBackfillsProfile(t *testing.T) {
	db := setupTestDB(t)
	s := createTestStore(t, db)
	svc := NewService(db)

	acct := accountModel.Account{
		Uuid:         "uuid-1",
		Username:     "weiwei",
		Phone:        "0987654321",
		PasswordHash: "x",
		AccountType:  accountModel.TypeMember,
	}
	require.NoError(t, db.Create(&acct).Error)

	in := guestCreateInput(s.ID)
	in.Account = &acct
	in.CustomerName = ""
	in.CustomerPhone = ""

	r, err := svc.Create(in)
	require.NoError(t, err)

	assert.False(t, r.IsGuestReservation())
	assert.Equal(t, "weiwei", r.CustomerName)
	assert.Equal(t, "0987654321", r.CustomerPhone)
	assert.Empty(t, r.PhoneHash)

	logs := changeLogsFor(t, db, r.ID)
	require.Len(t, logs, 1)
	assert.Equal(t, reservationModel.ActorCustomer, logs[0].ChangedBy)
	assert.EqualValues(t, acct.ID, logs[0].NewValues["account"])
}

func TestCreateRejectsPastDate(t *testing.T) {
	db := setupTestDB(t)
	s := createTestStore(t, db)
	svc := NewService(db)

	in := guestCreateInput(s.ID)
	in.ReservationDate = utils.Today().AddDate(0, 0, -1)

	_, err := svc.Create(in)
	ve, ok := AsValidationError(err)
	require.True(t, ok, "expected validation error, got %v", err)
	assert.Equal(t, "reservation_date", ve.Field)

	// Nothing persisted, nothing audited.
	var count int64
	db.Model(&reservationModel.Reservation{}).Count(&count)
	assert.Zero(t, count)
	db.Model(&reservationModel.ReservationChangeLog{}).Count(&count)
	assert.Zero(t, count)
}

func TestCreateRejectsZeroPartySize(t *testing.T) {
	db := setupTestDB(t)
	s := createTestStore(t, db)
	svc := NewService(db)

	in := guestCreateInput(s.ID)
	in.PartySize = 0

	_, err := svc.Create(in)
	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "party_size", ve.Field)
}

func TestCreateRejectsMalformedTimeSlot(t *testing.T) {
	db := setupTestDB(t)
	s := createTestStore(t, db)
	svc := NewService(db)

	in := guestCreateInput(s.ID)
	in.TimeSlot = "18:00"

	_, err := svc.Create(in)
	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "time_slot", ve.Field)
}

func TestUpdateLogsOldAndNewValues(t *testing.T) {
	db := setupTestDB(t)
	s := createTestStore(t, db)
	svc := NewService(db)

	r, err := svc.Create(guestCreateInput(s.ID))
	require.NoError(t, err)

	newSlot := "19:00-20:30"
	newSize := 6
	require.NoError(t, svc.Update(r, UpdateInput{TimeSlot: &newSlot, PartySize: &newSize}, reservationModel.ActorGuest))

	assert.Equal(t, "19:00-20:30", r.TimeSlot)
	assert.Equal(t, 6, r.PartySize)

	logs := changeLogsFor(t, db, r.ID)
	require.Len(t, logs, 2)
	updated := logs[1]
	assert.Equal(t, reservationModel.ChangeUpdated, updated.ChangeType)
	assert.Equal(t, reservationModel.ActorGuest, updated.ChangedBy)
	assert.Equal(t, "18:00-19:30", updated.OldValues["time_slot"])
	assert.Equal(t, "19:00-20:30", updated.NewValues["time_slot"])
	assert.EqualValues(t, 4, updated.OldValues["party_size"])
	assert.EqualValues(t, 6, updated.NewValues["party_size"])
}

func TestUpdateRejectedAfterCancel(t *testing.T) {
	db := setupTestDB(t)
	s := createTestStore(t, db)
	svc := NewService(db)

	r, err := svc.Create(guestCreateInput(s.ID))
	require.NoError(t, err)
	require.NoError(t, svc.Cancel(r, reservationModel.ActorCustomer, "", reservationModel.ActorGuest))

	newSize := 2
	err = svc.Update(r, UpdateInput{PartySize: &newSize}, reservationModel.ActorGuest)
	assert.ErrorIs(t, err, ErrCannotEdit)

	err = svc.Cancel(r, reservationModel.ActorCustomer, "", reservationModel.ActorGuest)
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancelRecordsMetadataAndReason(t *testing.T) {
	db := setupTestDB(t)
	s := createTestStore(t, db)
	svc := NewService(db)

	r, err := svc.Create(guestCreateInput(s.ID))
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(r, reservationModel.ActorMerchant, "fully booked", reservationModel.ActorMerchant))

	assert.Equal(t, reservationModel.StatusCancelled, r.Status)
	assert.NotNil(t, r.CancelledAt)
	assert.Equal(t, reservationModel.ActorMerchant, r.CancelledBy)
	assert.Equal(t, "fully booked", r.CancelReason)

	logs := changeLogsFor(t, db, r.ID)
	require.Len(t, logs, 2)
	cancelled := logs[1]
	assert.Equal(t, reservationModel.ChangeCancelled, cancelled.ChangeType)
	assert.Equal(t, "pending", cancelled.OldValues["status"])
	assert.Equal(t, "cancelled", cancelled.NewValues["status"])
	assert.Equal(t, "fully booked", cancelled.NewValues["cancel_reason"])
}

func TestUpdateStatusStampsConfirmedAtOnce(t *testing.T) {
	db := setupTestDB(t)
	s := createTestStore(t, db)
	svc := NewService(db)

	r, err := svc.Create(guestCreateInput(s.ID))
	require.NoError(t, err)
	require.Nil(t, r.ConfirmedAt)

	require.NoError(t, svc.UpdateStatus(r, reservationModel.StatusConfirmed))
	require.NotNil(t, r.ConfirmedAt)
	firstStamp := *r.ConfirmedAt

	// Confirming again must not re-stamp.
	require.NoError(t, svc.UpdateStatus(r, reservationModel.StatusConfirmed))
	assert.Equal(t, firstStamp, *r.ConfirmedAt)

	// Other transitions neither stamp nor clear.
	require.NoError(t, svc.UpdateStatus(r, reservationModel.StatusCompleted))
	assert.Equal(t, firstStamp, *r.ConfirmedAt)

	logs := changeLogsFor(t, db, r.ID)
	require.Len(t, logs, 4)
	assert.Equal(t, "pending", logs[1].OldValues["status"])
	assert.Equal(t, "confirmed", logs[1].NewValues["status"])
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	db := setupTestDB(t)
	s := createTestStore(t, db)
	svc := NewService(db)

	r, err := svc.Create(guestCreateInput(s.ID))
	require.NoError(t, err)

	err = svc.UpdateStatus(r, reservationModel.ReservationStatus("teleported"))
	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "status", ve.Field)
}

func TestDeleteWritesSnapshotAndDetachesLogs(t *testing.T) {
	db := setupTestDB(t)
	s := createTestStore(t, db)
	svc := NewService(db)

	r, err := svc.Create(guestCreateInput(s.ID))
	require.NoError(t, err)
	number := r.ReservationNumber

	require.NoError(t, svc.Delete(r))

	var count int64
	db.Model(&reservationModel.Reservation{}).Count(&count)
	assert.Zero(t, count)

	// History survives the parent, detached but findable by number.
	var logs []reservationModel.ReservationChangeLog
	require.NoError(t, db.Where("reservation_number = ?", number).Order("id ASC").Find(&logs).Error)
	require.Len(t, logs, 2)

	for _, entry := range logs {
		assert.Nil(t, entry.ReservationID)
	}

	deleted := logs[1]
	assert.Equal(t, reservationModel.ChangeDeleted, deleted.ChangeType)
	assert.Equal(t, reservationModel.ActorMerchant, deleted.ChangedBy)
	assert.Equal(t, number, deleted.OldValues["reservation_number"])
	assert.Equal(t, "pending", deleted.OldValues["status"])
	assert.Empty(t, deleted.NewValues)
}

func TestGuestLookup(t *testing.T) {
	db := setupTestDB(t)
	s := createTestStore(t, db)
	svc := NewService(db)

	first, err := svc.Create(guestCreateInput(s.ID))
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	in := guestCreateInput(s.ID)
	in.ReservationDate = utils.Today().AddDate(0, 0, 3)
	second, err := svc.Create(in)
	require.NoError(t, err)

	found, err := svc.GuestLookup("0912345678")
	require.NoError(t, err)
	require.Len(t, found, 2)

	// Newest created first.
	assert.Equal(t, second.ID, found[0].ID)
	assert.Equal(t, first.ID, found[1].ID)

	_, err = svc.GuestLookup("0987654321")
	assert.ErrorIs(t, err, ErrNoGuestReservations)
}

func TestGuestLookupWindowAndMemberExclusion(t *testing.T) {
	db := setupTestDB(t)
	s := createTestStore(t, db)
	svc := NewService(db)

	phoneHash := guestaccess.Fingerprint("0912345678")

	// Inserted directly: past-dated rows cannot go through Create.
	onBoundary := reservationModel.Reservation{
		ReservationNumber: "RSV-OLD-00000001",
		StoreID:           s.ID,
		PhoneHash:         phoneHash,
		CustomerName:      "Lin Wei",
		CustomerPhone:     "0912345678",
		ReservationDate:   utils.Today().AddDate(0, 0, -GuestLookupWindow),
		TimeSlot:          "18:00-19:30",
		PartySize:         2,
		Status:            reservationModel.StatusCompleted,
	}
	require.NoError(t, db.Create(&onBoundary).Error)

	beyondWindow := onBoundary
	beyondWindow.ID = 0
	beyondWindow.ReservationNumber = "RSV-OLD-00000002"
	beyondWindow.ReservationDate = utils.Today().AddDate(0, 0, -GuestLookupWindow-1)
	require.NoError(t, db.Create(&beyondWindow).Error)

	accountID := uint(99)
	memberRow := onBoundary
	memberRow.ID = 0
	memberRow.ReservationNumber = "RSV-OLD-00000003"
	memberRow.AccountID = &accountID
	memberRow.ReservationDate = utils.Today()
	require.NoError(t, db.Create(&memberRow).Error)

	found, err := svc.GuestLookup("0912345678")
	require.NoError(t, err)

	// The boundary day is included, older rows and member rows are not.
	require.Len(t, found, 1)
	assert.Equal(t, onBoundary.ID, found[0].ID)
}

func TestStats(t *testing.T) {
	db := setupTestDB(t)
	s := createTestStore(t, db)
	svc := NewService(db)

	r1, err := svc.Create(guestCreateInput(s.ID))
	require.NoError(t, err)
	_, err = svc.Create(guestCreateInput(s.ID))
	require.NoError(t, err)

	require.NoError(t, svc.UpdateStatus(r1, reservationModel.StatusConfirmed))

	stats, err := svc.Stats(s.ID)
	require.NoError(t, err)

	assert.EqualValues(t, 2, stats["total"])
	assert.EqualValues(t, 1, stats["pending"])
	assert.EqualValues(t, 1, stats["confirmed"])
	assert.EqualValues(t, 0, stats["cancelled"])
	assert.EqualValues(t, 0, stats["completed"])
	assert.EqualValues(t, 0, stats["no_show"])
}
