package service

import (
	"context"
	"errors"
	"fmt"
	"hotel-booking/internal/model"
	"hotel-booking/pkg/broker"
	"hotel-booking/pkg/utils"
	"sync"
	"time"

	"gorm.io/gorm"
)

type fakeUserRepo struct {
	mu        sync.Mutex
	users     map[uint]*model.User
	nextID    uint
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint]*model.User{}}
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string, opts ...utils.DBOption) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uint, opts ...utils.DBOption) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, user *model.User, opts ...utils.DBOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	user.ID = f.nextID
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

type fakeRoomRepo struct {
	rooms     map[uint]*model.Room
	left      map[uint]int
	available []model.RoomWithAvailability
	// calls records lookups in order, with the number of options passed.
	calls []string
}

func (f *fakeRoomRepo) ListWithRoomsLeft(ctx context.Context, hotelID uint, dateFrom, dateTo time.Time, opts ...utils.DBOption) ([]model.RoomWithAvailability, error) {
	return f.available, nil
}

func (f *fakeRoomRepo) FindByID(ctx context.Context, id uint, opts ...utils.DBOption) (*model.Room, error) {
	f.calls = append(f.calls, fmt.Sprintf("find:%d", len(opts)))
	r, ok := f.rooms[id]
	if !ok {
		return nil, nil
	}
	return r, nil
}

func (f *fakeRoomRepo) RoomsLeft(ctx context.Context, roomID uint, dateFrom, dateTo time.Time, opts ...utils.DBOption) (int, error) {
	f.calls = append(f.calls, fmt.Sprintf("left:%d", len(opts)))
	if _, ok := f.rooms[roomID]; !ok {
		return 0, gorm.ErrRecordNotFound
	}
	return f.left[roomID], nil
}

type fakeBookingRepo struct {
	created []model.Booking
	deleted int64
}

func (f *fakeBookingRepo) FindByUser(ctx context.Context, userID uint, opts ...utils.DBOption) ([]model.Booking, error) {
	var out []model.Booking
	for _, b := range f.created {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) Create(ctx context.Context, booking *model.Booking, opts ...utils.DBOption) error {
	booking.ID = uint(len(f.created) + 1)
	f.created = append(f.created, *booking)
	return nil
}

func (f *fakeBookingRepo) DeleteForUser(ctx context.Context, userID, bookingID uint, opts ...utils.DBOption) (int64, error) {
	return f.deleted, nil
}

func (f *fakeBookingRepo) FindRemindersStartingOn(ctx context.Context, date time.Time, opts ...utils.DBOption) ([]model.BookingReminder, error) {
	return nil, nil
}

// fakeUnitOfWork runs fn without a transaction.
type fakeUnitOfWork struct {
	runs int
}

func (f *fakeUnitOfWork) Run(fn func(opts ...utils.DBOption) error) error {
	f.runs++
	return fn()
}

type fakeTaskRunRepo struct {
	mu      sync.Mutex
	runs    []model.TaskRun
	updates []model.TaskRun
}

func (f *fakeTaskRunRepo) Create(ctx context.Context, run *model.TaskRun, opts ...utils.DBOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	run.ID = uint(len(f.runs) + 1)
	f.runs = append(f.runs, *run)
	return nil
}

func (f *fakeTaskRunRepo) Update(ctx context.Context, run *model.TaskRun, opts ...utils.DBOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, *run)
	return nil
}

func (f *fakeTaskRunRepo) DeleteOlderThan(ctx context.Context, date time.Time, opts ...utils.DBOption) (int64, error) {
	return 0, nil
}

type fakeImportRepo struct {
	records interface{}
}

func (f *fakeImportRepo) Insert(ctx context.Context, records interface{}, opts ...utils.DBOption) (int64, error) {
	f.records = records
	switch r := records.(type) {
	case []model.Hotel:
		return int64(len(r)), nil
	case []model.Room:
		return int64(len(r)), nil
	case []model.Booking:
		return int64(len(r)), nil
	}
	return 0, errors.New("unexpected records type")
}

type publishedMessage struct {
	queue string
	msg   broker.Message
}

type recordingPublisher struct {
	mu   sync.Mutex
	sent []publishedMessage
	err  error
}

func (p *recordingPublisher) Publish(ctx context.Context, queue string, msg broker.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.sent = append(p.sent, publishedMessage{queue: queue, msg: msg})
	return nil
}

func (p *recordingPublisher) messages() []publishedMessage {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]publishedMessage, len(p.sent))
	copy(out, p.sent)
	return out
}
