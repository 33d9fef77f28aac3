package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotelledger/config"
	"hotelledger/infras/otel/mocks"
	roomMocks "hotelledger/internal/domains/room/mocks"
	"hotelledger/internal/domains/room/model"
	"hotelledger/internal/domains/room/model/dto"
	"hotelledger/internal/domains/room/service"
	cacheMocks "hotelledger/shared/cache/mocks"
	"hotelledger/shared/failure"
	"hotelledger/shared/session"
)

var agent = session.Session{UserID: "u-1", LoginID: "frontdesk", Role: "agent", HotelID: "hotel-1"}

func newService(t *testing.T) (service.Room, *roomMocks.MockRoom, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := roomMocks.NewMockRoom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	return service.New(mockRepo, cfg, mockCache, mocks.NewOtel()), mockRepo, mockCache
}

func TestRoomService_Create(t *testing.T) {
	tests := []struct {
		name     string
		repoErr  error
		wantKind failure.Kind
		wantMsg  string
	}{
		{name: "successful creation"},
		{name: "unknown category", repoErr: &pq.Error{Code: "23503"}, wantKind: failure.KindValidation, wantMsg: "room category not found"},
		{
			name:     "unknown hotel",
			repoErr:  &pq.Error{Code: "23503", Constraint: model.ConstraintHotel},
			wantKind: failure.KindValidation,
			wantMsg:  "hotel not found",
		},
		{name: "duplicate name", repoErr: &pq.Error{Code: "23505"}, wantKind: failure.KindValidation},
		{name: "store down", repoErr: errors.New("connection refused"), wantKind: failure.KindTransport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, _ := newService(t)

			mockRepo.EXPECT().
				Insert(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, room model.Room) error {
					assert.Equal(t, "hotel-1", room.HotelID)
					assert.Equal(t, "frontdesk", room.CreatedBy)

					return tt.repoErr
				})

			res, err := svc.Create(context.Background(), agent, dto.CreateRoomRequest{
				HotelID:    "other-hotel",
				CategoryID: "c-1",
				Name:       "101",
			})

			time.Sleep(10 * time.Millisecond)

			if tt.wantKind != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, failure.GetKind(err))

				if tt.wantMsg != "" {
					assert.ErrorContains(t, err, tt.wantMsg)
				}

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "101", res.Name)
			assert.True(t, res.Active)
			assert.Empty(t, res.BookedDates)
		})
	}
}

func TestRoomService_Get(t *testing.T) {
	t.Run("cache hit", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockRepo := roomMocks.NewMockRoom(ctrl)
		mockCache := cacheMocks.NewMockRedisCache(ctrl)

		mockCache.EXPECT().
			Get(gomock.Any(), "room:get:r-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, value any) error {
				res, _ := value.(*dto.RoomResponse)
				res.ID = "r-1"

				return nil
			})

		svc := service.New(mockRepo, &config.Config{}, mockCache, mocks.NewOtel())

		res, err := svc.Get(context.Background(), "r-1")
		require.NoError(t, err)
		assert.Equal(t, "r-1", res.ID)
	})

	t.Run("not found", func(t *testing.T) {
		svc, mockRepo, mockCache := newService(t)

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)

		_, err := svc.Get(context.Background(), "r-404")
		assert.Equal(t, failure.KindNotFound, failure.GetKind(err))
	})

	t.Run("cache miss loads from store", func(t *testing.T) {
		svc, mockRepo, mockCache := newService(t)

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Room{ID: "r-1", Name: "101", CategoryID: "c-1", CategoryName: "Deluxe"}, nil)

		res, err := svc.Get(context.Background(), "r-1")

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, "Deluxe", res.Category.Name)
	})
}

func TestRoomService_Available(t *testing.T) {
	svc, mockRepo, _ := newService(t)

	mockRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Room{
			{ID: "r-1", Name: "101", BookedDates: pq.StringArray{"2024-01-10"}},
			{ID: "r-2", Name: "102", BookedDates: pq.StringArray{"2024-01-20"}},
			{ID: "r-3", Name: "103"},
		}, nil)

	res, err := svc.Available(context.Background(), agent, dto.AvailableRoomsRequest{
		CategoryID: "c-1",
		CheckIn:    "2024-01-10",
		CheckOut:   "2024-01-12",
	})
	require.NoError(t, err)

	names := make([]string, len(res))
	for i, room := range res {
		names[i] = room.Name
	}

	assert.Equal(t, []string{"102", "103"}, names)
}

func TestRoomService_Available_InvalidRange(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.Available(context.Background(), agent, dto.AvailableRoomsRequest{
		CategoryID: "c-1",
		CheckIn:    "2024-01-12",
		CheckOut:   "2024-01-10",
	})
	assert.Equal(t, failure.KindValidation, failure.GetKind(err))
}

func TestRoomService_Commit(t *testing.T) {
	dates := []string{"2024-01-10", "2024-01-11"}

	tests := []struct {
		name      string
		setupMock func(*roomMocks.MockRoom)
		wantKind  failure.Kind
	}{
		{
			name: "committed",
			setupMock: func(m *roomMocks.MockRoom) {
				m.EXPECT().CommitDates(gomock.Any(), "r-1", dates, "frontdesk", gomock.Any()).Return(true, nil)
			},
		},
		{
			name: "dates already held",
			setupMock: func(m *roomMocks.MockRoom) {
				m.EXPECT().CommitDates(gomock.Any(), "r-1", dates, "frontdesk", gomock.Any()).Return(false, nil)
				m.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantKind: failure.KindInventoryConflict,
		},
		{
			name: "unknown room",
			setupMock: func(m *roomMocks.MockRoom) {
				m.EXPECT().CommitDates(gomock.Any(), "r-1", dates, "frontdesk", gomock.Any()).Return(false, nil)
				m.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantKind: failure.KindNotFound,
		},
		{
			name: "store down",
			setupMock: func(m *roomMocks.MockRoom) {
				m.EXPECT().CommitDates(gomock.Any(), "r-1", dates, "frontdesk", gomock.Any()).Return(false, errors.New("timeout"))
			},
			wantKind: failure.KindTransport,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, _ := newService(t)
			tt.setupMock(mockRepo)

			err := svc.Commit(context.Background(), agent, "r-1", dates)

			time.Sleep(10 * time.Millisecond)

			if tt.wantKind == "" {
				assert.NoError(t, err)

				return
			}

			assert.Equal(t, tt.wantKind, failure.GetKind(err))
		})
	}
}

func TestRoomService_ReleaseByNames(t *testing.T) {
	svc, mockRepo, _ := newService(t)

	mockRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(model.Room{ID: "r-7", Name: "707", CategoryName: "Suite"}, nil)
	mockRepo.EXPECT().
		ReleaseDates(gomock.Any(), "r-7", []string{"2024-02-01"}, "frontdesk", gomock.Any()).
		Return(true, nil)

	err := svc.ReleaseByNames(context.Background(), agent, dto.ReleaseInventoryRequest{
		CategoryName:  "Suite",
		RoomName:      "707",
		DatesToDelete: []string{"2024-02-01"},
	})

	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
}

func TestRoomService_CommitByNames(t *testing.T) {
	svc, mockRepo, _ := newService(t)

	mockRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(model.Room{ID: "r-7", Name: "707", CategoryName: "Suite"}, nil)
	mockRepo.EXPECT().
		CommitDates(gomock.Any(), "r-7", []string{"2024-02-01", "2024-02-02"}, "frontdesk", gomock.Any()).
		Return(true, nil)

	err := svc.CommitByNames(context.Background(), agent, dto.CommitInventoryRequest{
		CategoryName: "Suite",
		RoomName:     "707",
		Booking:      dto.InventoryBooking{BookedDates: []string{"2024-02-01", "2024-02-02"}},
	})

	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
}

func TestRoomService_CommitByNames_UnknownRoom(t *testing.T) {
	svc, mockRepo, _ := newService(t)

	mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)

	err := svc.CommitByNames(context.Background(), agent, dto.CommitInventoryRequest{
		CategoryName: "Suite",
		RoomName:     "999",
		Booking:      dto.InventoryBooking{BookedDates: []string{"2024-02-01"}},
	})

	assert.Equal(t, failure.KindNotFound, failure.GetKind(err))
}

func TestRoomService_Delete_HeldDates(t *testing.T) {
	svc, mockRepo, _ := newService(t)

	mockRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(model.Room{ID: "r-1", BookedDates: pq.StringArray{"2024-01-10"}}, nil)

	err := svc.Delete(context.Background(), "r-1")
	assert.Equal(t, failure.KindValidation, failure.GetKind(err))
}
