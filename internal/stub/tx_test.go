package stub

import (
	"errors"
	"net/http"
	"testing"

	"gorm.io/gorm"

	"github.com/staykit/staykit-go/internal/domain"
)

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	return n
}

func TestWithTx_CommitsOnSuccess(t *testing.T) {
	env := newTestEnv(t)

	err := withTx(env.db, func(tx *gorm.DB) error {
		return tx.Create(&domain.Amenity{Name: "sauna"}).Error
	})
	if err != nil {
		t.Fatalf("expected commit, got %v", err)
	}
	if got := countRows(t, env.db, &domain.Amenity{}); got != 1 {
		t.Fatalf("expected 1 amenity after commit, got %d", got)
	}
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	env := newTestEnv(t)
	boom := errors.New("boom")

	err := withTx(env.db, func(tx *gorm.DB) error {
		if err := tx.Create(&domain.Amenity{Name: "sauna"}).Error; err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected the callback error, got %v", err)
	}
	if got := countRows(t, env.db, &domain.Amenity{}); got != 0 {
		t.Fatalf("expected rollback to discard the insert, got %d rows", got)
	}
}

func TestWithTx_RollsBackAndRepanics(t *testing.T) {
	env := newTestEnv(t)

	defer func() {
		if r := recover(); r != "kaboom" {
			t.Fatalf("expected the panic to propagate, got %v", r)
		}
		if got := countRows(t, env.db, &domain.Amenity{}); got != 0 {
			t.Fatalf("expected rollback to discard the insert, got %d rows", got)
		}
	}()

	_ = withTx(env.db, func(tx *gorm.DB) error {
		if err := tx.Create(&domain.Amenity{Name: "sauna"}).Error; err != nil {
			return err
		}
		panic("kaboom")
	})
}

func TestSendChatMessage_MissingGroupLeavesNoMessage(t *testing.T) {
	env := newTestEnv(t)
	token := env.tokenFor(t, domain.RoleAdmin)

	w := env.request(t, http.MethodPut, "/api/chat/messages", token,
		domain.ChatMessage{GroupID: "no-such-group", SenderID: "u1", Body: "hello"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
	if got := countRows(t, env.db, &chatMessageRecord{}); got != 0 {
		t.Fatalf("expected no message rows for a missing group, got %d", got)
	}
}

func TestCreateBooking_MissingLodgingLeavesNoBooking(t *testing.T) {
	env := newTestEnv(t)
	token := env.tokenFor(t, domain.RoleAdmin)

	w := env.request(t, http.MethodPut, "/api/bookings", token,
		domain.Booking{LodgingID: 999, GuestName: "Ada", CheckIn: "2026-09-01", CheckOut: "2026-09-05", Guests: 2})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
	if got := countRows(t, env.db, &domain.Booking{}); got != 0 {
		t.Fatalf("expected no booking rows for a missing lodging, got %d", got)
	}
}
