package v1

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/eventsync/eventsync-api/internal/api/middleware"
	"github.com/eventsync/eventsync-api/internal/domain"
	"github.com/eventsync/eventsync-api/internal/service"
)

type stubUserService struct {
	user domain.User
}

func (s *stubUserService) GetUser(context.Context, uint) (domain.User, error) {
	return s.user, nil
}

func (s *stubUserService) ListUsers(context.Context) ([]domain.User, error) {
	return nil, nil
}

func (s *stubUserService) SetAccountStatus(context.Context, uint, bool) (domain.User, error) {
	return domain.User{}, nil
}

// stubRegistrationService cancels with a canned error; the other methods
// are never reached by the cancellation handler.
type stubRegistrationService struct {
	cancelErr error
}

func (s *stubRegistrationService) Register(context.Context, uint, uint, *domain.PaymentProof) (domain.Registration, error) {
	return domain.Registration{}, nil
}

func (s *stubRegistrationService) Cancel(context.Context, uint, uint) error {
	return s.cancelErr
}

func (s *stubRegistrationService) GetByID(context.Context, uint) (domain.Registration, error) {
	return domain.Registration{}, nil
}

func (s *stubRegistrationService) ListByEvent(context.Context, uint) ([]domain.Registration, error) {
	return nil, nil
}

func (s *stubRegistrationService) Ticket(context.Context, uint, uint) (domain.Registration, []byte, error) {
	return domain.Registration{}, nil, nil
}

func (s *stubRegistrationService) VerifyPayment(context.Context, uint) error {
	return nil
}

func (s *stubRegistrationService) RejectPayment(context.Context, uint, string) error {
	return nil
}

func (s *stubRegistrationService) SetAttendance(context.Context, uint, bool) (domain.Registration, error) {
	return domain.Registration{}, nil
}

func (s *stubRegistrationService) CheckInByQR(context.Context, uint, []byte) (service.CheckInResult, error) {
	return service.CheckInResult{}, nil
}

func cancelRequest(t *testing.T, svc RegistrationService) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := NewRegistrationHandler(svc, nil, &stubUserService{user: domain.User{ID: 3, Role: domain.RoleStudent}})

	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodDelete, "/events/7/register", nil)
	ctx.Params = gin.Params{{Key: "eventID", Value: "7"}}
	ctx.Set(middleware.ContextKeyUserID, uint(3))

	h.HandleCancelRegistration(ctx)
	ctx.Writer.WriteHeaderNow()
	return w
}

func TestHandleCancelRegistration(t *testing.T) {
	t.Run("frees the slot", func(t *testing.T) {
		w := cancelRequest(t, &stubRegistrationService{})
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("unknown registration is a 404", func(t *testing.T) {
		w := cancelRequest(t, &stubRegistrationService{
			cancelErr: fmt.Errorf("s.repo.Delete -> %w", service.ErrRegistrationNotFound),
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"registration not found (eventID=7)"}`, w.Body.String())
	})

	t.Run("unknown event is a 404", func(t *testing.T) {
		w := cancelRequest(t, &stubRegistrationService{
			cancelErr: fmt.Errorf("s.repo.Delete -> %w", service.ErrEventNotFound),
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
