package sender

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/barber-booking/internal/lib/smtp"
	"github.com/magabrotheeeer/barber-booking/internal/models"
)

type ClientMock struct {
	mock.Mock
	data bytes.Buffer
}

func (m *ClientMock) Mail(from string) error { return m.Called(from).Error(0) }
func (m *ClientMock) Rcpt(to string) error   { return m.Called(to).Error(0) }
func (m *ClientMock) Quit() error            { return m.Called().Error(0) }
func (m *ClientMock) Close() error           { return m.Called().Error(0) }

func (m *ClientMock) Data() (io.WriteCloser, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return nopWriteCloser{&m.data}, args.Error(1)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

type TransportMock struct {
	mock.Mock
	client smtp.Client
}

func (m *TransportMock) Connect() (smtp.Client, error) {
	args := m.Called()
	return m.client, args.Error(0)
}

func (m *TransportMock) GetSMTPUser() string {
	return "noreply@example.com"
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func testNoticeBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(models.RenewalNotice{
		BarberUID: "uid-1",
		Email:     "barber@example.com",
		Name:      "Carlos",
		ExpiresAt: time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC),
		DaysLeft:  3,
	})
	require.NoError(t, err)
	return body
}

func TestSendRenewalReminder(t *testing.T) {
	client := new(ClientMock)
	client.On("Mail", "noreply@example.com").Return(nil)
	client.On("Rcpt", "barber@example.com").Return(nil)
	client.On("Data").Return(struct{}{}, nil)
	client.On("Quit").Return(nil)
	client.On("Close").Return(nil)

	transport := &TransportMock{client: client}
	transport.On("Connect").Return(nil)

	svc := New(transport, newNoopLogger())

	err := svc.SendRenewalReminder(testNoticeBody(t))
	require.NoError(t, err)

	sent := client.data.String()
	assert.Contains(t, sent, "To: barber@example.com")
	assert.Contains(t, sent, "Carlos")
	assert.Contains(t, sent, "3 dia(s)")
	assert.Contains(t, sent, "15/03/2026")
	client.AssertExpectations(t)
}

func TestSendRenewalReminder_BadPayload(t *testing.T) {
	transport := &TransportMock{}
	svc := New(transport, newNoopLogger())

	err := svc.SendRenewalReminder([]byte("{not json"))
	require.Error(t, err)
	transport.AssertNotCalled(t, "Connect")
}

func TestSendRenewalReminder_ConnectError(t *testing.T) {
	transport := &TransportMock{}
	transport.On("Connect").Return(errors.New("dial failed"))

	svc := New(transport, newNoopLogger())

	err := svc.SendRenewalReminder(testNoticeBody(t))
	require.Error(t, err)
}
