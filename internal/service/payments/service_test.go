package payments

import (
	"context"
	"database/sql"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/coursebot/internal/apperr"
	"github.com/m3rciful/coursebot/internal/domain"
)

type fakeStore struct {
	users    map[int64]*domain.User
	courses  map[int64]*domain.Course
	methods  map[int64]*domain.PaymentMethod
	payments map[int64]*domain.Payment
	approved map[int64]int64

	nextID               int64
	adminNotified        map[int64]bool
	userNotifiedApproved map[int64]bool
	userNotifiedRejected map[int64]bool
	linkSent             map[int64]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:                map[int64]*domain.User{},
		courses:              map[int64]*domain.Course{},
		methods:              map[int64]*domain.PaymentMethod{},
		payments:             map[int64]*domain.Payment{},
		approved:             map[int64]int64{},
		adminNotified:        map[int64]bool{},
		userNotifiedApproved: map[int64]bool{},
		userNotifiedRejected: map[int64]bool{},
		linkSent:             map[int64]bool{},
	}
}

func (f *fakeStore) GetUserByChatID(_ context.Context, chatID int64) (*domain.User, error) {
	u, ok := f.users[chatID]
	if !ok {
		return nil, apperr.New(apperr.KindNotFound, "error_start_command")
	}
	return u, nil
}

func (f *fakeStore) GetCourse(_ context.Context, id int64) (*domain.Course, error) {
	c, ok := f.courses[id]
	if !ok {
		return nil, apperr.New(apperr.KindNotFound, "course_not_available")
	}
	return c, nil
}

func (f *fakeStore) CountApprovedPayments(_ context.Context, courseID int64) (int64, error) {
	return f.approved[courseID], nil
}

func (f *fakeStore) GetPaymentMethod(_ context.Context, id int64) (*domain.PaymentMethod, error) {
	m, ok := f.methods[id]
	if !ok {
		return nil, apperr.New(apperr.KindNotFound, "no_payment_methods_available")
	}
	return m, nil
}

func (f *fakeStore) CreatePayment(_ context.Context, p *domain.Payment) (*domain.Payment, error) {
	for _, existing := range f.payments {
		if existing.UserID == p.UserID && existing.CourseID == p.CourseID && existing.Status.Blocking() {
			return nil, apperr.Conflict("payment_already_pending", string(existing.Status))
		}
	}
	f.nextID++
	stored := *p
	stored.ID = f.nextID
	stored.Status = domain.PaymentPending
	stored.CreatedAt = time.Now()
	f.payments[stored.ID] = &stored
	return &stored, nil
}

func (f *fakeStore) FindBlockingPayment(_ context.Context, userID, courseID int64) (*domain.Payment, error) {
	for _, p := range f.payments {
		if p.UserID == userID && p.CourseID == courseID && p.Status.Blocking() {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) GetPayment(_ context.Context, id int64) (*domain.Payment, error) {
	p, ok := f.payments[id]
	if !ok {
		return nil, apperr.New(apperr.KindNotFound, "error_payment_save")
	}
	return p, nil
}

func (f *fakeStore) ApprovePayment(ctx context.Context, id, adminID int64) (*domain.Payment, error) {
	p, ok := f.payments[id]
	if !ok {
		return nil, apperr.New(apperr.KindNotFound, "error_payment_save")
	}
	if p.Status != domain.PaymentPending {
		return nil, apperr.Conflict("payment_already_pending", string(p.Status))
	}
	p.Status = domain.PaymentApproved
	p.AdminID = sql.NullInt64{Int64: adminID, Valid: true}
	p.ApprovedAt = sql.NullTime{Time: time.Now(), Valid: true}
	f.approved[p.CourseID]++
	return p, nil
}

func (f *fakeStore) RejectPayment(ctx context.Context, id, adminID int64, comment string) (*domain.Payment, error) {
	p, ok := f.payments[id]
	if !ok {
		return nil, apperr.New(apperr.KindNotFound, "error_payment_save")
	}
	if p.Status != domain.PaymentPending {
		return nil, apperr.Conflict("payment_already_pending", string(p.Status))
	}
	p.Status = domain.PaymentRejected
	p.AdminComment = comment
	p.AdminID = sql.NullInt64{Int64: adminID, Valid: true}
	return p, nil
}

func (f *fakeStore) CancelPayment(_ context.Context, id, userID int64) error {
	p, ok := f.payments[id]
	if !ok {
		return apperr.New(apperr.KindNotFound, "error_payment_save")
	}
	if p.UserID != userID || p.Status != domain.PaymentPending {
		return apperr.Conflict("payment_already_pending", string(p.Status))
	}
	p.Status = domain.PaymentCancelled
	return nil
}

func (f *fakeStore) SetLinkSent(_ context.Context, id int64) error {
	f.linkSent[id] = true
	return nil
}

func (f *fakeStore) ListPendingPayments(_ context.Context) ([]domain.Payment, error) {
	var out []domain.Payment
	for _, p := range f.payments {
		if p.Status == domain.PaymentPending {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeStore) ListUnnotifiedPayments(_ context.Context) ([]domain.Payment, error) {
	var out []domain.Payment
	for _, p := range f.payments {
		switch p.Status {
		case domain.PaymentPending:
			if !f.adminNotified[p.ID] {
				out = append(out, *p)
			}
		case domain.PaymentApproved:
			if !f.userNotifiedApproved[p.ID] {
				out = append(out, *p)
			}
		case domain.PaymentRejected:
			if !f.userNotifiedRejected[p.ID] {
				out = append(out, *p)
			}
		}
	}
	return out, nil
}

func (f *fakeStore) GetNotification(_ context.Context, paymentID int64) (*domain.PaymentNotification, error) {
	if _, ok := f.payments[paymentID]; !ok {
		return nil, apperr.New(apperr.KindNotFound, "error_payment_save")
	}
	return &domain.PaymentNotification{
		PaymentID:            paymentID,
		AdminNotified:        f.adminNotified[paymentID],
		UserNotifiedApproved: f.userNotifiedApproved[paymentID],
		UserNotifiedRejected: f.userNotifiedRejected[paymentID],
	}, nil
}

func (f *fakeStore) MarkAdminNotified(_ context.Context, paymentID int64) error {
	f.adminNotified[paymentID] = true
	return nil
}

func (f *fakeStore) MarkUserNotified(_ context.Context, paymentID int64, approved bool) error {
	if approved {
		f.userNotifiedApproved[paymentID] = true
	} else {
		f.userNotifiedRejected[paymentID] = true
	}
	return nil
}

type fakeReceipts struct {
	saved []string
}

func (f *fakeReceipts) Save(_ context.Context, chatID int64, ext string, body io.Reader) (string, error) {
	io.Copy(io.Discard, body)
	path := "receipts/test" + ext
	f.saved = append(f.saved, path)
	return path, nil
}

type fakeNotifier struct {
	newPayments int
	approvals   int
	rejections  int
	fail        bool
}

func (f *fakeNotifier) NewPayment(context.Context, *Info) error {
	if f.fail {
		return assert.AnError
	}
	f.newPayments++
	return nil
}

func (f *fakeNotifier) Approved(context.Context, *Info) error {
	if f.fail {
		return assert.AnError
	}
	f.approvals++
	return nil
}

func (f *fakeNotifier) Rejected(context.Context, *Info) error {
	if f.fail {
		return assert.AnError
	}
	f.rejections++
	return nil
}

func seededStore() *fakeStore {
	store := newFakeStore()
	store.users[100] = &domain.User{ID: 1, ChatID: 100, FirstName: "Aybek", Phone: "+998901112233", Locale: domain.LocaleQR}
	store.courses[1] = &domain.Course{ID: 1, Name: domain.LocalizedText{QR: "Go tili"}, Price: 500000, GroupLink: "https://t.me/+abc", IsActive: true}
	store.methods[5] = &domain.PaymentMethod{ID: 5, Name: domain.LocalizedText{QR: "Humo"}, CardNumber: "9860 0000 0000 0000", IsActive: true}
	return store
}

func createParams() CreateParams {
	return CreateParams{
		ChatID:   100,
		CourseID: 1,
		MethodID: 5,
		Receipt:  strings.NewReader("%PDF-1.4"),
		FileName: "receipt.pdf",
		MIME:     "application/pdf",
		Size:     2048,
	}
}

func TestCreateHappyPath(t *testing.T) {
	store := seededStore()
	notifier := &fakeNotifier{}
	svc := New(store, &fakeReceipts{}, notifier)

	info, err := svc.Create(context.Background(), createParams())
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPending, info.Payment.Status)
	assert.Equal(t, int64(500000), info.Payment.Amount)
	assert.Equal(t, 1, notifier.newPayments)
	assert.True(t, store.adminNotified[info.Payment.ID])
}

func TestCreateRejectsBadDocument(t *testing.T) {
	svc := New(seededStore(), &fakeReceipts{}, &fakeNotifier{})

	p := createParams()
	p.MIME = "application/zip"
	_, err := svc.Create(context.Background(), p)
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	p = createParams()
	p.Size = domain.MaxReceiptSize + 1
	_, err = svc.Create(context.Background(), p)
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	// Photos bypass MIME and size checks.
	p = createParams()
	p.MIME = ""
	p.FromPhoto = true
	_, err = svc.Create(context.Background(), p)
	assert.NoError(t, err)
}

func TestCreateDuplicateConflict(t *testing.T) {
	svc := New(seededStore(), &fakeReceipts{}, &fakeNotifier{})

	_, err := svc.Create(context.Background(), createParams())
	require.NoError(t, err)

	p := createParams()
	p.Receipt = strings.NewReader("%PDF-1.4")
	_, err = svc.Create(context.Background(), p)
	assert.True(t, apperr.Is(err, apperr.KindConflict))
}

func TestCreateFullCourse(t *testing.T) {
	store := seededStore()
	store.courses[1].MaxStudents = 2
	store.approved[1] = 2
	svc := New(store, &fakeReceipts{}, &fakeNotifier{})

	_, err := svc.Create(context.Background(), createParams())
	assert.True(t, apperr.Is(err, apperr.KindConflict))
	assert.Equal(t, "course_not_available", apperr.MsgKeyOf(err))
}

func TestApproveLifecycle(t *testing.T) {
	store := seededStore()
	notifier := &fakeNotifier{}
	svc := New(store, &fakeReceipts{}, notifier)

	created, err := svc.Create(context.Background(), createParams())
	require.NoError(t, err)

	info, err := svc.Approve(context.Background(), created.Payment.ID, 999)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentApproved, info.Payment.Status)
	assert.True(t, info.LinkDelivered)
	assert.Equal(t, 1, notifier.approvals)
	assert.True(t, store.linkSent[info.Payment.ID])
	assert.True(t, store.userNotifiedApproved[info.Payment.ID])

	// Second approval reports the resolved status instead of re-running.
	_, err = svc.Approve(context.Background(), created.Payment.ID, 999)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindConflict))
	assert.Equal(t, string(domain.PaymentApproved), apperr.StatusOf(err))
	assert.Equal(t, 1, notifier.approvals)
}

func TestRejectThenRetryAllowed(t *testing.T) {
	store := seededStore()
	notifier := &fakeNotifier{}
	svc := New(store, &fakeReceipts{}, notifier)

	created, err := svc.Create(context.Background(), createParams())
	require.NoError(t, err)

	info, err := svc.Reject(context.Background(), created.Payment.ID, 999, "chek anıq emes")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentRejected, info.Payment.Status)
	assert.Equal(t, "chek anıq emes", info.Payment.AdminComment)
	assert.Equal(t, 1, notifier.rejections)

	// A rejected payment no longer blocks a new purchase.
	p := createParams()
	p.Receipt = strings.NewReader("%PDF-1.4")
	_, err = svc.Create(context.Background(), p)
	assert.NoError(t, err)
}

func TestCancelReleasesCourse(t *testing.T) {
	store := seededStore()
	svc := New(store, &fakeReceipts{}, &fakeNotifier{})

	created, err := svc.Create(context.Background(), createParams())
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(context.Background(), created.Payment.ID, 100))
	assert.Equal(t, domain.PaymentCancelled, store.payments[created.Payment.ID].Status)

	// A cancelled payment no longer blocks a new purchase.
	p := createParams()
	p.Receipt = strings.NewReader("%PDF-1.4")
	_, err = svc.Create(context.Background(), p)
	assert.NoError(t, err)

	// Cancelling twice reports the resolved status.
	err = svc.Cancel(context.Background(), created.Payment.ID, 100)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindConflict))
	assert.Equal(t, string(domain.PaymentCancelled), apperr.StatusOf(err))
}

func TestCancelOnlyByOwner(t *testing.T) {
	store := seededStore()
	svc := New(store, &fakeReceipts{}, &fakeNotifier{})

	created, err := svc.Create(context.Background(), createParams())
	require.NoError(t, err)

	err = svc.Cancel(context.Background(), created.Payment.ID, 777)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindConflict))
	assert.Equal(t, domain.PaymentPending, store.payments[created.Payment.ID].Status)
}

func TestDeliveredNotificationsNotRepeated(t *testing.T) {
	store := seededStore()
	notifier := &fakeNotifier{}
	svc := New(store, &fakeReceipts{}, notifier)

	created, err := svc.Create(context.Background(), createParams())
	require.NoError(t, err)

	info, err := svc.Approve(context.Background(), created.Payment.ID, 999)
	require.NoError(t, err)
	assert.Equal(t, 1, notifier.approvals)

	// The stored flag short-circuits a repeated delivery attempt, and the
	// link still counts as delivered.
	assert.True(t, svc.notifyApproved(context.Background(), info))
	assert.Equal(t, 1, notifier.approvals)

	store.userNotifiedRejected[created.Payment.ID] = true
	svc.notifyRejected(context.Background(), info)
	assert.Equal(t, 0, notifier.rejections)
}

func TestSweepRetriesFailedNotifications(t *testing.T) {
	store := seededStore()
	notifier := &fakeNotifier{fail: true}
	svc := New(store, &fakeReceipts{}, notifier)

	created, err := svc.Create(context.Background(), createParams())
	require.NoError(t, err)
	assert.False(t, store.adminNotified[created.Payment.ID])

	notifier.fail = false
	require.NoError(t, svc.Sweep(context.Background()))
	assert.Equal(t, 1, notifier.newPayments)
	assert.True(t, store.adminNotified[created.Payment.ID])

	// Once flagged, the sweep leaves the payment alone.
	require.NoError(t, svc.Sweep(context.Background()))
	assert.Equal(t, 1, notifier.newPayments)
}
