package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Rushi8087/xerox-automation/internal/clock"
	"github.com/Rushi8087/xerox-automation/internal/domain"
)

// FileStore persists uploaded bytes and returns a stable storage reference.
type FileStore interface {
	Save(ctx context.Context, filename string, content []byte) (string, error)
}

// PageEstimator guesses the page count of a stored file. It is best-effort:
// callers fall back to 1 page when it fails.
type PageEstimator interface {
	EstimatePages(ctx context.Context, storageRef, ext string) (int, error)
}

// Notifier delivers a text message to a user. Delivery is best-effort.
type Notifier interface {
	SendText(ctx context.Context, to, body string) error
}

// OrderSpool writes a confirmed order to the hand-off queue.
type OrderSpool interface {
	Save(order domain.ConfirmedOrder) (string, error)
}

// IntakeService mutates sessions in response to uploads, option changes and
// confirmation. Every operation for one session is serialized by the
// session's mutex; the confirmed flag flips exactly once.
type IntakeService struct {
	registry   *Registry
	store      FileStore
	pages      PageEstimator
	notifier   Notifier
	spool      OrderSpool
	clock      clock.Clock
	log        *zap.Logger
	paymentVPA string
}

const defaultPaymentVPA = "printshop@upi"

type IntakeOption func(*IntakeService)

// WithPaymentVPA overrides the UPI address embedded in payment references.
func WithPaymentVPA(vpa string) IntakeOption {
	return func(s *IntakeService) {
		if vpa != "" {
			s.paymentVPA = vpa
		}
	}
}

func NewIntakeService(
	registry *Registry,
	store FileStore,
	pages PageEstimator,
	notifier Notifier,
	spool OrderSpool,
	clk clock.Clock,
	log *zap.Logger,
	opts ...IntakeOption,
) *IntakeService {
	svc := &IntakeService{
		registry:   registry,
		store:      store,
		pages:      pages,
		notifier:   notifier,
		spool:      spool,
		clock:      clk,
		log:        log,
		paymentVPA: defaultPaymentVPA,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// AddFile validates, stores and appends an uploaded file to the user's
// session. On any error the session is left untouched.
func (s *IntakeService) AddFile(ctx context.Context, userID, filename string, content []byte) (domain.FileEntry, error) {
	return s.addFile(ctx, s.registry.GetOrCreate(userID), filename, content)
}

// AddFileBySession is AddFile keyed by session token, for the web surface.
func (s *IntakeService) AddFileBySession(ctx context.Context, sessionID, filename string, content []byte) (domain.FileEntry, error) {
	sess, err := s.registry.FindBySessionID(sessionID)
	if err != nil {
		return domain.FileEntry{}, err
	}
	return s.addFile(ctx, sess, filename, content)
}

func (s *IntakeService) addFile(ctx context.Context, sess *Session, filename string, content []byte) (domain.FileEntry, error) {
	ext := fileExtension(filename)
	if !domain.SupportedExtension(ext) {
		return domain.FileEntry{}, domain.ErrUnsupportedFormat
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.data.Confirmed {
		return domain.FileEntry{}, domain.ErrOrderAlreadyConfirmed
	}

	ref, err := s.store.Save(ctx, filename, content)
	if err != nil {
		return domain.FileEntry{}, fmt.Errorf("store %s: %w", filename, err)
	}

	pageCount, err := s.pages.EstimatePages(ctx, ref, ext)
	if err != nil || pageCount < 1 {
		// Degraded mode: a wrong page count is better than a rejected upload.
		s.log.Warn("page estimation failed, assuming 1 page",
			zap.String("file", filename), zap.Error(err))
		pageCount = 1
	}

	sess.fileSeq++
	entry := domain.FileEntry{
		FileID:     fmt.Sprintf("FILE_%d", sess.fileSeq),
		Filename:   filename,
		Extension:  ext,
		StorageRef: ref,
		PageCount:  pageCount,
		Options:    domain.DefaultPrintOptions(),
		Status:     domain.FileStatusPending,
	}
	sess.data.Files = append(sess.data.Files, entry)
	return entry, nil
}

// ReplaceFiles swaps the session's whole file list. The web surface sends the
// complete list on every change; concurrent edits are last-writer-wins.
// Removing a file or clearing the order is the same call with a shorter list.
func (s *IntakeService) ReplaceFiles(ctx context.Context, sessionID string, files []domain.FileEntry) error {
	sess, err := s.registry.FindBySessionID(sessionID)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.data.Confirmed {
		return domain.ErrOrderAlreadyConfirmed
	}

	next := make([]domain.FileEntry, len(files))
	for i, f := range files {
		if f.Options.Copies < 1 {
			f.Options.Copies = 1
		}
		if f.PageCount < 1 {
			f.PageCount = 1
		}
		// Pricing happens only at confirmation.
		f.Sheets = nil
		f.Price = nil
		f.Status = domain.FileStatusPending
		next[i] = f
	}
	sess.data.Files = next
	return nil
}

// Order returns a snapshot of the session addressed by web token.
func (s *IntakeService) Order(ctx context.Context, sessionID string) (domain.Session, error) {
	sess, err := s.registry.FindBySessionID(sessionID)
	if err != nil {
		return domain.Session{}, err
	}
	return sess.Snapshot(), nil
}

// Confirm finalizes the order exactly once. The first call that observes an
// unconfirmed session flips the flag before doing anything else; later calls
// get ErrOrderAlreadyConfirmed and no second record is ever written. An empty
// order is rejected without flipping the flag so the user can retry.
func (s *IntakeService) Confirm(ctx context.Context, sessionID string) (domain.ConfirmedOrder, error) {
	sess, err := s.registry.FindBySessionID(sessionID)
	if err != nil {
		return domain.ConfirmedOrder{}, err
	}

	sess.mu.Lock()
	if sess.data.Confirmed {
		sess.mu.Unlock()
		return domain.ConfirmedOrder{}, domain.ErrOrderAlreadyConfirmed
	}
	if len(sess.data.Files) == 0 {
		sess.mu.Unlock()
		return domain.ConfirmedOrder{}, domain.ErrEmptyOrder
	}
	sess.data.Confirmed = true

	order, err := s.freezeLocked(sess)
	sess.mu.Unlock()
	if err != nil {
		return domain.ConfirmedOrder{}, err
	}

	if _, err := s.spool.Save(order); err != nil {
		// The session stays confirmed: a half-placed order must not become
		// editable again. The operator resolves it from the logs.
		s.log.Error("spool save failed", zap.String("order_id", order.OrderID), zap.Error(err))
		return domain.ConfirmedOrder{}, fmt.Errorf("persist order %s: %w", order.OrderID, err)
	}

	if err := s.notifier.SendText(ctx, order.UserID, orderSummary(order)); err != nil {
		s.log.Warn("order confirmation message failed",
			zap.String("order_id", order.OrderID), zap.Error(err))
	}
	return order, nil
}

// freezeLocked prices every file, marks entries completed and builds the
// immutable snapshot. Caller holds the session mutex.
func (s *IntakeService) freezeLocked(sess *Session) (domain.ConfirmedOrder, error) {
	totalPages := 0
	totalSheets := 0
	totalPrice := decimal.Zero

	for i := range sess.data.Files {
		f := &sess.data.Files[i]
		quote, err := domain.PriceFile(f.PageCount, f.Options.Copies, f.Options.Duplex, f.Options.Color)
		if err != nil {
			return domain.ConfirmedOrder{}, fmt.Errorf("price %s: %w", f.FileID, err)
		}
		sheets := quote.TotalSheets
		price := quote.Price
		f.Sheets = &sheets
		f.Price = &price
		f.Status = domain.FileStatusCompleted

		totalPages += f.PageCount
		totalSheets += quote.TotalSheets
		totalPrice = totalPrice.Add(quote.Price)
	}

	snapshot := sess.data.Clone()
	order := domain.ConfirmedOrder{
		OrderID:     snapshot.OrderID,
		UserID:      snapshot.UserID,
		ConfirmedAt: s.clock.Now(),
		Files:       snapshot.Files,
		TotalPages:  totalPages,
		TotalSheets: totalSheets,
		TotalPrice:  totalPrice,
	}
	order.PaymentRef = s.paymentReference(order)
	return order, nil
}

func (s *IntakeService) paymentReference(order domain.ConfirmedOrder) string {
	return fmt.Sprintf("upi://pay?pa=%s&pn=PrintShop&am=%s&cu=INR&tn=Order_%s",
		s.paymentVPA, order.TotalPrice.StringFixed(2), order.OrderID)
}

func orderSummary(order domain.ConfirmedOrder) string {
	var b strings.Builder
	fmt.Fprintf(&b, "✅ Order %s\n\n", order.OrderID)
	for i, f := range order.Files {
		mode := "S"
		if f.Options.Duplex {
			mode = "D"
		}
		color := "BW"
		if f.Options.Color {
			color = "C"
		}
		fmt.Fprintf(&b, "%d. %s\n   %dp|%s|%s|%dx = %dsh = ₹%s\n",
			i+1, f.Filename, f.PageCount, mode, color, f.Options.Copies,
			*f.Sheets, f.Price.StringFixed(2))
	}
	fmt.Fprintf(&b, "\n%dp total\n%d sheets\nTotal: ₹%s\n\nPay: %s",
		order.TotalPages, order.TotalSheets, order.TotalPrice.StringFixed(2), order.PaymentRef)
	return b.String()
}

func fileExtension(filename string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
}
