// Package viewmodel holds the client-side state of the payment details form:
// the record list, the single edit form and the loading and error flags.
//
// The record list is never the source of truth. It is replaced wholesale from
// the API after every successful mutation.
package viewmodel

import (
	"context"
	"fmt"
	"sync"

	"github.com/alovak/payment-details/paymentdetails/models"
	"golang.org/x/exp/slog"
)

const (
	SaveFailedMessage   = "Failed to save payment details. Please check your connection and try again."
	DeleteFailedMessage = "Failed to delete payment details. Please check your connection and try again."

	fetchFailedFormat = "Failed to connect to the server. Please make sure your API server is running on %s"
)

// Gateway is the remote store the controller reads from and writes to.
type Gateway interface {
	List(ctx context.Context) ([]models.PaymentDetail, error)
	Create(ctx context.Context, in models.PaymentDetailInput) (*models.PaymentDetail, error)
	Update(ctx context.Context, id int64, detail models.PaymentDetail) error
	Delete(ctx context.Context, id int64) error
}

// Controller owns the form state. All reads and writes go through its
// methods; the mutex is never held across a gateway call.
type Controller struct {
	gateway      Gateway
	logger       *slog.Logger
	fetchMessage string

	mu        sync.Mutex
	records   []models.PaymentDetail
	form      models.PaymentDetailInput
	editingID *int64
	loading   bool
	err       string
}

// New creates a controller. apiURL is only used in the connection error
// message shown to the user.
func New(gateway Gateway, apiURL string, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		gateway:      gateway,
		logger:       logger.With(slog.String("component", "viewmodel")),
		fetchMessage: fmt.Sprintf(fetchFailedFormat, apiURL),
		records:      []models.PaymentDetail{},
	}
}

// FetchFailedMessage is the error shown when the record list cannot be loaded.
func (c *Controller) FetchFailedMessage() string {
	return c.fetchMessage
}

// Refresh replaces the record list with the one held by the API. On failure
// the previous list is kept and the error slot is set.
func (c *Controller) Refresh(ctx context.Context) {
	c.mu.Lock()
	c.loading = true
	c.err = ""
	c.mu.Unlock()

	defer c.setLoading(false)

	records, err := c.gateway.List(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.logger.Error("fetching payment details", "err", err)
		c.err = c.fetchMessage
		return
	}
	c.records = append(make([]models.PaymentDetail, 0, len(records)), records...)
}

// Submit creates a record from the form, or replaces the record being edited.
// It returns an error only when a form field is empty, in which case nothing
// is sent and the state is left as is. Gateway failures end up in the error
// slot.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	form := c.form
	var editingID *int64
	if c.editingID != nil {
		id := *c.editingID
		editingID = &id
	}
	c.mu.Unlock()

	if err := form.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	c.loading = true
	c.err = ""
	c.mu.Unlock()

	defer c.setLoading(false)

	var err error
	if editingID != nil {
		err = c.gateway.Update(ctx, *editingID, form.WithID(*editingID))
	} else {
		_, err = c.gateway.Create(ctx, form)
	}
	if err != nil {
		c.logger.Error("saving payment details", "err", err)
		c.setError(SaveFailedMessage)
		return nil
	}

	c.mu.Lock()
	c.form = models.PaymentDetailInput{}
	c.editingID = nil
	c.mu.Unlock()

	c.Refresh(ctx)
	return nil
}

// BeginEdit loads a record into the form. The security code is copied back
// verbatim so the form can be resubmitted as a full replacement.
func (c *Controller) BeginEdit(detail models.PaymentDetail) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.form = detail.Input()
	id := detail.ID
	c.editingID = &id
}

// CancelEdit leaves edit mode and clears the form.
func (c *Controller) CancelEdit() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.editingID = nil
	c.form = models.PaymentDetailInput{}
}

// Remove deletes a record and reloads the list. The form is not touched.
func (c *Controller) Remove(ctx context.Context, id int64) {
	c.setError("")

	if err := c.gateway.Delete(ctx, id); err != nil {
		c.logger.Error("deleting payment details", slog.Int64("payment_detail_id", id), "err", err)
		c.setError(DeleteFailedMessage)
		return
	}

	c.Refresh(ctx)
}

// SetField updates a single form field by its JSON name.
func (c *Controller) SetField(name, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch name {
	case "cardOwnerName":
		c.form.CardOwnerName = value
	case "cardNumber":
		c.form.CardNumber = value
	case "expirationDate":
		c.form.ExpirationDate = value
	case "securityCode":
		c.form.SecurityCode = value
	default:
		return fmt.Errorf("unknown form field %q", name)
	}
	return nil
}

// DismissError clears the error slot.
func (c *Controller) DismissError() {
	c.setError("")
}

// Find returns the loaded record with the given id.
func (c *Controller) Find(id int64) (models.PaymentDetail, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, r := range c.records {
		if r.ID == id {
			return r, true
		}
	}
	return models.PaymentDetail{}, false
}

// Records returns a copy of the loaded records.
func (c *Controller) Records() []models.PaymentDetail {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]models.PaymentDetail(nil), c.records...)
}

// Form returns the current form contents and the id being edited, if any.
func (c *Controller) Form() (models.PaymentDetailInput, *int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.editingID == nil {
		return c.form, nil
	}
	id := *c.editingID
	return c.form, &id
}

// Loading reports whether a fetch or save is in flight.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Err returns the current error message, empty when there is none.
func (c *Controller) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

func (c *Controller) setLoading(v bool) {
	c.mu.Lock()
	c.loading = v
	c.mu.Unlock()
}

func (c *Controller) setError(msg string) {
	c.mu.Lock()
	c.err = msg
	c.mu.Unlock()
}
