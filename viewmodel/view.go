package viewmodel

import (
	"github.com/alovak/payment-details/internal/cardmask"
	"github.com/alovak/payment-details/paymentdetails/models"
)

// Status tells which of the list panels to show.
type Status int

const (
	// StatusList means there are records to show.
	StatusList Status = iota
	// StatusEmpty means the store holds no records.
	StatusEmpty
	// StatusUnavailable means loading failed and nothing was loaded before.
	StatusUnavailable
)

const (
	EmptyMessage       = "No payment details found. Add your first payment method above."
	UnavailableMessage = "Unable to load payment details. Please check if your API server is running."
)

func (s Status) String() string {
	switch s {
	case StatusList:
		return "list"
	case StatusEmpty:
		return "empty"
	case StatusUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Row is a record prepared for display. Card data is masked.
type Row struct {
	ID             int64
	CardOwnerName  string
	CardNumber     string
	ExpirationDate string
	SecurityCode   string
}

// View is a snapshot of everything the form and the list render.
type View struct {
	Status      Status
	Loading     bool
	Error       string
	Form        models.PaymentDetailInput
	Editing     bool
	EditingID   int64
	SubmitLabel string
	CanCancel   bool
	Rows        []Row
}

// Message returns the panel text for the empty and unavailable states.
func (v View) Message() string {
	switch v.Status {
	case StatusEmpty:
		return EmptyMessage
	case StatusUnavailable:
		return UnavailableMessage
	default:
		return ""
	}
}

// View builds a render snapshot of the current state.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := View{
		Loading: c.loading,
		Error:   c.err,
		Form:    c.form,
		Editing: c.editingID != nil,
		Rows:    make([]Row, 0, len(c.records)),
	}
	if v.Editing {
		v.EditingID = *c.editingID
	}
	v.CanCancel = v.Editing
	v.SubmitLabel = submitLabel(v.Editing, v.Loading)

	switch {
	case c.err != "" && len(c.records) == 0:
		v.Status = StatusUnavailable
	case len(c.records) == 0:
		v.Status = StatusEmpty
	default:
		v.Status = StatusList
	}

	for _, r := range c.records {
		v.Rows = append(v.Rows, Row{
			ID:             r.ID,
			CardOwnerName:  r.CardOwnerName,
			CardNumber:     cardmask.CardNumber(r.CardNumber),
			ExpirationDate: r.ExpirationDate,
			SecurityCode:   cardmask.SecurityCode,
		})
	}
	return v
}

func submitLabel(editing, loading bool) string {
	switch {
	case editing && loading:
		return "Updating..."
	case loading:
		return "Adding..."
	case editing:
		return "Update Payment"
	default:
		return "Add Payment"
	}
}
