package notification

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"facilityhub/internal/domain"
	"facilityhub/internal/realtime"
)

// dispatchTimeout bounds a detached notification dispatch. Dispatches run
// after the primary operation has committed, so a slow write here must not
// pile up forever.
const dispatchTimeout = 10 * time.Second

// Dispatcher turns domain events into persisted Notification rows plus a
// live push to connected recipients.
//
// Delivery is push-first, persist-second: the live emit is attempted before
// the durable write, and a failed push is dropped; the row is the fallback
// an offline client discovers on its next poll. Persistence failures are
// logged and surfaced to the caller, which treats the whole dispatch as
// best-effort relative to the primary operation.
type Dispatcher struct {
	store  Store
	users  UserDirectory
	pusher Pusher
	log    *logrus.Logger
}

func NewDispatcher(store Store, users UserDirectory, pusher Pusher, log *logrus.Logger) *Dispatcher {
	return &Dispatcher{
		store:  store,
		users:  users,
		pusher: pusher,
		log:    log,
	}
}

// Notify delivers one payload to one recipient, rewriting the action URL for
// the recipient's role.
func (d *Dispatcher) Notify(ctx context.Context, recipientID int64, p Payload) error {
	u, err := d.users.GetByID(ctx, recipientID)
	if err != nil {
		return err
	}

	n := p.toNotification(recipientID, rewriteForRole(u.Role, p.ActionURL))
	n.CreatedAt = time.Now()

	d.push(recipientID, &n)
	return d.store.Create(ctx, &n)
}

// NotifyMultiple delivers one payload to many recipients. URL rewriting is
// computed per recipient since a batch may span several roles.
func (d *Dispatcher) NotifyMultiple(ctx context.Context, recipientIDs []int64, p Payload) error {
	users, err := d.users.ListByIDs(ctx, recipientIDs)
	if err != nil {
		return err
	}

	now := time.Now()
	rows := make([]domain.Notification, 0, len(users))
	for _, u := range users {
		n := p.toNotification(u.ID, rewriteForRole(u.Role, p.ActionURL))
		n.CreatedAt = now
		d.push(u.ID, &n)
		rows = append(rows, n)
	}
	return d.store.CreateMany(ctx, rows)
}

// UsersByRole returns the ids of active users in the given roles; the
// admin/manager broadcast list is computed with it.
func (d *Dispatcher) UsersByRole(ctx context.Context, roles ...domain.Role) ([]int64, error) {
	return d.users.IDsByRole(ctx, roles...)
}

// push attempts the live emit. Failure is logged and dropped: a recipient
// without a live connection simply sees the row on its next poll.
func (d *Dispatcher) push(recipientID int64, n *domain.Notification) {
	if err := d.pusher.EmitToUser(recipientID, realtime.EventNewNotification, n); err != nil {
		d.log.WithError(err).WithField("recipient_id", recipientID).Warn("live push failed")
	}
}

// dispatch runs fn detached from the request path and logs its failure.
// Notification side effects never block or fail the triggering operation.
func (d *Dispatcher) dispatch(event string, fn func(ctx context.Context) error) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()
		if err := fn(ctx); err != nil {
			d.log.WithError(err).WithField("event", event).Warn("notification dispatch failed")
		}
	}()
}

// Domain-event entry points. All are fire-and-forget.

// BookingCreated alerts all active admins and managers about a new booking.
func (d *Dispatcher) BookingCreated(b *domain.Booking, facilityName string) {
	d.dispatch("booking_created", func(ctx context.Context) error {
		ids, err := d.users.IDsByRole(ctx, domain.RoleAdmin, domain.RoleManager)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		return d.NotifyMultiple(ctx, ids, BookingCreatedPayload(b.ID, facilityName, formatDate(b.Start)))
	})
}

// BookingCancelled alerts admins and managers that a slot was freed.
func (d *Dispatcher) BookingCancelled(b *domain.Booking, facilityName string) {
	d.dispatch("booking_cancelled", func(ctx context.Context) error {
		ids, err := d.users.IDsByRole(ctx, domain.RoleAdmin, domain.RoleManager)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		return d.NotifyMultiple(ctx, ids, BookingCancelledPayload(b.ID, facilityName, formatDate(b.Start)))
	})
}

// RequestCreated alerts all active admins and managers.
func (d *Dispatcher) RequestCreated(req *domain.MaintenanceRequest, submitterName string) {
	d.dispatch("request_created", func(ctx context.Context) error {
		ids, err := d.users.IDsByRole(ctx, domain.RoleAdmin, domain.RoleManager)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		return d.NotifyMultiple(ctx, ids, RequestCreatedPayload(req.ID, req.Title, submitterName))
	})
}

// RequestAssigned notifies the technician and the submitter in parallel.
func (d *Dispatcher) RequestAssigned(req *domain.MaintenanceRequest, technician *domain.User) {
	d.dispatch("request_assigned", func(ctx context.Context) error {
		if err := d.Notify(ctx, technician.ID, RequestAssignedToTechnicianPayload(req.ID, req.Title)); err != nil {
			return err
		}
		return d.Notify(ctx, req.SubmittedByID, TechnicianAssignedPayload(req.ID, req.Title, technician.DisplayName()))
	})
}

// RequestStatusChanged notifies the submitter of a non-completion change.
func (d *Dispatcher) RequestStatusChanged(req *domain.MaintenanceRequest) {
	d.dispatch("request_status_changed", func(ctx context.Context) error {
		return d.Notify(ctx, req.SubmittedByID, RequestStatusChangedPayload(req.ID, req.Title, req.Status))
	})
}

// RequestCompleted notifies the submitter and all admins/managers, without
// duplicates when the submitter is also staff.
func (d *Dispatcher) RequestCompleted(req *domain.MaintenanceRequest) {
	d.dispatch("request_completed", func(ctx context.Context) error {
		ids, err := d.users.IDsByRole(ctx, domain.RoleAdmin, domain.RoleManager)
		if err != nil {
			return err
		}

		recipients := append([]int64{req.SubmittedByID}, ids...)
		return d.NotifyMultiple(ctx, dedupe(recipients), RequestCompletedPayload(req.ID, req.Title))
	})
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func formatDate(t time.Time) string {
	return t.UTC().Format("Jan 2, 2006")
}
