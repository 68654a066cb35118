package booking

import "github.com/shareit-rental/service-booking/internal/platform/apperror"

// ActorRole is the relation between a user and a booking.
type ActorRole string

const (
	RoleBooker   ActorRole = "booker"
	RoleOwner    ActorRole = "owner"
	RoleStranger ActorRole = "stranger"
)

// Decision is the action an actor requests on a waiting booking.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
	DecisionCancel  Decision = "cancel"
)

var (
	ErrBookingExpired      = apperror.NewValidationError("booking period has already ended")
	ErrBookerCannotDecide  = apperror.NewForbiddenError("the booker cannot approve or reject their own booking")
	ErrAlreadyCanceled     = apperror.NewConflictError("booking is already canceled")
	ErrAlreadyDecided      = apperror.NewValidationError("booking is already decided and cannot be canceled")
	ErrDecisionAlreadyMade = apperror.NewValidationError("decision on this booking has already been made")
	ErrOwnerCannotCancel   = apperror.NewForbiddenError("only the booker can cancel a booking")
	ErrWasCanceled         = apperror.NewValidationError("booking was canceled")
	ErrOnlyOwnerDecides    = apperror.NewValidationError("only the item owner can approve or reject a booking")
)

// ResolveRole classifies actorID against a booking whose item belongs to itemOwnerID.
// The booker check wins, so a self-booking can never be decided by its owner side.
func ResolveRole(bookerID, itemOwnerID, actorID int64) ActorRole {
	switch actorID {
	case bookerID:
		return RoleBooker
	case itemOwnerID:
		return RoleOwner
	default:
		return RoleStranger
	}
}

// DecisionFor maps the transport's approved flag onto a decision for the given role.
// A booker sending approved=false cancels; an owner sending it rejects.
func DecisionFor(role ActorRole, approved bool) Decision {
	if approved {
		return DecisionApprove
	}
	if role == RoleBooker {
		return DecisionCancel
	}
	return DecisionReject
}

// Transition is the booking state machine. It returns the next status, or the
// reason the decision is not allowed. The current status is returned unchanged on error.
func Transition(current BookingStatus, role ActorRole, decision Decision) (BookingStatus, error) {
	switch role {
	case RoleBooker:
		if decision != DecisionCancel {
			return current, ErrBookerCannotDecide
		}
		switch current {
		case StatusWaiting:
			return StatusCanceled, nil
		case StatusCanceled:
			return current, ErrAlreadyCanceled
		default:
			return current, ErrAlreadyDecided
		}

	case RoleOwner:
		if current == StatusCanceled {
			return current, ErrWasCanceled
		}
		if current != StatusWaiting {
			return current, ErrDecisionAlreadyMade
		}
		switch decision {
		case DecisionApprove:
			return StatusApproved, nil
		case DecisionReject:
			return StatusRejected, nil
		default:
			return current, ErrOwnerCannotCancel
		}

	default:
		if current == StatusCanceled {
			return current, ErrWasCanceled
		}
		return current, ErrOnlyOwnerDecides
	}
}
