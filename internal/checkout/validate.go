package checkout

import (
	"github.com/jawa0111/horeo-foodapp/internal/models"
)

// Validate checks the draft rule by rule, in the order the form presents the
// fields, and returns the first failing rule as a user-facing message. An
// empty string means the draft is ready to submit.
func Validate(d models.OrderDraft) string {
	if d.Sender.Title == "" {
		return "Title is required"
	}
	if d.Sender.FirstName == "" {
		return "First name is required"
	}
	if d.Sender.LastName == "" {
		return "Last name is required"
	}
	if d.Sender.Email == "" {
		return "Email is required"
	}
	if d.Sender.Mobile == "" {
		return "Phone number is required"
	}

	if !d.SameAsSender {
		if d.Recipient.FirstName == "" {
			return "Recipient first name is required"
		}
		if d.Recipient.LastName == "" {
			return "Recipient last name is required"
		}
		if d.Recipient.Mobile == "" {
			return "Recipient phone number is required"
		}
	}

	if d.Address.Details == "" {
		return "Address details are required"
	}
	if !d.TermsAgreed {
		return "Please agree to the terms and conditions"
	}

	return ""
}

// Resolve returns the draft with the recipient filled in: a full copy of the
// sender (minus email) when sameAsSender is set, otherwise the entered
// recipient with the title defaulted from the sender.
func Resolve(d models.OrderDraft) models.OrderDraft {
	if d.SameAsSender {
		d.Recipient = models.Party{
			Title:     d.Sender.Title,
			FirstName: d.Sender.FirstName,
			LastName:  d.Sender.LastName,
			Code:      d.Sender.Code,
			Mobile:    d.Sender.Mobile,
		}
		return d
	}
	if d.Recipient.Title == "" {
		d.Recipient.Title = d.Sender.Title
	}
	return d
}
